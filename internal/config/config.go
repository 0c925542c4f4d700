// Package config loads service settings from config.toml, .env and the
// environment. Environment variables always win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Storage backends for uploaded meal photos.
const (
	StorageMinIO      = "minio"
	StorageCloudinary = "cloudinary"
	StorageNone       = "none"
)

type Config struct {
	ServiceHost string `mapstructure:"SERVICE_HOST"`
	ServicePort int    `mapstructure:"SERVICE_PORT"`

	DBURL         string        `mapstructure:"DB_URL"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	ResetTokenTTL time.Duration `mapstructure:"RESET_TOKEN_TTL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	StorageBackend      string `mapstructure:"STORAGE_BACKEND"`
	MinIOEndpoint       string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey      string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey      string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket         string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL         bool   `mapstructure:"MINIO_USE_SSL"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	ClassifierURL     string        `mapstructure:"CLASSIFIER_URL"`
	ClassifierTimeout time.Duration `mapstructure:"CLASSIFIER_TIMEOUT"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]interface{}{
	"SERVICE_HOST":          "localhost",
	"SERVICE_PORT":          3000,
	"DB_URL":                "",
	"JWT_SECRET":            "",
	"TOKEN_TTL":             "24h",
	"RESET_TOKEN_TTL":       "15m",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"STORAGE_BACKEND":       StorageNone,
	"MINIO_ENDPOINT":        "127.0.0.1:9000",
	"MINIO_ACCESS_KEY":      "",
	"MINIO_SECRET_KEY":      "",
	"MINIO_BUCKET":          "images",
	"MINIO_USE_SSL":         false,
	"CLOUDINARY_CLOUD_NAME": "",
	"CLOUDINARY_API_KEY":    "",
	"CLOUDINARY_API_SECRET": "",
	"CLASSIFIER_URL":        "",
	"CLASSIFIER_TIMEOUT":    "15s",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "text",
}

// Load reads the optional .env file and config file, then overlays the
// environment. A missing config file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)

	log.WithField("config_file", v.ConfigFileUsed()).Debug("config parsed")
	return cfg, nil
}

// Validate reports settings the API server cannot start without.
func (c *Config) Validate() error {
	if c.DBURL == "" {
		return errors.New("DB_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StorageBackend {
	case StorageMinIO, StorageCloudinary, StorageNone:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServiceHost, c.ServicePort)
}

// SetupLogging applies LOG_LEVEL and LOG_FORMAT to the global logger.
func (c *Config) SetupLogging() {
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
