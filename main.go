package main

import (
	"context"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/auth"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/classifier"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/config"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/foodmatch"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/safety"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	cfg.SetupLogging()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	ctx := context.Background()

	pool, err := newDBPool(ctx, cfg.DBURL)
	if err != nil {
		log.WithError(err).Fatal("database")
	}
	defer pool.Close()
	log.Info("DB pool ready")

	catalog := pgCatalog{db: pool}
	h := &Handler{
		db:      pool,
		jwt:     auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
		images:  newImageStore(ctx, cfg),
		foods:   catalog,
		matcher: foodmatch.NewLabelMatcher(catalog),
		alerts:  safety.NewMonitor(pgAlertStore{db: pool}, nil),
	}

	if cfg.RedisAddr != "" {
		rdb, err := auth.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Fatal("redis")
		}
		defer rdb.Close()
		h.resets = auth.NewResetStore(rdb, cfg.ResetTokenTTL)
	} else {
		log.Warn("REDIS_ADDR not set, password reset disabled")
	}

	if cfg.ClassifierURL != "" {
		h.classifier = classifier.NewHTTPClient(cfg.ClassifierURL, cfg.ClassifierTimeout)
	} else {
		log.Warn("CLASSIFIER_URL not set, image analysis disabled")
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	log.WithField("addr", cfg.Addr()).Info("starting NutriLens API")
	if err := router.Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// newImageStore picks the configured upload backend. Analysis keeps working
// without one; images are then never persisted.
func newImageStore(ctx context.Context, cfg *config.Config) storage.ImageStore {
	switch cfg.StorageBackend {
	case config.StorageMinIO:
		m, err := storage.NewMinIO(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL)
		if err != nil {
			log.WithError(err).Fatal("minio")
		}
		return m
	case config.StorageCloudinary:
		cl, err := storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.WithError(err).Fatal("cloudinary")
		}
		return cl
	}
	return storage.Discard{}
}
