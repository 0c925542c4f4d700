package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/auth"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/classifier"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/day"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/foodmatch"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/safety"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/storage"
)

// resetTokens issues and redeems single-use password-reset tokens.
type resetTokens interface {
	Issue(ctx context.Context, userID int) (string, error)
	Consume(ctx context.Context, token string) (int, error)
}

// Handler holds shared dependencies for all route handlers. Collaborators are
// interfaces so tests can swap in fakes without a database or network.
type Handler struct {
	db         *pgxpool.Pool
	jwt        *auth.JWTService
	resets     resetTokens
	classifier classifier.Classifier
	images     storage.ImageStore
	foods      foodmatch.Catalog
	matcher    foodmatch.Matcher
	alerts     *safety.Monitor
	now        func() time.Time
}

// today is the calendar date the server considers current.
func (h *Handler) today() day.Date {
	if h.now == nil {
		return day.Of(time.Now())
	}
	return day.Of(h.now())
}

func (h *Handler) clock() time.Time {
	if h.now == nil {
		return time.Now()
	}
	return h.now()
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// pgx.ErrNoRows is returned as is so callers can map it to 404.
func queryOne[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.WithError(err).Error("[queryOne] query error")
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.WithError(err).Error("[queryOne] scan error")
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.WithError(err).Error("[queryMany] query error")
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.WithError(err).Error("[queryMany] scan error")
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newDBPool creates a connection pool using the simple query protocol, which
// keeps working through pgbouncer-style poolers after schema changes.
func newDBPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return pool, nil
}

// requestLogger logs one line per request once the handler chain finishes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		if uid, ok := c.Get("user_id"); ok {
			entry = entry.WithField("user_id", uid)
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.GET("/", h.root)
	router.GET("/health", h.health)
	public := router.Group("/auth")
	public.POST("/signup", h.signup)
	public.POST("/login", h.login)
	public.POST("/forgot-password", h.forgotPassword)
	public.POST("/reset-password", h.resetPassword)

	// Authenticated routes
	router.GET("/auth/me", h.authMiddleware(), h.me)

	api := router.Group("/api", h.authMiddleware())
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.GET("/foods", h.listFoods)
	api.POST("/check_food", h.checkFood)
	api.POST("/analyze", h.analyzeMeal)
	api.POST("/log/walk", h.logWalk)
	api.POST("/log/water", h.logWater)
	api.GET("/stats", h.getDailyStats)
	api.POST("/adaptive_advice", h.postAdaptiveAdvice)
	api.GET("/adaptive_advice", h.getAdaptiveAdvice)
	api.GET("/diet-plan", h.getDietPlan)
	api.POST("/log/weight", h.logWeight)
	api.GET("/weight-log", h.getWeightLog)
	api.GET("/alerts", h.getAlerts)
	api.POST("/alerts/:id/resolve", h.resolveAlert)
	api.POST("/meals", h.createMealLog)
	api.GET("/meals/daily", h.getDailyMeals)
	api.DELETE("/meals/:id", h.deleteMealLog)
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "NutriLens API is running"})
}

// health pings the database when one is configured.
func (h *Handler) health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c); err != nil {
			log.WithError(err).Warn("[health] db ping failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
