package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/day"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/safety"
)

/* ─── Postgres store for the safety monitor ──────────────────────────── */

// pgAlertStore implements safety.Store. Alert de-duplication relies on the
// partial unique index health_alerts_open_uniq.
type pgAlertStore struct {
	db *pgxpool.Pool
}

func (s pgAlertStore) RecentWeights(ctx context.Context, userID, limit int) ([]safety.WeightEntry, error) {
	return queryMany[safety.WeightEntry](s.db, ctx,
		`SELECT date, weight_kg FROM weight_log
		 WHERE user_id = @userID
		 ORDER BY date DESC, id DESC
		 LIMIT @limit`,
		pgx.NamedArgs{"userID": userID, "limit": limit})
}

func (s pgAlertStore) MealsBetween(ctx context.Context, userID int, start, end day.Date) ([]safety.MealEntry, error) {
	return queryMany[safety.MealEntry](s.db, ctx,
		`SELECT date, calories FROM daily_logs
		 WHERE user_id = @userID AND date >= @start AND date < @end`,
		pgx.NamedArgs{"userID": userID, "start": start.String(), "end": end.String()})
}

// SaveAlert inserts the finding unless an open alert of the same type already
// exists for the day, in which case that alert is returned.
func (s pgAlertStore) SaveAlert(ctx context.Context, userID int, date day.Date, f safety.Finding) (safety.Alert, error) {
	tests := f.SuggestedTests
	if tests == nil {
		tests = []string{}
	}
	args := pgx.NamedArgs{
		"userID":   userID,
		"date":     date.String(),
		"type":     string(f.Type),
		"severity": string(f.Severity),
		"message":  f.Message,
		"tests":    tests,
	}

	a, err := queryOne[safety.Alert](s.db, ctx,
		`INSERT INTO health_alerts (user_id, date, alert_type, severity, message, suggested_tests)
		 VALUES (@userID, @date, @type, @severity, @message, @tests)
		 ON CONFLICT (user_id, alert_type, date) WHERE NOT is_consulted DO NOTHING
		 RETURNING *`, args)
	if !errors.Is(err, pgx.ErrNoRows) {
		return a, err
	}

	return queryOne[safety.Alert](s.db, ctx,
		`SELECT * FROM health_alerts
		 WHERE user_id = @userID AND alert_type = @type AND date = @date AND NOT is_consulted`, args)
}

func (s pgAlertStore) UnresolvedAlerts(ctx context.Context, userID int) ([]safety.Alert, error) {
	return queryMany[safety.Alert](s.db, ctx,
		`SELECT * FROM health_alerts
		 WHERE user_id = @userID AND NOT is_consulted
		 ORDER BY date DESC, id ASC`,
		pgx.NamedArgs{"userID": userID})
}

func (s pgAlertStore) ResolveAlert(ctx context.Context, userID, alertID int) (safety.Alert, error) {
	a, err := queryOne[safety.Alert](s.db, ctx,
		`UPDATE health_alerts SET is_consulted = true
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"id": alertID, "userID": userID})
	if errors.Is(err, pgx.ErrNoRows) {
		return a, safety.ErrAlertNotFound
	}
	return a, err
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// getAlerts re-evaluates the user's history, then lists open alerts.
// GET /api/alerts.
func (h *Handler) getAlerts(c *gin.Context) {
	alerts, err := h.alerts.Active(c, c.GetInt("user_id"))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch alerts")
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// resolveAlert marks an alert as consulted.
// POST /api/alerts/:id/resolve. 404 for unknown ids and other users' alerts.
func (h *Handler) resolveAlert(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if _, err := h.alerts.Resolve(c, c.GetInt("user_id"), id); err != nil {
		if errors.Is(err, safety.ErrAlertNotFound) {
			apiError(c, http.StatusNotFound, "alert not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to resolve alert")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert marked as consulted."})
}
