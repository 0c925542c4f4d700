package safety

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/day"
)

// ErrAlertNotFound is returned when resolving an alert the user doesn't own.
var ErrAlertNotFound = errors.New("alert not found")

// Alert maps to the health_alerts table.
type Alert struct {
	ID             int        `json:"id"           db:"id"`
	UserID         int        `json:"-"            db:"user_id"`
	Date           day.Date   `json:"date"         db:"date"`
	Type           AlertType  `json:"type"         db:"alert_type"`
	Severity       Severity   `json:"severity"     db:"severity"`
	Message        string     `json:"message"      db:"message"`
	SuggestedTests []string   `json:"tests"        db:"suggested_tests"`
	IsConsulted    bool       `json:"is_consulted" db:"is_consulted"`
	CreatedAt      *time.Time `json:"created_at"   db:"created_at"`
}

// Store is the persistence the monitor needs.
//
// SaveAlert must be idempotent per (user, type, date) among unresolved
// alerts: when one already exists it is returned instead of inserting.
type Store interface {
	RecentWeights(ctx context.Context, userID, limit int) ([]WeightEntry, error)
	// MealsBetween returns meal rows with start <= date < end.
	MealsBetween(ctx context.Context, userID int, start, end day.Date) ([]MealEntry, error)
	SaveAlert(ctx context.Context, userID int, date day.Date, f Finding) (Alert, error)
	UnresolvedAlerts(ctx context.Context, userID int) ([]Alert, error)
	// ResolveAlert returns ErrAlertNotFound for unknown or foreign ids.
	ResolveAlert(ctx context.Context, userID, alertID int) (Alert, error)
}

// Monitor loads history, runs the rules and persists what they find.
type Monitor struct {
	store Store
	now   func() time.Time
}

// NewMonitor returns a Monitor reading the clock from now; nil means time.Now.
func NewMonitor(store Store, now func() time.Time) *Monitor {
	if now == nil {
		now = time.Now
	}
	return &Monitor{store: store, now: now}
}

// Check loads the user's history and returns pending findings without
// saving them.
func (m *Monitor) Check(ctx context.Context, userID int) ([]Finding, error) {
	today := Today(m.now())

	weights, err := m.store.RecentWeights(ctx, userID, WeightWindow)
	if err != nil {
		return nil, fmt.Errorf("load weights: %w", err)
	}
	start, end := CalorieWindow(today)
	meals, err := m.store.MealsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load meals: %w", err)
	}

	return CheckForAnomalies(History{Weights: weights, Meals: meals}, today), nil
}

// Evaluate checks the user and saves each finding under today's date.
// Re-running on the same day returns the already stored alerts.
func (m *Monitor) Evaluate(ctx context.Context, userID int) ([]Alert, error) {
	findings, err := m.Check(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := Today(m.now())

	alerts := make([]Alert, 0, len(findings))
	for _, f := range findings {
		a, err := m.store.SaveAlert(ctx, userID, today, f)
		if err != nil {
			return alerts, fmt.Errorf("save %s alert: %w", f.Type, err)
		}
		log.WithFields(log.Fields{"user_id": userID, "alert_id": a.ID, "type": a.Type}).
			Debug("[safety] alert raised")
		alerts = append(alerts, a)
	}
	return alerts, nil
}

// Active evaluates first so the list is fresh, then returns every
// unresolved alert for the user.
func (m *Monitor) Active(ctx context.Context, userID int) ([]Alert, error) {
	if _, err := m.Evaluate(ctx, userID); err != nil {
		return nil, err
	}
	alerts, err := m.store.UnresolvedAlerts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	return alerts, nil
}

// Resolve marks an alert as consulted.
func (m *Monitor) Resolve(ctx context.Context, userID, alertID int) (Alert, error) {
	return m.store.ResolveAlert(ctx, userID, alertID)
}
