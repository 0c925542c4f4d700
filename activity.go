package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/lifestyle"
)

// bodyWeight is the profile weight, or the default adult weight when the
// user has no profile.
func (h *Handler) bodyWeight(ctx context.Context, userID int) (float64, error) {
	p, err := h.loadProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	if p == nil || p.WeightKG <= 0 {
		return lifestyle.DefaultWeightKG, nil
	}
	return p.WeightKG, nil
}

// logWalk adds steps or walking minutes to today's activity.
// POST /api/log/walk. Body: { "steps"?, "duration_min"? }.
func (h *Handler) logWalk(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Steps       int `json:"steps"`
		DurationMin int `json:"duration_min"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Steps < 0 || body.DurationMin < 0 {
		apiError(c, http.StatusBadRequest, "steps and duration_min must not be negative")
		return
	}

	weight, err := h.bodyWeight(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	burned := lifestyle.WalkingCalories(body.Steps, body.DurationMin, weight)

	// Concurrent logs for the same day add up instead of overwriting each other.
	a, err := queryOne[dailyActivity](h.db, c,
		`INSERT INTO daily_activities (user_id, date, steps_count, walking_duration_min, calories_burned_walking)
		 VALUES (@userID, @date, @steps, @minutes, @burned)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			steps_count             = daily_activities.steps_count + EXCLUDED.steps_count,
			walking_duration_min    = daily_activities.walking_duration_min + EXCLUDED.walking_duration_min,
			calories_burned_walking = daily_activities.calories_burned_walking + EXCLUDED.calories_burned_walking
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":  userID,
			"date":    h.today().String(),
			"steps":   body.Steps,
			"minutes": body.DurationMin,
			"burned":  burned,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to log walk")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Walking logged",
		"burned":          burned,
		"steps":           a.StepsCount,
		"calories_burned": int(a.CaloriesBurnedWalking),
	})
}

// logWater adds a drink to today's intake and refreshes the target from the
// current body weight.
// POST /api/log/water. Body: { "amount_ml"? } (defaults to one glass).
func (h *Handler) logWater(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		AmountML *int `json:"amount_ml"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	amount := lifestyle.DefaultGlassML
	if body.AmountML != nil {
		amount = *body.AmountML
	}
	if amount <= 0 {
		apiError(c, http.StatusBadRequest, "amount_ml must be positive")
		return
	}

	weight, err := h.bodyWeight(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	target := lifestyle.DailyWaterTarget(weight)

	a, err := queryOne[dailyActivity](h.db, c,
		`INSERT INTO daily_activities (user_id, date, water_intake_ml, water_target_ml)
		 VALUES (@userID, @date, @amount, @target)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			water_intake_ml = daily_activities.water_intake_ml + EXCLUDED.water_intake_ml,
			water_target_ml = EXCLUDED.water_target_ml
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": h.today().String(), "amount": amount, "target": target})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to log water")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Water logged",
		"total":   a.WaterIntakeML,
		"target":  a.WaterTargetML,
		"advice":  lifestyle.HydrationStatus(a.WaterIntakeML, a.WaterTargetML, h.clock()),
	})
}

// todayActivity returns today's row, or a zero row when nothing is logged yet.
func (h *Handler) todayActivity(ctx context.Context, userID int) (dailyActivity, bool, error) {
	a, err := queryOne[dailyActivity](h.db, ctx,
		"SELECT * FROM daily_activities WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": h.today().String()})
	if errors.Is(err, pgx.ErrNoRows) {
		return dailyActivity{}, false, nil
	}
	return a, err == nil, err
}

// getDailyStats returns today's steps, burn and hydration.
// GET /api/stats.
func (h *Handler) getDailyStats(c *gin.Context) {
	userID := c.GetInt("user_id")

	weight, err := h.bodyWeight(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	target := lifestyle.DailyWaterTarget(weight)

	a, found, err := h.todayActivity(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch activity")
		return
	}

	advice := lifestyle.FirstGlassHint
	if found {
		advice = lifestyle.HydrationStatus(a.WaterIntakeML, target, h.clock())
	}

	c.JSON(http.StatusOK, gin.H{
		"steps":           a.StepsCount,
		"calories_burned": int(a.CaloriesBurnedWalking),
		"water_ml":        a.WaterIntakeML,
		"water_target":    target,
		"water_advice":    advice,
	})
}
