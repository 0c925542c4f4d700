package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/advisor"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/dietplan"
)

// postAdaptiveAdvice answers with advice for figures the client supplies.
// POST /api/adaptive_advice. Body: { "consumed", "burned", "water" }.
func (h *Handler) postAdaptiveAdvice(c *gin.Context) {
	var body advisor.Snapshot
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Consumed < 0 || body.Burned < 0 || body.WaterML < 0 {
		apiError(c, http.StatusBadRequest, "consumed, burned and water must not be negative")
		return
	}

	profile, err := h.loadProfile(c, c.GetInt("user_id"))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, advisor.Advise(profile, body, h.clock()))
}

// getAdaptiveAdvice builds the snapshot from today's meal log and activity.
// GET /api/adaptive_advice.
func (h *Handler) getAdaptiveAdvice(c *gin.Context) {
	userID := c.GetInt("user_id")

	profile, err := h.loadProfile(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	consumed, err := h.consumedOn(c, userID, h.today())
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch meals")
		return
	}
	activity, _, err := h.todayActivity(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch activity")
		return
	}

	snap := advisor.Snapshot{
		Consumed: int(consumed),
		Burned:   int(activity.CaloriesBurnedWalking),
		WaterML:  activity.WaterIntakeML,
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot": snap,
		"advice":   advisor.Advise(profile, snap, h.clock()),
	})
}

// getDietPlan returns a templated day of meals for the user's profile.
// GET /api/diet-plan.
func (h *Handler) getDietPlan(c *gin.Context) {
	profile, err := h.loadProfile(c, c.GetInt("user_id"))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	if profile == nil {
		apiError(c, http.StatusNotFound, "complete your profile to get a diet plan")
		return
	}

	c.JSON(http.StatusOK, dietplan.Generate(*profile))
}
