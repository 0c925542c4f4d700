package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

// conditionsIn accepts medical conditions as a JSON list or as one
// comma-joined string, and normalizes the tags.
type conditionsIn []string

func (ci *conditionsIn) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*ci = nutrition.ParseConditions(list).Strings()
		return nil
	}
	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return err
	}
	*ci = nutrition.ParseConditionList(joined).Strings()
	return nil
}

// withComputed fills the BMR and daily calorie limit for responses.
func (p userProfile) withComputed() userProfile {
	p.BMR, p.DailyCalories = nutrition.Baseline(p.toProfile())
	if p.MedicalConditions == nil {
		p.MedicalConditions = []string{}
	}
	return p
}

// loadProfile returns the stored profile, or nil when the user has none or
// no database is configured.
func (h *Handler) loadProfile(ctx context.Context, userID int) (*nutrition.Profile, error) {
	if h.db == nil {
		return nil, nil
	}
	row, err := queryOne[userProfile](h.db, ctx,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := row.toProfile()
	return &p, nil
}

// getProfile returns the user's profile with computed BMR and daily limit.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	p, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": c.GetInt("user_id")})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "profile not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		}
		return
	}
	c.JSON(http.StatusOK, p.withComputed())
}

// validate checks the body fields and fills defaults. diet_preset is the
// older name for goal and is only used when goal is empty.
func (r *profileRequest) validate() string {
	switch {
	case r.Age <= 0 || r.Age > 130:
		return "age must be between 1 and 130"
	case r.HeightCM <= 0 || r.HeightCM > 300:
		return "height_cm must be between 0 and 300"
	case r.WeightKG <= 0 || r.WeightKG > 700:
		return "weight_kg must be between 0 and 700"
	case strings.TrimSpace(r.Gender) == "":
		return "gender is required"
	}
	r.Gender = string(nutrition.ParseGender(r.Gender))
	if r.Goal == "" {
		r.Goal = r.DietPreset
	}
	if r.Goal == "" {
		r.Goal = string(nutrition.GoalMaintenance)
	}
	if r.ActivityLevel == "" {
		r.ActivityLevel = string(nutrition.Sedentary)
	}
	if r.DietPreference == "" {
		r.DietPreference = string(nutrition.NonVeg)
	}
	if r.MedicalConditions == nil {
		r.MedicalConditions = conditionsIn{}
	}
	return ""
}

// putProfile creates or replaces the user's profile.
// PUT /api/profile.
func (h *Handler) putProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	p, err := queryOne[userProfile](h.db, c,
		`INSERT INTO user_profiles
			(user_id, age, gender, height_cm, weight_kg, activity_level, goal, diet_preference, medical_conditions)
		 VALUES
			(@userID, @age, @gender, @heightCM, @weightKG, @activityLevel, @goal, @dietPreference, @conditions)
		 ON CONFLICT (user_id) DO UPDATE SET
			age                = EXCLUDED.age,
			gender             = EXCLUDED.gender,
			height_cm          = EXCLUDED.height_cm,
			weight_kg          = EXCLUDED.weight_kg,
			activity_level     = EXCLUDED.activity_level,
			goal               = EXCLUDED.goal,
			diet_preference    = EXCLUDED.diet_preference,
			medical_conditions = EXCLUDED.medical_conditions,
			updated_at         = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":         userID,
			"age":            body.Age,
			"gender":         body.Gender,
			"heightCM":       body.HeightCM,
			"weightKG":       body.WeightKG,
			"activityLevel":  body.ActivityLevel,
			"goal":           body.Goal,
			"dietPreference": body.DietPreference,
			"conditions":     []string(body.MedicalConditions),
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}

	c.JSON(http.StatusOK, p.withComputed())
}
