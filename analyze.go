package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/foodmatch"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

const (
	maxImageBytes   = 10 << 20
	matchConfidence = 0.9
)

// profileOverrides is the optional per-request profile sent by clients that
// keep settings locally. Set fields replace the stored profile's values.
type profileOverrides struct {
	DietPreset        string        `json:"diet_preset"`
	Goal              string        `json:"goal"`
	MedicalConditions *conditionsIn `json:"medical_conditions"`
}

func (o *profileOverrides) apply(p nutrition.Profile) nutrition.Profile {
	if o == nil {
		return p
	}
	switch {
	case o.Goal != "":
		p.Goal = nutrition.Goal(o.Goal)
	case o.DietPreset != "":
		p.Goal = nutrition.Goal(o.DietPreset)
	}
	if o.MedicalConditions != nil {
		p.Conditions = nutrition.ParseConditions(*o.MedicalConditions)
	}
	return p
}

// effectiveProfile merges request overrides onto the stored profile. Users
// without a profile get a zero profile: maintenance, no conditions.
func (h *Handler) effectiveProfile(ctx context.Context, userID int, o *profileOverrides) (nutrition.Profile, error) {
	stored, err := h.loadProfile(ctx, userID)
	if err != nil {
		return nutrition.Profile{}, err
	}
	base := nutrition.Profile{Goal: nutrition.GoalMaintenance, Conditions: nutrition.Conditions{}}
	if stored != nil {
		base = *stored
	}
	return o.apply(base), nil
}

// analyzeFood runs the calculator over a matched food at its default portion.
func analyzeFood(food nutrition.Food, p nutrition.Profile) foodAnalysis {
	portions := food.Portions
	if portions == nil {
		portions = []nutrition.Portion{}
	}
	def := food.DefaultPortion()
	equivalent := nutrition.ActivityEquivalent(food.ForPortion(def.WeightG).Calories)

	return foodAnalysis{
		Name:       food.Name,
		Confidence: matchConfidence,
		NutritionPer100g: nutritionInfo{
			Calories: int(food.Calories100),
			ProteinG: food.Protein100,
			CarbsG:   food.Carbs100,
			FatG:     food.Fat100,
			SugarG:   food.Sugar100,
		},
		AvailablePortions: portions,
		DefaultPortion:    def,
		TrafficLight:      nutrition.TrafficLight(food, p),
		Warnings:          nutrition.MedicalWarnings(food, p),
		ContextMessage:    equivalent,
	}
}

func analysisFailed(reason string) analysisResult {
	return analysisResult{Foods: []foodAnalysis{}, SummaryMessage: "Analysis failed: " + reason}
}

// analyzeMeal recognizes the food in an uploaded photo and returns its
// nutrition, traffic light and warnings. Downstream failures are reported in
// summary_message with an empty foods list rather than as errors.
// POST /api/analyze (multipart: file, optional user_data JSON).
func (h *Handler) analyzeMeal(c *gin.Context) {
	userID := c.GetInt("user_id")

	fh, err := c.FormFile("file")
	if err != nil {
		apiError(c, http.StatusBadRequest, "file is required")
		return
	}
	if fh.Size > maxImageBytes {
		apiError(c, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	var overrides *profileOverrides
	if raw := c.PostForm("user_data"); raw != "" {
		overrides = &profileOverrides{}
		if err := json.Unmarshal([]byte(raw), overrides); err != nil {
			apiError(c, http.StatusBadRequest, "invalid user data")
			return
		}
	}

	f, err := fh.Open()
	if err != nil {
		apiError(c, http.StatusBadRequest, "could not read file")
		return
	}
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	f.Close()
	if err != nil {
		apiError(c, http.StatusBadRequest, "could not read file")
		return
	}

	c.JSON(http.StatusOK, h.runAnalysis(c, userID, data, fh.Header.Get("Content-Type"), overrides))
}

// runAnalysis stores the image for the duration of the request, classifies
// it and matches the label against the catalog.
func (h *Handler) runAnalysis(ctx context.Context, userID int, data []byte, contentType string, o *profileOverrides) analysisResult {
	logger := log.WithField("user_id", userID)

	if h.images != nil {
		key, err := h.images.Upload(ctx, userID, data, contentType)
		if err != nil {
			logger.WithError(err).Error("[analyze] upload failed")
			return analysisFailed("could not store image")
		}
		defer func() {
			// The request context may already be done; deletion must still run.
			if err := h.images.Delete(context.WithoutCancel(ctx), key); err != nil {
				logger.WithError(err).WithField("key", key).Warn("[analyze] delete failed")
			}
		}()
	}

	if h.classifier == nil {
		return analysisFailed("image classifier is not configured")
	}
	label, err := h.classifier.Classify(ctx, data)
	if err != nil {
		logger.WithError(err).Error("[analyze] classify failed")
		return analysisFailed("could not classify image")
	}
	label = foodmatch.NormalizeLabel(label)

	food, err := h.matcher.Match(ctx, label)
	if err != nil {
		logger.WithError(err).Error("[analyze] food lookup failed")
		return analysisFailed("food lookup failed")
	}
	if food == nil {
		return analysisResult{
			Foods:          []foodAnalysis{},
			SummaryMessage: fmt.Sprintf("Could not match '%s' to standard database. Try manual search.", label),
		}
	}

	profile, err := h.effectiveProfile(ctx, userID, o)
	if err != nil {
		logger.WithError(err).Error("[analyze] load profile failed")
		return analysisFailed("could not load profile")
	}

	fa := analyzeFood(*food, profile)
	logger.WithFields(log.Fields{"label": label, "food": fa.Name, "light": fa.TrafficLight}).Debug("[analyze] matched")
	return analysisResult{
		Foods:          []foodAnalysis{fa},
		SummaryMessage: fmt.Sprintf("Identified %s. %s", fa.Name, fa.ContextMessage),
	}
}

// checkFood evaluates a catalog food at a given portion for the user.
// POST /api/check_food. Body: { "food_id", "portion_weight_g", "user_profile"? }.
func (h *Handler) checkFood(c *gin.Context) {
	var body struct {
		FoodID         int               `json:"food_id"`
		PortionWeightG float64           `json:"portion_weight_g"`
		UserProfile    *profileOverrides `json:"user_profile"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.FoodID <= 0 {
		apiError(c, http.StatusBadRequest, "food_id is required")
		return
	}
	if body.PortionWeightG < 0 {
		apiError(c, http.StatusBadRequest, "portion_weight_g must not be negative")
		return
	}

	food, err := h.foods.FoodByID(c, body.FoodID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food")
		return
	}
	if food == nil {
		apiError(c, http.StatusNotFound, "food not found")
		return
	}

	profile, err := h.effectiveProfile(c, c.GetInt("user_id"), body.UserProfile)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	grams := body.PortionWeightG
	if grams == 0 {
		grams = food.DefaultPortion().WeightG
	}
	calories := food.ForPortion(grams).Calories

	c.JSON(http.StatusOK, gin.H{
		"food":            food.Name,
		"portion_g":       grams,
		"calories":        int(calories),
		"traffic_light":   nutrition.TrafficLight(*food, profile),
		"warnings":        nutrition.MedicalWarnings(*food, profile),
		"context_message": nutrition.ActivityEquivalent(calories),
	})
}
