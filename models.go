package main

import (
	"time"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/day"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. Password is hidden from JSON responses.
type user struct {
	ID        int        `json:"id"         db:"id"`
	FullName  string     `json:"full_name"  db:"full_name"`
	Email     string     `json:"email"      db:"email"`
	Phone     *string    `json:"phone"      db:"phone"`
	Password  string     `json:"-"          db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// userProfile maps to user_profiles, one row per user.
type userProfile struct {
	UserID            int        `json:"user_id"            db:"user_id"`
	Age               int        `json:"age"                db:"age"`
	Gender            string     `json:"gender"             db:"gender"`
	HeightCM          float64    `json:"height_cm"          db:"height_cm"`
	WeightKG          float64    `json:"weight_kg"          db:"weight_kg"`
	ActivityLevel     string     `json:"activity_level"     db:"activity_level"`
	Goal              string     `json:"goal"               db:"goal"`
	DietPreference    string     `json:"diet_preference"    db:"diet_preference"`
	MedicalConditions []string   `json:"medical_conditions" db:"medical_conditions"`
	UpdatedAt         *time.Time `json:"updated_at"         db:"updated_at"`

	// Computed from the profile; not stored.
	BMR           int `json:"bmr"            db:"-"`
	DailyCalories int `json:"daily_calories" db:"-"`
}

// toProfile converts the row into the calculator's input.
func (p userProfile) toProfile() nutrition.Profile {
	return nutrition.Profile{
		Age:            p.Age,
		Gender:         nutrition.ParseGender(p.Gender),
		HeightCM:       p.HeightCM,
		WeightKG:       p.WeightKG,
		ActivityLevel:  nutrition.ActivityLevel(p.ActivityLevel),
		Goal:           nutrition.Goal(p.Goal),
		DietPreference: nutrition.DietPreference(p.DietPreference),
		Conditions:     nutrition.ParseConditions(p.MedicalConditions),
	}
}

// portionRow maps to portion_sizes.
type portionRow struct {
	ID      int     `db:"id"`
	FoodID  int     `db:"food_id"`
	Name    string  `db:"portion_name"`
	WeightG float64 `db:"weight_g"`
}

// mealLog maps to daily_logs. FoodID is nil for free-text entries.
type mealLog struct {
	ID               int        `json:"id"                 db:"id"`
	UserID           int        `json:"user_id"            db:"user_id"`
	FoodID           *int       `json:"food_id"            db:"food_id"`
	FoodName         string     `json:"food_name"          db:"food_name"`
	Date             day.Date   `json:"date"               db:"date"`
	LoggedAt         *time.Time `json:"logged_at"          db:"logged_at"`
	PortionConsumedG float64    `json:"portion_consumed_g" db:"portion_consumed_g"`
	Calories         float64    `json:"calories"           db:"calories"`
	ProteinG         float64    `json:"protein_g"          db:"protein_g"`
	CarbsG           float64    `json:"carbs_g"            db:"carbs_g"`
	FatG             float64    `json:"fat_g"              db:"fat_g"`
	SugarG           float64    `json:"sugar_g"            db:"sugar_g"`
}

// dailyActivity maps to daily_activities, one row per user per day.
type dailyActivity struct {
	ID                    int      `db:"id"`
	UserID                int      `db:"user_id"`
	Date                  day.Date `db:"date"`
	StepsCount            int      `db:"steps_count"`
	WalkingDurationMin    int      `db:"walking_duration_min"`
	CaloriesBurnedWalking float64  `db:"calories_burned_walking"`
	WaterIntakeML         int      `db:"water_intake_ml"`
	WaterTargetML         int      `db:"water_target_ml"`
}

// weightEntry maps to weight_log.
type weightEntry struct {
	ID        int        `json:"id"         db:"id"`
	UserID    int        `json:"user_id"    db:"user_id"`
	Date      day.Date   `json:"date"       db:"date"`
	WeightKG  float64    `json:"weight_kg"  db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

/* ─── Request / Response types ───────────────────────────────────────── */

// profileRequest is the body for PUT /api/profile. medical_conditions may be
// a list or a comma-joined string.
type profileRequest struct {
	Age               int          `json:"age"`
	Gender            string       `json:"gender"`
	HeightCM          float64      `json:"height_cm"`
	WeightKG          float64      `json:"weight_kg"`
	ActivityLevel     string       `json:"activity_level"`
	Goal              string       `json:"goal"`
	DietPreset        string       `json:"diet_preset"`
	DietPreference    string       `json:"diet_preference"`
	MedicalConditions conditionsIn `json:"medical_conditions"`
}

// createMealLogRequest is the body for POST /api/meals. With food_id the
// macros come from the catalog; otherwise the explicit figures are stored.
type createMealLogRequest struct {
	Date             string  `json:"date"`
	FoodID           *int    `json:"food_id"`
	FoodName         string  `json:"food_name"`
	PortionConsumedG float64 `json:"portion_consumed_g"`
	Calories         float64 `json:"calories"`
	ProteinG         float64 `json:"protein_g"`
	CarbsG           float64 `json:"carbs_g"`
	FatG             float64 `json:"fat_g"`
	SugarG           float64 `json:"sugar_g"`
}

// dailyMeals is the response for GET /api/meals/daily.
type dailyMeals struct {
	Date     string    `json:"date"`
	Calories float64   `json:"calories"`
	ProteinG float64   `json:"protein_g"`
	CarbsG   float64   `json:"carbs_g"`
	FatG     float64   `json:"fat_g"`
	SugarG   float64   `json:"sugar_g"`
	Items    []mealLog `json:"items"`
}

// foodAnalysis is one recognized food in an analysis result.
type foodAnalysis struct {
	Name              string              `json:"name"`
	Confidence        float64             `json:"confidence"`
	NutritionPer100g  nutritionInfo       `json:"nutrition_per_100g"`
	AvailablePortions []nutrition.Portion `json:"available_portions"`
	DefaultPortion    nutrition.Portion   `json:"default_portion"`
	TrafficLight      nutrition.Light     `json:"traffic_light"`
	Warnings          []string            `json:"warnings"`
	ContextMessage    string              `json:"context_message"`
}

type nutritionInfo struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	SugarG   float64 `json:"sugar_g"`
}

// analysisResult is the response for POST /api/analyze. Foods is empty, not
// null, when nothing matched.
type analysisResult struct {
	Foods          []foodAnalysis `json:"foods"`
	SummaryMessage string         `json:"summary_message"`
}
