package dietplan

import (
	"testing"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

func profile(pref nutrition.DietPreference, conditions ...string) nutrition.Profile {
	return nutrition.Profile{
		Age: 30, Gender: nutrition.Male, HeightCM: 175, WeightKG: 70,
		ActivityLevel: nutrition.Moderate, Goal: nutrition.GoalMaintenance,
		DietPreference: pref, Conditions: nutrition.ParseConditions(conditions),
	}
}

// TestGenerate_SlotsSumToDaily checks the four truncated slot targets land
// within rounding of the daily figure across a spread of profiles.
func TestGenerate_SlotsSumToDaily(t *testing.T) {
	for weight := 45.0; weight <= 130; weight += 3.7 {
		for _, level := range []nutrition.ActivityLevel{nutrition.Sedentary, nutrition.Light, nutrition.VeryActive} {
			p := profile(nutrition.NonVeg)
			p.WeightKG = weight
			p.ActivityLevel = level
			plan := Generate(p)

			sum := 0
			for _, m := range plan.Meals {
				sum += m.TargetCalories
			}
			if d := plan.DailyCalories - sum; d < 0 || d > 4 {
				t.Errorf("weight %.1f %s: slots sum %d vs daily %d", weight, level, sum, plan.DailyCalories)
			}
		}
	}
}

func TestGenerate_Split(t *testing.T) {
	p := profile(nutrition.NonVeg)
	plan := Generate(p)
	_, daily := nutrition.Baseline(p)
	if plan.DailyCalories != daily {
		t.Fatalf("daily = %d, want %d", plan.DailyCalories, daily)
	}
	if plan.Goal != nutrition.GoalMaintenance {
		t.Errorf("goal = %s", plan.Goal)
	}
	if got, want := plan.Meals[Lunch].TargetCalories, int(float64(daily)*0.35); got != want {
		t.Errorf("lunch = %d, want %d", got, want)
	}
	if len(plan.Meals) != 4 {
		t.Errorf("expected 4 meals, got %d", len(plan.Meals))
	}
}

func TestGenerate_Templates(t *testing.T) {
	cases := []struct {
		name     string
		p        nutrition.Profile
		slot     string
		wantFood string
		wantDesc string
	}{
		{"diabetic veg breakfast", profile(nutrition.Veg, "diabetes"), Breakfast, "Oats Upma with Vegetables", "Low GI, High Fiber"},
		{"diabetic non-veg breakfast", profile(nutrition.NonVeg, "diabetic"), Breakfast, "Egg White Omelet + Multigrain Toast", "Low GI, High Fiber"},
		{"plain veg breakfast", profile(nutrition.Veg), Breakfast, "Poha with Peanuts", "Energy start"},
		{"diabetic non-veg lunch swaps rice", profile(nutrition.NonVeg, "diabetes"), Lunch, "Brown Rice + Chicken Curry + Salad", "Balanced meal"},
		{"veg lunch", profile(nutrition.Veg), Lunch, "2 Roti + Dal + Sabzi + Salad", "Balanced meal"},
		{"diabetic snack", profile(nutrition.Veg, "diabetes"), Snack, "Roasted Chana / Nuts", "Balanced meal"},
		{"plain snack", profile(nutrition.NonVeg), Snack, "Fruit + Green Tea", "Balanced meal"},
		{"hypertension dinner", profile(nutrition.NonVeg, "bp"), Dinner, "Grilled Fish/Chicken + Soup", "Low Sodium"},
		{"veg dinner", profile(nutrition.Veg), Dinner, "Grilled Paneer Salad", "Balanced meal"},
		{"vegan dinner", profile(nutrition.Vegan, "hypertension"), Dinner, "Grilled Tofu Salad", "Low Sodium"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Generate(tc.p).Meals[tc.slot]
			if m.Food != tc.wantFood || m.Description != tc.wantDesc {
				t.Errorf("%s = {%q, %q}, want {%q, %q}", tc.slot, m.Food, m.Description, tc.wantFood, tc.wantDesc)
			}
		})
	}
}
