// Package dietplan splits a daily calorie budget into templated meals.
package dietplan

import (
	"strings"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

const (
	Breakfast = "Breakfast"
	Lunch     = "Lunch"
	Snack     = "Snack"
	Dinner    = "Dinner"
)

// Slots lists meal slots in serving order with their share of the day.
var Slots = []struct {
	Name  string
	Share float64
}{
	{Breakfast, 0.25},
	{Lunch, 0.35},
	{Snack, 0.15},
	{Dinner, 0.25},
}

// Meal is one slot of a plan.
type Meal struct {
	Food           string `json:"food"`
	TargetCalories int    `json:"target_calories"`
	Description    string `json:"description"`
}

// Plan is a day of meals. Slot targets are truncated independently, so
// their sum can fall a few kcal short of DailyCalories.
type Plan struct {
	DailyCalories int             `json:"daily_calories"`
	Goal          nutrition.Goal  `json:"goal"`
	Meals         map[string]Meal `json:"meals"`
}

// flags select a template row.
type flags struct {
	diabetic, vegetarian, vegan, hypertension bool
}

// Generate builds the plan for p.
func Generate(p nutrition.Profile) Plan {
	_, daily := nutrition.Baseline(p)

	f := flags{
		diabetic:     p.Conditions.Has(nutrition.Diabetes),
		vegetarian:   p.IsVegetarian(),
		vegan:        p.DietPreference == nutrition.Vegan,
		hypertension: p.Conditions.Has(nutrition.Hypertension),
	}

	meals := make(map[string]Meal, len(Slots))
	for _, s := range Slots {
		m := suggest(s.Name, f)
		m.TargetCalories = int(float64(daily) * s.Share)
		meals[s.Name] = m
	}
	return Plan{DailyCalories: daily, Goal: p.Goal, Meals: meals}
}

func pick(veg bool, vegFood, other string) string {
	if veg {
		return vegFood
	}
	return other
}

func suggest(slot string, f flags) Meal {
	m := Meal{Food: "Standard Meal", Description: "Balanced meal"}

	switch slot {
	case Breakfast:
		if f.diabetic {
			m.Food = pick(f.vegetarian, "Oats Upma with Vegetables", "Egg White Omelet + Multigrain Toast")
			m.Description = "Low GI, High Fiber"
		} else {
			m.Food = pick(f.vegetarian, "Poha with Peanuts", "Boiled Eggs + Toast")
			m.Description = "Energy start"
		}

	case Lunch:
		m.Food = pick(f.vegetarian, "2 Roti + Dal + Sabzi + Salad", "Rice + Chicken Curry + Salad")
		if f.diabetic {
			m.Food = strings.NewReplacer("Rice", "Brown Rice", "Potato", "Green Veg").Replace(m.Food)
		}

	case Snack:
		m.Food = pick(f.diabetic, "Roasted Chana / Nuts", "Fruit + Green Tea")

	case Dinner:
		m.Food = pick(f.vegetarian, "Grilled Paneer Salad", "Grilled Fish/Chicken + Soup")
		if f.vegan {
			m.Food = "Grilled Tofu Salad"
		}
		if f.hypertension {
			m.Description = "Low Sodium"
		}
	}
	return m
}
