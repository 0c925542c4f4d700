// Package nutrition computes energy baselines and food-safety classifications
// from a user profile and per-100g food macros.
package nutrition

import (
	"sort"
	"strings"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// ParseGender lower-cases s. Anything that is not "male" is treated as
// non-male by the BMR formula.
func ParseGender(s string) Gender {
	return Gender(strings.ToLower(strings.TrimSpace(s)))
}

type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalWeightGain  Goal = "weight_gain"
	GoalMaintenance Goal = "maintenance"
	GoalDiabetic    Goal = "diabetic"
	GoalHighProtein Goal = "high_protein"
)

type DietPreference string

const (
	Veg    DietPreference = "veg"
	NonVeg DietPreference = "non_veg"
	Vegan  DietPreference = "vegan"
)

// Condition is a normalized medical-condition tag.
type Condition string

const (
	Diabetes     Condition = "diabetes"
	Hypertension Condition = "hypertension"
)

// conditionSynonyms folds the free-text spellings users send into one tag.
var conditionSynonyms = map[string]Condition{
	"diabetes":            Diabetes,
	"diabetic":            Diabetes,
	"type 2 diabetes":     Diabetes,
	"type 1 diabetes":     Diabetes,
	"bp":                  Hypertension,
	"high bp":             Hypertension,
	"hypertension":        Hypertension,
	"high blood pressure": Hypertension,
}

// NormalizeCondition maps a raw tag to its canonical form. Unknown tags are
// kept, lower-cased and trimmed.
func NormalizeCondition(raw string) Condition {
	tag := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if c, ok := conditionSynonyms[tag]; ok {
		return c
	}
	return Condition(tag)
}

// Conditions is a sorted, de-duplicated set of condition tags.
type Conditions []Condition

// ParseConditions normalizes tags and drops blanks and duplicates.
func ParseConditions(tags []string) Conditions {
	seen := make(map[Condition]bool, len(tags))
	out := Conditions{}
	for _, t := range tags {
		c := NormalizeCondition(t)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseConditionList splits a comma-joined condition string.
func ParseConditionList(s string) Conditions {
	return ParseConditions(strings.Split(s, ","))
}

func (cs Conditions) Has(c Condition) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}

// Strings returns the tags as plain strings for storage.
func (cs Conditions) Strings() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// Profile is the body and preference data the advisory rules read.
type Profile struct {
	Age            int            `json:"age"`
	Gender         Gender         `json:"gender"`
	HeightCM       float64        `json:"height_cm"`
	WeightKG       float64        `json:"weight_kg"`
	ActivityLevel  ActivityLevel  `json:"activity_level"`
	Goal           Goal           `json:"goal"`
	DietPreference DietPreference `json:"diet_preference"`
	Conditions     Conditions     `json:"medical_conditions"`
}

// IsDiabetic reports a diabetes condition tag or the diabetic goal preset.
func (p Profile) IsDiabetic() bool {
	return p.Conditions.Has(Diabetes) || p.Goal == GoalDiabetic
}

// IsVegetarian is true for both veg and vegan preferences.
func (p Profile) IsVegetarian() bool {
	return p.DietPreference == Veg || p.DietPreference == Vegan
}
