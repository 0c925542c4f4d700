// Package safety watches weight and calorie history for unsafe trends and
// raises health alerts, at most one unresolved alert per type per day.
package safety

import (
	"sort"
	"time"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/day"
)

type AlertType string

const (
	RapidWeightLoss  AlertType = "rapid_weight_loss"
	RapidWeightGain  AlertType = "rapid_weight_gain"
	LowCalorieIntake AlertType = "low_calorie_intake"
)

type Severity string

const (
	Low    Severity = "low"
	Medium Severity = "medium"
	High   Severity = "high"
)

const (
	// WeightWindow is how many recent weight entries the trend rule reads.
	WeightWindow = 14
	// CalorieDays is how many complete days the intake rule needs.
	CalorieDays = 3

	weightLookbackDays = 7
	weightDeltaKG      = 2.0
	lowCalorieKcal     = 1200
)

// WeightEntry is one weight log row.
type WeightEntry struct {
	Date     day.Date `db:"date"`
	WeightKG float64  `db:"weight_kg"`
}

// MealEntry is the calorie total of one meal log row.
type MealEntry struct {
	Date     day.Date `db:"date"`
	Calories float64  `db:"calories"`
}

// History is the input to the trend rules. Weights are newest first.
type History struct {
	Weights []WeightEntry
	Meals   []MealEntry
}

// Finding is an alert computed by a rule, before it is stored.
type Finding struct {
	Type           AlertType
	Severity       Severity
	Message        string
	SuggestedTests []string
}

// CheckForAnomalies runs every rule against h. today is the calendar day the
// check runs on; its meals are excluded as incomplete.
func CheckForAnomalies(h History, today day.Date) []Finding {
	var findings []Finding
	if f := CheckWeightTrend(h.Weights); f != nil {
		findings = append(findings, *f)
	}
	if f := CheckCalorieTrend(h.Meals, today); f != nil {
		findings = append(findings, *f)
	}
	return findings
}

// CheckWeightTrend compares the newest weight against the newest entry at
// least seven days older. Changes of exactly 2 kg do not alert.
func CheckWeightTrend(weights []WeightEntry) *Finding {
	if len(weights) < 2 {
		return nil
	}
	logs := make([]WeightEntry, len(weights))
	copy(logs, weights)
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date.After(logs[j].Date.Time) })
	if len(logs) > WeightWindow {
		logs = logs[:WeightWindow]
	}

	current := logs[0]
	cutoff := current.Date.AddDays(-weightLookbackDays)
	var baseline *WeightEntry
	for i := range logs {
		if !logs[i].Date.After(cutoff.Time) {
			baseline = &logs[i]
			break
		}
	}
	if baseline == nil {
		return nil
	}

	diff := current.WeightKG - baseline.WeightKG
	switch {
	case diff < -weightDeltaKG:
		return &Finding{
			Type:           RapidWeightLoss,
			Severity:       High,
			Message:        "Unexpected weight loss detected (>2kg in 7 days).",
			SuggestedTests: []string{"CBC", "Thyroid Profile", "LFT", "Blood Sugar (FBS/HbA1c)"},
		}
	case diff > weightDeltaKG:
		return &Finding{
			Type:           RapidWeightGain,
			Severity:       Medium,
			Message:        "Rapid weight gain detected (>2kg in 7 days). Possible fluid retention.",
			SuggestedTests: []string{"Kidney Function Test (KFT)", "Thyroid Profile", "Lipid Profile"},
		}
	}
	return nil
}

// CheckCalorieTrend alerts when each of the three days before today has
// logged meals and every one of them totals under 1200 kcal.
func CheckCalorieTrend(meals []MealEntry, today day.Date) *Finding {
	start, end := CalorieWindow(today)
	from, to := start.Key(), end.Key()
	totals := make(map[string]float64, CalorieDays)
	for _, m := range meals {
		k := m.Date.Key()
		if k < from || k >= to {
			continue
		}
		totals[k] += m.Calories
	}
	if len(totals) < CalorieDays {
		return nil
	}
	for _, kcal := range totals {
		if kcal >= lowCalorieKcal {
			return nil
		}
	}
	return &Finding{
		Type:           LowCalorieIntake,
		Severity:       Medium,
		Message:        "Calorie intake has been very low (<1200 kcal) for 3 days.",
		SuggestedTests: []string{"Consult Dietitian", "Vitamin B12", "Vitamin D"},
	}
}

// CalorieWindow is [today-3, today): the complete days the intake rule reads.
func CalorieWindow(today day.Date) (start, end day.Date) {
	return today.AddDays(-CalorieDays), today
}

// Today is the calendar day of now in its own location.
func Today(now time.Time) day.Date { return day.Of(now) }
