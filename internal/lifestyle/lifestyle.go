// Package lifestyle turns walking and water events into calorie-burn and
// hydration numbers.
package lifestyle

import (
	"fmt"
	"time"
)

const (
	metWalking      = 3.5
	caloriesPerStep = 0.04
	mlPerKG         = 35
	glassML         = 250

	// DefaultWeightKG is used when the user has no profile yet.
	DefaultWeightKG = 70.0
	// DefaultGlassML is the water log amount when none is given.
	DefaultGlassML = glassML
)

// WalkingCalories prefers step count; duration is only used without steps.
func WalkingCalories(steps, durationMin int, weightKG float64) float64 {
	if steps > 0 {
		return float64(steps) * caloriesPerStep
	}
	if durationMin > 0 {
		return metWalking * weightKG * (float64(durationMin) / 60)
	}
	return 0
}

// DailyWaterTarget is 35 ml per kg of body weight.
func DailyWaterTarget(weightKG float64) int {
	return int(weightKG * mlPerKG)
}

// expectedPercent is how much of the day's water should be in by hour.
func expectedPercent(hour int) float64 {
	switch {
	case hour < 10:
		return 15
	case hour < 14:
		return 40
	case hour < 18:
		return 70
	}
	return 90
}

const (
	HydratedMessage = "You are hydrated well!"
	FirstGlassHint  = "Start your day with a glass of water!"
)

// HydrationStatus compares intake with the expected progress for now's
// local hour and says how many glasses behind the user is.
func HydrationStatus(intakeML, targetML int, now time.Time) string {
	var percent float64
	if targetML > 0 {
		percent = float64(intakeML) / float64(targetML) * 100
	}

	expected := expectedPercent(now.Hour())
	if percent < expected {
		behind := int((expected - percent) / 100 * float64(targetML) / glassML)
		if behind >= 1 {
			return fmt.Sprintf("Drink %d more glasses to catch up!", behind)
		}
	}
	return HydratedMessage
}
