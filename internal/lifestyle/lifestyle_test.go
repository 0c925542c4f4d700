package lifestyle

import (
	"testing"
	"time"
)

func at(hour int) time.Time {
	return time.Date(2026, 10, 17, hour, 30, 0, 0, time.Local)
}

func TestWalkingCalories(t *testing.T) {
	cases := []struct {
		name     string
		steps    int
		duration int
		weight   float64
		want     float64
	}{
		{"steps", 1000, 0, 70, 40.0},
		{"duration", 0, 30, 70, 122.5},
		{"steps win over duration", 1000, 30, 70, 40.0},
		{"nothing", 0, 0, 70, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WalkingCalories(tc.steps, tc.duration, tc.weight); got != tc.want {
				t.Errorf("WalkingCalories = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDailyWaterTarget(t *testing.T) {
	if got := DailyWaterTarget(70); got != 2450 {
		t.Errorf("DailyWaterTarget(70) = %d, want 2450", got)
	}
	if got := DailyWaterTarget(63.3); got != 2215 {
		t.Errorf("DailyWaterTarget(63.3) = %d, want 2215 (truncated)", got)
	}
}

// TestHydrationStatus walks the expected-progress curve. Target 2000 ml:
// at 13:30 40% (800 ml) is expected, so 0 ml is 3.2 glasses behind → 3.
func TestHydrationStatus(t *testing.T) {
	cases := []struct {
		name   string
		intake int
		target int
		hour   int
		want   string
	}{
		{"early morning, nothing yet", 0, 2000, 8, "Drink 1 more glasses to catch up!"},
		{"midday behind", 0, 2000, 13, "Drink 3 more glasses to catch up!"},
		{"afternoon behind", 500, 2000, 17, "Drink 3 more glasses to catch up!"},
		{"evening on track", 1800, 2000, 20, HydratedMessage},
		{"less than one glass behind", 700, 2000, 12, HydratedMessage},
		{"zero target", 0, 0, 20, HydratedMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HydrationStatus(tc.intake, tc.target, at(tc.hour)); got != tc.want {
				t.Errorf("HydrationStatus = %q, want %q", got, tc.want)
			}
		})
	}
}
