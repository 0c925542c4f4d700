// Package advisor produces time-of-day aware calorie advice from a live
// snapshot of what the user ate, burned and drank today.
package advisor

import (
	"fmt"
	"time"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

// Snapshot is today's running totals.
type Snapshot struct {
	Consumed int `json:"consumed"`
	Burned   int `json:"burned"`
	WaterML  int `json:"water"`
}

// Advice is the response shape returned to clients.
type Advice struct {
	TimeSlot       string `json:"time_slot"`
	Status         string `json:"status"`
	Color          string `json:"color"`
	Remaining      int    `json:"remaining"`
	Recommendation string `json:"recommendation"`
	Limit          int    `json:"limit"`
}

const (
	StatusOverLimit = "Over Limit"
	StatusTight     = "Tight Budget"
	StatusOnTrack   = "On Track"
	StatusNoProfile = "No Profile"

	noProfileLimit = 2000
)

// TimeSlot buckets the local hour into a meal window.
func TimeSlot(hour int) string {
	switch {
	case hour < 11:
		return "Morning"
	case hour < 15:
		return "Lunch"
	case hour < 19:
		return "Snack"
	}
	return "Dinner"
}

// Advise evaluates the rules in priority order. A nil profile gets the
// generic no-profile response.
func Advise(p *nutrition.Profile, s Snapshot, now time.Time) Advice {
	if p == nil {
		return noProfile(s)
	}

	_, limit := nutrition.Baseline(*p)
	remaining := limit + s.Burned - s.Consumed
	hour := now.Hour()

	a := Advice{
		TimeSlot:  TimeSlot(hour),
		Status:    StatusOnTrack,
		Color:     "green",
		Remaining: remaining,
		Limit:     limit,
	}

	switch {
	case remaining < 0:
		a.Status = StatusOverLimit
		a.Color = "red"
		a.Recommendation = fmt.Sprintf("You have exceeded your target by %d kcal. Try to take a 20 min walk to balance it out.", -remaining)
	case remaining < 200 && hour < 18:
		a.Status = StatusTight
		a.Color = "orange"
		a.Recommendation = "You have very few calories left for the day. Choose low-calorie, high-volume foods like salads or clear soups."
	case a.TimeSlot == "Dinner":
		a.Recommendation = "You have a good calorie buffer. Enjoy a balanced dinner with protein and fiber."
	default:
		a.Recommendation = fmt.Sprintf("You have %d kcal available. Stay consistent!", remaining)
	}

	if s.Burned > 300 {
		a.Recommendation += " Great walking effort! You've earned some extra flexibility."
	}

	// Replaces the text and color only; Status is left as computed above.
	if p.Conditions.Has(nutrition.Diabetes) && float64(s.Consumed) > 0.5*float64(limit) && hour < 12 {
		a.Recommendation = "Caution: You've consumed 50% of your calories early. Watch your glucose levels."
		a.Color = "orange"
	}
	return a
}

func noProfile(s Snapshot) Advice {
	return Advice{
		TimeSlot:       "Day",
		Status:         StatusNoProfile,
		Color:          "gray",
		Remaining:      noProfileLimit - s.Consumed,
		Recommendation: "Please complete your profile for personalized advice.",
		Limit:          noProfileLimit,
	}
}
