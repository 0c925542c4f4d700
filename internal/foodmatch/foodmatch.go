// Package foodmatch maps noisy classifier labels onto catalog foods.
package foodmatch

import (
	"context"
	"strings"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

// Catalog is read access to the food reference data. Lookups that find
// nothing return (nil, nil).
type Catalog interface {
	FoodByID(ctx context.Context, id int) (*nutrition.Food, error)
	FoodByName(ctx context.Context, name string) (*nutrition.Food, error)
	// FirstNameContaining does a case-insensitive substring match on name.
	FirstNameContaining(ctx context.Context, term string) (*nutrition.Food, error)
	All(ctx context.Context) ([]nutrition.Food, error)
}

// Matcher resolves a classifier label to a food, or nil for no match.
type Matcher interface {
	Match(ctx context.Context, label string) (*nutrition.Food, error)
}

// NormalizeLabel lower-cases a label and turns underscores into spaces,
// e.g. "Granny_Smith" → "granny smith".
func NormalizeLabel(label string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(label), "_", " "))
}

// DefaultAliases maps labels the image model emits to catalog names.
var DefaultAliases = map[string]string{
	"granny smith":  "Apple",
	"delicious":     "Apple",
	"custard apple": "Apple",
	"banana":        "Banana",
	"hen":           "Chicken Breast (Grilled)",
	"cock":          "Chicken Breast (Grilled)",
	"dough":         "Chapati / Roti",
	"bucket":        "Dal (Cooked Lentils)",
}

// Fallback maps a keyword found anywhere in the label to a catalog name.
type Fallback struct {
	Keyword string
	Food    string
}

// DefaultFallbacks are tried in order when the substring search misses.
var DefaultFallbacks = []Fallback{
	{"fruit", "Apple"},
	{"bread", "Chapati / Roti"},
	{"rice", "White Rice (Cooked)"},
}

// LabelMatcher resolves a label through the alias table, a substring search
// on the first word of the search term, then the keyword fallbacks.
type LabelMatcher struct {
	Catalog   Catalog
	Aliases   map[string]string
	Fallbacks []Fallback
}

// NewLabelMatcher uses the default alias and fallback tables.
func NewLabelMatcher(c Catalog) *LabelMatcher {
	return &LabelMatcher{Catalog: c, Aliases: DefaultAliases, Fallbacks: DefaultFallbacks}
}

func (m *LabelMatcher) Match(ctx context.Context, label string) (*nutrition.Food, error) {
	label = NormalizeLabel(label)
	if label == "" {
		return nil, nil
	}

	term := label
	if alias, ok := m.Aliases[label]; ok {
		term = alias
	}
	first := strings.ToLower(strings.Fields(term)[0])
	food, err := m.Catalog.FirstNameContaining(ctx, first)
	if err != nil || food != nil {
		return food, err
	}

	for _, fb := range m.Fallbacks {
		if strings.Contains(label, fb.Keyword) {
			return m.Catalog.FoodByName(ctx, fb.Food)
		}
	}
	return nil, nil
}
