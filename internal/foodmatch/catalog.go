package foodmatch

import (
	"context"
	"strings"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

// SeedFoods is the reference catalog loaded by the seed command. Macros are
// per 100 g; the first portion is the default serving.
func SeedFoods() []nutrition.Food {
	p := func(name string, g float64) nutrition.Portion { return nutrition.Portion{Name: name, WeightG: g} }
	return []nutrition.Food{
		{Name: "White Rice (Cooked)", Calories100: 130, Protein100: 2.7, Carbs100: 28, Fat100: 0.3, Sugar100: 0.1,
			Portions: []nutrition.Portion{p("1 Bowl", 150), p("1 Plate", 250), p("1 Cup", 158)}},
		{Name: "Chapati / Roti", Calories100: 297, Protein100: 10, Carbs100: 57, Fat100: 3, Sugar100: 0,
			Portions: []nutrition.Portion{p("1 Roti (Small)", 30), p("1 Roti (Medium)", 40), p("1 Roti (Large)", 50)}},
		{Name: "Dal (Cooked Lentils)", Calories100: 105, Protein100: 6, Carbs100: 15, Fat100: 2, Sugar100: 0,
			Portions: []nutrition.Portion{p("1 Bowl", 150), p("1 Cup", 200)}},
		{Name: "Curd / Yogurt", Calories100: 60, Protein100: 3.5, Carbs100: 4.7, Fat100: 3.3, Sugar100: 4.7,
			Portions: []nutrition.Portion{p("1 Cup", 200), p("1 Bowl", 150), p("1 Tablespoon", 15)}},
		{Name: "Banana", Calories100: 89, Protein100: 1.1, Carbs100: 22.8, Fat100: 0.3, Sugar100: 12.2,
			Portions: []nutrition.Portion{p("1 Small", 100), p("1 Medium", 120), p("1 Large", 140)}},
		{Name: "Apple", Calories100: 52, Protein100: 0.3, Carbs100: 14, Fat100: 0.2, Sugar100: 10,
			Portions: []nutrition.Portion{p("1 Small", 150), p("1 Medium", 182), p("1 Large", 220)}},
		{Name: "Boiled Egg", Calories100: 155, Protein100: 13, Carbs100: 1.1, Fat100: 11, Sugar100: 1.1,
			Portions: []nutrition.Portion{p("1 Egg", 50), p("2 Eggs", 100)}},
		{Name: "Chicken Breast (Grilled)", Calories100: 165, Protein100: 31, Carbs100: 0, Fat100: 3.6, Sugar100: 0,
			Portions: []nutrition.Portion{p("1 Piece", 100), p("1 Serving", 150)}},
		{Name: "Oats (Cooked)", Calories100: 71, Protein100: 2.5, Carbs100: 12, Fat100: 1.5, Sugar100: 0.5,
			Portions: []nutrition.Portion{p("1 Bowl", 234), p("1 Cup", 234)}},
		{Name: "Milk (Whole)", Calories100: 60, Protein100: 3.2, Carbs100: 4.8, Fat100: 3.3, Sugar100: 5,
			Portions: []nutrition.Portion{p("1 Cup", 244), p("1 Glass", 250)}},
	}
}

// MemoryCatalog is a Catalog over a fixed slice, in insertion order.
type MemoryCatalog struct {
	foods []nutrition.Food
}

// NewMemoryCatalog assigns ids 1..n to foods that have none.
func NewMemoryCatalog(foods []nutrition.Food) *MemoryCatalog {
	c := &MemoryCatalog{foods: make([]nutrition.Food, len(foods))}
	for i, f := range foods {
		if f.ID == 0 {
			f.ID = i + 1
		}
		c.foods[i] = f
	}
	return c
}

func (c *MemoryCatalog) FoodByID(_ context.Context, id int) (*nutrition.Food, error) {
	for i := range c.foods {
		if c.foods[i].ID == id {
			f := c.foods[i]
			return &f, nil
		}
	}
	return nil, nil
}

func (c *MemoryCatalog) FoodByName(_ context.Context, name string) (*nutrition.Food, error) {
	for i := range c.foods {
		if c.foods[i].Name == name {
			f := c.foods[i]
			return &f, nil
		}
	}
	return nil, nil
}

func (c *MemoryCatalog) FirstNameContaining(_ context.Context, term string) (*nutrition.Food, error) {
	term = strings.ToLower(term)
	for i := range c.foods {
		if strings.Contains(strings.ToLower(c.foods[i].Name), term) {
			f := c.foods[i]
			return &f, nil
		}
	}
	return nil, nil
}

func (c *MemoryCatalog) All(_ context.Context) ([]nutrition.Food, error) {
	out := make([]nutrition.Food, len(c.foods))
	copy(out, c.foods)
	return out, nil
}
