package nutrition

// Portion is a named serving size of a food.
type Portion struct {
	ID      int     `json:"id,omitempty" db:"id"`
	Name    string  `json:"name"         db:"portion_name"`
	WeightG float64 `json:"weight_g"     db:"weight_g"`
}

// Food is catalog reference data; macros are per 100 g.
type Food struct {
	ID          int       `json:"id"            db:"id"`
	Name        string    `json:"name"          db:"name"`
	Calories100 float64   `json:"calories_100g" db:"calories_100g"`
	Protein100  float64   `json:"protein_100g"  db:"protein_100g"`
	Carbs100    float64   `json:"carbs_100g"    db:"carbs_100g"`
	Fat100      float64   `json:"fat_100g"      db:"fat_100g"`
	Sugar100    float64   `json:"sugar_100g"    db:"sugar_100g"`
	Portions    []Portion `json:"portions"      db:"-"`
}

// DefaultPortion is the first listed portion, or 100 g when none exist.
func (f Food) DefaultPortion() Portion {
	if len(f.Portions) > 0 {
		return f.Portions[0]
	}
	return Portion{Name: "100g", WeightG: 100}
}

// Macros are absolute amounts for a consumed quantity.
type Macros struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	SugarG   float64 `json:"sugar_g"`
}

// ForPortion scales the per-100g macros to grams consumed.
func (f Food) ForPortion(grams float64) Macros {
	k := grams / 100
	return Macros{
		Calories: f.Calories100 * k,
		ProteinG: f.Protein100 * k,
		CarbsG:   f.Carbs100 * k,
		FatG:     f.Fat100 * k,
		SugarG:   f.Sugar100 * k,
	}
}
