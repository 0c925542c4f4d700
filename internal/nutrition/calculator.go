package nutrition

import "fmt"

// ActivityMultipliers maps activity levels to their TDEE multiplier. It is
// also the list of levels the profile endpoint advertises.
var ActivityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

// GoalAdjustments are added to TDEE to get the daily calorie limit.
var GoalAdjustments = map[Goal]float64{
	GoalWeightLoss:  -500,
	GoalWeightGain:  500,
	GoalMaintenance: 0,
	GoalDiabetic:    -200,
	GoalHighProtein: 0,
}

const defaultMultiplier = 1.2

// BMR uses Mifflin-St Jeor, truncated to whole kcal.
func BMR(weightKG, heightCM float64, age int, gender Gender) int {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if ParseGender(string(gender)) == Male {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(bmr)
}

// DailyLimit applies the activity multiplier and goal adjustment to bmr.
// Unknown levels fall back to sedentary and unknown goals to no adjustment.
func DailyLimit(bmr int, level ActivityLevel, goal Goal) int {
	mult, ok := ActivityMultipliers[level]
	if !ok {
		mult = defaultMultiplier
	}
	return int(float64(bmr)*mult + GoalAdjustments[goal])
}

// Baseline returns BMR and the daily limit for p.
func Baseline(p Profile) (bmr, limit int) {
	bmr = BMR(p.WeightKG, p.HeightCM, p.Age, p.Gender)
	return bmr, DailyLimit(bmr, p.ActivityLevel, p.Goal)
}

const (
	WarnHighSugar = "High Sugar Control: This food has high sugar content."
	WarnHighCarbs = "Carb Monitor: High carbohydrate content."
	WarnHighFat   = "Heart Health: High fat content."
)

// MedicalWarnings lists condition-specific warnings for food, diabetes
// checks first. A profile without conditions gets none.
func MedicalWarnings(food Food, p Profile) []string {
	warnings := []string{}
	if len(p.Conditions) == 0 {
		return warnings
	}

	if p.IsDiabetic() {
		if food.Sugar100 > 10 {
			warnings = append(warnings, WarnHighSugar)
		}
		if food.Carbs100 > 60 {
			warnings = append(warnings, WarnHighCarbs)
		}
	}

	// Sodium is not in the catalog, so fat stands in for heart health.
	if p.Conditions.Has(Hypertension) && food.Fat100 > 20 {
		warnings = append(warnings, WarnHighFat)
	}
	return warnings
}

type Light string

const (
	Green  Light = "green"
	Yellow Light = "yellow"
	Red    Light = "red"
)

// Severity orders lights green < yellow < red.
func (l Light) Severity() int {
	switch l {
	case Red:
		return 2
	case Yellow:
		return 1
	}
	return 0
}

// TrafficLight scores sugar and fat density. Medical overrides win over the
// score.
func TrafficLight(food Food, p Profile) Light {
	score := 0
	if food.Sugar100 > 15 {
		score += 2
	} else if food.Sugar100 > 5 {
		score++
	}
	if food.Fat100 > 20 {
		score += 2
	} else if food.Fat100 > 10 {
		score++
	}

	if p.Conditions.Has(Diabetes) && food.Sugar100 > 10 {
		return Red
	}
	if p.Goal == GoalWeightLoss && food.Calories100 > 400 {
		return Red
	}

	switch {
	case score >= 3:
		return Red
	case score >= 1:
		return Yellow
	}
	return Green
}

// Reference burn rates for a ~70 kg adult, kcal per minute.
const (
	walkKcalPerMin = 4
	jogKcalPerMin  = 10
)

// ActivityEquivalent describes calories as walking or jogging time.
func ActivityEquivalent(calories float64) string {
	walkMin := int(calories / walkKcalPerMin)
	jogMin := int(calories / jogKcalPerMin)

	switch {
	case walkMin < 10:
		return "Equivalent to a quick walk around the block."
	case walkMin < 60:
		return fmt.Sprintf("Equivalent to a %d-minute walk.", walkMin)
	}
	return fmt.Sprintf("Equivalent to %d minutes of jogging.", jogMin)
}
