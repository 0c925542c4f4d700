package nutrition

import (
	"reflect"
	"testing"
)

func TestParseConditions_NormalizesSynonyms(t *testing.T) {
	got := ParseConditions([]string{" BP ", "Diabetic", "hypertension", "", "Asthma", "diabetes"})
	want := Conditions{"asthma", Diabetes, Hypertension}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseConditions = %v, want %v", got, want)
	}
}

func TestParseConditionList(t *testing.T) {
	got := ParseConditionList("high  blood pressure, type 2 diabetes")
	if !got.Has(Hypertension) || !got.Has(Diabetes) || len(got) != 2 {
		t.Errorf("ParseConditionList = %v", got)
	}
	if len(ParseConditionList("")) != 0 {
		t.Error("empty string should give no conditions")
	}
}

func TestFood_ForPortionAndDefault(t *testing.T) {
	f := Food{Calories100: 89, Sugar100: 12.2, Portions: []Portion{{Name: "1 Small", WeightG: 100}, {Name: "1 Large", WeightG: 140}}}
	if p := f.DefaultPortion(); p.Name != "1 Small" {
		t.Errorf("DefaultPortion = %+v", p)
	}
	if m := f.ForPortion(200); m.Calories != 178 {
		t.Errorf("ForPortion(200).Calories = %v, want 178", m.Calories)
	}
	if p := (Food{}).DefaultPortion(); p.WeightG != 100 {
		t.Errorf("default portion without portions = %+v, want 100g", p)
	}
}
