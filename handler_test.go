package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/advisor"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/auth"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/foodmatch"
)

func TestAdaptiveAdvice_NoProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{now: func() time.Time { return time.Date(2026, 10, 17, 13, 0, 0, 0, time.UTC) }}
	router := gin.New()
	router.POST("/api/adaptive_advice", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}, h.postAdaptiveAdvice)

	w := doJSON(router, "POST", "/api/adaptive_advice", `{"consumed":500,"burned":100,"water":750}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp advisor.Advice
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Status != advisor.StatusNoProfile || resp.Limit != 2000 || resp.Remaining != 1500 {
		t.Errorf("unexpected advice %+v", resp)
	}

	if w := doJSON(router, "POST", "/api/adaptive_advice", `{"consumed":-1,"burned":0,"water":0}`); w.Code != http.StatusBadRequest {
		t.Errorf("negative consumed: expected 400, got %d", w.Code)
	}
}

func TestListFoods(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{foods: foodmatch.NewMemoryCatalog(foodmatch.SeedFoods())}
	router := gin.New()
	router.GET("/api/foods", h.listFoods)

	w := doJSON(router, "GET", "/api/foods", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var foods []struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Portions []struct {
			Name    string  `json:"name"`
			WeightG float64 `json:"weight_g"`
		} `json:"portions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &foods); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(foods) != 10 {
		t.Fatalf("expected 10 foods, got %d", len(foods))
	}
	if foods[0].Name != "White Rice (Cooked)" || len(foods[0].Portions) != 3 {
		t.Errorf("unexpected first food %+v", foods[0])
	}
}

func TestHealth_NoDB(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	h.registerRoutes(router)

	w := doJSON(router, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRoutes_RequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{jwt: auth.NewJWTService("s", time.Hour)}
	router := gin.New()
	h.registerRoutes(router)

	for _, path := range []string{"/api/profile", "/api/stats", "/api/alerts", "/api/diet-plan", "/auth/me"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestConditionsIn_Unmarshal(t *testing.T) {
	cases := []struct {
		name string
		json string
		want []string
	}{
		{"list", `["High BP","diabetic","Diabetes"]`, []string{"diabetes", "hypertension"}},
		{"joined string", `"diabetes, hypertension"`, []string{"diabetes", "hypertension"}},
		{"empty string", `""`, []string{}},
		{"empty list", `[]`, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ci conditionsIn
			if err := json.Unmarshal([]byte(tc.json), &ci); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(ci) != len(tc.want) {
				t.Fatalf("got %v, want %v", ci, tc.want)
			}
			for i := range ci {
				if ci[i] != tc.want[i] {
					t.Errorf("got %v, want %v", ci, tc.want)
				}
			}
		})
	}

	var ci conditionsIn
	if err := json.Unmarshal([]byte(`42`), &ci); err == nil {
		t.Error("expected error for a number")
	}
}

func TestProfileRequest_Validate(t *testing.T) {
	ok := profileRequest{Age: 30, Gender: "Male", HeightCM: 175, WeightKG: 70, DietPreset: "weight_loss"}
	if msg := ok.validate(); msg != "" {
		t.Fatalf("unexpected error %q", msg)
	}
	if ok.Gender != "male" || ok.Goal != "weight_loss" || ok.ActivityLevel != "sedentary" || ok.DietPreference != "non_veg" {
		t.Errorf("defaults not applied: %+v", ok)
	}
	if ok.MedicalConditions == nil {
		t.Error("conditions should default to an empty list")
	}

	bad := []profileRequest{
		{Age: 0, Gender: "male", HeightCM: 175, WeightKG: 70},
		{Age: 30, Gender: "", HeightCM: 175, WeightKG: 70},
		{Age: 30, Gender: "female", HeightCM: 0, WeightKG: 70},
		{Age: 30, Gender: "female", HeightCM: 160, WeightKG: -1},
	}
	for i, r := range bad {
		if msg := r.validate(); msg == "" {
			t.Errorf("case %d: expected a validation error", i)
		}
	}
}

func TestSummarizeMeals(t *testing.T) {
	got := summarizeMeals("2026-10-17", []mealLog{
		{Calories: 325, ProteinG: 6.75, CarbsG: 70},
		{Calories: 106.5, SugarG: 14.64},
	})
	if got.Calories != 431.5 || got.ProteinG != 6.75 || got.CarbsG != 70 || got.SugarG != 14.64 {
		t.Errorf("unexpected totals %+v", got)
	}

	empty := summarizeMeals("2026-10-17", nil)
	if empty.Items == nil {
		t.Error("items should be an empty list, not null")
	}
}

func TestParseRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/range", func(c *gin.Context) {
		start, end, ok := parseRange(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"start": start, "end": end})
	})

	cases := []struct {
		query  string
		status int
	}{
		{"?start=2026-10-01&end=2026-10-17", http.StatusOK},
		{"?start=2026-10-17&end=2026-10-17", http.StatusOK},
		{"?start=2026-10-01", http.StatusBadRequest},
		{"?start=10/01/2026&end=2026-10-17", http.StatusBadRequest},
		{"?start=2026-10-18&end=2026-10-17", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			w := doJSON(router, "GET", "/range"+tc.query, "")
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}
