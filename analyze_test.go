package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/classifier"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/foodmatch"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

// recordingStore is an ImageStore that remembers which keys are live.
type recordingStore struct {
	uploaded []string
	deleted  []string
	failUp   bool
}

func (s *recordingStore) Upload(_ context.Context, userID int, _ []byte, _ string) (string, error) {
	if s.failUp {
		return "", errors.New("bucket gone")
	}
	key := "img-" + string(rune('a'+len(s.uploaded)))
	s.uploaded = append(s.uploaded, key)
	return key, nil
}

func (s *recordingStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

// setupAnalyzeTest builds a router backed by a mock classifier server and the
// seed catalog. No DB needed: profiles come from user_data only.
func setupAnalyzeTest(t *testing.T) (*gin.Engine, *recordingStore, func(int, interface{})) {
	t.Helper()
	var mockStatus int
	var mockBody interface{}

	mockModel := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(mockStatus)
		json.NewEncoder(w).Encode(mockBody)
	}))
	t.Cleanup(mockModel.Close)

	gin.SetMode(gin.TestMode)
	catalog := foodmatch.NewMemoryCatalog(foodmatch.SeedFoods())
	store := &recordingStore{}
	h := Handler{
		classifier: classifier.NewHTTPClient(mockModel.URL, time.Second),
		images:     store,
		foods:      catalog,
		matcher:    foodmatch.NewLabelMatcher(catalog),
	}
	router := gin.New()
	// Skip auth middleware for tests; set a dummy user_id
	router.POST("/api/analyze", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}, h.analyzeMeal)

	setMock := func(status int, body interface{}) {
		mockStatus = status
		mockBody = body
	}
	return router, store, setMock
}

// doAnalyzeRequest posts a multipart form with an image and optional user_data.
func doAnalyzeRequest(t *testing.T, router *gin.Engine, userData string, withFile bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if withFile {
		fw, err := mw.CreateFormFile("file", "meal.jpg")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte("\xff\xd8\xff\xe0fakejpeg"))
	}
	if userData != "" {
		mw.WriteField("user_data", userData)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeAnalysis(t *testing.T, w *httptest.ResponseRecorder) analysisResult {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp analysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestAnalyze_MatchesAliasLabel(t *testing.T) {
	router, store, setMock := setupAnalyzeTest(t)
	setMock(http.StatusOK, map[string]string{"label": "Granny_Smith"})

	resp := decodeAnalysis(t, doAnalyzeRequest(t, router, `{"diet_preset":"maintenance","medical_conditions":[]}`, true))

	if len(resp.Foods) != 1 {
		t.Fatalf("expected 1 food, got %d (%s)", len(resp.Foods), resp.SummaryMessage)
	}
	f := resp.Foods[0]
	if f.Name != "Apple" {
		t.Errorf("expected Apple, got %q", f.Name)
	}
	if f.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", f.Confidence)
	}
	if f.DefaultPortion.Name != "1 Small" || f.DefaultPortion.WeightG != 150 {
		t.Errorf("unexpected default portion %+v", f.DefaultPortion)
	}
	// Apple: sugar 10 → yellow for a user without conditions
	if f.TrafficLight != nutrition.Yellow {
		t.Errorf("expected yellow, got %s", f.TrafficLight)
	}
	if len(f.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", f.Warnings)
	}
	if !strings.HasPrefix(resp.SummaryMessage, "Identified Apple. ") {
		t.Errorf("unexpected summary %q", resp.SummaryMessage)
	}
	if len(store.uploaded) != 1 || len(store.deleted) != 1 || store.deleted[0] != store.uploaded[0] {
		t.Errorf("image not cleaned up: uploaded=%v deleted=%v", store.uploaded, store.deleted)
	}
}

func TestAnalyze_DiabeticOverride(t *testing.T) {
	router, _, setMock := setupAnalyzeTest(t)
	setMock(http.StatusOK, map[string]string{"label": "banana"})

	resp := decodeAnalysis(t, doAnalyzeRequest(t, router, `{"medical_conditions":["Diabetic"]}`, true))

	if len(resp.Foods) != 1 {
		t.Fatalf("expected 1 food, got %d", len(resp.Foods))
	}
	f := resp.Foods[0]
	if f.TrafficLight != nutrition.Red {
		t.Errorf("expected red for diabetic + banana, got %s", f.TrafficLight)
	}
	if len(f.Warnings) != 1 || f.Warnings[0] != nutrition.WarnHighSugar {
		t.Errorf("expected sugar warning, got %v", f.Warnings)
	}
}

func TestAnalyze_NoMatch(t *testing.T) {
	router, store, setMock := setupAnalyzeTest(t)
	setMock(http.StatusOK, map[string]string{"label": "Cheese_Burger"})

	resp := decodeAnalysis(t, doAnalyzeRequest(t, router, "", true))

	if len(resp.Foods) != 0 {
		t.Errorf("expected no foods, got %d", len(resp.Foods))
	}
	want := "Could not match 'cheese burger' to standard database. Try manual search."
	if resp.SummaryMessage != want {
		t.Errorf("summary = %q, want %q", resp.SummaryMessage, want)
	}
	if len(store.deleted) != 1 {
		t.Errorf("expected the upload to be deleted, got %v", store.deleted)
	}
}

func TestAnalyze_ClassifierError(t *testing.T) {
	router, store, setMock := setupAnalyzeTest(t)
	setMock(http.StatusInternalServerError, map[string]string{"error": "model crashed"})

	resp := decodeAnalysis(t, doAnalyzeRequest(t, router, "", true))

	if len(resp.Foods) != 0 || !strings.HasPrefix(resp.SummaryMessage, "Analysis failed: ") {
		t.Errorf("unexpected result %+v", resp)
	}
	if len(store.deleted) != 1 {
		t.Errorf("expected the upload to be deleted after failure, got %v", store.deleted)
	}
}

func TestAnalyze_UploadError(t *testing.T) {
	router, store, setMock := setupAnalyzeTest(t)
	store.failUp = true
	setMock(http.StatusOK, map[string]string{"label": "banana"})

	resp := decodeAnalysis(t, doAnalyzeRequest(t, router, "", true))

	if len(resp.Foods) != 0 || resp.SummaryMessage != "Analysis failed: could not store image" {
		t.Errorf("unexpected result %+v", resp)
	}
}

func TestAnalyze_BadRequests(t *testing.T) {
	router, _, _ := setupAnalyzeTest(t)

	if w := doAnalyzeRequest(t, router, "", false); w.Code != http.StatusBadRequest {
		t.Errorf("missing file: expected 400, got %d", w.Code)
	}
	if w := doAnalyzeRequest(t, router, "{not json", true); w.Code != http.StatusBadRequest {
		t.Errorf("bad user_data: expected 400, got %d", w.Code)
	}
}

/* ─── check_food ─────────────────────────────────────────────────────── */

func setupCheckFoodTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := Handler{foods: foodmatch.NewMemoryCatalog(foodmatch.SeedFoods())}
	router := gin.New()
	router.POST("/api/check_food", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}, h.checkFood)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckFood(t *testing.T) {
	router := setupCheckFoodTest()

	cases := []struct {
		name      string
		body      string
		status    int
		calories  int
		light     string
		nWarnings int
	}{
		// Rice id 1: 130 kcal/100g, 250 g plate
		{"rice plate", `{"food_id":1,"portion_weight_g":250}`, http.StatusOK, 325, "green", 0},
		// Roti id 2: no sugar and 57 g carbs stay under the diabetic thresholds
		{"roti diabetic", `{"food_id":2,"portion_weight_g":40,"user_profile":{"medical_conditions":"diabetes"}}`, http.StatusOK, 118, "green", 0},
		// Banana id 5 for a diabetic: red plus sugar warning
		{"banana diabetic", `{"food_id":5,"portion_weight_g":120,"user_profile":{"medical_conditions":["type 2 diabetes"]}}`, http.StatusOK, 106, "red", 1},
		// Zero portion falls back to the default serving (1 Egg, 50 g)
		{"egg default portion", `{"food_id":7}`, http.StatusOK, 77, "yellow", 0},
		{"unknown food", `{"food_id":99,"portion_weight_g":100}`, http.StatusNotFound, 0, "", 0},
		{"missing id", `{"portion_weight_g":100}`, http.StatusBadRequest, 0, "", 0},
		{"negative portion", `{"food_id":1,"portion_weight_g":-5}`, http.StatusBadRequest, 0, "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, "POST", "/api/check_food", tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK {
				return
			}
			var resp struct {
				Calories     int      `json:"calories"`
				TrafficLight string   `json:"traffic_light"`
				Warnings     []string `json:"warnings"`
				Context      string   `json:"context_message"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}
			if resp.Calories != tc.calories {
				t.Errorf("calories = %d, want %d", resp.Calories, tc.calories)
			}
			if resp.TrafficLight != tc.light {
				t.Errorf("traffic_light = %s, want %s", resp.TrafficLight, tc.light)
			}
			if len(resp.Warnings) != tc.nWarnings {
				t.Errorf("warnings = %v, want %d", resp.Warnings, tc.nWarnings)
			}
			if resp.Context == "" {
				t.Error("expected a context message")
			}
		})
	}
}
