package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meal-generator/internal/api/handlers/health"
	"meal-generator/internal/api/handlers/meals"
	"meal-generator/internal/core/cascade"
	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/generator"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/core/normalize"
	"meal-generator/internal/core/rules"
	"meal-generator/internal/core/safety"
	"meal-generator/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App:         config.AppConfig{Debug: true, Version: "test"},
		Request:     config.RequestConfig{MaxBodyBytes: 1 << 20, MaxQuantity: 10},
		DedupWindow: time.Millisecond,
	}
}

func testRouter(t *testing.T, checks map[string]health.Checker) *gin.Engine {
	t.Helper()
	cat := catalog.Default()
	rs := rules.NewStore(time.Minute, cat, nil, "")
	ss := safety.NewStore(time.Minute, nil, "")
	core := normalize.NewCore(cat, rs, ss)
	gen := generator.NewGenerator(cat, generator.DefaultTemplates(), rs, ss, config.GeneratorConfig{
		AttemptMultiplier:       20,
		TimeBudget:              5 * time.Second,
		PollEvery:               32,
		DuplicateRetries:        5,
		OptionalSlotProbability: 0.5,
	})
	orch := cascade.NewOrchestrator(cat, ss, core, gen)
	return SetupRouter(testConfig(), Dependencies{
		Catalog:    cat,
		Generator:  orch,
		Normalizer: core,
		Checks:     checks,
	})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateEndpoint(t *testing.T) {
	r := testRouter(t, nil)
	w := do(r, http.MethodPost, "/api/v1/meals/generate",
		`{"meal_type":"lunch","quantity":3,"user":{"country":"BR","language":"pt"},"seed":7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp meals.GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Meals) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(resp.Meals))
	}
	if resp.RequestID == "" || w.Header().Get("X-Request-ID") != resp.RequestID {
		t.Fatalf("request id mismatch: %q vs %q", resp.RequestID, w.Header().Get("X-Request-ID"))
	}
	for _, m := range resp.Meals {
		if m.Name == "" || len(m.Components) == 0 {
			t.Fatalf("incomplete meal %+v", m)
		}
		for _, c := range m.Components {
			if !strings.Contains(c.PortionLabel, "(") {
				t.Fatalf("label without exact amount: %q", c.PortionLabel)
			}
		}
	}
}

func TestGenerateRejectsInvalidRequests(t *testing.T) {
	r := testRouter(t, nil)
	tests := []struct {
		name string
		body string
	}{
		{"unknown meal type", `{"meal_type":"brunch","quantity":1}`},
		{"negative quantity", `{"meal_type":"lunch","quantity":-2}`},
		{"too many", `{"meal_type":"lunch","quantity":50}`},
		{"missing meal type", `{"quantity":1}`},
		{"malformed", `{"meal_type":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/v1/meals/generate", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status %d: %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), "INVALID_REQUEST") {
				t.Fatalf("unexpected body %s", w.Body.String())
			}
		})
	}
}

func TestPlanEndpoint(t *testing.T) {
	r := testRouter(t, nil)
	w := do(r, http.MethodPost, "/api/v1/meals/plan",
		`{"meal_types":["breakfast","lunch","dinner"],"user":{"country":"BR"},"seed":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp meals.PlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Plan) != 3 {
		t.Fatalf("expected 3 plan entries, got %d", len(resp.Plan))
	}
	want := []meal.Type{meal.Breakfast, meal.Lunch, meal.Dinner}
	for i, e := range resp.Plan {
		if e.MealType != want[i] || len(e.Meals) != 1 {
			t.Fatalf("entry %d: %s with %d meals", i, e.MealType, len(e.Meals))
		}
	}
	if resp.DayTotals.Calories <= 0 {
		t.Fatal("day totals missing")
	}

	w = do(r, http.MethodPost, "/api/v1/meals/plan", `{"meal_types":["tea"]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown meal type: %d", w.Code)
	}
}

func TestNormalizeEndpointFallsBack(t *testing.T) {
	r := testRouter(t, nil)
	w := do(r, http.MethodPost, "/api/v1/meals/normalize",
		`{"meal":{"name":"Cebola","meal_type":"lunch","components":[{"key":"onion","portion":20}]},"user":{"country":"BR"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var out normalize.Outcome
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.FallbackUsed || out.Meal == nil || out.Meal.Source != meal.SourceEmergency {
		t.Fatalf("expected emergency fallback, got %+v", out)
	}

	w = do(r, http.MethodPost, "/api/v1/meals/normalize",
		`{"meal":{"name":"Frango com arroz","meal_type":"lunch","components":[{"name":"peito de frango","portion":150},{"key":"white_rice","portion":120},{"key":"broccoli","portion":80}]},"user":{"country":"US","language":"en"}}`)
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success || out.FallbackUsed || out.Meal.Source != meal.SourceExternal {
		t.Fatalf("expected normalized external meal, got %+v", out)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	r := testRouter(t, nil)
	w := do(r, http.MethodGet, "/api/v1/catalog/ingredients?category=legume&lang=en", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Count       int                    `json:"count"`
		Ingredients []meals.IngredientView `json:"ingredients"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count == 0 || resp.Count != len(resp.Ingredients) {
		t.Fatalf("unexpected count %d", resp.Count)
	}
	for _, ing := range resp.Ingredients {
		if ing.Category != catalog.CategoryLegume {
			t.Fatalf("category filter ignored: %+v", ing)
		}
		if ing.Key == "black_beans" && ing.Name != "black beans" {
			t.Fatalf("english name expected, got %q", ing.Name)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	down := health.CheckerFunc(func(ctx context.Context) error { return errors.New("connection refused") })
	up := health.CheckerFunc(func(ctx context.Context) error { return nil })

	r := testRouter(t, map[string]health.Checker{"redis": up})
	if w := do(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"version":"test"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/ready", ""); w.Code != http.StatusOK {
		t.Fatalf("ready: %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/live", ""); w.Code != http.StatusOK {
		t.Fatalf("live: %d", w.Code)
	}

	r = testRouter(t, map[string]health.Checker{"mongo": down})
	if w := do(r, http.MethodGet, "/ready", ""); w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "connection refused") {
		t.Fatalf("ready with failing dependency: %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("no route: %d", w.Code)
	}
}
