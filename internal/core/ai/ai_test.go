package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meal-generator/internal/core/cache"
	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/infrastructure/config"
	"meal-generator/internal/pkg/common"
)

type fakeCompleter struct {
	responses []string
	prompts   []string
	err       error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	r := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return r, nil
}

func TestClientComplete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer token")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.OpenRouterConfig{APIKey: "secret", BaseURL: srv.URL, Model: "test-model", MaxTokens: 100, Timeout: time.Second})
	out, err := c.Complete(context.Background(), "hi", 0.5)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "hello" {
		t.Fatalf("content = %q", out)
	}
	if got.Model != "test-model" || got.MaxTokens != 100 || len(got.Messages) != 1 || got.Messages[0].Content != "hi" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestClientCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","code":429}}`))
	}))
	defer srv.Close()

	c := NewClient(config.OpenRouterConfig{BaseURL: srv.URL, Timeout: time.Second})
	_, err := c.Complete(context.Background(), "hi", 0)
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestServiceCachesByNormalizedPrompt(t *testing.T) {
	fc := &fakeCompleter{responses: []string{"first"}}
	dc := cache.NewDraftCache(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Hour})
	defer dc.Close()
	svc := NewService(fc, dc, config.AIConfig{EnableCache: true})

	a, err := svc.ProcessRequest(context.Background(), "  lunch\n\tplease ")
	if err != nil {
		t.Fatalf("ProcessRequest: %v", err)
	}
	b, err := svc.ProcessRequest(context.Background(), "lunch please")
	if err != nil {
		t.Fatalf("ProcessRequest: %v", err)
	}
	if a != "first" || b != "first" {
		t.Fatalf("unexpected content %q %q", a, b)
	}
	if len(fc.prompts) != 1 {
		t.Fatalf("second call should hit cache, completer called %d times", len(fc.prompts))
	}
}

func TestServiceWrapsBackendFailure(t *testing.T) {
	svc := NewService(&fakeCompleter{err: errors.New("boom")}, nil, config.AIConfig{})
	if _, err := svc.ProcessRequest(context.Background(), "x"); !errors.Is(err, common.ErrCollaboratorUnavailable) {
		t.Fatalf("expected ErrCollaboratorUnavailable, got %v", err)
	}

	var nilSvc *Service
	if _, err := nilSvc.ProcessRequest(context.Background(), "x"); !errors.Is(err, common.ErrCollaboratorUnavailable) {
		t.Fatalf("nil service should be unavailable, got %v", err)
	}
}

func TestDraftsParseLenientOutput(t *testing.T) {
	fc := &fakeCompleter{responses: []string{"```json\n" + `{meals: [
		{"name": "Frango com arroz e feijão", "components": [
			{"key": "chicken_breast", "portion": "120g", "unit": "g"},
			{"name": "arroz branco", "portion": 100, "unit": "G"},
			{"key": "black_beans", "portion": "80,5"},
		], "total_calories": 999},
		{"name": "Vazio", "components": []},
		{"name": "Omelete", "components": [{"key": "scrambled_eggs", "portion": 150}]},
		{"name": "Extra", "components": [{"key": "banana", "portion": 90}]},
	]}` + "\n```"}}
	g := NewDraftGenerator(NewService(fc, nil, config.AIConfig{}), catalog.Default())

	drafts, err := g.Drafts(context.Background(), meal.DraftRequest{
		MealType: meal.Lunch,
		Quantity: 2,
		User:     meal.UserContext{Country: "br", Intolerances: []string{"lactose"}},
	})
	if err != nil {
		t.Fatalf("Drafts: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	first := drafts[0]
	if first.Source != meal.SourceAI || first.MealType != meal.Lunch || first.DeclaredCalories != 999 {
		t.Fatalf("unexpected draft %+v", first)
	}
	if first.Components[0].Portion != 120 || first.Components[1].Unit != catalog.UnitGram || first.Components[2].Portion != 80.5 {
		t.Fatalf("components not parsed leniently: %+v", first.Components)
	}
	if drafts[1].Name != "Omelete" {
		t.Fatalf("empty draft should be skipped, got %q", drafts[1].Name)
	}

	prompt := fc.prompts[0]
	for _, want := range []string{"2 distinct lunch meals", "country BR", "lactose", "chicken_breast"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt lacks %q", want)
		}
	}
}

func TestDraftsRememberPreviousNames(t *testing.T) {
	fc := &fakeCompleter{responses: []string{`{"meals":[{"name":"Tapioca com ovo","components":[{"key":"tapioca","portion":50}]}]}`}}
	g := NewDraftGenerator(NewService(fc, nil, config.AIConfig{}), catalog.Default())
	req := meal.DraftRequest{MealType: meal.Breakfast, Quantity: 1, User: meal.UserContext{Country: "BR"}, AvoidNames: []string{"Pão com manteiga"}}

	if _, err := g.Drafts(context.Background(), req); err != nil {
		t.Fatalf("Drafts: %v", err)
	}
	if _, err := g.Drafts(context.Background(), req); err != nil {
		t.Fatalf("Drafts: %v", err)
	}
	if !strings.Contains(fc.prompts[0], "Pão com manteiga") {
		t.Fatal("avoid names missing from prompt")
	}
	if !strings.Contains(fc.prompts[1], "Tapioca com ovo") {
		t.Fatal("previous draft name should be avoided on the next request")
	}
}

func TestDraftsRejectUnparseableOutput(t *testing.T) {
	g := NewDraftGenerator(NewService(&fakeCompleter{responses: []string{"sorry, no meals today"}}, nil, config.AIConfig{}), catalog.Default())
	if _, err := g.Drafts(context.Background(), meal.DraftRequest{MealType: meal.Lunch, Quantity: 1}); err == nil {
		t.Fatal("expected parse error")
	}

	var nilGen *DraftGenerator
	if _, err := nilGen.Drafts(context.Background(), meal.DraftRequest{MealType: meal.Lunch, Quantity: 1}); !errors.Is(err, common.ErrCollaboratorUnavailable) {
		t.Fatalf("expected ErrCollaboratorUnavailable, got %v", err)
	}
}
