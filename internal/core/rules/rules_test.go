package rules

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	rs, err := EmbeddedRuleSet()
	if err != nil {
		t.Fatalf("embedded rules: %v", err)
	}
	if err := rs.Check(catalog.Default()); err != nil {
		t.Fatalf("embedded rules reference invalid data: %v", err)
	}
	return NewEngine(rs, catalog.Default())
}

func TestValidateForbiddenSets(t *testing.T) {
	e := newTestEngine(t)

	res := e.Validate([]string{"chicken_breast", "pasta", "white_rice"}, "br")
	if res.IsValid {
		t.Fatal("pasta with rice must be rejected in BR")
	}
	if len(res.Violations) != 1 || res.Violations[0].Country != "BR" {
		t.Fatalf("unexpected violations %+v", res.Violations)
	}

	if !e.Validate([]string{"chicken_breast", "pasta", "white_rice"}, "JP").IsValid {
		t.Fatal("country without rules only applies defaults")
	}
	if e.Validate([]string{"whole_milk", "orange_juice", "french_bread"}, "JP").IsValid {
		t.Fatal("default rules apply to every country")
	}
	if !e.Validate([]string{"white_rice", "black_beans", "beef_steak"}, "BR").IsValid {
		t.Fatal("rice and beans is valid")
	}
}

func TestSuggestIsProbabilistic(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(1))

	added := 0
	for i := 0; i < 1000; i++ {
		s := e.Suggest([]string{"white_rice", "chicken_breast"}, "BR", meal.Lunch, rng, nil)
		if len(s) > 0 {
			if s[0] != "black_beans" {
				t.Fatalf("unexpected suggestion %v", s)
			}
			added++
		}
	}
	if added < 600 || added > 800 {
		t.Fatalf("expected roughly 70%% suggestions, got %d/1000", added)
	}

	if s := e.Suggest([]string{"white_rice"}, "BR", meal.Breakfast, rng, nil); len(s) != 0 {
		t.Fatalf("rule limited to main meals applied to breakfast: %v", s)
	}
	deny := func(string) bool { return false }
	for i := 0; i < 50; i++ {
		if s := e.Suggest([]string{"white_rice"}, "BR", meal.Lunch, rng, deny); len(s) != 0 {
			t.Fatalf("disallowed suggestion returned: %v", s)
		}
	}
}

func TestMissingStructure(t *testing.T) {
	e := newTestEngine(t)
	cats := []catalog.Category{catalog.CategoryProtein, catalog.CategoryGrain, catalog.CategoryVegetable}

	missing := e.MissingStructure("BR", meal.Lunch, cats, "Frango com arroz")
	if len(missing) != 1 || missing[0] != catalog.CategoryLegume {
		t.Fatalf("expected legume missing, got %v", missing)
	}
	if m := e.MissingStructure("BR", meal.Lunch, cats, "Risoto de frango"); m != nil {
		t.Fatalf("single dish should be exempt, got %v", m)
	}
	if m := e.MissingStructure("BR", meal.Breakfast, cats, "x"); m != nil {
		t.Fatalf("breakfast has no structure rule, got %v", m)
	}
	if m := e.MissingStructure("US", meal.Lunch, cats, "x"); m != nil {
		t.Fatalf("US has no structure rule, got %v", m)
	}
}

func TestSubstitute(t *testing.T) {
	e := newTestEngine(t)
	tests := []struct {
		key          string
		restrictions []string
		want         string
	}{
		{"whole_milk", []string{"lactose"}, "lactose_free_milk"},
		{"whole_milk", []string{"vegan"}, "soy_milk"},
		{"whole_milk", []string{"gluten"}, "whole_milk"},
		{"french_bread", []string{"gluten", "lactose"}, "gluten_free_bread"},
		{"butter", []string{"lactose"}, "plant_butter"},
		{"white_rice", []string{"lactose"}, "white_rice"},
	}
	for _, tt := range tests {
		if got := e.Substitute(tt.key, tt.restrictions); got != tt.want {
			t.Errorf("Substitute(%s, %v) = %s, want %s", tt.key, tt.restrictions, got, tt.want)
		}
	}

	opts := e.Substitutes("whole_milk", []string{"lactose", "milk_protein"})
	if len(opts) != 2 || opts[0].To != "lactose_free_milk" || opts[1].To != "soy_milk" {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestMergeComposite(t *testing.T) {
	e := newTestEngine(t)
	comps := []meal.RawComponent{
		{Key: "chicken_breast", Portion: 120, Unit: catalog.UnitGram},
		{Key: "lettuce", Portion: 30, Unit: catalog.UnitGram},
		{Key: "white_rice", Portion: 100, Unit: catalog.UnitGram},
		{Key: "tomato", Portion: 60, Unit: catalog.UnitGram},
	}

	out, merged := e.MergeComposite(comps, "pt")
	if !merged {
		t.Fatal("lettuce and tomato should merge")
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 components, got %d", len(out))
	}
	salad := out[1]
	if salad.Key != "mixed_salad" || salad.Name != "salada mista" || salad.Portion != 90 || len(salad.Parts) != 2 {
		t.Fatalf("unexpected composite %+v", salad)
	}
	if out[0].Key != "chicken_breast" || out[2].Key != "white_rice" {
		t.Fatalf("order not preserved: %+v", out)
	}

	again, mergedAgain := e.MergeComposite(out, "pt")
	if mergedAgain || len(again) != 3 {
		t.Fatal("only one composite per meal")
	}

	_, none := e.MergeComposite([]meal.RawComponent{{Key: "lettuce"}, {Key: "carrot"}}, "pt")
	if none {
		t.Fatal("partial trigger set must not merge")
	}
}

func TestResolveComposite(t *testing.T) {
	e := newTestEngine(t)
	if c, ok := e.ResolveComposite("Salada Mista"); !ok || c.Key != "mixed_salad" {
		t.Fatalf("ResolveComposite by name failed: %v %v", c, ok)
	}
	if c, ok := e.ResolveComposite("coffee_with_milk"); !ok || c.Name("en") != "coffee with milk" {
		t.Fatal("ResolveComposite by key failed")
	}
}

type fakeOverrides struct{ payload string }

func (f fakeOverrides) GetJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	if f.payload == "" {
		return false, nil
	}
	return true, json.Unmarshal([]byte(f.payload), v)
}

func TestStoreOverrides(t *testing.T) {
	payload := `{"countries":{"us":{"forbidden":[["pasta","french_bread"]]}},"substitutions":{"oats":{"gluten":"tapioca"}}}`
	s := NewStore(time.Minute, catalog.Default(), fakeOverrides{payload: payload}, "rules")
	e := s.Engine(context.Background())

	if e.Validate([]string{"pasta", "french_bread"}, "US").IsValid {
		t.Fatal("override country rule should apply")
	}
	if got := e.Substitute("oats", []string{"gluten"}); got != "tapioca" {
		t.Fatalf("override substitution = %s", got)
	}
	if e.Validate([]string{"pasta", "white_rice"}, "BR").IsValid {
		t.Fatal("embedded BR rules should remain")
	}
}

func TestStoreRejectsInvalidOverrides(t *testing.T) {
	payload := `{"substitutions":{"oats":{"gluten":"unicorn_flakes"}}}`
	s := NewStore(time.Minute, catalog.Default(), fakeOverrides{payload: payload}, "rules")
	e := s.Engine(context.Background())
	if got := e.Substitute("oats", []string{"gluten"}); got != "oats" {
		t.Fatalf("invalid override should fall back to embedded rules, got %s", got)
	}
}
