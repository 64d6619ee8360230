package generator

import (
	"errors"
	"testing"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/pkg/common"
)

func comp(key string, portion float64) meal.RawComponent {
	ing := catalog.Default().MustGet(key)
	return meal.RawComponent{Key: key, Name: ing.Name("pt"), Category: ing.Category, Portion: portion, Unit: ing.Unit}
}

func TestCheckStructure(t *testing.T) {
	v := NewValidator(catalog.Default(), testEngine(t))

	tests := []struct {
		name       string
		components []meal.RawComponent
		mealType   meal.Type
		mealName   string
		calories   float64
		reason     string
	}{
		{"valid lunch", []meal.RawComponent{comp("chicken_breast", 120), comp("white_rice", 100), comp("black_beans", 80)}, meal.Lunch, "Frango com arroz e feijão", 400, ""},
		{"single component", []meal.RawComponent{comp("chicken_breast", 120)}, meal.Lunch, "Frango", 300, ReasonTooFewComponents},
		{"single dish exempt", []meal.RawComponent{comp("scrambled_eggs", 150)}, meal.Breakfast, "Omelete", 200, ""},
		{"seasoning only", []meal.RawComponent{comp("onion", 20), comp("garlic", 5)}, meal.Lunch, "x", 300, ReasonSeasoningOnly},
		{"butter without companion", []meal.RawComponent{comp("butter", 5), comp("black_coffee", 100), comp("orange", 130)}, meal.Breakfast, "x", 200, ReasonMissingCompanion},
		{"butter with bread", []meal.RawComponent{comp("butter", 5), comp("french_bread", 50), comp("black_coffee", 100)}, meal.Breakfast, "x", 200, ""},
		{"below floor", []meal.RawComponent{comp("lettuce", 30), comp("tomato", 60)}, meal.Lunch, "Salada", 40, ReasonCalorieFloor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.CheckStructure(tt.components, tt.mealType, tt.mealName, tt.calories)
			if tt.reason == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %s", tt.reason)
			}
			if got := ReasonOf(err); got != tt.reason {
				t.Fatalf("reason = %s, want %s", got, tt.reason)
			}
			if !errors.Is(err, common.ErrIncoherentDraft) {
				t.Fatal("structure errors must wrap ErrIncoherentDraft")
			}
		})
	}
}

func TestStripGarnish(t *testing.T) {
	out, removed := StripGarnish([]meal.RawComponent{comp("chicken_breast", 120), comp("onion", 20), comp("parsley", 5)})
	if len(out) != 1 || out[0].Key != "chicken_breast" {
		t.Fatalf("unexpected components %+v", out)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed, got %v", removed)
	}
}

func TestCoherentName(t *testing.T) {
	v := NewValidator(catalog.Default(), testEngine(t))
	components := []meal.RawComponent{comp("beef_steak", 110), comp("white_rice", 100), comp("black_beans", 80)}

	if kw, bad := v.MentionsMismatch("Frango com arroz", components); !bad || kw != "frango" {
		t.Fatalf("expected frango mismatch, got %q %v", kw, bad)
	}
	if _, bad := v.MentionsMismatch("Bife com arroz e feijão", components); bad {
		t.Fatal("matching name flagged as mismatch")
	}

	name, ok := v.CoherentName("Frango com arroz", components, "pt")
	if !ok || name != "Bife grelhado com arroz branco e feijão preto" {
		t.Fatalf("recomposed name = %q %v", name, ok)
	}
	name, ok = v.CoherentName("", components, "en")
	if !ok || name != "Grilled beef steak with white rice and black beans" {
		t.Fatalf("english name = %q", name)
	}

	if _, ok := v.CoherentName("Frango ao azeite", []meal.RawComponent{comp("olive_oil", 5)}, "pt"); ok {
		t.Fatal("mismatched name without title-bearing component should fail")
	}
}
