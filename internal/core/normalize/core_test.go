package normalize

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/core/rules"
	"meal-generator/internal/core/safety"
	"meal-generator/internal/pkg/common"
)

var exactLabel = regexp.MustCompile(`\(\d+(g|ml)\)$`)

func newTestCore() *Core {
	cat := catalog.Default()
	return NewCore(cat, rules.NewStore(time.Minute, cat, nil, ""), safety.NewStore(time.Minute, nil, ""))
}

func rc(key string, portion float64) meal.RawComponent {
	return meal.RawComponent{Key: key, Portion: portion}
}

func keysOf(m *meal.CanonicalMeal) map[string]bool {
	out := make(map[string]bool)
	for _, k := range m.Keys() {
		out[k] = true
	}
	return out
}

func assertCanonical(t *testing.T, m *meal.CanonicalMeal) {
	t.Helper()
	var sum catalog.Macros
	for _, c := range m.Components {
		if !exactLabel.MatchString(c.PortionLabel) {
			t.Errorf("label %q lacks exact quantity", c.PortionLabel)
		}
		sum = sum.Add(c.Macros)
	}
	if math.Abs(sum.Calories-m.Totals.Calories) > 0.05 || math.Abs(sum.Protein-m.Totals.Protein) > 0.05 {
		t.Errorf("totals %+v differ from component sum %+v", m.Totals, sum)
	}
	if m.ID == "" || m.Hash == "" {
		t.Errorf("missing id or hash: %+v", m)
	}
}

func TestMacrosAreRecomputedFromCatalog(t *testing.T) {
	core := newTestCore()
	raw := meal.RawMeal{
		Name:     "Chicken with rice",
		MealType: meal.Lunch,
		Source:   meal.SourceAI,
		Components: []meal.RawComponent{
			{Key: "chicken_breast", Portion: 150, DeclaredCalories: 999},
			rc("white_rice", 100),
			rc("broccoli", 80),
		},
		DeclaredCalories: 2000,
	}
	out := core.ProcessRawMeal(context.Background(), raw, meal.UserContext{Country: "US", Language: "en"})
	if !out.Success {
		t.Fatalf("expected success, errors %v", out.Errors)
	}
	assertCanonical(t, out.Meal)

	chicken := out.Meal.Components[0]
	if chicken.Key != "chicken_breast" || chicken.Macros.Calories != 238.5 {
		t.Fatalf("chicken macros not recomputed: %+v", chicken)
	}
	if out.Meal.Totals.Calories > 600 {
		t.Fatalf("declared totals leaked into output: %v", out.Meal.Totals.Calories)
	}
	if out.Meal.Source != meal.SourceAI {
		t.Fatalf("source not preserved: %s", out.Meal.Source)
	}
}

func TestFractionalPortionsKeepMacrosConsistent(t *testing.T) {
	core := newTestCore()
	cat := catalog.Default()
	raw := meal.RawMeal{
		Name:     "Chicken with rice",
		MealType: meal.Lunch,
		Source:   meal.SourceAI,
		Components: []meal.RawComponent{
			rc("chicken_breast", 150.4),
			rc("white_rice", 100.45),
			rc("broccoli", 80.4),
			rc("broccoli", 0.3),
		},
	}
	out := core.ProcessRawMeal(context.Background(), raw, meal.UserContext{Country: "US", Language: "en"})
	if !out.Success {
		t.Fatalf("expected success, errors %v", out.Errors)
	}
	assertCanonical(t, out.Meal)

	want := map[string]float64{"chicken_breast": 150, "white_rice": 100, "broccoli": 81}
	for _, c := range out.Meal.Components {
		if c.Portion != want[c.Key] {
			t.Errorf("%s portion = %v, want %v", c.Key, c.Portion, want[c.Key])
		}
		if expected := cat.MustGet(c.Key).MacrosFor(c.Portion).Rounded(); c.Macros != expected {
			t.Errorf("%s macros %+v differ from catalog for %v%s: %+v", c.Key, c.Macros, c.Portion, c.Unit, expected)
		}
		if !strings.HasSuffix(c.PortionLabel, fmt.Sprintf("(%.0f%s)", c.Portion, c.Unit)) {
			t.Errorf("%s label %q does not show portion %v", c.Key, c.PortionLabel, c.Portion)
		}
	}
}

func TestBreakfastOrderAndLabels(t *testing.T) {
	core := newTestCore()
	raw := meal.RawMeal{
		Name:       "Pão com ovo",
		MealType:   meal.Breakfast,
		Components: []meal.RawComponent{rc("black_coffee", 50), rc("french_bread", 50), rc("boiled_egg", 100)},
	}
	out := core.ProcessRawMeal(context.Background(), raw, meal.UserContext{Country: "BR"})
	if !out.Success {
		t.Fatalf("expected success, errors %v", out.Errors)
	}
	assertCanonical(t, out.Meal)

	want := []string{"2 ovos cozidos (100g)", "1 pão francês (50g)", "1 xícara (50ml)"}
	for i, c := range out.Meal.Components {
		if c.PortionLabel != want[i] {
			t.Errorf("component %d label = %q, want %q", i, c.PortionLabel, want[i])
		}
	}
}

func TestMainMealPresentationOrder(t *testing.T) {
	core := newTestCore()
	raw := meal.RawMeal{
		MealType: meal.Lunch,
		Components: []meal.RawComponent{
			rc("banana", 90), rc("black_beans", 100), rc("white_rice", 120), rc("chicken_breast", 120), rc("lettuce", 30),
		},
	}
	out := core.ProcessRawMeal(context.Background(), raw, meal.UserContext{Country: "BR"})
	if !out.Success {
		t.Fatalf("expected success, errors %v", out.Errors)
	}
	var got []string
	for _, c := range out.Meal.Components {
		got = append(got, c.Key)
	}
	want := "chicken_breast,white_rice,black_beans,lettuce,banana"
	if strings.Join(got, ",") != want {
		t.Fatalf("order = %v, want %s", got, want)
	}
	if out.Meal.Name == "" {
		t.Fatal("name should be composed from components")
	}
}

func TestLactoseDraftIsSubstituted(t *testing.T) {
	core := newTestCore()
	user := meal.UserContext{Country: "BR", Intolerances: []string{"lactose"}}
	raw := meal.RawMeal{
		Name:       "Pão com queijo e leite",
		MealType:   meal.Breakfast,
		Components: []meal.RawComponent{rc("whole_milk", 200), rc("french_bread", 50), rc("minas_cheese", 30)},
	}
	out := core.ProcessRawMeal(context.Background(), raw, user)
	if !out.Success {
		t.Fatalf("expected success, errors %v", out.Errors)
	}

	db, _ := safety.EmbeddedDatabase()
	for k := range keysOf(out.Meal) {
		if !db.IsSafe(catalog.Default().MustGet(k), []string{"lactose"}) {
			t.Fatalf("unsafe %s kept", k)
		}
	}
	if len(out.Meal.Safety.Substitutions) != 2 {
		t.Fatalf("expected 2 substitutions, got %+v", out.Meal.Safety.Substitutions)
	}
	found := false
	for _, c := range out.Meal.Components {
		if c.Key == "lactose_free_milk" && c.SubstitutedFrom == "whole_milk" && c.Portion == 200 {
			found = true
		}
	}
	if !found {
		t.Fatalf("milk substitution missing: %+v", out.Meal.Components)
	}
}

func TestUnsafeWithoutSubstituteIsRemoved(t *testing.T) {
	core := newTestCore()
	user := meal.UserContext{Country: "US", Intolerances: []string{"fish", "egg"}}
	raw := meal.RawMeal{
		Name:       "Atum com arroz",
		MealType:   meal.Lunch,
		Components: []meal.RawComponent{rc("canned_tuna", 100), rc("white_rice", 200), rc("broccoli", 80)},
	}
	out := core.ProcessRawMeal(context.Background(), raw, user)
	if !out.Success {
		t.Fatalf("expected success, errors %v", out.Errors)
	}
	if keysOf(out.Meal)["canned_tuna"] {
		t.Fatal("tuna should be removed")
	}
	removed := out.Meal.Safety.Removed
	if len(removed) != 1 || removed[0].Key != "canned_tuna" || removed[0].BlockedFor[0] != "fish" {
		t.Fatalf("unexpected removal annotation %+v", removed)
	}
	if strings.Contains(strings.ToLower(out.Meal.Name), "atum") {
		t.Fatalf("name still mentions removed ingredient: %q", out.Meal.Name)
	}
}

func TestUnknownNameViolatingRestrictionIsRecorded(t *testing.T) {
	core := newTestCore()
	user := meal.UserContext{Country: "US", Intolerances: []string{"lactose"}}
	raw := meal.RawMeal{
		Name:     "Chicken with rice",
		MealType: meal.Lunch,
		Components: []meal.RawComponent{
			rc("chicken_breast", 150),
			rc("white_rice", 100),
			{Name: "Coalhada seca", Portion: 80},
			{Name: "unicorn dust", Portion: 10},
		},
	}
	out := core.ProcessRawMeal(context.Background(), raw, user)
	if !out.Success {
		t.Fatalf("expected success, errors %v", out.Errors)
	}
	removed := out.Meal.Safety.Removed
	if len(removed) != 1 || removed[0].Key != "Coalhada seca" || removed[0].BlockedFor[0] != "lactose" {
		t.Fatalf("unexpected removal annotation %+v", removed)
	}
	unsafe := 0
	for _, w := range out.Warnings {
		if strings.HasPrefix(w, common.ErrUnsafeIngredient.Error()) {
			unsafe++
		}
	}
	if unsafe != 1 {
		t.Fatalf("expected one unsafe-ingredient warning, got %v", out.Warnings)
	}
}

func TestFallbackToEmergencyMeal(t *testing.T) {
	core := newTestCore()
	out := core.ProcessOrFallback(context.Background(), meal.RawMeal{
		Name:       "Cebola",
		MealType:   meal.Lunch,
		Components: []meal.RawComponent{rc("onion", 20)},
	}, meal.UserContext{Country: "BR"})

	if out.Success || !out.FallbackUsed {
		t.Fatalf("expected fallback, got %+v", out)
	}
	m := out.Meal
	if m.Source != meal.SourceEmergency || !m.Safety.Emergency {
		t.Fatalf("not an emergency meal: %+v", m)
	}
	keys := keysOf(m)
	if !keys["white_rice"] || !keys["black_beans"] {
		t.Fatalf("BR emergency lunch needs rice and beans, got %v", m.Keys())
	}
	assertCanonical(t, m)
}

func TestBrazilianLunchWithoutLegumeFails(t *testing.T) {
	core := newTestCore()
	out := core.ProcessRawMeal(context.Background(), meal.RawMeal{
		Name:       "Frango com arroz",
		MealType:   meal.Lunch,
		Components: []meal.RawComponent{rc("chicken_breast", 150), rc("white_rice", 150), rc("carrot", 60)},
	}, meal.UserContext{Country: "BR"})
	if out.Success {
		t.Fatal("BR lunch without legume must fail coherence")
	}
}

func TestEmergencyRespectsRestrictions(t *testing.T) {
	core := newTestCore()
	db, _ := safety.EmbeddedDatabase()
	for _, mt := range meal.AllTypes {
		m := core.Emergency(context.Background(), mt, meal.UserContext{Country: "BR", DietaryPreference: "vegan"})
		for k := range keysOf(m) {
			if !db.IsSafe(catalog.Default().MustGet(k), []string{"vegan"}) {
				t.Fatalf("%s emergency meal contains %s", mt, k)
			}
		}
		if len(m.Components) == 0 {
			t.Fatalf("%s emergency meal is empty", mt)
		}
	}
}

func TestResolveByNameCompositeAndDuplicates(t *testing.T) {
	core := newTestCore()
	raw := meal.RawMeal{
		Name:     "frango com arroz e salada",
		MealType: meal.Lunch,
		Components: []meal.RawComponent{
			{Name: "Peito de frango", Portion: 2000},
			{Name: "arroz", Portion: 100},
			{Name: "arroz branco", Portion: 50},
			{Name: "salada mista", Portion: 90},
			{Name: "unicorn dust", Portion: 100},
		},
	}
	out := core.ProcessRawMeal(context.Background(), raw, meal.UserContext{Country: "US"})
	if !out.Success {
		t.Fatalf("expected success, errors %v", out.Errors)
	}
	byKey := make(map[string]meal.Component)
	for _, c := range out.Meal.Components {
		byKey[c.Key] = c
	}
	if c := byKey["chicken_breast"]; c.Portion != 480 {
		t.Errorf("chicken portion should clamp to 480, got %v", c.Portion)
	}
	if c := byKey["white_rice"]; c.Portion != 150 {
		t.Errorf("duplicate rice should merge to 150, got %v", c.Portion)
	}
	if c := byKey["mixed_salad"]; len(c.Parts) != 2 || !strings.HasPrefix(c.PortionLabel, "1 porção (") {
		t.Errorf("composite not resolved: %+v", c)
	}
	if len(out.Warnings) < 3 {
		t.Errorf("expected clamp, duplicate and unknown warnings, got %v", out.Warnings)
	}
}

func TestPortionLabel(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		key     string
		portion float64
		lang    string
		want    string
	}{
		{"white_rice", 100, "pt", "4 colheres de sopa (100g)"},
		{"white_rice", 30, "pt", "1 colher de sopa (30g)"},
		{"white_rice", 100, "en", "4 tablespoons (100g)"},
		{"boiled_egg", 100, "en", "2 boiled eggs (100g)"},
		{"boiled_egg", 75, "pt", "1 1/2 ovos cozidos (75g)"},
		{"black_coffee", 20, "pt", "1/2 xícara (20ml)"},
	}
	for _, tt := range tests {
		if got := PortionLabel(cat.MustGet(tt.key), tt.portion, tt.lang); got != tt.want {
			t.Errorf("PortionLabel(%s, %v, %s) = %q, want %q", tt.key, tt.portion, tt.lang, got, tt.want)
		}
	}
}

func TestHumanizeName(t *testing.T) {
	tests := map[string]string{
		"feijao com arroz":      "Feijão com arroz",
		"pao  frances com cafe": "Pão francês com café",
		"FEIJAO COM ARROZ":      "Feijão com arroz",
		"  Salmão grelhado ":    "Salmão grelhado",
		"":                      "",
	}
	for in, want := range tests {
		if got := humanizeName(in); got != want {
			t.Errorf("humanizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
