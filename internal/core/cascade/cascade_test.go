package cascade

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/generator"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/core/normalize"
	"meal-generator/internal/core/rules"
	"meal-generator/internal/core/safety"
	"meal-generator/internal/infrastructure/config"
	"meal-generator/internal/pkg/common"
)

type fakePool struct {
	meals   []meal.RawMeal
	err     error
	queries []meal.PoolQuery
}

func (f *fakePool) Candidates(ctx context.Context, q meal.PoolQuery) ([]meal.RawMeal, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]meal.RawMeal, len(f.meals))
	copy(out, f.meals)
	return out, nil
}

type fakeTemplates struct {
	result *generator.Result
	err    error
	calls  []generator.Request
}

func (f *fakeTemplates) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeDrafts struct {
	meals []meal.RawMeal
	err   error
	calls []meal.DraftRequest
}

func (f *fakeDrafts) Drafts(ctx context.Context, req meal.DraftRequest) ([]meal.RawMeal, error) {
	f.calls = append(f.calls, req)
	return f.meals, f.err
}

type recordingSink struct {
	stats []Stats
}

func (s *recordingSink) Record(ctx context.Context, st Stats) error {
	s.stats = append(s.stats, st)
	return nil
}

type fixture struct {
	cat    *catalog.Catalog
	safety *safety.Store
	rules  *rules.Store
	core   *normalize.Core
}

func newFixture() fixture {
	cat := catalog.Default()
	rs := rules.NewStore(time.Minute, cat, nil, "")
	ss := safety.NewStore(time.Minute, nil, "")
	return fixture{cat: cat, safety: ss, rules: rs, core: normalize.NewCore(cat, rs, ss)}
}

func (f fixture) generator(templates *generator.TemplateSet) *generator.Generator {
	return generator.NewGenerator(f.cat, templates, f.rules, f.safety, config.GeneratorConfig{
		AttemptMultiplier:       20,
		TimeBudget:              5 * time.Second,
		PollEvery:               32,
		DuplicateRetries:        5,
		OptionalSlotProbability: 0.5,
	})
}

func draft(components ...meal.RawComponent) meal.RawMeal {
	return meal.RawMeal{MealType: meal.Lunch, Components: components}
}

func rc(key string, portion float64) meal.RawComponent {
	return meal.RawComponent{Key: key, Portion: portion}
}

func brazilianLunches() []meal.RawMeal {
	return []meal.RawMeal{
		draft(rc("chicken_breast", 120), rc("white_rice", 120), rc("black_beans", 100), rc("lettuce", 30)),
		draft(rc("beef_steak", 110), rc("white_rice", 100), rc("carioca_beans", 100), rc("tomato", 60)),
		draft(rc("boiled_egg", 100), rc("white_rice", 120), rc("black_beans", 100), rc("carrot", 60)),
		draft(rc("tilapia_fillet", 120), rc("white_rice", 120), rc("black_beans", 100), rc("broccoli", 80)),
	}
}

func TestPoolSatisfiesRequest(t *testing.T) {
	f := newFixture()
	pool := &fakePool{meals: brazilianLunches()}
	templates := &fakeTemplates{}
	sink := &recordingSink{}
	o := NewOrchestrator(f.cat, f.safety, f.core, templates, WithPool(pool), WithStats(sink))

	resp, err := o.Generate(context.Background(), Request{
		MealType: meal.Lunch,
		Quantity: 2,
		User:     meal.UserContext{Country: "br", Intolerances: []string{"lactose"}},
		Seed:     9,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(resp.Meals) != 2 || resp.States[StatePool] != 2 {
		t.Fatalf("expected 2 pool meals, got %d %v", len(resp.Meals), resp.States)
	}
	if len(templates.calls) != 0 {
		t.Fatal("templates must not run once the pool satisfied the request")
	}
	for _, m := range resp.Meals {
		if m.Source != meal.SourcePool {
			t.Fatalf("source = %s", m.Source)
		}
	}

	q := pool.queries[0]
	if q.Country != "BR" || q.MinCalories != 195 || q.MaxCalories != 1300 {
		t.Fatalf("unexpected query %+v", q)
	}
	blocked := strings.Join(q.BlockedKeys, ",")
	if !strings.Contains(blocked, "whole_milk") {
		t.Fatalf("lactose block list missing whole_milk: %v", q.BlockedKeys)
	}

	if len(sink.stats) != 1 || sink.stats[0].PoolCount != 2 || sink.stats[0].Produced != 2 {
		t.Fatalf("unexpected stats %+v", sink.stats)
	}
}

func TestTemplatesFillRemainderAfterPool(t *testing.T) {
	f := newFixture()
	pool := &fakePool{meals: brazilianLunches()[:1]}
	o := NewOrchestrator(f.cat, f.safety, f.core, f.generator(generator.DefaultTemplates()), WithPool(pool))

	resp, err := o.Generate(context.Background(), Request{
		MealType: meal.Lunch,
		Quantity: 4,
		User:     meal.UserContext{Country: "BR"},
		Seed:     3,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(resp.Meals) != 4 {
		t.Fatalf("expected 4 meals, got %d", len(resp.Meals))
	}
	if resp.States[StatePool] != 1 || resp.States[StateTemplates] == 0 {
		t.Fatalf("unexpected state counts %v", resp.States)
	}
	hashes := make(map[string]bool)
	for _, m := range resp.Meals {
		if m.Source == meal.SourceEmergency {
			continue
		}
		if hashes[m.Hash] {
			t.Fatalf("duplicate combination %s", m.Hash)
		}
		hashes[m.Hash] = true
	}
}

func TestNoTemplatesAdvancesToAIThenEmergency(t *testing.T) {
	f := newFixture()
	drafts := &fakeDrafts{meals: brazilianLunches()[1:2]}
	o := NewOrchestrator(f.cat, f.safety, f.core, f.generator(generator.NewTemplateSet(nil)), WithDrafts(drafts))

	resp, err := o.Generate(context.Background(), Request{
		MealType: meal.Lunch,
		Quantity: 2,
		User:     meal.UserContext{Country: "BR"},
		Seed:     1,
	})
	if err != nil {
		t.Fatalf("no templates must not surface as an error: %v", err)
	}
	if resp.States[StateAI] != 1 || resp.States[StateEmergency] != 1 {
		t.Fatalf("unexpected state counts %v", resp.States)
	}
	if len(drafts.calls) != 1 || drafts.calls[0].Quantity != 2 {
		t.Fatalf("AI should be asked for the remaining 2 meals: %+v", drafts.calls)
	}
	if resp.Meals[0].Source != meal.SourceAI || resp.Meals[1].Source != meal.SourceEmergency {
		t.Fatalf("unexpected sources %s %s", resp.Meals[0].Source, resp.Meals[1].Source)
	}
	found := false
	for _, w := range resp.Warnings {
		if strings.Contains(w, common.ErrNoTemplates.Error()) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected no-templates warning, got %v", resp.Warnings)
	}
}

func TestFailingCollaboratorsDegradeToEmergency(t *testing.T) {
	f := newFixture()
	o := NewOrchestrator(f.cat, f.safety, f.core, &fakeTemplates{err: common.ErrNoTemplates},
		WithPool(&fakePool{err: errors.New("mongo down")}),
		WithDrafts(&fakeDrafts{err: common.ErrCollaboratorUnavailable}),
	)
	resp, err := o.Generate(context.Background(), Request{MealType: meal.Dinner, Quantity: 3, User: meal.UserContext{Country: "BR"}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(resp.Meals) != 3 || resp.States[StateEmergency] != 3 {
		t.Fatalf("expected 3 emergency meals, got %v", resp.States)
	}
	for _, m := range resp.Meals {
		if !m.Safety.Emergency {
			t.Fatalf("meal %q not marked as emergency", m.Name)
		}
	}
}

func TestBudgetExhaustedAdvancesForRemainder(t *testing.T) {
	f := newFixture()
	partial := &generator.Result{
		Meals:           brazilianLunches()[:1],
		Attempts:        40,
		Rejections:      map[string]int{generator.ReasonDuplicate: 10},
		RejectedHashes:  map[string]string{"abc": generator.ReasonCultural},
		BudgetExhausted: true,
	}
	for i := range partial.Meals {
		partial.Meals[i].Source = meal.SourceTemplate
	}
	sink := &recordingSink{}
	o := NewOrchestrator(f.cat, f.safety, f.core, &fakeTemplates{result: partial}, WithStats(sink))

	resp, err := o.Generate(context.Background(), Request{MealType: meal.Lunch, Quantity: 3, User: meal.UserContext{Country: "BR"}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.States[StateTemplates] != 1 || resp.States[StateEmergency] != 2 {
		t.Fatalf("unexpected state counts %v", resp.States)
	}
	if len(resp.RejectedHashes) != 1 || resp.RejectedHashes[0] != "abc" {
		t.Fatalf("rejected hashes not returned: %v", resp.RejectedHashes)
	}
	st := sink.stats[0]
	if !st.BudgetExhausted || st.Attempts != 40 || st.RejectionRate != 0.25 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestRejectedHashesAreSorted(t *testing.T) {
	f := newFixture()
	rejected := map[string]string{
		"f1": generator.ReasonCultural,
		"0a": generator.ReasonDuplicate,
		"c3": generator.ReasonUnsafe,
		"7e": generator.ReasonCalorieFloor,
		"b2": generator.ReasonCultural,
	}
	want := "0a,7e,b2,c3,f1"
	for i := 0; i < 20; i++ {
		templates := &fakeTemplates{result: &generator.Result{RejectedHashes: rejected}}
		o := NewOrchestrator(f.cat, f.safety, f.core, templates)
		resp, err := o.Generate(context.Background(), Request{MealType: meal.Supper, Quantity: 1, Seed: 5})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if got := strings.Join(resp.RejectedHashes, ","); got != want {
			t.Fatalf("rejected hashes = %s, want %s", got, want)
		}
	}
}

func TestDairyDraftsNeverReturnRawDairy(t *testing.T) {
	f := newFixture()
	dairy := meal.RawMeal{
		MealType:   meal.Breakfast,
		Source:     meal.SourceTemplate,
		Components: []meal.RawComponent{rc("whole_milk", 200), rc("french_bread", 50), rc("minas_cheese", 30)},
	}
	o := NewOrchestrator(f.cat, f.safety, f.core, &fakeTemplates{result: &generator.Result{Meals: []meal.RawMeal{dairy}}},
		WithPool(&fakePool{meals: []meal.RawMeal{dairy}}))

	user := meal.UserContext{Country: "BR", Intolerances: []string{"lactose"}}
	resp, err := o.Generate(context.Background(), Request{MealType: meal.Breakfast, Quantity: 1, User: user, Seed: 5})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(resp.Meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(resp.Meals))
	}
	db, _ := safety.EmbeddedDatabase()
	for _, k := range resp.Meals[0].Keys() {
		if !db.IsSafe(f.cat.MustGet(k), []string{"lactose"}) {
			t.Fatalf("raw dairy %s returned", k)
		}
	}
}

func TestInvalidRequestSurfacesError(t *testing.T) {
	f := newFixture()
	o := NewOrchestrator(f.cat, f.safety, f.core, &fakeTemplates{})
	if _, err := o.Generate(context.Background(), Request{MealType: "brunch", Quantity: 1}); !errors.Is(err, common.ErrUnknownMealType) {
		t.Fatalf("expected ErrUnknownMealType, got %v", err)
	}
	if _, err := o.Generate(context.Background(), Request{MealType: meal.Lunch, Quantity: 0}); !errors.Is(err, common.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}
