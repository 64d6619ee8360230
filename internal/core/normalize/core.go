package normalize

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/generator"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/core/rules"
	"meal-generator/internal/core/safety"
	"meal-generator/internal/pkg/common"
)

// 份量超過預設值此倍數時截斷
const maxPortionFactor = 4

// Outcome 正規化結果
type Outcome struct {
	Success      bool                `json:"success"`
	Meal         *meal.CanonicalMeal `json:"meal,omitempty"`
	FallbackUsed bool                `json:"fallback_used"`
	Errors       []string            `json:"errors,omitempty"`
	Warnings     []string            `json:"warnings,omitempty"`
}

func (o *Outcome) warn(format string, args ...interface{}) {
	o.Warnings = append(o.Warnings, fmt.Sprintf(format, args...))
}

func (o *Outcome) fail(format string, args ...interface{}) *Outcome {
	o.Errors = append(o.Errors, fmt.Sprintf(format, args...))
	o.Success = false
	o.Meal = nil
	return o
}

// Core 所有來源共用的正規化流程
type Core struct {
	catalog *catalog.Catalog
	rules   generator.RuleSource
	safety  generator.SafetySource
}

// NewCore 創建正規化核心
func NewCore(cat *catalog.Catalog, rs generator.RuleSource, ss generator.SafetySource) *Core {
	return &Core{catalog: cat, rules: rs, safety: ss}
}

// item 解析後的成分；組合成分以 parts 表示
type item struct {
	ing             *catalog.Ingredient
	composite       *rules.Composite
	parts           []*item
	portion         float64
	substitutedFrom string
}

func (it *item) key() string {
	if it.composite != nil {
		return it.composite.Key
	}
	return it.ing.Key
}

func (it *item) keys() []string {
	if len(it.parts) == 0 {
		return []string{it.ing.Key}
	}
	var out []string
	for _, p := range it.parts {
		out = append(out, p.keys()...)
	}
	return out
}

func (it *item) category() catalog.Category {
	if it.composite != nil {
		return it.composite.Category
	}
	return it.ing.Category
}

func (it *item) macros() catalog.Macros {
	if len(it.parts) == 0 {
		return it.ing.MacrosFor(it.portion)
	}
	var m catalog.Macros
	for _, p := range it.parts {
		m = m.Add(p.macros())
	}
	return m
}

func (it *item) totalPortion() float64 {
	if len(it.parts) == 0 {
		return it.portion
	}
	total := 0.0
	for _, p := range it.parts {
		total += p.totalPortion()
	}
	return total
}

// run 一次正規化的唯讀快照
type run struct {
	engine       *rules.Engine
	db           *safety.Database
	validator    *generator.Validator
	user         meal.UserContext
	lang         string
	restrictions []string
	excluded     map[string]struct{}
	// 無法對應目錄但名稱違反限制而丟棄的成分
	unsafeNames []meal.Removal
}

func (c *Core) newRun(ctx context.Context, user meal.UserContext) *run {
	engine := c.rules.Engine(ctx)
	db := c.safety.Database(ctx)
	excluded := make(map[string]struct{})
	for _, k := range c.catalog.ExpandExclusions(user.Exclusions) {
		excluded[k] = struct{}{}
	}
	return &run{
		engine:       engine,
		db:           db,
		validator:    generator.NewValidator(c.catalog, engine),
		user:         user,
		lang:         user.Lang(),
		restrictions: db.Normalize(user.Restrictions()),
		excluded:     excluded,
	}
}

// ProcessRawMeal 將任一來源的草稿轉為標準餐點；失敗時 Success 為 false
func (c *Core) ProcessRawMeal(ctx context.Context, raw meal.RawMeal, user meal.UserContext) *Outcome {
	out := &Outcome{}
	if _, ok := meal.ParseType(string(raw.MealType)); !ok {
		return out.fail("%v: %q", common.ErrUnknownMealType, raw.MealType)
	}
	r := c.newRun(ctx, user)

	// 1. 解析成分並以目錄資料重新計算
	items := c.resolveAll(r, raw.Components, out)

	// 2. 安全檢查：替換或移除
	annotation := meal.SafetyAnnotation{Restrictions: r.restrictions, Removed: r.unsafeNames}
	items = c.enforceSafety(r, items, &annotation, out)
	if len(items) == 0 {
		return out.fail("%v: no components left", common.ErrIncoherentDraft)
	}

	// 組合成分命名（同一餐只合併一次）
	items = c.mergeComposite(r, items)

	// 3. 一致性檢查
	name, err := c.checkCoherence(r, items, raw, out)
	if err != nil {
		return out.fail("%v", err)
	}

	// 4. 呈現順序
	sortForPresentation(items, raw.MealType)

	// 5-7. 標籤、名稱、總計
	cm := c.assemble(r, items, raw.MealType, name, raw.Source)
	cm.Safety = annotation
	cm.Warnings = out.Warnings

	out.Success = true
	out.Meal = cm
	if len(out.Warnings) > 0 {
		common.LogDebug("正規化完成（含警告）",
			zap.String("meal", cm.Name),
			zap.String("source", string(raw.Source)),
			zap.Strings("warnings", out.Warnings),
		)
	}
	return out
}

// ProcessOrFallback 正規化失敗時改用緊急餐點
func (c *Core) ProcessOrFallback(ctx context.Context, raw meal.RawMeal, user meal.UserContext) *Outcome {
	out := c.ProcessRawMeal(ctx, raw, user)
	if out.Success {
		return out
	}
	common.LogWarn("正規化失敗，使用緊急餐點",
		zap.String("meal_type", string(raw.MealType)),
		zap.String("source", string(raw.Source)),
		zap.Strings("errors", out.Errors),
	)
	mt := raw.MealType
	if _, ok := meal.ParseType(string(mt)); !ok {
		mt = meal.Lunch
	}
	out.Meal = c.Emergency(ctx, mt, user)
	out.FallbackUsed = true
	return out
}

// resolveAll 依 key、名稱或組合名稱解析；無法解析的成分丟棄並警告
func (c *Core) resolveAll(r *run, raw []meal.RawComponent, out *Outcome) []*item {
	var items []*item
	index := make(map[string]*item)
	for _, rc := range raw {
		for _, it := range c.resolve(r, rc, out) {
			// 重複的單一成分合併份量
			if it.composite == nil {
				if prev, ok := index[it.ing.Key]; ok {
					prev.portion = math.Round(c.clamp(prev.ing, prev.portion+it.portion, out))
					out.warn("duplicate %s merged", it.ing.Key)
					continue
				}
				index[it.ing.Key] = it
			}
			items = append(items, it)
		}
	}
	return items
}

func (c *Core) resolve(r *run, rc meal.RawComponent, out *Outcome) []*item {
	label := rc.Key
	if label == "" {
		label = rc.Name
	}

	if len(rc.Parts) > 0 {
		var parts []*item
		for _, p := range rc.Parts {
			parts = append(parts, c.resolve(r, p, out)...)
		}
		comp, known := r.engine.Composite(rc.Key)
		switch {
		case len(parts) == 0:
			out.warn("composite %s has no known parts, dropped", label)
			return nil
		case !known && len(parts) > 1:
			out.warn("unknown composite %s flattened", label)
			return parts
		case !known || len(parts) == 1:
			return parts
		}
		return []*item{{composite: comp, parts: parts}}
	}

	if rc.Key != "" {
		if ing, ok := c.catalog.Get(rc.Key); ok {
			return []*item{c.leaf(ing, rc.Portion, out)}
		}
	}
	for _, text := range []string{rc.Key, rc.Name} {
		if text == "" {
			continue
		}
		if comp, ok := r.engine.ResolveComposite(text); ok {
			return []*item{c.expandComposite(comp, rc.Portion)}
		}
		if ing, ok := c.catalog.Resolve(text); ok {
			return []*item{c.leaf(ing, rc.Portion, out)}
		}
	}
	if blocked := r.db.BlockedForName(label, r.restrictions); len(blocked) > 0 {
		r.unsafeNames = append(r.unsafeNames, meal.Removal{Key: label, BlockedFor: blocked})
		out.warn("%v: unknown ingredient %q blocked for %v, dropped", common.ErrUnsafeIngredient, label, blocked)
		return nil
	}
	out.warn("unknown ingredient %q dropped", label)
	return nil
}

func (c *Core) leaf(ing *catalog.Ingredient, portion float64, out *Outcome) *item {
	if portion <= 0 || math.IsNaN(portion) {
		out.warn("%s: missing portion, using default %.0f%s", ing.Key, ing.DefaultPortion, ing.Unit)
		portion = ing.DefaultPortion
	}
	// 份量只在這裡取整，營養素、標籤與份量都來自同一個數字
	portion = math.Max(1, math.Round(c.clamp(ing, portion, out)))
	return &item{ing: ing, portion: portion}
}

func (c *Core) clamp(ing *catalog.Ingredient, portion float64, out *Outcome) float64 {
	if limit := ing.DefaultPortion * maxPortionFactor; portion > limit {
		out.warn("%s: portion %.0f%s clamped to %.0f%s", ing.Key, portion, ing.Unit, limit, ing.Unit)
		return limit
	}
	return portion
}

// expandComposite 以名稱提到的組合成分，依預設份量比例分配總份量
func (c *Core) expandComposite(comp *rules.Composite, portion float64) *item {
	it := &item{composite: comp}
	base := 0.0
	for _, k := range comp.Triggers {
		base += c.catalog.MustGet(k).DefaultPortion
	}
	scale := 1.0
	if portion > 0 && base > 0 {
		scale = math.Min(portion/base, maxPortionFactor)
	}
	for _, k := range comp.Triggers {
		ing := c.catalog.MustGet(k)
		it.parts = append(it.parts, &item{ing: ing, portion: math.Round(ing.DefaultPortion * scale)})
	}
	return it
}

// enforceSafety 不安全的成分先找替代，找不到就移除；組合成分有變動時拆開
func (c *Core) enforceSafety(r *run, items []*item, ann *meal.SafetyAnnotation, out *Outcome) []*item {
	blocked := make(map[string]struct{})
	var result []*item

	var check func(it *item) *item
	check = func(it *item) *item {
		if _, ex := r.excluded[it.ing.Key]; ex {
			out.warn("%s removed: excluded by user", it.ing.Key)
			return nil
		}
		reasons := r.db.BlockedFor(it.ing, r.restrictions)
		if len(reasons) == 0 {
			return it
		}
		for _, reason := range reasons {
			blocked[reason] = struct{}{}
		}
		for _, opt := range r.engine.Substitutes(it.ing.Key, r.restrictions) {
			sub, ok := c.catalog.Get(opt.To)
			if !ok || !r.db.IsSafe(sub, r.restrictions) {
				continue
			}
			if _, ex := r.excluded[sub.Key]; ex {
				continue
			}
			portion := it.portion
			if sub.Unit != it.ing.Unit {
				portion = sub.DefaultPortion
			}
			ann.Substitutions = append(ann.Substitutions, meal.Substitution{From: it.ing.Key, To: sub.Key, Restriction: opt.Restriction})
			out.warn("%s replaced by %s (%s)", it.ing.Key, sub.Key, opt.Restriction)
			return &item{ing: sub, portion: portion, substitutedFrom: it.ing.Key}
		}
		ann.Removed = append(ann.Removed, meal.Removal{Key: it.ing.Key, BlockedFor: reasons})
		out.warn("%s removed: unsafe for %s", it.ing.Key, strings.Join(reasons, ", "))
		return nil
	}

	for _, it := range items {
		if it.composite == nil {
			if safe := check(it); safe != nil {
				result = append(result, safe)
			}
			continue
		}
		changed := false
		var parts []*item
		for _, p := range it.parts {
			safe := check(p)
			if safe != p {
				changed = true
			}
			if safe != nil {
				parts = append(parts, safe)
			}
		}
		if !changed {
			result = append(result, it)
			continue
		}
		result = append(result, parts...)
	}

	for reason := range blocked {
		ann.BlockedFor = append(ann.BlockedFor, reason)
	}
	sort.Strings(ann.BlockedFor)
	return result
}

// mergeComposite 尚未有組合成分時套用第一個命中的組合規則
func (c *Core) mergeComposite(r *run, items []*item) []*item {
	keys := make([]string, 0, len(items))
	for _, it := range items {
		if it.composite != nil {
			return items
		}
		keys = append(keys, it.ing.Key)
	}
	comp, ok := r.engine.MatchComposite(keys)
	if !ok {
		return items
	}
	trigger := make(map[string]struct{}, len(comp.Triggers))
	for _, k := range comp.Triggers {
		trigger[k] = struct{}{}
	}
	merged := &item{composite: comp}
	out := make([]*item, 0, len(items))
	for _, it := range items {
		if _, ok := trigger[it.ing.Key]; !ok {
			out = append(out, it)
			continue
		}
		delete(trigger, it.ing.Key)
		if len(merged.parts) == 0 {
			out = append(out, merged)
		}
		merged.parts = append(merged.parts, it)
	}
	return out
}

// toRaw 交給結構驗證器使用的表示
func toRaw(it *item, lang string) meal.RawComponent {
	rc := meal.RawComponent{
		Key:      it.key(),
		Category: it.category(),
		Portion:  it.totalPortion(),
	}
	if it.composite != nil {
		rc.Name = it.composite.Name(lang)
		for _, p := range it.parts {
			rc.Parts = append(rc.Parts, toRaw(p, lang))
		}
		if len(it.parts) > 0 {
			rc.Unit = it.parts[0].ing.Unit
		}
		return rc
	}
	rc.Name = it.ing.Name(lang)
	rc.Unit = it.ing.Unit
	return rc
}

// checkCoherence 跨來源的合理性檢查，回傳最終名稱
func (c *Core) checkCoherence(r *run, items []*item, raw meal.RawMeal, out *Outcome) (string, error) {
	comps := make([]meal.RawComponent, 0, len(items))
	for _, it := range items {
		comps = append(comps, toRaw(it, r.lang))
	}

	// 裝飾與調味保留在輸出，但不計入結構與名稱
	stripped, _ := generator.StripGarnish(comps)

	hasMain := false
	for _, it := range items {
		for _, k := range it.keys() {
			ing := c.catalog.MustGet(k)
			if ing.Role == catalog.RoleMain && ing.Category != catalog.CategoryBeverage {
				hasMain = true
			}
		}
	}
	if !hasMain {
		return "", fmt.Errorf("%w: no main component", common.ErrIncoherentDraft)
	}

	var keys []string
	for _, it := range items {
		keys = append(keys, it.keys()...)
	}
	country := r.user.CountryCode()
	if res := r.engine.Validate(keys, country); !res.IsValid {
		return "", fmt.Errorf("%w: cultural rule %v", common.ErrIncoherentDraft, res.Violations[0].Set)
	}

	name := humanizeName(raw.Name)
	calories := 0.0
	for _, it := range items {
		calories += it.macros().Calories
	}
	if err := r.validator.CheckStructure(stripped, raw.MealType, name, calories); err != nil {
		return "", err
	}
	if missing := r.engine.MissingStructure(country, raw.MealType, r.validator.Categories(stripped), name); len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %v", common.ErrIncoherentDraft, missing)
	}

	coherent, ok := r.validator.CoherentName(name, stripped, r.lang)
	if !ok {
		return "", fmt.Errorf("%w: no coherent name", common.ErrIncoherentDraft)
	}
	if coherent != name && name != "" {
		out.warn("name %q regenerated as %q", name, coherent)
	}
	return coherent, nil
}

// assemble 組出標準餐點；總計等於各成分營養素相加
func (c *Core) assemble(r *run, items []*item, mt meal.Type, name string, source meal.Source) *meal.CanonicalMeal {
	cm := &meal.CanonicalMeal{
		ID:       common.GenerateUUID(),
		Name:     name,
		MealType: mt,
		Source:   source,
	}
	var keys []string
	for _, it := range items {
		comp := meal.Component{
			Key:             it.key(),
			Category:        it.category(),
			Portion:         math.Round(it.totalPortion()),
			Macros:          it.macros().Rounded(),
			SubstitutedFrom: it.substitutedFrom,
		}
		if it.composite != nil {
			comp.Name = generator.Capitalize(it.composite.Name(r.lang))
			comp.Unit = it.parts[0].ing.Unit
			comp.PortionLabel = compositeLabel(comp.Portion, comp.Unit, r.lang)
			for _, p := range it.parts {
				comp.Parts = append(comp.Parts, p.ing.Key)
			}
		} else {
			comp.Name = generator.Capitalize(it.ing.Name(r.lang))
			comp.Unit = it.ing.Unit
			comp.PortionLabel = PortionLabel(it.ing, comp.Portion, r.lang)
		}
		cm.Totals = cm.Totals.Add(comp.Macros)
		cm.Components = append(cm.Components, comp)
		keys = append(keys, it.keys()...)
	}
	cm.Totals = cm.Totals.Rounded()
	cm.Hash = meal.CombinationHash(keys)
	return cm
}
