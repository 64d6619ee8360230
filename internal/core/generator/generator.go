package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/core/rules"
	"meal-generator/internal/core/safety"
	"meal-generator/internal/infrastructure/config"
	"meal-generator/internal/pkg/common"
)

// RuleSource 取得目前的規則引擎快照
type RuleSource interface {
	Engine(ctx context.Context) *rules.Engine
}

// SafetySource 取得目前的安全資料庫快照
type SafetySource interface {
	Database(ctx context.Context) *safety.Database
}

// 份量縮放範圍
const (
	minPortionScale = 0.6
	maxPortionScale = 1.6
)

// Generator 模板搜尋生成器；本身無狀態，可被多個請求同時使用
type Generator struct {
	catalog   *catalog.Catalog
	templates *TemplateSet
	rules     RuleSource
	safety    SafetySource
	cfg       config.GeneratorConfig
	now       func() time.Time
}

// NewGenerator 創建生成器
func NewGenerator(cat *catalog.Catalog, templates *TemplateSet, rs RuleSource, ss SafetySource, cfg config.GeneratorConfig) *Generator {
	if cfg.AttemptMultiplier < 1 {
		cfg.AttemptMultiplier = 1
	}
	if cfg.PollEvery < 1 {
		cfg.PollEvery = 1
	}
	if cfg.DuplicateRetries < 0 {
		cfg.DuplicateRetries = 0
	}
	return &Generator{
		catalog:   cat,
		templates: templates,
		rules:     rs,
		safety:    ss,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Request 一次生成請求
type Request struct {
	MealType           meal.Type
	Quantity           int
	User               meal.UserContext
	TargetCalories     float64  // <= 0 時使用餐別預設值
	PreviouslyRejected []string // 呼叫端記住的已拒絕組合雜湊
	Avoid              []string // 其他來源已產出的組合雜湊
	Seed               int64    // 0 表示以時間為種子
}

// Result 生成結果；預算用盡時 Meals 可能少於請求數量
type Result struct {
	Meals           []meal.RawMeal
	Attempts        int
	Rejections      map[string]int    // 原因 -> 次數
	RejectedHashes  map[string]string // 組合雜湊 -> 原因
	BudgetExhausted bool
	Elapsed         time.Duration
}

// RejectionRate 被拒絕的嘗試比例
func (r *Result) RejectionRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	total := 0
	for _, n := range r.Rejections {
		total += n
	}
	return float64(total) / float64(r.Attempts)
}

// preparedTemplate 依本次請求過濾後的模板
type preparedTemplate struct {
	tpl   *Template
	slots [][]*catalog.Ingredient
}

// search 一次請求的搜尋狀態，只存在於 Generate 呼叫內
type search struct {
	req          Request
	engine       *rules.Engine
	db           *safety.Database
	validator    *Validator
	rng          *rand.Rand
	country      string
	lang         string
	restrictions []string
	excluded     map[string]struct{}
	weights      CarbWeights
	target       float64
	seen         map[string]struct{}
	rejected     map[string]string
}

// Generate 以拒絕取樣產生最多 Quantity 份不重複的候選餐點
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if _, ok := meal.ParseType(string(req.MealType)); !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownMealType, req.MealType)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidQuantity, req.Quantity)
	}

	country := req.User.CountryCode()
	templates := g.templates.For(req.MealType, country)
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w %s (country %s)", common.ErrNoTemplates, req.MealType, country)
	}

	start := g.now()
	s := g.newSearch(ctx, req, country)
	result := &Result{
		Rejections:     make(map[string]int),
		RejectedHashes: make(map[string]string),
	}

	// 1. 依排除清單與安全限制過濾模板
	prepared, maxComplexity := g.prepare(s, templates)
	if len(prepared) == 0 {
		result.Elapsed = g.now().Sub(start)
		common.LogWarn("所有模板在過濾後都沒有可用成分",
			zap.String("meal_type", string(req.MealType)),
			zap.String("country", country),
			zap.Strings("restrictions", s.restrictions),
			zap.Int("excluded", len(s.excluded)),
		)
		return result, nil
	}

	// 2. 嘗試次數與時間預算
	maxAttempts := req.Quantity * g.cfg.AttemptMultiplier * maxComplexity
	deadline := start.Add(g.cfg.TimeBudget)

	for result.Attempts < maxAttempts && len(result.Meals) < req.Quantity {
		if result.Attempts > 0 && result.Attempts%g.cfg.PollEvery == 0 {
			if g.cfg.TimeBudget > 0 && !g.now().Before(deadline) {
				result.BudgetExhausted = true
				break
			}
		}
		result.Attempts++

		pt := prepared[s.rng.Intn(len(prepared))]
		draft, hash, reason := g.attempt(s, pt)
		if reason != "" {
			result.Rejections[reason]++
			if hash != "" && reason != ReasonDuplicate && reason != ReasonPreviouslyRejected {
				s.rejected[hash] = reason
				result.RejectedHashes[hash] = reason
			}
			continue
		}
		s.seen[hash] = struct{}{}
		result.Meals = append(result.Meals, draft)
	}

	if len(result.Meals) < req.Quantity && result.Attempts >= maxAttempts {
		result.BudgetExhausted = true
	}
	result.Elapsed = g.now().Sub(start)

	fields := []zap.Field{
		zap.String("meal_type", string(req.MealType)),
		zap.String("country", country),
		zap.Int("requested", req.Quantity),
		zap.Int("produced", len(result.Meals)),
		zap.Int("attempts", result.Attempts),
		zap.Float64("rejection_rate", result.RejectionRate()),
		zap.Any("rejections", result.Rejections),
		zap.Duration("elapsed", result.Elapsed),
	}
	if result.BudgetExhausted {
		common.LogWarn("模板搜尋預算用盡，回傳部分結果", append(fields, zap.Error(common.ErrBudgetExhausted))...)
	} else {
		common.LogDebug("模板搜尋完成", fields...)
	}
	return result, nil
}

func (g *Generator) newSearch(ctx context.Context, req Request, country string) *search {
	engine := g.rules.Engine(ctx)
	db := g.safety.Database(ctx)

	seed := req.Seed
	if seed == 0 {
		seed = g.now().UnixNano()
	}

	excluded := make(map[string]struct{})
	for _, k := range g.catalog.ExpandExclusions(req.User.Exclusions) {
		excluded[k] = struct{}{}
	}

	target := req.TargetCalories
	if target <= 0 {
		target = req.MealType.DefaultTargetCalories()
	}

	s := &search{
		req:          req,
		engine:       engine,
		db:           db,
		validator:    NewValidator(g.catalog, engine),
		rng:          rand.New(rand.NewSource(seed)),
		country:      country,
		lang:         req.User.Lang(),
		restrictions: db.Normalize(req.User.Restrictions()),
		excluded:     excluded,
		weights:      CarbWeightsFor(req.User.Profile),
		target:       target,
		seen:         make(map[string]struct{}, len(req.Avoid)),
		rejected:     make(map[string]string, len(req.PreviouslyRejected)),
	}
	for _, h := range req.Avoid {
		s.seen[h] = struct{}{}
	}
	for _, h := range req.PreviouslyRejected {
		s.rejected[h] = ReasonPreviouslyRejected
	}
	return s
}

// usable 未被排除，且本身安全或有安全的替代品
func (g *Generator) usable(s *search, ing *catalog.Ingredient) bool {
	if _, ok := s.excluded[ing.Key]; ok {
		return false
	}
	if s.db.IsSafe(ing, s.restrictions) {
		return true
	}
	_, ok := g.safeSubstitute(s, ing.Key)
	return ok
}

// safeSubstitute 第一個安全且未被排除的替代成分
func (g *Generator) safeSubstitute(s *search, key string) (*catalog.Ingredient, bool) {
	for _, opt := range s.engine.Substitutes(key, s.restrictions) {
		sub, ok := g.catalog.Get(opt.To)
		if !ok {
			continue
		}
		if _, ex := s.excluded[sub.Key]; ex {
			continue
		}
		if s.db.IsSafe(sub, s.restrictions) {
			return sub, true
		}
	}
	return nil, false
}

// prepare 必要 slot 沒有候選的模板整個略過
func (g *Generator) prepare(s *search, templates []*Template) ([]preparedTemplate, int) {
	var out []preparedTemplate
	maxComplexity := 1
	for _, tpl := range templates {
		pt := preparedTemplate{tpl: tpl, slots: make([][]*catalog.Ingredient, len(tpl.Slots))}
		ok := true
		for i, slot := range tpl.Slots {
			for _, key := range slot.Candidates {
				ing, found := g.catalog.Get(key)
				if found && g.usable(s, ing) {
					pt.slots[i] = append(pt.slots[i], ing)
				}
			}
			if slot.Required && len(pt.slots[i]) == 0 {
				ok = false
				break
			}
		}
		if !ok {
			common.LogDebug("模板被略過：必要欄位沒有候選",
				zap.String("template", tpl.Name),
			)
			continue
		}
		out = append(out, pt)
		if c := tpl.Complexity(); c > maxComplexity {
			maxComplexity = c
		}
	}
	return out, maxComplexity
}

// attempt 組合一份候選餐點；失敗時回傳拒絕原因
func (g *Generator) attempt(s *search, pt preparedTemplate) (meal.RawMeal, string, string) {
	var components []meal.RawComponent
	bySlot := make(map[string][]int)
	used := make(map[string]struct{})

	// (b)(c) 逐 slot 選擇成分
	for i, slot := range pt.tpl.Slots {
		candidates := pt.slots[i]
		if !slot.Required && s.rng.Float64() >= g.cfg.OptionalSlotProbability {
			continue
		}
		if len(candidates) == 0 {
			if slot.Required {
				return meal.RawMeal{}, "", ReasonEmptySlot
			}
			continue
		}
		quantity := slot.Quantity
		if quantity < 1 {
			quantity = 1
		}
		for n := 0; n < quantity; n++ {
			ing := g.pickUnique(s, slot, candidates, used)
			used[ing.Key] = struct{}{}
			bySlot[slot.Name] = append(bySlot[slot.Name], len(components))
			components = append(components, g.component(s, ing))
		}
	}

	// 建議性規則：只加入不違反其他規則的成分
	keys := componentKeys(components)
	allowed := func(key string) bool {
		ing, ok := g.catalog.Get(key)
		if !ok || !g.usable(s, ing) {
			return false
		}
		return s.engine.Validate(append(append([]string{}, keys...), key), s.country).IsValid
	}
	for _, key := range s.engine.Suggest(keys, s.country, s.req.MealType, s.rng, allowed) {
		components = append(components, g.component(s, g.catalog.MustGet(key)))
	}

	// (d) 文化規則
	keys = componentKeys(components)
	if !s.engine.Validate(keys, s.country).IsValid {
		return meal.RawMeal{}, meal.CombinationHash(keys), ReasonCultural
	}

	// (e) 過敏原替換，之後再驗證一次文化規則
	for i, c := range components {
		ing := g.catalog.MustGet(c.Key)
		if s.db.IsSafe(ing, s.restrictions) {
			continue
		}
		sub, ok := g.safeSubstitute(s, ing.Key)
		if !ok {
			return meal.RawMeal{}, meal.CombinationHash(keys), ReasonUnsafe
		}
		replaced := g.component(s, sub)
		replaced.Substituted = ing.Key
		components[i] = replaced
	}
	keys = componentKeys(components)
	hash := combinationHash(components)
	if !s.engine.Validate(keys, s.country).IsValid {
		return meal.RawMeal{}, hash, ReasonCultural
	}

	// (f) 組合雜湊去重
	if _, dup := s.seen[hash]; dup {
		return meal.RawMeal{}, hash, ReasonDuplicate
	}
	if _, bad := s.rejected[hash]; bad {
		return meal.RawMeal{}, hash, ReasonPreviouslyRejected
	}

	name := fillPattern(pt.tpl.NamePatterns, s.lang, bySlot, components)

	// (g) 份量縮放、組合成分合併與熱量
	g.scalePortions(components, s.target)
	components, _ = s.engine.MergeComposite(components, s.lang)
	components, _ = StripGarnish(components)
	calories := g.calories(components)

	// (h) 結構驗證
	if err := s.validator.CheckStructure(components, s.req.MealType, name, calories); err != nil {
		return meal.RawMeal{}, hash, ReasonOf(err)
	}
	if missing := s.engine.MissingStructure(s.country, s.req.MealType, s.validator.Categories(components), name); len(missing) > 0 {
		return meal.RawMeal{}, hash, ReasonStructure
	}
	coherent, ok := s.validator.CoherentName(name, components, s.lang)
	if !ok {
		return meal.RawMeal{}, hash, ReasonIncoherentName
	}

	return meal.RawMeal{
		Name:             coherent,
		MealType:         s.req.MealType,
		Components:       components,
		DeclaredCalories: math.Round(calories),
		Source:           meal.SourceTemplate,
		Template:         pt.tpl.Name,
		Hash:             hash,
	}, hash, ""
}

// pickUnique 重試有限次數避免重複；用盡後接受重複
func (g *Generator) pickUnique(s *search, slot Slot, candidates []*catalog.Ingredient, used map[string]struct{}) *catalog.Ingredient {
	var ing *catalog.Ingredient
	for try := 0; try <= g.cfg.DuplicateRetries; try++ {
		if slot.Carb {
			ing = pickCarb(s.rng, s.weights, candidates)
		} else {
			ing = candidates[s.rng.Intn(len(candidates))]
		}
		if _, dup := used[ing.Key]; !dup {
			return ing
		}
	}
	return ing
}

func (g *Generator) component(s *search, ing *catalog.Ingredient) meal.RawComponent {
	return meal.RawComponent{
		Key:      ing.Key,
		Name:     ing.Name(s.lang),
		Category: ing.Category,
		Portion:  ing.DefaultPortion,
		Unit:     ing.Unit,
	}
}

func componentKeys(components []meal.RawComponent) []string {
	keys := make([]string, 0, len(components))
	for _, c := range components {
		keys = append(keys, c.Key)
	}
	return keys
}

// combinationHash 與輸出相同的成分集合：裝飾與調味在 (g) 會被移除，不計入雜湊
func combinationHash(components []meal.RawComponent) string {
	stripped, _ := StripGarnish(components)
	return meal.CombinationHash(componentKeys(stripped))
}

// fillPattern 以各 slot 選到的成分名稱代入名稱樣式
func fillPattern(patterns map[string]string, lang string, bySlot map[string][]int, components []meal.RawComponent) string {
	pattern, ok := patterns[lang]
	if !ok {
		pattern = patterns[catalog.DefaultLanguage]
	}
	if pattern == "" {
		return ""
	}
	and := " e "
	if lang == "en" {
		and = " and "
	}
	slotNames := make([]string, 0, len(bySlot))
	for name := range bySlot {
		slotNames = append(slotNames, name)
	}
	sort.Strings(slotNames)

	out := pattern
	for _, slot := range slotNames {
		var names []string
		for _, idx := range bySlot[slot] {
			names = append(names, strings.ToLower(components[idx].Name))
		}
		out = strings.ReplaceAll(out, "{"+slot+"}", strings.Join(names, and))
	}
	if strings.Contains(out, "{") {
		// 引用了未選擇的 slot，交給名稱一致性檢查重組
		return ""
	}
	return Capitalize(out)
}

// scalePortions 將份量朝目標熱量等比例縮放；飲品與調味不縮放
func (g *Generator) scalePortions(components []meal.RawComponent, target float64) {
	base := g.calories(components)
	if base <= 0 || target <= 0 {
		return
	}
	factor := math.Max(minPortionScale, math.Min(maxPortionScale, target/base))
	if math.Abs(factor-1) < 0.05 {
		return
	}
	for i, c := range components {
		ing, ok := g.catalog.Get(c.Key)
		if !ok || !scalable(ing) {
			continue
		}
		components[i].Portion = roundPortion(ing, c.Portion*factor)
	}
}

func scalable(ing *catalog.Ingredient) bool {
	if ing.Category == catalog.CategoryBeverage {
		return false
	}
	return ing.Role == catalog.RoleMain
}

// roundPortion 可數單位取整數個，其餘取 5 的倍數
func roundPortion(ing *catalog.Ingredient, portion float64) float64 {
	switch ing.Measure.Kind {
	case catalog.MeasureUnit, catalog.MeasureSlice, catalog.MeasureFillet, catalog.MeasurePot:
		if size := ing.Measure.Size; size > 0 {
			n := math.Max(1, math.Round(portion/size))
			return n * size
		}
	}
	return math.Max(5, math.Round(portion/5)*5)
}

// calories 以目錄資料計算熱量（組合成分以其組成計算）
func (g *Generator) calories(components []meal.RawComponent) float64 {
	total := 0.0
	for _, c := range components {
		if len(c.Parts) > 0 {
			total += g.calories(c.Parts)
			continue
		}
		if ing, ok := g.catalog.Get(c.Key); ok {
			total += ing.MacrosFor(c.Portion).Calories
		}
	}
	return total
}
