package rules

import (
	"math/rand"
	"strings"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/pkg/common"
)

// Violation 一組完整出現的禁止組合
type Violation struct {
	Country string   `json:"country"`
	Set     []string `json:"set"`
}

// ValidationResult 文化規則檢查結果
type ValidationResult struct {
	IsValid    bool        `json:"is_valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// Engine 文化、組合與替代規則的唯一實作，建立後唯讀
type Engine struct {
	set        *RuleSet
	catalog    *catalog.Catalog
	singleDish []string
	composites map[string]*Composite
}

// NewEngine 建立規則引擎
func NewEngine(rs *RuleSet, cat *catalog.Catalog) *Engine {
	e := &Engine{
		set:        rs,
		catalog:    cat,
		composites: make(map[string]*Composite, len(rs.Composites)),
	}
	for _, p := range rs.SingleDishPatterns {
		if f := common.FoldText(p); f != "" {
			e.singleDish = append(e.singleDish, f)
		}
	}
	for i := range rs.Composites {
		c := &rs.Composites[i]
		e.composites[c.Key] = c
	}
	return e
}

// countryRules 預設規則與國家規則，國碼不分大小寫
func (e *Engine) countryRules(country string) []*CountryRules {
	out := []*CountryRules{&e.set.Default}
	if cr, ok := e.set.Countries[strings.ToUpper(country)]; ok && cr != nil {
		out = append(out, cr)
	}
	return out
}

// Validate 檢查成分組合是否完整包含任何禁止集合
func (e *Engine) Validate(keys []string, country string) ValidationResult {
	present := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		present[k] = struct{}{}
	}

	res := ValidationResult{IsValid: true}
	for _, cr := range e.countryRules(country) {
		for _, set := range cr.Forbidden {
			if containsAll(present, set) {
				res.IsValid = false
				res.Violations = append(res.Violations, Violation{
					Country: strings.ToUpper(country),
					Set:     set,
				})
			}
		}
	}
	return res
}

func containsAll(present map[string]struct{}, set []string) bool {
	for _, k := range set {
		if _, ok := present[k]; !ok {
			return false
		}
	}
	return len(set) > 0
}

// Suggest 依建議性規則以機率回傳要加入的成分；allowed 為 nil 時不過濾
func (e *Engine) Suggest(keys []string, country string, mealType meal.Type, rng *rand.Rand, allowed func(key string) bool) []string {
	present := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		present[k] = struct{}{}
	}

	var out []string
	for _, cr := range e.countryRules(country) {
		for _, r := range cr.Required {
			if !appliesTo(r.MealTypes, mealType) {
				continue
			}
			if _, ok := present[r.If]; !ok {
				continue
			}
			if _, ok := present[r.Suggest]; ok {
				continue
			}
			if rng.Float64() >= r.Probability {
				continue
			}
			if allowed != nil && !allowed(r.Suggest) {
				continue
			}
			present[r.Suggest] = struct{}{}
			out = append(out, r.Suggest)
		}
	}
	return out
}

func appliesTo(mealTypes []string, t meal.Type) bool {
	if len(mealTypes) == 0 {
		return true
	}
	for _, mt := range mealTypes {
		if meal.Type(mt) == t {
			return true
		}
	}
	return false
}

// StructuralRequirement 該國家與餐別必須同時出現的類別
func (e *Engine) StructuralRequirement(country string, mealType meal.Type) []catalog.Category {
	var cats []catalog.Category
	for _, cr := range e.countryRules(country) {
		for _, s := range cr.Structure {
			if appliesTo(s.MealTypes, mealType) {
				cats = append(cats, s.Categories...)
			}
		}
	}
	return cats
}

// MissingStructure 回傳缺少的必要類別；單一料理名稱不受此限
func (e *Engine) MissingStructure(country string, mealType meal.Type, categories []catalog.Category, name string) []catalog.Category {
	required := e.StructuralRequirement(country, mealType)
	if len(required) == 0 || e.IsSingleDish(name) {
		return nil
	}
	have := make(map[catalog.Category]struct{}, len(categories))
	for _, c := range categories {
		have[c] = struct{}{}
	}
	var missing []catalog.Category
	for _, c := range required {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// IsSingleDish 名稱是否符合單一料理
func (e *Engine) IsSingleDish(name string) bool {
	folded := common.FoldText(name)
	if folded == "" {
		return false
	}
	for _, p := range e.singleDish {
		if common.ContainsWord(folded, p) {
			return true
		}
	}
	return false
}

// Substitute 依序檢查每個限制，回傳第一個目錄中存在的替代；沒有時回傳原 key
func (e *Engine) Substitute(key string, restrictions []string) string {
	if subs := e.Substitutes(key, restrictions); len(subs) > 0 {
		return subs[0].To
	}
	return key
}

// SubstituteOption 一個可用的替代
type SubstituteOption struct {
	To          string
	Restriction string
}

// Substitutes 所有可用的替代，依限制順序
func (e *Engine) Substitutes(key string, restrictions []string) []SubstituteOption {
	table, ok := e.set.Substitutions[key]
	if !ok {
		return nil
	}
	var out []SubstituteOption
	seen := make(map[string]struct{})
	for _, r := range restrictions {
		to, ok := table[r]
		if !ok || to == key {
			continue
		}
		if _, exists := e.catalog.Get(to); !exists {
			continue
		}
		if _, dup := seen[to]; dup {
			continue
		}
		seen[to] = struct{}{}
		out = append(out, SubstituteOption{To: to, Restriction: r})
	}
	return out
}

// Composite 以 key 取得組合規則
func (e *Engine) Composite(key string) (*Composite, bool) {
	c, ok := e.composites[key]
	return c, ok
}

// ResolveComposite 以名稱取得組合規則（pt 或 en 名稱）
func (e *Engine) ResolveComposite(name string) (*Composite, bool) {
	if c, ok := e.composites[name]; ok {
		return c, true
	}
	folded := common.FoldText(name)
	for i := range e.set.Composites {
		c := &e.set.Composites[i]
		for _, n := range c.Names {
			if common.FoldText(n) == folded {
				return c, true
			}
		}
	}
	return nil, false
}

// MatchComposite 第一個觸發集合完整出現的組合規則
func (e *Engine) MatchComposite(keys []string) (*Composite, bool) {
	present := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		present[k] = struct{}{}
	}
	for i := range e.set.Composites {
		c := &e.set.Composites[i]
		if containsAll(present, c.Triggers) {
			return c, true
		}
	}
	return nil, false
}

// MergeComposite 將第一個命中的組合規則的成分合併為一個組合成分，放在第一個觸發成分的位置
func (e *Engine) MergeComposite(components []meal.RawComponent, lang string) ([]meal.RawComponent, bool) {
	keys := make([]string, 0, len(components))
	for _, c := range components {
		if len(c.Parts) > 0 {
			// 已合併過
			return components, false
		}
		keys = append(keys, c.Key)
	}
	comp, ok := e.MatchComposite(keys)
	if !ok {
		return components, false
	}

	trigger := make(map[string]struct{}, len(comp.Triggers))
	for _, k := range comp.Triggers {
		trigger[k] = struct{}{}
	}

	merged := meal.RawComponent{
		Key:      comp.Key,
		Name:     comp.Name(lang),
		Category: comp.Category,
	}
	out := make([]meal.RawComponent, 0, len(components)-len(comp.Triggers)+1)
	slot := -1
	for _, c := range components {
		if _, isTrigger := trigger[c.Key]; !isTrigger {
			out = append(out, c)
			continue
		}
		// 每個觸發成分只取一次
		delete(trigger, c.Key)
		merged.Parts = append(merged.Parts, c)
		merged.Portion += c.Portion
		merged.DeclaredCalories += c.DeclaredCalories
		if merged.Unit == "" {
			merged.Unit = c.Unit
		}
		if slot < 0 {
			slot = len(out)
			out = append(out, meal.RawComponent{})
		}
	}
	out[slot] = merged
	return out, true
}
