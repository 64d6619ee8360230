package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/core/rules"
	"meal-generator/internal/pkg/common"
)

// 拒絕原因
const (
	ReasonEmptySlot          = "empty_slot"
	ReasonCultural           = "cultural_rule"
	ReasonDuplicate          = "duplicate"
	ReasonPreviouslyRejected = "previously_rejected"
	ReasonTooFewComponents   = "too_few_components"
	ReasonSeasoningOnly      = "seasoning_only"
	ReasonMissingCompanion   = "missing_companion"
	ReasonCalorieFloor       = "below_calorie_floor"
	ReasonStructure          = "missing_required_category"
	ReasonIncoherentName     = "incoherent_name"
	ReasonUnsafe             = "unsafe_ingredient"
)

// 不可單獨成為餐點或標題的裝飾與調味
var garnishDenyList = map[string]struct{}{
	"onion":       {},
	"garlic":      {},
	"bell_pepper": {},
	"parsley":     {},
	"cilantro":    {},
	"chives":      {},
}

// StructureError 結構驗證失敗
type StructureError struct {
	Reason string
	Detail string
}

func (e *StructureError) Error() string {
	if e.Detail == "" {
		return e.Reason
	}
	return e.Reason + ": " + e.Detail
}

// Unwrap 結構錯誤都屬於不一致草稿
func (e *StructureError) Unwrap() error {
	return common.ErrIncoherentDraft
}

func structureErr(reason, format string, args ...interface{}) error {
	return &StructureError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// ReasonOf 取出錯誤的拒絕原因
func ReasonOf(err error) string {
	var se *StructureError
	if errors.As(err, &se) {
		return se.Reason
	}
	return "unknown"
}

// Validator 組成驗證：成分數、調味、伴隨、熱量下限、名稱一致
type Validator struct {
	catalog *catalog.Catalog
	engine  *rules.Engine
}

// NewValidator 創建驗證器
func NewValidator(cat *catalog.Catalog, engine *rules.Engine) *Validator {
	return &Validator{catalog: cat, engine: engine}
}

// ingredientsOf 成分（組合成分展開）對應的目錄資料
func (v *Validator) ingredientsOf(c meal.RawComponent) []*catalog.Ingredient {
	if len(c.Parts) > 0 {
		out := make([]*catalog.Ingredient, 0, len(c.Parts))
		for _, p := range c.Parts {
			if ing, ok := v.catalog.Get(p.Key); ok {
				out = append(out, ing)
			}
		}
		return out
	}
	if ing, ok := v.catalog.Get(c.Key); ok {
		return []*catalog.Ingredient{ing}
	}
	return nil
}

// categoriesOf 成分本身與其組成的類別
func (v *Validator) categoriesOf(c meal.RawComponent) []catalog.Category {
	cats := []catalog.Category{c.Category}
	for _, ing := range v.ingredientsOf(c) {
		cats = append(cats, ing.Category)
	}
	return cats
}

// Categories 一組成分出現的所有類別
func (v *Validator) Categories(components []meal.RawComponent) []catalog.Category {
	var out []catalog.Category
	for _, c := range components {
		out = append(out, v.categoriesOf(c)...)
	}
	return out
}

// StripGarnish 移除單獨出現的裝飾與調味（組合成分內的不受影響）
func StripGarnish(components []meal.RawComponent) ([]meal.RawComponent, []string) {
	out := components[:0:0]
	var removed []string
	for _, c := range components {
		if _, deny := garnishDenyList[c.Key]; deny && len(c.Parts) == 0 {
			removed = append(removed, c.Key)
			continue
		}
		out = append(out, c)
	}
	return out, removed
}

// CheckStructure 驗證組成；calories 為已重新計算的總熱量
func (v *Validator) CheckStructure(components []meal.RawComponent, mealType meal.Type, name string, calories float64) error {
	singleDish := v.engine.IsSingleDish(name)

	// (a) 至少兩個成分，單一料理除外
	if len(components) == 0 {
		return structureErr(ReasonTooFewComponents, "no components")
	}
	if len(components) < 2 && !singleDish {
		return structureErr(ReasonTooFewComponents, "%d component(s)", len(components))
	}

	// (b) 不能全是調味
	seasoningOnly := true
	for _, c := range components {
		for _, ing := range v.ingredientsOf(c) {
			if !isSeasoning(ing) {
				seasoningOnly = false
			}
		}
		if len(v.ingredientsOf(c)) == 0 && c.Category != catalog.CategorySeasoning && c.Category != catalog.CategoryCondiment {
			seasoningOnly = false
		}
	}
	if seasoningOnly {
		return structureErr(ReasonSeasoningOnly, "")
	}

	// (c)(e) 永不單獨出現的成分需要伴隨類別
	present := make(map[catalog.Category]int)
	for _, c := range components {
		for _, cat := range uniqueCategories(v.categoriesOf(c)) {
			present[cat]++
		}
	}
	for _, c := range components {
		if len(c.Parts) > 0 {
			continue
		}
		ing, ok := v.catalog.Get(c.Key)
		if !ok || !ing.NeverStandalone {
			continue
		}
		condimentFat := ing.Role == catalog.RoleCondimentFat
		if !condimentFat && len(components) >= 3 {
			continue
		}
		if !hasCompanion(present, ing) {
			return structureErr(ReasonMissingCompanion, "%s needs one of %v", ing.Key, ing.CompanionCategories())
		}
	}

	// (d) 熱量下限
	if floor := mealType.CalorieFloor(); calories < floor {
		return structureErr(ReasonCalorieFloor, "%.0f kcal < %.0f", calories, floor)
	}
	return nil
}

func isSeasoning(ing *catalog.Ingredient) bool {
	switch ing.Role {
	case catalog.RoleSeasoning, catalog.RoleGarnish:
		return true
	}
	return ing.Category == catalog.CategorySeasoning
}

func uniqueCategories(cats []catalog.Category) []catalog.Category {
	seen := make(map[catalog.Category]struct{}, len(cats))
	out := cats[:0:0]
	for _, c := range cats {
		if _, ok := seen[c]; ok || c == "" {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// hasCompanion 其他成分中是否有要求的類別（扣掉自己）
func hasCompanion(present map[catalog.Category]int, ing *catalog.Ingredient) bool {
	for _, want := range ing.CompanionCategories() {
		n := present[want]
		if want == ing.Category {
			n--
		}
		if n > 0 {
			return true
		}
	}
	return false
}

// MentionsMismatch 名稱提到的成分關鍵字在成分中找不到時回傳該關鍵字
func (v *Validator) MentionsMismatch(name string, components []meal.RawComponent) (string, bool) {
	folded := common.FoldText(name)
	if folded == "" {
		return "", false
	}

	have := make(map[string]struct{})
	var text strings.Builder
	for _, c := range components {
		for _, ing := range v.ingredientsOf(c) {
			for _, kw := range ing.Keywords {
				have[common.FoldText(kw)] = struct{}{}
			}
			for _, n := range ing.Names {
				text.WriteString(" | " + common.FoldText(n))
			}
		}
		text.WriteString(" | " + common.FoldText(c.Name))
	}
	haveText := text.String()

	for _, kw := range v.catalog.Keywords() {
		if !common.ContainsWord(folded, kw) {
			continue
		}
		if _, ok := have[kw]; ok {
			continue
		}
		if !common.ContainsWord(haveText, kw) {
			return kw, true
		}
	}
	return "", false
}

// ComposeName 以主要、次要、第三成分組出名稱；沒有可當標題的成分時回傳 false
func (v *Validator) ComposeName(components []meal.RawComponent, lang string) (string, bool) {
	var main, secondary, tertiary *meal.RawComponent

	rank := func(c meal.RawComponent) int {
		cats := v.categoriesOf(c)
		best := 99
		for _, cat := range cats {
			if r, ok := titleRank[cat]; ok && r < best {
				best = r
			}
		}
		return best
	}

	ordered := make([]meal.RawComponent, 0, len(components))
	for _, c := range components {
		if !v.titleBearing(c) {
			continue
		}
		ordered = append(ordered, c)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i]) < rank(ordered[j])
	})

	if len(ordered) == 0 {
		return "", false
	}
	main = &ordered[0]
	if len(ordered) > 1 {
		secondary = &ordered[1]
	}
	if len(ordered) > 2 {
		tertiary = &ordered[2]
	}

	with, and := "com", "e"
	if lang == "en" {
		with, and = "with", "and"
	}
	name := v.displayName(*main, lang)
	switch {
	case tertiary != nil:
		name = fmt.Sprintf("%s %s %s %s %s", name, with, v.displayName(*secondary, lang), and, v.displayName(*tertiary, lang))
	case secondary != nil:
		name = fmt.Sprintf("%s %s %s", name, with, v.displayName(*secondary, lang))
	}
	return Capitalize(name), true
}

// titleRank 標題成分的優先順序
var titleRank = map[catalog.Category]int{
	catalog.CategoryProtein:   0,
	catalog.CategoryGrain:     1,
	catalog.CategoryCarb:      2,
	catalog.CategoryLegume:    3,
	catalog.CategoryDairy:     4,
	catalog.CategoryVegetable: 5,
	catalog.CategoryFruit:     6,
	catalog.CategoryBeverage:  7,
	catalog.CategoryDessert:   8,
}

// titleBearing 裝飾、調味與永不單獨出現的成分不能出現在名稱
func (v *Validator) titleBearing(c meal.RawComponent) bool {
	if len(c.Parts) > 0 {
		return true
	}
	ing, ok := v.catalog.Get(c.Key)
	if !ok {
		return c.Name != ""
	}
	if _, deny := garnishDenyList[ing.Key]; deny {
		return false
	}
	return !ing.NeverStandalone && !isSeasoning(ing) && ing.Category != catalog.CategoryFat
}

func (v *Validator) displayName(c meal.RawComponent, lang string) string {
	if len(c.Parts) == 0 {
		if ing, ok := v.catalog.Get(c.Key); ok {
			return ing.Name(lang)
		}
	}
	if comp, ok := v.engine.Composite(c.Key); ok {
		return comp.Name(lang)
	}
	return strings.ToLower(c.Name)
}

// CoherentName 名稱與成分一致時原樣回傳，否則以實際成分重組；無法組出時回傳 false
func (v *Validator) CoherentName(name string, components []meal.RawComponent, lang string) (string, bool) {
	if strings.TrimSpace(name) != "" {
		if _, mismatch := v.MentionsMismatch(name, components); !mismatch {
			return name, true
		}
	}
	return v.ComposeName(components, lang)
}

// Capitalize 首字母大寫
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
