package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"meal-generator/internal/pkg/common"
)

// DefaultLanguage 預設顯示語言
const DefaultLanguage = "pt"

// Catalog 唯讀成分目錄，載入後不再修改
type Catalog struct {
	byKey   map[string]*Ingredient
	byName  map[string]*Ingredient // folded 名稱 / 同義詞 -> 成分
	phrases []string               // byName 的鍵，依長度由長到短
	keys    []string
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default 取得內建目錄（進程內只建立一次）
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(staticIngredients)
		if err != nil {
			panic(fmt.Sprintf("invalid static catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// New 建立目錄並檢查每筆資料
func New(ingredients []*Ingredient) (*Catalog, error) {
	c := &Catalog{
		byKey:  make(map[string]*Ingredient, len(ingredients)),
		byName: make(map[string]*Ingredient, len(ingredients)*4),
	}

	for _, ing := range ingredients {
		if err := validateIngredient(ing); err != nil {
			return nil, err
		}
		if _, dup := c.byKey[ing.Key]; dup {
			return nil, fmt.Errorf("duplicate ingredient key %q", ing.Key)
		}
		if ing.CarbKind == "" && ing.Category.IsCarbohydrate() {
			ing.CarbKind = CarbNeutral
		}
		c.byKey[ing.Key] = ing
		c.keys = append(c.keys, ing.Key)
	}

	// 名稱索引：key 與顯示名稱優先，同義詞不覆蓋已存在的對應
	for _, key := range c.keys {
		ing := c.byKey[key]
		c.index(common.FoldText(ing.Key), ing)
		for _, n := range ing.Names {
			c.index(common.FoldText(n), ing)
		}
		for _, n := range ing.Plurals {
			c.index(common.FoldText(n), ing)
		}
	}
	for _, key := range c.keys {
		ing := c.byKey[key]
		for _, s := range ing.Synonyms {
			c.index(common.FoldText(s), ing)
		}
	}

	for phrase := range c.byName {
		c.phrases = append(c.phrases, phrase)
	}
	sort.Slice(c.phrases, func(i, j int) bool {
		if len(c.phrases[i]) != len(c.phrases[j]) {
			return len(c.phrases[i]) > len(c.phrases[j])
		}
		return c.phrases[i] < c.phrases[j]
	})
	sort.Strings(c.keys)

	return c, nil
}

func (c *Catalog) index(name string, ing *Ingredient) {
	if name == "" {
		return
	}
	if _, exists := c.byName[name]; !exists {
		c.byName[name] = ing
	}
}

func validateIngredient(ing *Ingredient) error {
	switch {
	case ing == nil:
		return fmt.Errorf("nil ingredient")
	case ing.Key == "":
		return fmt.Errorf("ingredient without key")
	case ing.Category == "":
		return fmt.Errorf("ingredient %q has no category", ing.Key)
	case ing.Unit != UnitGram && ing.Unit != UnitMilliliter:
		return fmt.Errorf("ingredient %q has invalid unit %q", ing.Key, ing.Unit)
	case ing.ReferencePortion <= 0:
		return fmt.Errorf("ingredient %q has non-positive reference portion", ing.Key)
	case ing.DefaultPortion <= 0:
		return fmt.Errorf("ingredient %q has non-positive default portion", ing.Key)
	}
	if ing.Role == "" {
		ing.Role = RoleMain
	}
	return nil
}

// Get 以 key 取得成分
func (c *Catalog) Get(key string) (*Ingredient, bool) {
	ing, ok := c.byKey[key]
	return ing, ok
}

// MustGet 以 key 取得成分，不存在時 panic；只用於內建資料
func (c *Catalog) MustGet(key string) *Ingredient {
	ing, ok := c.byKey[key]
	if !ok {
		panic(fmt.Sprintf("unknown ingredient %q", key))
	}
	return ing
}

// Resolve 以 key、名稱或同義詞解析成分；找不到完整名稱時取包含的最長詞組
func (c *Catalog) Resolve(nameOrKey string) (*Ingredient, bool) {
	if ing, ok := c.byKey[strings.TrimSpace(nameOrKey)]; ok {
		return ing, true
	}
	folded := common.FoldText(nameOrKey)
	if folded == "" {
		return nil, false
	}
	if ing, ok := c.byName[folded]; ok {
		return ing, true
	}
	for _, phrase := range c.phrases {
		if common.ContainsWord(folded, phrase) {
			return c.byName[phrase], true
		}
	}
	return nil, false
}

// Keys 所有成分 key（已排序）
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// All 所有成分，依 key 排序
func (c *Catalog) All() []*Ingredient {
	out := make([]*Ingredient, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.byKey[k])
	}
	return out
}

// ByCategory 某類別的所有成分 key
func (c *Catalog) ByCategory(cat Category) []string {
	var out []string
	for _, k := range c.keys {
		if c.byKey[k].Category == cat {
			out = append(out, k)
		}
	}
	return out
}

// Len 成分數量
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Keywords 所有成分的名稱關鍵字（已 fold、去重、排序）
func (c *Catalog) Keywords() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, k := range c.keys {
		for _, kw := range c.byKey[k].Keywords {
			f := common.FoldText(kw)
			if _, dup := seen[f]; dup || f == "" {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}
