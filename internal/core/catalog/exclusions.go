package catalog

import (
	"sort"

	"meal-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// exclusionGroup 使用者輸入的廣義詞（如「laticínios」）對應的具體成分
type exclusionGroup struct {
	terms      []string
	categories []Category
	keys       []string
	tags       []string // 含有這些標籤的成分一併排除
}

// 手工維護的同義詞表；未列出的詞只會以單一成分名稱解析，無法解析時直接略過
var exclusionGroups = []exclusionGroup{
	{terms: []string{"laticinios", "laticinio", "dairy", "lacteos", "leite e derivados"}, categories: []Category{CategoryDairy}, tags: []string{"lactose", "milk_protein"}},
	{terms: []string{"carne vermelha", "red meat", "carnes vermelhas"}, keys: []string{"beef_steak", "ground_beef", "pork_loin", "ham"}},
	{terms: []string{"carne", "carnes", "meat"}, keys: []string{"beef_steak", "ground_beef", "pork_loin", "ham", "chicken_breast", "turkey_breast"}},
	{terms: []string{"frango", "chicken", "aves", "poultry"}, keys: []string{"chicken_breast", "turkey_breast"}},
	{terms: []string{"porco", "pork", "carne de porco", "suino"}, tags: []string{"pork"}},
	{terms: []string{"embutidos", "frios", "cold cuts"}, keys: []string{"ham", "turkey_breast"}},
	{terms: []string{"peixe", "peixes", "fish"}, tags: []string{"fish"}},
	{terms: []string{"frutos do mar", "seafood", "mariscos", "crustaceos"}, tags: []string{"seafood"}},
	{terms: []string{"gluten", "trigo", "wheat"}, tags: []string{"gluten"}},
	{terms: []string{"ovo", "ovos", "egg", "eggs"}, tags: []string{"egg"}},
	{terms: []string{"verduras", "vegetais", "legumes", "vegetables", "salada", "salad"}, categories: []Category{CategoryVegetable}},
	{terms: []string{"graos", "cereais", "grains"}, categories: []Category{CategoryGrain}},
	{terms: []string{"feijoes", "leguminosas", "legumes secos", "pulses"}, categories: []Category{CategoryLegume}},
	{terms: []string{"doces", "sobremesa", "sweets", "desserts"}, categories: []Category{CategoryDessert}, keys: []string{"honey"}},
	{terms: []string{"frutas", "fruta", "fruits", "fruit"}, categories: []Category{CategoryFruit}},
	{terms: []string{"oleaginosas", "castanhas", "nuts", "nozes"}, tags: []string{"nuts"}},
	{terms: []string{"amendoim", "peanut", "peanuts"}, tags: []string{"peanut"}},
	{terms: []string{"soja", "soy"}, tags: []string{"soy"}},
	{terms: []string{"pao", "paes", "bread"}, keys: []string{"french_bread", "whole_wheat_bread", "gluten_free_bread"}},
	{terms: []string{"massas", "macarrao", "pasta"}, keys: []string{"pasta", "whole_wheat_pasta", "rice_pasta"}},
	{terms: []string{"arroz", "rice"}, keys: []string{"white_rice", "brown_rice"}},
	{terms: []string{"feijao", "beans"}, keys: []string{"black_beans", "carioca_beans"}},
	{terms: []string{"cafe", "coffee", "cafeina", "caffeine"}, keys: []string{"black_coffee"}},
}

// ExpandExclusions 將使用者的排除詞展開為具體成分 key（去重、排序）
func (c *Catalog) ExpandExclusions(terms []string) []string {
	set := make(map[string]struct{})
	for _, raw := range terms {
		term := common.FoldText(raw)
		if term == "" {
			continue
		}

		matched := false
		for _, g := range exclusionGroups {
			if !containsTerm(g.terms, term) {
				continue
			}
			matched = true
			c.addGroup(set, g)
		}
		if !matched {
			if ing, ok := c.Resolve(term); ok {
				set[ing.Key] = struct{}{}
				matched = true
			}
		}
		if !matched {
			common.LogWarn("排除詞無法對應任何成分", zap.String("term", raw))
		}
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) addGroup(set map[string]struct{}, g exclusionGroup) {
	for _, k := range g.keys {
		if _, ok := c.byKey[k]; ok {
			set[k] = struct{}{}
		}
	}
	for _, cat := range g.categories {
		for _, k := range c.ByCategory(cat) {
			set[k] = struct{}{}
		}
	}
	for _, tag := range g.tags {
		for _, k := range c.keys {
			if c.byKey[k].Has(tag) {
				set[k] = struct{}{}
			}
		}
	}
}

func containsTerm(terms []string, term string) bool {
	for _, t := range terms {
		if t == term {
			return true
		}
	}
	return false
}
