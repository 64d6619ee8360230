package generator

import (
	"strings"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
)

// Slot 模板中的一個選擇位置
type Slot struct {
	Name       string
	Candidates []string
	Quantity   int  // 要選幾種不同成分
	Required   bool // 非必要 slot 依機率加入
	Carb       bool // 使用依目標加權的碳水抽選
}

// Template 一種餐點樣式
type Template struct {
	Name      string
	MealTypes []meal.Type
	Countries []string // 空白表示通用
	// NamePatterns 以 {slot} 代入選出的成分名稱，只引用必要 slot
	NamePatterns map[string]string
	Slots        []Slot
}

// Complexity 模板複雜度：需要選出的成分總數
func (t *Template) Complexity() int {
	n := 0
	for _, s := range t.Slots {
		q := s.Quantity
		if q < 1 {
			q = 1
		}
		n += q
	}
	return n
}

func (t *Template) servesCountry(country string) bool {
	for _, c := range t.Countries {
		if strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}

func (t *Template) servesType(mt meal.Type) bool {
	for _, x := range t.MealTypes {
		if x == mt {
			return true
		}
	}
	return false
}

// TemplateSet 依餐別分組的唯讀模板
type TemplateSet struct {
	templates []*Template
}

// NewTemplateSet 建立模板集合
func NewTemplateSet(templates []*Template) *TemplateSet {
	return &TemplateSet{templates: templates}
}

// DefaultTemplates 內建模板
func DefaultTemplates() *TemplateSet {
	return NewTemplateSet(builtinTemplates)
}

// For 國家專屬模板存在時取代該餐別的通用模板
func (s *TemplateSet) For(mt meal.Type, country string) []*Template {
	var specific, generic []*Template
	for _, t := range s.templates {
		if !t.servesType(mt) {
			continue
		}
		switch {
		case len(t.Countries) == 0:
			generic = append(generic, t)
		case t.servesCountry(country):
			specific = append(specific, t)
		}
	}
	if len(specific) > 0 {
		return specific
	}
	return generic
}

// Check 模板引用的成分必須存在於目錄
func (s *TemplateSet) Check(cat *catalog.Catalog) []string {
	var problems []string
	for _, t := range s.templates {
		for _, slot := range t.Slots {
			for _, k := range slot.Candidates {
				if _, ok := cat.Get(k); !ok {
					problems = append(problems, t.Name+"/"+slot.Name+": "+k)
				}
			}
		}
	}
	return problems
}

var (
	mainProteins = []string{"chicken_breast", "beef_steak", "ground_beef", "pork_loin", "tilapia_fillet", "boiled_egg", "tofu"}
	fishProteins = []string{"tilapia_fillet", "salmon", "shrimp", "canned_tuna"}
	saladGreens  = []string{"lettuce", "tomato", "cucumber", "carrot", "broccoli", "zucchini", "spinach"}
	cookedVeg    = []string{"broccoli", "carrot", "zucchini", "spinach"}
	breads       = []string{"french_bread", "whole_wheat_bread", "tapioca", "corn_couscous"}
	fruits       = []string{"banana", "apple", "papaya", "orange", "strawberries"}
	desserts     = []string{"orange", "papaya", "gelatin", "dark_chocolate"}
)

var builtinTemplates = []*Template{
	// 巴西午晚餐：一定有米飯類與豆類
	{
		Name:      "prato_feito",
		MealTypes: []meal.Type{meal.Lunch, meal.Dinner},
		Countries: []string{"BR"},
		NamePatterns: map[string]string{
			"pt": "{protein} com {grain} e {legume}",
			"en": "{protein} with {grain} and {legume}",
		},
		Slots: []Slot{
			{Name: "protein", Candidates: mainProteins, Quantity: 1, Required: true},
			{Name: "grain", Candidates: []string{"white_rice", "brown_rice"}, Quantity: 1, Required: true, Carb: true},
			{Name: "legume", Candidates: []string{"black_beans", "carioca_beans", "lentils"}, Quantity: 1, Required: true},
			{Name: "vegetable", Candidates: saladGreens, Quantity: 2, Required: true},
			{Name: "side", Candidates: []string{"cassava_flour", "sweet_potato", "cassava", "potato"}, Quantity: 1},
			{Name: "dessert", Candidates: desserts, Quantity: 1},
		},
	},
	{
		Name:      "peixe_com_arroz",
		MealTypes: []meal.Type{meal.Lunch, meal.Dinner},
		Countries: []string{"BR"},
		NamePatterns: map[string]string{
			"pt": "{protein} com {grain} e {legume}",
			"en": "{protein} with {grain} and {legume}",
		},
		Slots: []Slot{
			{Name: "protein", Candidates: fishProteins, Quantity: 1, Required: true},
			{Name: "grain", Candidates: []string{"white_rice", "brown_rice", "quinoa"}, Quantity: 1, Required: true, Carb: true},
			{Name: "legume", Candidates: []string{"black_beans", "lentils", "chickpeas"}, Quantity: 1, Required: true},
			{Name: "vegetable", Candidates: cookedVeg, Quantity: 1, Required: true},
			{Name: "fat", Candidates: []string{"olive_oil"}, Quantity: 1},
		},
	},
	{
		Name:      "massa_com_grao",
		MealTypes: []meal.Type{meal.Lunch, meal.Dinner},
		Countries: []string{"BR"},
		NamePatterns: map[string]string{
			"pt": "{grain} com {protein} e {legume}",
			"en": "{grain} with {protein} and {legume}",
		},
		Slots: []Slot{
			{Name: "grain", Candidates: []string{"pasta", "whole_wheat_pasta", "rice_pasta"}, Quantity: 1, Required: true, Carb: true},
			{Name: "protein", Candidates: []string{"chicken_breast", "ground_beef", "canned_tuna", "tofu"}, Quantity: 1, Required: true},
			{Name: "legume", Candidates: []string{"chickpeas", "lentils"}, Quantity: 1, Required: true},
			{Name: "vegetable", Candidates: cookedVeg, Quantity: 1, Required: true},
			{Name: "fat", Candidates: []string{"olive_oil"}, Quantity: 1},
		},
	},

	// 通用午晚餐
	{
		Name:      "protein_carb_veg",
		MealTypes: []meal.Type{meal.Lunch, meal.Dinner},
		NamePatterns: map[string]string{
			"pt": "{protein} com {carb}",
			"en": "{protein} with {carb}",
		},
		Slots: []Slot{
			{Name: "protein", Candidates: append(append([]string{}, mainProteins...), "salmon", "shrimp"), Quantity: 1, Required: true},
			{Name: "carb", Candidates: []string{"white_rice", "brown_rice", "pasta", "whole_wheat_pasta", "quinoa", "potato", "sweet_potato"}, Quantity: 1, Required: true, Carb: true},
			{Name: "vegetable", Candidates: saladGreens, Quantity: 2, Required: true},
			{Name: "fat", Candidates: []string{"olive_oil"}, Quantity: 1},
			{Name: "dessert", Candidates: desserts, Quantity: 1},
		},
	},
	{
		Name:      "salad_bowl",
		MealTypes: []meal.Type{meal.Lunch, meal.Dinner},
		NamePatterns: map[string]string{
			"pt": "{protein} com {carb} e salada",
			"en": "{protein} with {carb} and salad",
		},
		Slots: []Slot{
			{Name: "protein", Candidates: []string{"chicken_breast", "canned_tuna", "boiled_egg", "tofu", "salmon"}, Quantity: 1, Required: true},
			{Name: "carb", Candidates: []string{"quinoa", "sweet_potato", "brown_rice", "chickpeas"}, Quantity: 1, Required: true, Carb: true},
			{Name: "vegetable", Candidates: []string{"lettuce", "tomato", "cucumber", "carrot", "spinach"}, Quantity: 3, Required: true},
			{Name: "fat", Candidates: []string{"olive_oil"}, Quantity: 1},
		},
	},

	// 早餐
	{
		Name:      "bread_breakfast",
		MealTypes: []meal.Type{meal.Breakfast},
		NamePatterns: map[string]string{
			"pt": "{bread} com {beverage}",
			"en": "{bread} with {beverage}",
		},
		Slots: []Slot{
			{Name: "bread", Candidates: breads, Quantity: 1, Required: true, Carb: true},
			{Name: "spread", Candidates: []string{"butter", "cream_cheese", "peanut_butter"}, Quantity: 1},
			{Name: "protein", Candidates: []string{"boiled_egg", "scrambled_eggs", "minas_cheese", "turkey_breast", "ham"}, Quantity: 1, Required: true},
			{Name: "beverage", Candidates: []string{"black_coffee", "whole_milk", "orange_juice"}, Quantity: 1, Required: true},
			{Name: "fruit", Candidates: fruits, Quantity: 1},
		},
	},
	{
		Name:      "yogurt_bowl",
		MealTypes: []meal.Type{meal.Breakfast, meal.Supper},
		NamePatterns: map[string]string{
			"pt": "{dairy} com {fruit} e {cereal}",
			"en": "{dairy} with {fruit} and {cereal}",
		},
		Slots: []Slot{
			{Name: "dairy", Candidates: []string{"natural_yogurt", "coconut_yogurt"}, Quantity: 1, Required: true},
			{Name: "fruit", Candidates: []string{"banana", "strawberries", "papaya", "apple"}, Quantity: 1, Required: true},
			{Name: "cereal", Candidates: []string{"oats", "granola"}, Quantity: 1, Required: true, Carb: true},
			{Name: "sweetener", Candidates: []string{"honey"}, Quantity: 1},
		},
	},
	{
		Name:      "eggs_breakfast",
		MealTypes: []meal.Type{meal.Breakfast},
		NamePatterns: map[string]string{
			"pt": "{protein} com {carb}",
			"en": "{protein} with {carb}",
		},
		Slots: []Slot{
			{Name: "protein", Candidates: []string{"boiled_egg", "scrambled_eggs"}, Quantity: 1, Required: true},
			{Name: "carb", Candidates: []string{"french_bread", "whole_wheat_bread", "tapioca", "sweet_potato", "corn_couscous"}, Quantity: 1, Required: true, Carb: true},
			{Name: "beverage", Candidates: []string{"black_coffee", "orange_juice", "whole_milk"}, Quantity: 1, Required: true},
			{Name: "fruit", Candidates: fruits, Quantity: 1},
		},
	},

	// 點心
	{
		Name:      "fruit_and_dairy",
		MealTypes: []meal.Type{meal.MorningSnack, meal.AfternoonSnack},
		NamePatterns: map[string]string{
			"pt": "{fruit} com {dairy}",
			"en": "{fruit} with {dairy}",
		},
		Slots: []Slot{
			{Name: "fruit", Candidates: fruits, Quantity: 1, Required: true},
			{Name: "dairy", Candidates: []string{"natural_yogurt", "minas_cheese", "coconut_yogurt"}, Quantity: 1, Required: true},
		},
	},
	{
		Name:      "light_sandwich",
		MealTypes: []meal.Type{meal.MorningSnack, meal.AfternoonSnack, meal.Supper},
		NamePatterns: map[string]string{
			"pt": "{bread} com {protein}",
			"en": "{bread} with {protein}",
		},
		Slots: []Slot{
			{Name: "bread", Candidates: []string{"whole_wheat_bread", "french_bread", "tapioca"}, Quantity: 1, Required: true, Carb: true},
			{Name: "protein", Candidates: []string{"turkey_breast", "minas_cheese", "boiled_egg", "ham", "canned_tuna"}, Quantity: 1, Required: true},
			{Name: "vegetable", Candidates: []string{"lettuce", "tomato"}, Quantity: 1},
			{Name: "beverage", Candidates: []string{"black_coffee"}, Quantity: 1},
		},
	},
	{
		Name:      "fruit_and_oats",
		MealTypes: []meal.Type{meal.MorningSnack, meal.AfternoonSnack},
		NamePatterns: map[string]string{
			"pt": "{fruit} com {cereal}",
			"en": "{fruit} with {cereal}",
		},
		Slots: []Slot{
			{Name: "fruit", Candidates: []string{"banana", "apple", "papaya", "strawberries"}, Quantity: 1, Required: true},
			{Name: "cereal", Candidates: []string{"oats", "granola"}, Quantity: 1, Required: true, Carb: true},
			{Name: "spread", Candidates: []string{"peanut_butter", "honey"}, Quantity: 1},
		},
	},

	// 宵夜
	{
		Name:      "light_supper",
		MealTypes: []meal.Type{meal.Supper},
		NamePatterns: map[string]string{
			"pt": "{protein} com {vegetable}",
			"en": "{protein} with {vegetable}",
		},
		Slots: []Slot{
			{Name: "protein", Candidates: []string{"chicken_breast", "boiled_egg", "tofu", "tilapia_fillet"}, Quantity: 1, Required: true},
			{Name: "vegetable", Candidates: cookedVeg, Quantity: 1, Required: true},
			{Name: "carb", Candidates: []string{"sweet_potato", "potato", "cassava"}, Quantity: 1, Carb: true},
		},
	},
}
