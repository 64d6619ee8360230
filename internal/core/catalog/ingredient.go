package catalog

import "math"

// Unit 物理單位
type Unit string

const (
	UnitGram       Unit = "g"
	UnitMilliliter Unit = "ml"
)

// Category 成分類別，於載入時明確指定，不從 key 推斷
type Category string

const (
	CategoryProtein   Category = "protein"
	CategoryGrain     Category = "grain"        // 澱粉穀物：米、麵
	CategoryLegume    Category = "legume"       // 豆類
	CategoryVegetable Category = "vegetable"    // 蔬菜與沙拉
	CategoryCarb      Category = "carbohydrate" // 其他碳水：麵包、薯類、木薯、燕麥
	CategoryDairy     Category = "dairy"
	CategoryFat       Category = "fat"
	CategoryFruit     Category = "fruit"
	CategoryBeverage  Category = "beverage"
	CategoryDessert   Category = "dessert"
	CategoryCondiment Category = "condiment"
	CategorySeasoning Category = "seasoning"
)

// Role 成分在餐點中的角色（ingredient_category）
type Role string

const (
	RoleMain         Role = "main"
	RoleSeasoning    Role = "seasoning"
	RoleCondimentFat Role = "condiment_fat"
	RoleSweetener    Role = "sweetener"
	RoleGarnish      Role = "garnish"
)

// CarbKind 碳水子類別，只用於碳水 slot 的加權抽選
type CarbKind string

const (
	CarbNeutral          CarbKind = "neutral"
	CarbAcceptedWhole    CarbKind = "accepted_whole"
	CarbRestrictiveWhole CarbKind = "restrictive_whole"
)

// MeasureKind 家用份量單位
type MeasureKind string

const (
	MeasureUnit     MeasureKind = "unit"
	MeasureSlice    MeasureKind = "slice"
	MeasureSpoon    MeasureKind = "spoon"
	MeasureTeaspoon MeasureKind = "teaspoon"
	MeasureLadle    MeasureKind = "ladle"
	MeasureCup      MeasureKind = "cup"
	MeasureGlass    MeasureKind = "glass"
	MeasureFillet   MeasureKind = "fillet"
	MeasurePot      MeasureKind = "pot"
	MeasurePortion  MeasureKind = "portion"
)

// Measure 一個家用單位對應的克數或毫升數
type Measure struct {
	Kind MeasureKind
	Size float64
}

// Macros 營養素
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Add 相加
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
		Fiber:    m.Fiber + o.Fiber,
	}
}

// Scale 等比例縮放
func (m Macros) Scale(f float64) Macros {
	return Macros{
		Calories: m.Calories * f,
		Protein:  m.Protein * f,
		Carbs:    m.Carbs * f,
		Fat:      m.Fat * f,
		Fiber:    m.Fiber * f,
	}
}

// Rounded 四捨五入到小數一位
func (m Macros) Rounded() Macros {
	return Macros{
		Calories: round1(m.Calories),
		Protein:  round1(m.Protein),
		Carbs:    round1(m.Carbs),
		Fat:      round1(m.Fat),
		Fiber:    round1(m.Fiber),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Ingredient 目錄中的成分，營養素以參考份量為基準（非每克）
type Ingredient struct {
	Key              string
	Names            map[string]string // 語言 -> 顯示名稱
	Plurals          map[string]string // 語言 -> 複數名稱（可數單位）
	Category         Category
	Role             Role
	Unit             Unit
	ReferencePortion float64
	Macros           Macros
	DefaultPortion   float64
	Measure          Measure
	Contains         []string
	CarbKind         CarbKind
	NeverStandalone  bool
	Companions       []Category
	Keywords         []string // 名稱關鍵字（已去重音、小寫）
	Synonyms         []string
}

// Name 依語言取得顯示名稱，缺少時退回 pt
func (i *Ingredient) Name(lang string) string {
	if n, ok := i.Names[lang]; ok && n != "" {
		return n
	}
	if n, ok := i.Names[DefaultLanguage]; ok {
		return n
	}
	return i.Key
}

// Plural 依語言取得複數名稱，未設定時用單數
func (i *Ingredient) Plural(lang string) string {
	if _, ok := i.Names[lang]; !ok {
		lang = DefaultLanguage
	}
	if n, ok := i.Plurals[lang]; ok && n != "" {
		return n
	}
	return i.Name(lang)
}

// MacrosFor 依份量換算營養素：Macros × (portion / ReferencePortion)
func (i *Ingredient) MacrosFor(portion float64) Macros {
	if i.ReferencePortion <= 0 || portion <= 0 {
		return Macros{}
	}
	return i.Macros.Scale(portion / i.ReferencePortion)
}

// Has 是否含有某個過敏原 / 不耐標籤
func (i *Ingredient) Has(tag string) bool {
	for _, t := range i.Contains {
		if t == tag {
			return true
		}
	}
	return false
}

// CompanionCategories 永不單獨出現的成分需要的伴隨類別，未設定時為蛋白質或蔬菜
func (i *Ingredient) CompanionCategories() []Category {
	if len(i.Companions) > 0 {
		return i.Companions
	}
	return []Category{CategoryProtein, CategoryVegetable}
}

// IsCarbohydrate 是否屬於碳水 slot 可用的類別
func (c Category) IsCarbohydrate() bool {
	return c == CategoryGrain || c == CategoryCarb
}
