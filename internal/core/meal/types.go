package meal

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"meal-generator/internal/core/catalog"
)

// Type 餐別
type Type string

const (
	Breakfast      Type = "breakfast"
	MorningSnack   Type = "morning_snack"
	Lunch          Type = "lunch"
	AfternoonSnack Type = "afternoon_snack"
	Dinner         Type = "dinner"
	Supper         Type = "supper"
)

// AllTypes 所有餐別，依一天中的順序
var AllTypes = []Type{Breakfast, MorningSnack, Lunch, AfternoonSnack, Dinner, Supper}

// ParseType 解析餐別
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// IsMain 午餐與晚餐
func (t Type) IsMain() bool {
	return t == Lunch || t == Dinner
}

// IsSnack 點心
func (t Type) IsSnack() bool {
	return t == MorningSnack || t == AfternoonSnack
}

// CalorieFloor 每個餐別可接受的最低熱量
func (t Type) CalorieFloor() float64 {
	switch {
	case t == Breakfast:
		return 150
	case t.IsSnack():
		return 80
	case t.IsMain():
		return 250
	case t == Supper:
		return 120
	}
	return 0
}

// DefaultTargetCalories 未指定時的目標熱量
func (t Type) DefaultTargetCalories() float64 {
	switch t {
	case Breakfast:
		return 400
	case MorningSnack, AfternoonSnack:
		return 200
	case Lunch:
		return 650
	case Dinner:
		return 550
	case Supper:
		return 300
	}
	return 400
}

// Source 餐點來源
type Source string

const (
	SourcePool      Source = "pool"
	SourceTemplate  Source = "template"
	SourceAI        Source = "ai"
	SourceEmergency Source = "emergency"
	SourceExternal  Source = "external"
)

// Goal 使用者目標
type Goal string

const (
	GoalMaintenance Goal = "maintenance"
	GoalWeightLoss  Goal = "weight_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalDiabetes    Goal = "diabetes"
)

// Profile 影響碳水選擇的使用者設定
type Profile struct {
	Goal               Goal  `json:"goal,omitempty"`
	Diabetic           bool  `json:"diabetic,omitempty"`
	AcceptsWholeGrains *bool `json:"accepts_whole_grains,omitempty"`
}

// WholeGrainsAccepted 未設定時視為接受
func (p Profile) WholeGrainsAccepted() bool {
	return p.AcceptsWholeGrains == nil || *p.AcceptsWholeGrains
}

// UserContext 一次請求的使用者限制，管線只讀不寫
type UserContext struct {
	Country           string   `json:"country"`
	Language          string   `json:"language,omitempty"`
	Intolerances      []string `json:"intolerances,omitempty"`
	DietaryPreference string   `json:"dietary_preference,omitempty"`
	Exclusions        []string `json:"exclusions,omitempty"`
	Profile           Profile  `json:"profile"`
}

// Lang 顯示語言，未設定時為預設語言
func (u UserContext) Lang() string {
	if u.Language == "" {
		return catalog.DefaultLanguage
	}
	return strings.ToLower(u.Language)
}

// CountryCode 大寫國碼
func (u UserContext) CountryCode() string {
	return strings.ToUpper(strings.TrimSpace(u.Country))
}

// Restrictions 不耐症與飲食偏好合併後的限制清單（未正規化）
func (u UserContext) Restrictions() []string {
	out := make([]string, 0, len(u.Intolerances)+1)
	out = append(out, u.Intolerances...)
	if u.DietaryPreference != "" {
		out = append(out, u.DietaryPreference)
	}
	return out
}

// RawComponent 未經驗證的草稿成分
type RawComponent struct {
	Key              string           `json:"key,omitempty" bson:"key,omitempty"`
	Name             string           `json:"name,omitempty" bson:"name,omitempty"`
	Category         catalog.Category `json:"category,omitempty" bson:"category,omitempty"`
	Portion          float64          `json:"portion" bson:"portion"`
	Unit             catalog.Unit     `json:"unit,omitempty" bson:"unit,omitempty"`
	DeclaredCalories float64          `json:"declared_calories,omitempty" bson:"declared_calories,omitempty"`
	Substituted      string           `json:"substituted_from,omitempty" bson:"-"`
	Parts            []RawComponent   `json:"parts,omitempty" bson:"parts,omitempty"`
}

// RawMeal 尚未正規化的候選餐點
type RawMeal struct {
	Name             string         `json:"name" bson:"name"`
	MealType         Type           `json:"meal_type" bson:"meal_type"`
	Components       []RawComponent `json:"components" bson:"components"`
	DeclaredCalories float64        `json:"declared_calories,omitempty" bson:"total_calories,omitempty"`
	Source           Source         `json:"source" bson:"-"`
	Template         string         `json:"template,omitempty" bson:"-"`
	Hash             string         `json:"hash,omitempty" bson:"hash,omitempty"`
}

// Keys 成分 key（組合成分展開為其組成）
func (m RawMeal) Keys() []string {
	var keys []string
	for _, c := range m.Components {
		if len(c.Parts) > 0 {
			for _, p := range c.Parts {
				keys = append(keys, p.Key)
			}
			continue
		}
		keys = append(keys, c.Key)
	}
	return keys
}

// CombinationHash 排序後成分 key 的雜湊
func CombinationHash(keys []string) string {
	sorted := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			sorted = append(sorted, k)
		}
	}
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "|")))
	return hex.EncodeToString(sum[:8])
}

// Component 正規化後的成分
type Component struct {
	Key             string           `json:"key"`
	Name            string           `json:"name"`
	Category        catalog.Category `json:"category"`
	Portion         float64          `json:"portion"`
	Unit            catalog.Unit     `json:"unit"`
	PortionLabel    string           `json:"portion_label"`
	Macros          catalog.Macros   `json:"macros"`
	SubstitutedFrom string           `json:"substituted_from,omitempty"`
	Parts           []string         `json:"parts,omitempty"`
}

// Substitution 一次替換紀錄
type Substitution struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Restriction string `json:"restriction"`
}

// Removal 因不安全而移除的成分
type Removal struct {
	Key        string   `json:"key"`
	BlockedFor []string `json:"blocked_for"`
}

// SafetyAnnotation 安全檢查結果
type SafetyAnnotation struct {
	Restrictions  []string       `json:"restrictions,omitempty"`
	BlockedFor    []string       `json:"blocked_for,omitempty"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
	Removed       []Removal      `json:"removed,omitempty"`
	Emergency     bool           `json:"emergency,omitempty"`
}

// CanonicalMeal 唯一對外輸出的餐點表示
type CanonicalMeal struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	MealType   Type             `json:"meal_type"`
	Components []Component      `json:"components"`
	Totals     catalog.Macros   `json:"totals"`
	Safety     SafetyAnnotation `json:"safety"`
	Source     Source           `json:"source"`
	Hash       string           `json:"hash"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// Keys 成分 key（組合成分展開為其組成）
func (m *CanonicalMeal) Keys() []string {
	var keys []string
	for _, c := range m.Components {
		if len(c.Parts) > 0 {
			keys = append(keys, c.Parts...)
			continue
		}
		keys = append(keys, c.Key)
	}
	return keys
}

// PoolQuery 預先計算餐點池的查詢條件
type PoolQuery struct {
	MealType    Type
	Country     string
	BlockedKeys []string // 限制與排除展開後不能出現的成分
	MinCalories float64
	MaxCalories float64
	Limit       int
}

// DraftRequest 向 AI 要求草稿
type DraftRequest struct {
	MealType       Type
	Quantity       int
	User           UserContext
	TargetCalories float64
	AvoidNames     []string // 本次已產出的餐點名稱
}
