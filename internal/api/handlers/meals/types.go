package meals

import (
	"meal-generator/internal/core/cascade"
	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
)

// GenerateRequest 生成單一餐別
type GenerateRequest struct {
	MealType           string           `json:"meal_type" binding:"required"`
	Quantity           int              `json:"quantity"`
	User               meal.UserContext `json:"user"`
	TargetCalories     float64          `json:"target_calories,omitempty"`
	PreviouslyRejected []string         `json:"previously_rejected_combination_hashes,omitempty"`
	Seed               int64            `json:"seed,omitempty"`
}

// GenerateResponse 生成結果
type GenerateResponse struct {
	RequestID string `json:"request_id"`
	*cascade.Response
}

// PlanRequest 一天多個餐別
type PlanRequest struct {
	MealTypes      []string           `json:"meal_types,omitempty"`
	Quantity       int                `json:"quantity"`
	User           meal.UserContext   `json:"user"`
	TargetCalories map[string]float64 `json:"target_calories,omitempty"`
	Seed           int64              `json:"seed,omitempty"`
}

// PlanEntry 一個餐別的結果
type PlanEntry struct {
	MealType meal.Type `json:"meal_type"`
	*cascade.Response
}

// PlanResponse 一天的餐點
type PlanResponse struct {
	RequestID string         `json:"request_id"`
	Plan      []PlanEntry    `json:"plan"`
	DayTotals catalog.Macros `json:"day_totals"` // 每個餐別第一份餐點的加總
}

// NormalizeRequest 外部草稿
type NormalizeRequest struct {
	Meal meal.RawMeal     `json:"meal"`
	User meal.UserContext `json:"user"`
}

// IngredientView 成分清單的一筆
type IngredientView struct {
	Key              string           `json:"key"`
	Name             string           `json:"name"`
	Category         catalog.Category `json:"category"`
	Unit             catalog.Unit     `json:"unit"`
	ReferencePortion float64          `json:"reference_portion"`
	DefaultPortion   float64          `json:"default_portion"`
	Macros           catalog.Macros   `json:"macros"`
	Contains         []string         `json:"contains,omitempty"`
}
