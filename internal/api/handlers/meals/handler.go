package meals

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"meal-generator/internal/core/cascade"
	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/core/normalize"
	"meal-generator/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generator 串接流程
type Generator interface {
	Generate(ctx context.Context, req cascade.Request) (*cascade.Response, error)
}

// Normalizer 外部草稿的正規化
type Normalizer interface {
	ProcessOrFallback(ctx context.Context, raw meal.RawMeal, user meal.UserContext) *normalize.Outcome
}

// Handler 餐點 API
type Handler struct {
	generator   Generator
	normalizer  Normalizer
	catalog     *catalog.Catalog
	maxQuantity int
}

// NewHandler 創建餐點處理程序
func NewHandler(gen Generator, norm Normalizer, cat *catalog.Catalog, maxQuantity int) *Handler {
	if maxQuantity <= 0 {
		maxQuantity = 20
	}
	return &Handler{
		generator:   gen,
		normalizer:  norm,
		catalog:     cat,
		maxQuantity: maxQuantity,
	}
}

// HandleGenerate POST /meals/generate
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := requestid.Get(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效", zap.Error(err), zap.String("request_id", requestID))
		common.WriteError(c, common.ErrInvalidRequest, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity > h.maxQuantity {
		common.WriteError(c, common.ErrInvalidRequest, "quantity exceeds limit")
		return
	}

	resp, err := h.generator.Generate(c.Request.Context(), cascade.Request{
		MealType:           meal.Type(req.MealType),
		Quantity:           req.Quantity,
		User:               req.User,
		TargetCalories:     req.TargetCalories,
		PreviouslyRejected: req.PreviouslyRejected,
		Seed:               req.Seed,
	})
	if err != nil {
		h.writeGenerateError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{RequestID: requestID, Response: resp})
}

// HandlePlan POST /meals/plan：每個餐別各跑一次串接流程，同時進行
func (h *Handler) HandlePlan(c *gin.Context) {
	requestID := requestid.Get(c)

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.ErrInvalidRequest, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity > h.maxQuantity {
		common.WriteError(c, common.ErrInvalidRequest, "quantity exceeds limit")
		return
	}

	types := meal.AllTypes
	if len(req.MealTypes) > 0 {
		types = make([]meal.Type, 0, len(req.MealTypes))
		for _, s := range req.MealTypes {
			mt, ok := meal.ParseType(s)
			if !ok {
				common.WriteError(c, common.ErrInvalidRequest, "unknown meal type: "+s)
				return
			}
			types = append(types, mt)
		}
	}

	plan := make([]PlanEntry, len(types))
	g, ctx := errgroup.WithContext(c.Request.Context())
	for i, mt := range types {
		i, mt := i, mt
		g.Go(func() error {
			seed := req.Seed
			if seed != 0 {
				seed += int64(i)
			}
			resp, err := h.generator.Generate(ctx, cascade.Request{
				MealType:       mt,
				Quantity:       req.Quantity,
				User:           req.User,
				TargetCalories: req.TargetCalories[string(mt)],
				Seed:           seed,
			})
			if err != nil {
				return err
			}
			plan[i] = PlanEntry{MealType: mt, Response: resp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.writeGenerateError(c, err)
		return
	}

	var totals catalog.Macros
	for _, e := range plan {
		if len(e.Meals) > 0 {
			totals = totals.Add(e.Meals[0].Totals)
		}
	}

	c.JSON(http.StatusOK, PlanResponse{RequestID: requestID, Plan: plan, DayTotals: totals.Rounded()})
}

// HandleNormalize POST /meals/normalize：外部草稿經正規化核心處理，失敗時回傳緊急餐點
func (h *Handler) HandleNormalize(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.ErrInvalidRequest, err.Error())
		return
	}
	mt, ok := meal.ParseType(string(req.Meal.MealType))
	if !ok {
		common.WriteError(c, common.ErrInvalidRequest, "unknown meal type")
		return
	}
	if len(req.Meal.Components) == 0 {
		common.WriteError(c, common.ErrInvalidRequest, "meal has no components")
		return
	}
	req.Meal.MealType = mt
	req.Meal.Source = meal.SourceExternal

	out := h.normalizer.ProcessOrFallback(c.Request.Context(), req.Meal, req.User)
	c.JSON(http.StatusOK, out)
}

// HandleListIngredients GET /catalog/ingredients?category=&lang=
func (h *Handler) HandleListIngredients(c *gin.Context) {
	lang := c.DefaultQuery("lang", catalog.DefaultLanguage)
	category := catalog.Category(strings.ToLower(c.Query("category")))

	items := make([]IngredientView, 0, h.catalog.Len())
	for _, ing := range h.catalog.All() {
		if category != "" && ing.Category != category {
			continue
		}
		items = append(items, IngredientView{
			Key:              ing.Key,
			Name:             ing.Name(lang),
			Category:         ing.Category,
			Unit:             ing.Unit,
			ReferencePortion: ing.ReferencePortion,
			DefaultPortion:   ing.DefaultPortion,
			Macros:           ing.Macros,
			Contains:         ing.Contains,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(items),
		"ingredients": items,
	})
}

func (h *Handler) writeGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrUnknownMealType), errors.Is(err, common.ErrInvalidQuantity):
		common.WriteError(c, common.ErrInvalidRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		common.WriteError(c, common.ErrRequestTimeout, err.Error())
	default:
		common.LogError("餐點生成失敗", zap.Error(err), zap.String("request_id", requestid.Get(c)))
		common.WriteError(c, common.ErrInternalError, "")
	}
}
