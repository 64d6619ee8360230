package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// maxRemembered 每個餐別與國家記住的最近草稿名稱數
const maxRemembered = 10

// DraftGenerator 以 AI 產生餐點草稿，輸出一律交給正規化核心處理
type DraftGenerator struct {
	service *Service
	catalog *catalog.Catalog
	recent  sync.Map // mealType|country -> []string
}

// NewDraftGenerator 創建草稿生成器
func NewDraftGenerator(service *Service, cat *catalog.Catalog) *DraftGenerator {
	return &DraftGenerator{
		service: service,
		catalog: cat,
	}
}

type draftResponse struct {
	Meals []draftMeal `json:"meals"`
}

type draftMeal struct {
	Name          string           `json:"name"`
	Components    []draftComponent `json:"components"`
	TotalCalories flexFloat        `json:"total_calories"`
}

type draftComponent struct {
	Key     string    `json:"key"`
	Name    string    `json:"name"`
	Portion flexFloat `json:"portion"`
	Unit    string    `json:"unit"`
}

// flexFloat 模型有時把數字寫成字串（"120g"、"1,5"）
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*f = 0
		return nil
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// Drafts 要求 req.Quantity 份草稿；回傳的草稿未經驗證
func (g *DraftGenerator) Drafts(ctx context.Context, req meal.DraftRequest) ([]meal.RawMeal, error) {
	if g == nil || g.service == nil {
		return nil, common.ErrCollaboratorUnavailable
	}
	if req.Quantity <= 0 {
		return nil, common.ErrInvalidQuantity
	}

	key := string(req.MealType) + "|" + req.User.CountryCode()
	avoid := append([]string{}, req.AvoidNames...)
	if val, ok := g.recent.Load(key); ok {
		if names, okCast := val.([]string); okCast {
			avoid = append(avoid, names...)
		}
	}

	prompt := g.buildPrompt(req, avoid)
	common.LogDebug("AI 草稿 prompt", zap.String("prompt", prompt))

	content, err := g.service.ProcessRequest(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("AI service error: %w", err)
	}

	var resp draftResponse
	if err := common.ParseLenientJSON(content, &resp); err != nil {
		common.LogError("AI 草稿解析失敗", zap.Error(err), zap.Int("ai_response_length", len(content)))
		return nil, fmt.Errorf("failed to parse AI drafts: %w", err)
	}

	drafts := make([]meal.RawMeal, 0, len(resp.Meals))
	var names []string
	for _, dm := range resp.Meals {
		if len(dm.Components) == 0 {
			continue
		}
		raw := meal.RawMeal{
			Name:             strings.TrimSpace(dm.Name),
			MealType:         req.MealType,
			DeclaredCalories: float64(dm.TotalCalories),
			Source:           meal.SourceAI,
		}
		for _, dc := range dm.Components {
			raw.Components = append(raw.Components, meal.RawComponent{
				Key:     strings.TrimSpace(dc.Key),
				Name:    strings.TrimSpace(dc.Name),
				Portion: float64(dc.Portion),
				Unit:    catalog.Unit(strings.ToLower(strings.TrimSpace(dc.Unit))),
			})
		}
		drafts = append(drafts, raw)
		if raw.Name != "" {
			names = append(names, raw.Name)
		}
		if len(drafts) == req.Quantity {
			break
		}
	}

	if len(names) > 0 {
		g.remember(key, names)
	}
	common.LogInfo("AI 草稿已取得",
		zap.String("meal_type", string(req.MealType)),
		zap.Int("requested", req.Quantity),
		zap.Int("received", len(drafts)),
	)
	return drafts, nil
}

// remember 保留最近的草稿名稱，下次要求時列入避免清單
func (g *DraftGenerator) remember(key string, names []string) {
	var prev []string
	if val, ok := g.recent.Load(key); ok {
		prev, _ = val.([]string)
	}
	merged := append(append([]string{}, names...), prev...)
	if len(merged) > maxRemembered {
		merged = merged[:maxRemembered]
	}
	g.recent.Store(key, merged)
}

func (g *DraftGenerator) buildPrompt(req meal.DraftRequest, avoid []string) string {
	target := req.TargetCalories
	if target <= 0 {
		target = req.MealType.DefaultTargetCalories()
	}
	country := req.User.CountryCode()
	if country == "" {
		country = "BR"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create %d distinct %s meals typical for country %s.\n", req.Quantity, strings.ReplaceAll(string(req.MealType), "_", " "), country)
	fmt.Fprintf(&sb, "Each meal should have about %.0f kcal.\n", target)
	fmt.Fprintf(&sb, "Meal names in language %q.\n", req.User.Lang())
	if r := req.User.Restrictions(); len(r) > 0 {
		fmt.Fprintf(&sb, "Never use ingredients unsuitable for: %s.\n", strings.Join(r, ", "))
	}
	if len(req.User.Exclusions) > 0 {
		fmt.Fprintf(&sb, "The user does not eat: %s.\n", strings.Join(req.User.Exclusions, ", "))
	}
	if len(avoid) > 0 {
		fmt.Fprintf(&sb, "Do not repeat these meals: %s.\n", strings.Join(dedupe(avoid), "; "))
	}
	fmt.Fprintf(&sb, "Use only these ingredient keys: %s.\n", strings.Join(g.catalog.Keys(), ", "))
	sb.WriteString("Portions in grams (g) or millilitres (ml). ")
	sb.WriteString("Answer with a single compact JSON object and nothing else, in this shape: ")
	sb.WriteString(`{"meals":[{"name":"...","components":[{"key":"...","name":"...","portion":120,"unit":"g"}],"total_calories":600}]}`)
	return sb.String()
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		k := common.FoldText(s)
		if _, ok := seen[k]; ok || k == "" {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
