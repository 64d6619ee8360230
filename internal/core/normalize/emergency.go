package normalize

import (
	"context"

	"go.uber.org/zap"

	"meal-generator/internal/core/meal"
	"meal-generator/internal/pkg/common"
)

type portion struct {
	key    string
	amount float64
}

// emergencyVariants 每個餐別依序嘗試的固定餐點，前面的最常見，後面的限制最少
var emergencyVariants = map[meal.Type][][]portion{
	meal.Breakfast: {
		{{"french_bread", 50}, {"boiled_egg", 50}, {"black_coffee", 50}, {"banana", 90}},
		{{"tapioca", 50}, {"boiled_egg", 50}, {"black_coffee", 50}, {"papaya", 150}},
		{{"oats", 30}, {"banana", 90}, {"soy_milk", 200}},
		{{"tapioca", 50}, {"banana", 90}, {"black_coffee", 50}},
	},
	meal.MorningSnack: {
		{{"banana", 90}, {"oats", 30}},
		{{"apple", 130}, {"tapioca", 30}},
		{{"papaya", 150}, {"cassava", 50}},
	},
	meal.AfternoonSnack: {
		{{"apple", 130}, {"oats", 30}},
		{{"banana", 90}, {"tapioca", 30}},
		{{"papaya", 150}, {"cassava", 50}},
	},
	meal.Lunch: {
		{{"chicken_breast", 120}, {"white_rice", 120}, {"black_beans", 100}, {"lettuce", 30}, {"tomato", 60}},
		{{"boiled_egg", 100}, {"white_rice", 120}, {"black_beans", 100}, {"carrot", 60}},
		{{"white_rice", 150}, {"black_beans", 150}, {"carrot", 60}, {"broccoli", 80}},
	},
	meal.Dinner: {
		{{"chicken_breast", 110}, {"white_rice", 100}, {"carioca_beans", 100}, {"broccoli", 80}},
		{{"boiled_egg", 100}, {"white_rice", 100}, {"black_beans", 100}, {"zucchini", 80}},
		{{"white_rice", 130}, {"lentils", 130}, {"carrot", 60}, {"zucchini", 80}},
	},
	meal.Supper: {
		{{"chicken_breast", 100}, {"sweet_potato", 100}, {"broccoli", 80}},
		{{"boiled_egg", 100}, {"potato", 130}, {"carrot", 60}},
		{{"sweet_potato", 150}, {"lentils", 100}, {"zucchini", 80}},
	},
}

// Emergency 固定的緊急餐點：取第一個完全安全的變體；都不安全時移除不安全的成分
func (c *Core) Emergency(ctx context.Context, mt meal.Type, user meal.UserContext) *meal.CanonicalMeal {
	r := c.newRun(ctx, user)
	variants := emergencyVariants[mt]
	if len(variants) == 0 {
		variants = emergencyVariants[meal.Lunch]
	}

	chosen := -1
	for i, v := range variants {
		if c.variantSafe(r, v, true) {
			chosen = i
			break
		}
	}
	if chosen < 0 {
		for i, v := range variants {
			if c.variantSafe(r, v, false) {
				chosen = i
				break
			}
		}
	}

	var items []*item
	ann := meal.SafetyAnnotation{Restrictions: r.restrictions, Emergency: true}
	if chosen >= 0 {
		for _, p := range variants[chosen] {
			items = append(items, &item{ing: c.catalog.MustGet(p.key), portion: p.amount})
		}
	} else {
		// 沒有完全安全的變體：保留最後一個變體中安全的成分
		last := variants[len(variants)-1]
		for _, p := range last {
			ing := c.catalog.MustGet(p.key)
			if blocked := r.db.BlockedFor(ing, r.restrictions); len(blocked) > 0 {
				ann.Removed = append(ann.Removed, meal.Removal{Key: ing.Key, BlockedFor: blocked})
				continue
			}
			items = append(items, &item{ing: ing, portion: p.amount})
		}
		common.LogWarn("沒有完全安全的緊急餐點變體",
			zap.String("meal_type", string(mt)),
			zap.Strings("restrictions", r.restrictions),
		)
	}

	items = c.mergeComposite(r, items)
	sortForPresentation(items, mt)

	comps := make([]meal.RawComponent, 0, len(items))
	for _, it := range items {
		comps = append(comps, toRaw(it, r.lang))
	}
	name, ok := r.validator.ComposeName(comps, r.lang)
	if !ok {
		name = emergencyTitle(r.lang)
	}

	cm := c.assemble(r, items, mt, name, meal.SourceEmergency)
	cm.Safety = ann
	return cm
}

// variantSafe 所有成分都安全；honourExclusions 時也不能含使用者排除的成分
func (c *Core) variantSafe(r *run, v []portion, honourExclusions bool) bool {
	for _, p := range v {
		ing := c.catalog.MustGet(p.key)
		if !r.db.IsSafe(ing, r.restrictions) {
			return false
		}
		if _, ex := r.excluded[ing.Key]; ex && honourExclusions {
			return false
		}
	}
	return true
}

func emergencyTitle(lang string) string {
	if lang == "en" {
		return "Simple meal"
	}
	return "Refeição simples"
}
