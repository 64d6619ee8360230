package generator

import (
	"math/rand"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/meal"
)

// CarbWeights 碳水 slot 三類的抽選機率
type CarbWeights struct {
	Neutral     float64
	Accepted    float64
	Restrictive float64
}

// CarbWeightsFor 依使用者目標計算分佈；明確拒絕全穀時只留中性
func CarbWeightsFor(p meal.Profile) CarbWeights {
	if !p.WholeGrainsAccepted() {
		return CarbWeights{Neutral: 1}
	}
	if p.Diabetic || p.Goal == meal.GoalDiabetes {
		return CarbWeights{Neutral: 0.2, Accepted: 0.5, Restrictive: 0.3}
	}
	switch p.Goal {
	case meal.GoalWeightLoss:
		return CarbWeights{Neutral: 0.4, Accepted: 0.45, Restrictive: 0.15}
	case meal.GoalMuscleGain:
		return CarbWeights{Neutral: 0.6, Accepted: 0.35, Restrictive: 0.05}
	default:
		return CarbWeights{Neutral: 0.7, Accepted: 0.3}
	}
}

// draw 以均勻亂數落在哪個區間決定類別
func (w CarbWeights) draw(rng *rand.Rand) catalog.CarbKind {
	total := w.Neutral + w.Accepted + w.Restrictive
	if total <= 0 {
		return catalog.CarbNeutral
	}
	r := rng.Float64() * total
	switch {
	case r < w.Neutral:
		return catalog.CarbNeutral
	case r < w.Neutral+w.Accepted:
		return catalog.CarbAcceptedWhole
	default:
		return catalog.CarbRestrictiveWhole
	}
}

var carbFallbackOrder = []catalog.CarbKind{
	catalog.CarbNeutral,
	catalog.CarbAcceptedWhole,
	catalog.CarbRestrictiveWhole,
}

// pickCarb 先抽類別，該類別沒有候選時依 中性 → 接受 → 限制 → 任意 的順序退回
func pickCarb(rng *rand.Rand, w CarbWeights, candidates []*catalog.Ingredient) *catalog.Ingredient {
	if len(candidates) == 0 {
		return nil
	}
	byKind := make(map[catalog.CarbKind][]*catalog.Ingredient, 3)
	for _, ing := range candidates {
		kind := ing.CarbKind
		if kind == "" {
			kind = catalog.CarbNeutral
		}
		byKind[kind] = append(byKind[kind], ing)
	}

	if bucket := byKind[w.draw(rng)]; len(bucket) > 0 {
		return bucket[rng.Intn(len(bucket))]
	}
	for _, kind := range carbFallbackOrder {
		if bucket := byKind[kind]; len(bucket) > 0 {
			return bucket[rng.Intn(len(bucket))]
		}
	}
	return candidates[rng.Intn(len(candidates))]
}
