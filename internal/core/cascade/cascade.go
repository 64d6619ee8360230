package cascade

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/generator"
	"meal-generator/internal/core/meal"
	"meal-generator/internal/core/normalize"
	"meal-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// State 串接流程的階段
type State string

const (
	StatePool      State = "pool"
	StateTemplates State = "templates"
	StateAI        State = "ai"
	StateEmergency State = "emergency"
)

// 餐點池查詢的熱量範圍（目標熱量的倍數）
const (
	poolMinCalorieFactor = 0.3
	poolMaxCalorieFactor = 2.0
	// 餐點池多取幾倍，抵銷正規化失敗
	poolOverfetch = 3
)

// PoolSource 預先計算的餐點池
type PoolSource interface {
	Candidates(ctx context.Context, q meal.PoolQuery) ([]meal.RawMeal, error)
}

// TemplateSource 模板搜尋生成器
type TemplateSource interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

// DraftSource AI 草稿
type DraftSource interface {
	Drafts(ctx context.Context, req meal.DraftRequest) ([]meal.RawMeal, error)
}

// Normalizer 正規化核心
type Normalizer interface {
	ProcessRawMeal(ctx context.Context, raw meal.RawMeal, user meal.UserContext) *normalize.Outcome
	Emergency(ctx context.Context, mt meal.Type, user meal.UserContext) *meal.CanonicalMeal
}

// Request 一次生成請求
type Request struct {
	MealType           meal.Type        `json:"meal_type"`
	Quantity           int              `json:"quantity"`
	User               meal.UserContext `json:"user"`
	TargetCalories     float64          `json:"target_calories,omitempty"`
	PreviouslyRejected []string         `json:"previously_rejected_combination_hashes,omitempty"`
	Seed               int64            `json:"seed,omitempty"`
}

// Response 生成結果；所有階段都用盡時 Meals 可能少於請求數量
type Response struct {
	Meals          []*meal.CanonicalMeal `json:"meals"`
	States         map[State]int         `json:"states"`
	RejectedHashes []string              `json:"rejected_combination_hashes,omitempty"`
	Warnings       []string              `json:"warnings,omitempty"`
}

// Orchestrator Pool → Templates → AI → Emergency 的串接流程
type Orchestrator struct {
	catalog   *catalog.Catalog
	safety    generator.SafetySource
	core      Normalizer
	templates TemplateSource
	pool      PoolSource
	drafts    DraftSource
	stats     StatsSink
	now       func() time.Time
}

// Option 設定選用的協作者
type Option func(*Orchestrator)

// WithPool 設定餐點池
func WithPool(p PoolSource) Option {
	return func(o *Orchestrator) { o.pool = p }
}

// WithDrafts 設定 AI 草稿來源
func WithDrafts(d DraftSource) Option {
	return func(o *Orchestrator) { o.drafts = d }
}

// WithStats 設定統計寫入端
func WithStats(s StatsSink) Option {
	return func(o *Orchestrator) { o.stats = s }
}

// NewOrchestrator 創建串接流程；pool 與 AI 未設定時跳過該階段
func NewOrchestrator(cat *catalog.Catalog, ss generator.SafetySource, core Normalizer, templates TemplateSource, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		catalog:   cat,
		safety:    ss,
		core:      core,
		templates: templates,
		stats:     LogSink{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run 一次請求的累積狀態
type run struct {
	req       Request
	rng       *rand.Rand
	remaining int
	seen      map[string]struct{}
	resp      *Response
	stats     Stats
}

func (r *run) accept(state State, m *meal.CanonicalMeal) bool {
	if m == nil || r.remaining <= 0 {
		return false
	}
	if _, dup := r.seen[m.Hash]; dup {
		return false
	}
	r.seen[m.Hash] = struct{}{}
	r.resp.Meals = append(r.resp.Meals, m)
	r.resp.States[state]++
	r.remaining--
	return true
}

func (r *run) names() []string {
	out := make([]string, 0, len(r.resp.Meals))
	for _, m := range r.resp.Meals {
		out = append(out, m.Name)
	}
	return out
}

func (r *run) hashes() []string {
	out := make([]string, 0, len(r.seen))
	for h := range r.seen {
		out = append(out, h)
	}
	return out
}

// Generate 依序執行各階段，直到數量滿足或所有階段用盡
// 只有請求本身無效時才回傳錯誤
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Response, error) {
	mt, ok := meal.ParseType(string(req.MealType))
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownMealType, req.MealType)
	}
	req.MealType = mt
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidQuantity, req.Quantity)
	}
	if req.TargetCalories <= 0 {
		req.TargetCalories = mt.DefaultTargetCalories()
	}

	seed := req.Seed
	if seed == 0 {
		seed = o.now().UnixNano()
	}
	start := o.now()
	r := &run{
		req:       req,
		rng:       rand.New(rand.NewSource(seed)),
		remaining: req.Quantity,
		seen:      make(map[string]struct{}),
		resp:      &Response{States: make(map[State]int)},
		stats: Stats{
			RequestID: common.RequestIDFrom(ctx),
			MealType:  string(mt),
			Country:   req.User.CountryCode(),
			Requested: req.Quantity,
			CreatedAt: start,
		},
	}

	for _, step := range []struct {
		state State
		fn    func(context.Context, *run) error
	}{
		{StatePool, o.fromPool},
		{StateTemplates, o.fromTemplates},
		{StateAI, o.fromAI},
	} {
		if r.remaining == 0 {
			break
		}
		before := r.remaining
		if err := step.fn(ctx, r); err != nil {
			level := common.LogWarn
			if errors.Is(err, common.ErrCollaboratorUnavailable) {
				level = common.LogDebug
			}
			level("串接階段略過",
				zap.String("state", string(step.state)),
				zap.String("meal_type", string(mt)),
				zap.Int("remaining", r.remaining),
				zap.Error(err),
			)
			r.resp.Warnings = append(r.resp.Warnings, fmt.Sprintf("%s: %v", step.state, err))
		}
		common.LogDebug("串接階段完成",
			zap.String("state", string(step.state)),
			zap.Int("produced", before-r.remaining),
			zap.Int("remaining", r.remaining),
		)
	}

	if r.remaining > 0 {
		o.fromEmergency(ctx, r)
	}

	st := &r.stats
	st.Produced = len(r.resp.Meals)
	st.PoolCount = r.resp.States[StatePool]
	st.TemplateCount = r.resp.States[StateTemplates]
	st.AICount = r.resp.States[StateAI]
	st.EmergencyCount = r.resp.States[StateEmergency]
	st.Elapsed = o.now().Sub(start)
	if o.stats != nil {
		if err := o.stats.Record(ctx, *st); err != nil {
			common.LogWarn("寫入生成統計失敗", zap.Error(err))
		}
	}

	common.LogInfo("餐點生成完成",
		zap.String("request_id", st.RequestID),
		zap.String("meal_type", string(mt)),
		zap.Int("requested", req.Quantity),
		zap.Int("produced", st.Produced),
		zap.Any("states", r.resp.States),
	)
	return r.resp, nil
}

// fromPool 從餐點池取候選，打亂後逐一正規化
func (o *Orchestrator) fromPool(ctx context.Context, r *run) error {
	if o.pool == nil {
		return common.ErrCollaboratorUnavailable
	}
	q := meal.PoolQuery{
		MealType:    r.req.MealType,
		Country:     r.req.User.CountryCode(),
		BlockedKeys: o.blockedKeys(ctx, r.req.User),
		MinCalories: r.req.TargetCalories * poolMinCalorieFactor,
		MaxCalories: r.req.TargetCalories * poolMaxCalorieFactor,
		Limit:       r.remaining * poolOverfetch,
	}
	candidates, err := o.pool.Candidates(ctx, q)
	if err != nil {
		return err
	}
	r.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, raw := range candidates {
		if r.remaining == 0 {
			break
		}
		raw.MealType = r.req.MealType
		raw.Source = meal.SourcePool
		o.normalizeInto(ctx, r, StatePool, raw)
	}
	return nil
}

// fromTemplates 以模板搜尋補足剩餘數量
func (o *Orchestrator) fromTemplates(ctx context.Context, r *run) error {
	if o.templates == nil {
		return common.ErrCollaboratorUnavailable
	}
	res, err := o.templates.Generate(ctx, generator.Request{
		MealType:           r.req.MealType,
		Quantity:           r.remaining,
		User:               r.req.User,
		TargetCalories:     r.req.TargetCalories,
		PreviouslyRejected: r.req.PreviouslyRejected,
		Avoid:              r.hashes(),
		Seed:               r.rng.Int63(),
	})
	if err != nil {
		return err
	}

	r.stats.Attempts = res.Attempts
	r.stats.RejectionRate = res.RejectionRate()
	r.stats.Rejections = res.Rejections
	r.stats.BudgetExhausted = res.BudgetExhausted
	for h := range res.RejectedHashes {
		r.resp.RejectedHashes = append(r.resp.RejectedHashes, h)
	}
	sort.Strings(r.resp.RejectedHashes)
	if res.BudgetExhausted {
		r.resp.Warnings = append(r.resp.Warnings, fmt.Sprintf("%s: %v", StateTemplates, common.ErrBudgetExhausted))
	}

	for _, raw := range res.Meals {
		o.normalizeInto(ctx, r, StateTemplates, raw)
	}
	return nil
}

// fromAI 向 AI 要求剩餘數量的草稿
func (o *Orchestrator) fromAI(ctx context.Context, r *run) error {
	if o.drafts == nil {
		return common.ErrCollaboratorUnavailable
	}
	drafts, err := o.drafts.Drafts(ctx, meal.DraftRequest{
		MealType:       r.req.MealType,
		Quantity:       r.remaining,
		User:           r.req.User,
		TargetCalories: r.req.TargetCalories,
		AvoidNames:     r.names(),
	})
	if err != nil {
		return err
	}
	for _, raw := range drafts {
		raw.MealType = r.req.MealType
		raw.Source = meal.SourceAI
		o.normalizeInto(ctx, r, StateAI, raw)
	}
	return nil
}

// fromEmergency 直接產生剩餘數量的緊急餐點；同一組合可重複
func (o *Orchestrator) fromEmergency(ctx context.Context, r *run) {
	common.LogWarn("使用緊急餐點補足數量",
		zap.String("meal_type", string(r.req.MealType)),
		zap.Int("remaining", r.remaining),
	)
	for r.remaining > 0 {
		m := o.core.Emergency(ctx, r.req.MealType, r.req.User)
		r.resp.Meals = append(r.resp.Meals, m)
		r.resp.States[StateEmergency]++
		r.remaining--
	}
}

func (o *Orchestrator) normalizeInto(ctx context.Context, r *run, state State, raw meal.RawMeal) {
	out := o.core.ProcessRawMeal(ctx, raw, r.req.User)
	if !out.Success {
		common.LogDebug("草稿正規化失敗",
			zap.String("state", string(state)),
			zap.String("name", raw.Name),
			zap.Strings("errors", out.Errors),
		)
		return
	}
	if !r.accept(state, out.Meal) {
		common.LogDebug("重複的組合已略過", zap.String("state", string(state)), zap.String("hash", out.Meal.Hash))
	}
}

// blockedKeys 使用者限制與排除清單展開後不能出現的成分
func (o *Orchestrator) blockedKeys(ctx context.Context, user meal.UserContext) []string {
	blocked := o.catalog.ExpandExclusions(user.Exclusions)
	if o.safety == nil {
		return blocked
	}
	db := o.safety.Database(ctx)
	restrictions := db.Normalize(user.Restrictions())
	if len(restrictions) == 0 {
		return blocked
	}
	set := make(map[string]struct{}, len(blocked))
	for _, k := range blocked {
		set[k] = struct{}{}
	}
	for _, ing := range o.catalog.All() {
		if _, ok := set[ing.Key]; ok {
			continue
		}
		if !db.IsSafe(ing, restrictions) {
			blocked = append(blocked, ing.Key)
		}
	}
	return blocked
}
