package rules

import (
	"context"
	"fmt"
	"time"

	"meal-generator/internal/core/cache"
	"meal-generator/internal/core/catalog"
	"meal-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// OverrideSource 管理員覆寫資料的來源（Redis）
type OverrideSource interface {
	GetJSON(ctx context.Context, key string, v interface{}) (bool, error)
}

// Store 以快照提供規則引擎
type Store struct {
	snapshot  *cache.Snapshot[*Engine]
	catalog   *catalog.Catalog
	overrides OverrideSource
	redisKey  string
}

// NewStore 創建規則 store；overrides 可為 nil
func NewStore(ttl time.Duration, cat *catalog.Catalog, overrides OverrideSource, redisKey string) *Store {
	s := &Store{
		catalog:   cat,
		overrides: overrides,
		redisKey:  redisKey,
	}
	s.snapshot = cache.NewSnapshot("rules", ttl, s.load)
	return s
}

// Engine 取得目前的規則引擎；第一次載入失敗時使用內建規則
func (s *Store) Engine(ctx context.Context) *Engine {
	e, err := s.snapshot.Get(ctx)
	if err == nil {
		return e
	}
	common.LogError("規則載入失敗，使用內建規則", zap.Error(err))
	rs, embErr := EmbeddedRuleSet()
	if embErr != nil {
		panic(fmt.Sprintf("embedded rules invalid: %v", embErr))
	}
	return NewEngine(rs, s.catalog)
}

// Refresh 立即重新載入
func (s *Store) Refresh(ctx context.Context) error {
	_, err := s.snapshot.Refresh(ctx)
	return err
}

func (s *Store) load(ctx context.Context) (*Engine, error) {
	rs, err := EmbeddedRuleSet()
	if err != nil {
		return nil, err
	}

	if s.overrides != nil && s.redisKey != "" {
		var o RuleSet
		found, err := s.overrides.GetJSON(ctx, s.redisKey, &o)
		if err != nil {
			return nil, fmt.Errorf("read rule overrides: %w", err)
		}
		if found {
			merged := rs.merge(&o)
			// 覆寫引用未知成分時拒絕，保留舊快照
			if err := merged.Check(s.catalog); err != nil {
				return nil, fmt.Errorf("invalid rule overrides: %w", err)
			}
			common.LogInfo("套用規則覆寫",
				zap.Int("countries", len(o.Countries)),
				zap.Int("composites", len(o.Composites)),
				zap.Int("substitutions", len(o.Substitutions)),
			)
			rs = merged
		}
	}

	return NewEngine(rs, s.catalog), nil
}
