package safety

import (
	"context"
	"fmt"
	"time"

	"meal-generator/internal/core/cache"
	"meal-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// OverrideSource 管理員覆寫資料的來源（Redis）
type OverrideSource interface {
	GetJSON(ctx context.Context, key string, v interface{}) (bool, error)
}

// Store 以快照提供限制資料庫，過期後重新讀取內建表與覆寫
type Store struct {
	snapshot  *cache.Snapshot[*Database]
	overrides OverrideSource
	redisKey  string
}

// NewStore 創建限制資料庫 store；overrides 可為 nil
func NewStore(ttl time.Duration, overrides OverrideSource, redisKey string) *Store {
	s := &Store{
		overrides: overrides,
		redisKey:  redisKey,
	}
	s.snapshot = cache.NewSnapshot("safety", ttl, s.load)
	return s
}

// Database 取得目前的資料庫；連第一次載入都失敗時退回內建表
func (s *Store) Database(ctx context.Context) *Database {
	db, err := s.snapshot.Get(ctx)
	if err == nil {
		return db
	}
	common.LogError("限制資料庫載入失敗，使用內建表", zap.Error(err))
	embedded, embErr := EmbeddedDatabase()
	if embErr != nil {
		// 內建表在測試中驗證，不應發生
		panic(fmt.Sprintf("embedded restrictions invalid: %v", embErr))
	}
	return embedded
}

// Refresh 立即重新載入（管理端更新後呼叫）
func (s *Store) Refresh(ctx context.Context) error {
	_, err := s.snapshot.Refresh(ctx)
	return err
}

func (s *Store) load(ctx context.Context) (*Database, error) {
	db, err := EmbeddedDatabase()
	if err != nil {
		return nil, err
	}
	if s.overrides == nil || s.redisKey == "" {
		return db, nil
	}

	var overrides map[string]*Restriction
	found, err := s.overrides.GetJSON(ctx, s.redisKey, &overrides)
	if err != nil {
		return nil, fmt.Errorf("read restriction overrides: %w", err)
	}
	if !found || len(overrides) == 0 {
		return db, nil
	}

	common.LogInfo("套用限制條件覆寫", zap.Int("count", len(overrides)))
	return db.merge(overrides), nil
}
