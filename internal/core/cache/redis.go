package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"meal-generator/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// OverrideStore 以 Redis 保存管理員覆寫的資料表（JSON）
type OverrideStore struct {
	client *redis.Client
}

// NewOverrideStore 建立連線並測試
func NewOverrideStore(ctx context.Context, cfg config.RedisConfig) (*OverrideStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &OverrideStore{client: client}, nil
}

// GetJSON 讀取 key 並解析到 v；key 不存在時回傳 false
func (s *OverrideStore) GetJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Ping 健康檢查
func (s *OverrideStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *OverrideStore) Close() error {
	return s.client.Close()
}
