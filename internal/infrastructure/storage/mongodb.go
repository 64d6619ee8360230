package storage

import (
	"context"
	"fmt"
	"time"

	"meal-generator/internal/infrastructure/config"
	"meal-generator/internal/pkg/common"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoDB 餐點池使用的 MongoDB 連線
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDB 連線並 ping
func NewMongoDB(ctx context.Context, cfg config.PoolConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	common.LogInfo("Connected to MongoDB", zap.String("database", cfg.Database))

	return &MongoDB{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Ping 健康檢查用
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Collection 取得集合
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Disconnect 關閉連線
func (m *MongoDB) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	common.LogInfo("Closing MongoDB connection")
	return m.client.Disconnect(ctx)
}
