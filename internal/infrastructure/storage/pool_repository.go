package storage

import (
	"context"
	"fmt"
	"time"

	"meal-generator/internal/core/meal"
	"meal-generator/internal/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// poolDocument 餐點池中的一筆預先計算餐點
type poolDocument struct {
	meal.RawMeal `bson:",inline"`
	Country      string `bson:"country"`
	IsActive     bool   `bson:"is_active"`
}

// PoolRepository 預先計算餐點池
type PoolRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewPoolRepository 創建餐點池 repository
func NewPoolRepository(db *MongoDB, collection string, timeout time.Duration) *PoolRepository {
	return &PoolRepository{
		collection: db.Collection(collection),
		timeout:    timeout,
	}
}

// EnsureIndexes 建立查詢用的索引
func (r *PoolRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "meal_type", Value: 1},
			{Key: "country", Value: 1},
			{Key: "total_calories", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create pool index: %w", err)
	}
	return nil
}

// Candidates 依餐別、國家、封鎖成分與熱量範圍查詢候選餐點
func (r *PoolRepository) Candidates(ctx context.Context, q meal.PoolQuery) ([]meal.RawMeal, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := r.collection.Find(ctx, poolFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query pool: %w", err)
	}
	defer cursor.Close(ctx)

	var out []meal.RawMeal
	for cursor.Next(ctx) {
		var doc poolDocument
		if err := cursor.Decode(&doc); err != nil {
			common.LogWarn("略過無法解析的餐點池文件", zap.Error(err))
			continue
		}
		doc.RawMeal.Source = meal.SourcePool
		out = append(out, doc.RawMeal)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("pool cursor error: %w", err)
	}

	common.LogDebug("餐點池查詢完成",
		zap.String("meal_type", string(q.MealType)),
		zap.String("country", q.Country),
		zap.Int("blocked", len(q.BlockedKeys)),
		zap.Int("found", len(out)),
	)
	return out, nil
}

// poolFilter 組合查詢條件；封鎖成分同時檢查組合成分的組成
func poolFilter(q meal.PoolQuery) bson.M {
	filter := bson.M{
		"meal_type": q.MealType,
		"is_active": true,
	}
	if q.Country != "" {
		filter["country"] = q.Country
	}
	if len(q.BlockedKeys) > 0 {
		filter["components.key"] = bson.M{"$nin": q.BlockedKeys}
		filter["components.parts.key"] = bson.M{"$nin": q.BlockedKeys}
	}
	calories := bson.M{}
	if q.MinCalories > 0 {
		calories["$gte"] = q.MinCalories
	}
	if q.MaxCalories > 0 {
		calories["$lte"] = q.MaxCalories
	}
	if len(calories) > 0 {
		filter["total_calories"] = calories
	}
	return filter
}
