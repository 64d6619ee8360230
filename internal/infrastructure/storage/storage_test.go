package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"meal-generator/internal/core/cascade"
	"meal-generator/internal/core/meal"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPoolFilter(t *testing.T) {
	f := poolFilter(meal.PoolQuery{
		MealType:    meal.Lunch,
		Country:     "BR",
		BlockedKeys: []string{"whole_milk"},
		MinCalories: 195,
		MaxCalories: 1300,
		Limit:       6,
	})
	if f["meal_type"] != meal.Lunch || f["country"] != "BR" || f["is_active"] != true {
		t.Fatalf("unexpected base filter %v", f)
	}
	nin, ok := f["components.key"].(bson.M)
	if !ok || len(nin["$nin"].([]string)) != 1 {
		t.Fatalf("blocked keys missing: %v", f)
	}
	if _, ok := f["components.parts.key"]; !ok {
		t.Fatal("composite parts must be filtered too")
	}
	cal := f["total_calories"].(bson.M)
	if cal["$gte"] != 195.0 || cal["$lte"] != 1300.0 {
		t.Fatalf("calorie window = %v", cal)
	}
}

func TestPoolFilterMinimal(t *testing.T) {
	f := poolFilter(meal.PoolQuery{MealType: meal.Supper})
	for _, k := range []string{"country", "components.key", "total_calories"} {
		if _, ok := f[k]; ok {
			t.Errorf("unexpected %s in %v", k, f)
		}
	}
}

func TestPoolDocumentDecodesRawMeal(t *testing.T) {
	data, err := bson.Marshal(bson.M{
		"name":           "Frango com arroz e feijão",
		"meal_type":      "lunch",
		"country":        "BR",
		"is_active":      true,
		"total_calories": 520.0,
		"components": bson.A{
			bson.M{"key": "chicken_breast", "portion": 120.0},
			bson.M{"key": "white_rice", "portion": 100.0},
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc poolDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Country != "BR" || doc.RawMeal.MealType != meal.Lunch || doc.RawMeal.DeclaredCalories != 520 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if len(doc.RawMeal.Components) != 2 || doc.RawMeal.Components[0].Key != "chicken_breast" {
		t.Fatalf("components not decoded: %+v", doc.RawMeal.Components)
	}
}

func TestStatsStoreRecord(t *testing.T) {
	store, err := NewStatsStore(filepath.Join(t.TempDir(), "nested", "stats.db"))
	if err != nil {
		t.Fatalf("NewStatsStore: %v", err)
	}
	defer store.Close()

	st := cascade.Stats{
		RequestID:      "req-1",
		MealType:       "lunch",
		Country:        "BR",
		Requested:      5,
		Produced:       5,
		TemplateCount:  4,
		EmergencyCount: 1,
		Attempts:       120,
		RejectionRate:  0.4,
		Rejections:     map[string]int{"duplicate": 48},
		Elapsed:        150 * time.Millisecond,
		CreatedAt:      time.Now(),
	}
	if err := store.Record(context.Background(), st); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(context.Background(), cascade.Stats{RequestID: "req-2", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var count int
	var rejections string
	var elapsed int64
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM generation_stats`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if err := store.db.QueryRow(`SELECT rejections, elapsed_ms FROM generation_stats WHERE request_id = ?`, "req-1").Scan(&rejections, &elapsed); err != nil {
		t.Fatalf("select: %v", err)
	}
	if count != 2 || rejections != `{"duplicate":48}` || elapsed != 150 {
		t.Fatalf("unexpected row: count=%d rejections=%s elapsed=%d", count, rejections, elapsed)
	}
}
