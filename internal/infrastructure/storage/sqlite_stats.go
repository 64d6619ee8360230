package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"meal-generator/internal/core/cascade"

	_ "modernc.org/sqlite"
)

// StatsStore 以 SQLite 記錄生成統計，只寫不讀
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore 開啟資料庫並建立 schema
func NewStatsStore(dbPath string) (*StatsStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create stats directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite 單一寫入者
	db.SetMaxOpenConns(1)

	store := &StatsStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close 關閉資料庫
func (s *StatsStore) Close() error {
	return s.db.Close()
}

func (s *StatsStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS generation_stats (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        request_id TEXT NOT NULL,
        meal_type TEXT NOT NULL,
        country TEXT NOT NULL,
        requested INTEGER NOT NULL,
        produced INTEGER NOT NULL,
        pool_count INTEGER NOT NULL,
        template_count INTEGER NOT NULL,
        ai_count INTEGER NOT NULL,
        emergency_count INTEGER NOT NULL,
        attempts INTEGER NOT NULL,
        rejection_rate REAL NOT NULL,
        rejections TEXT NOT NULL,
        budget_exhausted INTEGER NOT NULL,
        elapsed_ms INTEGER NOT NULL,
        created_at DATETIME NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_generation_stats_created_at ON generation_stats(created_at);
    CREATE INDEX IF NOT EXISTS idx_generation_stats_meal_type ON generation_stats(meal_type, country);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Record 寫入一筆統計
func (s *StatsStore) Record(ctx context.Context, st cascade.Stats) error {
	rejections := "{}"
	if len(st.Rejections) > 0 {
		b, err := json.Marshal(st.Rejections)
		if err != nil {
			return fmt.Errorf("failed to encode rejections: %w", err)
		}
		rejections = string(b)
	}

	query := `
        INSERT INTO generation_stats (request_id, meal_type, country, requested, produced,
            pool_count, template_count, ai_count, emergency_count, attempts, rejection_rate,
            rejections, budget_exhausted, elapsed_ms, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, query,
		st.RequestID, st.MealType, st.Country, st.Requested, st.Produced,
		st.PoolCount, st.TemplateCount, st.AICount, st.EmergencyCount, st.Attempts, st.RejectionRate,
		rejections, st.BudgetExhausted, st.Elapsed.Milliseconds(), st.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert stats: %w", err)
	}
	return nil
}
