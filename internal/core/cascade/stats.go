package cascade

import (
	"context"
	"time"

	"meal-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// Stats 一次生成請求的統計，只寫不讀
type Stats struct {
	RequestID       string
	MealType        string
	Country         string
	Requested       int
	Produced        int
	PoolCount       int
	TemplateCount   int
	AICount         int
	EmergencyCount  int
	Attempts        int
	RejectionRate   float64
	Rejections      map[string]int
	BudgetExhausted bool
	Elapsed         time.Duration
	CreatedAt       time.Time
}

// StatsSink 統計寫入端
type StatsSink interface {
	Record(ctx context.Context, s Stats) error
}

// LogSink 以 zap 記錄統計，未設定 SQLite 時使用
type LogSink struct{}

// Record 寫一行 info log
func (LogSink) Record(ctx context.Context, s Stats) error {
	common.LogInfo("生成統計",
		zap.String("request_id", s.RequestID),
		zap.String("meal_type", s.MealType),
		zap.String("country", s.Country),
		zap.Int("requested", s.Requested),
		zap.Int("produced", s.Produced),
		zap.Int("pool", s.PoolCount),
		zap.Int("template", s.TemplateCount),
		zap.Int("ai", s.AICount),
		zap.Int("emergency", s.EmergencyCount),
		zap.Int("attempts", s.Attempts),
		zap.Float64("rejection_rate", s.RejectionRate),
		zap.Bool("budget_exhausted", s.BudgetExhausted),
		zap.Duration("elapsed", s.Elapsed),
	)
	return nil
}
