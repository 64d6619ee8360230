package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"meal-generator/internal/infrastructure/config"
	"meal-generator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Checker 外部依賴的就緒檢查（MongoDB、Redis）
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc 以函式實作 Checker
type CheckerFunc func(ctx context.Context) error

// Ping 呼叫函式本身
func (f CheckerFunc) Ping(ctx context.Context) error { return f(ctx) }

// StatsProvider 提供快取統計
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	checks map[string]Checker
	cache  StatsProvider
}

// NewHandler 創建健康檢查處理器；cache 可為 nil
func NewHandler(checks map[string]Checker, cache StatsProvider) *Handler {
	if checks == nil {
		checks = make(map[string]Checker)
	}
	return &Handler{checks: checks, cache: cache}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	version := ""
	if v, exists := c.Get("config"); exists {
		if cfg, ok := v.(*config.Config); ok {
			version = cfg.App.Version
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.cache != nil {
		response.Cache = h.cache.GetStats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 逐一 ping 外部依賴，任一失敗回 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	ready := true
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			ready = false
			results[name] = err.Error()
			common.LogWarn("Readiness check failed", zap.String("dependency", name), zap.Error(err))
			continue
		}
		results[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"checks": results,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": results,
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
