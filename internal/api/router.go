package api

import (
	"context"
	"time"

	"meal-generator/internal/api/handlers/health"
	"meal-generator/internal/api/handlers/meals"
	"meal-generator/internal/api/middleware"
	"meal-generator/internal/core/catalog"
	"meal-generator/internal/infrastructure/config"
	"meal-generator/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 單一請求的超時
const timeoutDuration = 60 * time.Second

// Dependencies 路由需要的服務
type Dependencies struct {
	Catalog    *catalog.Catalog
	Generator  meals.Generator
	Normalizer meals.Normalizer
	Cache      health.StatsProvider
	Checks     map[string]health.Checker
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.RequestContext())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	if cfg.Request.MaxBodyBytes > 0 {
		router.Use(middleware.BodySizeLimit(cfg.Request.MaxBodyBytes))
	}

	// 設置請求超時與配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			common.WriteError(c, common.ErrGatewayTimeout, timeoutDuration.String())
		}
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(deps.Checks, deps.Cache)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	mealHandler := meals.NewHandler(deps.Generator, deps.Normalizer, deps.Catalog, cfg.Request.MaxQuantity)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg.DedupWindow))
	{
		mealGroup := api.Group("/meals")
		{
			mealGroup.POST("/generate", mealHandler.HandleGenerate)
			mealGroup.POST("/plan", mealHandler.HandlePlan)
			mealGroup.POST("/normalize", mealHandler.HandleNormalize)
		}

		api.GET("/catalog/ingredients", mealHandler.HandleListIngredients)
	}

	router.NoRoute(func(c *gin.Context) {
		common.WriteError(c, common.ErrNotFound, c.Request.URL.Path)
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Int64("max_body_size", cfg.Request.MaxBodyBytes),
		zap.Int("max_quantity", cfg.Request.MaxQuantity),
		zap.Int("dependencies", len(deps.Checks)),
	)

	return router
}
