package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-generator/internal/api"
	"meal-generator/internal/api/handlers/health"
	"meal-generator/internal/core/ai"
	"meal-generator/internal/core/cache"
	"meal-generator/internal/core/cascade"
	"meal-generator/internal/core/catalog"
	"meal-generator/internal/core/generator"
	"meal-generator/internal/core/normalize"
	"meal-generator/internal/core/rules"
	"meal-generator/internal/core/safety"
	"meal-generator/internal/infrastructure/config"
	"meal-generator/internal/infrastructure/storage"
	"meal-generator/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（.env 由 LoadConfig 透過 godotenv 讀取）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	ctx := context.Background()
	cat := catalog.Default()
	checks := make(map[string]health.Checker)

	// 管理覆寫（選用）
	var safetyOverrides safety.OverrideSource
	var ruleOverrides rules.OverrideSource
	if cfg.Redis.Enabled {
		overrides, err := cache.NewOverrideStore(ctx, cfg.Redis)
		if err != nil {
			common.LogWarn("Redis 無法連線，改用內嵌規則表", zap.Error(err))
		} else {
			defer overrides.Close()
			safetyOverrides = overrides
			ruleOverrides = overrides
			checks["redis"] = overrides
		}
	}

	safetyStore := safety.NewStore(cfg.Safety.TTL, safetyOverrides, cfg.Safety.RedisKey)
	ruleStore := rules.NewStore(cfg.Safety.TTL, cat, ruleOverrides, cfg.Safety.RulesRedisKey)

	// 啟動時先載入一次，錯誤只記錄（Store 會退回內嵌資料）
	if err := safetyStore.Refresh(ctx); err != nil {
		common.LogWarn("安全資料庫初始載入失敗", zap.Error(err))
	}
	if err := ruleStore.Refresh(ctx); err != nil {
		common.LogWarn("規則表初始載入失敗", zap.Error(err))
	}

	templates := generator.DefaultTemplates()
	if problems := templates.Check(cat); len(problems) > 0 {
		common.LogFatal("模板引用了不存在的成分", zap.Strings("problems", problems))
	}

	core := normalize.NewCore(cat, ruleStore, safetyStore)
	gen := generator.NewGenerator(cat, templates, ruleStore, safetyStore, cfg.Generator)

	var opts []cascade.Option

	// 預先計算的餐點池（選用）
	if cfg.Pool.Enabled {
		mongoDB, err := storage.NewMongoDB(ctx, cfg.Pool)
		if err != nil {
			common.LogWarn("餐點池無法使用，略過 pool 階段", zap.Error(err))
		} else {
			defer mongoDB.Disconnect()
			pool := storage.NewPoolRepository(mongoDB, cfg.Pool.Collection, cfg.Pool.Timeout)
			if err := pool.EnsureIndexes(ctx); err != nil {
				common.LogWarn("建立餐點池索引失敗", zap.Error(err))
			}
			opts = append(opts, cascade.WithPool(pool))
			checks["mongo"] = mongoDB
		}
	}

	// AI 草稿（選用）
	draftCache := cache.NewDraftCache(cfg.Cache)
	defer draftCache.Close()
	if cfg.OpenRouter.Enabled {
		aiService := ai.NewService(ai.NewClient(cfg.OpenRouter), draftCache, cfg.AI)
		opts = append(opts, cascade.WithDrafts(ai.NewDraftGenerator(aiService, cat)))
		common.LogInfo("AI 草稿已啟用", zap.String("model", cfg.OpenRouter.Model))
	}

	// 生成統計
	if cfg.Stats.Enabled {
		stats, err := storage.NewStatsStore(cfg.Stats.SQLitePath)
		if err != nil {
			common.LogWarn("統計資料庫無法開啟，改寫入 log", zap.Error(err))
		} else {
			defer stats.Close()
			opts = append(opts, cascade.WithStats(stats))
		}
	}

	orchestrator := cascade.NewOrchestrator(cat, safetyStore, core, gen, opts...)

	deps := api.Dependencies{
		Catalog:    cat,
		Generator:  orchestrator,
		Normalizer: core,
		Checks:     checks,
	}
	if draftCache != nil {
		deps.Cache = draftCache
	}
	router := api.SetupRouter(cfg, deps)

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Int("ingredients", cat.Len()),
			zap.Bool("pool", cfg.Pool.Enabled),
			zap.Bool("ai", cfg.OpenRouter.Enabled),
			zap.Bool("stats", cfg.Stats.Enabled),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
