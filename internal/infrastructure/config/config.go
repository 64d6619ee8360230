package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	OpenRouter  OpenRouterConfig `mapstructure:"openrouter"`
	AI          AIConfig         `mapstructure:"ai"`
	Cache       CacheConfig      `mapstructure:"cache"`
	Generator   GeneratorConfig  `mapstructure:"generator"`
	Safety      SafetyConfig     `mapstructure:"safety"`
	Redis       RedisConfig      `mapstructure:"redis"`
	Pool        PoolConfig       `mapstructure:"pool"`
	Stats       StatsConfig      `mapstructure:"stats"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	Request     RequestConfig    `mapstructure:"request"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// AIConfig AI 草稿設定
type AIConfig struct {
	EnableCache bool    `mapstructure:"enable_cache"`
	Temperature float64 `mapstructure:"temperature"`
}

// CacheConfig 記憶體快取配置（AI 草稿）
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// GeneratorConfig 模板搜尋預算
type GeneratorConfig struct {
	AttemptMultiplier       int           `mapstructure:"attempt_multiplier"`
	TimeBudget              time.Duration `mapstructure:"time_budget"`
	PollEvery               int           `mapstructure:"poll_every"`
	DuplicateRetries        int           `mapstructure:"duplicate_retries"`
	OptionalSlotProbability float64       `mapstructure:"optional_slot_probability"`
}

// SafetyConfig 安全資料庫與規則表的快照設定
type SafetyConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	RedisKey      string        `mapstructure:"redis_key"`
	RulesRedisKey string        `mapstructure:"rules_redis_key"`
}

// RedisConfig 管理覆寫用的 Redis
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PoolConfig 預先計算餐點池（MongoDB）
type PoolConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	MongoURI   string        `mapstructure:"mongo_uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// StatsConfig 生成統計寫入（SQLite）
type StatsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// RequestConfig 請求限制
type RequestConfig struct {
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
	MaxQuantity  int   `mapstructure:"max_quantity"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 為選用
	_ = godotenv.Load()

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	v.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	v.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	v.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	v.BindEnv("cache.enabled", "CACHE_ENABLED")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("pool.mongo_uri", "MONGO_URI")
	v.BindEnv("stats.sqlite_path", "STATS_SQLITE_PATH")
	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("dedup_window", "DEDUP_WINDOW")
	v.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// logger 尚未初始化，改用 fmt.Println
	fmt.Println("Loading configuration", "openrouter_api_key:", maskAPIKey(v.GetString("openrouter.api_key")), "openrouter_model:", v.GetString("openrouter.model"))

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "meal-generator")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")

	// OpenRouter 設定
	v.SetDefault("openrouter.enabled", false)
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "qwen/qwen-2.5-72b-instruct:free")
	v.SetDefault("openrouter.max_tokens", 1500)
	v.SetDefault("openrouter.timeout", "45s")

	// AI 設定
	v.SetDefault("ai.enable_cache", true)
	v.SetDefault("ai.temperature", 0.8)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size", 500)
	v.SetDefault("cache.ttl", "6h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// 生成器預算
	v.SetDefault("generator.attempt_multiplier", 20)
	v.SetDefault("generator.time_budget", "2s")
	v.SetDefault("generator.poll_every", 32)
	v.SetDefault("generator.duplicate_retries", 5)
	v.SetDefault("generator.optional_slot_probability", 0.5)

	// 安全資料庫快照
	v.SetDefault("safety.ttl", "5m")
	v.SetDefault("safety.redis_key", "meal:safety:overrides")
	v.SetDefault("safety.rules_redis_key", "meal:rules:overrides")

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// 餐點池
	v.SetDefault("pool.enabled", false)
	v.SetDefault("pool.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("pool.database", "meals")
	v.SetDefault("pool.collection", "precomputed_meals")
	v.SetDefault("pool.timeout", "3s")

	// 統計
	v.SetDefault("stats.enabled", false)
	v.SetDefault("stats.sqlite_path", "data/generation_stats.db")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	// 請求限制
	v.SetDefault("request.max_body_bytes", 1<<20) // 1MB
	v.SetDefault("request.max_quantity", 20)

	v.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證生成器預算
	if config.Generator.AttemptMultiplier < 1 {
		return fmt.Errorf("generator attempt multiplier must be >= 1")
	}
	if config.Generator.TimeBudget <= 0 {
		return fmt.Errorf("invalid generator time budget")
	}
	if config.Generator.PollEvery <= 0 {
		return fmt.Errorf("invalid generator poll interval")
	}
	if config.Generator.DuplicateRetries < 0 {
		return fmt.Errorf("invalid generator duplicate retries")
	}
	if p := config.Generator.OptionalSlotProbability; p < 0 || p > 1 {
		return fmt.Errorf("optional slot probability must be within [0,1]")
	}

	if config.Safety.TTL <= 0 {
		return fmt.Errorf("invalid safety ttl")
	}

	if config.OpenRouter.Enabled && config.OpenRouter.APIKey == "" {
		return fmt.Errorf("openrouter enabled without api key")
	}
	if config.Pool.Enabled && config.Pool.MongoURI == "" {
		return fmt.Errorf("pool enabled without mongo uri")
	}
	if config.Stats.Enabled && config.Stats.SQLitePath == "" {
		return fmt.Errorf("stats enabled without sqlite path")
	}
	if config.Request.MaxQuantity <= 0 {
		return fmt.Errorf("invalid max quantity")
	}

	return nil
}
