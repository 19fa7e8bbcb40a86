package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/stockpulse/backend-go/internal/domain"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Cache   CacheConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	AllowedOrigins []string
}

type AppConfig struct {
	LogLevel string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

// MetricsConfig carries the default threshold knobs; callers may still
// override them per request.
type MetricsConfig struct {
	SlowMoverCost   float64
	DeadStockCost   float64
	SlowMoverDays   float64
	TargetMargin    float64
	OrderingCost    float64
	HoldingCostRate float64
}

// Thresholds converts the configured defaults into the engine's shape.
func (m MetricsConfig) Thresholds() domain.Thresholds {
	return domain.Thresholds{
		SlowMoverCost:   m.SlowMoverCost,
		DeadStockCost:   m.DeadStockCost,
		SlowMoverDays:   m.SlowMoverDays,
		TargetMargin:    m.TargetMargin,
		OrderingCost:    m.OrderingCost,
		HoldingCostRate: m.HoldingCostRate,
	}
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		defaults := domain.DefaultThresholds()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("APP_LOG_LEVEL", "info")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REPORT_TTL_SECONDS", 60)
		viper.SetDefault("METRICS_SLOW_COST", defaults.SlowMoverCost)
		viper.SetDefault("METRICS_DEAD_COST", defaults.DeadStockCost)
		viper.SetDefault("METRICS_SLOW_DAYS", defaults.SlowMoverDays)
		viper.SetDefault("METRICS_TARGET_MARGIN", defaults.TargetMargin)
		viper.SetDefault("METRICS_ORDERING_COST", defaults.OrderingCost)
		viper.SetDefault("METRICS_HOLDING_COST_RATE", defaults.HoldingCostRate)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			App: AppConfig{
				LogLevel: viper.GetString("APP_LOG_LEVEL"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ReportTTLSeconds: viper.GetInt("CACHE_REPORT_TTL_SECONDS"),
			},
			Metrics: MetricsConfig{
				SlowMoverCost:   viper.GetFloat64("METRICS_SLOW_COST"),
				DeadStockCost:   viper.GetFloat64("METRICS_DEAD_COST"),
				SlowMoverDays:   viper.GetFloat64("METRICS_SLOW_DAYS"),
				TargetMargin:    viper.GetFloat64("METRICS_TARGET_MARGIN"),
				OrderingCost:    viper.GetFloat64("METRICS_ORDERING_COST"),
				HoldingCostRate: viper.GetFloat64("METRICS_HOLDING_COST_RATE"),
			},
		}
	})

	return instance
}
