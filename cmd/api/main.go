package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/stockpulse/backend-go/internal/api"
	"github.com/stockpulse/backend-go/internal/cache"
	"github.com/stockpulse/backend-go/internal/config"
	"github.com/stockpulse/backend-go/internal/service"
	"github.com/stockpulse/backend-go/internal/store"
	"github.com/stockpulse/backend-go/pkg/logger"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize report cache")
	}

	datasetStore := store.New()
	svc := service.NewInventoryService(datasetStore, reportCache, cfg.Metrics.Thresholds())

	router := api.NewRouter(svc, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Log.Info().Str("addr", addr).Msg("server starting")
	if err := router.Run(addr); err != nil {
		logger.Log.Fatal().Err(err).Msg("server exited")
	}
}
