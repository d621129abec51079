package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"dealscout/internal/api"
	"dealscout/internal/api/handlers"
	"dealscout/internal/providers"
	"dealscout/internal/service"
	"dealscout/pkg/config"
	"dealscout/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting dealscout service")

	// Composition root: the deterministic mock providers stand in for real
	// retailer integrations, which are out of scope.
	search := providers.NewMockProductSearch()
	prices := providers.NewMockPriceProvider()
	reviews := providers.NewMockReviewProvider()

	var llmService *service.LLMService
	if cfg.GigaChat.PolishRationales && cfg.GigaChat.APIKey != "" {
		llmService, err = service.NewLLMService(&cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Warn("LLM rationale polish unavailable, using templates only", zap.Error(err))
		} else {
			defer llmService.Close()
		}
	}

	recService := service.NewRecommendationService(
		service.NewInterpreterService(appLogger),
		search,
		service.NewAggregatorService(prices, reviews, cfg.Pipeline.ReviewLimit, cfg.Pipeline.MaxConcurrentFetches, appLogger),
		service.NewScoringService(appLogger),
		service.NewRankingService(appLogger),
		service.NewRationaleService(appLogger),
		llmService,
		appLogger,
	)

	recHandler := handlers.NewRecommendationHandler(recService, appLogger)
	app := api.SetupRouter(recHandler, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
