package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediavault/internal/adapter/api"
	apimiddleware "mediavault/internal/adapter/api/middleware"
	"mediavault/internal/adapter/repository"
	"mediavault/internal/infrastructure/auth"
	"mediavault/internal/infrastructure/metrics"
	"mediavault/internal/infrastructure/persistence"
	"mediavault/internal/infrastructure/ratelimit"
	"mediavault/internal/infrastructure/websocket"
	"mediavault/internal/usecase"
	"mediavault/pkg/config"
	"mediavault/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger().Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := persistence.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Logger().Fatalf("Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	defer store.Close()

	doc, err := loadCatalog(ctx, store, cfg.SeedFile, cfg.SeedOnEmpty, time.Now().UTC())
	if err != nil {
		logger.Logger().Fatalf("Failed to load catalog: %v", err)
	}
	catalogRepo := repository.NewCatalogRepository(store, doc)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	m := metrics.New(catalogRepo)
	notifier := usecase.Notifiers{wsManager, m}

	assetUseCase := usecase.NewAssetUseCase(catalogRepo, notifier)
	collectionUseCase := usecase.NewCollectionUseCase(catalogRepo, notifier)
	tagUseCase := usecase.NewTagUseCase(catalogRepo, notifier)

	var authMiddleware *apimiddleware.AuthMiddleware
	if cfg.JWTSecret != "" {
		tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
		authMiddleware = apimiddleware.NewAuthMiddleware(tokens)
		logger.Info("Write endpoints require a bearer token")
	}

	limiter := ratelimit.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartCleanupRoutine(ctx, 10*time.Minute)

	e := api.NewServer(api.ServerOptions{
		Assets:        assetUseCase,
		Collections:   collectionUseCase,
		Tags:          tagUseCase,
		Stats:         catalogRepo,
		StorageDriver: store.Driver(),
		Events:        wsManager,
		Auth:          authMiddleware,
		RateLimiter:   limiter,
		Metrics:       m,
		CORSOrigins:   cfg.CORSOrigins,
		RequestLog:    true,
	})

	go func() {
		logger.Info("Starting server on port %s (%s storage, %s)", cfg.ServerPort, store.Driver(), cfg.Environment)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger().Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
