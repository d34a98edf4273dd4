package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"mediavault/internal/adapter/api/handler"
	apimiddleware "mediavault/internal/adapter/api/middleware"
	"mediavault/internal/adapter/api/router"
	"mediavault/internal/infrastructure/metrics"
	"mediavault/internal/infrastructure/ratelimit"
	ws "mediavault/internal/infrastructure/websocket"
	"mediavault/internal/usecase"
)

// ServerOptions wires the HTTP surface. Nil optional parts are skipped.
type ServerOptions struct {
	Assets      *usecase.AssetUseCase
	Collections *usecase.CollectionUseCase
	Tags        *usecase.TagUseCase

	Stats         handler.StatsReader
	StorageDriver string

	Events      *ws.Manager
	Auth        *apimiddleware.AuthMiddleware
	RateLimiter *ratelimit.RateLimiter
	Metrics     *metrics.Metrics

	CORSOrigins []string
	RequestLog  bool
}

func NewServer(opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	if opts.RequestLog {
		e.Use(echomiddleware.Logger())
	}
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(opts.CORSOrigins),
	}))
	if opts.Metrics != nil {
		e.Use(apimiddleware.Metrics(opts.Metrics))
	}
	if opts.RateLimiter != nil {
		e.Use(apimiddleware.RateLimit(opts.RateLimiter))
	}

	handler.Setup(opts.Assets, opts.Collections, opts.Tags)
	handler.SetupHealthHandler(opts.Stats, opts.StorageDriver)
	if opts.Events != nil {
		handler.SetupWebSocketHandler(handler.NewWebSocketHandler(opts.Events, opts.CORSOrigins))
	} else {
		handler.SetupWebSocketHandler(nil)
	}

	var metricsHandler http.Handler
	if opts.Metrics != nil {
		metricsHandler = opts.Metrics.Handler()
	}
	router.Setup(e, opts.Auth, metricsHandler)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
