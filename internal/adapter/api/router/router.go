package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mediavault/internal/adapter/api/middleware"
)

// Setup registers every route. authMiddleware may be nil, which leaves writes open.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, metricsHandler http.Handler) {
	api := e.Group("/api")
	api.Use(authMiddleware.ProtectWrites)

	SetupAssetRouter(api)
	SetupCollectionRouter(api)
	SetupTagRouter(api)
	SetupWebSocketRouter(api)
	SetupHealthRouter(e, metricsHandler)
}
