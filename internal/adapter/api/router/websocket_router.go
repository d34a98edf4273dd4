package router

import (
	"github.com/labstack/echo/v4"

	"mediavault/internal/adapter/api/handler"
)

// SetupWebSocketRouter exposes the change feed. It is skipped when no hub is configured.
func SetupWebSocketRouter(api *echo.Group) {
	wsHandler := handler.GetWebSocketHandler()
	if wsHandler == nil {
		return
	}
	api.GET("/events", wsHandler.HandleEvents)
}
