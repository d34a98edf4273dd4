package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mediavault/internal/domain/repository"
)

type HealthHandler struct {
	stats  StatsReader
	driver string
}

// StatsReader is the slice of the catalog the health check needs.
type StatsReader interface {
	Stats(ctx context.Context) (repository.CatalogStats, error)
}

func NewHealthHandler(stats StatsReader, driver string) *HealthHandler {
	return &HealthHandler{
		stats:  stats,
		driver: driver,
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	Time        string `json:"time"`
	Storage     string `json:"storage,omitempty"`
	Assets      int    `json:"assets"`
	Collections int    `json:"collections"`
	Tags        int    `json:"tags"`
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := healthResponse{
		Status:  "ok",
		Time:    time.Now().Format(time.RFC3339),
		Storage: h.driver,
	}
	if h.stats != nil {
		stats, err := h.stats.Stats(c.Request().Context())
		if err != nil {
			body.Status = "degraded"
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		body.Assets = stats.Assets
		body.Collections = stats.Collections
		body.Tags = stats.Tags
	}
	return c.JSON(http.StatusOK, body)
}
