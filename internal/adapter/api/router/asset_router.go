package router

import (
	"github.com/labstack/echo/v4"

	"mediavault/internal/adapter/api/handler"
)

func SetupAssetRouter(api *echo.Group) {
	assetHandler := handler.GetAssetHandler()

	assets := api.Group("/assets")
	assets.GET("", assetHandler.ListAssets)
	assets.POST("", assetHandler.CreateAsset)
	assets.PATCH("/bulk", assetHandler.BulkUpdateAssets)
	assets.POST("/bulk-delete", assetHandler.BulkDeleteAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
}
