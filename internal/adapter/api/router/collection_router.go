package router

import (
	"github.com/labstack/echo/v4"

	"mediavault/internal/adapter/api/handler"
)

func SetupCollectionRouter(api *echo.Group) {
	collectionHandler := handler.GetCollectionHandler()

	collections := api.Group("/collections")
	collections.GET("", collectionHandler.ListCollections)
	collections.POST("", collectionHandler.CreateCollection)
	collections.GET("/:id", collectionHandler.GetCollection)
	collections.PUT("/:id", collectionHandler.UpdateCollection)
	collections.DELETE("/:id", collectionHandler.DeleteCollection)
}
