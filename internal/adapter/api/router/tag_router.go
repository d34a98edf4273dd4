package router

import (
	"github.com/labstack/echo/v4"

	"mediavault/internal/adapter/api/handler"
)

func SetupTagRouter(api *echo.Group) {
	tagHandler := handler.GetTagHandler()

	tags := api.Group("/tags")
	tags.GET("", tagHandler.ListTags)
	tags.POST("", tagHandler.CreateTag)
	tags.DELETE("/:id", tagHandler.DeleteTag)
}
