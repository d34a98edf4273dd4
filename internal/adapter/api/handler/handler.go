package handler

import (
	"mediavault/internal/usecase"
)

var (
	assetHandler      *AssetHandler
	collectionHandler *CollectionHandler
	tagHandler        *TagHandler
	healthHandler     *HealthHandler
	websocketHandler  *WebSocketHandler
)

func Setup(
	assetUseCase *usecase.AssetUseCase,
	collectionUseCase *usecase.CollectionUseCase,
	tagUseCase *usecase.TagUseCase,
) {
	assetHandler = NewAssetHandler(assetUseCase)
	collectionHandler = NewCollectionHandler(collectionUseCase)
	tagHandler = NewTagHandler(tagUseCase)
}

func SetupHealthHandler(stats StatsReader, driver string) {
	healthHandler = NewHealthHandler(stats, driver)
}

func SetupWebSocketHandler(h *WebSocketHandler) {
	websocketHandler = h
}

func GetAssetHandler() *AssetHandler {
	return assetHandler
}

func GetCollectionHandler() *CollectionHandler {
	return collectionHandler
}

func GetTagHandler() *TagHandler {
	return tagHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func GetWebSocketHandler() *WebSocketHandler {
	return websocketHandler
}
