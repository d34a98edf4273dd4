package handler

import (
	"github.com/labstack/echo/v4"

	"mediavault/internal/domain/entity"
	"mediavault/internal/usecase"
	"mediavault/pkg/response"
)

type CollectionHandler struct {
	collectionUseCase *usecase.CollectionUseCase
}

func NewCollectionHandler(collectionUseCase *usecase.CollectionUseCase) *CollectionHandler {
	return &CollectionHandler{
		collectionUseCase: collectionUseCase,
	}
}

func (h *CollectionHandler) ListCollections(c echo.Context) error {
	collections, err := h.collectionUseCase.ListCollections(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, collections)
}

func (h *CollectionHandler) GetCollection(c echo.Context) error {
	collection, err := h.collectionUseCase.GetCollection(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, collection)
}

func (h *CollectionHandler) CreateCollection(c echo.Context) error {
	var req entity.CollectionDraft
	if err := bindStrict(c, &req); err != nil {
		return response.Error(c, err)
	}

	collection, err := h.collectionUseCase.CreateCollection(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, collection)
}

func (h *CollectionHandler) UpdateCollection(c echo.Context) error {
	var req entity.CollectionPatch
	if err := bindStrict(c, &req); err != nil {
		return response.Error(c, err)
	}

	collection, err := h.collectionUseCase.UpdateCollection(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, collection)
}

func (h *CollectionHandler) DeleteCollection(c echo.Context) error {
	if err := h.collectionUseCase.DeleteCollection(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Collection deleted successfully")
}
