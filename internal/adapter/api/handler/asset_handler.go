package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"mediavault/internal/domain/entity"
	"mediavault/internal/usecase"
	"mediavault/pkg/response"
	"mediavault/pkg/utils"
)

type AssetHandler struct {
	assetUseCase *usecase.AssetUseCase
}

func NewAssetHandler(assetUseCase *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{
		assetUseCase: assetUseCase,
	}
}

type bulkUpdateRequest struct {
	AssetIDs []string          `json:"assetIds" validate:"required"`
	Updates  entity.AssetPatch `json:"updates"`
}

type bulkDeleteRequest struct {
	AssetIDs []string `json:"assetIds" validate:"required"`
}

func (h *AssetHandler) ListAssets(c echo.Context) error {
	filter := entity.AssetFilter{
		Search:       c.QueryParam("search"),
		Tags:         utils.QueryList(c, "tags"),
		CollectionID: utils.QueryOptional(c, "collectionId"),
		SortBy:       c.QueryParam("sortBy"),
		SortOrder:    c.QueryParam("sortOrder"),
	}

	assets, err := h.assetUseCase.ListAssets(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, assets)
}

func (h *AssetHandler) GetAsset(c echo.Context) error {
	asset, err := h.assetUseCase.GetAsset(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, asset)
}

func (h *AssetHandler) CreateAsset(c echo.Context) error {
	var req entity.AssetDraft
	if err := bindStrict(c, &req); err != nil {
		return response.Error(c, err)
	}

	asset, err := h.assetUseCase.CreateAsset(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, asset)
}

func (h *AssetHandler) UpdateAsset(c echo.Context) error {
	var req entity.AssetPatch
	if err := bindStrict(c, &req); err != nil {
		return response.Error(c, err)
	}

	asset, err := h.assetUseCase.UpdateAsset(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, asset)
}

func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	if err := h.assetUseCase.DeleteAsset(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Asset deleted successfully")
}

func (h *AssetHandler) BulkUpdateAssets(c echo.Context) error {
	var req bulkUpdateRequest
	if err := bindStrict(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	assets, err := h.assetUseCase.BulkUpdateAssets(c.Request().Context(), usecase.BulkUpdateInput{
		AssetIDs: req.AssetIDs,
		Updates:  req.Updates,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, assets)
}

func (h *AssetHandler) BulkDeleteAssets(c echo.Context) error {
	var req bulkDeleteRequest
	if err := bindStrict(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	deleted, err := h.assetUseCase.BulkDeleteAssets(c.Request().Context(), req.AssetIDs)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Deleted(c, fmt.Sprintf("%d assets deleted successfully", deleted), deleted)
}
