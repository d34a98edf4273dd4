package handler

import (
	"github.com/labstack/echo/v4"

	"mediavault/internal/usecase"
	"mediavault/pkg/response"
)

type TagHandler struct {
	tagUseCase *usecase.TagUseCase
}

func NewTagHandler(tagUseCase *usecase.TagUseCase) *TagHandler {
	return &TagHandler{
		tagUseCase: tagUseCase,
	}
}

type createTagRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.tagUseCase.ListTags(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, tags)
}

func (h *TagHandler) CreateTag(c echo.Context) error {
	var req createTagRequest
	if err := bindStrict(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	tag, err := h.tagUseCase.CreateTag(c.Request().Context(), req.Name)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, tag)
}

func (h *TagHandler) DeleteTag(c echo.Context) error {
	if err := h.tagUseCase.DeleteTag(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Tag deleted successfully")
}
