package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"beton/internal/common"
	"beton/internal/services"
)

type CategoryHandler struct {
	service services.CategoryService
}

func NewCategoryHandler(service services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var input services.CategoryInput
	if err := c.Bind(&input); err != nil {
		return common.Respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	category, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusCreated, "category created", category)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "category", category)
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context())
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "categories", categories)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	var input services.CategoryInput
	if err := c.Bind(&input); err != nil {
		return common.Respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	category, err := h.service.Update(c.Request().Context(), c.Param("slug"), input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "category updated", category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "category deleted", nil)
}
