package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"beton/internal/common"
	"beton/internal/services"
)

type VariantHandler struct {
	service services.VariantService
}

func NewVariantHandler(service services.VariantService) *VariantHandler {
	return &VariantHandler{service: service}
}

func (h *VariantHandler) Create(c echo.Context) error {
	var input services.VariantInput
	if err := c.Bind(&input); err != nil {
		return common.Respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	variant, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusCreated, "variant created", variant)
}

func (h *VariantHandler) Get(c echo.Context) error {
	variant, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "variant", variant)
}

func (h *VariantHandler) ListByProduct(c echo.Context) error {
	variants, err := h.service.ListByProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "variants", variants)
}

func (h *VariantHandler) Update(c echo.Context) error {
	var input services.VariantInput
	if err := c.Bind(&input); err != nil {
		return common.Respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	variant, err := h.service.Update(c.Request().Context(), c.Param("slug"), input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "variant updated", variant)
}

func (h *VariantHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "variant deleted", nil)
}
