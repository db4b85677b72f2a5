package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"beton/internal/common"
	"beton/internal/models"
	"beton/internal/services"
)

type ProductHandler struct {
	service services.ProductService
}

func NewProductHandler(service services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) Create(c echo.Context) error {
	var input services.ProductInput
	if err := c.Bind(&input); err != nil {
		return common.Respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	product, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusCreated, "product created", product)
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "product", product)
}

// List accepts a JSON `offset` query parameter of the form
// {"start": 0, "end": 5} plus a `category` slug filter, and returns
// the windowed results with the total count. A missing offset means
// the first five products.
func (h *ProductHandler) List(c echo.Context) error {
	filter := models.ProductFilter{CategorySlug: c.QueryParam("category")}

	window := &models.ProductListWindow{Start: 0, End: 5}
	if raw := c.QueryParam("offset"); raw != "" {
		var w models.ProductListWindow
		if err := json.Unmarshal([]byte(raw), &w); err != nil {
			return common.Respond(c, http.StatusBadRequest, "invalid offset parameter", nil)
		}
		window = &w
	}

	page, err := h.service.List(c.Request().Context(), filter, window)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "products", page)
}

func (h *ProductHandler) Update(c echo.Context) error {
	var input services.ProductInput
	if err := c.Bind(&input); err != nil {
		return common.Respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	product, err := h.service.Update(c.Request().Context(), c.Param("slug"), input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "product updated", product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "product deleted", nil)
}
