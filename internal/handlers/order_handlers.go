package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"beton/internal/common"
	"beton/internal/models"
	"beton/internal/services"
)

type OrderHandler struct {
	service services.OrderService
}

func NewOrderHandler(service services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) orderID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *OrderHandler) Create(c echo.Context) error {
	var input services.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return common.Respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	order, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusCreated, "order created", order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, ok := h.orderID(c)
	if !ok {
		return common.Respond(c, http.StatusNotFound, "order not found", nil)
	}
	order, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "order", order)
}

func (h *OrderHandler) List(c echo.Context) error {
	var filter models.OrderFilter
	if v := c.QueryParam("contact"); v != "" {
		filter.Contact = &v
	}
	if v := c.QueryParam("contact_method"); v != "" {
		filter.ContactMethod = &v
	}
	if v := c.QueryParam("status"); v != "" {
		filter.Status = &v
	}
	orders, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "orders", orders)
}

func (h *OrderHandler) Update(c echo.Context) error {
	id, ok := h.orderID(c)
	if !ok {
		return common.Respond(c, http.StatusNotFound, "order not found", nil)
	}
	var input services.UpdateOrderInput
	if err := c.Bind(&input); err != nil {
		return common.Respond(c, http.StatusBadRequest, "invalid payload", nil)
	}
	order, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "order updated", order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	id, ok := h.orderID(c)
	if !ok {
		return common.Respond(c, http.StatusNotFound, "order not found", nil)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return common.Respond(c, http.StatusOK, "order deleted", nil)
}
