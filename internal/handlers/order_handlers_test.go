package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beton/internal/common"
	"beton/internal/models"
	"beton/internal/services"
)

type stubOrderService struct {
	order *models.Order
	err   error
}

func (s *stubOrderService) Create(context.Context, services.CreateOrderInput) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Get(context.Context, uuid.UUID) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) List(context.Context, models.OrderFilter) ([]*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*models.Order{s.order}, nil
}

func (s *stubOrderService) Update(context.Context, uuid.UUID, services.UpdateOrderInput) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func doRequest(h *OrderHandler, method, path, body string, handler func(echo.Context) error, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	_ = handler(c)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) common.Envelope {
	t.Helper()
	var env common.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestOrderGetNotFound(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{err: fmt.Errorf("%w: order", services.ErrNotFound)})
	id := uuid.New().String()

	rec := doRequest(h, http.MethodGet, "/store/orders/"+id, "", h.Get, "id", id)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "error", env.Status)
}

func TestOrderGetMalformedID(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	rec := doRequest(h, http.MethodGet, "/store/orders/not-a-uuid", "", h.Get, "id", "not-a-uuid")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderCreateValidationError(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{err: fmt.Errorf("%w: fullname is required", services.ErrValidation)})

	rec := doRequest(h, http.MethodPost, "/store/orders", `{"contact":"@ivan"}`, h.Create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Message, "fullname")
}

func TestOrderCreateSuccessEnvelope(t *testing.T) {
	order := &models.Order{ID: uuid.New(), Fullname: "Ivan Petrov", Status: models.OrderStatusActive}
	h := NewOrderHandler(&stubOrderService{order: order})

	body := `{"fullname":"Ivan Petrov","contact":"@ivan","contact_method":"telegram","items":[{"id":1,"quantity":2}]}`
	rec := doRequest(h, http.MethodPost, "/store/orders", body, h.Create)
	assert.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "ok", env.Status)
	require.NotNil(t, env.Details)
}

func TestOrderDeleteNotFoundTwice(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{err: fmt.Errorf("%w: order", services.ErrNotFound)})
	id := uuid.New().String()

	for i := 0; i < 2; i++ {
		rec := doRequest(h, http.MethodDelete, "/store/orders/"+id, "", h.Delete, "id", id)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}
