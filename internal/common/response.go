// Package common holds the response envelope shared by every API
// endpoint.
package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"beton/internal/services"
)

// Envelope is the uniform response body: a machine status, a human
// message and the payload.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func Respond(c echo.Context, code int, message string, details any) error {
	status := "ok"
	if code >= 400 {
		status = "error"
	}
	return c.JSON(code, Envelope{Status: status, Message: message, Details: details})
}

// RespondError maps service errors onto HTTP codes: NotFound to 404,
// validation to 400, anything else to 500 with a generic message.
func RespondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return Respond(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrValidation):
		return Respond(c, http.StatusBadRequest, err.Error(), nil)
	default:
		c.Logger().Error(err)
		return Respond(c, http.StatusInternalServerError, "internal error", nil)
	}
}
