// Package middleware carries the bearer-token guard for mutating
// endpoints.
package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"beton/internal/common"
)

// BearerAuth compares the request's bearer token against the
// configured SHA-256 token hash. Missing or wrong tokens get 403.
func BearerAuth(tokenHash string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return common.Respond(c, http.StatusForbidden, "forbidden", nil)
			}
			sum := sha256.Sum256([]byte(token))
			digest := hex.EncodeToString(sum[:])
			if subtle.ConstantTimeCompare([]byte(digest), []byte(tokenHash)) != 1 {
				return common.Respond(c, http.StatusForbidden, "forbidden", nil)
			}
			return next(c)
		}
	}
}
