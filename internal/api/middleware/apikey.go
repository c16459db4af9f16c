package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

const apiKeyHeader = "x-api-key"

// RequireAPIKey gates machine-to-machine routes on a static process-wide key
// presented in the x-api-key header. The key is a shared secret, not a
// per-integration identity.
// An empty configured key rejects everything rather than admitting everything.
func RequireAPIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := c.Request().Header.Get(apiKeyHeader)
			if key == "" || presented == "" {
				return domain.ErrInvalidAPIKey
			}
			if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				return domain.ErrInvalidAPIKey
			}
			return next(c)
		}
	}
}
