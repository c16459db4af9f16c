package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

const principalKey = "principal"

// PrincipalFrom returns the principal attached by Protect or OptionalAuth.
func PrincipalFrom(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(principalKey).(*domain.Principal)
	return p, ok && p != nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Empty string means no usable token was presented.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Protect authenticates the request: bearer token extraction, verification,
// fresh principal load and permission resolution. Any failure short-circuits
// the chain; no downstream middleware or handler runs.
func Protect(resolver ports.PrincipalService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return domain.ErrNoToken
			}

			principal, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// OptionalAuth is the deliberate opposite of Protect: every authentication
// failure is swallowed and the request proceeds with no principal attached.
// For endpoints that personalize output for logged-in users but must remain
// accessible to anonymous ones.
func OptionalAuth(resolver ports.PrincipalService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}

			principal, err := resolver.Resolve(c.Request().Context(), token)
			if err == nil {
				c.Set(principalKey, principal)
			}
			return next(c)
		}
	}
}
