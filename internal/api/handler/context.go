package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/api/middleware"
	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

// ctxPrincipal extracts the principal attached by the Protect middleware.
// Absence means the middleware chain did not run for this route.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	return principal, nil
}
