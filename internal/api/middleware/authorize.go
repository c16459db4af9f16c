package middleware

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

// RequireRole permits the request only when the principal's role is on the
// allow-list. Requires Protect to have run first.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrNotAuthenticated
			}
			if _, ok := allowed[principal.Role]; !ok {
				return &domain.RoleDeniedError{Role: principal.Role}
			}
			return next(c)
		}
	}
}

// RequirePermission permits the request when the principal's effective
// permission set grants action on module. Admins bypass the check
// unconditionally.
func RequirePermission(module, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrNotAuthenticated
			}
			if principal.IsAdmin() {
				return next(c)
			}
			if !principal.Permissions.Allows(module, action) {
				return &domain.PermissionDeniedError{Module: module, Action: action}
			}
			return next(c)
		}
	}
}

// RequireOwnership permits the request when the resource named by the :id
// path parameter carries the principal's id in any of its owner-like fields
// (creator, assignee, sales rep). A missing resource is reported as 404
// before any ownership comparison, so absence is never misread as a
// permission problem. Admins bypass the comparison.
func RequireOwnership(resource domain.ResourceType, registry ports.ResourceRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrNotAuthenticated
			}

			store, ok := registry.Resolve(resource)
			if !ok {
				return fmt.Errorf("ownership check: no store registered for resource %q", resource)
			}

			ownership, err := store.FindOwnership(c.Request().Context(), c.Param("id"))
			if err != nil {
				if errors.Is(err, domain.ErrResourceNotFound) {
					return domain.ErrResourceNotFound
				}
				return fmt.Errorf("ownership check: %w", err)
			}

			if principal.IsAdmin() {
				return next(c)
			}
			if !ownership.OwnedBy(principal.ID) {
				return domain.ErrNotOwner
			}
			return next(c)
		}
	}
}
