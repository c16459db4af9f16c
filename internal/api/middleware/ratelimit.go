package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/api/metrics"
	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

// RateLimitSensitive throttles sensitive operations through a sliding-window
// limiter. The window is keyed by principal id when one is attached, falling
// back to the client address for unauthenticated routes such as login.
// Exceeding the threshold is a normal 429 denial, not an error, and a denied
// attempt consumes nothing from the window.
func RateLimitSensitive(limiter ports.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "sensitive:"
			if principal, ok := PrincipalFrom(c); ok {
				key += principal.ID
			} else {
				key += "ip:" + c.RealIP()
			}

			allowed, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				return fmt.Errorf("rate limit check: %w", err)
			}
			if !allowed {
				metrics.RateLimitChecksTotal.WithLabelValues("denied").Inc()
				return domain.ErrRateLimited
			}

			metrics.RateLimitChecksTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}
