package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopkeeper/shopkeeper-api/internal/api/metrics"
	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

// failureResponse is the canonical failure envelope. Message is written for
// end users; Code, when present, is for client logic branching.
type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain's sentinel errors to their status/code pairs.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success":false,"message":...,"code":...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)

		if status == http.StatusUnauthorized && code != "" {
			metrics.AuthFailuresTotal.WithLabelValues(code).Inc()
		}

		_ = c.JSON(status, failureResponse{Message: msg, Code: code})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (status int, code, msg string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, "", fmt.Sprintf("%v", he.Message)
	}

	// Authorization gates carry the offending role or module/action in the
	// message; count the denial per gate.
	var roleErr *domain.RoleDeniedError
	if errors.As(err, &roleErr) {
		metrics.AuthzDenialsTotal.WithLabelValues("role").Inc()
		return http.StatusForbidden, "", roleErr.Error()
	}
	var permErr *domain.PermissionDeniedError
	if errors.As(err, &permErr) {
		metrics.AuthzDenialsTotal.WithLabelValues("permission").Inc()
		return http.StatusForbidden, "", permErr.Error()
	}

	switch {
	case errors.Is(err, domain.ErrNoToken):
		return http.StatusUnauthorized, domain.CodeNoToken, err.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.CodeInvalidToken, err.Error()
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, domain.CodeTokenExpired, err.Error()
	case errors.Is(err, domain.ErrTokenError):
		return http.StatusUnauthorized, domain.CodeTokenError, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, domain.CodeUserNotFound, err.Error()
	case errors.Is(err, domain.ErrAccountDeactivated):
		return http.StatusUnauthorized, domain.CodeAccountDeactivated, err.Error()
	case errors.Is(err, domain.ErrAccountLocked):
		return http.StatusUnauthorized, domain.CodeAccountLocked, err.Error()
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "", err.Error()
	case errors.Is(err, domain.ErrInvalidAPIKey):
		return http.StatusUnauthorized, "", err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "", err.Error()
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "", err.Error()
	case errors.Is(err, domain.ErrNotOwner):
		metrics.AuthzDenialsTotal.WithLabelValues("ownership").Inc()
		return http.StatusForbidden, "", err.Error()
	case errors.Is(err, domain.ErrResourceNotFound):
		return http.StatusNotFound, "", err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "", err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "", "internal server error"
}
