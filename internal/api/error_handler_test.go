package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

func handle(t *testing.T, err error) (int, failureResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body failureResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_StatusCodeTable(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no token", domain.ErrNoToken, http.StatusUnauthorized, domain.CodeNoToken},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, domain.CodeInvalidToken},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, domain.CodeTokenExpired},
		{"token error", domain.ErrTokenError, http.StatusUnauthorized, domain.CodeTokenError},
		{"user not found", domain.ErrUserNotFound, http.StatusUnauthorized, domain.CodeUserNotFound},
		{"deactivated", domain.ErrAccountDeactivated, http.StatusUnauthorized, domain.CodeAccountDeactivated},
		{"locked", domain.ErrAccountLocked, http.StatusUnauthorized, domain.CodeAccountLocked},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized, ""},
		{"bad api key", domain.ErrInvalidAPIKey, http.StatusUnauthorized, ""},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, ""},
		{"duplicate account", domain.ErrUserExists, http.StatusConflict, ""},
		{"not owner", domain.ErrNotOwner, http.StatusForbidden, ""},
		{"resource missing", domain.ErrResourceNotFound, http.StatusNotFound, ""},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, ""},
		{"role denied", &domain.RoleDeniedError{Role: "sales"}, http.StatusForbidden, ""},
		{"permission denied", &domain.PermissionDeniedError{Module: "orders", Action: "delete"}, http.StatusForbidden, ""},
	}

	for _, tc := range cases {
		status, body := handle(t, tc.err)
		if status != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.name, tc.status, status)
		}
		if body.Code != tc.code {
			t.Fatalf("%s: expected code %q, got %q", tc.name, tc.code, body.Code)
		}
		if body.Success {
			t.Fatalf("%s: failure envelope must carry success=false", tc.name)
		}
		if body.Message == "" {
			t.Fatalf("%s: failure envelope must carry a message", tc.name)
		}
	}
}

func TestErrorHandler_RoleDenialNamesRole(t *testing.T) {
	_, body := handle(t, &domain.RoleDeniedError{Role: "warehouse"})
	if want := `role "warehouse" is not allowed to access this resource`; body.Message != want {
		t.Fatalf("expected %q, got %q", want, body.Message)
	}
}

func TestErrorHandler_PermissionDenialNamesModuleAndAction(t *testing.T) {
	_, body := handle(t, &domain.PermissionDeniedError{Module: "orders", Action: "delete"})
	if want := `you do not have "delete" permission on "orders"`; body.Message != want {
		t.Fatalf("expected %q, got %q", want, body.Message)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	status, body := handle(t, errors.New("pq: connection refused at 10.0.0.3"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}

func TestErrorHandler_EchoHTTPErrorsPassThrough(t *testing.T) {
	status, body := handle(t, echo.NewHTTPError(http.StatusBadRequest, "email is required"))
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body.Message != "email is required" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusOK)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNoToken, c)
	if rec.Code != http.StatusOK {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
}
