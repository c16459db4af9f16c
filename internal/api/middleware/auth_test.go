package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

type stubResolver struct {
	principal *domain.Principal
	err       error
	lastToken string
}

func (s *stubResolver) Resolve(_ context.Context, token string) (*domain.Principal, error) {
	s.lastToken = token
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

func newTestContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProtect_ValidToken(t *testing.T) {
	resolver := &stubResolver{principal: &domain.Principal{ID: "u1", Role: domain.RoleSales}}
	c, rec := newTestContext(t, "Bearer good-token")

	called := false
	handler := Protect(resolver)(func(c echo.Context) error {
		called = true
		principal, ok := PrincipalFrom(c)
		if !ok || principal.ID != "u1" {
			t.Fatalf("principal not attached")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if resolver.lastToken != "good-token" {
		t.Fatalf("unexpected token passed to resolver: %q", resolver.lastToken)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProtect_MissingHeader(t *testing.T) {
	c, _ := newTestContext(t, "")

	handler := Protect(&stubResolver{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestProtect_WrongScheme(t *testing.T) {
	c, _ := newTestContext(t, "Token abc")

	handler := Protect(&stubResolver{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestProtect_ResolverFailureShortCircuits(t *testing.T) {
	for _, sentinel := range []error{
		domain.ErrTokenExpired,
		domain.ErrInvalidToken,
		domain.ErrUserNotFound,
		domain.ErrAccountDeactivated,
		domain.ErrAccountLocked,
	} {
		c, _ := newTestContext(t, "Bearer bad")
		handler := Protect(&stubResolver{err: sentinel})(func(c echo.Context) error {
			t.Fatalf("should not reach next for %v", sentinel)
			return nil
		})
		if err := handler(c); !errors.Is(err, sentinel) {
			t.Fatalf("expected %v, got %v", sentinel, err)
		}
	}
}

func TestOptionalAuth_AttachesPrincipalWhenValid(t *testing.T) {
	resolver := &stubResolver{principal: &domain.Principal{ID: "u1"}}
	c, _ := newTestContext(t, "Bearer good-token")

	handler := OptionalAuth(resolver)(func(c echo.Context) error {
		if _, ok := PrincipalFrom(c); !ok {
			t.Fatalf("principal should be attached for a valid token")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestOptionalAuth_NeverBlocks(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
	}{
		{"no header", "", nil},
		{"expired token", "Bearer stale", domain.ErrTokenExpired},
		{"malformed token", "Bearer garbage", domain.ErrInvalidToken},
		{"unknown user", "Bearer orphan", domain.ErrUserNotFound},
	}

	for _, tc := range cases {
		c, rec := newTestContext(t, tc.header)
		handler := OptionalAuth(&stubResolver{err: tc.err})(func(c echo.Context) error {
			if _, ok := PrincipalFrom(c); ok {
				t.Fatalf("%s: no principal should be attached", tc.name)
			}
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("%s: optionalAuth must swallow failures, got %v", tc.name, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.name, rec.Code)
		}
	}
}
