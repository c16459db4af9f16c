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

type stubLimiter struct {
	allowed  bool
	err      error
	lastKey  string
	numCalls int
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.lastKey = key
	s.numCalls++
	return s.allowed, s.err
}

func TestRateLimitSensitive_Allows(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	c := contextWithPrincipal(&domain.Principal{ID: "u1"}, "")

	handler := RateLimitSensitive(limiter)(passThrough)
	if err := handler(c); err != nil {
		t.Fatalf("allowed request failed: %v", err)
	}
	if limiter.lastKey != "sensitive:u1" {
		t.Fatalf("window must be keyed by principal id, got %q", limiter.lastKey)
	}
}

func TestRateLimitSensitive_Denies(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	c := contextWithPrincipal(&domain.Principal{ID: "u1"}, "")

	handler := RateLimitSensitive(limiter)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestRateLimitSensitive_AnonymousKeyedByAddress(t *testing.T) {
	limiter := &stubLimiter{allowed: true}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:4711"
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RateLimitSensitive(limiter)(passThrough)
	if err := handler(c); err != nil {
		t.Fatalf("allowed request failed: %v", err)
	}
	if limiter.lastKey != "sensitive:ip:203.0.113.7" {
		t.Fatalf("anonymous window must be keyed by client address, got %q", limiter.lastKey)
	}
}

func TestRateLimitSensitive_LimiterFailure(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	c := contextWithPrincipal(&domain.Principal{ID: "u1"}, "")

	handler := RateLimitSensitive(limiter)(func(c echo.Context) error {
		t.Fatalf("should not reach next on limiter failure")
		return nil
	})
	err := handler(c)
	if err == nil || errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("limiter failures must surface as internal errors, got %v", err)
	}
}
