package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

func newAuthService(users *stubUserRepo) *AuthService {
	tokens := NewJWTTokenService("secret", time.Hour)
	return NewAuthService(users, tokens, zerolog.Nop(), 3, 15*time.Minute)
}

func TestAuthService_Register_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "ana@shop.test",
		Name:     "Ana",
		Password: "s3cret-pass",
		Role:     domain.RoleSales,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !user.Active {
		t.Fatalf("new accounts start active")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "", Password: "x", Role: domain.RoleSales}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.c", Password: "x", Role: "superuser"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "ana@shop.test", Name: "Ana", Password: "s3cret-pass", Role: domain.RoleSales,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "ana@shop.test", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.Email != "ana@shop.test" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_WrongPasswordCountsFailure(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "ana@shop.test", Password: "s3cret-pass", Role: domain.RoleSales,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ana@shop.test", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if users.users[created.ID].FailedLogins != 1 {
		t.Fatalf("expected failure count 1, got %d", users.users[created.ID].FailedLogins)
	}
}

func TestAuthService_Login_LocksAfterThreshold(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users) // threshold 3

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "ana@shop.test", Password: "s3cret-pass", Role: domain.RoleSales,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, _, _ = svc.Login(context.Background(), "ana@shop.test", "wrong")
	}
	if users.users[created.ID].LockUntil.IsZero() {
		t.Fatalf("expected account locked after 3 failures")
	}

	// Even the correct password is refused while the lock holds.
	if _, _, err := svc.Login(context.Background(), "ana@shop.test", "s3cret-pass"); !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
}

func TestAuthService_Login_SuccessResetsFailures(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "ana@shop.test", Password: "s3cret-pass", Role: domain.RoleSales,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _ = svc.Login(context.Background(), "ana@shop.test", "wrong")
	if _, _, err := svc.Login(context.Background(), "ana@shop.test", "s3cret-pass"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if users.users[created.ID].FailedLogins != 0 {
		t.Fatalf("expected failure count reset, got %d", users.users[created.ID].FailedLogins)
	}
}

func TestAuthService_Login_Deactivated(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "ana@shop.test", Password: "s3cret-pass", Role: domain.RoleSales,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	users.users[created.ID].Active = false

	if _, _, err := svc.Login(context.Background(), "ana@shop.test", "s3cret-pass"); !errors.Is(err, domain.ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailHidden(t *testing.T) {
	svc := newAuthService(newStubUserRepo())
	if _, _, err := svc.Login(context.Background(), "ghost@shop.test", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown accounts must look like bad credentials, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "ana@shop.test", Password: "old-password", Role: domain.RoleSales,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), created.ID, "wrong", "new-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), created.ID, "old-password", "new-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ana@shop.test", "new-password"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
