package ports

import (
	"context"
	"time"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

// TokenClaims is the decoded content of a verified access token.
type TokenClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies access tokens. Verify returns exactly one
// of domain.ErrTokenExpired, domain.ErrInvalidToken or domain.ErrTokenError
// on failure, so callers can branch exhaustively instead of string-matching.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// PrincipalService runs the verify→load→resolve pipeline: token verification,
// fresh user load with active/lock checks, and permission resolution.
type PrincipalService interface {
	Resolve(ctx context.Context, token string) (*domain.Principal, error)
}

// RegisterInput carries a registration request into the auth service.
type RegisterInput struct {
	Email       string
	Name        string
	Password    string
	Role        string
	Permissions []domain.PermissionEntry
}

// AuthService implements the login subsystem: registration, credential
// verification with lockout bookkeeping, and password changes.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID, current, updated string) error
}
