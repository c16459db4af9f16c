package ports

import (
	"context"
	"time"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// RecordLoginFailure persists the consecutive-failure count and, once the
	// lockout threshold is reached, the lock expiry.
	RecordLoginFailure(ctx context.Context, id string, failures int, lockUntil time.Time) error
	// ResetLoginFailures clears the failure bookkeeping after a successful login.
	ResetLoginFailures(ctx context.Context, id string) error
}
