package ports

import (
	"context"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

// RoleRepository defines read access to the role store.
type RoleRepository interface {
	// FindActiveByName returns the active role with the given name, or
	// (nil, nil) when the role does not exist or is inactive. Permission
	// resolution degrades to user-only overrides in that case; absence is
	// not an error.
	FindActiveByName(ctx context.Context, name string) (*domain.Role, error)
}
