package ports

import (
	"context"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

// ResourceStore gives the authorization layer read access to one guarded
// domain collection.
type ResourceStore interface {
	// FindOwnership returns the owner-like references of the resource, or
	// domain.ErrResourceNotFound when no such resource exists.
	FindOwnership(ctx context.Context, id string) (*domain.Ownership, error)
	// FindByID returns the raw resource document for read endpoints.
	FindByID(ctx context.Context, id string) (map[string]any, error)
	// Delete removes the resource, returning domain.ErrResourceNotFound when
	// it does not exist.
	Delete(ctx context.Context, id string) error
}

// ResourceRegistry maps the closed resource-type vocabulary to typed stores.
// Lookups resolve through this static dictionary, never through dynamically
// constructed collection names.
type ResourceRegistry map[domain.ResourceType]ResourceStore

// Resolve returns the store registered for t.
func (r ResourceRegistry) Resolve(t domain.ResourceType) (ResourceStore, bool) {
	s, ok := r[t]
	return s, ok
}
