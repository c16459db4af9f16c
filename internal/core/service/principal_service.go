package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

// PrincipalResolver runs the full authentication pipeline for a bearer token:
// verify the token, load the user fresh from the store, check account status,
// and resolve the effective permission set. Nothing is cached across requests.
type PrincipalResolver struct {
	tokens ports.TokenService
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewPrincipalResolver(tokens ports.TokenService, users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *PrincipalResolver {
	return &PrincipalResolver{
		tokens: tokens,
		users:  users,
		roles:  roles,
		logger: logger,
		now:    time.Now,
	}
}

// Resolve returns the authenticated principal for a raw token string.
// Account checks run in a fixed order (existence, active, lock) and the first
// failing check wins.
func (s *PrincipalResolver) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrAccountDeactivated
	}
	if user.IsLocked(s.now().UTC()) {
		return nil, domain.ErrAccountLocked
	}

	perms, err := s.resolvePermissions(ctx, user)
	if err != nil {
		return nil, err
	}

	return &domain.Principal{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		Permissions: perms,
	}, nil
}

// resolvePermissions merges the role baseline with user overrides. A missing
// or inactive role is not an error: the baseline is simply empty.
func (s *PrincipalResolver) resolvePermissions(ctx context.Context, user *domain.User) (domain.PermissionSet, error) {
	role, err := s.roles.FindActiveByName(ctx, user.Role)
	if err != nil {
		return nil, err
	}

	var base []domain.PermissionEntry
	if role != nil {
		base = role.Permissions
	} else {
		s.logger.Debug().
			Str("user_id", user.ID).
			Str("role", user.Role).
			Msg("role missing or inactive, resolving user-only permissions")
	}

	return domain.MergePermissions(base, user.Permissions), nil
}
