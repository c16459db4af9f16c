package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

const (
	defaultMaxLoginFailures = 5
	defaultLockDuration     = 15 * time.Minute
)

// AuthService implements registration, login and password changes, including
// the failed-attempt bookkeeping that feeds the account lock the principal
// loader enforces.
type AuthService struct {
	users        ports.UserRepository
	tokens       ports.TokenService
	logger       zerolog.Logger
	maxFailures  int
	lockDuration time.Duration
	now          func() time.Time
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger, maxFailures int, lockDuration time.Duration) *AuthService {
	if maxFailures <= 0 {
		maxFailures = defaultMaxLoginFailures
	}
	if lockDuration <= 0 {
		lockDuration = defaultLockDuration
	}
	return &AuthService{
		users:        users,
		tokens:       tokens,
		logger:       logger,
		maxFailures:  maxFailures,
		lockDuration: lockDuration,
		now:          time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		Active:       true,
		Permissions:  input.Permissions,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a token. Consecutive failures are
// counted per account; crossing the threshold locks the account for
// lockDuration. A successful login resets the count.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	now := s.now().UTC()
	if !user.Active {
		return "", nil, domain.ErrAccountDeactivated
	}
	if user.IsLocked(now) {
		return "", nil, domain.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		failures := user.FailedLogins + 1
		var lockUntil time.Time
		if failures >= s.maxFailures {
			lockUntil = now.Add(s.lockDuration)
			s.logger.Warn().Str("user_id", user.ID).Int("failures", failures).Time("lock_until", lockUntil).Msg("account locked after repeated login failures")
		}
		if err := s.users.RecordLoginFailure(ctx, user.ID, failures, lockUntil); err != nil {
			s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to record login failure")
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.FailedLogins > 0 {
		if err := s.users.ResetLoginFailures(ctx, user.ID); err != nil {
			s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to reset login failures")
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, updated string) error {
	if updated == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}
