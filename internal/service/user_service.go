package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/repository"
)

// ErrUsernameTaken is returned when provisioning a duplicate username.
var ErrUsernameTaken = errors.New("username already exists")

// UserService provisions and removes accounts. It is used by the seed step
// and the admin CLI, never by the request path.
type UserService struct {
	users    repository.UserRepository
	hasher   *auth.PasswordHasher
	activity repository.LoginActivityRepository
	events   events.Dispatcher
	logger   *zap.Logger
}

// NewUserService builds the service. activity may be nil.
func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, activity repository.LoginActivityRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, hasher: hasher, activity: activity, logger: logger}
}

// WithEvents makes the service announce account changes on dispatcher.
func (s *UserService) WithEvents(dispatcher events.Dispatcher) *UserService {
	s.events = dispatcher
	return s
}

// CreateUser hashes the password and stores a new account.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password required")
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
		}
		return nil, err
	}
	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("username", username))
	publish(ctx, s.events, s.logger, events.NewEvent(events.EventUserCreated, user.ID, username))
	return user, nil
}

// DeleteUser removes an account. Tokens already issued to it stop resolving.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if s.activity != nil {
		if err := s.activity.Forget(ctx, id); err != nil {
			s.logger.Warn("clear login activity", zap.Int64("user_id", id), zap.Error(err))
		}
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	publish(ctx, s.events, s.logger, events.NewEvent(events.EventUserDeleted, id, ""))
	return nil
}

// SeedDefaultAdmin creates the given account when no users exist yet. It
// reports whether a user was created.
func (s *UserService) SeedDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		s.logger.Info("user table already populated; skipping admin seed")
		return false, nil
	}
	if _, err := s.CreateUser(ctx, username, password); err != nil {
		return false, err
	}
	s.logger.Info("seeded default admin user", zap.String("username", username))
	return true, nil
}
