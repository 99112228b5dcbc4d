package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/repository"
)

// activityTimeout bounds each login activity call so an unreachable store
// cannot stall logins.
const activityTimeout = 500 * time.Millisecond

// IssuedToken is the result of a successful login.
type IssuedToken struct {
	Identity    domain.Identity
	AccessToken string
	ExpiresAt   time.Time
}

// Profile describes the caller for the /api/me endpoint.
type Profile struct {
	Identity    domain.Identity
	LastLoginAt *time.Time
}

// AuthService coordinates login and token issuance.
type AuthService struct {
	authenticator *auth.Authenticator
	tokens        *auth.TokenCodec
	activity      repository.LoginActivityRepository
	events        events.Dispatcher
	logger        *zap.Logger
	now           func() time.Time

	activityTimeout time.Duration
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Authenticator *auth.Authenticator
	Tokens        *auth.TokenCodec
	Activity      repository.LoginActivityRepository
	Events        events.Dispatcher
	Logger        *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		authenticator: deps.Authenticator,
		tokens:        deps.Tokens,
		activity:      deps.Activity,
		events:        deps.Events,
		logger:        logger,
		now:           time.Now,

		activityTimeout: activityTimeout,
	}
}

// Login authenticates the pair and issues an access token. A rejected pair
// returns auth.ErrAuthenticationFailed regardless of the cause.
func (s *AuthService) Login(ctx context.Context, username, password string) (*IssuedToken, error) {
	identity, ok, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info("login rejected")
		publish(ctx, s.events, s.logger, events.NewEvent(events.EventLoginRejected, 0, username))
		return nil, auth.ErrAuthenticationFailed
	}

	token, exp, err := s.tokens.Encode(identity.ID, identity.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if s.activity != nil {
		activityCtx, cancel := context.WithTimeout(ctx, s.activityTimeout)
		err := s.activity.RecordLogin(activityCtx, identity.ID, s.now())
		cancel()
		if err != nil {
			s.logger.Warn("record login activity", zap.Int64("user_id", identity.ID), zap.Error(err))
		}
	}

	publish(ctx, s.events, s.logger, events.NewEvent(events.EventLoginSucceeded, identity.ID, identity.Username))
	s.logger.Info("token issued", zap.Int64("user_id", identity.ID), zap.String("username", identity.Username))
	return &IssuedToken{Identity: identity, AccessToken: token, ExpiresAt: exp}, nil
}

// Profile returns the identity with its recorded login activity. Activity
// lookups are best effort.
func (s *AuthService) Profile(ctx context.Context, identity domain.Identity) Profile {
	profile := Profile{Identity: identity}
	if s.activity == nil {
		return profile
	}
	activityCtx, cancel := context.WithTimeout(ctx, s.activityTimeout)
	defer cancel()
	at, found, err := s.activity.LastLogin(activityCtx, identity.ID)
	if err != nil {
		s.logger.Warn("read login activity", zap.Int64("user_id", identity.ID), zap.Error(err))
		return profile
	}
	if found {
		profile.LastLoginAt = &at
	}
	return profile
}
