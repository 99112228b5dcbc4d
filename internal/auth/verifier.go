package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/domain"
)

// SessionVerifier resolves bearer tokens into live identities. It keeps no
// state: a token is valid while its signature holds, it has not expired and
// the user it names still exists.
type SessionVerifier struct {
	tokens *TokenCodec
	users  CredentialStore
	logger *zap.Logger
}

// NewSessionVerifier constructs a verifier.
func NewSessionVerifier(tokens *TokenCodec, users CredentialStore, logger *zap.Logger) *SessionVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionVerifier{tokens: tokens, users: users, logger: logger}
}

// Resolve validates the presented credentials. Every failure to authenticate
// satisfies errors.Is(err, ErrUnauthenticated); any other error comes from the
// credential store.
func (v *SessionVerifier) Resolve(ctx context.Context, credentials *string) (domain.Identity, error) {
	if credentials == nil || *credentials == "" {
		return domain.Identity{}, ErrMissingCredentials
	}

	claims, err := v.tokens.Decode(*credentials)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			v.logger.Info("expired token rejected")
		} else {
			v.logger.Info("invalid token rejected", zap.Error(err))
		}
		return domain.Identity{}, err
	}

	user, err := v.users.GetByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v.logger.Info("token subject no longer exists", zap.Int64("user_id", claims.SubjectID))
			return domain.Identity{}, ErrUserNotFound
		}
		return domain.Identity{}, fmt.Errorf("lookup token subject: %w", err)
	}
	return user.Identity(), nil
}
