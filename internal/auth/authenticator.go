package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spec-kit/asset-service/internal/domain"
)

// CredentialStore is the read side of the user repository consumed by the
// authentication core. Absent users are reported as domain.ErrNotFound.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticator checks username/password pairs against the credential store.
type Authenticator struct {
	users  CredentialStore
	hasher *PasswordHasher
	// decoy is compared against when the username is unknown, so both
	// no-match outcomes cost one bcrypt comparison.
	decoy string
}

// NewAuthenticator builds an authenticator.
func NewAuthenticator(users CredentialStore, hasher *PasswordHasher) (*Authenticator, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate decoy password: %w", err)
	}
	decoy, err := hasher.Hash(hex.EncodeToString(buf))
	if err != nil {
		return nil, fmt.Errorf("hash decoy password: %w", err)
	}
	return &Authenticator{users: users, hasher: hasher, decoy: decoy}, nil
}

// Authenticate returns the identity of the user when password matches.
// An unknown username and a wrong password both return ok == false with a nil
// error; only store failures produce an error.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (domain.Identity, bool, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.hasher.Verify(password, a.decoy)
			return domain.Identity{}, false, nil
		}
		return domain.Identity{}, false, fmt.Errorf("lookup user: %w", err)
	}
	if !a.hasher.Verify(password, user.PasswordHash) {
		return domain.Identity{}, false, nil
	}
	return user.Identity(), true, nil
}
