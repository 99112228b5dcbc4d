package auth

import (
	"context"

	"github.com/spec-kit/asset-service/internal/domain"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the resolved identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext retrieves the identity attached by the auth middleware.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}
