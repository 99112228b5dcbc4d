package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/domain"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// Client-facing 401 details. Nothing more specific is ever sent back.
const (
	DetailMissingCredentials = "Authorization header missing"
	DetailTokenExpired       = "Token expired"
	DetailInvalidToken       = "Could not validate credentials"
	DetailUserNotFound       = "User not found"
	DetailBadCredentials     = "Incorrect username or password"
)

// AuthMiddleware guards protected routes with the session verifier.
type AuthMiddleware struct {
	verifier *SessionVerifier
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(verifier *SessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Handle enforces authentication and attaches the identity to the user context.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	identity, err := m.verifier.Resolve(c.UserContext(), bearerCredentials(c.Get(fiber.HeaderAuthorization)))
	if err != nil {
		return resolveError(err)
	}
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
	return c.Next()
}

// IdentityFromCtx returns the identity bound to a request that passed Handle.
func IdentityFromCtx(c *fiber.Ctx) (domain.Identity, bool) {
	return IdentityFromContext(c.UserContext())
}

// bearerCredentials extracts the token from an Authorization header. Any other
// scheme is treated as no credentials at all.
func bearerCredentials(header string) *string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return &token
}

func resolveError(err error) error {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return apperrors.NewUnauthorized(DetailMissingCredentials)
	case errors.Is(err, ErrTokenExpired):
		return apperrors.NewUnauthorized(DetailTokenExpired)
	case errors.Is(err, ErrUserNotFound):
		return apperrors.NewUnauthorized(DetailUserNotFound)
	case errors.Is(err, ErrUnauthenticated):
		return apperrors.NewUnauthorized(DetailInvalidToken)
	default:
		return apperrors.NewInternalError(err)
	}
}
