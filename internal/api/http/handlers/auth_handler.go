package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/api/dto"
	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/service"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// AuthHandler exposes token issuance and the caller profile.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Token handles POST /api/token.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(err)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err)
	}

	issued, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAuthenticationFailed) {
			return apperrors.NewUnauthorized(auth.DetailBadCredentials)
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: issued.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   issued.ExpiresAt,
	})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.DetailMissingCredentials)
	}
	profile := h.auth.Profile(c.UserContext(), identity)
	return c.JSON(dto.ProfileResponse{
		ID:          profile.Identity.ID,
		Username:    profile.Identity.Username,
		LastLoginAt: profile.LastLoginAt,
	})
}
