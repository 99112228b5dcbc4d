package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/api/dto"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/service"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// AssetsHandler exposes asset CRUD endpoints. All routes sit behind the auth
// middleware.
type AssetsHandler struct {
	assets *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets *service.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

// List handles GET /api/assets.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	assets, err := h.assets.List(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.NewAssetList(assets))
}

// Get handles GET /api/asset/:id.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	id, err := assetID(c)
	if err != nil {
		return err
	}
	asset, err := h.assets.Get(c.UserContext(), id)
	if err != nil {
		return assetError(err)
	}
	return c.JSON(dto.NewAssetResponse(asset))
}

// Create handles POST /api/asset.
func (h *AssetsHandler) Create(c *fiber.Ctx) error {
	req, err := parseAssetRequest(c)
	if err != nil {
		return err
	}
	asset, err := h.assets.Create(c.UserContext(), req.Name)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAssetResponse(asset))
}

// Update handles PUT /api/asset/:id.
func (h *AssetsHandler) Update(c *fiber.Ctx) error {
	id, err := assetID(c)
	if err != nil {
		return err
	}
	req, err := parseAssetRequest(c)
	if err != nil {
		return err
	}
	asset, err := h.assets.Update(c.UserContext(), id, req.Name)
	if err != nil {
		return assetError(err)
	}
	return c.JSON(dto.NewAssetResponse(asset))
}

func assetID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, apperrors.NewValidationError(err)
	}
	return int64(id), nil
}

func parseAssetRequest(c *fiber.Ctx) (dto.AssetRequest, error) {
	var req dto.AssetRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError(err)
	}
	if err := req.Validate(); err != nil {
		return req, apperrors.NewValidationError(err)
	}
	return req, nil
}

func assetError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperrors.NewNotFound("Asset")
	}
	return apperrors.NewInternalError(err)
}
