package service

import (
	"context"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository"
)

// AssetService exposes CRUD over assets. Callers are already authenticated.
type AssetService struct {
	assets repository.AssetRepository
}

// NewAssetService builds the service.
func NewAssetService(assets repository.AssetRepository) *AssetService {
	return &AssetService{assets: assets}
}

func (s *AssetService) List(ctx context.Context) ([]domain.Asset, error) {
	return s.assets.List(ctx)
}

// Get returns domain.ErrNotFound for an unknown id.
func (s *AssetService) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	return s.assets.GetByID(ctx, id)
}

func (s *AssetService) Create(ctx context.Context, name string) (*domain.Asset, error) {
	asset := &domain.Asset{Name: name}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Update renames an asset, returning domain.ErrNotFound for an unknown id.
func (s *AssetService) Update(ctx context.Context, id int64, name string) (*domain.Asset, error) {
	asset := &domain.Asset{ID: id, Name: name}
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}
