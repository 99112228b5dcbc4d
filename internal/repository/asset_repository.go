package repository

import (
	"context"

	"github.com/spec-kit/asset-service/internal/domain"
)

// AssetRepository manages asset persistence.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	Update(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	List(ctx context.Context) ([]domain.Asset, error)
}

type assetRepository struct {
	db DBTX
}

// NewAssetRepository builds the repository.
func NewAssetRepository(db DBTX) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (name)
        VALUES ($1)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, asset.Name).
		Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
	return mapError(err)
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	const query = `
        UPDATE assets SET name=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query, asset.Name, asset.ID).
		Scan(&asset.CreatedAt, &asset.UpdatedAt)
	return mapError(err)
}

func (r *assetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM assets WHERE id=$1`
	var asset domain.Asset
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.Name,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM assets ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Asset{}
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(&asset.ID, &asset.Name, &asset.CreatedAt, &asset.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	return result, rows.Err()
}
