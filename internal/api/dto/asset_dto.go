package dto

import (
	"errors"

	"github.com/spec-kit/asset-service/internal/domain"
)

// AssetRequest is the payload for creating or renaming an asset.
type AssetRequest struct {
	Name string `json:"name"`
}

// Validate enforces the 1..255 character bound on the name.
func (r AssetRequest) Validate() error {
	if !lengthWithin(r.Name) {
		return errors.New("name must be 1-255 characters")
	}
	return nil
}

// AssetResponse is the public view of an asset.
type AssetResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewAssetResponse projects a domain asset.
func NewAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{ID: a.ID, Name: a.Name}
}

// NewAssetList projects a slice of domain assets.
func NewAssetList(assets []domain.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, NewAssetResponse(&assets[i]))
	}
	return out
}
