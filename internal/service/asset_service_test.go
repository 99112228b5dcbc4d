package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-service/internal/domain"
)

func TestAssetService_CRUD(t *testing.T) {
	svc := NewAssetService(newMemAssets())
	ctx := context.Background()

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	created, err := svc.Create(ctx, "laptop")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "laptop", got.Name)

	updated, err := svc.Update(ctx, created.ID, "desktop")
	require.NoError(t, err)
	assert.Equal(t, "desktop", updated.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "desktop", all[0].Name)
}

func TestAssetService_Missing(t *testing.T) {
	svc := NewAssetService(newMemAssets())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(context.Background(), 42, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
