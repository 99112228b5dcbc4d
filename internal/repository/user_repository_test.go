package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-service/internal/domain"
)

func TestUserRepository_GetByUsername(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{row: fakeRow{values: []any{int64(1), "admin", "$2a$04$hash", created}}}
	repo := NewUserRepository(db)

	user, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, &domain.User{ID: 1, Username: "admin", PasswordHash: "$2a$04$hash", CreatedAt: created}, user)
	assert.Contains(t, db.lastSQL, "WHERE username=$1")
	assert.Equal(t, []any{"admin"}, db.lastArgs)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	repo := NewUserRepository(db)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []any{int64(99)}, db.lastArgs)
}

func TestUserRepository_GetByIDPassesThroughDriverErrors(t *testing.T) {
	cause := errors.New("conn closed")
	repo := NewUserRepository(&fakeDB{row: fakeRow{err: cause}})

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_Create(t *testing.T) {
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{row: fakeRow{values: []any{int64(5), created}}}
	repo := NewUserRepository(db)

	user := &domain.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, created, user.CreatedAt)
	assert.Equal(t, []any{"alice", "hash"}, db.lastArgs)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: &pgconn.PgError{Code: "23505"}}}
	repo := NewUserRepository(db)

	err := repo.Create(context.Background(), &domain.User{Username: "admin", PasswordHash: "hash"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepository_Delete(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 1")}
	repo := NewUserRepository(db)
	require.NoError(t, repo.Delete(context.Background(), 1))

	db.tag = pgconn.NewCommandTag("DELETE 0")
	assert.ErrorIs(t, repo.Delete(context.Background(), 1), domain.ErrNotFound)
}

func TestUserRepository_Count(t *testing.T) {
	repo := NewUserRepository(&fakeDB{row: fakeRow{values: []any{int64(3)}}})

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
