package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-service/internal/domain"
)

func TestAuthenticator_Authenticate(t *testing.T) {
	store := seededStore(t)
	authenticator, err := NewAuthenticator(store, testHasher())
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		want     domain.Identity
		wantOK   bool
	}{
		{name: "valid credentials", username: "admin", password: "password", want: domain.Identity{ID: 1, Username: "admin"}, wantOK: true},
		{name: "wrong password", username: "admin", password: "wrong"},
		{name: "unknown user", username: "ghost", password: "x"},
		{name: "username is case sensitive", username: "Admin", password: "password"},
		{name: "empty password", username: "admin", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, ok, err := authenticator.Authenticate(context.Background(), tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, identity)
		})
	}
}

func TestAuthenticator_NoMatchOutcomesIndistinguishable(t *testing.T) {
	authenticator, err := NewAuthenticator(seededStore(t), testHasher())
	require.NoError(t, err)
	ctx := context.Background()

	unknownID, unknownOK, unknownErr := authenticator.Authenticate(ctx, "ghost", "password")
	wrongID, wrongOK, wrongErr := authenticator.Authenticate(ctx, "admin", "wrong")

	assert.Equal(t, unknownID, wrongID)
	assert.Equal(t, unknownOK, wrongOK)
	assert.Equal(t, unknownErr, wrongErr)
	assert.NotEmpty(t, authenticator.decoy)
}

func TestAuthenticator_StoreFailure(t *testing.T) {
	store := seededStore(t)
	authenticator, err := NewAuthenticator(store, testHasher())
	require.NoError(t, err)

	store.err = errors.New("connection reset")
	_, ok, err := authenticator.Authenticate(context.Background(), "admin", "password")
	assert.False(t, ok)
	assert.ErrorIs(t, err, store.err)
}

func TestAuthenticator_CorruptStoredHash(t *testing.T) {
	store := newMemStore()
	store.put(domain.User{ID: 7, Username: "broken", PasswordHash: "not-a-bcrypt-hash"})
	authenticator, err := NewAuthenticator(store, testHasher())
	require.NoError(t, err)

	_, ok, err := authenticator.Authenticate(context.Background(), "broken", "not-a-bcrypt-hash")
	assert.NoError(t, err)
	assert.False(t, ok)
}
