package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/asset-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestSessionVerifier_Resolve(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		setup   func(store *memStore)
		wantErr error
	}{
		{name: "fresh token", elapsed: 0},
		{name: "one minute before expiry", elapsed: 23*time.Hour + 59*time.Minute},
		{name: "one minute after expiry", elapsed: 24*time.Hour + time.Minute, wantErr: ErrTokenExpired},
		{name: "user deleted after issuance", setup: func(s *memStore) { s.delete(1) }, wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededStore(t)
			clock := &fakeClock{now: t0}
			codec := newTestCodec(t, clock)
			verifier := NewSessionVerifier(codec, store, zap.NewNop())

			tok, _, err := codec.Encode(1, "admin")
			require.NoError(t, err)
			if tt.setup != nil {
				tt.setup(store)
			}
			clock.Advance(tt.elapsed)

			identity, err := verifier.Resolve(context.Background(), &tok)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrUnauthenticated)
				assert.Equal(t, domain.Identity{}, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.Identity{ID: 1, Username: "admin"}, identity)
		})
	}
}

func TestSessionVerifier_MissingCredentials(t *testing.T) {
	verifier := NewSessionVerifier(newTestCodec(t, &fakeClock{now: time.Now()}), seededStore(t), nil)

	for _, creds := range []*string{nil, strPtr("")} {
		_, err := verifier.Resolve(context.Background(), creds)
		assert.ErrorIs(t, err, ErrMissingCredentials)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}
}

func TestSessionVerifier_IdentityComesFromStore(t *testing.T) {
	store := seededStore(t)
	codec := newTestCodec(t, &fakeClock{now: time.Now()})
	verifier := NewSessionVerifier(codec, store, nil)

	tok, _, err := codec.Encode(1, "admin")
	require.NoError(t, err)

	renamed, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	renamed.Username = "root"
	store.put(*renamed)

	identity, err := verifier.Resolve(context.Background(), &tok)
	require.NoError(t, err)
	assert.Equal(t, "root", identity.Username)
}

func TestSessionVerifier_StoreFailureIsNotUnauthenticated(t *testing.T) {
	store := seededStore(t)
	codec := newTestCodec(t, &fakeClock{now: time.Now()})
	verifier := NewSessionVerifier(codec, store, nil)
	tok, _, err := codec.Encode(1, "admin")
	require.NoError(t, err)

	store.err = errors.New("too many connections")
	_, err = verifier.Resolve(context.Background(), &tok)
	assert.ErrorIs(t, err, store.err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionVerifier_LogsFailureKindsDistinctly(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	codec := newTestCodec(t, clock)
	verifier := NewSessionVerifier(codec, seededStore(t), zap.New(core))

	tok, _, err := codec.Encode(1, "admin")
	require.NoError(t, err)

	_, err = verifier.Resolve(context.Background(), strPtr("garbage"))
	require.Error(t, err)
	clock.Advance(25 * time.Hour)
	_, err = verifier.Resolve(context.Background(), &tok)
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "invalid token rejected", entries[0].Message)
	assert.Equal(t, "expired token rejected", entries[1].Message)
}
