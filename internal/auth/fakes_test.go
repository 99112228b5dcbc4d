package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/asset-service/internal/domain"
)

type memStore struct {
	mu    sync.Mutex
	users map[int64]domain.User
	err   error
}

func newMemStore() *memStore {
	return &memStore{users: map[int64]domain.User{}}
}

func (s *memStore) put(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *memStore) delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *memStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func testHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}

// seededStore holds the default admin account used across auth tests.
func seededStore(t *testing.T) *memStore {
	t.Helper()
	hash, err := testHasher().Hash("password")
	require.NoError(t, err)
	store := newMemStore()
	store.put(domain.User{ID: 1, Username: "admin", PasswordHash: hash})
	return store
}
