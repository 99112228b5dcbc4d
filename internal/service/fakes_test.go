package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/asset-service/internal/domain"
)

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
	err    error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[int64]domain.User{}}
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.byID {
		if u.Username == user.Username {
			return domain.ErrConflict
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.byID[user.ID] = *user
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memUsers) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.byID)), nil
}

type memAssets struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.Asset
}

func newMemAssets() *memAssets {
	return &memAssets{byID: map[int64]domain.Asset{}}
}

func (m *memAssets) Create(_ context.Context, asset *domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	asset.ID = m.nextID
	m.byID[asset.ID] = *asset
	return nil
}

func (m *memAssets) Update(_ context.Context, asset *domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[asset.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[asset.ID] = *asset
	return nil
}

func (m *memAssets) GetByID(_ context.Context, id int64) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *memAssets) List(_ context.Context) ([]domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Asset, 0, len(m.byID))
	for _, a := range m.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memActivity struct {
	mu   sync.Mutex
	last map[int64]time.Time
	err  error
}

func newMemActivity() *memActivity {
	return &memActivity{last: map[int64]time.Time{}}
}

func (m *memActivity) RecordLogin(_ context.Context, userID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.last[userID] = at
	return nil
}

func (m *memActivity) LastLogin(_ context.Context, userID int64) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return time.Time{}, false, m.err
	}
	at, ok := m.last[userID]
	return at, ok, nil
}

func (m *memActivity) Forget(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.last, userID)
	return nil
}

var errBoom = errors.New("boom")
