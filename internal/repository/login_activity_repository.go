package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const lastLoginKeyPrefix = "auth:last_login:"

// LoginActivityRepository remembers when each user last obtained a token.
type LoginActivityRepository interface {
	RecordLogin(ctx context.Context, userID int64, at time.Time) error
	LastLogin(ctx context.Context, userID int64) (time.Time, bool, error)
	Forget(ctx context.Context, userID int64) error
}

// KeyValueStore is the subset of the redis client used here.
type KeyValueStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type loginActivityRepository struct {
	kv KeyValueStore
}

// NewLoginActivityRepository returns a Redis-backed implementation.
func NewLoginActivityRepository(kv KeyValueStore) LoginActivityRepository {
	return &loginActivityRepository{kv: kv}
}

func lastLoginKey(userID int64) string {
	return lastLoginKeyPrefix + strconv.FormatInt(userID, 10)
}

func (r *loginActivityRepository) RecordLogin(ctx context.Context, userID int64, at time.Time) error {
	return r.kv.Set(ctx, lastLoginKey(userID), at.UTC().Format(time.RFC3339Nano), 0).Err()
}

func (r *loginActivityRepository) LastLogin(ctx context.Context, userID int64) (time.Time, bool, error) {
	val, err := r.kv.Get(ctx, lastLoginKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	at, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last login for user %d: %w", userID, err)
	}
	return at, true, nil
}

func (r *loginActivityRepository) Forget(ctx context.Context, userID int64) error {
	return r.kv.Del(ctx, lastLoginKey(userID)).Err()
}
