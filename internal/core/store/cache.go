package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/adlens/adlens/internal/errors"
)

// GetCache returns the cached value for key, reporting presence separately
// from errors so callers can degrade a failed read into a miss.
func (s *Store) GetCache(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.client == nil {
		return nil, false, errors.New("store is not initialized")
	}

	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &apperrors.StoreError{Op: "cache get", Err: err}
	}
	return value, true, nil
}

// SetCache stores value under key with a TTL. Entries are write-once per
// key; a concurrent writer for the same key last-write-wins on TTL.
func (s *Store) SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return errors.New("store is not initialized")
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return &apperrors.StoreError{Op: "cache set", Err: err}
	}
	return nil
}
