// Package store provides the Redis-backed key-value store shared by the
// rate limiter and the response cache. Redis owns all cross-request state;
// request handlers stay stateless.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/adlens/adlens/internal/errors"
)

// Store wraps a Redis client. Construct once at startup and inject it;
// lifecycle belongs to the process entry point.
type Store struct {
	client *redis.Client
}

// Config holds Redis connection settings.
type Config struct {
	URL      string `mapstructure:"url"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// New connects to Redis. A URL takes precedence over discrete settings.
func New(cfg Config) (*Store, error) {
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		addr := cfg.Addr
		if addr == "" {
			addr = "localhost:6379"
		}
		opts = &redis.Options{Addr: addr, Password: cfg.Password, DB: cfg.DB}
	}

	return &Store{client: redis.NewClient(opts)}, nil
}

// Ping verifies connectivity. Used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return errors.New("store is not initialized")
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return &apperrors.StoreError{Op: "ping", Err: err}
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
