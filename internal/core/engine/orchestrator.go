package engine

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/adlens/adlens/internal/core"
)

// CacheStore is the lookup/write surface the orchestrator needs.
type CacheStore interface {
	GetCache(ctx context.Context, key string) (value []byte, found bool, err error)
	SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Orchestrator implements cache-or-compute over the shared store. Caching
// is best-effort: read failures degrade to misses and write failures are
// logged and swallowed, because the computed result is already in hand.
//
// Concurrent misses for the same key are not de-duplicated; a tied pair
// both call the provider and both write (last write wins on TTL). Accepted
// limitation, not a bug.
type Orchestrator struct {
	Cache  CacheStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Resolve returns the cached value for key or computes, caches, and
// returns a fresh one. Compute failures propagate and nothing is written;
// shape validation of provider output happens inside compute, so a value
// that reaches the cache has already passed it.
func Resolve[T any](ctx context.Context, o *Orchestrator, key string, compute func(ctx context.Context) (*T, error)) (*T, core.CacheState, error) {
	if raw, found := o.lookup(ctx, key); found {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, core.CacheHit, nil
		}
		// Corrupt entry: fall through and recompute.
		o.logWarn("discarding undecodable cache entry", key, nil)
	}

	value, err := compute(ctx)
	if err != nil {
		return nil, core.CacheMiss, err
	}

	if raw, err := json.Marshal(value); err != nil {
		o.logWarn("failed to encode cache entry", key, err)
	} else if err := o.Cache.SetCache(ctx, key, raw, o.TTL); err != nil {
		o.logWarn("failed to write cache entry", key, err)
	}

	return value, core.CacheMiss, nil
}

func (o *Orchestrator) lookup(ctx context.Context, key string) ([]byte, bool) {
	raw, found, err := o.Cache.GetCache(ctx, key)
	if err != nil {
		o.logWarn("cache read failed, treating as miss", key, err)
		return nil, false
	}
	return raw, found
}

func (o *Orchestrator) logWarn(msg, key string, err error) {
	if o.Logger == nil {
		return
	}
	fields := []zap.Field{zap.String("cache_key", key)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	o.Logger.Warn(msg, fields...)
}
