package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adlens/adlens/internal/core"
)

// RateLimitStore is the atomic slot operations the limiter needs. The
// backing store's transaction semantics carry the concurrency guarantee;
// the limiter holds no in-process locks.
type RateLimitStore interface {
	TakeSlot(ctx context.Context, key string, window time.Duration, now time.Time) (count int, oldest time.Time, member string, err error)
	ReleaseSlot(ctx context.Context, key, member string) error
}

// RateLimiter enforces a sliding-window quota per (route, client) pair.
// Quotas for different routes are independent because the route is part of
// the store key.
type RateLimiter struct {
	Store  RateLimitStore
	Quota  int
	Window time.Duration
	Clock  func() time.Time
	Logger *zap.Logger
}

// Check admits or rejects one request. Store failures propagate
// (fail-closed): with the counters unreachable we cannot prove the quota
// holds, so we reject rather than guess.
func (r *RateLimiter) Check(ctx context.Context, route core.RouteID, clientKey string) (core.RateLimitDecision, error) {
	now := r.now()
	key := fmt.Sprintf("ratelimit:%s:%s", route, clientKey)

	count, oldest, member, err := r.Store.TakeSlot(ctx, key, r.Window, now)
	if err != nil {
		return core.RateLimitDecision{}, err
	}

	if count > r.Quota {
		// Give the slot back so rejected requests do not eat the window.
		if relErr := r.Store.ReleaseSlot(ctx, key, member); relErr != nil && r.Logger != nil {
			r.Logger.Warn("failed to release rate-limit slot", zap.String("key", key), zap.Error(relErr))
		}
		return core.RateLimitDecision{
			Allowed: false,
			ResetAt: oldest.Add(r.Window),
		}, nil
	}

	return core.RateLimitDecision{
		Allowed:   true,
		Remaining: r.Quota - count,
		ResetAt:   oldest.Add(r.Window),
	}, nil
}

func (r *RateLimiter) now() time.Time {
	if r != nil && r.Clock != nil {
		return r.Clock()
	}
	return time.Now().UTC()
}
