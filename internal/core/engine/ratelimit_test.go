package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/core"
	apperrors "github.com/adlens/adlens/internal/errors"
)

type slot struct {
	member string
	at     time.Time
}

// memorySlotStore mimics the store's atomic take/release semantics.
type memorySlotStore struct {
	hits map[string][]slot
	next int
	err  error
}

func (m *memorySlotStore) TakeSlot(_ context.Context, key string, window time.Duration, now time.Time) (int, time.Time, string, error) {
	if m.err != nil {
		return 0, time.Time{}, "", m.err
	}
	if m.hits == nil {
		m.hits = make(map[string][]slot)
	}

	cutoff := now.Add(-window)
	kept := m.hits[key][:0]
	for _, s := range m.hits[key] {
		if s.at.After(cutoff) {
			kept = append(kept, s)
		}
	}

	m.next++
	member := fmt.Sprintf("m%d", m.next)
	kept = append(kept, slot{member: member, at: now})
	m.hits[key] = kept

	return len(kept), kept[0].at, member, nil
}

func (m *memorySlotStore) ReleaseSlot(_ context.Context, key, member string) error {
	kept := m.hits[key][:0]
	for _, s := range m.hits[key] {
		if s.member != member {
			kept = append(kept, s)
		}
	}
	m.hits[key] = kept
	return nil
}

func TestRateLimiterQuota(t *testing.T) {
	store := &memorySlotStore{}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	limiter := &RateLimiter{
		Store:  store,
		Quota:  3,
		Window: 24 * time.Hour,
		Clock:  func() time.Time { return now },
	}

	for i := 0; i < 3; i++ {
		decision, err := limiter.Check(context.Background(), core.RouteGenerate, "203.0.113.7")
		require.NoError(t, err)
		require.True(t, decision.Allowed, "request %d should be admitted", i+1)
		now = now.Add(time.Minute)
	}

	decision, err := limiter.Check(context.Background(), core.RouteGenerate, "203.0.113.7")
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.True(t, decision.ResetAt.After(now), "reset must be strictly in the future")
}

func TestRateLimiterRejectionDoesNotConsumeWindow(t *testing.T) {
	store := &memorySlotStore{}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	limiter := &RateLimiter{
		Store:  store,
		Quota:  1,
		Window: time.Hour,
		Clock:  func() time.Time { return now },
	}

	decision, err := limiter.Check(context.Background(), core.RouteInspect, "client")
	require.NoError(t, err)
	require.True(t, decision.Allowed)

	for i := 0; i < 5; i++ {
		now = now.Add(time.Minute)
		decision, err = limiter.Check(context.Background(), core.RouteInspect, "client")
		require.NoError(t, err)
		require.False(t, decision.Allowed)
	}

	// Only the admitted hit remains, so the window frees up when it ages out.
	now = now.Add(time.Hour)
	decision, err = limiter.Check(context.Background(), core.RouteInspect, "client")
	require.NoError(t, err)
	require.True(t, decision.Allowed)
}

func TestRateLimiterRouteIsolation(t *testing.T) {
	store := &memorySlotStore{}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	limiter := &RateLimiter{
		Store:  store,
		Quota:  1,
		Window: time.Hour,
		Clock:  func() time.Time { return now },
	}

	decision, err := limiter.Check(context.Background(), core.RouteGenerate, "client")
	require.NoError(t, err)
	require.True(t, decision.Allowed)

	// Exhausting one route leaves the other untouched.
	decision, err = limiter.Check(context.Background(), core.RouteGenerate, "client")
	require.NoError(t, err)
	require.False(t, decision.Allowed)

	decision, err = limiter.Check(context.Background(), core.RouteInspect, "client")
	require.NoError(t, err)
	require.True(t, decision.Allowed)
}

func TestRateLimiterClientIsolation(t *testing.T) {
	store := &memorySlotStore{}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	limiter := &RateLimiter{
		Store:  store,
		Quota:  1,
		Window: time.Hour,
		Clock:  func() time.Time { return now },
	}

	decision, err := limiter.Check(context.Background(), core.RouteGenerate, "203.0.113.7")
	require.NoError(t, err)
	require.True(t, decision.Allowed)

	decision, err = limiter.Check(context.Background(), core.RouteGenerate, "198.51.100.9")
	require.NoError(t, err)
	require.True(t, decision.Allowed)
}

func TestRateLimiterFailsClosed(t *testing.T) {
	store := &memorySlotStore{err: &apperrors.StoreError{Op: "ratelimit take", Err: context.DeadlineExceeded}}
	limiter := &RateLimiter{Store: store, Quota: 3, Window: time.Hour}

	_, err := limiter.Check(context.Background(), core.RouteGenerate, "client")

	var storeErr *apperrors.StoreError
	require.ErrorAs(t, err, &storeErr)
}
