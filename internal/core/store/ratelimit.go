package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/adlens/adlens/internal/errors"
)

// TakeSlot atomically records a hit for key, prunes hits older than window,
// and returns the in-window hit count (including this one), the oldest
// retained hit time, and the member written for this hit.
//
// The window is a sorted set of hit timestamps; the prune/add/count/expire
// sequence runs in one MULTI/EXEC so concurrent callers cannot slip past
// the quota between the count and the write.
func (s *Store) TakeSlot(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, string, error) {
	if s == nil || s.client == nil {
		return 0, time.Time{}, "", errors.New("store is not initialized")
	}

	member := strconv.FormatInt(now.UnixNano(), 10) + ":" + uuid.NewString()
	cutoff := now.Add(-window).UnixNano()

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	cardCmd := pipe.ZCard(ctx, key)
	oldestCmd := pipe.ZRangeWithScores(ctx, key, 0, 0)
	pipe.PExpire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, "", &apperrors.StoreError{Op: "ratelimit take", Err: err}
	}

	oldest := now
	if entries := oldestCmd.Val(); len(entries) > 0 {
		oldest = time.Unix(0, int64(entries[0].Score)).UTC()
	}

	return int(cardCmd.Val()), oldest, member, nil
}

// ReleaseSlot removes a previously taken slot. Called when the take pushed
// the count over quota, so rejected requests do not consume the window.
func (s *Store) ReleaseSlot(ctx context.Context, key, member string) error {
	if s == nil || s.client == nil {
		return errors.New("store is not initialized")
	}
	if err := s.client.ZRem(ctx, key, member).Err(); err != nil {
		return &apperrors.StoreError{Op: "ratelimit release", Err: err}
	}
	return nil
}
