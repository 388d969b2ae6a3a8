package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/internal/core"
)

type memoryCacheStore struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	sets    int
}

func (m *memoryCacheStore) GetCache(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *memoryCacheStore) SetCache(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = value
	return nil
}

type payload struct {
	Value string `json:"value"`
}

func TestResolveMissThenHit(t *testing.T) {
	store := &memoryCacheStore{}
	orch := &Orchestrator{Cache: store, TTL: time.Hour}
	computes := 0
	compute := func(context.Context) (*payload, error) {
		computes++
		return &payload{Value: "fresh"}, nil
	}

	result, state, err := Resolve(context.Background(), orch, "k", compute)
	require.NoError(t, err)
	require.Equal(t, core.CacheMiss, state)
	require.Equal(t, "fresh", result.Value)
	require.Equal(t, 1, computes)

	result, state, err = Resolve(context.Background(), orch, "k", compute)
	require.NoError(t, err)
	require.Equal(t, core.CacheHit, state)
	require.Equal(t, "fresh", result.Value)
	require.Equal(t, 1, computes, "hit must not call the provider")
}

func TestResolveComputeFailureNotCached(t *testing.T) {
	store := &memoryCacheStore{}
	orch := &Orchestrator{Cache: store, TTL: time.Hour}

	_, _, err := Resolve(context.Background(), orch, "k", func(context.Context) (*payload, error) {
		return nil, errors.New("upstream broke")
	})

	require.Error(t, err)
	require.Zero(t, store.sets, "failed computes must not be written")
	require.Empty(t, store.entries)
}

func TestResolveReadFailureDegradesToMiss(t *testing.T) {
	store := &memoryCacheStore{getErr: errors.New("store down")}
	orch := &Orchestrator{Cache: store, TTL: time.Hour}

	result, state, err := Resolve(context.Background(), orch, "k", func(context.Context) (*payload, error) {
		return &payload{Value: "fresh"}, nil
	})

	require.NoError(t, err)
	require.Equal(t, core.CacheMiss, state)
	require.Equal(t, "fresh", result.Value)
}

func TestResolveWriteFailureStillReturnsResult(t *testing.T) {
	store := &memoryCacheStore{setErr: errors.New("store down")}
	orch := &Orchestrator{Cache: store, TTL: time.Hour}

	result, state, err := Resolve(context.Background(), orch, "k", func(context.Context) (*payload, error) {
		return &payload{Value: "fresh"}, nil
	})

	require.NoError(t, err)
	require.Equal(t, core.CacheMiss, state)
	require.Equal(t, "fresh", result.Value)
}

func TestResolveCorruptEntryRecomputes(t *testing.T) {
	store := &memoryCacheStore{entries: map[string][]byte{"k": []byte("{garbage")}}
	orch := &Orchestrator{Cache: store, TTL: time.Hour}

	result, state, err := Resolve(context.Background(), orch, "k", func(context.Context) (*payload, error) {
		return &payload{Value: "fresh"}, nil
	})

	require.NoError(t, err)
	require.Equal(t, core.CacheMiss, state)
	require.Equal(t, "fresh", result.Value)
	require.JSONEq(t, `{"value":"fresh"}`, string(store.entries["k"]))
}
