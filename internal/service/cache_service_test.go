package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService_TTL(t *testing.T) {
	cs := NewCacheService()
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	cs.now = func() time.Time { return now }

	cs.Set("k", 1, time.Minute)
	v, ok := cs.Get("k")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = cs.Get("k")
	assert.False(t, ok)

	cs.cleanup()
	assert.Empty(t, cs.cache)
}

func TestCacheService_InvalidateByPrefix(t *testing.T) {
	cs := NewCacheService()
	cs.Set(ProfessionalsCacheKey(), "all", time.Minute)
	cs.Set(ProfessionalCacheKey(7), "one", time.Minute)
	cs.Set("other", "keep", time.Minute)

	cs.InvalidateProfessionals()

	_, ok := cs.Get(ProfessionalCacheKey(7))
	assert.False(t, ok)
	_, ok = cs.Get("other")
	assert.True(t, ok)
}

func TestCacheService_GetOrSet(t *testing.T) {
	cs := NewCacheService()
	ctx := context.Background()
	calls := 0

	fn := func() (interface{}, error) {
		calls++
		return "value", nil
	}
	for i := 0; i < 3; i++ {
		v, err := cs.GetOrSet(ctx, "key", time.Minute, fn)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, calls)

	_, err := cs.GetOrSet(ctx, "bad", time.Minute, func() (interface{}, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)
	_, ok := cs.Get("bad")
	assert.False(t, ok)
}

func TestCacheService_RunStopsOnCancel(t *testing.T) {
	cs := NewCacheService()
	cs.interval = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		cs.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run не завершился после отмены контекста")
	}
}
