package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_BurstThenReject(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(1, 2, time.Minute)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _, err := m.Allow(ctx, "a")
		require.NoError(t, err)
		require.True(t, ok, "request %d within burst", i)
	}
	ok, retry, err := m.Allow(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, retry, time.Duration(0))
	assert.LessOrEqual(t, retry, time.Second)

	ok, _, _ = m.Allow(ctx, "b")
	assert.True(t, ok, "keys have separate buckets")

	now = now.Add(time.Second)
	ok, _, _ = m.Allow(ctx, "a")
	assert.True(t, ok, "token refilled after one second")
}

func TestMemory_EvictsIdleBuckets(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(1, 1, time.Minute)
	m.now = func() time.Time { return now }

	_, _, _ = m.Allow(context.Background(), "a")
	now = now.Add(2 * time.Minute)
	_, _, _ = m.Allow(context.Background(), "b")

	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.buckets["a"]
	assert.False(t, ok)
	assert.Len(t, m.buckets, 1)
}

func TestUnlimited(t *testing.T) {
	t.Parallel()

	ok, _, err := Unlimited{}.Allow(context.Background(), "x")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestHashIP(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HashIP("10.0.0.1"), HashIP("10.0.0.1"))
	assert.NotEqual(t, HashIP("10.0.0.1"), HashIP("10.0.0.2"))
	assert.Len(t, HashIP("10.0.0.1"), 64)
}
