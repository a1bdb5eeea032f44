// internal/ratelimit/ratelimit_test.go

package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCounterWindow(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCounter()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	n, resetAt, err := c.Increment(ctx, "ip-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, now.Add(time.Minute), resetAt)

	n, _, err = c.Increment(ctx, "ip-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Separate keys count independently.
	n, _, err = c.Increment(ctx, "ip-2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Past the window the count restarts.
	now = now.Add(time.Minute + time.Second)
	n, resetAt, err = c.Increment(ctx, "ip-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, now.Add(time.Minute), resetAt)
}

func TestLimiterAllowsThenDenies(t *testing.T) {
	l := NewLimiter(NewMemoryCounter(), 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d := l.Check(ctx, "ip-1")
		assert.True(t, d.Allowed, "request %d", i+1)
		assert.Equal(t, 3, d.Limit)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d := l.Check(ctx, "ip-1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.GreaterOrEqual(t, d.RetryAfter(time.Now()), 1)
}

func TestLimiterDefaults(t *testing.T) {
	l := NewLimiter(nil, 0, 0)
	assert.Equal(t, DefaultLimit, l.limit)
	assert.Equal(t, DefaultWindow, l.window)

	d := l.Check(context.Background(), "ip-1")
	assert.True(t, d.Allowed)
	assert.Equal(t, DefaultLimit-1, d.Remaining)
}

// failingCounter simulates an unreachable shared store.
type failingCounter struct{}

func (failingCounter) Increment(context.Context, string, time.Duration) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("connection refused")
}

func TestLimiterFallsBackWhenCounterFails(t *testing.T) {
	l := NewLimiter(failingCounter{}, 2, time.Minute)
	ctx := context.Background()

	// The in-process fallback still enforces the limit.
	assert.True(t, l.Check(ctx, "ip-1").Allowed)
	assert.True(t, l.Check(ctx, "ip-1").Allowed)
	assert.False(t, l.Check(ctx, "ip-1").Allowed)
}

func TestDecisionRetryAfterFloor(t *testing.T) {
	d := Decision{ResetAt: time.Now().Add(-time.Second)}
	assert.Equal(t, 1, d.RetryAfter(time.Now()))
}
