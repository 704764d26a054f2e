package geolocators

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func newFakeLimiter(maxCalls int, window time.Duration) (*WindowLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2023, time.October, 10, 10, 0, 0, 0, time.UTC)}
	limiter := NewWindowLimiter(maxCalls, window)
	limiter.now = clock.Now
	limiter.sleep = clock.Sleep
	return limiter, clock
}

func TestWindowLimiter_BlocksAfterMaxCalls(t *testing.T) {
	t.Parallel()

	limiter, clock := newFakeLimiter(3, 2*time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx))
		clock.now = clock.now.Add(100 * time.Millisecond)
	}
	assert.Empty(t, clock.sleeps)

	require.NoError(t, limiter.Wait(ctx))
	assert.Equal(t, []time.Duration{1700 * time.Millisecond}, clock.sleeps)
}

func TestWindowLimiter_AtMostMaxCallsPerWindow(t *testing.T) {
	t.Parallel()

	limiter, clock := newFakeLimiter(3, 2*time.Second)
	ctx := context.Background()

	var calls []time.Time
	for i := 0; i < 10; i++ {
		require.NoError(t, limiter.Wait(ctx))
		calls = append(calls, clock.now)
	}

	for i := 3; i < len(calls); i++ {
		assert.GreaterOrEqual(t, calls[i].Sub(calls[i-3]), 2*time.Second, "call %d", i)
	}
}

func TestWindowLimiter_RefillsAfterIdleWindow(t *testing.T) {
	t.Parallel()

	limiter, clock := newFakeLimiter(3, 2*time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}
	clock.now = clock.now.Add(2 * time.Second)

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}
	assert.Empty(t, clock.sleeps)
}

func TestWindowLimiter_ContextCancelled(t *testing.T) {
	t.Parallel()

	limiter, _ := newFakeLimiter(1, 2*time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, limiter.Wait(ctx))
	cancel()
	assert.ErrorIs(t, limiter.Wait(ctx), context.Canceled)
}

func TestWindowLimiter_Defaults(t *testing.T) {
	t.Parallel()

	limiter := NewWindowLimiter(0, 0)
	assert.Equal(t, DefaultMaxCalls, limiter.maxCalls)
	assert.Equal(t, DefaultWindow, limiter.window)
}

func TestSleepContext(t *testing.T) {
	t.Parallel()

	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
