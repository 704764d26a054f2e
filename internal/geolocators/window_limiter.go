package geolocators

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMaxCalls = 3
	DefaultWindow   = 2 * time.Second
)

// WindowLimiter allows at most maxCalls per window. The token count refills when a window
// has elapsed since the window started; a caller finding no token blocks until then.
// One limiter is shared by every caller of the same API.
type WindowLimiter struct {
	mu          sync.Mutex
	maxCalls    int
	window      time.Duration
	tokens      int
	windowStart time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewWindowLimiter(maxCalls int, window time.Duration) *WindowLimiter {
	if maxCalls <= 0 {
		maxCalls = DefaultMaxCalls
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &WindowLimiter{
		maxCalls: maxCalls,
		window:   window,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait takes one token, blocking until the window resets when none is left.
// Callers are served one at a time.
func (l *WindowLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
		l.tokens = l.maxCalls
		l.windowStart = now
	}

	if l.tokens == 0 {
		if err := l.sleep(ctx, l.window-now.Sub(l.windowStart)); err != nil {
			return err
		}
		l.tokens = l.maxCalls
		l.windowStart = l.now()
	}

	l.tokens--
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
