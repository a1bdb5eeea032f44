// internal/ratelimit/ratelimit.go
//
// Sliding-window rate limiting behind an injectable counter store.
//
// The policy (Limiter) is separated from storage (Counter) so the same
// window math works over an in-memory map on a single instance and over a
// shared Redis key space when the deployment scales across stateless
// instances. Per-process counters under-enforce the limit in that setup,
// which is why the counter is an interface and not a package global.

package ratelimit

import (
	"context"
	"time"
)

// Default policy: 30 requests per minute per client identity.
const (
	DefaultLimit  = 30
	DefaultWindow = time.Minute
)

// Counter increments and reports a windowed request count for a key.
type Counter interface {
	// Increment bumps the counter for key within the current window and
	// returns the new count plus the moment the window resets.
	Increment(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns the whole seconds until the window resets, for the
// Retry-After response header. Never less than 1 for a denied request.
func (d Decision) RetryAfter(now time.Time) int {
	secs := int(d.ResetAt.Sub(now)/time.Second) + 1
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Limiter applies a fixed limit/window policy over a Counter.
type Limiter struct {
	counter  Counter
	fallback Counter // used when the primary counter errors
	limit    int
	window   time.Duration
}

// NewLimiter constructs a Limiter. A nil counter gets a memory counter;
// zero limit/window get the defaults.
func NewLimiter(counter Counter, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	mem := NewMemoryCounter()
	if counter == nil {
		counter = mem
	}
	return &Limiter{counter: counter, fallback: mem, limit: limit, window: window}
}

// Check counts one request for key and decides whether it is allowed.
// If the primary counter fails (e.g. Redis unreachable) the check falls
// back to the in-process counter rather than refusing traffic.
func (l *Limiter) Check(ctx context.Context, key string) Decision {
	count, resetAt, err := l.counter.Increment(ctx, key, l.window)
	if err != nil {
		count, resetAt, _ = l.fallback.Increment(ctx, key, l.window)
	}

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
