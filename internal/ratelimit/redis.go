// internal/ratelimit/redis.go
//
// Redis-backed Counter implementation: the shared counter store for
// deployments running more than one stateless server instance.
//
// Each key is a plain INCR counter with a TTL equal to the window; the
// TTL is set only when the increment creates the key, so the window
// boundary is fixed by the first request in it.

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter counts requests in a shared Redis instance.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter constructs a counter over an address like "host:6379".
func NewRedisCounter(addr string) *RedisCounter {
	return &RedisCounter{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// NewRedisCounterFromClient wraps an existing client (tests, custom opts).
func NewRedisCounterFromClient(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func redisKey(key string) string {
	return "ratelimit:" + key
}

// Increment bumps the shared counter for key within the current window.
func (r *RedisCounter) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	k := redisKey(key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit: redis incr: %w", err)
	}

	count := int(incr.Val())
	remaining := ttl.Val()
	if remaining < 0 {
		// First request in the window (or a counter left without TTL):
		// start the window now.
		remaining = window
		if err := r.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("ratelimit: redis expire: %w", err)
		}
	}
	return count, time.Now().Add(remaining), nil
}
