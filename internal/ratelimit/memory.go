// internal/ratelimit/memory.go
//
// In-memory Counter implementation.
// Correct for a single instance and as a degraded fallback when the
// shared counter store is unreachable; counts are per-process, so a
// multi-instance deployment must use the Redis counter as primary.

package ratelimit

import (
	"context"
	"sync"
	"time"
)

// cleanupThreshold bounds map growth: once the map holds this many keys,
// expired windows are swept on the next increment.
const cleanupThreshold = 1000

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// MemoryCounter is a mutex-guarded windowed counter map.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time // injectable clock for tests
}

// NewMemoryCounter constructs an empty MemoryCounter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{entries: make(map[string]*memoryEntry), now: time.Now}
}

// Increment bumps the windowed count for key.
func (m *MemoryCounter) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if len(m.entries) >= cleanupThreshold {
		for k, e := range m.entries {
			if !now.Before(e.resetAt) {
				delete(m.entries, k)
			}
		}
	}

	e, ok := m.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &memoryEntry{count: 0, resetAt: now.Add(window)}
		m.entries[key] = e
	}
	e.count++
	return e.count, e.resetAt, nil
}
