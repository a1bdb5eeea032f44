// internal/daily/daily.go
//
// Deterministic daily target selection.
// Responsibilities:
//   - DayKey: the calendar-day string for one game cycle, in a fixed zone.
//   - SelectTarget: pure (secret, dayKey, modeID, pool) → entity id.
//
// The target is never stored. Every request re-derives it from the same
// seed, so all players share one target per (day, mode) without the secret
// or the answer ever being persisted or sent to a client.
//
// Determinism: the seed string is `secret + ":" + dayKey + "|" + modeID`,
// hashed with 32-bit FNV-1a and reduced modulo the pool size. The pool is
// sorted by ascending id before indexing, so selection depends only on
// pool membership, never on the caller's ordering. If pool membership
// changes mid-day the target may change with it; the selector is stateless
// by design and does not cache.

package daily

import (
	"errors"
	"hash/fnv"
	"sort"
	"time"
)

// ErrEmptyPool is returned when a mode's filter matches no entities.
// This is a configuration error; it must never silently widen to the
// full catalog.
var ErrEmptyPool = errors.New("daily: selection pool is empty")

// DayKey returns YYYY-MM-DD for t in loc. A nil loc means UTC.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

// SeedString builds the canonical selector seed for a (day, mode) pair.
// The modeID suffix gives each mode an independent target on the same day.
func SeedString(secret, dayKey, modeID string) string {
	return secret + ":" + dayKey + "|" + modeID
}

// SelectTarget picks the daily target id from pool.
// Pure function: the same inputs always yield the same id, across
// processes and restarts.
func SelectTarget(secret, dayKey, modeID string, pool []int) (int, error) {
	if len(pool) == 0 {
		return 0, ErrEmptyPool
	}

	sorted := make([]int, len(pool))
	copy(sorted, pool)
	sort.Ints(sorted)

	h := fnv.New32a()
	_, _ = h.Write([]byte(SeedString(secret, dayKey, modeID)))
	idx := int(h.Sum32() % uint32(len(sorted)))
	return sorted[idx], nil
}
