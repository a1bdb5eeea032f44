// internal/catalog/store.go
//
// Read-only catalog access interface.
// Implementations may be backed by SQLite (sqlite.go) or memory (memory.go).
// The catalog is treated as append-only/immutable during normal operation,
// so implementations cache aggressively (notably the per-mode id pools).

package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
)

// DefaultPageSize is the fixed page size for name searches.
const DefaultPageSize = 50

// Store is the read-only view of the catalog the game core needs.
type Store interface {
	// ByID retrieves one entity. Returns ErrNotFound if the id is absent.
	ByID(ctx context.Context, id int) (*Entity, error)

	// Search returns entities whose name starts with prefix
	// (case-insensitive), restricted to gens (nil = all), ordered by
	// ascending id, skipping offset rows and returning at most limit.
	Search(ctx context.Context, prefix string, gens []int, offset, limit int) ([]Entity, error)

	// PoolIDs returns the ascending-ordered ids of all entities matching
	// the gen filter (nil = entire catalog).
	PoolIDs(ctx context.Context, gens []int) ([]int, error)
}

// poolKey builds a stable cache key for a gen filter.
// The key must not depend on the caller's slice order.
func poolKey(gens []int) string {
	if len(gens) == 0 {
		return "*"
	}
	sorted := make([]int, len(gens))
	copy(sorted, gens)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, g := range sorted {
		parts[i] = strconv.Itoa(g)
	}
	return strings.Join(parts, ",")
}
