// internal/catalog/memory.go
//
// In-memory Store implementation.
// Backs the server when no database is configured (entities come from the
// embedded default catalog) and keeps tests free of SQLite.
//
// Characteristics:
//   - Entities are copied in and sorted by id once, at construction.
//   - All reads serve from that sorted slice; no locking is needed after
//     construction because the data never changes.

package catalog

import (
	"context"
	"sort"
	"strings"
)

// memory is a fixed-slice Store implementation.
type memory struct {
	byID    map[int]*Entity
	ordered []Entity // ascending by id
}

// NewMemoryStore constructs a Store over a fixed entity slice.
func NewMemoryStore(entities []Entity) Store {
	m := &memory{
		byID:    make(map[int]*Entity, len(entities)),
		ordered: make([]Entity, len(entities)),
	}
	copy(m.ordered, entities)
	sort.Slice(m.ordered, func(i, j int) bool { return m.ordered[i].ID < m.ordered[j].ID })
	for i := range m.ordered {
		m.byID[m.ordered[i].ID] = &m.ordered[i]
	}
	return m
}

func (m *memory) ByID(ctx context.Context, id int) (*Entity, error) {
	if e, ok := m.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Search(ctx context.Context, prefix string, gens []int, offset, limit int) ([]Entity, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := []Entity{}
	skipped := 0
	for _, e := range m.ordered {
		if !strings.HasPrefix(e.Name, prefix) || !e.InGens(gens) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memory) PoolIDs(ctx context.Context, gens []int) ([]int, error) {
	ids := []int{}
	for _, e := range m.ordered {
		if e.InGens(gens) {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}
