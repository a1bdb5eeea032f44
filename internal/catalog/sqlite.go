// internal/catalog/sqlite.go
//
// SQLite-backed Store implementation.
// Responsibilities:
//   - Row lookup, prefix search, and pool listing over the pokemon table.
//   - Per-filter pool caching: the catalog is append-only during normal
//     operation, so the ordered id list for each mode filter is computed
//     once and reused until Reload is called.
//
// The gen filter is expanded into a literal IN (...) clause rather than a
// bound parameter list; values come from the static mode registry, never
// from user input.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
)

// SQLStore serves catalog reads from a SQL database.
type SQLStore struct {
	db *sql.DB

	mu    sync.RWMutex     // guards pools
	pools map[string][]int // ordered id lists keyed by poolKey
}

// NewSQLStore constructs a SQLStore over an opened database handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, pools: make(map[string][]int)}
}

// Reload drops all cached pools. Call after seeding or catalog updates.
func (s *SQLStore) Reload() {
	s.mu.Lock()
	s.pools = make(map[string][]int)
	s.mu.Unlock()
}

// ByID retrieves one entity or ErrNotFound.
func (s *SQLStore) ByID(ctx context.Context, id int) (*Entity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, gen, height_dm, weight_hg, types, habitat, color, evolution_stage
		FROM pokemon WHERE id = ?`, id)
	e, err := scanEntity(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Search returns a page of entities by case-insensitive name prefix.
func (s *SQLStore) Search(ctx context.Context, prefix string, gens []int, offset, limit int) ([]Entity, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	q := `SELECT id, name, gen, height_dm, weight_hg, types, habitat, color, evolution_stage
	      FROM pokemon WHERE name LIKE ? ESCAPE '\'` + genClause(gens) + `
	      ORDER BY id LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, q, escapeLike(prefix)+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entity{}
	for rows.Next() {
		e, err := scanEntity(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// PoolIDs returns the ordered id pool for a gen filter, cached per filter.
func (s *SQLStore) PoolIDs(ctx context.Context, gens []int) ([]int, error) {
	key := poolKey(gens)

	s.mu.RLock()
	if ids, ok := s.pools[key]; ok {
		s.mu.RUnlock()
		return ids, nil
	}
	s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM pokemon`+whereGens(gens)+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pools[key] = ids
	s.mu.Unlock()
	return ids, nil
}

// scanEntity maps one pokemon row into an Entity.
// habitat/color columns may be NULL; they surface as "unknown".
func scanEntity(scan func(...any) error) (*Entity, error) {
	var e Entity
	var types string
	var habitat, color sql.NullString
	if err := scan(&e.ID, &e.Name, &e.Gen, &e.HeightDm, &e.WeightHg, &types, &habitat, &color, &e.EvolutionStage); err != nil {
		return nil, err
	}
	e.Types = decodeTypes(types)
	e.Habitat = orUnknown(habitat)
	e.Color = orUnknown(color)
	return &e, nil
}

func orUnknown(v sql.NullString) string {
	if v.Valid && v.String != "" {
		return v.String
	}
	return "unknown"
}

// genClause renders "AND gen IN (...)" for a non-empty filter.
func genClause(gens []int) string {
	if len(gens) == 0 {
		return ""
	}
	return " AND gen IN (" + inList(gens) + ")"
}

// whereGens renders " WHERE gen IN (...)" for a non-empty filter.
func whereGens(gens []int) string {
	if len(gens) == 0 {
		return ""
	}
	return " WHERE gen IN (" + inList(gens) + ")"
}

func inList(gens []int) string {
	parts := make([]string, len(gens))
	for i, g := range gens {
		parts[i] = fmt.Sprintf("%d", g)
	}
	return strings.Join(parts, ",")
}

// escapeLike escapes LIKE wildcards so the prefix is matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
