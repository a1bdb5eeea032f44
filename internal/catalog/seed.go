// internal/catalog/seed.go
//
// Seeds the pokemon table from a fixed entity slice when it is empty.
// Re-running is a no-op: if any rows exist the seed is skipped, so an
// operator-managed catalog is never overwritten by the embedded default.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedIfEmpty inserts entities into an empty pokemon table.
// Returns the number of rows inserted (0 when the table already has data).
func SeedIfEmpty(ctx context.Context, db *sql.DB, entities []Entity) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pokemon`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pokemon: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pokemon (id, name, gen, height_dm, weight_hg, types, habitat, color, evolution_stage)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, e := range entities {
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Name, e.Gen, e.HeightDm, e.WeightHg,
			encodeTypes(e.Types), e.Habitat, e.Color, e.EvolutionStage,
		); err != nil {
			return 0, fmt.Errorf("seed id %d: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entities), nil
}
