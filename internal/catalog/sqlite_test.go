// internal/catalog/sqlite_test.go

package catalog

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE pokemon (
			id              INTEGER PRIMARY KEY,
			name            TEXT NOT NULL UNIQUE,
			gen             INTEGER NOT NULL,
			height_dm       INTEGER NOT NULL DEFAULT 0,
			weight_hg       INTEGER NOT NULL DEFAULT 0,
			types           TEXT NOT NULL DEFAULT '[]',
			habitat         TEXT,
			color           TEXT,
			evolution_stage INTEGER NOT NULL DEFAULT 1
		)`)
	require.NoError(t, err)
	return db
}

func TestSQLStoreSeedAndLookup(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	n, err := SeedIfEmpty(ctx, db, fixtureEntities())
	require.NoError(t, err)
	assert.Equal(t, len(fixtureEntities()), n)

	// Reseeding is a no-op.
	n, err = SeedIfEmpty(ctx, db, fixtureEntities())
	require.NoError(t, err)
	assert.Zero(t, n)

	st := NewSQLStore(db)

	e, err := st.ByID(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, "charizard", e.Name)
	assert.Equal(t, []string{"fire", "flying"}, e.Types)

	_, err = st.ByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStoreNullAttributesAreUnknown(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO pokemon (id, name, gen, types) VALUES (722, 'rowlet', 7, '["grass","flying"]')`)
	require.NoError(t, err)

	e, err := NewSQLStore(db).ByID(ctx, 722)
	require.NoError(t, err)
	assert.Equal(t, "unknown", e.Habitat)
	assert.Equal(t, "unknown", e.Color)
}

func TestSQLStoreSearch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	_, err := SeedIfEmpty(ctx, db, fixtureEntities())
	require.NoError(t, err)
	st := NewSQLStore(db)

	rows, err := st.Search(ctx, "char", nil, 0, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 4, rows[0].ID)
	assert.Equal(t, 5, rows[1].ID)

	rows, err = st.Search(ctx, "char", nil, 2, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 6, rows[0].ID)

	// LIKE wildcards in the query are matched literally.
	rows, err = st.Search(ctx, "%", nil, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = st.Search(ctx, "tre", []int{3}, 0, 50)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "treecko", rows[0].Name)
}

func TestSQLStorePoolCaching(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	_, err := SeedIfEmpty(ctx, db, fixtureEntities())
	require.NoError(t, err)
	st := NewSQLStore(db)

	pool, err := st.PoolIDs(ctx, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, pool)

	// A row added behind the cache is invisible until Reload.
	_, err = db.Exec(`INSERT INTO pokemon (id, name, gen) VALUES (151, 'mew', 1)`)
	require.NoError(t, err)

	pool, err = st.PoolIDs(ctx, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, pool)

	st.Reload()
	pool, err = st.PoolIDs(ctx, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6, 151}, pool)
}
