// assets/embed.go
//
// Embedded default catalog. Lets the server run with no database
// configured (development, tests): a small but representative slice of
// the dex covering gens 1–3, both single- and dual-type entries, every
// evolution stage, and "rare"/"unknown"-ish attribute values.
//
// Production deployments point DB_PATH at a fully seeded database and
// never touch this file.

package assets

import (
	"embed"
	"encoding/json"

	"github.com/pokedleplus/go-server/internal/catalog"
)

//go:embed pokedex.json
var fs embed.FS

// DefaultCatalog decodes the embedded catalog.
func DefaultCatalog() ([]catalog.Entity, error) {
	data, err := fs.ReadFile("pokedex.json")
	if err != nil {
		return nil, err
	}
	var entities []catalog.Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}
