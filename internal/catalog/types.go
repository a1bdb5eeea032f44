// internal/catalog/types.go
//
// Core type definitions for the Pokémon catalog.
// Defines:
//   - Entity: one immutable catalog record (the unit of guessing).
//   - ErrNotFound: sentinel for missing catalog ids.

package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup id has no catalog row.
var ErrNotFound = errors.New("catalog: entity not found")

// Entity is a single catalog record. Records are immutable once loaded;
// callers must not mutate returned entities.
//
// Types carries the slot-ordered type labels (type1, type2). Length is
// 0–2, labels are unique, and a missing slot is represented by absence,
// never by a "none" label.
type Entity struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Gen            int      `json:"gen"`
	HeightDm       int      `json:"height_dm"`
	WeightHg       int      `json:"weight_hg"`
	Types          []string `json:"types"`
	Habitat        string   `json:"habitat"`
	Color          string   `json:"color"`
	EvolutionStage int      `json:"evolution_stage"`
}

// SpriteURL returns the public sprite image URL for an entity id.
func SpriteURL(id int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", id)
}

// TypeAt returns the type label in slot p ("" when the slot is empty).
func (e *Entity) TypeAt(p int) string {
	if p < 0 || p >= len(e.Types) {
		return ""
	}
	return e.Types[p]
}

// HasType reports whether label appears in any type slot.
func (e *Entity) HasType(label string) bool {
	for _, t := range e.Types {
		if t == label {
			return true
		}
	}
	return false
}

// InGens reports whether the entity's generation is in gens.
// A nil or empty filter matches everything.
func (e *Entity) InGens(gens []int) bool {
	if len(gens) == 0 {
		return true
	}
	for _, g := range gens {
		if e.Gen == g {
			return true
		}
	}
	return false
}
