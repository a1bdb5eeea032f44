// internal/modes/modes.go
//
// Mode registry: maps a mode id to its catalog filter.
// Modes are statically defined and never mutated: "classic" (no filter)
// plus one mode per generation restricting the pool to that gen.
//
// Resolve is total. Any unrecognized or empty id falls back to classic —
// a permissive default, deliberately not an error, so stale or mistyped
// client mode strings still produce a playable game.

package modes

import "strings"

// Default is the mode used when no (or an unknown) mode id is given.
const Default = "classic"

// Mode names a catalog filter. Gens == nil means the entire catalog.
type Mode struct {
	ID   string `json:"id"`
	Gens []int  `json:"gens"`
}

// registry holds the fixed mode table in display order.
var registry = []Mode{
	{ID: "classic", Gens: nil},
	{ID: "gen1", Gens: []int{1}},
	{ID: "gen2", Gens: []int{2}},
	{ID: "gen3", Gens: []int{3}},
	{ID: "gen4", Gens: []int{4}},
	{ID: "gen5", Gens: []int{5}},
	{ID: "gen6", Gens: []int{6}},
	{ID: "gen7", Gens: []int{7}},
	{ID: "gen8", Gens: []int{8}},
	{ID: "gen9", Gens: []int{9}},
}

// Resolve returns the mode for id, falling back to classic.
func Resolve(id string) Mode {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, m := range registry {
		if m.ID == id {
			return m
		}
	}
	return registry[0]
}

// All returns the registry in stable display order.
// The returned slice must not be modified.
func All() []Mode {
	return registry
}
