// internal/game/compare.go
//
// Comparison engine: scores one guessed entity against the daily target.
// Responsibilities:
//   - Categorical columns (habitat, color): strict equality, no partial
//     credit. Two "unknown" values compare as correct.
//   - Ordinal columns (gen, evolution, height, weight): ternary
//     equal/higher/lower, not a distance metric.
//   - Type slots: slot-sensitive but cross-slot-aware (a type in the
//     wrong slot scores "present").
//
// Compare is a pure function over already-resolved entities. Resolving a
// guess id is the caller's job; a missing guess must surface as a lookup
// error before Compare runs, never as a scored miss.

package game

import "github.com/pokedleplus/go-server/internal/catalog"

// Compare scores guess against target across every displayed column.
func Compare(target, guess *catalog.Entity) Comparison {
	return Comparison{
		ID:        guess.ID,
		Name:      guess.Name,
		Sprite:    catalog.SpriteURL(guess.ID),
		IsCorrect: guess.ID == target.ID,
		Columns: Columns{
			Type1:     compareTypeSlot(0, guess, target),
			Type2:     compareTypeSlot(1, guess, target),
			Gen:       compareOrdinal(guess.Gen, target.Gen),
			Habitat:   compareCategorical(guess.Habitat, target.Habitat),
			Color:     compareCategorical(guess.Color, target.Color),
			Evolution: compareOrdinal(guess.EvolutionStage, target.EvolutionStage),
			Height:    compareOrdinal(guess.HeightDm, target.HeightDm),
			Weight:    compareOrdinal(guess.WeightHg, target.WeightHg),
		},
	}
}

// compareCategorical scores plain equality columns.
func compareCategorical(guess, target string) Verdict {
	if guess == target {
		return VerdictCorrect
	}
	return VerdictAbsent
}

// compareOrdinal scores numeric columns as a ternary comparison.
func compareOrdinal(guess, target int) Verdict {
	switch {
	case guess == target:
		return VerdictCorrect
	case guess > target:
		return VerdictHigher
	default:
		return VerdictLower
	}
}

// compareTypeSlot scores one type slot position.
//
// An empty guess slot is correct only against an empty target slot.
// A filled guess slot scores correct on an exact slot match, present when
// the label exists anywhere in the target's types, absent otherwise.
func compareTypeSlot(p int, guess, target *catalog.Entity) Verdict {
	g := guess.TypeAt(p)
	t := target.TypeAt(p)

	if g == "" {
		if t == "" {
			return VerdictCorrect
		}
		return VerdictAbsent
	}
	if g == t {
		return VerdictCorrect
	}
	if target.HasType(g) {
		return VerdictPresent
	}
	return VerdictAbsent
}
