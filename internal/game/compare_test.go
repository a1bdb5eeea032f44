// internal/game/compare_test.go

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pokedleplus/go-server/internal/catalog"
)

func entity(id int, types ...string) *catalog.Entity {
	return &catalog.Entity{
		ID:             id,
		Name:           "fixture",
		Gen:            3,
		HeightDm:       10,
		WeightHg:       100,
		Types:          types,
		Habitat:        "forest",
		Color:          "green",
		EvolutionStage: 2,
	}
}

func TestCompareSelfIsAllCorrect(t *testing.T) {
	e := entity(25, "electric")
	cmp := Compare(e, e)

	assert.True(t, cmp.IsCorrect)
	assert.Equal(t, Columns{
		Type1:     VerdictCorrect,
		Type2:     VerdictCorrect,
		Gen:       VerdictCorrect,
		Habitat:   VerdictCorrect,
		Color:     VerdictCorrect,
		Evolution: VerdictCorrect,
		Height:    VerdictCorrect,
		Weight:    VerdictCorrect,
	}, cmp.Columns)
}

func TestIsCorrectFollowsIDOnly(t *testing.T) {
	target := entity(1, "grass", "poison")
	guess := entity(2, "grass", "poison") // every attribute equal, id differs

	cmp := Compare(target, guess)
	assert.False(t, cmp.IsCorrect)
	assert.Equal(t, VerdictCorrect, cmp.Columns.Gen)
	assert.Equal(t, VerdictCorrect, cmp.Columns.Type1)
}

func TestCompareOrdinalColumns(t *testing.T) {
	target := entity(1)
	target.Gen = 3

	high := entity(2)
	high.Gen = 5
	assert.Equal(t, VerdictHigher, Compare(target, high).Columns.Gen)

	low := entity(3)
	low.Gen = 1
	assert.Equal(t, VerdictLower, Compare(target, low).Columns.Gen)

	same := entity(4)
	same.Gen = 3
	assert.Equal(t, VerdictCorrect, Compare(target, same).Columns.Gen)
}

func TestCompareOrdinalIsTernaryNotDistance(t *testing.T) {
	target := entity(1)
	target.WeightHg = 100

	near := entity(2)
	near.WeightHg = 101
	far := entity(3)
	far.WeightHg = 9000

	// Same verdict regardless of how far above the target the guess is.
	assert.Equal(t, VerdictHigher, Compare(target, near).Columns.Weight)
	assert.Equal(t, VerdictHigher, Compare(target, far).Columns.Weight)
}

func TestCompareCategoricalColumns(t *testing.T) {
	target := entity(1)
	guess := entity(2)
	guess.Habitat = "cave"
	guess.Color = "green"

	cmp := Compare(target, guess)
	assert.Equal(t, VerdictAbsent, cmp.Columns.Habitat)
	assert.Equal(t, VerdictCorrect, cmp.Columns.Color)
}

func TestCompareUnknownEqualsUnknown(t *testing.T) {
	target := entity(1)
	target.Habitat = "unknown"
	guess := entity(2)
	guess.Habitat = "unknown"

	assert.Equal(t, VerdictCorrect, Compare(target, guess).Columns.Habitat)
}

func TestCompareTypeSlots(t *testing.T) {
	tests := []struct {
		name        string
		target      []string
		guess       []string
		type1, type2 Verdict
	}{
		{
			name:   "swapped dual types are present in both slots",
			target: []string{"grass", "poison"},
			guess:  []string{"poison", "grass"},
			type1:  VerdictPresent,
			type2:  VerdictPresent,
		},
		{
			name:   "extra second type on a mono-type target",
			target: []string{"fire"},
			guess:  []string{"fire", "flying"},
			type1:  VerdictCorrect,
			type2:  VerdictAbsent,
		},
		{
			name:   "missing second type against a dual-type target",
			target: []string{"fire", "flying"},
			guess:  []string{"fire"},
			type1:  VerdictCorrect,
			type2:  VerdictAbsent,
		},
		{
			name:   "both typeless",
			target: nil,
			guess:  nil,
			type1:  VerdictCorrect,
			type2:  VerdictCorrect,
		},
		{
			name:   "exact dual match",
			target: []string{"ghost", "poison"},
			guess:  []string{"ghost", "poison"},
			type1:  VerdictCorrect,
			type2:  VerdictCorrect,
		},
		{
			name:   "first type in target's second slot",
			target: []string{"rock", "ground"},
			guess:  []string{"ground"},
			type1:  VerdictPresent,
			type2:  VerdictAbsent,
		},
		{
			name:   "no overlap at all",
			target: []string{"water"},
			guess:  []string{"fire", "flying"},
			type1:  VerdictAbsent,
			type2:  VerdictAbsent,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmp := Compare(entity(1, tc.target...), entity(2, tc.guess...))
			assert.Equal(t, tc.type1, cmp.Columns.Type1, "type1")
			assert.Equal(t, tc.type2, cmp.Columns.Type2, "type2")
		})
	}
}

func TestCompareCarriesGuessIdentity(t *testing.T) {
	target := entity(1)
	guess := entity(150)
	guess.Name = "mewtwo"

	cmp := Compare(target, guess)
	assert.Equal(t, 150, cmp.ID)
	assert.Equal(t, "mewtwo", cmp.Name)
	assert.Contains(t, cmp.Sprite, "/150.png")
}
