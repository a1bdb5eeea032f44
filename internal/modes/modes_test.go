// internal/modes/modes_test.go

package modes

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClassic(t *testing.T) {
	m := Resolve("classic")
	assert.Equal(t, "classic", m.ID)
	assert.Nil(t, m.Gens)
}

func TestResolveGenModes(t *testing.T) {
	for g := 1; g <= 9; g++ {
		id := fmt.Sprintf("gen%d", g)
		m := Resolve(id)
		assert.Equal(t, id, m.ID)
		assert.Equal(t, []int{g}, m.Gens)
	}
}

func TestResolveFallsBackToClassic(t *testing.T) {
	for _, in := range []string{"", "bogus", "gen10", "gen0", "CLASSIC2"} {
		m := Resolve(in)
		assert.Equal(t, Resolve("classic"), m, "input %q", in)
	}
}

func TestResolveNormalizesInput(t *testing.T) {
	assert.Equal(t, "gen3", Resolve(" GEN3 ").ID)
	assert.Equal(t, "classic", Resolve("Classic").ID)
}

func TestAllIsStableAndComplete(t *testing.T) {
	all := All()
	assert.Len(t, all, 10)
	assert.Equal(t, "classic", all[0].ID)
	assert.Equal(t, "gen9", all[9].ID)
}
