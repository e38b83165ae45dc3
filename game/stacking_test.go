package game

import (
	"fmt"
	"ritual-war/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawAmountRangeAndDeterminism(t *testing.T) {
	for i := 0; i < 50; i++ {
		caster := fmt.Sprintf("caster-%d", i)
		first := drawAmount("g", caster, "target", 3, 2, 4)
		second := drawAmount("g", caster, "target", 3, 2, 4)
		assert.Equal(t, first, second, "draw must be deterministic")
		assert.GreaterOrEqual(t, first, 2)
		assert.LessOrEqual(t, first, 4)
	}
}

func TestDrawAmountFixedRange(t *testing.T) {
	assert.Equal(t, 3, drawAmount("g", "caster", "target", 0, 3, 3))
}

func TestStackTotalMonotonicInCasterCount(t *testing.T) {
	sigs := []model.Signature{}
	previous := 0
	for i := 0; i < 6; i++ {
		sigs = append(sigs, model.Signature{
			GuildID:  "g",
			CasterID: fmt.Sprintf("caster-%d", i),
			TargetID: "target",
			Day:      5,
		})
		total := stackTotal(sigs, 2, 4)
		assert.Greater(t, total, previous, "each added caster must grow the stack")
		previous = total
	}
}

func TestMitigateFloorsHalfDamage(t *testing.T) {
	assert.Equal(t, 1, mitigate(3, 0.5))
	assert.Equal(t, 2, mitigate(4, 0.5))
	assert.Equal(t, 0, mitigate(1, 0.5))
	assert.Equal(t, 0, mitigate(0, 0.5))
}
