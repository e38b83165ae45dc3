package game

import (
	"ritual-war/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimTrainLifecycle(t *testing.T) {
	e := testEngine(t, fixedConfig())
	now := gameDay(t)
	join(t, e, "g", now, "alice", "bob", "carol")

	// No train yet.
	assert.ErrorIs(t, e.ClaimTrain("g", "bob", "carol", model.SpellHex, now), ErrNoActiveTrain)

	_, err := e.CastSpell("g", "alice", model.SpellHex, "carol", now)
	require.NoError(t, err)

	// One signature supports exactly one claim.
	require.NoError(t, e.ClaimTrain("g", "bob", "carol", model.SpellHex, now))
	assert.ErrorIs(t, e.ClaimTrain("g", "bob", "carol", model.SpellHex, now), ErrAlreadyClaimed)
	assert.ErrorIs(t, e.ClaimTrain("g", "alice", "carol", model.SpellHex, now), ErrTrainFull)

	// The mend train on the same target is independent and empty.
	assert.ErrorIs(t, e.ClaimTrain("g", "bob", "carol", model.SpellMend, now), ErrNoActiveTrain)

	require.NoError(t, e.UnclaimTrain("g", "bob", "carol", model.SpellHex))
	assert.ErrorIs(t, e.UnclaimTrain("g", "bob", "carol", model.SpellHex), ErrNoSuchClaim)

	// The freed slot can be taken again.
	assert.NoError(t, e.ClaimTrain("g", "alice", "carol", model.SpellHex, now))
}

func TestClaimValidation(t *testing.T) {
	e := testEngine(t, fixedConfig())
	now := gameDay(t)
	join(t, e, "g", now, "alice", "bob")

	assert.ErrorIs(t, e.ClaimTrain("g", "alice", "bob", model.SpellShield, now), ErrInvalidTarget)
	assert.ErrorIs(t, e.ClaimTrain("g", "ghost", "bob", model.SpellHex, now), ErrNotInGame)
	assert.ErrorIs(t, e.ClaimTrain("g", "alice", "ghost", model.SpellHex, now), ErrTargetNotInGame)
	assert.ErrorIs(t, e.UnclaimTrain("g", "alice", "bob", model.SpellShield), ErrInvalidTarget)
}

func TestClaimExpiresWithTrain(t *testing.T) {
	e := testEngine(t, fixedConfig())
	now := gameDay(t)
	join(t, e, "g", now, "alice", "bob", "carol")

	_, err := e.CastSpell("g", "alice", model.SpellHex, "carol", now)
	require.NoError(t, err)
	require.NoError(t, e.ClaimTrain("g", "bob", "carol", model.SpellHex, now))

	// Past the signature TTL both the train and its claim are gone.
	later := now.Add(25 * time.Hour)
	sigs, claims, err := e.SweepExpired(later)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sigs)
	assert.Equal(t, int64(1), claims)

	// The sweep is idempotent.
	sigs, claims, err = e.SweepExpired(later)
	require.NoError(t, err)
	assert.Zero(t, sigs)
	assert.Zero(t, claims)

	assert.ErrorIs(t, e.UnclaimTrain("g", "bob", "carol", model.SpellHex), ErrNoSuchClaim)
}
