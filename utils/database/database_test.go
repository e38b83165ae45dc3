package database

import (
	"database/sql"
	"ritual-war/model"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPlayerRoundTrip(t *testing.T) {
	db := testDB(t)

	player, err := GetPlayer(db, "g", "alice")
	require.NoError(t, err)
	assert.Nil(t, player, "missing player yields nil, not an error")

	require.NoError(t, CreatePlayer(db, model.Player{
		UserID:   "alice",
		GuildID:  "g",
		JoinedAt: 1000,
		Doom:     0,
		Active:   1,
	}))

	player, err = GetPlayer(db, "g", "alice")
	require.NoError(t, err)
	require.NotNil(t, player)
	assert.Equal(t, 0, player.Doom)
	assert.False(t, player.VeilUntil.Valid)
	assert.False(t, player.LastActionDay.Valid)

	player.Doom = 7
	player.VeilUntil = sql.NullInt64{Int64: 2000, Valid: true}
	player.LastActionDay = sql.NullInt64{Int64: 3, Valid: true}
	player.Active = 0
	require.NoError(t, UpdatePlayer(db, *player))

	player, err = GetPlayer(db, "g", "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, player.Doom)
	assert.Equal(t, int64(2000), player.VeilUntil.Int64)
	assert.Equal(t, int64(3), player.LastActionDay.Int64)
	assert.Equal(t, 0, player.Active)
}

func TestDuplicatePlayerRejected(t *testing.T) {
	db := testDB(t)
	player := model.Player{UserID: "alice", GuildID: "g", JoinedAt: 1, Active: 1}
	require.NoError(t, CreatePlayer(db, player))
	assert.Error(t, CreatePlayer(db, player))

	// Same user in another guild is a separate row.
	player.GuildID = "other"
	assert.NoError(t, CreatePlayer(db, player))
}

func TestLeaderboardOrderAndCounts(t *testing.T) {
	db := testDB(t)
	for _, p := range []model.Player{
		{UserID: "low", GuildID: "g", JoinedAt: 3, Doom: 1, Active: 1},
		{UserID: "high", GuildID: "g", JoinedAt: 2, Doom: 9, Active: 0},
		{UserID: "tied-late", GuildID: "g", JoinedAt: 5, Doom: 1, Active: 1},
		{UserID: "elsewhere", GuildID: "g2", JoinedAt: 1, Doom: 99, Active: 1},
	} {
		require.NoError(t, CreatePlayer(db, p))
	}

	players, err := GetPlayersByDoom(db, "g")
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "high", players[0].UserID)
	assert.Equal(t, "low", players[1].UserID)
	assert.Equal(t, "tied-late", players[2].UserID)

	active, err := GetActivePlayers(db, "g")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	total, err := CountPlayers(db, false)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	alive, err := CountPlayers(db, true)
	require.NoError(t, err)
	assert.Equal(t, 3, alive)

	require.NoError(t, DeletePlayersForGuild(db, "g"))
	players, err = GetPlayersByDoom(db, "g")
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestSignatureDayKeyAndQueries(t *testing.T) {
	db := testDB(t)
	now := time.Unix(100_000, 0)
	expiry := now.Add(24 * time.Hour).Unix()

	sig := model.Signature{
		GuildID: "g", CasterID: "alice", TargetID: "bob",
		Type: "hex", Day: 0, CreatedAt: now.Unix(), ExpiresAt: expiry,
	}
	require.NoError(t, AddSignature(db, sig))

	// Same caster, same day: the primary key rejects a second action.
	sig.TargetID = "carol"
	assert.Error(t, AddSignature(db, sig))

	// Next day is fine.
	sig.Day = 1
	require.NoError(t, AddSignature(db, sig))

	onBob, err := ActiveSignaturesFor(db, "g", "bob", "hex", 0, now)
	require.NoError(t, err)
	assert.Len(t, onBob, 1)

	// Day filter excludes yesterday's signature from stacking.
	onBob, err = ActiveSignaturesFor(db, "g", "bob", "hex", 1, now)
	require.NoError(t, err)
	assert.Empty(t, onBob)

	// The train view spans days while the signature lives.
	train, err := TrainSignaturesFor(db, "g", "bob", "hex", now)
	require.NoError(t, err)
	assert.Len(t, train, 1)

	train, err = TrainSignaturesFor(db, "g", "bob", "hex", time.Unix(expiry, 0))
	require.NoError(t, err)
	assert.Empty(t, train, "expired signatures drop out of reads before any sweep")
}

func TestSignatureTypeConstraint(t *testing.T) {
	db := testDB(t)
	err := AddSignature(db, model.Signature{
		GuildID: "g", CasterID: "alice", TargetID: "bob",
		Type: "curse", Day: 0, CreatedAt: 1, ExpiresAt: 2,
	})
	assert.Error(t, err)
}

func TestSweepAndClearSignatures(t *testing.T) {
	db := testDB(t)
	now := time.Unix(100_000, 0)
	add := func(caster, target string, day int64, expiresAt int64) {
		t.Helper()
		require.NoError(t, AddSignature(db, model.Signature{
			GuildID: "g", CasterID: caster, TargetID: target,
			Type: "hex", Day: day, CreatedAt: now.Unix(), ExpiresAt: expiresAt,
		}))
	}
	fresh := now.Add(24 * time.Hour).Unix()
	add("alice", "bob", 0, now.Unix())
	add("bob", "carol", 0, fresh)
	add("carol", "bob", 0, fresh)

	swept, err := SweepExpiredSignatures(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)
	swept, err = SweepExpiredSignatures(db, now)
	require.NoError(t, err)
	assert.Zero(t, swept)

	// Clearing a player removes signatures they cast and carry.
	require.NoError(t, ClearSignaturesForPlayer(db, "g", "bob"))
	train, err := TrainSignaturesFor(db, "g", "carol", "hex", now)
	require.NoError(t, err)
	assert.Empty(t, train)
}

func TestClaimRoundTrip(t *testing.T) {
	db := testDB(t)
	now := time.Unix(100_000, 0)
	expiry := now.Add(24 * time.Hour).Unix()

	claim := model.Claim{
		GuildID: "g", AuthorID: "alice", TargetID: "bob",
		Type: "hex", CreatedAt: now.Unix(), ExpiresAt: expiry,
	}
	require.NoError(t, AddClaim(db, claim))
	assert.Error(t, AddClaim(db, claim), "one claim per author per train")

	claims, err := ClaimsFor(db, "g", "bob", "hex", now)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "alice", claims[0].AuthorID)

	removed, err := RemoveClaim(db, "g", "alice", "bob", "hex")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	removed, err = RemoveClaim(db, "g", "alice", "bob", "hex")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSweepExpiredClaims(t *testing.T) {
	db := testDB(t)
	now := time.Unix(100_000, 0)
	require.NoError(t, AddClaim(db, model.Claim{
		GuildID: "g", AuthorID: "alice", TargetID: "bob",
		Type: "hex", CreatedAt: now.Unix(), ExpiresAt: now.Unix(),
	}))

	swept, err := SweepExpiredClaims(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	claims, err := ClaimsFor(db, "g", "bob", "hex", now)
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestGameStateRoundTrip(t *testing.T) {
	db := testDB(t)

	state, err := GetGameState(db, "g")
	require.NoError(t, err)
	assert.Nil(t, state)

	require.NoError(t, InsertGameState(db, model.GameState{
		GuildID:         "g",
		Day:             0,
		BoundaryDay:     20_000,
		Status:          model.StatusActive,
		WarmReminderDay: -1,
		CoolReminderDay: -1,
	}))

	state, err = GetGameState(db, "g")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.False(t, state.Concluded())

	state.Day = 3
	state.Status = model.StatusConcluded
	state.WinnerID = "alice"
	state.RosterLocked = 1
	require.NoError(t, UpdateGameState(db, *state))

	state, err = GetGameState(db, "g")
	require.NoError(t, err)
	assert.True(t, state.Concluded())
	assert.Equal(t, "alice", state.WinnerID)
	assert.Equal(t, int64(3), state.Day)

	require.NoError(t, InsertGameState(db, model.GameState{GuildID: "g2", WarmReminderDay: -1, CoolReminderDay: -1}))
	states, err := ListGameStates(db)
	require.NoError(t, err)
	assert.Len(t, states, 2)
}
