package model

import (
	"database/sql"
	"time"
)

// Player represents one mage in a guild's ritual war. The database table is
// named 'players' and is keyed by (user_id, guild_id).
type Player struct {
	UserID        string        `db:"user_id"`
	GuildID       string        `db:"guild_id"`
	JoinedAt      int64         `db:"joined_at"` // Unix timestamp, preserved across re-joins for leaderboard tie-breaks
	Doom          int           `db:"doom"`
	VeilUntil     sql.NullInt64 `db:"veil_until"`      // Unix timestamp; veil is active while in the future
	LastActionDay sql.NullInt64 `db:"last_action_day"` // game-day counter value of the last successful cast
	Active        int           `db:"active"`          // 1 = alive and in the roster, 0 = eliminated or left
}

// VeilActive reports whether the player's veil mitigates incoming hex damage
// at the given instant.
func (p *Player) VeilActive(now time.Time) bool {
	return p.VeilUntil.Valid && p.VeilUntil.Int64 > now.Unix()
}

// ActedOn reports whether the player has already spent their action on the
// given game-day.
func (p *Player) ActedOn(day int64) bool {
	return p.LastActionDay.Valid && p.LastActionDay.Int64 == day
}
