package model

// Game status values.
const (
	StatusActive    = "active"
	StatusConcluded = "concluded"
)

// GameState is the per-guild game record. The table is named 'game_state'.
// WinnerID stays empty on a draw (zero survivors) even though the game is
// concluded.
type GameState struct {
	GuildID         string `db:"guild_id"`
	ChannelID       string `db:"channel_id"` // public announcement channel, empty until configured
	Day             int64  `db:"day"`        // game-day counter, starts at 0
	BoundaryDay     int64  `db:"boundary_day"`
	Status          string `db:"status"`
	WinnerID        string `db:"winner_id"`
	RosterLocked    int    `db:"roster_locked"` // set on the first elimination; blocks new joins
	WarmReminderDay int64  `db:"warm_reminder_day"`
	CoolReminderDay int64  `db:"cool_reminder_day"`
}

func (g *GameState) Concluded() bool {
	return g.Status == StatusConcluded
}
