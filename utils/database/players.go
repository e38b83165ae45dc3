package database

import (
	"database/sql"
	"errors"
	"fmt"
	"ritual-war/model"

	"github.com/jmoiron/sqlx"
)

// CreatePlayer inserts a new player row.
func CreatePlayer(q sqlx.Ext, player model.Player) error {
	query := `INSERT INTO players (user_id, guild_id, joined_at, doom, veil_until, last_action_day, active)
			  VALUES (:user_id, :guild_id, :joined_at, :doom, :veil_until, :last_action_day, :active)`
	if _, err := sqlx.NamedExec(q, query, player); err != nil {
		return fmt.Errorf("failed to insert player %s in guild %s: %w", player.UserID, player.GuildID, err)
	}
	return nil
}

// GetPlayer retrieves a single player, or nil if none exists.
func GetPlayer(q sqlx.Queryer, guildID, userID string) (*model.Player, error) {
	var player model.Player
	err := sqlx.Get(q, &player, `SELECT * FROM players WHERE guild_id = ? AND user_id = ?`, guildID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s in guild %s: %w", userID, guildID, err)
	}
	return &player, nil
}

// UpdatePlayer writes back every mutable column of a player row.
func UpdatePlayer(q sqlx.Ext, player model.Player) error {
	query := `UPDATE players SET joined_at = :joined_at, doom = :doom, veil_until = :veil_until,
			  last_action_day = :last_action_day, active = :active
			  WHERE user_id = :user_id AND guild_id = :guild_id`
	if _, err := sqlx.NamedExec(q, query, player); err != nil {
		return fmt.Errorf("failed to update player %s in guild %s: %w", player.UserID, player.GuildID, err)
	}
	return nil
}

// GetActivePlayers retrieves the alive roster of a guild.
func GetActivePlayers(q sqlx.Queryer, guildID string) ([]model.Player, error) {
	var players []model.Player
	err := sqlx.Select(q, &players, `SELECT * FROM players WHERE guild_id = ? AND active = 1`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active players for guild %s: %w", guildID, err)
	}
	return players, nil
}

// GetPlayersByDoom retrieves every player of a guild ordered by doom
// descending, join time ascending as the tie-break.
func GetPlayersByDoom(q sqlx.Queryer, guildID string) ([]model.Player, error) {
	var players []model.Player
	err := sqlx.Select(q, &players,
		`SELECT * FROM players WHERE guild_id = ? ORDER BY doom DESC, joined_at ASC`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for guild %s: %w", guildID, err)
	}
	return players, nil
}

// CountPlayers returns the total number of player rows across all guilds.
func CountPlayers(q sqlx.Queryer, onlyActive bool) (int, error) {
	query := `SELECT COUNT(*) FROM players`
	if onlyActive {
		query += ` WHERE active = 1`
	}
	var count int
	if err := sqlx.Get(q, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// DeletePlayersForGuild removes every player of a guild. Used by game resets.
func DeletePlayersForGuild(q sqlx.Ext, guildID string) error {
	if _, err := q.Exec(`DELETE FROM players WHERE guild_id = ?`, guildID); err != nil {
		return fmt.Errorf("failed to delete players for guild %s: %w", guildID, err)
	}
	return nil
}
