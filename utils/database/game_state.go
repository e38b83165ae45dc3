package database

import (
	"database/sql"
	"errors"
	"fmt"
	"ritual-war/model"

	"github.com/jmoiron/sqlx"
)

// GetGameState retrieves a guild's game state, or nil if none exists yet.
func GetGameState(q sqlx.Queryer, guildID string) (*model.GameState, error) {
	var state model.GameState
	err := sqlx.Get(q, &state, `SELECT * FROM game_state WHERE guild_id = ?`, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game state for guild %s: %w", guildID, err)
	}
	return &state, nil
}

// InsertGameState creates a guild's game state row.
func InsertGameState(q sqlx.Ext, state model.GameState) error {
	query := `INSERT INTO game_state (guild_id, channel_id, day, boundary_day, status, winner_id, roster_locked, warm_reminder_day, cool_reminder_day)
			  VALUES (:guild_id, :channel_id, :day, :boundary_day, :status, :winner_id, :roster_locked, :warm_reminder_day, :cool_reminder_day)`
	if _, err := sqlx.NamedExec(q, query, state); err != nil {
		return fmt.Errorf("failed to insert game state for guild %s: %w", state.GuildID, err)
	}
	return nil
}

// UpdateGameState writes back every mutable column of a game state row.
func UpdateGameState(q sqlx.Ext, state model.GameState) error {
	query := `UPDATE game_state SET channel_id = :channel_id, day = :day, boundary_day = :boundary_day,
			  status = :status, winner_id = :winner_id, roster_locked = :roster_locked,
			  warm_reminder_day = :warm_reminder_day, cool_reminder_day = :cool_reminder_day
			  WHERE guild_id = :guild_id`
	if _, err := sqlx.NamedExec(q, query, state); err != nil {
		return fmt.Errorf("failed to update game state for guild %s: %w", state.GuildID, err)
	}
	return nil
}

// ListGameStates retrieves every guild's game state, for the scheduler loop.
func ListGameStates(q sqlx.Queryer) ([]model.GameState, error) {
	var states []model.GameState
	if err := sqlx.Select(q, &states, `SELECT * FROM game_state`); err != nil {
		return nil, fmt.Errorf("failed to list game states: %w", err)
	}
	return states, nil
}
