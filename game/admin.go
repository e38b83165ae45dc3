package game

import (
	"fmt"
	"ritual-war/model"
	"ritual-war/utils/database"
	"time"
)

// SetChannel records the guild's public announcement channel.
func (e *Engine) SetChannel(guildID, channelID string, now time.Time) error {
	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := e.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin setchannel transaction: %w", err)
	}
	defer tx.Rollback()

	state, err := e.ensureState(tx, guildID, now)
	if err != nil {
		return err
	}
	state.ChannelID = channelID
	if err := database.UpdateGameState(tx, *state); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit setchannel: %w", err)
	}
	return nil
}

// ResetGame clears every entity of the guild and restarts at day 0, status
// active. The configured channel survives the reset.
func (e *Engine) ResetGame(guildID string, now time.Time) error {
	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := e.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback()

	state, err := e.ensureState(tx, guildID, now)
	if err != nil {
		return err
	}

	if err := database.DeletePlayersForGuild(tx, guildID); err != nil {
		return err
	}
	if err := database.ClearSignaturesForGuild(tx, guildID); err != nil {
		return err
	}
	if err := database.ClearClaimsForGuild(tx, guildID); err != nil {
		return err
	}

	state.Day = 0
	state.BoundaryDay = e.clock.Day(now)
	state.Status = model.StatusActive
	state.WinnerID = ""
	state.RosterLocked = 0
	state.WarmReminderDay = -1
	state.CoolReminderDay = -1
	if err := database.UpdateGameState(tx, *state); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

// ForceWinner concludes the game with the given winner, bypassing the normal
// elimination path.
func (e *Engine) ForceWinner(guildID, winnerID string, now time.Time) error {
	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := e.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin force-winner transaction: %w", err)
	}
	defer tx.Rollback()

	state, err := e.ensureState(tx, guildID, now)
	if err != nil {
		return err
	}
	state.Status = model.StatusConcluded
	state.WinnerID = winnerID
	if err := database.UpdateGameState(tx, *state); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit force-winner: %w", err)
	}
	return nil
}

// AdvanceDay bumps the game-day counter immediately without waiting for the
// calendar boundary, and returns the new day.
func (e *Engine) AdvanceDay(guildID string, now time.Time) (int64, error) {
	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := e.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin advance-day transaction: %w", err)
	}
	defer tx.Rollback()

	state, err := e.ensureState(tx, guildID, now)
	if err != nil {
		return 0, err
	}
	state.Day++
	if err := database.UpdateGameState(tx, *state); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit advance-day: %w", err)
	}
	return state.Day, nil
}
