package game

import (
	"database/sql"
	"fmt"
	"ritual-war/model"
	"ritual-war/utils/database"
	"time"
)

// Join adds a user to the guild's roster, or reactivates a previously
// eliminated or departed player with a clean slate. Joins are rejected once
// the roster has locked.
func (e *Engine) Join(guildID, userID string, now time.Time) error {
	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := e.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin join transaction: %w", err)
	}
	defer tx.Rollback()

	state, err := e.ensureState(tx, guildID, now)
	if err != nil {
		return err
	}

	player, err := database.GetPlayer(tx, guildID, userID)
	if err != nil {
		return err
	}
	if player != nil && player.Active == 1 {
		return ErrAlreadyJoined
	}
	if state.RosterLocked == 1 {
		return ErrRosterLocked
	}

	if player != nil {
		player.Doom = 0
		player.VeilUntil = sql.NullInt64{}
		player.LastActionDay = sql.NullInt64{}
		player.Active = 1
		if err := database.UpdatePlayer(tx, *player); err != nil {
			return err
		}
	} else {
		err := database.CreatePlayer(tx, model.Player{
			UserID:   userID,
			GuildID:  guildID,
			JoinedAt: now.Unix(),
			Doom:     0,
			Active:   1,
		})
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit join: %w", err)
	}
	return nil
}

// Leave removes a player from the roster and clears every signature and
// claim involving them. A departed player can neither act nor be targeted.
func (e *Engine) Leave(guildID, userID string, now time.Time) error {
	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := e.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin leave transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := e.ensureState(tx, guildID, now); err != nil {
		return err
	}

	player, err := database.GetPlayer(tx, guildID, userID)
	if err != nil {
		return err
	}
	if player == nil || player.Active == 0 {
		return ErrNotInGame
	}

	player.Active = 0
	if err := database.UpdatePlayer(tx, *player); err != nil {
		return err
	}
	if err := database.ClearSignaturesForPlayer(tx, guildID, userID); err != nil {
		return err
	}
	if err := database.ClearClaimsForPlayer(tx, guildID, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit leave: %w", err)
	}
	return nil
}

// Inspect returns the public status of a player: doom, alive, veil and the
// trains currently on them.
func (e *Engine) Inspect(guildID, targetID string, now time.Time) (*model.PlayerStatus, error) {
	player, err := database.GetPlayer(e.db, guildID, targetID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrNotInGame
	}

	status := &model.PlayerStatus{
		UserID: player.UserID,
		Doom:   player.Doom,
		Alive:  player.Active == 1,
	}
	if player.VeilActive(now) {
		status.VeilHoursLeft = time.Unix(player.VeilUntil.Int64, 0).Sub(now).Hours()
	}

	status.HexTrain, err = e.trainStatus(e.db, guildID, targetID, model.SpellHex, now)
	if err != nil {
		return nil, err
	}
	status.MendTrain, err = e.trainStatus(e.db, guildID, targetID, model.SpellMend, now)
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Leaderboard returns every player of the guild sorted by doom descending,
// earlier joiners first on ties.
func (e *Engine) Leaderboard(guildID string) ([]model.Player, error) {
	return database.GetPlayersByDoom(e.db, guildID)
}
