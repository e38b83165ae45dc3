package database

import (
	"fmt"
	"ritual-war/model"
	"time"

	"github.com/jmoiron/sqlx"
)

// AddSignature inserts a signature. The primary key (guild, caster, day)
// makes a second insert for the same caster and day fail, which backs up the
// one-action-per-day check.
func AddSignature(q sqlx.Ext, sig model.Signature) error {
	query := `INSERT INTO signatures (guild_id, caster_id, target_id, type, day, created_at, expires_at)
			  VALUES (:guild_id, :caster_id, :target_id, :type, :day, :created_at, :expires_at)`
	if _, err := sqlx.NamedExec(q, query, sig); err != nil {
		return fmt.Errorf("failed to insert %s signature by %s in guild %s: %w", sig.Type, sig.CasterID, sig.GuildID, err)
	}
	return nil
}

// ActiveSignaturesFor retrieves the unexpired signatures of one spell type
// targeting a player on a given game-day, oldest first. This is the stacking
// input.
func ActiveSignaturesFor(q sqlx.Queryer, guildID, targetID, sigType string, day int64, now time.Time) ([]model.Signature, error) {
	var sigs []model.Signature
	err := sqlx.Select(q, &sigs,
		`SELECT * FROM signatures WHERE guild_id = ? AND target_id = ? AND type = ? AND day = ? AND expires_at > ?
		 ORDER BY created_at ASC`,
		guildID, targetID, sigType, day, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to get %s signatures on %s in guild %s: %w", sigType, targetID, guildID, err)
	}
	return sigs, nil
}

// TrainSignaturesFor retrieves all unexpired signatures of one spell type on
// a target regardless of day, for inspection views.
func TrainSignaturesFor(q sqlx.Queryer, guildID, targetID, sigType string, now time.Time) ([]model.Signature, error) {
	var sigs []model.Signature
	err := sqlx.Select(q, &sigs,
		`SELECT * FROM signatures WHERE guild_id = ? AND target_id = ? AND type = ? AND expires_at > ?
		 ORDER BY created_at ASC`,
		guildID, targetID, sigType, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to get %s train on %s in guild %s: %w", sigType, targetID, guildID, err)
	}
	return sigs, nil
}

// SweepExpiredSignatures deletes signatures whose TTL has passed, across all
// guilds. Idempotent.
func SweepExpiredSignatures(q sqlx.Ext, now time.Time) (int64, error) {
	result, err := q.Exec(`DELETE FROM signatures WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired signatures: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count swept signatures: %w", err)
	}
	return n, nil
}

// ClearSignaturesForPlayer removes every signature a player cast or carries.
// Used when a player leaves.
func ClearSignaturesForPlayer(q sqlx.Ext, guildID, userID string) error {
	_, err := q.Exec(`DELETE FROM signatures WHERE guild_id = ? AND (caster_id = ? OR target_id = ?)`,
		guildID, userID, userID)
	if err != nil {
		return fmt.Errorf("failed to clear signatures for %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

// ClearSignaturesForGuild removes every signature of a guild. Used by resets.
func ClearSignaturesForGuild(q sqlx.Ext, guildID string) error {
	if _, err := q.Exec(`DELETE FROM signatures WHERE guild_id = ?`, guildID); err != nil {
		return fmt.Errorf("failed to clear signatures for guild %s: %w", guildID, err)
	}
	return nil
}
