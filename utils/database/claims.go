package database

import (
	"fmt"
	"ritual-war/model"
	"time"

	"github.com/jmoiron/sqlx"
)

// AddClaim inserts a claim record.
func AddClaim(q sqlx.Ext, claim model.Claim) error {
	query := `INSERT INTO claims (guild_id, author_id, target_id, type, created_at, expires_at)
			  VALUES (:guild_id, :author_id, :target_id, :type, :created_at, :expires_at)`
	if _, err := sqlx.NamedExec(q, query, claim); err != nil {
		return fmt.Errorf("failed to insert %s claim by %s in guild %s: %w", claim.Type, claim.AuthorID, claim.GuildID, err)
	}
	return nil
}

// ClaimsFor retrieves the unexpired claims of one type on a target.
func ClaimsFor(q sqlx.Queryer, guildID, targetID, claimType string, now time.Time) ([]model.Claim, error) {
	var claims []model.Claim
	err := sqlx.Select(q, &claims,
		`SELECT * FROM claims WHERE guild_id = ? AND target_id = ? AND type = ? AND expires_at > ?
		 ORDER BY created_at ASC`,
		guildID, targetID, claimType, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to get %s claims on %s in guild %s: %w", claimType, targetID, guildID, err)
	}
	return claims, nil
}

// RemoveClaim deletes the author's claim matching target and type, returning
// the number of rows removed.
func RemoveClaim(q sqlx.Ext, guildID, authorID, targetID, claimType string) (int64, error) {
	result, err := q.Exec(`DELETE FROM claims WHERE guild_id = ? AND author_id = ? AND target_id = ? AND type = ?`,
		guildID, authorID, targetID, claimType)
	if err != nil {
		return 0, fmt.Errorf("failed to remove %s claim by %s in guild %s: %w", claimType, authorID, guildID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed claims: %w", err)
	}
	return n, nil
}

// SweepExpiredClaims deletes claims whose TTL has passed, across all guilds.
// Idempotent.
func SweepExpiredClaims(q sqlx.Ext, now time.Time) (int64, error) {
	result, err := q.Exec(`DELETE FROM claims WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired claims: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count swept claims: %w", err)
	}
	return n, nil
}

// ClearClaimsForPlayer removes every claim a player authored or is targeted
// by. Used when a player leaves.
func ClearClaimsForPlayer(q sqlx.Ext, guildID, userID string) error {
	_, err := q.Exec(`DELETE FROM claims WHERE guild_id = ? AND (author_id = ? OR target_id = ?)`,
		guildID, userID, userID)
	if err != nil {
		return fmt.Errorf("failed to clear claims for %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

// ClearClaimsForGuild removes every claim of a guild. Used by resets.
func ClearClaimsForGuild(q sqlx.Ext, guildID string) error {
	if _, err := q.Exec(`DELETE FROM claims WHERE guild_id = ?`, guildID); err != nil {
		return fmt.Errorf("failed to clear claims for guild %s: %w", guildID, err)
	}
	return nil
}
