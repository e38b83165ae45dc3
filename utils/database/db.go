package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init initializes the database and ensures all necessary tables are created.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS players (
		        user_id TEXT NOT NULL,
		        guild_id TEXT NOT NULL,
		        joined_at INTEGER NOT NULL,
		        doom INTEGER NOT NULL DEFAULT 0,
		        veil_until INTEGER,
		        last_action_day INTEGER,
		        active INTEGER NOT NULL DEFAULT 1,
		        PRIMARY KEY(user_id, guild_id)
		    );`,
		`CREATE TABLE IF NOT EXISTS signatures (
		        guild_id TEXT NOT NULL,
		        caster_id TEXT NOT NULL,
		        target_id TEXT NOT NULL,
		        type TEXT NOT NULL CHECK(type IN ('hex','shield','mend')),
		        day INTEGER NOT NULL,
		        created_at INTEGER NOT NULL,
		        expires_at INTEGER NOT NULL,
		        PRIMARY KEY(guild_id, caster_id, day)
		    );`,
		`CREATE INDEX IF NOT EXISTS idx_signatures_target
		        ON signatures(guild_id, target_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS claims (
		        guild_id TEXT NOT NULL,
		        author_id TEXT NOT NULL,
		        target_id TEXT NOT NULL,
		        type TEXT NOT NULL CHECK(type IN ('hex','mend')),
		        created_at INTEGER NOT NULL,
		        expires_at INTEGER NOT NULL,
		        PRIMARY KEY(guild_id, author_id, target_id, type)
		    );`,
		`CREATE INDEX IF NOT EXISTS idx_claims_target
		        ON claims(guild_id, target_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS game_state (
		        guild_id TEXT NOT NULL PRIMARY KEY,
		        channel_id TEXT NOT NULL DEFAULT '',
		        day INTEGER NOT NULL DEFAULT 0,
		        boundary_day INTEGER NOT NULL DEFAULT 0,
		        status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active','concluded')),
		        winner_id TEXT NOT NULL DEFAULT '',
		        roster_locked INTEGER NOT NULL DEFAULT 0,
		        warm_reminder_day INTEGER NOT NULL DEFAULT -1,
		        cool_reminder_day INTEGER NOT NULL DEFAULT -1
		    );`,
	}

	for _, schema := range schemas {
		if _, err := db.Exec(schema); err != nil {
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return db, nil
}
