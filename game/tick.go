package game

import (
	"fmt"
	"ritual-war/model"
	"ritual-war/utils/database"
	"time"
)

// ListStates returns every guild the engine has seen, for the scheduler loop.
func (e *Engine) ListStates() ([]model.GameState, error) {
	return database.ListGameStates(e.db)
}

// SweepExpired deletes signatures and claims past their TTL across all
// guilds. Idempotent; stale rows stop contributing to reads either way, the
// sweep only reclaims them.
func (e *Engine) SweepExpired(now time.Time) (sigs, claims int64, err error) {
	sigs, err = database.SweepExpiredSignatures(e.db, now)
	if err != nil {
		return 0, 0, err
	}
	claims, err = database.SweepExpiredClaims(e.db, now)
	if err != nil {
		return 0, 0, err
	}
	return sigs, claims, nil
}

// DailyTick runs one guild's scheduled step: advance the day counter at the
// calendar boundary and decide whether a Warm or Cooling reminder is due.
// Reminders fire at most once per guild per period per day and only list
// alive players who have not yet spent today's action. The caller delivers
// the notification; delivery failure just means the same laggards show up in
// tomorrow's reminder.
func (e *Engine) DailyTick(guildID string, now time.Time) (*model.TickReport, error) {
	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := e.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin tick transaction: %w", err)
	}
	defer tx.Rollback()

	before, err := database.GetGameState(tx, guildID)
	if err != nil {
		return nil, err
	}
	state, err := e.ensureState(tx, guildID, now)
	if err != nil {
		return nil, err
	}

	report := &model.TickReport{
		GuildID:     guildID,
		DayAdvanced: before != nil && state.Day > before.Day,
		Day:         state.Day,
		Period:      e.clock.Period(now),
		ChannelID:   state.ChannelID,
	}

	if state.Concluded() {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit tick: %w", err)
		}
		return report, nil
	}

	reminderDay := (*int64)(nil)
	switch report.Period {
	case PeriodWarm:
		if state.WarmReminderDay < state.Day {
			reminderDay = &state.WarmReminderDay
		}
	case PeriodCooling:
		if state.CoolReminderDay < state.Day {
			reminderDay = &state.CoolReminderDay
		}
	}

	if reminderDay != nil {
		roster, err := database.GetActivePlayers(tx, guildID)
		if err != nil {
			return nil, err
		}
		for _, player := range roster {
			if !player.ActedOn(state.Day) {
				report.Laggards = append(report.Laggards, player)
			}
		}
		report.RemindDue = len(report.Laggards) > 0

		// Mark the period handled even when nobody is lagging, so the
		// roster is not rescanned every minute for the rest of it.
		*reminderDay = state.Day
		if err := database.UpdateGameState(tx, *state); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tick: %w", err)
	}
	return report, nil
}
