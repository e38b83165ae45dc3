package game

import (
	"database/sql"
	"fmt"
	"ritual-war/model"
	"ritual-war/utils/database"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// Engine is the per-guild ritual resolution engine. It is the sole writer of
// player doom/elimination and of game status/winner. Every operation runs
// under that guild's mutex and inside one sqlite transaction, so concurrent
// casts in the same guild serialize and a failed step leaves no partial
// state. Different guilds never contend.
type Engine struct {
	db    *sqlx.DB
	cfg   model.GameConfig
	clock *Clock
	locks sync.Map // guild_id -> *sync.Mutex
}

func NewEngine(db *sqlx.DB, cfg model.GameConfig) (*Engine, error) {
	clock, err := NewClock(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return &Engine{db: db, cfg: cfg, clock: clock}, nil
}

func (e *Engine) Clock() *Clock {
	return e.clock
}

func (e *Engine) Config() model.GameConfig {
	return e.cfg
}

func (e *Engine) guildLock(guildID string) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(guildID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ensureState loads the guild's game state, creating it on first contact and
// advancing the game-day counter if the calendar day has moved past the last
// recorded boundary. The daily reset is this comparison: nothing per-player
// needs sweeping when a day ticks over.
func (e *Engine) ensureState(tx *sqlx.Tx, guildID string, now time.Time) (*model.GameState, error) {
	state, err := database.GetGameState(tx, guildID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &model.GameState{
			GuildID:         guildID,
			Day:             0,
			BoundaryDay:     e.clock.Day(now),
			Status:          model.StatusActive,
			WarmReminderDay: -1,
			CoolReminderDay: -1,
		}
		if err := database.InsertGameState(tx, *state); err != nil {
			return nil, err
		}
		return state, nil
	}
	if calendarDay := e.clock.Day(now); calendarDay > state.BoundaryDay {
		state.Day += calendarDay - state.BoundaryDay
		state.BoundaryDay = calendarDay
		if err := database.UpdateGameState(tx, *state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// CastSpell resolves one spell action. targetID is ignored for shield (which
// always targets the caster) and required for hex and mend.
func (e *Engine) CastSpell(guildID, casterID, spell, targetID string, now time.Time) (*model.Outcome, error) {
	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := e.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin cast transaction: %w", err)
	}
	defer tx.Rollback()

	state, err := e.ensureState(tx, guildID, now)
	if err != nil {
		return nil, err
	}
	if state.Concluded() {
		return nil, ErrGameConcluded
	}

	caster, err := database.GetPlayer(tx, guildID, casterID)
	if err != nil {
		return nil, err
	}
	if caster == nil || caster.Active == 0 {
		return nil, ErrNotInGame
	}
	if caster.ActedOn(state.Day) {
		return nil, ErrAlreadyActedToday
	}

	var outcome *model.Outcome
	switch spell {
	case model.SpellShield:
		if targetID != "" && targetID != casterID {
			return nil, ErrInvalidTarget
		}
		outcome, err = e.resolveShield(tx, state, caster, now)
	case model.SpellHex, model.SpellMend:
		if targetID == "" || targetID == casterID {
			return nil, ErrInvalidTarget
		}
		var target *model.Player
		target, err = database.GetPlayer(tx, guildID, targetID)
		if err != nil {
			return nil, err
		}
		if target == nil || target.Active == 0 {
			return nil, ErrTargetNotInGame
		}
		if spell == model.SpellHex {
			outcome, err = e.resolveHex(tx, state, caster, target, now)
		} else {
			outcome, err = e.resolveMend(tx, state, caster, target, now)
		}
	default:
		return nil, ErrInvalidTarget
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cast: %w", err)
	}
	return outcome, nil
}

func (e *Engine) resolveShield(tx *sqlx.Tx, state *model.GameState, caster *model.Player, now time.Time) (*model.Outcome, error) {
	oldDoom := caster.Doom
	e.applyShield(caster, state.Day, now)
	if err := database.UpdatePlayer(tx, *caster); err != nil {
		return nil, err
	}
	if err := database.AddSignature(tx, e.newSignature(state, caster.UserID, caster.UserID, model.SpellShield, now)); err != nil {
		return nil, err
	}

	outcome := &model.Outcome{
		Spell:       model.SpellShield,
		CasterID:    caster.UserID,
		TargetID:    caster.UserID,
		DoomDelta:   caster.Doom - oldDoom,
		NewDoom:     caster.Doom,
		TargetAlive: true,
	}
	if err := e.fillTrains(tx, outcome, state.GuildID, caster.UserID, now); err != nil {
		return nil, err
	}
	return outcome, nil
}

func (e *Engine) resolveHex(tx *sqlx.Tx, state *model.GameState, caster, target *model.Player, now time.Time) (*model.Outcome, error) {
	before, err := database.ActiveSignaturesFor(tx, state.GuildID, target.UserID, model.SpellHex, state.Day, now)
	if err != nil {
		return nil, err
	}
	sig := e.newSignature(state, caster.UserID, target.UserID, model.SpellHex, now)
	if err := database.AddSignature(tx, sig); err != nil {
		return nil, err
	}

	// The stack total is recomputed with the new signature and the
	// difference is what this cast applies.
	raw := stackTotal(append(before, sig), e.cfg.HexMin, e.cfg.HexMax) -
		stackTotal(before, e.cfg.HexMin, e.cfg.HexMax)

	outcome := &model.Outcome{
		Spell:    model.SpellHex,
		CasterID: caster.UserID,
		TargetID: target.UserID,
	}

	// Reflex shield: a lethal hex against a target who still holds today's
	// action triggers their shield first, consuming that action.
	if target.Doom+raw >= e.cfg.Threshold && !target.ActedOn(state.Day) {
		e.applyShield(target, state.Day, now)
		if err := database.AddSignature(tx, e.newSignature(state, target.UserID, target.UserID, model.SpellShield, now)); err != nil {
			return nil, err
		}
		outcome.ReflexShield = true
	}

	delta := raw
	if target.VeilActive(now) {
		delta = mitigate(raw, e.cfg.VeilReduction)
		outcome.VeilApplied = true
	}
	target.Doom += delta
	outcome.DoomDelta = delta

	if target.Doom >= e.cfg.Threshold && target.Active == 1 {
		target.Active = 0
		outcome.Eliminated = true
		state.RosterLocked = 1
	}
	outcome.NewDoom = target.Doom
	outcome.TargetAlive = target.Active == 1

	caster.LastActionDay = sql.NullInt64{Int64: state.Day, Valid: true}
	if err := database.UpdatePlayer(tx, *target); err != nil {
		return nil, err
	}
	if err := database.UpdatePlayer(tx, *caster); err != nil {
		return nil, err
	}

	if outcome.Eliminated {
		if err := e.checkVictory(tx, state, outcome); err != nil {
			return nil, err
		}
	}
	if err := database.UpdateGameState(tx, *state); err != nil {
		return nil, err
	}
	if err := e.fillTrains(tx, outcome, state.GuildID, target.UserID, now); err != nil {
		return nil, err
	}
	return outcome, nil
}

func (e *Engine) resolveMend(tx *sqlx.Tx, state *model.GameState, caster, target *model.Player, now time.Time) (*model.Outcome, error) {
	before, err := database.ActiveSignaturesFor(tx, state.GuildID, target.UserID, model.SpellMend, state.Day, now)
	if err != nil {
		return nil, err
	}
	sig := e.newSignature(state, caster.UserID, target.UserID, model.SpellMend, now)
	if err := database.AddSignature(tx, sig); err != nil {
		return nil, err
	}

	raw := stackTotal(append(before, sig), e.cfg.MendMin, e.cfg.MendMax) -
		stackTotal(before, e.cfg.MendMin, e.cfg.MendMax)

	oldDoom := target.Doom
	target.Doom -= raw
	if target.Doom < 0 {
		target.Doom = 0
	}

	caster.LastActionDay = sql.NullInt64{Int64: state.Day, Valid: true}
	if err := database.UpdatePlayer(tx, *target); err != nil {
		return nil, err
	}
	if err := database.UpdatePlayer(tx, *caster); err != nil {
		return nil, err
	}

	outcome := &model.Outcome{
		Spell:       model.SpellMend,
		CasterID:    caster.UserID,
		TargetID:    target.UserID,
		DoomDelta:   target.Doom - oldDoom,
		NewDoom:     target.Doom,
		TargetAlive: true,
	}
	if err := e.fillTrains(tx, outcome, state.GuildID, target.UserID, now); err != nil {
		return nil, err
	}
	return outcome, nil
}

// applyShield performs the shield mutation on a player in memory: cleanse
// doom (floored at zero), raise the veil, spend today's action.
func (e *Engine) applyShield(player *model.Player, day int64, now time.Time) {
	player.Doom -= e.cfg.ShieldCleanse
	if player.Doom < 0 {
		player.Doom = 0
	}
	player.VeilUntil = sql.NullInt64{Int64: now.Add(e.cfg.SignatureTTL()).Unix(), Valid: true}
	player.LastActionDay = sql.NullInt64{Int64: day, Valid: true}
}

func (e *Engine) newSignature(state *model.GameState, casterID, targetID, spell string, now time.Time) model.Signature {
	return model.Signature{
		GuildID:   state.GuildID,
		CasterID:  casterID,
		TargetID:  targetID,
		Type:      spell,
		Day:       state.Day,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(e.cfg.SignatureTTL()).Unix(),
	}
}

// checkVictory concludes the game when at most one player is left alive. A
// sole survivor wins; an empty roster is a draw with no winner recorded.
func (e *Engine) checkVictory(tx *sqlx.Tx, state *model.GameState, outcome *model.Outcome) error {
	alive, err := database.GetActivePlayers(tx, state.GuildID)
	if err != nil {
		return err
	}
	switch len(alive) {
	case 1:
		state.Status = model.StatusConcluded
		state.WinnerID = alive[0].UserID
		outcome.Concluded = true
		outcome.WinnerID = alive[0].UserID
	case 0:
		state.Status = model.StatusConcluded
		state.WinnerID = ""
		outcome.Concluded = true
	}
	return nil
}

// fillTrains loads the target's current hex and mend trains into the outcome.
func (e *Engine) fillTrains(q sqlx.Queryer, outcome *model.Outcome, guildID, targetID string, now time.Time) error {
	hexTrain, err := e.trainStatus(q, guildID, targetID, model.SpellHex, now)
	if err != nil {
		return err
	}
	mendTrain, err := e.trainStatus(q, guildID, targetID, model.SpellMend, now)
	if err != nil {
		return err
	}
	outcome.HexTrain = hexTrain
	outcome.MendTrain = mendTrain
	return nil
}

// trainStatus summarizes the unexpired signatures of one type on a target.
// Freshness follows the oldest signature, since the train collapses when it
// expires.
func (e *Engine) trainStatus(q sqlx.Queryer, guildID, targetID, sigType string, now time.Time) (model.TrainStatus, error) {
	sigs, err := database.TrainSignaturesFor(q, guildID, targetID, sigType, now)
	if err != nil {
		return model.TrainStatus{}, err
	}
	if len(sigs) == 0 {
		return model.TrainStatus{Count: 0, Freshness: TrainExpired}, nil
	}
	oldest := sigs[0].CreatedAt
	for _, sig := range sigs {
		if sig.CreatedAt < oldest {
			oldest = sig.CreatedAt
		}
	}
	age := now.Sub(time.Unix(oldest, 0)).Hours()
	return model.TrainStatus{Count: len(sigs), Freshness: FreshnessBucket(age)}, nil
}
