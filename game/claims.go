package game

import (
	"fmt"
	"ritual-war/model"
	"ritual-war/utils/database"
	"time"
)

// ClaimTrain records a public claim of having contributed to the hex or mend
// train on a target. Claims are declarative only: they never touch doom. A
// train must exist, an author may claim it once, and a train never carries
// more claims than signatures, so a full train proves nothing about who is
// lying.
func (e *Engine) ClaimTrain(guildID, authorID, targetID, claimType string, now time.Time) error {
	if claimType != model.SpellHex && claimType != model.SpellMend {
		return ErrInvalidTarget
	}

	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := e.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin claim transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := e.ensureState(tx, guildID, now); err != nil {
		return err
	}

	author, err := database.GetPlayer(tx, guildID, authorID)
	if err != nil {
		return err
	}
	if author == nil || author.Active == 0 {
		return ErrNotInGame
	}
	target, err := database.GetPlayer(tx, guildID, targetID)
	if err != nil {
		return err
	}
	if target == nil || target.Active == 0 {
		return ErrTargetNotInGame
	}

	sigs, err := database.TrainSignaturesFor(tx, guildID, targetID, claimType, now)
	if err != nil {
		return err
	}
	if len(sigs) == 0 {
		return ErrNoActiveTrain
	}

	claims, err := database.ClaimsFor(tx, guildID, targetID, claimType, now)
	if err != nil {
		return err
	}
	for _, claim := range claims {
		if claim.AuthorID == authorID {
			return ErrAlreadyClaimed
		}
	}
	if len(claims) >= len(sigs) {
		return ErrTrainFull
	}

	// The claim lives exactly as long as the train: it expires with the
	// oldest signature.
	trainExpiry := sigs[0].ExpiresAt
	for _, sig := range sigs {
		if sig.ExpiresAt < trainExpiry {
			trainExpiry = sig.ExpiresAt
		}
	}

	err = database.AddClaim(tx, model.Claim{
		GuildID:   guildID,
		AuthorID:  authorID,
		TargetID:  targetID,
		Type:      claimType,
		CreatedAt: now.Unix(),
		ExpiresAt: trainExpiry,
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit claim: %w", err)
	}
	return nil
}

// UnclaimTrain removes the author's own claim matching target and type.
func (e *Engine) UnclaimTrain(guildID, authorID, targetID, claimType string) error {
	if claimType != model.SpellHex && claimType != model.SpellMend {
		return ErrInvalidTarget
	}

	mu := e.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	removed, err := database.RemoveClaim(e.db, guildID, authorID, targetID, claimType)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNoSuchClaim
	}
	return nil
}
