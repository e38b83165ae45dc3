package game

import "errors"

// Validation errors. These are expected game conditions: the caller reports
// them to the player as a rejected action and nothing is mutated. Anything
// else coming out of the engine is a storage failure; the whole operation has
// been rolled back and may be retried.
var (
	ErrAlreadyActedToday = errors.New("you have already acted today")
	ErrNotInGame         = errors.New("you are not in the game")
	ErrTargetNotInGame   = errors.New("target is not in the game")
	ErrAlreadyJoined     = errors.New("you are already in the game")
	ErrInvalidTarget     = errors.New("invalid target for this spell")
	ErrGameConcluded     = errors.New("the ritual war has concluded")
	ErrRosterLocked      = errors.New("the roster is locked after the first elimination")
	ErrNoActiveTrain     = errors.New("there is no active train on this target")
	ErrTrainFull         = errors.New("the train already has the maximum number of claims")
	ErrAlreadyClaimed    = errors.New("you have already claimed this train")
	ErrNoSuchClaim       = errors.New("you have no matching claim")
)

// IsValidation reports whether err is one of the expected game conditions.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrAlreadyActedToday, ErrNotInGame, ErrTargetNotInGame, ErrAlreadyJoined,
		ErrInvalidTarget, ErrGameConcluded, ErrRosterLocked, ErrNoActiveTrain,
		ErrTrainFull, ErrAlreadyClaimed, ErrNoSuchClaim,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
