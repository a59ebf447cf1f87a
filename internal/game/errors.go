package game

import "errors"

// Rule violations surfaced during play. ErrHandLocked and ErrInvalidAction
// are recoverable; the caller re-prompts and the turn continues.
// ErrInvalidWager is recoverable at wager entry. Shoe failures
// (deck.ErrShoeExhausted) are fatal to the round but not the session.
var (
	ErrHandLocked    = errors.New("hand is locked")
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidWager  = errors.New("invalid wager")
)
