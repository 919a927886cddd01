// internal/uno/errors.go
package uno

import "errors"

// Validation failures surfaced directly to the caller. None of them leaves
// the record partially mutated: every check runs before the write step.
var (
	ErrGameOver      = errors.New("game is already over")
	ErrWrongTurn     = errors.New("it is not your turn")
	ErrNotInHand     = errors.New("card not in your hand")
	ErrIllegalPlay   = errors.New("card cannot be played")
	ErrMissingColor  = errors.New("you must choose a color when playing a Wild card")
	ErrInvalidColor  = errors.New("invalid chosen color")
	ErrDeckExhausted = errors.New("no cards left to draw")
	ErrWaitTimeout   = errors.New("timed out waiting for your turn")
)
