package model

import (
	"fmt"
	"strconv"
)

// FailureKind classifies why a bot was rejected
type FailureKind string

const (
	FailureIllegalMove FailureKind = "illegal_move" // Non-integer, out of range, or repeated move
	FailureTimeout     FailureKind = "timeout"      // No move before the deadline
	FailureError       FailureKind = "error"        // Could not launch, or exited non-zero
)

// BotFailure is the rejection record for a bot. It is returned as an error
// and terminates the game and tournament it occurred in.
type BotFailure struct {
	Kind FailureKind `json:"kind"`

	// GameState is the shot board serialization at the time of failure
	GameState string `json:"game_state"`

	// Move is the offending move, raw output if it was not an integer
	Move *string `json:"move,omitempty"`

	// Cause is the underlying process error for FailureError. Not persisted.
	Cause error `json:"-"`
}

// NewIllegalMoveFailure records a bot output that was not an integer
func NewIllegalMoveFailure(gameState string, raw string) *BotFailure {
	return &BotFailure{Kind: FailureIllegalMove, GameState: gameState, Move: &raw}
}

// NewIllegalIndexFailure records an integer move that could not be played
func NewIllegalIndexFailure(gameState string, move int) *BotFailure {
	s := strconv.Itoa(move)
	return &BotFailure{Kind: FailureIllegalMove, GameState: gameState, Move: &s}
}

// NewTimeoutFailure records a bot that did not answer in time
func NewTimeoutFailure(gameState string) *BotFailure {
	return &BotFailure{Kind: FailureTimeout, GameState: gameState}
}

// NewErrorFailure records a bot that could not be run or exited abnormally
func NewErrorFailure(gameState string, cause error) *BotFailure {
	return &BotFailure{Kind: FailureError, GameState: gameState, Cause: cause}
}

func (f *BotFailure) Error() string {
	msg := f.sentinel().Error()
	if f.Move != nil {
		msg = fmt.Sprintf("%s: move %q", msg, *f.Move)
	}
	if f.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, f.Cause)
	}
	return msg
}

// Is matches the failure against ErrIllegalMove, ErrMoveTimeout or ErrBotError.
// A failure with an unrecognised kind matches ErrUnknownFailure only.
func (f *BotFailure) Is(target error) bool {
	return target == f.sentinel()
}

func (f *BotFailure) Unwrap() error {
	return f.Cause
}

func (f *BotFailure) sentinel() error {
	switch f.Kind {
	case FailureIllegalMove:
		return ErrIllegalMove
	case FailureTimeout:
		return ErrMoveTimeout
	case FailureError:
		return ErrBotError
	default:
		return ErrUnknownFailure
	}
}
