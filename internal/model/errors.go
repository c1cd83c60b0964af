package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidPosition = errors.New("invalid board position")
	ErrInvalidBoard    = errors.New("invalid board serialization")

	// Placement errors
	ErrShipTooLong     = errors.New("ship does not fit on the board")
	ErrPlacementFailed = errors.New("could not place ship")

	// Game errors
	ErrGameStalled = errors.New("game did not finish")

	// Tournament errors
	ErrInvalidGameCount = errors.New("number of games must be at least 1")

	// Bot failure kinds, matched against *BotFailure with errors.Is
	ErrIllegalMove = errors.New("bot made an illegal move")
	ErrMoveTimeout = errors.New("bot took too long to move")
	ErrBotError    = errors.New("bot encountered an error")

	// Failure records read back with a kind this build does not know
	ErrUnknownFailure = errors.New("bot failed for an unknown reason")

	// Storage errors
	ErrResultNotFound = errors.New("result not found")
	ErrInvalidJob     = errors.New("invalid job")
)
