package game

import "errors"

var (
	// ErrInvalidSide is returned by ResolveSide for an unrecognised side choice.
	ErrInvalidSide = errors.New("invalid side selection")
	// ErrUnknownCommand is surfaced when input is neither a playable move nor a
	// command. It wraps the reason the move text was rejected.
	ErrUnknownCommand = errors.New("unknown command")
)
