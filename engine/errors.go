package engine

import "errors"

var (
	// ErrUnavailable means the engine process could not be located or started.
	ErrUnavailable = errors.New("engine unavailable")
	// ErrRuntime means the engine failed after it was started.
	ErrRuntime = errors.New("engine runtime error")
)
