package rules

import (
	"errors"
	"fmt"
)

// ErrMalformedPosition is returned when a board-description string cannot be parsed.
var ErrMalformedPosition = errors.New("malformed position")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedPosition, fmt.Sprintf(format, args...))
}

// InvariantViolation is the panic value raised when a position or move breaks a rule
// the code relies on, such as a king disappearing from the board. It signals a
// programming error and is not meant to be recovered.
type InvariantViolation struct {
	Msg string
}

func (v InvariantViolation) Error() string { return "invariant violation: " + v.Msg }

func violate(format string, args ...any) {
	panic(InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
