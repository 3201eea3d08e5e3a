package notation

import (
	"errors"
	"fmt"
)

// Move text errors. They are kept apart so callers can tell text that is not a move
// at all from a move that cannot be played.
var (
	ErrMalformedMove = errors.New("malformed move")
	ErrIllegalMove   = errors.New("illegal move")
	ErrAmbiguousMove = errors.New("ambiguous move")
)

func wrap(kind error, text string) error {
	return fmt.Errorf("%w: %q", kind, text)
}
