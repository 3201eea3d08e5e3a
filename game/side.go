package game

import (
	"fmt"
	"math/rand"
	"strings"

	"blind-chess/rules"
)

// ResolveSide turns the player's side choice into a color. "r"/"random" draws from
// rnd once; the result is then fixed for the whole game.
func ResolveSide(choice string, rnd *rand.Rand) (rules.Color, error) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "w", "white":
		return rules.White, nil
	case "b", "black":
		return rules.Black, nil
	case "r", "random":
		if rnd.Intn(2) == 0 {
			return rules.White, nil
		}
		return rules.Black, nil
	}
	return rules.White, fmt.Errorf("%w: %q (use w, b or r)", ErrInvalidSide, choice)
}
