package notation

import (
	"strconv"
	"strings"

	"blind-chess/rules"
)

// Transcript replays moves from start and returns the numbered move list, e.g.
// "1. e4 e5 2. Nf3 ". A number marker precedes every move of the side that moved
// first; every token is followed by a space. The moves must be legal in sequence.
func Transcript(start rules.Position, moves []rules.Move) string {
	var sb strings.Builder
	pos := start
	first := start.SideToMove()
	for _, m := range moves {
		if pos.SideToMove() == first {
			sb.WriteString(strconv.Itoa(pos.FullmoveNumber()))
			sb.WriteString(". ")
		}
		sb.WriteString(EncodeSAN(pos, m))
		sb.WriteByte(' ')
		pos = pos.Apply(m)
	}
	return sb.String()
}
