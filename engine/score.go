package engine

import "fmt"

// Score is an evaluation from White's point of view: either a centipawn value or,
// when Mate is non-zero, a forced mate in Mate moves (negative when Black mates).
type Score struct {
	Centipawns int
	Mate       int
}

// IsMate reports whether the score announces a forced mate.
func (s Score) IsMate() bool { return s.Mate != 0 }

func (s Score) String() string {
	if s.IsMate() {
		return fmt.Sprintf("mate %d", s.Mate)
	}
	return fmt.Sprintf("%.2f", float64(s.Centipawns)/100)
}

// whitePOV turns a score reported for the side to move into White's point of view.
func whitePOV(cp, mate int, blackToMove bool) Score {
	if blackToMove {
		cp, mate = -cp, -mate
	}
	return Score{Centipawns: cp, Mate: mate}
}
