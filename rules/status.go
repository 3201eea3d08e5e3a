package rules

// Outcome is the state of a game at a turn boundary.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
	Repetition
	Resigned
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "draw: stalemate"
	case Repetition:
		return "draw: repetition"
	case Resigned:
		return "resigned"
	}
	return "unknown"
}

// Terminal reports whether the outcome ends the game.
func (o Outcome) Terminal() bool { return o != Ongoing }

// repetitionLimit is the number of occurrences that ends the game.
const repetitionLimit = 3

// Evaluate classifies the current position of the record. Checkmate and stalemate
// are decided before repetition. Resigned is never produced here.
func Evaluate(rec *Record) Outcome {
	cur := rec.Current()
	if !cur.HasLegalMoves() {
		if cur.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if rec.Occurrences(cur) >= repetitionLimit {
		return Repetition
	}
	return Ongoing
}
