package rules

// Record is the append-only history of a game: the starting position and every
// (move, resulting position) pair played from it. It owns the current position.
type Record struct {
	start     Position
	moves     []Move
	positions []Position
}

// NewRecord starts a record rooted at the given position.
func NewRecord(start Position) *Record {
	return &Record{start: start}
}

// Start returns the position the game began from.
func (r *Record) Start() Position { return r.start }

// Current returns the latest position.
func (r *Record) Current() Position {
	if len(r.positions) == 0 {
		return r.start
	}
	return r.positions[len(r.positions)-1]
}

// Len returns the number of moves played.
func (r *Record) Len() int { return len(r.moves) }

// Moves returns a copy of the moves played so far.
func (r *Record) Moves() []Move {
	return append([]Move(nil), r.moves...)
}

// Positions returns a copy of the positions reached after each move.
func (r *Record) Positions() []Position {
	return append([]Position(nil), r.positions...)
}

// Push applies m to the current position, appends the pair and returns the new
// position. Legality must have been established by the caller.
func (r *Record) Push(m Move) Position {
	next := r.Current().Apply(m)
	r.moves = append(r.moves, m)
	r.positions = append(r.positions, next)
	return next
}

// Occurrences counts how many positions in the record, the start included, share
// the repetition signature of p.
func (r *Record) Occurrences(p Position) int {
	hash := p.Hash()
	sig := p.Signature()
	count := 0
	match := func(q *Position) {
		if q.Hash() == hash && q.Signature() == sig {
			count++
		}
	}
	match(&r.start)
	for i := range r.positions {
		match(&r.positions[i])
	}
	return count
}
