package notation

import (
	"strings"

	"blind-chess/rules"
)

// Coordinate is a move in coordinate notation: origin, destination and an optional
// promotion piece, as in "e2e4" or "e7e8q". It carries no legality information.
type Coordinate struct {
	From      rules.Square
	To        rules.Square
	Promotion rules.PieceType
}

// ParseCoordinate parses coordinate notation without looking at any position.
func ParseCoordinate(text string) (Coordinate, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if len(s) != 4 && len(s) != 5 {
		return Coordinate{}, wrap(ErrMalformedMove, text)
	}
	from, okFrom := rules.ParseSquare(s[0:2])
	to, okTo := rules.ParseSquare(s[2:4])
	if !okFrom || !okTo || from == to {
		return Coordinate{}, wrap(ErrMalformedMove, text)
	}
	c := Coordinate{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'n', 'b', 'r', 'q':
			c.Promotion = rules.PieceTypeFromLetter(s[4])
		default:
			return Coordinate{}, wrap(ErrMalformedMove, text)
		}
	}
	return c, nil
}

func (c Coordinate) String() string {
	s := c.From.String() + c.To.String()
	if c.Promotion != rules.PieceTypeNone {
		s += strings.ToLower(c.Promotion.Letter())
	}
	return s
}

// Resolve finds the legal move of pos the coordinate describes.
func (c Coordinate) Resolve(pos rules.Position) (rules.Move, error) {
	for _, m := range pos.LegalMoves() {
		if m.From() == c.From && m.To() == c.To && m.PromotionPieceType() == c.Promotion {
			return m, nil
		}
	}
	return rules.NoMove, wrap(ErrIllegalMove, c.String())
}
