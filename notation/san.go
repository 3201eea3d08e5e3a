package notation

import (
	"regexp"
	"strings"

	"blind-chess/rules"
)

// sanPattern matches the short algebraic grammar: piece letter, origin file and/or
// rank, capture marker, destination, promotion, and check suffix.
var sanPattern = regexp.MustCompile(`^([NBKRQ])?([a-h])?([1-8])?[\-x]?([a-h][1-8])(=?[nbrqkNBRQK])?[\+#]?$`)

// EncodeSAN renders m, which must be legal in pos, in short algebraic notation.
// The origin is qualified only as far as needed to single out the move among the
// legal moves of the same piece kind to the same square.
func EncodeSAN(pos rules.Position, m rules.Move) string {
	var sb strings.Builder
	switch {
	case m.IsCastleKingside():
		sb.WriteString("O-O")
	case m.IsCastleQueenside():
		sb.WriteString("O-O-O")
	default:
		pt := m.MovedPiece().Type()
		if pt == rules.PieceTypePawn {
			if m.IsCapture() {
				sb.WriteByte(m.From().String()[0])
			}
		} else {
			sb.WriteString(pt.Letter())
			sb.WriteString(disambiguation(&pos, m))
		}
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if promo := m.PromotionPieceType(); promo != rules.PieceTypeNone {
			sb.WriteByte('=')
			sb.WriteString(promo.Letter())
		}
	}

	next := pos.Apply(m)
	if next.InCheck() {
		if next.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

// disambiguation returns the origin qualifier for a piece move: nothing when no
// other piece of the same kind can reach the destination, the file when that is
// enough, else the rank, else the full square.
func disambiguation(pos *rules.Position, m rules.Move) string {
	from := m.From()
	rivals, sameFile, sameRank := 0, false, false
	for _, o := range pos.LegalMoves() {
		if o.To() != m.To() || o.From() == from || o.MovedPiece() != m.MovedPiece() {
			continue
		}
		rivals++
		if o.From().File() == from.File() {
			sameFile = true
		}
		if o.From().Rank() == from.Rank() {
			sameRank = true
		}
	}
	sq := from.String()
	switch {
	case rivals == 0:
		return ""
	case !sameFile:
		return sq[:1]
	case !sameRank:
		return sq[1:]
	}
	return sq
}

// DecodeSAN resolves short algebraic text against the legal moves of pos.
func DecodeSAN(pos rules.Position, text string) (rules.Move, error) {
	s := strings.TrimSpace(text)
	if castle := strings.TrimRight(s, "+#"); isCastleText(castle) {
		return decodeCastle(&pos, castle, text)
	}

	match := sanPattern.FindStringSubmatch(s)
	if match == nil {
		return rules.NoMove, wrap(ErrMalformedMove, text)
	}

	piece := rules.PieceTypePawn
	if match[1] != "" {
		piece = rules.PieceTypeFromLetter(match[1][0])
	}
	fromFile, fromRank := -1, -1
	if match[2] != "" {
		fromFile = int(match[2][0] - 'a')
	}
	if match[3] != "" {
		fromRank = int(match[3][0] - '1')
	}
	to, _ := rules.ParseSquare(match[4])
	if piece == rules.PieceTypePawn && fromFile < 0 {
		// A pawn named by destination alone is a push along its file.
		fromFile = to.File()
	}
	promo := rules.PieceTypeNone
	if match[5] != "" {
		promo = rules.PieceTypeFromLetter(match[5][len(match[5])-1])
		if promo == rules.PieceTypeKing || piece != rules.PieceTypePawn {
			return rules.NoMove, wrap(ErrMalformedMove, text)
		}
	}

	found := rules.NoMove
	count := 0
	for _, m := range pos.LegalMoves() {
		if m.To() != to || m.MovedPiece().Type() != piece || m.PromotionPieceType() != promo {
			continue
		}
		if fromFile >= 0 && m.From().File() != fromFile {
			continue
		}
		if fromRank >= 0 && m.From().Rank() != fromRank {
			continue
		}
		found = m
		count++
	}
	switch count {
	case 0:
		return rules.NoMove, wrap(ErrIllegalMove, text)
	case 1:
		return found, nil
	}
	return rules.NoMove, wrap(ErrAmbiguousMove, text)
}

func isCastleText(s string) bool {
	switch s {
	case "O-O", "O-O-O", "0-0", "0-0-0":
		return true
	}
	return false
}

func decodeCastle(pos *rules.Position, castle, text string) (rules.Move, error) {
	long := len(castle) == 5
	for _, m := range pos.LegalMoves() {
		if long && m.IsCastleQueenside() || !long && m.IsCastleKingside() {
			return m, nil
		}
	}
	return rules.NoMove, wrap(ErrIllegalMove, text)
}
