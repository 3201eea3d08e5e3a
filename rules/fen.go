package rules

import (
	"math/bits"
	"strconv"
	"strings"
)

// StartFEN is the board-description string for the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) byte {
	const letters = " PNBRQK"
	t := p.Type()
	if t == PieceTypeNone || t > PieceTypeKing {
		return '?'
	}
	ch := letters[t]
	if colorOf(p) == Black {
		ch += 'a' - 'A'
	}
	return ch
}

// String returns the FEN letter of the piece, or "." for an empty square.
func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	return string(charFromPiece(p))
}

// MustParseFEN is ParseFEN for positions known to be valid; it panics on error.
func MustParseFEN(fen string) Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseFEN parses a six-field board-description string. Every failure wraps
// ErrMalformedPosition.
func ParseFEN(fen string) (Position, error) {
	var pos Position
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return pos, malformed("expected 6 fields, got %d", len(fields))
	}
	pos.enPassantSquare = NoSquare

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return pos, malformed("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return pos, malformed("empty rank description")
		}
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return pos, malformed("rank %d has more than 8 squares", rank+1)
				}
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				return pos, malformed("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return pos, malformed("rank %d has more than 8 squares", rank+1)
			}
			pos.addPiece(NewSquare(file, rank), piece)
			file++
		}
		if file != 8 {
			return pos, malformed("rank %d does not have 8 squares", rank+1)
		}
	}
	if bits.OnesCount64(pos.kings[White]) != 1 || bits.OnesCount64(pos.kings[Black]) != 1 {
		return pos, malformed("each side needs exactly one king")
	}
	const backRanks = 0xFF000000000000FF
	if (pos.pawns[White]|pos.pawns[Black])&backRanks != 0 {
		return pos, malformed("pawns cannot stand on the first or last rank")
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return pos, malformed("side to move must be 'w' or 'b', got %q", fields[1])
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			var flag CastlingRights
			switch ch {
			case 'K':
				flag = CastlingWhiteK
			case 'Q':
				flag = CastlingWhiteQ
			case 'k':
				flag = CastlingBlackK
			case 'q':
				flag = CastlingBlackQ
			default:
				return pos, malformed("invalid castling rights character %q", ch)
			}
			if pos.castlingRights&flag != 0 {
				return pos, malformed("duplicate castling right %q", ch)
			}
			pos.castlingRights |= flag
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return pos, malformed("invalid en passant square %q", fields[3])
		}
		want := 5
		if pos.sideToMove == Black {
			want = 2
		}
		if sq.Rank() != want {
			return pos, malformed("en passant square %s does not fit side to move", fields[3])
		}
		// The pawn that just double-pushed passed over sq from origin to victim.
		victim, origin := sq-8, sq+8
		if pos.sideToMove == Black {
			victim, origin = sq+8, sq-8
		}
		if pos.pieces[sq] != NoPiece || pos.pieces[origin] != NoPiece ||
			pos.pieces[victim] != PieceFromType(pos.sideToMove.Other(), PieceTypePawn) {
			return pos, malformed("en passant square %s without a pawn that just double-pushed", fields[3])
		}
		pos.enPassantSquare = sq
	}

	// 5. Halfmove clock
	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return pos, malformed("invalid halfmove clock %q", fields[4])
	}
	pos.halfmoveClock = halfmove

	// 6. Fullmove number
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return pos, malformed("invalid fullmove number %q", fields[5])
	}
	pos.fullmoveNumber = fullmove

	if pos.IsSquareAttacked(pos.KingSquare(pos.sideToMove.Other()), pos.sideToMove) {
		return pos, malformed("side not to move is in check")
	}

	pos.zobristKey = pos.ComputeZobrist()
	return pos, nil
}

// FEN produces the board-description string of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.pieces[NewSquare(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(pc))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	if p.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		for _, c := range []struct {
			flag CastlingRights
			ch   byte
		}{{CastlingWhiteK, 'K'}, {CastlingWhiteQ, 'Q'}, {CastlingBlackK, 'k'}, {CastlingBlackQ, 'q'}} {
			if p.castlingRights&c.flag != 0 {
				sb.WriteByte(c.ch)
			}
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	sb.WriteString(p.enPassantSquare.String())
	sb.WriteByte(' ')

	// 5. Halfmove clock
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')

	// 6. Fullmove number
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))
	return sb.String()
}
