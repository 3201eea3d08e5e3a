package rules

import "math/bits"

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Letter returns the upper-case piece letter used by algebraic notation ("" for pawns).
func (pt PieceType) Letter() string {
	switch pt {
	case PieceTypeKnight:
		return "N"
	case PieceTypeBishop:
		return "B"
	case PieceTypeRook:
		return "R"
	case PieceTypeQueen:
		return "Q"
	case PieceTypeKing:
		return "K"
	default:
		return ""
	}
}

// PieceTypeFromLetter maps a piece letter (either case) to its type.
func PieceTypeFromLetter(ch byte) PieceType {
	switch ch {
	case 'p', 'P':
		return PieceTypePawn
	case 'n', 'N':
		return PieceTypeKnight
	case 'b', 'B':
		return PieceTypeBishop
	case 'r', 'R':
		return PieceTypeRook
	case 'q', 'Q':
		return PieceTypeQueen
	case 'k', 'K':
		return PieceTypeKing
	default:
		return PieceTypeNone
	}
}

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color { return colorOf(p) }

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	if color == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return 1 - c }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square int

const NoSquare Square = -1

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

// File returns the zero-based file (0 = a).
func (s Square) File() int { return int(s) % 8 }

// Rank returns the zero-based rank (0 = rank 1).
func (s Square) Rank() int { return int(s) / 8 }

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare converts algebraic coordinates ("e4") to a Square.
func ParseSquare(alg string) (Square, bool) {
	if len(alg) != 2 {
		return NoSquare, false
	}
	file, rank := alg[0], alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, false
	}
	return NewSquare(int(file-'a'), int(rank-'1')), true
}

// Position is a snapshot of the game: piece placement plus side to move, castling
// rights, en-passant target and the move clocks. It is a plain value; Apply returns
// a successor and never touches the receiver.
type Position struct {
	// Piece bitboards for each piece type and color (index 0 = white, 1 = black)
	pawns   [2]uint64
	knights [2]uint64
	bishops [2]uint64
	rooks   [2]uint64
	queens  [2]uint64
	kings   [2]uint64

	occupancy [2]uint64

	// Piece placement array for each square (0 = NoPiece, otherwise a Piece constant)
	pieces [64]Piece

	sideToMove     Color
	castlingRights CastlingRights

	// En passant target square (if a pawn moved two steps last move, otherwise NoSquare)
	enPassantSquare Square

	// Half-moves since last capture or pawn advance.
	halfmoveClock int

	// Starts at 1, incremented after Black's move.
	fullmoveNumber int

	zobristKey uint64
}

// HalfmoveClock returns the number of half-moves since the last capture or pawn move.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (p *Position) EnPassantSquare() Square { return p.enPassantSquare }

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the castling flags still available.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// CanCastle reports whether the color keeps any castling right.
func (p *Position) CanCastle(c Color) bool {
	if c == White {
		return p.castlingRights&(CastlingWhiteK|CastlingWhiteQ) != 0
	}
	return p.castlingRights&(CastlingBlackK|CastlingBlackQ) != 0
}

// Hash returns the current Zobrist hash key.
func (p *Position) Hash() uint64 { return p.zobristKey }

// PieceAt returns the piece on a square.
func (p *Position) PieceAt(sq Square) Piece { return p.pieces[int(sq)] }

// AllOccupancy returns a bitboard of all occupied squares.
func (p *Position) AllOccupancy() uint64 { return p.occupancy[0] | p.occupancy[1] }

// ColorOccupancy returns the occupancy bitboard for the given color.
func (p *Position) ColorOccupancy(c Color) uint64 { return p.occupancy[int(c)] }

// KingSquare returns the square of the color's king, or NoSquare if it is missing.
func (p *Position) KingSquare(c Color) Square {
	k := p.kings[int(c)]
	if k == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(k))
}

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// colorOf returns the color of a piece. NoPiece is treated as White.
func colorOf(p Piece) Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// typeBoard returns the bitboard slot that tracks pieces of the given type.
func (p *Position) typeBoard(pt PieceType) *[2]uint64 {
	switch pt {
	case PieceTypePawn:
		return &p.pawns
	case PieceTypeKnight:
		return &p.knights
	case PieceTypeBishop:
		return &p.bishops
	case PieceTypeRook:
		return &p.rooks
	case PieceTypeQueen:
		return &p.queens
	case PieceTypeKing:
		return &p.kings
	}
	return nil
}

// addPiece places a piece on an empty square and updates bitboards, occupancy and zobrist.
func (p *Position) addPiece(sq Square, pc Piece) {
	if pc == NoPiece {
		return
	}
	ci := int(colorOf(pc))
	p.pieces[int(sq)] = pc
	p.occupancy[ci] |= bb(sq)
	p.typeBoard(pc.Type())[ci] |= bb(sq)
	p.zobristKey ^= zobristPiece[pc][int(sq)]
}

// removePiece removes a piece from a square and updates bitboards, occupancy and zobrist.
func (p *Position) removePiece(sq Square) Piece {
	pc := p.pieces[int(sq)]
	if pc == NoPiece {
		return NoPiece
	}
	ci := int(colorOf(pc))
	mask := ^bb(sq)
	p.pieces[int(sq)] = NoPiece
	p.occupancy[ci] &= mask
	p.typeBoard(pc.Type())[ci] &= mask
	p.zobristKey ^= zobristPiece[pc][int(sq)]
	return pc
}

// movePiece moves a piece between two squares, capturing whatever stood on 'to'.
func (p *Position) movePiece(from, to Square) {
	moving := p.removePiece(from)
	p.removePiece(to)
	p.addPiece(to, moving)
}

// Validate checks internal consistency between pieces[], per-piece bitboards, occupancy
// and the incremental Zobrist key.
func (p *Position) Validate() bool {
	var check Position
	for sq := Square(0); sq < 64; sq++ {
		check.addPiece(sq, p.pieces[sq])
	}
	if check.occupancy != p.occupancy {
		return false
	}
	if check.pawns != p.pawns || check.knights != p.knights || check.bishops != p.bishops ||
		check.rooks != p.rooks || check.queens != p.queens || check.kings != p.kings {
		return false
	}
	return p.zobristKey == p.ComputeZobrist()
}
