package rules

// Move encodes a chess move in a 32-bit value.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	movePromoteShift = 20 // 4 bits
	moveFlagShift    = 24 // 2 bits
)

// Move flags. Promotion is indicated by a non-zero promotion piece.
const (
	FlagNone       = 0
	FlagCastle     = 1
	FlagEnPassant  = 2
	FlagDoublePush = 3
)

// NoMove is the zero Move; it never matches a generated move.
const NoMove Move = 0

// NewMove constructs a Move value from components.
func NewMove(from, to Square, piece, captured Piece, promotion Piece, flag uint8) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		(uint32(flag&0x3) << moveFlagShift)
	return Move(m)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// MovedPiece returns the piece code that is moved.
func (m Move) MovedPiece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// CapturedPiece returns the piece code that was captured (or NoPiece if none).
func (m Move) CapturedPiece() Piece { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }

// PromotionPiece returns the promotion piece code (or NoPiece if not a promotion).
func (m Move) PromotionPiece() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }

// PromotionPieceType returns the colorless type of the promoted piece (or PieceTypeNone).
func (m Move) PromotionPieceType() PieceType { return m.PromotionPiece().Type() }

// Flags returns the special move flags.
func (m Move) Flags() uint8 { return uint8((uint32(m) >> moveFlagShift) & 0x3) }

// IsCapture reports whether the move removes an enemy piece, en passant included.
func (m Move) IsCapture() bool { return m.CapturedPiece() != NoPiece }

func (m Move) IsEnPassant() bool { return m.Flags() == FlagEnPassant }

func (m Move) IsDoublePush() bool { return m.Flags() == FlagDoublePush }

func (m Move) IsPromotion() bool { return m.PromotionPiece() != NoPiece }

func (m Move) IsCastle() bool { return m.Flags() == FlagCastle }

// IsCastleKingside reports a short castle (king lands on the g-file).
func (m Move) IsCastleKingside() bool { return m.IsCastle() && m.To().File() == 6 }

// IsCastleQueenside reports a long castle (king lands on the c-file).
func (m Move) IsCastleQueenside() bool { return m.IsCastle() && m.To().File() == 2 }

// String produces coordinate notation for the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		s += string(charFromPiece(PieceFromType(Black, promo.Type())))
	}
	return s
}
