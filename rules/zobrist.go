package rules

import "math/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
var zobristPiece [15][64]uint64 // indexed by piece code and square
var zobristCastle [16]uint64    // one key per castling rights state
var zobristEnPassant [8]uint64  // keyed by en passant file
var zobristSide uint64          // XORed in when Black is to move

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so hashes are stable between runs.
	rnd := rand.New(rand.NewSource(0xC0DE))

	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeZobrist calculates the Zobrist hash for the position from scratch.
func (p *Position) ComputeZobrist() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if pc := p.pieces[sq]; pc != NoPiece {
			key ^= zobristPiece[pc][sq]
		}
	}
	if p.sideToMove == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[int(p.castlingRights)]
	if p.enPassantSquare != NoSquare {
		key ^= zobristEnPassant[p.enPassantSquare.File()]
	}
	return key
}

// Signature is the part of a position that decides repetitions: placement, side to
// move, castling rights and en-passant target. Clocks are left out. Two positions
// repeat exactly when their signatures are equal.
type Signature struct {
	Pieces    [64]Piece
	Side      Color
	Castling  CastlingRights
	EnPassant Square
}

// Signature returns the repetition signature of the position.
func (p *Position) Signature() Signature {
	return Signature{
		Pieces:    p.pieces,
		Side:      p.sideToMove,
		Castling:  p.castlingRights,
		EnPassant: p.enPassantSquare,
	}
}
