package rules

import "math/bits"

// Precomputed attack masks for knights and kings from each square.
var knightMoves [64]uint64
var kingMoves [64]uint64

// Pawn attack masks: pawnAttacks[color][sq] gives bitboard of squares that a pawn of 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

// Precomputed rays for sliders. For each square and direction, the bitboard of
// squares in that ray (excluding the origin square).
// Rook directions: 0=N, 1=S, 2=E, 3=W
var rookRays [64][4]uint64

// Bishop directions: 0=NE, 1=NW, 2=SE, 3=SW
var bishopRays [64][4]uint64

func init() {
	initAttackTables()
	initRays()
}

// initAttackTables precomputes move attack bitboards for knights, kings, and pawn captures.
func initAttackTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		knightMoves[sq] = offsetMask(rank, file, knightOffsets[:])
		kingMoves[sq] = offsetMask(rank, file, kingOffsets[:])

		if rank < 7 {
			if file > 0 {
				pawnAttacks[White][sq] |= uint64(1) << ((rank+1)*8 + file - 1)
			}
			if file < 7 {
				pawnAttacks[White][sq] |= uint64(1) << ((rank+1)*8 + file + 1)
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnAttacks[Black][sq] |= uint64(1) << ((rank-1)*8 + file - 1)
			}
			if file < 7 {
				pawnAttacks[Black][sq] |= uint64(1) << ((rank-1)*8 + file + 1)
			}
		}
	}
}

func offsetMask(rank, file int, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		rf := rank + off[0]
		ff := file + off[1]
		if rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
			mask |= uint64(1) << (rf*8 + ff)
		}
	}
	return mask
}

// initRays precomputes directional rays for rook and bishop moves.
func initRays() {
	rookDirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs := [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	for sq := 0; sq < 64; sq++ {
		for d := 0; d < 4; d++ {
			rookRays[sq][d] = rayMask(sq, rookDirs[d])
			bishopRays[sq][d] = rayMask(sq, bishopDirs[d])
		}
	}
}

func rayMask(sq int, dir [2]int) uint64 {
	var mask uint64
	r, f := sq/8+dir[0], sq%8+dir[1]
	for r >= 0 && r < 8 && f >= 0 && f < 8 {
		mask |= uint64(1) << (r*8 + f)
		r += dir[0]
		f += dir[1]
	}
	return mask
}

// ==========================
// Sliding attacks
// ==========================

// rookAttacks returns rook attack bitboard from sq given current occupancy.
func rookAttacks(sq int, occ uint64) uint64 {
	var attacks uint64

	// N (increasing indices)
	ray := rookRays[sq][0]
	if blockers := ray & occ; blockers != 0 {
		ray &^= rookRays[bits.TrailingZeros64(blockers)][0]
	}
	attacks |= ray

	// S (decreasing indices)
	ray = rookRays[sq][1]
	if blockers := ray & occ; blockers != 0 {
		ray &^= rookRays[63-bits.LeadingZeros64(blockers)][1]
	}
	attacks |= ray

	// E (increasing)
	ray = rookRays[sq][2]
	if blockers := ray & occ; blockers != 0 {
		ray &^= rookRays[bits.TrailingZeros64(blockers)][2]
	}
	attacks |= ray

	// W (decreasing)
	ray = rookRays[sq][3]
	if blockers := ray & occ; blockers != 0 {
		ray &^= rookRays[63-bits.LeadingZeros64(blockers)][3]
	}
	attacks |= ray

	return attacks
}

// bishopAttacks returns bishop attack bitboard from sq given current occupancy.
func bishopAttacks(sq int, occ uint64) uint64 {
	var attacks uint64

	// NE (increasing)
	ray := bishopRays[sq][0]
	if blockers := ray & occ; blockers != 0 {
		ray &^= bishopRays[bits.TrailingZeros64(blockers)][0]
	}
	attacks |= ray

	// NW (increasing)
	ray = bishopRays[sq][1]
	if blockers := ray & occ; blockers != 0 {
		ray &^= bishopRays[bits.TrailingZeros64(blockers)][1]
	}
	attacks |= ray

	// SE (decreasing)
	ray = bishopRays[sq][2]
	if blockers := ray & occ; blockers != 0 {
		ray &^= bishopRays[63-bits.LeadingZeros64(blockers)][2]
	}
	attacks |= ray

	// SW (decreasing)
	ray = bishopRays[sq][3]
	if blockers := ray & occ; blockers != 0 {
		ray &^= bishopRays[63-bits.LeadingZeros64(blockers)][3]
	}
	attacks |= ray

	return attacks
}

// ==========================
// Attack queries
// ==========================

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	if !sq.Valid() {
		return false
	}
	s := int(sq)
	bi := int(by)
	occ := p.AllOccupancy()

	// Pawns attack sq if a pawn of the other color standing on sq would attack them.
	if pawnAttacks[by.Other()][s]&p.pawns[bi] != 0 {
		return true
	}
	if knightMoves[s]&p.knights[bi] != 0 {
		return true
	}
	if kingMoves[s]&p.kings[bi] != 0 {
		return true
	}
	if rookAttacks(s, occ)&(p.rooks[bi]|p.queens[bi]) != 0 {
		return true
	}
	return bishopAttacks(s, occ)&(p.bishops[bi]|p.queens[bi]) != 0
}

// InCheck reports whether the side to move has its king attacked.
func (p *Position) InCheck() bool {
	us := p.sideToMove
	return p.IsSquareAttacked(p.KingSquare(us), us.Other())
}
