package rules

var promotionOrder = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

// PseudoLegalMoves returns every move that obeys piece movement rules, blockers and
// castling geometry, without testing whether the mover's king is left attacked.
// En passant is offered only through the stored target square, which exists for
// exactly one turn after the double push.
func (p *Position) PseudoLegalMoves() []Move {
	return p.pseudoLegalMovesInto(make([]Move, 0, 64))
}

func (p *Position) pseudoLegalMovesInto(dst []Move) []Move {
	moves := dst[:0]
	side := p.sideToMove
	us := int(side)
	them := 1 - us

	ownOcc := p.occupancy[us]
	oppOcc := p.occupancy[them]
	allOcc := ownOcc | oppOcc

	appendTargets := func(from int, targets uint64) {
		moved := p.pieces[from]
		for targets != 0 {
			to := popLSB(&targets)
			moves = append(moves, NewMove(Square(from), Square(to), moved, p.pieces[to], NoPiece, FlagNone))
		}
	}
	appendPawn := func(from, to int, captured Piece, flag uint8) {
		moved := p.pieces[from]
		if to/8 == 7 || to/8 == 0 {
			for _, pt := range promotionOrder {
				moves = append(moves, NewMove(Square(from), Square(to), moved, captured, PieceFromType(side, pt), flag))
			}
			return
		}
		moves = append(moves, NewMove(Square(from), Square(to), moved, captured, NoPiece, flag))
	}

	// Pawns
	forward, startRank := 8, 1
	if side == Black {
		forward, startRank = -8, 6
	}
	pawns := p.pawns[us]
	enemyPawn := PieceFromType(side.Other(), PieceTypePawn)
	epVictim := NoPiece
	if ep := p.enPassantSquare; ep != NoSquare {
		epVictim = p.pieces[int(ep)-forward]
	}
	for pawns != 0 {
		from := popLSB(&pawns)
		one := from + forward
		if (allOcc>>uint(one))&1 == 0 {
			appendPawn(from, one, NoPiece, FlagNone)
			two := one + forward
			if from/8 == startRank && (allOcc>>uint(two))&1 == 0 {
				appendPawn(from, two, NoPiece, FlagDoublePush)
			}
		}
		caps := pawnAttacks[us][from]
		for t := caps & oppOcc; t != 0; {
			to := popLSB(&t)
			appendPawn(from, to, p.pieces[to], FlagNone)
		}
		if ep := p.enPassantSquare; ep != NoSquare && caps&bb(ep) != 0 && epVictim == enemyPawn && p.pieces[ep] == NoPiece {
			appendPawn(from, int(ep), enemyPawn, FlagEnPassant)
		}
	}

	for knights := p.knights[us]; knights != 0; {
		from := popLSB(&knights)
		appendTargets(from, knightMoves[from]&^ownOcc)
	}
	for bishops := p.bishops[us]; bishops != 0; {
		from := popLSB(&bishops)
		appendTargets(from, bishopAttacks(from, allOcc)&^ownOcc)
	}
	for rooks := p.rooks[us]; rooks != 0; {
		from := popLSB(&rooks)
		appendTargets(from, rookAttacks(from, allOcc)&^ownOcc)
	}
	for queens := p.queens[us]; queens != 0; {
		from := popLSB(&queens)
		appendTargets(from, (rookAttacks(from, allOcc)|bishopAttacks(from, allOcc))&^ownOcc)
	}

	// King
	king := p.KingSquare(side)
	if king == NoSquare {
		return moves
	}
	appendTargets(int(king), kingMoves[king]&^ownOcc)

	// Castling (rights, empty path, rook at home); attacks are checked by LegalMoves.
	if side == White {
		if p.castlingRights&CastlingWhiteK != 0 && king == 4 &&
			p.pieces[5] == NoPiece && p.pieces[6] == NoPiece && p.pieces[7] == WhiteRook {
			moves = append(moves, NewMove(4, 6, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
		if p.castlingRights&CastlingWhiteQ != 0 && king == 4 &&
			p.pieces[1] == NoPiece && p.pieces[2] == NoPiece && p.pieces[3] == NoPiece && p.pieces[0] == WhiteRook {
			moves = append(moves, NewMove(4, 2, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
	} else {
		if p.castlingRights&CastlingBlackK != 0 && king == 60 &&
			p.pieces[61] == NoPiece && p.pieces[62] == NoPiece && p.pieces[63] == BlackRook {
			moves = append(moves, NewMove(60, 62, BlackKing, NoPiece, NoPiece, FlagCastle))
		}
		if p.castlingRights&CastlingBlackQ != 0 && king == 60 &&
			p.pieces[57] == NoPiece && p.pieces[58] == NoPiece && p.pieces[59] == NoPiece && p.pieces[56] == BlackRook {
			moves = append(moves, NewMove(60, 58, BlackKing, NoPiece, NoPiece, FlagCastle))
		}
	}
	return moves
}

// LegalMoves returns the pseudo-legal moves that do not leave the mover's king
// attacked. Castling is also dropped when the king starts in check or passes over
// an attacked square.
func (p *Position) LegalMoves() []Move {
	return p.legalMovesInto(make([]Move, 0, 64))
}

func (p *Position) legalMovesInto(dst []Move) []Move {
	pseudo := p.pseudoLegalMovesInto(dst)
	legal := pseudo[:0]
	side := p.sideToMove
	for _, m := range pseudo {
		if m.IsCastle() && !p.castlePathSafe(m) {
			continue
		}
		next := p.Apply(m)
		if next.IsSquareAttacked(next.KingSquare(side), side.Other()) {
			continue
		}
		legal = append(legal, m)
	}
	return legal
}

// castlePathSafe reports whether the king is not in check and does not cross an
// attacked square. The landing square is covered by the regular king test.
func (p *Position) castlePathSafe(m Move) bool {
	enemy := p.sideToMove.Other()
	from, to := m.From(), m.To()
	if p.IsSquareAttacked(from, enemy) {
		return false
	}
	return !p.IsSquareAttacked((from+to)/2, enemy)
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	var buf [64]Move
	return len(p.legalMovesInto(buf[:0])) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (p *Position) InCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (p *Position) InStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// Perft counts leaf nodes (move sequences) from the position for a given depth.
func Perft(p Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(&p, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 256)
		pc.bufs[depth] = buf
	}
	return buf[:0]
}

func perftRec(p *Position, depth int, pc *perftCtx) uint64 {
	moves := p.legalMovesInto(pc.bufFor(depth))
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := p.Apply(m)
		nodes += perftRec(&next, depth-1, pc)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf nodes
// reachable from that move at the given depth. Useful for debugging.
func PerftDivide(p Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.LegalMoves() {
		result[m] = Perft(p.Apply(m), depth-1)
	}
	return result
}
