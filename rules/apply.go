package rules

// castleRook returns the rook's origin and destination for a castling king move.
func castleRook(kingTo Square) (from, to Square) {
	switch kingTo {
	case 6: // g1
		return 7, 5
	case 2: // c1
		return 0, 3
	case 62: // g8
		return 63, 61
	case 58: // c8
		return 56, 59
	}
	return NoSquare, NoSquare
}

// rookHomeRights maps a rook home square to the castling right it guards.
func rookHomeRights(sq Square) CastlingRights {
	switch sq {
	case 0:
		return CastlingWhiteQ
	case 7:
		return CastlingWhiteK
	case 56:
		return CastlingBlackQ
	case 63:
		return CastlingBlackK
	}
	return 0
}

// Apply returns the position reached by playing m. Legality is not checked here;
// that is the move generator's job. Apply panics with an InvariantViolation when the
// move is structurally impossible: endpoints off the board, an empty or enemy origin
// square, or a king being captured.
func (p Position) Apply(m Move) Position {
	p.makeMove(m)
	return p
}

// makeMove mutates the receiver in place. Callers wanting a successor use Apply.
func (p *Position) makeMove(m Move) {
	from := m.From()
	to := m.To()
	if !from.Valid() || !to.Valid() || from == to {
		violate("move %s has invalid endpoints", m)
	}
	moved := p.pieces[from]
	if moved == NoPiece || colorOf(moved) != p.sideToMove {
		violate("move %s does not start on a %s piece", m, p.sideToMove)
	}
	us := p.sideToMove
	flag := m.Flags()

	// Remove previous en passant from Zobrist if present
	if p.enPassantSquare != NoSquare {
		p.zobristKey ^= zobristEnPassant[p.enPassantSquare.File()]
	}
	p.enPassantSquare = NoSquare

	// Handle capture (including en passant)
	var captured Piece
	if flag == FlagEnPassant {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		captured = p.removePiece(capSq)
	} else {
		captured = p.pieces[to]
		if captured != NoPiece && colorOf(captured) == us {
			violate("move %s captures its own piece", m)
		}
		p.removePiece(to)
	}
	if captured.Type() == PieceTypeKing {
		violate("move %s captures the %s king", m, us.Other())
	}

	// Move the piece (or promote)
	p.removePiece(from)
	if promo := m.PromotionPieceType(); promo != PieceTypeNone {
		p.addPiece(to, PieceFromType(us, promo))
	} else {
		p.addPiece(to, moved)
	}

	// Castling rook movement
	if flag == FlagCastle {
		rFrom, rTo := castleRook(to)
		if rFrom == NoSquare || p.pieces[rFrom].Type() != PieceTypeRook {
			violate("castling move %s has no rook to move", m)
		}
		p.movePiece(rFrom, rTo)
	}

	// Update castling rights
	newCR := p.castlingRights
	if moved.Type() == PieceTypeKing {
		if us == White {
			newCR &^= CastlingWhiteK | CastlingWhiteQ
		} else {
			newCR &^= CastlingBlackK | CastlingBlackQ
		}
	}
	if moved.Type() == PieceTypeRook {
		newCR &^= rookHomeRights(from)
	}
	// Rook captured on original squares removes rights
	if captured.Type() == PieceTypeRook {
		newCR &^= rookHomeRights(to)
	}
	if newCR != p.castlingRights {
		p.zobristKey ^= zobristCastle[int(p.castlingRights)]
		p.zobristKey ^= zobristCastle[int(newCR)]
		p.castlingRights = newCR
	}

	// Set en passant square if double pawn push
	if moved.Type() == PieceTypePawn && (to.Rank()-from.Rank() == 2 || from.Rank()-to.Rank() == 2) {
		ep := (from + to) / 2
		p.enPassantSquare = ep
		p.zobristKey ^= zobristEnPassant[ep.File()]
	}

	if moved.Type() == PieceTypePawn || captured != NoPiece {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if us == Black {
		p.fullmoveNumber++
	}

	p.sideToMove = us.Other()
	p.zobristKey ^= zobristSide

	if p.kings[White] == 0 || p.kings[Black] == 0 {
		violate("move %s left a side without a king", m)
	}
}
