package rules_test

import (
	"testing"

	"blind-chess/rules"
)

func sq(t *testing.T, alg string) rules.Square {
	t.Helper()
	s, ok := rules.ParseSquare(alg)
	if !ok {
		t.Fatalf("bad square %q", alg)
	}
	return s
}

func TestApply_QuietMoveUpdatesState(t *testing.T) {
	b := mustParse(t, rules.StartFEN)
	next := b.Apply(findMove(t, b, "g1f3"))
	if !next.Validate() {
		t.Fatalf("invariants invalid after quiet move")
	}
	if next.PieceAt(sq(t, "g1")) != rules.NoPiece || next.PieceAt(sq(t, "f3")) != rules.WhiteKnight {
		t.Fatalf("knight not moved to f3")
	}
	if next.SideToMove() != rules.Black {
		t.Fatalf("side to move not toggled")
	}
	if next.HalfmoveClock() != 1 || next.FullmoveNumber() != 1 {
		t.Fatalf("clocks: got %d/%d want 1/1", next.HalfmoveClock(), next.FullmoveNumber())
	}
	if next.Hash() == b.Hash() {
		t.Fatalf("hash unchanged after move")
	}
}

func TestApply_DoublePushSetsEnPassant(t *testing.T) {
	b := mustParse(t, rules.StartFEN)
	m := findMove(t, b, "e2e4")
	if !m.IsDoublePush() {
		t.Fatalf("e2e4 should carry the double push flag")
	}
	next := b.Apply(m)
	if next.EnPassantSquare() != sq(t, "e3") {
		t.Fatalf("en passant square: got %s want e3", next.EnPassantSquare())
	}
	if got, want := next.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"; got != want {
		t.Fatalf("FEN after e4: got %q want %q", got, want)
	}
	after := next.Apply(findMove(t, next, "g8f6"))
	if after.EnPassantSquare() != rules.NoSquare {
		t.Fatalf("en passant square must clear after the reply")
	}
	if after.FullmoveNumber() != 2 {
		t.Fatalf("fullmove after Black's reply: got %d want 2", after.FullmoveNumber())
	}
}

func TestApply_EnPassantCapture(t *testing.T) {
	b := mustParse(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	m := findMove(t, b, "e5d6")
	if !m.IsEnPassant() || m.CapturedPiece() != rules.BlackPawn {
		t.Fatalf("expected en passant capture of a black pawn, got flag=%d cap=%v", m.Flags(), m.CapturedPiece())
	}
	next := b.Apply(m)
	if next.PieceAt(sq(t, "d5")) != rules.NoPiece {
		t.Fatalf("captured pawn still on d5")
	}
	if next.PieceAt(sq(t, "d6")) != rules.WhitePawn {
		t.Fatalf("capturing pawn not on d6")
	}
	if !next.Validate() {
		t.Fatalf("invariants invalid after en passant")
	}
}

func TestApply_CastlingMovesRook(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	short := b.Apply(findMove(t, b, "e1g1"))
	if short.PieceAt(sq(t, "f1")) != rules.WhiteRook || short.PieceAt(sq(t, "h1")) != rules.NoPiece {
		t.Fatalf("kingside castle did not move the rook to f1")
	}
	if short.CanCastle(rules.White) {
		t.Fatalf("White keeps castling rights after castling")
	}
	if !short.CanCastle(rules.Black) {
		t.Fatalf("Black lost castling rights after White castled")
	}

	long := short.Apply(findMove(t, short, "e8c8"))
	if long.PieceAt(sq(t, "d8")) != rules.BlackRook || long.PieceAt(sq(t, "a8")) != rules.NoPiece {
		t.Fatalf("queenside castle did not move the rook to d8")
	}
	if long.CastlingRights() != 0 {
		t.Fatalf("castling rights should be empty, got %d", long.CastlingRights())
	}
	if !long.Validate() {
		t.Fatalf("invariants invalid after castling")
	}
}

func TestApply_RookMovesAndCapturesClearRights(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	next := b.Apply(findMove(t, b, "h1h8"))
	if got, want := next.FEN(), "r3k2R/8/8/8/8/8/8/R3K3 b Qq - 0 1"; got != want {
		t.Fatalf("after Rxh8: got %q want %q", got, want)
	}
	next = next.Apply(findMove(t, next, "e8d7"))
	if next.CastlingRights() != rules.CastlingWhiteQ {
		t.Fatalf("only White queenside should remain, got %d", next.CastlingRights())
	}
}

func TestApply_Promotion(t *testing.T) {
	b := mustParse(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	for _, c := range []struct {
		uci  string
		want rules.Piece
	}{
		{"a7a8q", rules.WhiteQueen},
		{"a7a8n", rules.WhiteKnight},
		{"a7b8r", rules.WhiteRook},
	} {
		m := findMove(t, b, c.uci)
		next := b.Apply(m)
		if got := next.PieceAt(m.To()); got != c.want {
			t.Fatalf("%s: got %v want %v", c.uci, got, c.want)
		}
		if next.HalfmoveClock() != 0 {
			t.Fatalf("%s: halfmove clock not reset", c.uci)
		}
	}
}

func TestApply_HashMatchesRecompute(t *testing.T) {
	rec := rules.NewRecord(mustParse(t, kiwipeteFEN))
	play(t, rec, "e1g1", "e8c8", "d5e6", "b4c3", "e6f7", "c3d2")
	for i, p := range rec.Positions() {
		if p.Hash() != p.ComputeZobrist() {
			t.Fatalf("position %d: incremental hash diverged", i)
		}
		if !p.Validate() {
			t.Fatalf("position %d: invariants invalid", i)
		}
	}
}

func expectViolation(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("%s: expected a panic", name)
		}
		if _, ok := r.(rules.InvariantViolation); !ok {
			t.Fatalf("%s: panic value %T is not an InvariantViolation", name, r)
		}
	}()
	fn()
}

func TestApply_InvariantViolations(t *testing.T) {
	b := mustParse(t, rules.StartFEN)
	expectViolation(t, "empty origin", func() {
		b.Apply(rules.NewMove(sq(t, "e4"), sq(t, "e5"), rules.WhitePawn, rules.NoPiece, rules.NoPiece, rules.FlagNone))
	})
	expectViolation(t, "wrong side", func() {
		b.Apply(rules.NewMove(sq(t, "e7"), sq(t, "e5"), rules.BlackPawn, rules.NoPiece, rules.NoPiece, rules.FlagNone))
	})
	expectViolation(t, "own capture", func() {
		b.Apply(rules.NewMove(sq(t, "d1"), sq(t, "d2"), rules.WhiteQueen, rules.WhitePawn, rules.NoPiece, rules.FlagNone))
	})

	k := mustParse(t, "4k3/8/8/8/8/8/8/4KR2 w - - 0 1")
	expectViolation(t, "castle without rights", func() {
		k.Apply(rules.NewMove(sq(t, "e1"), sq(t, "g1"), rules.WhiteKing, rules.NoPiece, rules.NoPiece, rules.FlagCastle))
	})
}
