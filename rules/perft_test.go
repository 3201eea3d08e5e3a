package rules_test

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"blind-chess/rules"
)

const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3FEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4FEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
)

func mustParse(t testing.TB, fen string) rules.Position {
	t.Helper()
	p, err := rules.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return p
}

func TestPerftInitialPosition(t *testing.T) {
	board := mustParse(t, rules.StartFEN)
	if got := rules.Perft(board, 1); got != 20 {
		t.Fatalf("perft depth1: got %d want %d", got, 20)
	}
	if got := rules.Perft(board, 2); got != 400 {
		t.Fatalf("perft depth2: got %d want %d", got, 400)
	}
	if got := rules.Perft(board, 3); got != 8902 {
		t.Fatalf("perft depth3: got %d want %d", got, 8902)
	}
}

func TestPerftKiwipete(t *testing.T) {
	board := mustParse(t, kiwipeteFEN)
	if got := rules.Perft(board, 1); got != 48 {
		for _, m := range board.LegalMoves() {
			t.Logf("  %s mp=%v cap=%v flag=%d", m, m.MovedPiece(), m.CapturedPiece(), m.Flags())
		}
		t.Fatalf("Kiwipete depth1: got %d want %d", got, 48)
	}
	if got := rules.Perft(board, 2); got != 2039 {
		t.Fatalf("Kiwipete depth2: got %d want %d", got, 2039)
	}
	if testing.Short() {
		return
	}
	if got := rules.Perft(board, 3); got != 97862 {
		t.Fatalf("Kiwipete depth3: got %d want %d", got, 97862)
	}
}

func TestPerftPosition3(t *testing.T) {
	board := mustParse(t, position3FEN)
	want := []uint64{14, 191, 2812}
	for depth, n := range want {
		if got := rules.Perft(board, depth+1); got != n {
			t.Fatalf("position3 depth%d: got %d want %d", depth+1, got, n)
		}
	}
}

func TestPerftPosition4(t *testing.T) {
	board := mustParse(t, position4FEN)
	if got := rules.Perft(board, 1); got != 6 {
		t.Fatalf("position4 depth1: got %d want %d", got, 6)
	}
	if got := rules.Perft(board, 2); got != 264 {
		t.Fatalf("position4 depth2: got %d want %d", got, 264)
	}
}

func TestPerftPosition5(t *testing.T) {
	board := mustParse(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1")
	want := []uint64{44, 1486, 62379}
	for depth, n := range want {
		if got := rules.Perft(board, depth+1); got != n {
			t.Fatalf("Pos5 d%d: got %d want %d", depth+1, got, n)
		}
	}
}

func TestPerftPosition6(t *testing.T) {
	board := mustParse(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10")
	if got := rules.Perft(board, 1); got != 46 {
		t.Fatalf("Pos6 d1: got %d want %d", got, 46)
	}
	if got := rules.Perft(board, 2); got != 2079 {
		t.Fatalf("Pos6 d2: got %d want %d", got, 2079)
	}
	if testing.Short() {
		return
	}
	if got := rules.Perft(board, 3); got != 89890 {
		t.Fatalf("Pos6 d3: got %d want %d", got, 89890)
	}
}

func TestPerftEnPassantPosition(t *testing.T) {
	board := mustParse(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if got := rules.Perft(board, 1); got != 5 {
		t.Fatalf("EP depth1: got %d want %d", got, 5)
	}
	if got := rules.Perft(board, 2); got != 19 {
		t.Fatalf("EP depth2: got %d want %d", got, 19)
	}
}

func TestPerftPromotionPosition(t *testing.T) {
	board := mustParse(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	if got := rules.Perft(board, 1); got != 11 {
		t.Fatalf("Promotion depth1: got %d want %d", got, 11)
	}
}

func TestPerftDivide_InitialDepth2(t *testing.T) {
	div := rules.PerftDivide(mustParse(t, rules.StartFEN), 2)
	if len(div) != 20 {
		t.Fatalf("divide length: got %d want %d", len(div), 20)
	}
	var sum uint64
	for m, v := range div {
		sum += v
		if v != 20 {
			t.Fatalf("divide %s: got %d want 20", m, v)
		}
	}
	if sum != 400 {
		t.Fatalf("divide sum: got %d want %d", sum, 400)
	}
}

// The legal move lists must agree with dragontoothmg move for move.
func TestLegalMovesMatchDragontooth(t *testing.T) {
	fens := []string{
		rules.StartFEN,
		kiwipeteFEN,
		position3FEN,
		position4FEN,
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 3 20",
	}
	for _, fen := range fens {
		pos := mustParse(t, fen)
		ours := pos.LegalMoves()
		got := make([]string, 0, len(ours))
		for _, m := range ours {
			got = append(got, m.String())
		}

		ref := dragontoothmg.ParseFen(fen)
		theirs := ref.GenerateLegalMoves()
		want := make([]string, 0, len(theirs))
		for _, m := range theirs {
			want = append(want, m.String())
		}

		sort.Strings(got)
		sort.Strings(want)
		if len(got) != len(want) {
			t.Fatalf("%s: got %d moves %v, dragontoothmg has %d %v", fen, len(got), got, len(want), want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("%s: move lists differ at %d: %s vs %s", fen, i, got[i], want[i])
			}
		}
	}
}
