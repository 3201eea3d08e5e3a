package bench

import (
	"testing"

	"blind-chess/notation"
	"blind-chess/rules"
)

func benchLegalMoves(b *testing.B, fen string) {
	board, err := rules.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.LegalMoves()
	}
}

func BenchmarkLegalMoves_Initial(b *testing.B) {
	benchLegalMoves(b, rules.StartFEN)
}

func BenchmarkLegalMoves_Kiwipete(b *testing.B) {
	benchLegalMoves(b, kiwipeteFEN)
}

func BenchmarkLegalMoves_Pos6(b *testing.B) {
	benchLegalMoves(b, pos6FEN)
}

func BenchmarkPseudoLegalMoves_EP(b *testing.B) {
	board, err := rules.ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.PseudoLegalMoves()
	}
}

func BenchmarkApply_AllMoves_Initial(b *testing.B) {
	board, err := rules.ParseFEN(rules.StartFEN)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	moves := board.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			_ = board.Apply(m)
		}
	}
}

func BenchmarkEncodeSAN_Kiwipete(b *testing.B) {
	board, err := rules.ParseFEN(kiwipeteFEN)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	moves := board.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			_ = notation.EncodeSAN(board, m)
		}
	}
}

func BenchmarkDecodeSAN_Kiwipete(b *testing.B) {
	board, err := rules.ParseFEN(kiwipeteFEN)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	var texts []string
	for _, m := range board.LegalMoves() {
		texts = append(texts, notation.EncodeSAN(board, m))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, s := range texts {
			if _, err := notation.DecodeSAN(board, s); err != nil {
				b.Fatalf("DecodeSAN(%q): %v", s, err)
			}
		}
	}
}
