package game

import (
	"fmt"
	"io"
	"strings"

	"blind-chess/notation"
	"blind-chess/render"
	"blind-chess/rules"
)

// Summary prints the end-of-game report: the outcome banner, the final board, the
// final position string and, for games from the standard start, the move list.
func (g *Game) Summary(w io.Writer) {
	outcomeColor.Fprintf(w, "\n*** %s! ***\n\n", strings.ToUpper(g.outcome.String()))

	pos := g.rec.Current()
	if board, err := g.engineBoard(pos.FEN()); err != nil {
		g.log.Warn().Err(err).Msg("final board not drawn by engine")
		warnColor.Fprintf(w, "Could not draw the board due to a Stockfish error: %v\n", err)
		fmt.Fprint(w, render.Text(&pos))
	} else {
		fmt.Fprint(w, board)
	}

	fmt.Fprintln(w, "----- FEN: -----")
	fmt.Fprintln(w, pos.FEN())
	start := g.rec.Start()
	if start.FEN() == rules.StartFEN {
		fmt.Fprintln(w, "----- PGN: -----")
		fmt.Fprintln(w, notation.Transcript(start, g.rec.Moves()))
	}
	fmt.Fprintln(w, "----------------")
}

func (g *Game) engineBoard(fen string) (string, error) {
	if err := g.opponent.SetPosition(fen); err != nil {
		return "", err
	}
	return g.opponent.RenderBoard()
}
