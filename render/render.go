// Package render draws positions without the help of an engine: a plain text
// board for the console and an SVG diagram for export.
package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"blind-chess/rules"
)

const (
	squareSize = 48
	margin     = 24
	boardSize  = 8*squareSize + 2*margin
)

// glyphs maps pieces to their Unicode chess symbols.
var glyphs = map[rules.Piece]string{
	rules.WhiteKing: "♔", rules.WhiteQueen: "♕", rules.WhiteRook: "♖",
	rules.WhiteBishop: "♗", rules.WhiteKnight: "♘", rules.WhitePawn: "♙",
	rules.BlackKing: "♚", rules.BlackQueen: "♛", rules.BlackRook: "♜",
	rules.BlackBishop: "♝", rules.BlackKnight: "♞", rules.BlackPawn: "♟",
}

// Text draws the board from White's side with FEN letters, "." for empty squares,
// and rank and file labels.
func Text(pos *rules.Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(pos.PieceAt(rules.NewSquare(file, rank)).String())
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// Theme holds the SVG colors.
type Theme struct {
	Light string
	Dark  string
	Label string
}

// DefaultTheme is a brown wooden board.
var DefaultTheme = Theme{Light: "#f0d9b5", Dark: "#b58863", Label: "#555555"}

// SVG writes a diagram of pos to w.
func SVG(w io.Writer, pos *rules.Position, theme Theme) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(boardSize, boardSize)
	canvas.Rect(0, 0, boardSize, boardSize, "fill:white")
	for rank := 7; rank >= 0; rank-- {
		y := margin + (7-rank)*squareSize
		canvas.Text(margin/2, y+squareSize/2+5, fmt.Sprint(rank+1), labelStyle(theme))
		for file := 0; file < 8; file++ {
			x := margin + file*squareSize
			fill := theme.Light
			if (file+rank)%2 == 0 {
				fill = theme.Dark
			}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+fill)
			if g, ok := glyphs[pos.PieceAt(rules.NewSquare(file, rank))]; ok {
				canvas.Text(x+squareSize/2, y+squareSize-10, g, "text-anchor:middle;font-size:38px")
			}
		}
	}
	for file := 0; file < 8; file++ {
		x := margin + file*squareSize + squareSize/2
		canvas.Text(x, boardSize-margin/4, string(rune('a'+file)), labelStyle(theme))
	}
	canvas.End()
	return ew.err
}

func labelStyle(t Theme) string {
	return "text-anchor:middle;font-size:14px;font-family:sans-serif;fill:" + t.Label
}

// errWriter keeps the first write error; svgo ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
