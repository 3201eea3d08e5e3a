package render_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blind-chess/render"
	"blind-chess/rules"
)

func TestTextStartPosition(t *testing.T) {
	pos := rules.MustParseFEN(rules.StartFEN)
	want := strings.Join([]string{
		"8 r n b q k b n r",
		"7 p p p p p p p p",
		"6 . . . . . . . .",
		"5 . . . . . . . .",
		"4 . . . . . . . .",
		"3 . . . . . . . .",
		"2 P P P P P P P P",
		"1 R N B Q K B N R",
		"  a b c d e f g h",
		"",
	}, "\n")
	assert.Equal(t, want, render.Text(&pos))
}

func TestSVG(t *testing.T) {
	pos := rules.MustParseFEN("k7/8/1QK5/8/8/8/8/8 b - - 0 1")
	var buf bytes.Buffer
	require.NoError(t, render.SVG(&buf, &pos, render.DefaultTheme))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Equal(t, 64, strings.Count(out, "fill:"+render.DefaultTheme.Light)+strings.Count(out, "fill:"+render.DefaultTheme.Dark))
	for _, g := range []string{"♚", "♕", "♔"} {
		assert.Contains(t, out, g)
	}
	assert.NotContains(t, out, "♟")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSVGReportsWriteErrors(t *testing.T) {
	pos := rules.MustParseFEN(rules.StartFEN)
	err := render.SVG(failingWriter{}, &pos, render.DefaultTheme)
	assert.EqualError(t, err, "disk full")
}
