package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blind-chess/config"
	"blind-chess/game"
	"blind-chess/rules"
)

func noEnv(string) string { return "" }

func TestRunExitCodes(t *testing.T) {
	cases := map[string]struct {
		args []string
		want int
	}{
		"help":           {[]string{"-h"}, 0},
		"unknown flag":   {[]string{"-bogus"}, 1},
		"bad position":   {[]string{"-engine", "/nonexistent/engine", "not a position"}, 1},
		"missing engine": {[]string{"-engine", "/nonexistent/engine", "-side", "w", "-elo", "1500"}, 1},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, c.want, run(c.args, strings.NewReader(""), &out, noEnv))
		})
	}
}

func TestWelcome(t *testing.T) {
	assert.Equal(t, "Opponent: Stockfish 16 with elo 1350", welcome("Stockfish 16", 1350))
	assert.Equal(t, "Opponent: Stockfish 16 with elo 2000", welcome("Stockfish 16.1", 2000))
	assert.Equal(t, "Opponent: Komodo 14 with elo 1500", welcome("Komodo 14", 1500))
}

func console(input string) *game.Console {
	return game.NewConsole(strings.NewReader(input), io.Discard)
}

func TestChooseSide(t *testing.T) {
	ctx := context.Background()

	c, err := chooseSide(ctx, config.Config{Side: "b"}, console(""))
	require.NoError(t, err)
	assert.Equal(t, rules.Black, c)

	c, err = chooseSide(ctx, config.Config{}, console("white\n"))
	require.NoError(t, err)
	assert.Equal(t, rules.White, c)

	_, err = chooseSide(ctx, config.Config{}, console("x\n"))
	assert.True(t, errors.Is(err, game.ErrInvalidSide))

	_, err = chooseSide(ctx, config.Config{}, console(""))
	assert.True(t, errors.Is(err, game.ErrInvalidSide), "no answer is not a side")

	a, err := chooseSide(ctx, config.Config{Side: "r", Seed: 7}, console(""))
	require.NoError(t, err)
	b, err := chooseSide(ctx, config.Config{Side: "r", Seed: 7}, console(""))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestChooseElo(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, 2100, chooseElo(ctx, config.Config{Elo: 2100}, console("")))
	assert.Equal(t, 1800, chooseElo(ctx, config.Config{}, console("1800\n")))
	assert.Equal(t, 1350, chooseElo(ctx, config.Config{}, console("\n")))
	assert.Equal(t, 1350, chooseElo(ctx, config.Config{}, console("strong\n")))
	assert.Equal(t, 1350, chooseElo(ctx, config.Config{}, console("")))
}

func TestExportSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final.svg")
	require.NoError(t, exportSVG(path, rules.MustParseFEN(rules.StartFEN)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "</svg>")

	assert.Error(t, exportSVG(filepath.Join(t.TempDir(), "missing", "final.svg"), rules.MustParseFEN(rules.StartFEN)))
}
