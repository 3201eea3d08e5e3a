package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"blind-chess/config"
	"blind-chess/engine"
	"blind-chess/game"
	"blind-chess/render"
	"blind-chess/rules"
)

const splash = `
 ____  __    __  __ _  ____     ___  _  _  ____  ____  ____
(  _ \(  )  (  )(  ( \(    \   / __)/ )( \(  __)/ ___)/ ___)
 ) _ (/ (_/\ )( /    / ) D (  ( (__ ) __ ( ) _) \___ \\___ \
(____/\____/(__)\_)__)(____/   \___)\_)(_/(____)(____/(____/
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Getenv))
}

// run plays one game and returns the process exit code.
func run(args []string, stdin io.Reader, stdout io.Writer, getenv func(string) string) int {
	cfg, err := config.Load(args, getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	color.NoColor = !cfg.UseColor(os.Stdout.Fd())

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeLog()
	name := petname.Generate(2, "-")
	log = log.With().Str("game_id", uuid.NewString()).Str("game_name", name).Logger()

	fmt.Fprintln(stdout, splash)

	start, err := rules.ParseFEN(cfg.StartFEN)
	if err != nil {
		log.Error().Err(err).Str("fen", cfg.StartFEN).Msg("bad start position")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	console := game.NewConsole(stdin, stdout)
	err = engine.Session(cfg.EnginePath, cfg.EngineOptions(0), log, func(opponent *engine.UCI) error {
		return play(ctx, cfg, start, name, console, opponent, log)
	})
	if err != nil {
		log.Error().Err(err).Msg("game failed")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func play(ctx context.Context, cfg config.Config, start rules.Position, name string, console *game.Console, opponent *engine.UCI, log zerolog.Logger) error {
	human, err := chooseSide(ctx, cfg, console)
	if err != nil {
		return err
	}
	elo := chooseElo(ctx, cfg, console)
	if err := opponent.Configure(cfg.EngineOptions(elo)); err != nil {
		return err
	}

	var analyzer game.Engine
	if cfg.AnalysisElo > 0 {
		a, err := engine.Open(cfg.EnginePath, cfg.EngineOptions(0).Analysis(cfg.AnalysisElo), log.With().Str("role", "analyzer").Logger())
		if err != nil {
			log.Warn().Err(err).Msg("analyzer unavailable, evaluating with the opponent")
		} else {
			defer a.Close()
			analyzer = a
		}
	}

	out := console.Out()
	fmt.Fprintf(out, "%s (game %s)\n\n", welcome(opponent.Version(), cfg.EngineOptions(elo).Elo), name)

	g, err := game.New(game.Options{
		Start:    start,
		Human:    human,
		Opponent: opponent,
		Analyzer: analyzer,
		Console:  console,
		Log:      log,
	})
	if err != nil {
		return err
	}
	_, runErr := g.Run(ctx)
	g.Summary(out)

	if cfg.SVGPath != "" {
		if err := exportSVG(cfg.SVGPath, g.Position()); err != nil {
			log.Warn().Err(err).Str("path", cfg.SVGPath).Msg("svg export failed")
		}
	}
	return runErr
}

func chooseSide(ctx context.Context, cfg config.Config, console *game.Console) (rules.Color, error) {
	choice := cfg.Side
	if choice == "" {
		line, err := console.Ask(ctx, "Play as (w)hite, (b)lack or (r)andom? ")
		if err != nil {
			return rules.White, fmt.Errorf("%w: %v", game.ErrInvalidSide, err)
		}
		choice = line
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return game.ResolveSide(choice, rand.New(rand.NewSource(seed)))
}

// chooseElo returns the configured rating, or asks for one. Blank or unreadable
// answers keep the default.
func chooseElo(ctx context.Context, cfg config.Config, console *game.Console) int {
	if cfg.Elo > 0 {
		return cfg.Elo
	}
	def := engine.DefaultOptions().Elo
	line, err := console.Ask(ctx, fmt.Sprintf("Opponent elo [%d]: ", def))
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	elo, err := strconv.Atoi(line)
	if err != nil || elo <= 0 {
		console.Warn("Not a rating: %q, playing at %d.", line, def)
		return def
	}
	return elo
}

// welcome introduces the opponent, e.g. "Opponent: Stockfish 16 with elo 1350".
func welcome(version string, elo int) string {
	fields := strings.Fields(version)
	if len(fields) >= 2 && strings.EqualFold(fields[0], "stockfish") {
		major, _, _ := strings.Cut(fields[1], ".")
		return fmt.Sprintf("Opponent: Stockfish %s with elo %d", major, elo)
	}
	return fmt.Sprintf("Opponent: %s with elo %d", version, elo)
}

func exportSVG(path string, pos rules.Position) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.SVG(f, &pos, render.DefaultTheme); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// newLogger builds the root logger: a console writer on stderr, or JSON lines
// appended to the configured log file.
func newLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		log := zerolog.New(f).Level(cfg.LogLevel).With().Timestamp().Logger()
		return log, func() { f.Close() }, nil
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: !cfg.UseColor(os.Stderr.Fd())}
	return zerolog.New(w).Level(cfg.LogLevel).With().Timestamp().Logger(), func() {}, nil
}
