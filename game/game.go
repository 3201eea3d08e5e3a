// Package game runs a console chess game between a human and a UCI engine.
package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"blind-chess/engine"
	"blind-chess/notation"
	"blind-chess/render"
	"blind-chess/rules"
)

// Engine is the opponent the game plays against. *engine.UCI implements it.
type Engine interface {
	SetPosition(fen string) error
	BestMove(ctx context.Context) (string, error)
	Evaluate(ctx context.Context, fen string) (engine.Score, error)
	RenderBoard() (string, error)
	Version() string
	Configure(opts engine.Options) error
	Close() error
}

var _ Engine = (*engine.UCI)(nil)

// Options configures a Game.
type Options struct {
	Start    rules.Position // must come from rules.ParseFEN
	Human    rules.Color
	Opponent Engine
	// Analyzer answers "info" evaluations; the opponent is used when nil.
	Analyzer Engine
	Console  *Console
	Log      zerolog.Logger
}

// turn produces at most one move for its color.
type turn func(ctx context.Context) error

// Game is one game from its starting position to a terminal outcome. It owns the
// record; nothing else mutates it.
type Game struct {
	rec      *rules.Record
	human    rules.Color
	opponent Engine
	analyzer Engine
	console  *Console
	log      zerolog.Logger
	state    State
	outcome  rules.Outcome
	turns    [2]turn
}

// New binds the human to a color and the engine to the other.
func New(opts Options) (*Game, error) {
	if opts.Opponent == nil {
		return nil, errors.New("game: no opponent engine")
	}
	if opts.Console == nil {
		return nil, errors.New("game: no console")
	}
	g := &Game{
		rec:      rules.NewRecord(opts.Start),
		human:    opts.Human,
		opponent: opts.Opponent,
		analyzer: opts.Analyzer,
		console:  opts.Console,
		log:      opts.Log.With().Str("component", "game").Logger(),
	}
	if g.analyzer == nil {
		g.analyzer = g.opponent
	}
	g.turns[g.human] = g.humanTurn
	g.turns[g.human.Other()] = g.engineTurn
	return g, nil
}

// State returns where the game is in its turn cycle.
func (g *Game) State() State { return g.state }

// Outcome returns the current outcome; Ongoing until the game ends.
func (g *Game) Outcome() rules.Outcome { return g.outcome }

// Position returns the current position.
func (g *Game) Position() rules.Position { return g.rec.Current() }

// Record returns the game record.
func (g *Game) Record() *rules.Record { return g.rec }

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	g.log.Debug().Stringer("from", g.state).Stringer("to", s).Msg("state")
	g.state = s
}

// Run plays until the game reaches a terminal outcome. Each round visits the White
// slot then the Black slot, skipping the color that is not on move, so a command
// typed by the human hands control straight back to the human. An error is
// returned only when the engine fails to produce a move.
func (g *Game) Run(ctx context.Context) (rules.Outcome, error) {
	if g.outcome = rules.Evaluate(g.rec); g.outcome.Terminal() {
		g.setState(Terminated)
		return g.outcome, nil
	}
	for {
		for c := rules.White; c <= rules.Black; c++ {
			cur := g.rec.Current()
			if cur.SideToMove() != c {
				continue
			}
			if err := g.turns[c](ctx); err != nil {
				g.setState(Terminated)
				g.log.Error().Err(err).Msg("game aborted")
				return g.outcome, err
			}
			if g.outcome.Terminal() {
				g.setState(Terminated)
				g.log.Info().Stringer("outcome", g.outcome).Int("plies", g.rec.Len()).Msg("game over")
				return g.outcome, nil
			}
		}
	}
}

func (g *Game) humanTurn(ctx context.Context) error {
	g.setState(AwaitingInput)
	pos := g.rec.Current()
	line, err := g.console.Ask(ctx, strconv.Itoa(pos.FullmoveNumber())+". Your move or command: ")
	if err != nil {
		g.log.Info().Err(err).Msg("input interrupted")
		g.resign()
		return nil
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return nil
	}

	m, moveErr := parseHumanMove(pos, text)
	if moveErr == nil {
		g.apply(m)
		return nil
	}

	g.setState(DispatchingCommand)
	if !g.dispatch(ctx, text) {
		err := fmt.Errorf("%w: %w", ErrUnknownCommand, moveErr)
		g.log.Debug().Err(err).Str("input", text).Msg("rejected input")
		errorColor.Fprintf(g.console.Out(), "😨 %v\n", err)
	}
	return nil
}

// parseHumanMove reads algebraic notation, falling back to coordinate notation.
// Text such as "g1f3" also fits the algebraic grammar as a pawn move, so the
// fallback runs on any algebraic failure. The algebraic error is reported when
// neither reading gives a legal move.
func parseHumanMove(pos rules.Position, text string) (rules.Move, error) {
	m, err := notation.DecodeSAN(pos, text)
	if err == nil {
		return m, nil
	}
	c, cerr := notation.ParseCoordinate(text)
	if cerr != nil {
		return rules.NoMove, err
	}
	if m, cerr := c.Resolve(pos); cerr == nil {
		return m, nil
	}
	return rules.NoMove, err
}

func (g *Game) engineTurn(ctx context.Context) error {
	g.setState(EngineThinking)
	pos := g.rec.Current()
	out := g.console.Out()
	fmt.Fprintf(out, "%s  Hmm....  ", strings.Repeat(" ", len(strconv.Itoa(pos.FullmoveNumber()))))

	if err := g.opponent.SetPosition(pos.FEN()); err != nil {
		fmt.Fprintln(out)
		return fmt.Errorf("engine position: %w", err)
	}
	reply, err := g.opponent.BestMove(ctx)
	if err != nil {
		fmt.Fprintln(out)
		if ctx.Err() != nil {
			g.log.Info().Err(ctx.Err()).Msg("interrupted while the engine was thinking")
			g.resign()
			return nil
		}
		return fmt.Errorf("engine move: %w", err)
	}
	c, err := notation.ParseCoordinate(reply)
	if err != nil {
		fmt.Fprintln(out)
		return fmt.Errorf("%w: unreadable engine move: %w", engine.ErrRuntime, err)
	}
	m, err := c.Resolve(pos)
	if err != nil {
		fmt.Fprintln(out)
		return fmt.Errorf("%w: engine played %w", engine.ErrRuntime, err)
	}

	fmt.Fprint(out, "My response: ")
	replyColor.Fprintln(out, notation.EncodeSAN(pos, m))
	g.apply(m)
	return nil
}

func (g *Game) apply(m rules.Move) {
	g.setState(ApplyingMove)
	pos := g.rec.Current()
	g.log.Debug().Str("move", m.String()).Str("side", pos.SideToMove().String()).Msg("apply")
	g.rec.Push(m)
	g.outcome = rules.Evaluate(g.rec)
}

func (g *Game) resign() {
	g.outcome = rules.Resigned
}

// dispatch runs a console command and reports whether text was one.
func (g *Game) dispatch(ctx context.Context, text string) bool {
	switch strings.ToLower(text) {
	case "h", "help":
		fmt.Fprint(g.console.Out(), helpText)
	case "b", "board":
		fmt.Fprint(g.console.Out(), g.board())
	case "i", "info":
		g.info(ctx)
	case "q", "quit", "exit":
		g.log.Info().Msg("player resigned")
		g.resign()
	default:
		return false
	}
	return true
}

const helpText = `     Enter a move in algebraic notation (e4, Nf3, exd5, O-O, e8=Q)
     or as coordinates (e2e4, e7e8q). Commands:
       h, help    show this text
       b, board   show the board
       i, info    check status, castling rights and evaluation
       q, quit    resign the game
`

// board renders the current position with the engine, or locally if the engine
// cannot.
func (g *Game) board() string {
	pos := g.rec.Current()
	text, err := g.engineBoard(pos.FEN())
	if err == nil {
		return text
	}
	g.log.Warn().Err(err).Msg("engine could not draw the board")
	g.console.Warn("     The engine could not draw the board (%v); using the plain board.", err)
	return render.Text(&pos)
}

func (g *Game) info(ctx context.Context) {
	out := g.console.Out()
	pos := g.rec.Current()
	if pos.InCheck() {
		fmt.Fprintln(out, "     In check!")
	}
	castle := "no"
	if pos.CanCastle(g.human) {
		castle = "yes"
	}
	fmt.Fprintln(out, "     Allowed to castle:", castle)

	score, err := g.analyzer.Evaluate(ctx, pos.FEN())
	if err != nil {
		g.log.Warn().Err(err).Msg("evaluation failed")
		g.console.Warn("     Evaluation: unavailable (%v)", err)
		return
	}
	fmt.Fprintln(out, "     Evaluation:", score)
}
