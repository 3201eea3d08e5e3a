package engine

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// UCI drives an external engine process over the Universal Chess Interface.
// It is not safe for concurrent use; the game calls it from one goroutine.
type UCI struct {
	eng    *uci.Engine
	log    zerolog.Logger
	opts   Options
	pos    *chess.Position
	closed bool
}

// Open starts the engine at path, performs the UCI handshake and applies opts.
// Any failure is reported as ErrUnavailable and leaves no process behind.
func Open(path string, opts Options, log zerolog.Logger) (*UCI, error) {
	log = log.With().Str("component", "engine").Str("path", path).Logger()

	engineOpts := []func(*uci.Engine){uci.Logger(stdlog.New(log.Level(zerolog.TraceLevel), "", 0))}
	if log.GetLevel() <= zerolog.TraceLevel {
		engineOpts = append(engineOpts, uci.Debug)
	}
	eng, err := uci.New(path, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	e := &UCI{eng: eng, log: log}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		e.Close()
		return nil, fmt.Errorf("%w: handshake with %s: %v", ErrUnavailable, path, err)
	}
	if err := e.Configure(opts); err != nil {
		e.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	log.Info().Str("id", e.Version()).Msg("engine ready")
	return e, nil
}

// Session opens an engine, hands it to fn and always releases it afterwards.
func Session(path string, opts Options, log zerolog.Logger, fn func(*UCI) error) (err error) {
	e, err := Open(path, opts, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(e)
}

// Configure sends the options the engine advertises, in name order. Options the
// engine does not know are skipped.
func (e *UCI) Configure(opts Options) error {
	if e.closed {
		return fmt.Errorf("%w: engine closed", ErrRuntime)
	}
	advertised := e.eng.Options()
	settings := opts.setOptions()
	names := maps.Keys(settings)
	slices.Sort(names)

	cmds := make([]uci.Cmd, 0, len(names)+1)
	for _, name := range names {
		if _, ok := advertised[name]; !ok {
			e.log.Debug().Str("option", name).Msg("option not supported, skipped")
			continue
		}
		cmds = append(cmds, uci.CmdSetOption{Name: name, Value: settings[name]})
	}
	cmds = append(cmds, uci.CmdIsReady)
	if err := e.eng.Run(cmds...); err != nil {
		return fmt.Errorf("%w: setoption: %v", ErrRuntime, err)
	}
	e.opts = opts
	return nil
}

// SetPosition makes fen the position searched by BestMove and drawn by RenderBoard.
func (e *UCI) SetPosition(fen string) error {
	pos, err := parsePosition(fen)
	if err != nil {
		return err
	}
	e.pos = pos
	return nil
}

func parsePosition(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: position %q: %v", ErrRuntime, fen, err)
	}
	return chess.NewGame(opt).Position(), nil
}

// BestMove searches the current position and returns the reply in coordinate
// notation.
func (e *UCI) BestMove(ctx context.Context) (string, error) {
	if e.pos == nil {
		return "", fmt.Errorf("%w: no position set", ErrRuntime)
	}
	res, err := e.search(ctx, e.pos)
	if err != nil {
		return "", err
	}
	if res.BestMove == nil {
		return "", fmt.Errorf("%w: engine returned no move", ErrRuntime)
	}
	move := chess.UCINotation{}.Encode(e.pos, res.BestMove)
	e.log.Debug().Str("move", move).Msg("best move")
	return move, nil
}

// Evaluate searches fen and returns its score from White's point of view. The
// position used by BestMove is left alone.
func (e *UCI) Evaluate(ctx context.Context, fen string) (Score, error) {
	pos, err := parsePosition(fen)
	if err != nil {
		return Score{}, err
	}
	res, err := e.search(ctx, pos)
	if err != nil {
		return Score{}, err
	}
	s := res.Info.Score
	return whitePOV(s.CP, s.Mate, pos.Turn() == chess.Black), nil
}

// search runs one "position" + "go" exchange. The exchange runs on its own
// goroutine so that the think ceiling and ctx can abandon a hung engine; the
// process is closed in that case and the adapter becomes unusable.
func (e *UCI) search(ctx context.Context, pos *chess.Position) (uci.SearchResults, error) {
	if e.closed {
		return uci.SearchResults{}, fmt.Errorf("%w: engine closed", ErrRuntime)
	}
	if e.opts.ThinkCeiling > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.ThinkCeiling)
		defer cancel()
	}

	cmdGo := uci.CmdGo{MoveTime: e.opts.MoveTime}
	if depth := e.opts.searchDepth(); depth > 0 {
		cmdGo = uci.CmdGo{Depth: depth}
	}

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- e.eng.Run(uci.CmdPosition{Position: pos}, cmdGo)
	}()

	select {
	case err := <-done:
		if err != nil {
			return uci.SearchResults{}, fmt.Errorf("%w: search: %v", ErrRuntime, err)
		}
	case <-ctx.Done():
		e.log.Warn().Dur("elapsed", time.Since(start)).Msg("search abandoned, stopping engine")
		e.Close()
		return uci.SearchResults{}, fmt.Errorf("%w: search abandoned: %v", ErrRuntime, ctx.Err())
	}
	e.log.Debug().Dur("elapsed", time.Since(start)).Msg("search finished")
	return e.eng.SearchResults(), nil
}

// RenderBoard draws the current position as text.
func (e *UCI) RenderBoard() (string, error) {
	if e.closed {
		return "", fmt.Errorf("%w: engine closed", ErrRuntime)
	}
	if e.pos == nil {
		return "", fmt.Errorf("%w: no position set", ErrRuntime)
	}
	return e.pos.Board().Draw(), nil
}

// Version returns the engine's self-reported name, e.g. "Stockfish 16".
func (e *UCI) Version() string {
	name := strings.TrimSpace(e.eng.ID()["name"])
	if name == "" {
		return "unknown engine"
	}
	return name
}

// Close stops the engine process. It is safe to call more than once; a process
// that is already gone is not an error.
func (e *UCI) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	err := e.eng.Close()
	if err == nil || errors.Is(err, os.ErrProcessDone) || errors.Is(err, os.ErrClosed) {
		return nil
	}
	return fmt.Errorf("%w: close: %v", ErrRuntime, err)
}
