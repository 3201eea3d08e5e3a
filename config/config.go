// Package config turns command-line flags and BLINDCHESS_* environment variables
// into one immutable Config value.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"blind-chess/engine"
	"blind-chess/rules"
)

// ErrInvalid is returned for flag or environment values that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the startup configuration. Zero Side and Elo mean "ask the player".
type Config struct {
	EnginePath    string
	Side          string
	Elo           int
	Skill         int
	Threads       int
	Hash          int
	MoveTime      time.Duration
	ThinkCeiling  time.Duration
	Deterministic bool
	AnalysisElo   int
	SVGPath       string
	LogLevel      zerolog.Level
	LogFile       string
	NoColor       bool
	Seed          int64
	StartFEN      string
}

// Load parses args (without the program name). getenv supplies environment
// fallbacks for every flag and is usually os.Getenv. Remaining positional
// arguments form the starting position; its six fields may come as one quoted
// argument or as six. Usage and flag errors are written to output.
func Load(args []string, getenv func(string) string, output io.Writer) (Config, error) {
	env := envReader{getenv: getenv}
	def := engine.DefaultOptions()

	fs := flag.NewFlagSet("blind-chess", flag.ContinueOnError)
	fs.SetOutput(output)
	var (
		enginePath    = fs.String("engine", env.str("BLINDCHESS_ENGINE", "stockfish"), "path to a UCI engine binary")
		side          = fs.String("side", env.str("BLINDCHESS_SIDE", ""), "your color: w/white, b/black or r/random (prompted when empty)")
		elo           = fs.Int("elo", env.integer("BLINDCHESS_ELO", 0), "opponent rating (prompted when 0)")
		skill         = fs.Int("skill", env.integer("BLINDCHESS_SKILL", def.SkillLevel), "engine skill level")
		threads       = fs.Int("threads", env.integer("BLINDCHESS_THREADS", def.Threads), "engine search threads")
		hash          = fs.Int("hash", env.integer("BLINDCHESS_HASH", def.Hash), "engine hash table size in MB")
		moveTime      = fs.Duration("movetime", env.duration("BLINDCHESS_MOVETIME", def.MoveTime), "time the engine spends per move")
		thinkCeiling  = fs.Duration("think-ceiling", env.duration("BLINDCHESS_THINK_CEILING", def.ThinkCeiling), "abandon a search that takes longer than this")
		deterministic = fs.Bool("deterministic", env.boolean("BLINDCHESS_DETERMINISTIC", false), "single thread, fixed depth, no pondering")
		analysisElo   = fs.Int("analysis-elo", env.integer("BLINDCHESS_ANALYSIS_ELO", 3500), "rating of the engine used by 'info' (0 reuses the opponent)")
		svgPath       = fs.String("svg", env.str("BLINDCHESS_SVG", ""), "write the final position as SVG to this file")
		logLevel      = fs.String("log-level", env.str("BLINDCHESS_LOG_LEVEL", "warn"), "log level: trace, debug, info, warn, error")
		logFile       = fs.String("log-file", env.str("BLINDCHESS_LOG_FILE", ""), "write JSON logs to this file instead of stderr")
		noColor       = fs.Bool("no-color", env.str("NO_COLOR", "") != "", "disable colored output")
		seed          = fs.Int64("seed", env.integer64("BLINDCHESS_SEED", 0), "random seed for side selection (0 uses the clock)")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if env.err != nil {
		return Config{}, env.err
	}

	level, err := zerolog.ParseLevel(strings.ToLower(*logLevel))
	if err != nil {
		return Config{}, fmt.Errorf("%w: log level %q", ErrInvalid, *logLevel)
	}

	cfg := Config{
		EnginePath:    *enginePath,
		Side:          strings.ToLower(strings.TrimSpace(*side)),
		Elo:           *elo,
		Skill:         *skill,
		Threads:       *threads,
		Hash:          *hash,
		MoveTime:      *moveTime,
		ThinkCeiling:  *thinkCeiling,
		Deterministic: *deterministic,
		AnalysisElo:   *analysisElo,
		SVGPath:       *svgPath,
		LogLevel:      level,
		LogFile:       *logFile,
		NoColor:       *noColor,
		Seed:          *seed,
		StartFEN:      strings.Join(fs.Args(), " "),
	}
	if cfg.StartFEN == "" {
		cfg.StartFEN = rules.StartFEN
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.EnginePath == "":
		return fmt.Errorf("%w: empty engine path", ErrInvalid)
	case c.Elo < 0 || c.AnalysisElo < 0:
		return fmt.Errorf("%w: ratings cannot be negative", ErrInvalid)
	case c.Threads < 1:
		return fmt.Errorf("%w: threads must be at least 1", ErrInvalid)
	case c.Hash < 1:
		return fmt.Errorf("%w: hash must be at least 1 MB", ErrInvalid)
	case c.MoveTime <= 0:
		return fmt.Errorf("%w: movetime must be positive", ErrInvalid)
	case c.ThinkCeiling < 0:
		return fmt.Errorf("%w: think ceiling cannot be negative", ErrInvalid)
	}
	return nil
}

// EngineOptions builds the opponent's engine options for the given rating.
func (c Config) EngineOptions(elo int) engine.Options {
	o := engine.DefaultOptions()
	o.SkillLevel = c.Skill
	o.Threads = c.Threads
	o.Hash = c.Hash
	o.MoveTime = c.MoveTime
	o.ThinkCeiling = c.ThinkCeiling
	o.Deterministic = c.Deterministic
	if elo > 0 {
		o.Elo = elo
	}
	return o
}

// UseColor reports whether colored output should be written to the terminal
// behind fd.
func (c Config) UseColor(fd uintptr) bool {
	return !c.NoColor && term.IsTerminal(int(fd))
}

// envReader reads typed environment values and remembers the first bad one.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) str(key, def string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *envReader) fail(key, v string) {
	if e.err == nil {
		e.err = fmt.Errorf("%w: %s=%q", ErrInvalid, key, v)
	}
}

func (e *envReader) integer(key string, def int) int {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v)
		return def
	}
	return n
}

func (e *envReader) integer64(key string, def int64) int64 {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(key, v)
		return def
	}
	return n
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v)
		return def
	}
	return d
}

func (e *envReader) boolean(key string, def bool) bool {
	switch strings.ToLower(e.str(key, "")) {
	case "":
		return def
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	}
	e.fail(key, e.getenv(key))
	return def
}
