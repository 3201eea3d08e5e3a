package engine

import (
	"strconv"
	"time"
)

// Options is the engine configuration. It is built once at startup and never
// mutated afterwards; Configure takes a copy.
type Options struct {
	Threads         int
	Hash            int // MB
	MultiPV         int
	SkillLevel      int
	LimitStrength   bool
	Elo             int
	MoveOverhead    int // ms
	MinThinkingTime int // ms
	SlowMover       int
	Contempt        int
	Ponder          bool

	// Deterministic forces a single thread, no pondering and a fixed search depth so
	// the same position always gets the same reply.
	Deterministic bool
	MoveTime      time.Duration
	Depth         int
	// ThinkCeiling bounds every search; a search that runs past it is abandoned.
	ThinkCeiling time.Duration
}

// deterministicDepth is the search depth used when Deterministic is set and no
// explicit Depth is given.
const deterministicDepth = 10

// DefaultOptions returns the settings the game has always shipped with.
func DefaultOptions() Options {
	return Options{
		Threads:         4,
		Hash:            16,
		MultiPV:         1,
		SkillLevel:      1,
		LimitStrength:   true,
		Elo:             1350,
		MoveOverhead:    10,
		MinThinkingTime: 2,
		SlowMover:       100,
		Contempt:        0,
		Ponder:          true,
		MoveTime:        time.Second,
		ThinkCeiling:    30 * time.Second,
	}
}

// Analysis returns a copy of o tuned for a full-strength evaluator at the given
// rating.
func (o Options) Analysis(elo int) Options {
	o.Elo = elo
	o.SkillLevel = 20
	return o
}

// setOptions maps the configuration to UCI option names and values.
func (o Options) setOptions() map[string]string {
	threads, ponder := o.Threads, o.Ponder
	if o.Deterministic {
		threads, ponder = 1, false
	}
	return map[string]string{
		"Threads":               strconv.Itoa(threads),
		"Hash":                  strconv.Itoa(o.Hash),
		"MultiPV":               strconv.Itoa(o.MultiPV),
		"Skill Level":           strconv.Itoa(o.SkillLevel),
		"UCI_LimitStrength":     strconv.FormatBool(o.LimitStrength),
		"UCI_Elo":               strconv.Itoa(o.Elo),
		"Move Overhead":         strconv.Itoa(o.MoveOverhead),
		"Minimum Thinking Time": strconv.Itoa(o.MinThinkingTime),
		"Slow Mover":            strconv.Itoa(o.SlowMover),
		"Contempt":              strconv.Itoa(o.Contempt),
		"Ponder":                strconv.FormatBool(ponder),
	}
}

// searchDepth returns the fixed depth to search to, or 0 for a timed search.
func (o Options) searchDepth() int {
	if o.Depth > 0 {
		return o.Depth
	}
	if o.Deterministic {
		return deterministicDepth
	}
	return 0
}
