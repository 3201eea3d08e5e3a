package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 4, o.Threads)
	assert.Equal(t, 16, o.Hash)
	assert.Equal(t, 1350, o.Elo)
	assert.True(t, o.LimitStrength)
	assert.True(t, o.Ponder)
	assert.Equal(t, 30*time.Second, o.ThinkCeiling)

	got := o.setOptions()
	assert.Equal(t, map[string]string{
		"Threads":               "4",
		"Hash":                  "16",
		"MultiPV":               "1",
		"Skill Level":           "1",
		"UCI_LimitStrength":     "true",
		"UCI_Elo":               "1350",
		"Move Overhead":         "10",
		"Minimum Thinking Time": "2",
		"Slow Mover":            "100",
		"Contempt":              "0",
		"Ponder":                "true",
	}, got)
}

func TestDeterministicOverrides(t *testing.T) {
	o := DefaultOptions()
	o.Deterministic = true
	set := o.setOptions()
	assert.Equal(t, "1", set["Threads"])
	assert.Equal(t, "false", set["Ponder"])
	assert.Equal(t, deterministicDepth, o.searchDepth())

	o.Depth = 4
	assert.Equal(t, 4, o.searchDepth())
	assert.Equal(t, 0, DefaultOptions().searchDepth())
	assert.Equal(t, 4, o.Threads, "the caller's value is not rewritten")
}

func TestAnalysisOptions(t *testing.T) {
	base := DefaultOptions()
	a := base.Analysis(3500)
	assert.Equal(t, 3500, a.Elo)
	assert.Equal(t, 20, a.SkillLevel)
	assert.Equal(t, 1350, base.Elo)
}

func TestSetOptionOrderIsStable(t *testing.T) {
	names := maps.Keys(DefaultOptions().setOptions())
	slices.Sort(names)
	assert.Equal(t, []string{
		"Contempt", "Hash", "Minimum Thinking Time", "Move Overhead", "MultiPV",
		"Ponder", "Skill Level", "Slow Mover", "Threads", "UCI_Elo", "UCI_LimitStrength",
	}, names)
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "0.35", Score{Centipawns: 35}.String())
	assert.Equal(t, "-1.20", Score{Centipawns: -120}.String())
	assert.Equal(t, "0.00", Score{}.String())
	assert.Equal(t, "mate 3", Score{Mate: 3}.String())
	assert.Equal(t, "mate -2", Score{Mate: -2}.String())
}

func TestWhitePOV(t *testing.T) {
	assert.Equal(t, Score{Centipawns: 50}, whitePOV(50, 0, false))
	assert.Equal(t, Score{Centipawns: -50}, whitePOV(50, 0, true))
	assert.Equal(t, Score{Mate: -3}, whitePOV(0, 3, true))
}
