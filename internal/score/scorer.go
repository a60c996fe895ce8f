package score

import (
	"git.lost.host/meutraa/eotd/internal/game"
)

type Scorer interface {
	Init() error
	Deinit()

	// BaseScore precomputes the per-note score from the chart's note count.
	BaseScore(chart *game.Chart) int

	// Save the hit log of this performance
	Save(chart *game.Chart, inputs *[]game.Input)

	// Load up previous performances for the chart
	Load(chart *game.Chart) []History

	// Replay feeds a saved hit log through a fresh playthrough
	Replay(chart *game.Chart, history *History, windows game.Windows, lookahead float64) Result
}

type History struct {
	Sum    string
	Inputs *[]game.Input
}

// Result is the per-playthrough summary handed to the result screen.
type Result struct {
	Score    int
	Goods    int
	Oks      int
	Bads     int
	Misses   int
	MaxCombo int
	RollHits int
	Gauge    float64
	Cleared  bool
}
