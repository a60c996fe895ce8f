package game

type Lane int

const (
	LaneNone Lane = iota
	LaneDon
	LaneKat
)

// Input is one drum hit, recorded for score history and replay.
type Input struct {
	Lane Lane
	Ms   float64
}
