package game

// Gauge is the pass/fail meter filled across a song. An all-good run
// lands exactly on Max; the clear point depends on the course.
type Gauge struct {
	Length float64
	Max    float64
	Clear  float64

	unit float64
}

var clearFractions = []float64{0.6, 0.65, 0.7, 0.8, 0.8}

func NewGauge(course int, totalNotes int) *Gauge {
	if course < 0 || course >= len(clearFractions) {
		course = CourseOni
	}
	g := &Gauge{Max: 100, Clear: 100 * clearFractions[course]}
	if totalNotes > 0 {
		g.unit = g.Max / float64(totalNotes)
	}
	return g
}

// Apply moves the gauge for one judged note and returns the delta.
func (g *Gauge) Apply(j Judgement) float64 {
	var delta float64
	switch j {
	case JudgeGood:
		delta = g.unit
	case JudgeOk:
		delta = g.unit / 2
	case JudgeBad, JudgeNone:
		delta = -g.unit * 1.6
	}
	g.Length += delta
	if g.Length > g.Max {
		g.Length = g.Max
	} else if g.Length < 0 {
		g.Length = 0
	}
	return delta
}

func (g *Gauge) Cleared() bool {
	return g.Length >= g.Clear
}
