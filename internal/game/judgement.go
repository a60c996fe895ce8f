package game

type Judgement int

const (
	JudgeGood Judgement = iota
	JudgeOk
	JudgeBad
	JudgeNone // hit consumed nothing
)

func (j Judgement) String() string {
	switch j {
	case JudgeGood:
		return "Good"
	case JudgeOk:
		return "Ok"
	case JudgeBad:
		return "Bad"
	}
	return "None"
}

// Windows are the timing thresholds in ms, supplied as configuration.
// Two tiers exist, a standard one and a wider one for the lower courses.
type Windows struct {
	Good float64
	Ok   float64
	Bad  float64
}

// Judge classifies the absolute distance to a note's hit time.
func (w Windows) Judge(delta float64) Judgement {
	switch {
	case delta <= w.Good:
		return JudgeGood
	case delta <= w.Ok:
		return JudgeOk
	case delta <= w.Bad:
		return JudgeBad
	}
	return JudgeNone
}
