package game

import "sort"

// Event is a speed change on the chart timeline. Exactly one of the two
// variants is set: an absolute BPM for the fixed-speed scroll family, or a
// relative multiplier for the live-multiplier family.
type Event struct {
	Ms       float64
	BPM      float64
	Factor   float64
	Relative bool
}

// Timeline is kept sorted by Ms after every insertion.
type Timeline []Event

func (t *Timeline) Insert(e Event) {
	s := *t
	i := sort.Search(len(s), func(i int) bool { return s[i].Ms > e.Ms })
	s = append(s, Event{})
	copy(s[i+1:], s[i:])
	s[i] = e
	*t = s
}

// last returns the index of the most recent event at or before ms, -1 if
// the timeline has not started yet.
func (t Timeline) last(ms float64) int {
	return sort.Search(len(t), func(i int) bool { return t[i].Ms > ms }) - 1
}

// BPMAt resolves the running BPM at an arbitrary render time.
func (t Timeline) BPMAt(ms float64) float64 {
	for i := t.last(ms); i >= 0; i-- {
		if !t[i].Relative {
			return t[i].BPM
		}
	}
	return 0
}

// FactorAt resolves the live speed multiplier at an arbitrary render time.
// Relative events accumulate from the start of the timeline, so a seek
// backwards replays them and lands on the same value.
func (t Timeline) FactorAt(ms float64) float64 {
	factor := 1.0
	for i := 0; i <= t.last(ms); i++ {
		if t[i].Relative {
			factor *= t[i].Factor
		}
	}
	return factor
}
