package game

import "testing"

func TestInsertStaysSorted(t *testing.T) {
	tl := Timeline{}
	for _, ms := range []float64{500, 100, 900, 100, 0, 700} {
		tl.Insert(Event{Ms: ms, BPM: ms})
	}
	for i := 1; i < len(tl); i++ {
		if tl[i].Ms < tl[i-1].Ms {
			t.Log("unsorted at", i, tl[i-1].Ms, tl[i].Ms)
			t.Fail()
		}
	}
}

func TestBPMAt(t *testing.T) {
	tl := Timeline{}
	tl.Insert(Event{Ms: 0, BPM: 120})
	tl.Insert(Event{Ms: 1000, BPM: 180})
	tl.Insert(Event{Ms: 500, Factor: 2, Relative: true})

	cases := map[float64]float64{
		-1:   0, // before the chart starts
		0:    120,
		999:  120,
		1000: 180,
		5000: 180,
		700:  120, // the relative event does not shadow the absolute one
	}
	for ms, want := range cases {
		if got := tl.BPMAt(ms); got != want {
			t.Log("at", ms, "got", got, "want", want)
			t.Fail()
		}
	}
}

func TestFactorAccumulates(t *testing.T) {
	tl := Timeline{}
	tl.Insert(Event{Ms: 0, BPM: 120})
	tl.Insert(Event{Ms: 1000, Factor: 2, Relative: true})
	tl.Insert(Event{Ms: 2000, Factor: 0.5, Relative: true})

	cases := map[float64]float64{
		500:  1,
		1000: 2,
		1999: 2,
		2000: 1,
		9000: 1,
	}
	for ms, want := range cases {
		if got := tl.FactorAt(ms); got != want {
			t.Log("at", ms, "got", got, "want", want)
			t.Fail()
		}
	}

	// a seek backwards replays from the start and lands on the same value
	_ = tl.FactorAt(9000)
	if got := tl.FactorAt(1500); got != 2 {
		t.Log("after rewind got", got)
		t.Fail()
	}
}
