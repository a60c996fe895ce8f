package parser

import (
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"

	"git.lost.host/meutraa/eotd/internal/game"
)

const (
	scrollNormal = iota
	scrollBM
	scrollHB
)

// buildState is the running chart state threaded through the bar walk:
// the millisecond cursor, time signature, BPM, scroll modifiers and the
// stack of open roll/balloon heads waiting for their tails.
type buildState struct {
	ms         float64
	bpm        float64
	signature  float64 // a/b
	scrollX    float64
	scrollY    float64
	mode       int
	lastChange float64 // previous #BPMCHANGE value, for relative events
	barlines   bool
	index      int
	open       []*game.Note
	balloons   []int
}

func msPerMeasure(bpm, signature float64) float64 {
	return 240000 * signature / bpm
}

// Build walks the bars left to right and emits the millisecond-stamped
// note list. It fails on malformed directives, on a balloon with an
// exhausted declared-count list, on a tail with nothing open, on a head
// opened while another is still open, and on a head left open at the end
// of the chart.
func Build(bars [][]string, bpm, startMs float64, balloons []int) (*game.NoteList, error) {
	list := &game.NoteList{}
	st := &buildState{
		ms:         startMs,
		bpm:        bpm,
		signature:  1,
		scrollX:    1,
		lastChange: bpm,
		barlines:   true,
		balloons:   append([]int{}, balloons...),
	}
	list.Timeline.Insert(game.Event{Ms: startMs, BPM: bpm})

	for _, bar := range bars {
		if err := st.bar(list, bar); nil != err {
			return nil, err
		}
	}
	if len(st.open) > 0 {
		return nil, fmt.Errorf("%v drumroll/balloon heads left without a tail", len(st.open))
	}
	return list, nil
}

func (st *buildState) bar(list *game.NoteList, parts []string) error {
	barLength := 0
	for _, part := range parts {
		if !strings.HasPrefix(part, "#") {
			barLength += len(part)
		}
	}

	barlineAdded := false
	cell := 0
	for _, part := range parts {
		if strings.HasPrefix(part, "#") {
			if err := st.directive(list, part); nil != err {
				return err
			}
			continue
		}

		mpm := msPerMeasure(st.bpm, st.signature)

		// one bar line per bar; duplicates from directive splitting are
		// kept for spacing but not displayed
		bar := &game.Note{
			Kind:    game.KindNone,
			Ms:      st.ms,
			Display: st.barlines && !barlineAdded,
			Index:   st.index,
			BPM:     st.bpm,
			ScrollX: st.scrollX,
			ScrollY: st.scrollY,
		}
		st.index++
		barlineAdded = true
		list.Bars = append(list.Bars, bar)

		if len(part) == 0 {
			// empty bar spans a full measure with no cells
			st.ms += mpm
			continue
		}

		inc := mpm / float64(barLength)
		for _, c := range []byte(part) {
			if err := st.cell(list, c, cell, barLength); nil != err {
				return err
			}
			cell++
			st.ms += inc
		}
	}
	return nil
}

var cellKinds = map[byte]game.Kind{
	'1': game.KindDon,
	'2': game.KindKat,
	'3': game.KindDonBig,
	'4': game.KindKatBig,
	'5': game.KindRollHead,
	'6': game.KindRollHeadBig,
	'7': game.KindBalloonHead,
	'8': game.KindTail,
	'9': game.KindKusudama,
}

func (st *buildState) cell(list *game.NoteList, c byte, cell, barLength int) error {
	kind, ok := cellKinds[c]
	if !ok {
		// '0' and any non-digit is silence, the cursor still advances
		return nil
	}

	r := big.NewRat(int64(cell*4), int64(barLength))
	n := &game.Note{
		Kind:    kind,
		Ms:      st.ms,
		Display: true,
		Index:   st.index,
		Denom:   int(r.Denom().Int64()),
		BPM:     st.bpm,
		ScrollX: st.scrollX,
		ScrollY: st.scrollY,
	}
	st.index++

	switch kind {
	case game.KindRollHead, game.KindRollHeadBig:
		if len(st.open) > 0 {
			return fmt.Errorf("drumroll at %.0fms while another roll or balloon is open", st.ms)
		}
		n.Roll = &game.Roll{Color: 255}
		st.open = append(st.open, n)
	case game.KindBalloonHead, game.KindKusudama:
		if len(st.open) > 0 {
			return fmt.Errorf("balloon at %.0fms while another roll or balloon is open", st.ms)
		}
		if len(st.balloons) == 0 {
			return fmt.Errorf("balloon at %.0fms with no declared hit count left", st.ms)
		}
		hits := st.balloons[0]
		st.balloons = st.balloons[1:]
		n.Balloon = &game.Balloon{
			Hits:      hits,
			Remaining: hits,
			Kusudama:  kind == game.KindKusudama,
		}
		st.open = append(st.open, n)
	case game.KindTail:
		if len(st.open) == 0 {
			return fmt.Errorf("tail at %.0fms with no open drumroll or balloon", st.ms)
		}
		st.open = st.open[:len(st.open)-1]
	}

	if kind.IsDrum() {
		list.Play = append(list.Play, n)
	}
	list.Draw = append(list.Draw, n)
	return nil
}

func (st *buildState) directive(list *game.NoteList, part string) error {
	arg := func(name string) string {
		return strings.TrimSpace(strings.TrimPrefix(part, name))
	}

	switch {
	case strings.HasPrefix(part, "#MEASURE"):
		value := arg("#MEASURE")
		sep := strings.IndexByte(value, '/')
		if sep < 0 {
			return fmt.Errorf("malformed %q, want a/b", part)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(value[:sep]), 64)
		if nil != err {
			return fmt.Errorf("malformed %q: %w", part, err)
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(value[sep+1:]), 64)
		if nil != err {
			return fmt.Errorf("malformed %q: %w", part, err)
		}
		if b == 0 {
			return fmt.Errorf("malformed %q: zero beat unit", part)
		}
		st.signature = a / b
	case strings.HasPrefix(part, "#SCROLL"):
		if st.mode == scrollBM {
			// BMSCROLL drives speed from the timeline alone
			return nil
		}
		x, y, err := parseScroll(arg("#SCROLL"))
		if nil != err {
			log.Printf("keeping previous scroll, malformed %q: %v", part, err)
			return nil
		}
		st.scrollX, st.scrollY = x, y
	case strings.HasPrefix(part, "#BPMCHANGE"):
		v, err := strconv.ParseFloat(arg("#BPMCHANGE"), 64)
		if nil != err {
			return fmt.Errorf("malformed %q: %w", part, err)
		}
		if st.mode == scrollBM || st.mode == scrollHB {
			// the stamped BPM of placed notes stays stable, speed moves
			// through a relative multiplier event instead
			list.Timeline.Insert(game.Event{Ms: st.ms, Factor: v / st.lastChange, Relative: true})
			st.lastChange = v
		} else {
			st.bpm = v
			list.Timeline.Insert(game.Event{Ms: st.ms, BPM: v})
		}
	case strings.HasPrefix(part, "#BARLINEOFF"):
		st.barlines = false
	case strings.HasPrefix(part, "#BARLINEON"):
		st.barlines = true
	case strings.HasPrefix(part, "#BMSCROLL"):
		st.mode = scrollBM
	case strings.HasPrefix(part, "#HBSCROLL"):
		st.mode = scrollHB
	}
	// every other directive is not ours to interpret
	return nil
}

// parseScroll reads a scroll literal. The plain numeric form sets the
// horizontal speed and resets the vertical one; the complex form "x,yi"
// (or a bare "yi") carries independent components.
func parseScroll(v string) (float64, float64, error) {
	if !strings.ContainsRune(v, 'i') {
		x, err := strconv.ParseFloat(v, 64)
		return x, 0, err
	}
	v = strings.TrimSpace(strings.TrimSuffix(v, "i"))
	if sep := strings.IndexByte(v, ','); sep >= 0 {
		x, err := strconv.ParseFloat(strings.TrimSpace(v[:sep]), 64)
		if nil != err {
			return 0, 0, err
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(v[sep+1:]), 64)
		return x, y, err
	}
	y, err := strconv.ParseFloat(v, 64)
	return 0, y, err
}
