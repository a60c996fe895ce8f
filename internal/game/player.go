package game

import "sort"

// Player owns everything mutable about one playthrough: a private copy of
// the parsed chart, the per-lane queues, the active sets used for both
// rendering and judgment, and the score/combo/gauge accumulators. Two
// players built from the same chart never share state.
type Player struct {
	Chart *Chart
	notes *NoteList

	don   []*Note
	kat   []*Note
	other []*Note // roll and balloon heads, consumed in order

	drawQueue []*Note
	barQueue  []*Note

	Active     []*Note // bounded by the lookahead window, ordered by Index
	ActiveBars []*Note

	Windows   Windows
	Lookahead float64 // ms before hit time a note enters the active set

	Combo    int
	MaxCombo int
	Goods    int
	Oks      int
	Bads     int
	Misses   int
	RollHits int
	Score    int
	Gauge    *Gauge

	// GaugeDelta is the movement caused by the last judged note.
	GaugeDelta float64

	base     int // per-note base score, precomputed from the note count
	roll     *Note
	rollTail *Note
	lastSub  int64
}

func NewPlayer(chart *Chart, windows Windows, lookahead float64, baseScore int) *Player {
	p := &Player{
		Chart:     chart,
		notes:     chart.Notes.Clone(),
		Windows:   windows,
		Lookahead: lookahead,
		Gauge:     NewGauge(chart.Course.Index, chart.TotalNotes),
		base:      baseScore,
		lastSub:   -1,
	}
	for _, n := range p.notes.Play {
		switch n.Kind.Lane() {
		case LaneDon:
			p.don = append(p.don, n)
		case LaneKat:
			p.kat = append(p.kat, n)
		}
	}
	for _, n := range p.notes.Draw {
		if n.Kind.IsHead() {
			p.other = append(p.other, n)
		}
	}
	p.drawQueue = append(p.drawQueue, p.notes.Draw...)
	p.barQueue = append(p.barQueue, p.notes.Bars...)
	return p
}

// Notes exposes the player's chart copy, read-only by convention.
func (p *Player) Notes() *NoteList { return p.notes }

// HeadKeys identifies the current don/kat queue heads. Two playthroughs
// of the same chart are in step when their keys match.
func (p *Player) HeadKeys() (don, kat string) {
	if len(p.don) > 0 {
		don = SyncKey(p.don[0])
	}
	if len(p.kat) > 0 {
		kat = SyncKey(p.kat[0])
	}
	return don, kat
}

// EndMs is the hit time of the last drummable note.
func (p *Player) EndMs() float64 {
	if len(p.notes.Play) == 0 {
		return 0
	}
	return p.notes.Play[len(p.notes.Play)-1].Ms
}

func (p *Player) lane(l Lane) *[]*Note {
	if l == LaneDon {
		return &p.don
	}
	return &p.kat
}

func insertByIndex(notes []*Note, n *Note) []*Note {
	i := sort.Search(len(notes), func(i int) bool { return notes[i].Index >= n.Index })
	notes = append(notes, nil)
	copy(notes[i+1:], notes[i:])
	notes[i] = n
	return notes
}

// Update advances the queues for one frame. It never returns an error;
// everything on this path is a silent state transition.
func (p *Player) Update(now float64) {
	// Bars enter their own active set ahead of time and retire once they
	// cross the judgment line.
	for len(p.barQueue) > 0 && now >= p.barQueue[0].Ms-p.Lookahead {
		bar := p.barQueue[0]
		p.barQueue = p.barQueue[1:]
		bar.State = StateActive
		p.ActiveBars = append(p.ActiveBars, bar)
	}
	for len(p.ActiveBars) > 0 && now > p.ActiveBars[0].Ms {
		p.ActiveBars[0].State = StateRetired
		p.ActiveBars = p.ActiveBars[1:]
	}

	// Draw notes enter the active set inside the lookahead window. A roll
	// or balloon head drags its tail in at the same time so the pair is
	// always rendered together; insertion is by creation order, not
	// arrival order.
	for len(p.drawQueue) > 0 && now >= p.drawQueue[0].Ms-p.Lookahead {
		n := p.drawQueue[0]
		p.drawQueue = p.drawQueue[1:]
		n.State = StateActive
		p.Active = insertByIndex(p.Active, n)
		if n.Kind.IsHead() {
			for i, t := range p.drawQueue {
				if t.Kind == KindTail {
					p.drawQueue = append(p.drawQueue[:i], p.drawQueue[i+1:]...)
					t.State = StateActive
					p.Active = insertByIndex(p.Active, t)
					break
				}
			}
		}
	}

	// Open and close the live roll/balloon group.
	if nil == p.roll && len(p.other) > 0 && now >= p.other[0].Ms {
		p.roll = p.other[0]
		p.other = p.other[1:]
		p.rollTail = p.notes.Tail(p.roll)
	}
	if nil != p.roll && (nil == p.rollTail || now > p.rollTail.Ms) {
		p.roll.State = StateJudged
		p.roll = nil
		p.rollTail = nil
	}

	// A drummable note whose worst window has closed is a miss. This
	// never raises, it only moves counters.
	p.expire(&p.don, now)
	p.expire(&p.kat, now)

	// Retire the front of the active set. A plain note leaves once it is
	// judged or its position has crossed the judgment line; a head group
	// stays until its tail has passed.
	for len(p.Active) > 0 {
		front := p.Active[0]
		retire := false
		switch {
		case front.Kind.IsHead():
			tail := p.notes.Tail(front)
			retire = nil == tail || now > tail.Ms
		case front.Kind == KindTail:
			retire = now > front.Ms
		default:
			retire = front.State == StateJudged || front.State == StateExpired || now > front.Ms
		}
		if !retire {
			break
		}
		front.State = StateRetired
		p.Active = p.Active[1:]
	}
}

func (p *Player) expire(queue *[]*Note, now float64) {
	for len(*queue) > 0 && now > (*queue)[0].Ms+p.Windows.Bad {
		n := (*queue)[0]
		*queue = (*queue)[1:]
		n.State = StateExpired
		p.Misses++
		p.Combo = 0
		p.GaugeDelta = p.Gauge.Apply(JudgeNone)
	}
}

// Judge classifies one drum hit against the current head of the lane's
// queue. While a roll or balloon is live the hit feeds that instead and
// no timing judgment is produced. A hit with nothing eligible is a no-op.
func (p *Player) Judge(lane Lane, hitMs float64) Judgement {
	if nil != p.roll && hitMs >= p.roll.Ms && (nil == p.rollTail || hitMs <= p.rollTail.Ms) {
		p.rollHit(lane, hitMs)
		return JudgeNone
	}

	queue := p.lane(lane)
	if len(*queue) == 0 {
		return JudgeNone
	}
	head := (*queue)[0]
	delta := hitMs - head.Ms
	if delta < 0 {
		delta = -delta
	}
	j := p.Windows.Judge(delta)
	if j == JudgeNone {
		// outside the worst window, ignore the hit, keep the head
		return JudgeNone
	}

	*queue = (*queue)[1:]
	head.State = StateJudged

	switch j {
	case JudgeGood:
		p.Goods++
		p.Combo++
		p.Score += p.base + p.comboBonus()
	case JudgeOk:
		p.Oks++
		p.Combo++
		p.Score += roundBase(p.base/2) + p.comboBonus()/2
	case JudgeBad:
		p.Bads++
		p.Combo = 0
	}
	if p.Combo > p.MaxCombo {
		p.MaxCombo = p.Combo
	}
	p.GaugeDelta = p.Gauge.Apply(j)
	return j
}

func (p *Player) rollHit(lane Lane, hitMs float64) {
	switch p.roll.Kind {
	case KindRollHead, KindRollHeadBig:
		// either lane qualifies
		r := p.roll.Roll
		r.Hits++
		if r.Color < 255 {
			r.Color += min8(10, 255-r.Color)
		}
		p.RollHits++
		p.Score += 100
	case KindBalloonHead, KindKusudama:
		b := p.roll.Balloon
		if lane != LaneDon || b.Popped {
			return
		}
		b.Remaining--
		p.RollHits++
		p.Score += 300
		if b.Remaining <= 0 {
			b.Popped = true
			// the pop bonus is the time left before the tail
			if nil != p.rollTail {
				p.Score += roundBase(int(p.rollTail.Ms - hitMs))
			}
		}
	}
}

func min8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

// combo contributes a bonus on top of the base score, growing every ten
// notes and capping at a hundred.
func (p *Player) comboBonus() int {
	c := p.Combo / 10
	if c > 10 {
		c = 10
	}
	return c * 100
}

func roundBase(v int) int {
	return v / 10 * 10
}

// Autoplay drums every queue head exactly on time, and rolls at 1/24
// subdivisions of the running BPM. It returns the lanes hit this frame so
// the caller can play drum sounds.
func (p *Player) Autoplay(now float64) []Lane {
	var hits []Lane
	if nil != p.roll {
		bpm := p.notes.Timeline.BPMAt(now)
		if bpm > 0 {
			period := (60000 * 4 / bpm) / 24
			sub := int64(now / period)
			if sub > p.lastSub {
				p.lastSub = sub
				p.Judge(LaneDon, now)
				hits = append(hits, LaneDon)
			}
		}
		return hits
	}
	for {
		lane := LaneNone
		var head *Note
		if len(p.don) > 0 && p.don[0].Ms <= now {
			lane, head = LaneDon, p.don[0]
		}
		if len(p.kat) > 0 && p.kat[0].Ms <= now && (nil == head || p.kat[0].Ms < head.Ms) {
			lane, head = LaneKat, p.kat[0]
		}
		if lane == LaneNone {
			break
		}
		p.Judge(lane, head.Ms)
		hits = append(hits, lane)
	}
	return hits
}

// PositionX projects a note onto the lane for a render time. Speed is the
// note's stamped BPM scaled by the live multiplier family, so fixed-speed
// charts move by their baked values and multiplier charts speed up live.
func (p *Player) PositionX(n *Note, now, judgeX, laneWidth float64) float64 {
	speed := n.BPM * p.notes.Timeline.FactorAt(now) / 240000 * n.ScrollX * laneWidth
	return judgeX + (n.Ms-now)*speed
}

func (p *Player) PositionY(n *Note, now, laneWidth float64) float64 {
	speed := n.BPM * p.notes.Timeline.FactorAt(now) / 240000 * n.ScrollY * laneWidth
	return (n.Ms - now) * speed
}
