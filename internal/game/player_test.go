package game

import "testing"

var testWindows = Windows{Good: 25, Ok: 75, Bad: 108}

func testNote(kind Kind, ms float64, index int) *Note {
	n := &Note{Kind: kind, Ms: ms, Display: true, Index: index, BPM: 120, ScrollX: 1}
	switch kind {
	case KindRollHead, KindRollHeadBig:
		n.Roll = &Roll{Color: 255}
	}
	return n
}

func testChart(notes ...*Note) *Chart {
	list := &NoteList{}
	list.Timeline.Insert(Event{Ms: 0, BPM: 120})
	for _, n := range notes {
		if n.Kind.IsDrum() {
			list.Play = append(list.Play, n)
		}
		list.Draw = append(list.Draw, n)
	}
	return &Chart{
		Course:     Course{Index: CourseOni},
		Notes:      list,
		TotalNotes: len(list.Play),
	}
}

func newTestPlayer(chart *Chart) *Player {
	return NewPlayer(chart, testWindows, 10000, 1000)
}

func TestJudgeExactHit(t *testing.T) {
	p := newTestPlayer(testChart(testNote(KindDon, 0, 0), testNote(KindKat, 1000, 1)))
	p.Update(0)
	if j := p.Judge(LaneDon, 0); j != JudgeGood {
		t.Fatal("want Good, got", j)
	}
	if p.Goods != 1 || p.Combo != 1 || p.Score != 1000 {
		t.Log("goods", p.Goods, "combo", p.Combo, "score", p.Score)
		t.Fail()
	}
}

var tierTests = map[float64]Judgement{
	0:   JudgeGood,
	20:  JudgeGood,
	25:  JudgeGood,
	50:  JudgeOk,
	75:  JudgeOk,
	100: JudgeBad,
	108: JudgeBad,
	200: JudgeNone,
}

func TestJudgeTiers(t *testing.T) {
	for delta, want := range tierTests {
		p := newTestPlayer(testChart(testNote(KindDon, 1000, 0)))
		p.Update(1000)
		if j := p.Judge(LaneDon, 1000+delta); j != want {
			t.Log("delta", delta, "got", j, "want", want)
			t.Fail()
		}
	}
}

func TestJudgeEmptyLaneIsNoOp(t *testing.T) {
	p := newTestPlayer(testChart(testNote(KindDon, 0, 0)))
	p.Update(0)
	if j := p.Judge(LaneKat, 0); j != JudgeNone {
		t.Fatal("want None, got", j)
	}
	if p.Goods != 0 || p.Oks != 0 || p.Bads != 0 || p.Misses != 0 || p.Combo != 0 || p.Score != 0 {
		t.Log("state mutated", p.Goods, p.Oks, p.Bads, p.Misses, p.Combo, p.Score)
		t.Fail()
	}
	// and the don head is still waiting
	if j := p.Judge(LaneDon, 0); j != JudgeGood {
		t.Fatal("head consumed by the no-op")
	}
}

func TestJudgeNeverSkipsAhead(t *testing.T) {
	first := testNote(KindDon, 0, 0)
	second := testNote(KindDon, 100, 1)
	p := newTestPlayer(testChart(first, second))
	p.Update(100)
	// a hit right on the second note still judges the first head
	if j := p.Judge(LaneDon, 100); j != JudgeBad {
		t.Fatal("want Bad against the head, got", j)
	}
	if j := p.Judge(LaneDon, 100); j != JudgeGood {
		t.Fatal("want Good on the next head, got", j)
	}
}

func TestMissedNoteExpires(t *testing.T) {
	p := newTestPlayer(testChart(testNote(KindDon, 0, 0), testNote(KindDon, 2000, 1)))
	p.Update(0)
	p.Judge(LaneDon, 0)
	p.Update(2000 + testWindows.Bad + 1)
	if p.Misses != 1 {
		t.Fatal("want 1 miss, got", p.Misses)
	}
	if p.Combo != 0 {
		t.Log("combo not reset", p.Combo)
		t.Fail()
	}
	if j := p.Judge(LaneDon, 2200); j != JudgeNone {
		t.Fatal("expired note still judgeable", j)
	}
}

func TestComboBonus(t *testing.T) {
	notes := []*Note{}
	for i := 0; i < 12; i++ {
		notes = append(notes, testNote(KindDon, float64(i*500), i))
	}
	p := newTestPlayer(testChart(notes...))
	for i := 0; i < 12; i++ {
		ms := float64(i * 500)
		p.Update(ms)
		p.Judge(LaneDon, ms)
	}
	if p.MaxCombo != 12 {
		t.Fatal("want combo 12, got", p.MaxCombo)
	}
	// the tenth note onward carries a hundred point bonus
	if p.Score != 12*1000+300 {
		t.Log("score", p.Score)
		t.Fail()
	}
}

func rollChart(head Kind, hits int) *Chart {
	h := testNote(head, 1000, 0)
	if h.Kind == KindBalloonHead || h.Kind == KindKusudama {
		h.Roll = nil
		h.Balloon = &Balloon{Hits: hits, Remaining: hits, Kusudama: h.Kind == KindKusudama}
	}
	tail := testNote(KindTail, 2000, 1)
	return testChart(h, tail)
}

func TestDrumrollCountsEitherLane(t *testing.T) {
	chart := rollChart(KindRollHead, 0)
	p := newTestPlayer(chart)
	p.Update(1000)
	for i, lane := range []Lane{LaneDon, LaneKat, LaneDon} {
		if j := p.Judge(lane, 1100+float64(i*100)); j != JudgeNone {
			t.Fatal("roll hit produced a judgement", j)
		}
	}
	if p.RollHits != 3 {
		t.Fatal("want 3 roll hits, got", p.RollHits)
	}
	if p.Goods != 0 || p.Bads != 0 {
		t.Log("timing counters moved", p.Goods, p.Bads)
		t.Fail()
	}
	p.Update(2001)
	// the roll is over, a hit now is a plain no-op
	if p.Judge(LaneDon, 2005); p.RollHits != 3 {
		t.Fatal("roll hit counted after the tail")
	}
}

func TestDrumrollColorSaturates(t *testing.T) {
	chart := rollChart(KindRollHead, 0)
	head := chart.Notes.Draw[0]
	head.Roll.Color = 100
	p := newTestPlayer(chart)
	p.Update(1000)
	for i := 0; i < 40; i++ {
		p.Judge(LaneDon, 1000+float64(i*10))
	}
	// the player's copy saturates at 255, the source chart is untouched
	roll := p.Notes().Draw[0].Roll
	if roll.Color != 255 {
		t.Fatal("want saturated color, got", roll.Color)
	}
	if head.Roll.Color != 100 {
		t.Fatal("source chart mutated", head.Roll.Color)
	}
}

func TestBalloonPop(t *testing.T) {
	p := newTestPlayer(rollChart(KindBalloonHead, 3))
	p.Update(1000)
	for i := 0; i < 3; i++ {
		p.Judge(LaneDon, 1100+float64(i*100))
	}
	p.Update(2001)
	b := p.Notes().Draw[0].Balloon
	if !b.Popped {
		t.Fatal("balloon not popped")
	}
	// 700ms left before the tail when the pop landed
	if p.Score != 3*300+700 {
		t.Log("score", p.Score)
		t.Fail()
	}
}

func TestBalloonPopBonusScalesWithTimeLeft(t *testing.T) {
	pop := func(at float64) int {
		p := newTestPlayer(rollChart(KindBalloonHead, 2))
		p.Update(1000)
		p.Judge(LaneDon, at-50)
		p.Judge(LaneDon, at)
		return p.Score
	}
	early := pop(1100)
	late := pop(1990)
	if early <= late {
		t.Fatal("early pop score", early, "late pop score", late)
	}
	if early != 2*300+900 || late != 2*300+10 {
		t.Log("early", early, "late", late)
		t.Fail()
	}
}

func TestKusudamaPop(t *testing.T) {
	p := newTestPlayer(rollChart(KindKusudama, 2))
	p.Update(1000)
	// kat hits never count
	p.Judge(LaneKat, 1050)
	p.Judge(LaneDon, 1100)
	p.Judge(LaneDon, 1200)
	b := p.Notes().Draw[0].Balloon
	if !b.Kusudama {
		t.Fatal("payload not marked kusudama")
	}
	if !b.Popped || p.RollHits != 2 {
		t.Fatal("popped", b.Popped, "hits", p.RollHits)
	}
	if p.Score != 2*300+800 {
		t.Log("score", p.Score)
		t.Fail()
	}
}

func TestBalloonUnderHit(t *testing.T) {
	p := newTestPlayer(rollChart(KindBalloonHead, 3))
	p.Update(1000)
	p.Judge(LaneDon, 1100)
	p.Judge(LaneDon, 1200)
	// kat hits never feed a balloon
	p.Judge(LaneKat, 1300)
	p.Update(2001)
	b := p.Notes().Draw[0].Balloon
	if b.Popped {
		t.Fatal("balloon popped on 2 hits")
	}
	if b.Remaining != 1 {
		t.Log("remaining", b.Remaining)
		t.Fail()
	}
	if p.Misses != 0 {
		t.Fatal("an unpopped balloon is not a miss")
	}
}

func TestLookaheadActivation(t *testing.T) {
	p := newTestPlayer(testChart(testNote(KindDon, 15000, 0)))
	p.Update(0)
	if len(p.Active) != 0 {
		t.Fatal("note active outside the lookahead window")
	}
	p.Update(5000)
	if len(p.Active) != 1 {
		t.Fatal("note not active inside the lookahead window")
	}
	if p.Active[0].State != StateActive {
		t.Log("state", p.Active[0].State)
		t.Fail()
	}
}

func TestHeadDragsTailIntoActiveSet(t *testing.T) {
	head := testNote(KindRollHead, 1000, 0)
	mid := testNote(KindDon, 1500, 1)
	tail := testNote(KindTail, 30000, 2)
	p := newTestPlayer(testChart(head, mid, tail))
	p.Update(0)
	// the tail is far outside the lookahead but must activate with its head
	if len(p.Active) != 3 {
		t.Fatal("want 3 active, got", len(p.Active))
	}
	for i := 1; i < len(p.Active); i++ {
		if p.Active[i].Index <= p.Active[i-1].Index {
			t.Log("active set out of creation order")
			t.Fail()
		}
	}
}

func TestPlaythroughsAreIndependent(t *testing.T) {
	chart := testChart(testNote(KindDon, 0, 0), testNote(KindKat, 500, 1))
	p1 := newTestPlayer(chart)
	p2 := newTestPlayer(chart)

	p1.Update(0)
	p1.Judge(LaneDon, 0)

	if p2.Notes().Play[0].State != StatePending {
		t.Fatal("second playthrough observed the first's mutation")
	}
	if chart.Notes.Play[0].State != StatePending {
		t.Fatal("source chart mutated")
	}
	// identical charts still agree on identity
	if SyncKey(p1.Notes().Play[1]) != SyncKey(p2.Notes().Play[1]) {
		t.Fatal("sync keys differ between copies")
	}
	d1, _ := p1.HeadKeys()
	d2, _ := p2.HeadKeys()
	if d1 == d2 {
		t.Fatal("consumed head still reported in step")
	}
}

func TestGaugeMovesWithJudgements(t *testing.T) {
	p := newTestPlayer(testChart(testNote(KindDon, 0, 0), testNote(KindDon, 500, 1)))
	p.Update(0)
	p.Judge(LaneDon, 0)
	if p.GaugeDelta <= 0 {
		t.Fatal("good did not raise the gauge", p.GaugeDelta)
	}
	p.Update(500 + testWindows.Bad + 1)
	if p.GaugeDelta >= 0 {
		t.Fatal("miss did not lower the gauge", p.GaugeDelta)
	}
}
