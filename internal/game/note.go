package game

// Kind is the chart cell a note was created from.
type Kind int

const (
	KindNone Kind = iota
	KindDon
	KindKat
	KindDonBig
	KindKatBig
	KindRollHead
	KindRollHeadBig
	KindBalloonHead
	KindTail
	KindKusudama
)

// State transitions are driven by the player once per frame:
// pending -> active -> judged|expired -> retired.
type State int

const (
	StatePending State = iota
	StateActive
	StateJudged
	StateExpired
	StateRetired
)

// Roll is the payload of a KindRollHead/KindRollHeadBig note.
// Color saturates at 255, qualifying hits bump it while the roll is live.
type Roll struct {
	Color uint8
	Hits  int
}

// Balloon is the payload of a KindBalloonHead/KindKusudama note.
type Balloon struct {
	Hits      int // hits required to pop
	Remaining int
	Popped    bool
	Kusudama  bool
}

type Note struct {
	Kind    Kind
	Ms      float64 // absolute chart time the note should be hit
	Display bool
	Index   int // creation order, pairs heads with tails
	Denom   int // beat length within the bar, drives the glyph color
	BPM     float64
	ScrollX float64
	ScrollY float64

	// Kind-specific payloads, nil for plain notes
	Roll    *Roll
	Balloon *Balloon

	State State
}

func (k Kind) IsDrum() bool {
	return k >= KindDon && k <= KindKatBig
}

func (k Kind) IsHead() bool {
	switch k {
	case KindRollHead, KindRollHeadBig, KindBalloonHead, KindKusudama:
		return true
	}
	return false
}

func (k Kind) Lane() Lane {
	switch k {
	case KindDon, KindDonBig:
		return LaneDon
	case KindKat, KindKatBig:
		return LaneKat
	}
	return LaneNone
}

func (n *Note) Clone() *Note {
	nn := *n
	if nil != n.Roll {
		r := *n.Roll
		nn.Roll = &r
	}
	if nil != n.Balloon {
		b := *n.Balloon
		nn.Balloon = &b
	}
	return &nn
}
