package game

// NoteList is the parsed chart. It is immutable once built; every
// playthrough works on its own deep copy so two players never observe
// each other's mutations.
type NoteList struct {
	Play     []*Note // gameplay notes, don/kat and their big variants only
	Draw     []*Note // everything rendered, heads and tails included
	Bars     []*Note
	Timeline Timeline
}

func cloneNotes(src []*Note) []*Note {
	dst := make([]*Note, len(src))
	for i, n := range src {
		dst[i] = n.Clone()
	}
	return dst
}

func (l *NoteList) Clone() *NoteList {
	tl := make(Timeline, len(l.Timeline))
	copy(tl, l.Timeline)
	return &NoteList{
		Play:     cloneNotes(l.Play),
		Draw:     cloneNotes(l.Draw),
		Bars:     cloneNotes(l.Bars),
		Timeline: tl,
	}
}

// Tail finds the tail paired with a roll or balloon head. Pairing is by
// creation order, the first tail with a greater index; the parser rejects
// overlapping head groups so this is unambiguous.
func (l *NoteList) Tail(head *Note) *Note {
	for _, n := range l.Draw {
		if n.Kind == KindTail && n.Index > head.Index {
			return n
		}
	}
	return nil
}
