package game

// Course indices as they appear in chart files.
const (
	CourseEasy = iota
	CourseNormal
	CourseHard
	CourseOni
	CourseEdit
)

var courseNames = map[string]int{
	"easy":   CourseEasy,
	"normal": CourseNormal,
	"hard":   CourseHard,
	"oni":    CourseOni,
	"edit":   CourseEdit,
	"ura":    CourseEdit,
}

func CourseIndex(name string) (int, bool) {
	i, ok := courseNames[name]
	return i, ok
}

type Course struct {
	Name     string
	Index    int
	Level    int
	Balloons []int  // declared hit counts, consumed in appearance order
	Section  string // raw notation body, hashed for score history
}

type Chart struct {
	Title      string
	Wave       string
	BPM        float64
	OffsetMs   float64 // chart time of the first bar
	Course     Course
	Notes      *NoteList
	TotalNotes int // drummable notes, drives the base score
}
