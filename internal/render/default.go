package render

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// DefaultRenderer batches ANSI escapes into one write per frame.
type DefaultRenderer struct {
	FramePeriod time.Duration

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
}

type decoration struct {
	Row, Col int
	Content  string
	Frames   int // remaining frames until removed
}

func (r *DefaultRenderer) Init() error {
	state, err := term.MakeRaw(int(os.Stdout.Fd()))
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Printf("%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Printf("%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	return term.Restore(int(os.Stdout.Fd()), r.restoreState)
}

func (r *DefaultRenderer) AddDecoration(row, col int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		Row:     row,
		Col:     col,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Row, d.Col, strings.Repeat(" ", len([]rune(stripEscapes(d.Content)))))
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

func stripEscapes(s string) string {
	out := []rune{}
	esc := false
	for _, c := range s {
		if esc {
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
				esc = false
			}
			continue
		}
		if c == '\033' {
			esc = true
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// RenderLoop drives the frame callback until it returns false. Frame
// times come from the wall clock; the duration handed down is the elapsed
// song time, negative while the start delay is still running.
func (r *DefaultRenderer) RenderLoop(delay time.Duration, frame func(duration time.Duration) bool) {
	cont := true
	startTime := time.Now().Add(delay)
	for cont {
		now := time.Now()
		deadline := now.Add(r.FramePeriod)

		cont = frame(now.Sub(startTime))

		r.tickDecorations()
		r.flush()

		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) Fill(row, col int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(col), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) flush() {
	os.Stdout.Write([]byte(r.buffer.String()))
	r.buffer.Reset()
}
