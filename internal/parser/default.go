package parser

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"git.lost.host/meutraa/eotd/internal/game"
)

type DefaultParser struct{}

// header state collected before a #START
type header struct {
	title    string
	wave     string
	bpm      float64
	offset   float64 // seconds, audio leads the chart when positive
	course   string
	level    int
	balloons []int
}

func (p *DefaultParser) Parse(file string) ([]*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	str = strings.TrimPrefix(str, "\ufeff")

	h := header{bpm: 120, course: "oni"}
	charts := []*game.Chart{}

	lines := strings.Split(str, "\n")
	for i := 0; i < len(lines); i++ {
		line := stripComment(lines[i])
		if line == "" {
			continue
		}

		if strings.EqualFold(line, "#START") {
			body := []string{}
			for i++; i < len(lines); i++ {
				l := stripComment(lines[i])
				if strings.EqualFold(l, "#END") {
					break
				}
				body = append(body, l)
			}
			chart, err := p.buildChart(h, body)
			if nil != err {
				return nil, fmt.Errorf("course %v: %w", h.course, err)
			}
			charts = append(charts, chart)
			// course-scoped values reset until redeclared
			h.balloons = nil
			continue
		}

		sep := strings.IndexByte(line, ':')
		if sep < 0 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(line[:sep]))
		value := strings.TrimSpace(line[sep+1:])

		switch key {
		case "TITLE":
			h.title = value
		case "WAVE":
			h.wave = value
		case "BPM":
			h.bpm, err = strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, fmt.Errorf("bad BPM %q: %w", value, err)
			}
		case "OFFSET":
			h.offset, err = strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, fmt.Errorf("bad OFFSET %q: %w", value, err)
			}
		case "COURSE":
			h.course = strings.ToLower(value)
		case "LEVEL":
			h.level, _ = strconv.Atoi(value)
		case "BALLOON":
			h.balloons = nil
			for _, c := range strings.Split(value, ",") {
				c = strings.TrimSpace(c)
				if c == "" {
					continue
				}
				n, err := strconv.Atoi(c)
				if nil != err {
					return nil, fmt.Errorf("bad BALLOON %q: %w", value, err)
				}
				h.balloons = append(h.balloons, n)
			}
		}
	}

	if len(charts) == 0 {
		return nil, fmt.Errorf("no #START section in %v", file)
	}
	return charts, nil
}

func (p *DefaultParser) buildChart(h header, body []string) (*game.Chart, error) {
	index, ok := game.CourseIndex(h.course)
	if !ok {
		if n, err := strconv.Atoi(h.course); nil == err {
			index = n
		} else {
			index = game.CourseOni
		}
	}

	startMs := -h.offset * 1000
	bars := splitBars(body)
	notes, err := Build(bars, h.bpm, startMs, h.balloons)
	if nil != err {
		return nil, err
	}

	return &game.Chart{
		Title:    h.title,
		Wave:     h.wave,
		BPM:      h.bpm,
		OffsetMs: startMs,
		Course: game.Course{
			Name:     h.course,
			Index:    index,
			Level:    h.level,
			Balloons: h.balloons,
			Section:  strings.Join(body, "\n"),
		},
		Notes:      notes,
		TotalNotes: len(notes.Play),
	}, nil
}

// splitBars turns the course body into bars of parts. A part is either a
// #-directive line or a run of note cells; a bar ends at a comma. A bare
// comma yields a bar with one empty part, which spans a full measure.
func splitBars(body []string) [][]string {
	bars := [][]string{}
	cur := []string{}
	for _, line := range body {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			cur = append(cur, line)
			continue
		}
		rest := line
		for {
			i := strings.IndexByte(rest, ',')
			if i < 0 {
				if rest != "" {
					cur = append(cur, rest)
				}
				break
			}
			cur = append(cur, rest[:i])
			bars = append(bars, cur)
			cur = []string{}
			rest = rest[i+1:]
		}
	}
	if len(cur) > 0 {
		bars = append(bars, cur)
	}
	return bars
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
