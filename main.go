package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/eotd/internal/config"
	"git.lost.host/meutraa/eotd/internal/game"
	"git.lost.host/meutraa/eotd/internal/input"
	"git.lost.host/meutraa/eotd/internal/parser"
	"git.lost.host/meutraa/eotd/internal/render"
	"git.lost.host/meutraa/eotd/internal/score"
	"git.lost.host/meutraa/eotd/internal/theme"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"golang.org/x/term"
)

var judgeLabels = map[game.Judgement]string{
	game.JudgeGood: "\033[1;33mGood\033[0m",
	game.JudgeOk:   "\033[1;37mOk  \033[0m",
	game.JudgeBad:  "\033[1;34mBad \033[0m",
}

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	// Ensure our Default implementations are used as interfaces
	var r render.Renderer = &render.DefaultRenderer{FramePeriod: *config.FramePeriod}
	var th theme.Theme = &theme.DefaultTheme{}
	var psr parser.Parser = &parser.DefaultParser{}
	var scr score.Scorer = &score.DefaultScorer{}

	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	rc, cc := rows, columns

	events, err := input.Listen(128, config.Lanes())
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := input.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	var audioFile, chartFile string
	if err := filepath.Walk(*config.Directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".ogg", ".mp3", ".wav":
			audioFile = p
		case ".tja":
			chartFile = p
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	if chartFile == "" {
		return errors.New("unable to find a .tja file in given directory")
	}

	charts, err := psr.Parse(chartFile)
	if nil != err {
		return err
	}

	index := *config.Course
	if index < 0 || index > len(charts)-1 {
		for i, c := range charts {
			fmt.Printf("%2v) %-8v %2v  %5v  %v\r\n", i, c.Course.Name, c.Course.Level, c.TotalNotes, c.Title)
		}
		e := <-events
		idx, err := strconv.ParseInt(string(e.Rune), 10, 64)
		if nil != err || idx < 0 || idx > int64(len(charts)-1) {
			return fmt.Errorf("no course %q, pick 0-%v", string(e.Rune), len(charts)-1)
		}
		index = int(idx)
	}
	chart := charts[index]

	if audioFile != "" {
		log.Printf("Opening %v (%v)\n", audioFile, chartFile)
		f, err := os.Open(audioFile)
		if nil != err {
			return err
		}
		var streamer beep.StreamSeekCloser
		var format beep.Format
		switch path.Ext(audioFile) {
		case ".ogg":
			streamer, format, err = vorbis.Decode(f)
		case ".wav":
			streamer, format, err = wav.Decode(f)
		default:
			streamer, format, err = mp3.Decode(f)
		}
		if nil != err {
			return err
		}
		defer streamer.Close()

		speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/30))
		go func() {
			time.Sleep(*config.Delay)
			speaker.Play(streamer)
		}()
	}

	if err := scr.Init(); nil != err {
		return err
	}
	defer scr.Deinit()

	windows := config.WindowsFor(chart.Course.Index)
	lookahead := float64(config.Lookahead.Milliseconds())
	base := scr.BaseScore(chart)

	p1 := game.NewPlayer(chart, windows, lookahead, base)
	var p2 *game.Player
	if *config.Rival {
		p2 = game.NewPlayer(chart, windows, lookahead, base)
	}

	row1 := rc / 2
	row2 := 0
	if nil != p2 {
		row1 = rc / 3
		row2 = 2 * rc / 3
	}
	judgeX := int(*config.JudgeCol)
	inputs := []game.Input{}

	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal", err)
		}
	}()

	r.RenderLoop(*config.Delay, func(duration time.Duration) bool {
		now := float64((duration + *config.Offset).Milliseconds())
		if now-5000 > p1.EndMs() {
			return false
		}

		// get the key inputs that occured so far
		for i := 0; i < len(events); i++ {
			e := <-events
			if e.Quit {
				return false
			}
			if e.Lane == game.LaneNone || *config.Auto {
				continue
			}
			inputs = append(inputs, game.Input{Lane: e.Lane, Ms: now})
			j := p1.Judge(e.Lane, now)
			if label, ok := judgeLabels[j]; ok {
				r.AddDecoration(row1-2, judgeX-1, label, 30)
			}
		}

		if *config.Auto {
			for _, lane := range p1.Autoplay(now) {
				inputs = append(inputs, game.Input{Lane: lane, Ms: now})
			}
		}
		p1.Update(now)
		if nil != p2 {
			p2.Autoplay(now)
			p2.Update(now)
		}

		drawLane(r, th, p1, row1, judgeX, cc, now)
		if nil != p2 {
			drawLane(r, th, p2, row2, judgeX, cc, now)
			d1, k1 := p1.HeadKeys()
			d2, k2 := p2.HeadKeys()
			if d1 == d2 && k1 == k2 {
				r.Fill(row2-3, 2, "in step  ")
			} else {
				r.Fill(row2-3, 2, "drifting ")
			}
			r.Fill(row2-2, 2, fmt.Sprintf("rival  %8v  %4v combo", p2.Score, p2.Combo))
		}

		drawStats(r, th, p1, chart, cc, now)
		return true
	})

	scr.Save(chart, &inputs)
	result := score.Summarize(p1)
	plays := len(scr.Load(chart))

	fmt.Printf("\n%v (%v)\n", chart.Title, chart.Course.Name)
	fmt.Printf("      Score:  %8v\n", result.Score)
	fmt.Printf("       Good:  %8v\n", result.Goods)
	fmt.Printf("         Ok:  %8v\n", result.Oks)
	fmt.Printf("        Bad:  %8v\n", result.Bads)
	fmt.Printf("       Miss:  %8v\n", result.Misses)
	fmt.Printf("  Max Combo:  %8v\n", result.MaxCombo)
	fmt.Printf("      Rolls:  %8v\n", result.RollHits)
	if result.Cleared {
		fmt.Printf("      Gauge:  %7.1f%%  clear\n", result.Gauge)
	} else {
		fmt.Printf("      Gauge:  %7.1f%%\n", result.Gauge)
	}
	fmt.Printf("      Plays:  %8v\n", plays)
	return nil
}

func drawLane(r render.Renderer, th theme.Theme, p *game.Player, row, judgeX, cc int, now float64) {
	laneWidth := float64(cc - judgeX)
	blank := strings.Repeat(" ", cc)
	r.Fill(row, 1, blank)
	r.Fill(row+1, 1, blank)

	for _, b := range p.ActiveBars {
		if !b.Display {
			continue
		}
		x := int(p.PositionX(b, now, float64(judgeX), laneWidth))
		if x > judgeX && x <= cc {
			r.Fill(row, x, th.RenderBar(b))
		}
	}

	r.Fill(row, judgeX, th.RenderHitField())

	// later notes first so the earliest draws on top
	active := p.Active
	for i := len(active) - 1; i >= 0; i-- {
		n := active[i]
		if n.Kind == game.KindTail {
			continue
		}
		x := int(p.PositionX(n, now, float64(judgeX), laneWidth))
		ry := row + int(p.PositionY(n, now, laneWidth)/4)

		if n.Kind.IsHead() {
			drawHeadGroup(r, th, p, n, ry, x, judgeX, cc, now, laneWidth)
			continue
		}
		if x >= judgeX && x <= cc && n.Display {
			r.Fill(ry, x, th.RenderNote(n))
			r.Fill(row+1, x, th.RenderLyric(n))
		}
	}
}

func drawHeadGroup(r render.Renderer, th theme.Theme, p *game.Player, head *game.Note, row, x, judgeX, cc int, now float64, laneWidth float64) {
	tail := p.Notes().Tail(head)
	if nil == tail {
		return
	}
	tx := int(p.PositionX(tail, now, float64(judgeX), laneWidth))

	switch head.Kind {
	case game.KindBalloonHead, game.KindKusudama:
		// a balloon waits on the judgment line until its tail passes
		pos := x
		if now >= tail.Ms {
			pos = tx
		} else if now >= head.Ms {
			pos = judgeX
		}
		if pos >= judgeX && pos <= cc {
			r.Fill(row, pos, th.RenderNote(head))
		}
	default:
		for bx := x + 1; bx < tx && bx <= cc; bx++ {
			if bx >= judgeX {
				r.Fill(row, bx, th.RenderRollBody(head))
			}
		}
		if tx >= judgeX && tx <= cc {
			r.Fill(row, tx, th.RenderNote(tail))
		}
		if x >= judgeX && x <= cc {
			r.Fill(row, x, th.RenderNote(head))
		}
	}
}

func drawStats(r render.Renderer, th theme.Theme, p *game.Player, chart *game.Chart, cc int, now float64) {
	r.Fill(2, 2, fmt.Sprintf("%v  (%v %v)", chart.Title, chart.Course.Name, chart.Course.Level))
	r.Fill(4, 2, fmt.Sprintf("      Score:  %8v", p.Score))
	r.Fill(5, 2, fmt.Sprintf("      Combo:  %8v", p.Combo))
	r.Fill(6, 2, fmt.Sprintf("       Good:  %8v", p.Goods))
	r.Fill(7, 2, fmt.Sprintf("         Ok:  %8v", p.Oks))
	r.Fill(8, 2, fmt.Sprintf("        Bad:  %8v", p.Bads))
	r.Fill(9, 2, fmt.Sprintf("       Miss:  %8v", p.Misses))
	r.Fill(10, 2, fmt.Sprintf("      Rolls:  %8v", p.RollHits))
	r.Fill(11, 2, fmt.Sprintf("        BPM:  %8.1f", p.Notes().Timeline.BPMAt(now)))
	r.Fill(12, 2, th.RenderGauge(p.Gauge, cc/3))
}
