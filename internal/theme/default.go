package theme

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/eotd/internal/game"
)

type DefaultTheme struct{}

type rgb struct {
	R, G, B uint8
}

const (
	barSym      = "│"
	rollBodySym = "═"
	hitFieldSym = "◎"
	lyricSym    = "·"
)

var (
	noteSyms = map[game.Kind]string{
		game.KindDon:         "●",
		game.KindKat:         "●",
		game.KindDonBig:      "◉",
		game.KindKatBig:      "◉",
		game.KindRollHead:    "●",
		game.KindRollHeadBig: "◉",
		game.KindBalloonHead: "◯",
		game.KindKusudama:    "❂",
		game.KindTail:        "●",
	}
	noteColors = map[game.Kind]rgb{
		game.KindDon:         {236, 30, 0},
		game.KindKat:         {0, 118, 236},
		game.KindDonBig:      {236, 30, 0},
		game.KindKatBig:      {0, 118, 236},
		game.KindBalloonHead: {236, 130, 30},
		game.KindKusudama:    {236, 195, 0},
		game.KindTail:        {236, 195, 0},
	}
	// beat-length colors for the rhythm markers under the lane
	denomColors = map[int]rgb{
		1:  {236, 30, 0},
		2:  {0, 118, 236},
		3:  {106, 0, 236},
		4:  {236, 195, 0},
		6:  {236, 0, 106},
		8:  {236, 128, 0},
		12: {173, 236, 236},
		16: {0, 236, 128},
		-1: {255, 255, 255},
	}
)

func paint(c rgb, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func rollColor(head *game.Note) rgb {
	// the roll brightens toward full yellow as hits land
	c := uint8(195)
	if nil != head.Roll {
		c = head.Roll.Color
	}
	return rgb{236, c, 0}
}

func (t *DefaultTheme) RenderNote(n *game.Note) string {
	sym, ok := noteSyms[n.Kind]
	if !ok {
		return " "
	}
	switch n.Kind {
	case game.KindRollHead, game.KindRollHeadBig:
		return paint(rollColor(n), sym)
	}
	return paint(noteColors[n.Kind], sym)
}

func (t *DefaultTheme) RenderRollBody(head *game.Note) string {
	return paint(rollColor(head), rollBodySym)
}

func (t *DefaultTheme) RenderBar(n *game.Note) string {
	return paint(rgb{106, 106, 106}, barSym)
}

func (t *DefaultTheme) RenderHitField() string {
	return paint(rgb{128, 128, 128}, hitFieldSym)
}

func (t *DefaultTheme) RenderLyric(n *game.Note) string {
	col, ok := denomColors[n.Denom]
	if !ok {
		col = denomColors[-1]
	}
	return paint(col, lyricSym)
}

func (t *DefaultTheme) RenderGauge(g *game.Gauge, width int) string {
	filled := int(g.Length / g.Max * float64(width))
	clear := int(g.Clear / g.Max * float64(width))
	var b strings.Builder
	for i := 0; i < width; i++ {
		c := rgb{80, 80, 80}
		sym := "░"
		if i < filled {
			sym = "█"
			if i >= clear {
				c = rgb{236, 195, 0}
			} else {
				c = rgb{200, 200, 200}
			}
		}
		b.WriteString(paint(c, sym))
	}
	return b.String()
}
