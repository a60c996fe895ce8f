package theme

import (
	"git.lost.host/meutraa/eotd/internal/game"
)

type Theme interface {
	RenderNote(n *game.Note) string
	RenderRollBody(head *game.Note) string
	RenderBar(n *game.Note) string
	RenderHitField() string
	RenderLyric(n *game.Note) string
	RenderGauge(g *game.Gauge, width int) string
}
