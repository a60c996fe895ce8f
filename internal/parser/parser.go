package parser

import "git.lost.host/meutraa/eotd/internal/game"

type Parser interface {
	// Parse reads a chart file and returns one chart per course found.
	Parse(file string) ([]*game.Chart, error)
}
