package render

import (
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(row, col int, content string, frames int)
	RenderLoop(delay time.Duration, frame func(duration time.Duration) bool)
	Fill(row, col int, message string)
}
