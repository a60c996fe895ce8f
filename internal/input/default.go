package input

import (
	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/eotd/internal/game"
)

// Event is one key press translated to a drum lane. Keys outside the
// drum map keep their rune so menus can read them.
type Event struct {
	Lane game.Lane
	Rune rune
	Quit bool
}

// Listen opens the keyboard and translates presses through the lane map.
func Listen(buffer int, lanes map[rune]game.Lane) (<-chan Event, error) {
	keys, err := keyboard.GetKeys(buffer)
	if nil != err {
		return nil, err
	}
	events := make(chan Event, buffer)
	go func() {
		for k := range keys {
			if k.Key == keyboard.KeyEsc || k.Key == keyboard.KeyCtrlC {
				events <- Event{Quit: true}
				continue
			}
			events <- Event{Lane: lanes[k.Rune], Rune: k.Rune}
		}
	}()
	return events, nil
}

func Close() error {
	return keyboard.Close()
}
