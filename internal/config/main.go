package config

import (
	"git.lost.host/meutraa/eotd/internal/game"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory   = kingpin.Arg("directory", "Song/chart directory").Required().ExistingDir()
	Course      = kingpin.Flag("course", "Course to play, skips the prompt").Default("-1").Short('c').Int()
	Offset      = kingpin.Flag("offset", "Global offset").Default("0ms").Short('o').Duration()
	Delay       = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("8ms").Short('p').Duration()
	Lookahead   = kingpin.Flag("lookahead", "Time before its hit a note becomes active").Default("10s").Duration()
	Auto        = kingpin.Flag("auto", "Let the drum play itself").Bool()
	Rival       = kingpin.Flag("rival", "Add an autoplay rival lane").Bool()
	Easy        = kingpin.Flag("easy", "Force the wide timing windows").Bool()
	JudgeCol    = kingpin.Flag("judge-column", "Console column of the hit field").Default("12").Uint()
	keys        = kingpin.Flag("keys", "Kat/don/don/kat drum keys").Default("dfjk").Short('k').String()

	// Timing window tiers in ms. The wide tier applies below Normal.
	Windows     = game.Windows{Good: 25.025, Ok: 75.075, Bad: 108.442}
	WideWindows = game.Windows{Good: 41.708, Ok: 108.442, Bad: 125.125}
)

// Lanes maps the configured keys to drum lanes, outer pair kat, inner don.
func Lanes() map[rune]game.Lane {
	ks := []rune(*keys)
	lanes := map[rune]game.Lane{}
	for i, r := range ks {
		if i == 0 || i == len(ks)-1 {
			lanes[r] = game.LaneKat
		} else {
			lanes[r] = game.LaneDon
		}
	}
	return lanes
}

func WindowsFor(course int) game.Windows {
	if *Easy || course < game.CourseNormal {
		return WideWindows
	}
	return Windows
}

func init() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
