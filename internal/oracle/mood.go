package oracle

import (
	"image/color"
	"strings"
)

// Mood is the sentiment the oracle reads into a whisper.
type Mood string

const (
	MoodNeutral    Mood = "NEUTRAL"
	MoodEuphoria   Mood = "EUPHORIA"
	MoodNightmare  Mood = "NIGHTMARE"
	MoodMelancholy Mood = "MELANCHOLY"
	MoodMystery    Mood = "MYSTERY"
)

// Moods lists every mood in schema order.
func Moods() []Mood {
	return []Mood{MoodNeutral, MoodEuphoria, MoodNightmare, MoodMelancholy, MoodMystery}
}

// ParseMood maps a model answer onto a Mood. Unknown values read as neutral.
func ParseMood(s string) Mood {
	m := Mood(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Moods() {
		if m == known {
			return m
		}
	}
	return MoodNeutral
}

// Tint is the ambient colour hosts wash the backdrop with.
func (m Mood) Tint() color.RGBA {
	switch m {
	case MoodEuphoria:
		return color.RGBA{R: 255, G: 215, B: 100, A: 255}
	case MoodNightmare:
		return color.RGBA{R: 200, G: 20, B: 20, A: 255}
	case MoodMelancholy:
		return color.RGBA{R: 50, G: 100, B: 200, A: 255}
	case MoodMystery:
		return color.RGBA{R: 140, G: 50, B: 220, A: 255}
	default:
		return color.RGBA{R: 100, G: 100, B: 120, A: 255}
	}
}

// Pace scales flight speed while the mood holds: euphoria and nightmares
// rush, melancholy drags.
func (m Mood) Pace() float64 {
	switch m {
	case MoodEuphoria:
		return 4
	case MoodNightmare:
		return 6
	case MoodMelancholy:
		return 0.5
	case MoodMystery:
		return 1.5
	default:
		return 1
	}
}
