package sim

import (
	"fmt"
	"image/color"
)

// Mood is the emotional state of a Moodel. It drives movement speed, wander
// shape, social attraction, and display color.
type Mood int

const (
	MoodNeutral Mood = iota
	MoodCalm
	MoodHappy
	MoodRage
	MoodSad
	moodCount
)

func (m Mood) String() string {
	switch m {
	case MoodNeutral:
		return "neutral"
	case MoodCalm:
		return "calm"
	case MoodHappy:
		return "happy"
	case MoodRage:
		return "rage"
	case MoodSad:
		return "sad"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a recognized mood value.
func (m Mood) Valid() bool { return m >= MoodNeutral && m < moodCount }

// ParseMood converts a lowercase mood name into a Mood. Unrecognized names
// are a startup error, never tolerated per-tick.
func ParseMood(s string) (Mood, error) {
	for m := MoodNeutral; m < moodCount; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return MoodNeutral, fmt.Errorf("unrecognized mood %q", s)
}

// AllMoods returns every mood value in declaration order.
func AllMoods() [5]Mood {
	return [5]Mood{MoodNeutral, MoodCalm, MoodHappy, MoodRage, MoodSad}
}

// SpeedMultiplier scales an agent's base movement speed.
func (m Mood) SpeedMultiplier() float64 {
	switch m {
	case MoodNeutral:
		return 0.75
	case MoodCalm:
		return 0.5
	case MoodHappy:
		return 1.0
	case MoodRage:
		return 1.5
	case MoodSad:
		return 0.375
	default:
		return 1.0
	}
}

// Color returns the display color associated with the mood. Consumed by
// external renderers only; the core never draws.
func (m Mood) Color() color.RGBA {
	switch m {
	case MoodNeutral:
		return color.RGBA{R: 204, G: 204, B: 204, A: 255} // grey
	case MoodCalm:
		return color.RGBA{R: 76, G: 153, B: 255, A: 255} // blue
	case MoodHappy:
		return color.RGBA{R: 255, G: 229, B: 51, A: 255} // yellow
	case MoodRage:
		return color.RGBA{R: 255, G: 51, B: 51, A: 255} // red
	case MoodSad:
		return color.RGBA{R: 153, G: 102, B: 204, A: 255} // purple
	default:
		return color.RGBA{A: 255}
	}
}

// NextInCycle returns the successor in the natural mood progression:
// Happy → Calm → Sad → Rage → Happy. Neutral enters the cycle at Happy and
// is never returned to.
func (m Mood) NextInCycle() Mood {
	switch m {
	case MoodNeutral:
		return MoodHappy
	case MoodHappy:
		return MoodCalm
	case MoodCalm:
		return MoodSad
	case MoodSad:
		return MoodRage
	case MoodRage:
		return MoodHappy
	default:
		return MoodNeutral
	}
}

// AttractionFactor defines the asymmetric social force between two moods:
// positive pulls self toward other, negative pushes away, zero ignores.
// Pairs not listed are neutral — the matrix is intentionally sparse and
// asymmetric (Sad flees Happy, but Happy does not react to Sad).
func AttractionFactor(self, other Mood) float64 {
	switch {
	case self == MoodHappy && other == MoodHappy:
		return 1.0
	case self == MoodHappy && other == MoodCalm:
		return 0.3
	case self == MoodSad && other == MoodSad:
		return 0.5
	case self == MoodSad && other == MoodHappy:
		return -0.8
	case self == MoodSad && other == MoodRage:
		return -1.0
	case self == MoodRage && (other == MoodRage || other == MoodSad):
		return -1.0
	case self == MoodRage:
		return 0.2
	case self == MoodCalm && other == MoodCalm:
		return 0.2
	case self == MoodNeutral:
		return -0.1
	default:
		return 0.0
	}
}
