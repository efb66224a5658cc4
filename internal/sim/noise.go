package sim

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Fractal noise parameters shared by all moods. Octave count and time scale
// vary per mood; persistence and lacunarity do not.
const (
	noisePersistence = 0.5
	noiseLacunarity  = 2.0
)

// fbm sums octaves of simplex noise along a 1D time input, the classic
// fractal layering: each octave doubles frequency and halves amplitude, and
// the result is renormalized into roughly [-1, 1].
func fbm(n opensimplex.Noise, t float64, octaves int) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(t*frequency, 0) * amplitude
		maxVal += amplitude
		amplitude *= noisePersistence
		frequency *= noiseLacunarity
	}
	return total / maxVal
}

// wanderNoise draws one 2D sample from the agent's two decorrelated noise
// sources at simulation time t.
func wanderNoise(m *Moodel, t float64, octaves int) Vec2 {
	return Vec2{
		fbm(m.noiseX, t, octaves),
		fbm(m.noiseY, t, octaves),
	}
}

// wanderIntent produces the mood-shaped base wander vector for an agent in
// the Wandering action. t is total simulation time; the agent's stateTimer
// has already been ticked this frame.
//
// Shapes follow the mood's character: Happy drifts gently on raw (scaled,
// unnormalized) noise, Rage paces fast at unit speed, Calm and Neutral are
// normalized with damped magnitude, and Sad alternates slow movement with a
// freeze each time its pause timer runs out.
func wanderIntent(m *Moodel, t float64, cfg *AiConfig, rng *rand.Rand) Vec2 {
	switch m.mood {
	case MoodHappy:
		return wanderNoise(m, t*0.2, 2).Mul(0.3)
	case MoodRage:
		return normalizeOrZero(wanderNoise(m, t*0.5, 4))
	case MoodCalm:
		return normalizeOrZero(wanderNoise(m, t*0.1, 1)).Mul(0.5)
	case MoodNeutral:
		return normalizeOrZero(wanderNoise(m, t*0.3, 2)).Mul(0.6)
	case MoodSad:
		if !m.stateTimer.Finished() {
			return normalizeOrZero(wanderNoise(m, t*0.1, 1)).Mul(0.4)
		}
		// The pause timer ran out: freeze for this tick and rearm with a
		// fresh random duration so movement resumes next tick. Rearming on
		// any expired timer (not just the finish edge) keeps the cadence
		// going for an agent that turned Sad with a stale timer.
		span := cfg.SadPauseMax - cfg.SadPauseMin
		m.stateTimer.SetDuration(cfg.SadPauseMin + rng.Float64()*span)
		m.stateTimer.Reset()
		return Vec2{}
	default:
		return Vec2{}
	}
}
