package sim

// Mood transition engine. Two independent rules run every tick, in a fixed,
// named order: the collision-density rule first, then the cyclic-progression
// rule. The cyclic rule is deliberately allowed to override a density change
// made earlier in the same tick.

// moodForDensity maps a physical-contact count onto a candidate mood:
// isolation reads as loneliness, small groups as comfort, medium groups as
// social energy, crowds as overload.
func moodForDensity(contacts int) Mood {
	switch {
	case contacts == 0:
		return MoodSad
	case contacts <= 2:
		return MoodCalm
	case contacts <= 5:
		return MoodHappy
	default:
		return MoodRage
	}
}

// applyCollisionMoodRule evaluates the density rule for every agent. The
// rule only applies on its own repeating timer, and only while the agent's
// mood is still "fresh" — once the mood has been stable past the debounce
// window it stops flapping with crowd density and waits for the cycle.
func (w *World) applyCollisionMoodRule(dt float64) {
	for _, m := range w.moodels {
		m.moodCheck.Tick(dt)
		if !m.moodCheck.JustFinished() {
			continue
		}
		if m.moodStability >= w.cfg.MoodStabilityWindow {
			continue
		}
		candidate := moodForDensity(len(m.contacts))
		if candidate != m.mood {
			w.setMood(m, candidate)
		}
	}
}

// applyCycleMoodRule advances every agent's natural mood progression on its
// own, longer timer, unconditionally — stability never blocks the cycle.
// Stability accrues here, after the density rule has seen last tick's value.
func (w *World) applyCycleMoodRule(dt float64) {
	for _, m := range w.moodels {
		m.moodCycle.Tick(dt)
		m.moodStability += dt
		if m.moodCycle.JustFinished() {
			w.setMood(m, m.mood.NextInCycle())
		}
	}
}

// setMood applies a mood change, resets the stability clock, and surfaces
// the change for external sprite/color/audio reaction.
func (w *World) setMood(m *Moodel, newMood Mood) {
	old := m.mood
	m.mood = newMood
	m.moodStability = 0
	w.emit(Event{Kind: EventMoodChanged, Moodel: m.id, OldMood: old, NewMood: newMood})
}
