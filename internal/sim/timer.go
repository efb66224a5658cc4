package sim

// Timer counts up toward a duration in simulation seconds. It is advanced
// once per tick by the tick's delta time and is never rolled back.
//
// A once-timer stays finished until Reset. A repeating timer wraps its
// elapsed time on expiry so drift does not accumulate. JustFinished is an
// edge signal: true only on the tick the timer crossed (or wrapped past) its
// duration.
type Timer struct {
	duration     float64
	elapsed      float64
	repeating    bool
	finished     bool
	justFinished bool
}

// NewTimer returns a once-timer with the given duration in seconds.
func NewTimer(duration float64) Timer {
	return Timer{duration: duration}
}

// NewRepeatingTimer returns a timer that fires every duration seconds.
func NewRepeatingTimer(duration float64) Timer {
	return Timer{duration: duration, repeating: true}
}

// Tick advances the timer by dt seconds.
func (t *Timer) Tick(dt float64) {
	t.justFinished = false
	if dt < 0 {
		return
	}
	if t.finished && !t.repeating {
		return
	}
	t.elapsed += dt
	if t.elapsed < t.duration {
		return
	}
	t.justFinished = true
	t.finished = true
	if t.repeating {
		if t.duration > 0 {
			for t.elapsed >= t.duration {
				t.elapsed -= t.duration
			}
		} else {
			t.elapsed = 0
		}
		t.finished = false
	}
}

// Finished reports whether the timer has reached its duration. Repeating
// timers only report true on the tick they fire.
func (t *Timer) Finished() bool { return t.finished || t.justFinished }

// JustFinished reports whether the timer fired on the most recent Tick.
func (t *Timer) JustFinished() bool { return t.justFinished }

// Duration returns the configured duration in seconds.
func (t *Timer) Duration() float64 { return t.duration }

// Elapsed returns seconds accumulated toward the next expiry.
func (t *Timer) Elapsed() float64 { return t.elapsed }

// SetDuration replaces the duration. Elapsed time is kept; callers that want
// a fresh countdown pair this with Reset.
func (t *Timer) SetDuration(d float64) { t.duration = d }

// Reset rewinds the timer to zero without changing its duration.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = false
}
