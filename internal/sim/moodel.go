package sim

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// moodelRadius is the collision radius the external physics layer uses for
// agents. The reference integrator in the harness mirrors it.
const moodelRadius = 30.0

// ActionKind identifies what a Moodel is doing this tick. Exactly one action
// is active at a time; Wandering is the default and the only state in which
// flocking and boundary forces apply.
type ActionKind int

const (
	ActionWandering ActionKind = iota
	ActionAiming               // rage: paused, locking onto a target
	ActionCharging             // rage: sprinting at a frozen target position
)

func (a ActionKind) String() string {
	switch a {
	case ActionWandering:
		return "wandering"
	case ActionAiming:
		return "aiming"
	case ActionCharging:
		return "charging"
	default:
		return "unknown"
	}
}

// Moodel is one autonomous agent. Position is owned by the external movement
// integrator and written back through World.SetPosition; everything else is
// mutated only by World.Tick, each field by exactly one phase.
type Moodel struct {
	id   int
	pos  Vec2
	mood Mood

	// Action state machine.
	action       ActionKind
	aimTargetID  int  // valid while action == ActionAiming
	chargeTarget Vec2 // frozen at the Aiming→Charging transition

	// Timers, advanced monotonically by tick delta.
	stateTimer      Timer // aim/charge durations; doubles as the Sad pause timer
	abilityCooldown Timer
	moodCheck       Timer // repeating collision-density evaluation
	moodCycle       Timer // repeating natural progression
	moodStability   float64
	chargeHits      int

	// Wander noise, seeded once at spawn. Two sources decorrelate the axes
	// without needing two independent seeds.
	noiseSeed int64
	noiseX    opensimplex.Noise
	noiseY    opensimplex.Noise

	// Physics contacts with other agents, maintained from the collision
	// event stream. Feeds the mood engine's density rule.
	contacts map[int]struct{}

	// Movement intent for this tick, consumed by the external integrator.
	intent Vec2
}

// seedAxisOffset decorrelates the Y noise source from X.
const seedAxisOffset = 1000

func newMoodel(id int, mood Mood, pos Vec2, cfg *AiConfig, rng *rand.Rand) *Moodel {
	seed := rng.Int63()
	m := &Moodel{
		id:              id,
		pos:             pos,
		mood:            mood,
		action:          ActionWandering,
		stateTimer:      NewTimer(0.5 + rng.Float64()),
		abilityCooldown: NewTimer(3.0 + rng.Float64()*3.0),
		moodCheck:       NewRepeatingTimer(cfg.MoodCheckPeriod),
		moodCycle:       NewRepeatingTimer(cfg.MoodCyclePeriod),
		noiseSeed:       seed,
		noiseX:          opensimplex.New(seed),
		noiseY:          opensimplex.New(seed + seedAxisOffset),
		contacts:        make(map[int]struct{}),
	}
	return m
}

// ID returns the agent's stable identifier.
func (m *Moodel) ID() int { return m.id }

// Position returns the agent's last known position.
func (m *Moodel) Position() Vec2 { return m.pos }

// Mood returns the agent's current mood.
func (m *Moodel) Mood() Mood { return m.mood }

// Action returns the agent's current action state.
func (m *Moodel) Action() ActionKind { return m.action }

// AimTarget returns the id being aimed at, or false when not Aiming.
func (m *Moodel) AimTarget() (int, bool) {
	if m.action != ActionAiming {
		return 0, false
	}
	return m.aimTargetID, true
}

// ChargeTarget returns the frozen charge destination, or false when not
// Charging.
func (m *Moodel) ChargeTarget() (Vec2, bool) {
	if m.action != ActionCharging {
		return Vec2{}, false
	}
	return m.chargeTarget, true
}

// Intent returns the movement-intent vector computed by the last Tick.
func (m *Moodel) Intent() Vec2 { return m.intent }

// ContactCount returns how many other agents are currently in physical
// contact with this one.
func (m *Moodel) ContactCount() int { return len(m.contacts) }

// MoodStability returns seconds since the last mood change.
func (m *Moodel) MoodStability() float64 { return m.moodStability }

// Label returns a short identifier for logs, e.g. "M3".
func (m *Moodel) Label() string { return fmt.Sprintf("M%d", m.id) }
