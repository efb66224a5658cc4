package sim

import (
	"fmt"
	"math"
)

// TestSim is a headless harness that pairs a World with reference
// implementations of its external collaborators: a movement integrator that
// turns intents into positions, and an overlap detector that derives the
// collision begin/end stream. Tests and the report cmd both drive it.
//
// The integrator is deliberately minimal — Euler step at mood-scaled speed,
// hard play-area clamp, axis-aligned obstacle pushout. It stands in for the
// real physics engine, which is out of the core's scope.
type TestSim struct {
	World  *World
	SimLog *SimLog

	// Dt is the fixed per-tick delta in seconds.
	Dt float64
	// BaseSpeed is world units per second before the mood multiplier.
	BaseSpeed float64

	// Events holds every event emitted since construction, in order.
	Events []Event

	agentPairs map[[2]int]bool // contact state, keyed by ordered id pair
	zonePairs  map[[2]int]bool // residency state, keyed by (moodel, zone)
	prevAction map[int]ActionKind
	prevSat    map[int]bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // seed, config, verbose, play area — applied first
	simOptSpawn                      // moodels, zones, obstacles
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*simBuilder)
}

type simBuilder struct {
	level   Level
	cfg     AiConfig
	seed    int64
	verbose bool
	dt      float64
	speed   float64
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(b *simBuilder) { b.seed = seed }}
}

// WithVerbose enables per-tick position/intent logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(b *simBuilder) { b.verbose = v }}
}

// WithConfig replaces the default AiConfig.
func WithConfig(cfg AiConfig) SimOption {
	return SimOption{simOptInfra, func(b *simBuilder) { b.cfg = cfg }}
}

// WithPlayArea sets the containment rectangle, centered on the origin.
func WithPlayArea(w, h float64) SimOption {
	return SimOption{simOptInfra, func(b *simBuilder) { b.level.PlayArea = PlayArea{Size: Vec2{w, h}} }}
}

// WithTickRate sets the fixed delta time from a ticks-per-second rate.
func WithTickRate(hz float64) SimOption {
	return SimOption{simOptInfra, func(b *simBuilder) { b.dt = 1.0 / hz }}
}

// WithBaseSpeed sets the integrator's base speed in units per second.
func WithBaseSpeed(speed float64) SimOption {
	return SimOption{simOptInfra, func(b *simBuilder) { b.speed = speed }}
}

// WithMoodel adds an agent. Ids are assigned in declaration order.
func WithMoodel(mood Mood, x, y float64) SimOption {
	return SimOption{simOptSpawn, func(b *simBuilder) {
		b.level.Moodels = append(b.level.Moodels, MoodelSpawn{Mood: mood, Position: Vec2{x, y}})
	}}
}

// WithZone adds a goal zone. Zone ids are assigned in declaration order.
func WithZone(x, y, w, h float64, target Mood, required int) SimOption {
	return SimOption{simOptSpawn, func(b *simBuilder) {
		b.level.GoalZones = append(b.level.GoalZones, GoalZoneSpawn{
			Position: Vec2{x, y}, Size: Vec2{w, h},
			TargetMood: target, RequiredCount: required,
		})
	}}
}

// WithObstacle adds a static wall for the integrator to push agents out of.
func WithObstacle(x, y, w, h float64) SimOption {
	return SimOption{simOptSpawn, func(b *simBuilder) {
		b.level.Obstacles = append(b.level.Obstacles, ObstacleSpawn{Position: Vec2{x, y}, Size: Vec2{w, h}})
	}}
}

// WithLevel replaces the accumulated spawn set with a full level descriptor.
func WithLevel(level *Level) SimOption {
	return SimOption{simOptSpawn, func(b *simBuilder) { b.level = *level }}
}

// NewTestSim constructs a harness from the given options in two ordered
// passes: infrastructure first, then spawns. It panics on invalid
// construction input — harness callers own their fixtures.
func NewTestSim(opts ...SimOption) *TestSim {
	b := &simBuilder{
		level: Level{Name: "harness", PlayArea: PlayArea{Size: Vec2{1280, 720}}},
		cfg:   DefaultAiConfig(),
		seed:  1,
		dt:    1.0 / 60.0,
		speed: 350.0,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(b)
		}
	}
	for _, o := range opts {
		if o.kind == simOptSpawn {
			o.fn(b)
		}
	}

	w, err := NewWorld(&b.level, b.cfg, b.seed)
	if err != nil {
		panic(fmt.Sprintf("NewTestSim: %v", err))
	}
	ts := &TestSim{
		World:      w,
		SimLog:     NewSimLog(b.verbose),
		Dt:         b.dt,
		BaseSpeed:  b.speed,
		agentPairs: make(map[[2]int]bool),
		zonePairs:  make(map[[2]int]bool),
		prevAction: make(map[int]ActionKind),
		prevSat:    make(map[int]bool),
	}
	for _, m := range w.Moodels() {
		ts.prevAction[m.ID()] = m.Action()
	}
	return ts
}

// RunTicks advances the simulation n ticks, logging events to SimLog.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step()
	}
}

// RunUntil advances up to maxTicks, stopping early when predicate returns
// true. Returns the tick at which it was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.World.CurrentTick()
		}
	}
	return -1
}

// Step runs one full frame: derive collision events from geometry, tick the
// world, integrate intents into positions, and log changes.
func (ts *TestSim) Step() []Event {
	ts.detectCollisions()
	events := ts.World.Tick(ts.Dt)
	ts.integrate()
	ts.logTick(events)
	ts.Events = append(ts.Events, events...)
	return events
}

// detectCollisions diffs geometric contact state against the previous frame
// and queues begin/end events, standing in for the physics engine.
func (ts *TestSim) detectCollisions() {
	moodels := ts.World.Moodels()

	// Agent-agent contacts: circle vs circle.
	for i := 0; i < len(moodels); i++ {
		for j := i + 1; j < len(moodels); j++ {
			a, b := moodels[i], moodels[j]
			key := [2]int{a.ID(), b.ID()}
			touching := dist(a.Position(), b.Position()) < 2*moodelRadius
			if touching && !ts.agentPairs[key] {
				ts.agentPairs[key] = true
				ts.World.QueueCollision(CollisionEvent{Phase: CollisionBegin, Kind: CollideMoodelMoodel, A: a.ID(), B: b.ID()})
			} else if !touching && ts.agentPairs[key] {
				delete(ts.agentPairs, key)
				ts.World.QueueCollision(CollisionEvent{Phase: CollisionEnd, Kind: CollideMoodelMoodel, A: a.ID(), B: b.ID()})
			}
		}
	}

	// Agent-zone residency: circle vs rect sensor.
	for _, m := range moodels {
		for _, z := range ts.World.Zones() {
			key := [2]int{m.ID(), z.ID()}
			inside := circleRectOverlap(m.Position(), moodelRadius, z.Position(), z.Size())
			if inside && !ts.zonePairs[key] {
				ts.zonePairs[key] = true
				ts.World.QueueCollision(CollisionEvent{Phase: CollisionBegin, Kind: CollideMoodelZone, A: m.ID(), B: z.ID()})
			} else if !inside && ts.zonePairs[key] {
				delete(ts.zonePairs, key)
				ts.World.QueueCollision(CollisionEvent{Phase: CollisionEnd, Kind: CollideMoodelZone, A: m.ID(), B: z.ID()})
			}
		}
	}
}

// integrate converts each agent's intent into a new position: Euler step at
// mood-scaled speed, obstacle pushout, hard play-area clamp.
func (ts *TestSim) integrate() {
	min := ts.World.PlayArea().Min()
	max := ts.World.PlayArea().Max()

	for _, m := range ts.World.Moodels() {
		speed := ts.BaseSpeed * m.Mood().SpeedMultiplier()
		pos := m.Position().Add(m.Intent().Mul(speed * ts.Dt))

		for _, o := range ts.World.Obstacles() {
			pos = pushOutOfRect(pos, moodelRadius, o.Position, o.Size)
		}

		pos = Vec2{
			math.Min(math.Max(pos.X(), min.X()), max.X()),
			math.Min(math.Max(pos.Y(), min.Y()), max.Y()),
		}
		ts.World.SetPosition(m.ID(), pos)
	}
}

// logTick records world events and state changes into SimLog.
func (ts *TestSim) logTick(events []Event) {
	tick := ts.World.CurrentTick()

	for _, ev := range events {
		label := "--"
		if ev.Kind != EventLevelComplete {
			label = fmt.Sprintf("M%d", ev.Moodel)
		}
		switch ev.Kind {
		case EventMoodChanged:
			ts.SimLog.Add(tick, label, "mood", "change",
				fmt.Sprintf("%s → %s", ev.OldMood, ev.NewMood), 0)
		case EventCorrectEntry:
			ts.SimLog.Add(tick, label, "zone", "correct_entry",
				fmt.Sprintf("zone %d", ev.Zone), float64(ev.Zone))
		case EventZonePop:
			ts.SimLog.Add(tick, label, "zone", "pop",
				fmt.Sprintf("zone %d", ev.Zone), float64(ev.Zone))
		case EventLevelComplete:
			ts.SimLog.Add(tick, label, "level", "complete", "all zones satisfied", 0)
		}
	}

	for _, m := range ts.World.Moodels() {
		if a := m.Action(); a != ts.prevAction[m.ID()] {
			ts.SimLog.Add(tick, m.Label(), "action", "change",
				fmt.Sprintf("%s → %s", ts.prevAction[m.ID()], a), 0)
			ts.prevAction[m.ID()] = a
		}
		ts.SimLog.AddVerbose(tick, m.Label(), "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", m.Position().X(), m.Position().Y()), 0)
		ts.SimLog.AddVerbose(tick, m.Label(), "move", "intent",
			fmt.Sprintf("(%.3f,%.3f)", m.Intent().X(), m.Intent().Y()), m.Intent().Len())
	}

	for _, z := range ts.World.Zones() {
		if sat := z.Satisfied(); sat != ts.prevSat[z.ID()] {
			ts.SimLog.Add(tick, "--", "zone", "satisfied",
				fmt.Sprintf("zone %d → %v (%d/%d)", z.ID(), sat, z.CurrentCount(), z.RequiredCount()),
				float64(z.CurrentCount()))
			ts.prevSat[z.ID()] = sat
		}
	}
}

// circleRectOverlap reports whether a circle overlaps an axis-aligned rect
// given by center and size.
func circleRectOverlap(c Vec2, r float64, rectCenter, rectSize Vec2) bool {
	half := rectSize.Mul(0.5)
	dx := math.Max(math.Abs(c.X()-rectCenter.X())-half.X(), 0)
	dy := math.Max(math.Abs(c.Y()-rectCenter.Y())-half.Y(), 0)
	return dx*dx+dy*dy < r*r
}

// pushOutOfRect moves a circle center out of an axis-aligned rect along the
// axis of least penetration. Positions outside the rect pass through
// unchanged.
func pushOutOfRect(c Vec2, r float64, rectCenter, rectSize Vec2) Vec2 {
	half := rectSize.Mul(0.5)
	ex := half.X() + r
	ey := half.Y() + r
	dx := c.X() - rectCenter.X()
	dy := c.Y() - rectCenter.Y()
	if math.Abs(dx) >= ex || math.Abs(dy) >= ey {
		return c
	}
	penX := ex - math.Abs(dx)
	penY := ey - math.Abs(dy)
	if penX < penY {
		if dx < 0 {
			return Vec2{rectCenter.X() - ex, c.Y()}
		}
		return Vec2{rectCenter.X() + ex, c.Y()}
	}
	if dy < 0 {
		return Vec2{c.X(), rectCenter.Y() - ey}
	}
	return Vec2{c.X(), rectCenter.Y() + ey}
}
