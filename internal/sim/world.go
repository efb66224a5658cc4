package sim

import (
	"fmt"
	"math/rand"
)

// World owns the agent arena, the goal zones, and the per-tick phase
// ordering. It runs on a single logical thread: all phases execute
// synchronously inside Tick, in a fixed declared order, because later phases
// depend on earlier phases' outputs within the same tick.
//
// Tick phase contract:
//
//  1. Drain the collision queue (contact sets, zone occupancy, charge hits).
//  2. Mood engine, collision-density rule.
//  3. Mood engine, cyclic-progression rule (may override 2 in-tick).
//  4. Action state machine (base intent).
//  5. Flocking forces (Wandering agents only).
//  6. Boundary avoidance (Wandering agents only).
//  7. Zone satisfaction recompute, then win evaluation.
//
// Phases 4–5 read positions and moods from a pre-tick snapshot, so force
// composition is order-independent across agents.
type World struct {
	cfg      AiConfig
	playArea PlayArea

	moodels   []*Moodel
	byID      map[int]*Moodel
	zones     []*GoalZone
	obstacles []ObstacleSpawn

	pending           []CollisionEvent
	droppedCollisions int

	levelWon bool
	tick     int
	elapsed  float64
	rng      *rand.Rand

	outbox []Event
}

// NewWorld spawns a world from an already-parsed level descriptor. The level
// and config are validated here — malformed input is a startup error, never
// a per-tick one.
func NewWorld(level *Level, cfg AiConfig, seed int64) (*World, error) {
	if level == nil {
		return nil, fmt.Errorf("new world: nil level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}

	w := &World{
		cfg:       cfg,
		playArea:  level.PlayArea,
		byID:      make(map[int]*Moodel, len(level.Moodels)),
		obstacles: append([]ObstacleSpawn(nil), level.Obstacles...),
		rng:       rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation, not crypto
	}
	for i, spawn := range level.Moodels {
		m := newMoodel(i, spawn.Mood, spawn.Position, &w.cfg, w.rng)
		w.moodels = append(w.moodels, m)
		w.byID[m.id] = m
	}
	for i, spawn := range level.GoalZones {
		w.zones = append(w.zones, newGoalZone(i, spawn))
	}
	return w, nil
}

// MoodelSnapshot is one row of the consistent pre-tick view used by the
// action and force phases, and by external observers.
type MoodelSnapshot struct {
	ID       int        `json:"id"`
	Position Vec2       `json:"pos"`
	Mood     Mood       `json:"mood"`
	Action   ActionKind `json:"action"`
	Intent   Vec2       `json:"intent"`
}

// Snapshot returns a copy of every live agent's id, position, mood, action,
// and last intent, in arena order.
func (w *World) Snapshot() []MoodelSnapshot {
	out := make([]MoodelSnapshot, 0, len(w.moodels))
	for _, m := range w.moodels {
		out = append(out, MoodelSnapshot{
			ID:       m.id,
			Position: m.pos,
			Mood:     m.mood,
			Action:   m.action,
			Intent:   m.intent,
		})
	}
	return out
}

// QueueCollision appends a physics notification for the next Tick. The queue
// is bounded; events past the bound are dropped and counted.
func (w *World) QueueCollision(ev CollisionEvent) {
	if len(w.pending) >= maxPendingCollisions {
		w.droppedCollisions++
		return
	}
	w.pending = append(w.pending, ev)
}

// DroppedCollisions returns how many collision events were discarded because
// the intake queue was full.
func (w *World) DroppedCollisions() int { return w.droppedCollisions }

// SetPosition writes an agent's position, as integrated by the external
// movement layer. Unknown ids are silently ignored.
func (w *World) SetPosition(id int, pos Vec2) {
	if m, ok := w.byID[id]; ok {
		m.pos = pos
	}
}

// Moodel returns the live agent with the given id.
func (w *World) Moodel(id int) (*Moodel, bool) {
	m, ok := w.byID[id]
	return m, ok
}

// Moodels returns the agent arena in stable order.
func (w *World) Moodels() []*Moodel { return w.moodels }

// Zones returns the goal zones in stable order.
func (w *World) Zones() []*GoalZone { return w.zones }

// ZoneStatuses returns per-zone progress for external rendering.
func (w *World) ZoneStatuses() []ZoneStatus {
	out := make([]ZoneStatus, 0, len(w.zones))
	for _, z := range w.zones {
		out = append(out, z.Status())
	}
	return out
}

// Obstacles returns the level's static walls (data for the external physics
// layer).
func (w *World) Obstacles() []ObstacleSpawn { return w.obstacles }

// PlayArea returns the containment bounds.
func (w *World) PlayArea() PlayArea { return w.playArea }

// Config returns the world's read-only tuning.
func (w *World) Config() AiConfig { return w.cfg }

// LevelComplete reports the win latch. Once true it never reverts for this
// World instance; restarting a level means constructing a new World.
func (w *World) LevelComplete() bool { return w.levelWon }

// CurrentTick returns the number of completed ticks.
func (w *World) CurrentTick() int { return w.tick }

// Elapsed returns total simulation seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

// Tick advances the simulation by dt seconds and returns the events it
// produced, in emission order. The returned slice is owned by the caller.
func (w *World) Tick(dt float64) []Event {
	w.tick++
	w.elapsed += dt
	w.outbox = nil

	snap := w.Snapshot()

	w.drainCollisions()
	w.applyCollisionMoodRule(dt)
	w.applyCycleMoodRule(dt)
	w.updateActions(dt, snap)
	w.applyMagnetism(snap)
	w.applyBoundaryAvoidance()
	w.recomputeZones()
	w.evaluateWin()

	out := w.outbox
	w.outbox = nil
	return out
}

func (w *World) emit(ev Event) {
	ev.Tick = w.tick
	w.outbox = append(w.outbox, ev)
}

// drainCollisions consumes the pending collision events in arrival order.
// Events referencing ids no longer present are silently ignored.
func (w *World) drainCollisions() {
	for _, ev := range w.pending {
		switch ev.Kind {
		case CollideMoodelMoodel:
			a, okA := w.byID[ev.A]
			b, okB := w.byID[ev.B]
			if !okA || !okB {
				continue
			}
			switch ev.Phase {
			case CollisionBegin:
				a.contacts[b.id] = struct{}{}
				b.contacts[a.id] = struct{}{}
				if a.action == ActionCharging {
					a.chargeHits++
				}
				if b.action == ActionCharging {
					b.chargeHits++
				}
			case CollisionEnd:
				delete(a.contacts, b.id)
				delete(b.contacts, a.id)
			}
		case CollideMoodelZone:
			m, okM := w.byID[ev.A]
			z, okZ := w.zoneByID(ev.B)
			if !okM || !okZ {
				continue
			}
			switch ev.Phase {
			case CollisionBegin:
				if z.enter(m.id) && m.mood == z.targetMood {
					w.emit(Event{Kind: EventCorrectEntry, Moodel: m.id, Zone: z.id})
					w.emit(Event{Kind: EventZonePop, Moodel: m.id, Zone: z.id})
				}
			case CollisionEnd:
				z.exit(m.id)
			}
		case CollideMoodelObstacle:
			// Wall contacts carry no simulation meaning; the external
			// integrator resolves them.
		}
	}
	w.pending = w.pending[:0]
}

func (w *World) zoneByID(id int) (*GoalZone, bool) {
	if id < 0 || id >= len(w.zones) {
		return nil, false
	}
	return w.zones[id], true
}

// recomputeZones refreshes every zone's count and satisfaction from live
// moods. Runs every tick whether or not any collision event fired, so a
// resident agent's mood change is reflected without a new enter/exit.
func (w *World) recomputeZones() {
	moodOf := func(id int) (Mood, bool) {
		m, ok := w.byID[id]
		if !ok {
			return MoodNeutral, false
		}
		return m.mood, true
	}
	for _, z := range w.zones {
		z.recompute(moodOf)
	}
}

// evaluateWin sets the one-way win latch when a non-empty zone set is
// simultaneously satisfied. The latch is terminal: it fires exactly one
// EventLevelComplete and never clears.
func (w *World) evaluateWin() {
	if w.levelWon || len(w.zones) == 0 {
		return
	}
	for _, z := range w.zones {
		if !z.satisfied {
			return
		}
	}
	w.levelWon = true
	w.emit(Event{Kind: EventLevelComplete})
}
