package sim

import (
	"math"
	"testing"
)

// rageWorld spawns a rage agent at the origin plus victims, with mood timers
// frozen so moods hold still while the state machine runs.
func rageWorld(t *testing.T, victims ...MoodelSpawn) *World {
	t.Helper()
	level := &Level{
		Name:     "rage",
		PlayArea: PlayArea{Size: Vec2{100000, 100000}},
		Moodels:  append([]MoodelSpawn{{Mood: MoodRage, Position: Vec2{0, 0}}}, victims...),
	}
	w, err := NewWorld(level, frozenConfig(), 5)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

// triggerAim runs one large tick that expires the initial ability cooldown
// (at most 6s) so the rage agent enters Aiming.
func triggerAim(t *testing.T, w *World) *Moodel {
	t.Helper()
	m := w.Moodels()[0]
	w.Tick(6.0)
	if m.Action() != ActionAiming {
		t.Fatalf("expected aiming after cooldown expiry, got %s", m.Action())
	}
	return m
}

func TestRageAimsAtNearestNonRage(t *testing.T) {
	w := rageWorld(t,
		MoodelSpawn{Mood: MoodHappy, Position: Vec2{100, 0}},
		MoodelSpawn{Mood: MoodCalm, Position: Vec2{40, 0}},
		MoodelSpawn{Mood: MoodRage, Position: Vec2{10, 0}}, // rage: never a target
	)
	m := triggerAim(t, w)

	target, ok := m.AimTarget()
	if !ok {
		t.Fatal("aiming agent should expose its target")
	}
	if target != 2 {
		t.Fatalf("expected nearest non-rage target (id 2 at x=40), got id %d", target)
	}
}

func TestRageAloneNeverAims(t *testing.T) {
	w := rageWorld(t) // no victims
	m := w.Moodels()[0]
	for i := 0; i < 10; i++ {
		w.Tick(1.0)
	}
	if m.Action() != ActionWandering {
		t.Fatalf("with no eligible target the agent must keep wandering, got %s", m.Action())
	}
}

func TestNonRageNeverLeavesWandering(t *testing.T) {
	level := &Level{
		Name:     "peaceful",
		PlayArea: PlayArea{Size: Vec2{100000, 100000}},
		Moodels: []MoodelSpawn{
			{Mood: MoodHappy, Position: Vec2{0, 0}},
			{Mood: MoodCalm, Position: Vec2{50, 0}},
		},
	}
	w, err := NewWorld(level, frozenConfig(), 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 12; i++ {
		w.Tick(1.0)
	}
	for _, m := range w.Moodels() {
		if m.Action() != ActionWandering {
			t.Fatalf("%s left wandering without rage: %s", m.Label(), m.Action())
		}
	}
}

func TestAimingPausesCompletely(t *testing.T) {
	w := rageWorld(t, MoodelSpawn{Mood: MoodHappy, Position: Vec2{200, 0}})
	m := triggerAim(t, w)

	if m.Intent() != (Vec2{}) {
		t.Fatalf("aiming agent must have zero intent, got %v", m.Intent())
	}
	// Still aiming partway through the pause, still frozen.
	w.Tick(0.3)
	if m.Action() != ActionAiming || m.Intent() != (Vec2{}) {
		t.Fatalf("mid-aim: action=%s intent=%v", m.Action(), m.Intent())
	}
}

func TestChargeLocksTargetPosition(t *testing.T) {
	w := rageWorld(t, MoodelSpawn{Mood: MoodHappy, Position: Vec2{200, 0}})
	m := triggerAim(t, w)

	// Finish the 0.75s aim pause; the victim's position freezes now.
	w.Tick(0.75)
	if m.Action() != ActionCharging {
		t.Fatalf("expected charging after aim pause, got %s", m.Action())
	}
	locked, ok := m.ChargeTarget()
	if !ok || locked != (Vec2{200, 0}) {
		t.Fatalf("charge target should be the victim's position at lock time, got %v", locked)
	}

	// Move the victim; the charge vector keeps pointing at the stale spot.
	w.SetPosition(1, Vec2{0, 500})
	w.Tick(0.1)
	intent := m.Intent()
	want := normalizeOrZero(Vec2{200, 0}.Sub(m.Position()))
	if math.Abs(intent.X()-want.X()) > 1e-9 || math.Abs(intent.Y()-want.Y()) > 1e-9 {
		t.Fatalf("charge must aim at the frozen position: got %v, want %v", intent, want)
	}
}

func TestChargeExpiresBackToWandering(t *testing.T) {
	w := rageWorld(t, MoodelSpawn{Mood: MoodHappy, Position: Vec2{200, 0}})
	m := triggerAim(t, w)
	w.Tick(0.75) // aim → charge

	w.Tick(1.5) // full charge duration
	if m.Action() != ActionWandering {
		t.Fatalf("expected wandering after charge expiry, got %s", m.Action())
	}

	// The rearmed cooldown is drawn from [5,8]s: quiet at 4s, armed by 8s.
	w.Tick(4.0)
	if m.Action() != ActionWandering {
		t.Fatal("cooldown fired before its 5s minimum")
	}
	w.Tick(4.0)
	if m.Action() != ActionAiming {
		t.Fatalf("cooldown should have fired within 8s, got %s", m.Action())
	}
}

func TestChargeBurnoutEndsEarly(t *testing.T) {
	w := rageWorld(t, MoodelSpawn{Mood: MoodHappy, Position: Vec2{200, 0}})
	m := triggerAim(t, w)
	w.Tick(0.75) // aim → charge

	// Three contact hits while charging end the charge well before its 1.5s
	// timer.
	for hit := 0; hit < 3; hit++ {
		w.QueueCollision(CollisionEvent{Phase: CollisionBegin, Kind: CollideMoodelMoodel, A: 0, B: 1})
		w.Tick(0.01)
		w.QueueCollision(CollisionEvent{Phase: CollisionEnd, Kind: CollideMoodelMoodel, A: 0, B: 1})
		w.Tick(0.01)
	}
	if m.Action() != ActionWandering {
		t.Fatalf("expected burnout back to wandering after 3 hits, got %s", m.Action())
	}
}

func TestHitsOutsideChargeDoNotCount(t *testing.T) {
	w := rageWorld(t, MoodelSpawn{Mood: MoodHappy, Position: Vec2{200, 0}})
	m := w.Moodels()[0]

	// Bump the pair repeatedly while still wandering.
	for i := 0; i < 5; i++ {
		w.QueueCollision(CollisionEvent{Phase: CollisionBegin, Kind: CollideMoodelMoodel, A: 0, B: 1})
		w.Tick(0.01)
		w.QueueCollision(CollisionEvent{Phase: CollisionEnd, Kind: CollideMoodelMoodel, A: 0, B: 1})
		w.Tick(0.01)
	}
	if m.chargeHits != 0 {
		t.Fatalf("hits outside charging must not count, got %d", m.chargeHits)
	}
}
