package sim

import "testing"

// --- Invariant helpers ---

// checkIntentsFinite verifies no agent's intent contains NaN or Inf.
func checkIntentsFinite(t *testing.T, ts *TestSim) {
	t.Helper()
	for _, m := range ts.World.Moodels() {
		if !finite(m.Intent()) {
			t.Errorf("%s has non-finite intent %v at T=%d", m.Label(), m.Intent(), ts.World.CurrentTick())
		}
	}
}

// checkWithinPlayArea verifies the integrator kept every agent inside the
// containment bounds.
func checkWithinPlayArea(t *testing.T, ts *TestSim) {
	t.Helper()
	min := ts.World.PlayArea().Min()
	max := ts.World.PlayArea().Max()
	for _, m := range ts.World.Moodels() {
		p := m.Position()
		if p.X() < min.X() || p.X() > max.X() || p.Y() < min.Y() || p.Y() > max.Y() {
			t.Errorf("%s escaped the play area: %v (bounds %v..%v)", m.Label(), p, min, max)
		}
	}
}

// checkMoodsValid verifies every agent carries a recognized mood.
func checkMoodsValid(t *testing.T, ts *TestSim) {
	t.Helper()
	for _, m := range ts.World.Moodels() {
		if !m.Mood().Valid() {
			t.Errorf("%s has invalid mood %d", m.Label(), m.Mood())
		}
	}
}

// checkAimersFrozen verifies aiming agents have zero intent, post-tick.
func checkAimersFrozen(t *testing.T, ts *TestSim) {
	t.Helper()
	for _, m := range ts.World.Moodels() {
		if m.Action() == ActionAiming && m.Intent() != (Vec2{}) {
			t.Errorf("%s is aiming but has intent %v", m.Label(), m.Intent())
		}
	}
}

// checkNoDroppedCollisions verifies the intake queue never overflowed.
func checkNoDroppedCollisions(t *testing.T, ts *TestSim) {
	t.Helper()
	if n := ts.World.DroppedCollisions(); n != 0 {
		t.Errorf("collision queue overflowed: %d events dropped", n)
	}
}

// checkStandardInvariants bundles the per-run checks every scenario wants.
func checkStandardInvariants(t *testing.T, ts *TestSim) {
	t.Helper()
	checkIntentsFinite(t, ts)
	checkWithinPlayArea(t, ts)
	checkMoodsValid(t, ts)
	checkAimersFrozen(t, ts)
	checkNoDroppedCollisions(t, ts)
}
