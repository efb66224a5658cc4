package sim

import "testing"

// pairWorld spawns two agents at the given positions with frozen moods.
func pairWorld(t *testing.T, a, b MoodelSpawn, cfg AiConfig) *World {
	t.Helper()
	level := &Level{
		Name:     "pair",
		PlayArea: PlayArea{Size: Vec2{100000, 100000}},
		Moodels:  []MoodelSpawn{a, b},
	}
	w, err := NewWorld(level, cfg, 3)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestMagnetismCohesionPullsFriends(t *testing.T) {
	w := pairWorld(t,
		MoodelSpawn{Mood: MoodHappy, Position: Vec2{0, 0}},
		MoodelSpawn{Mood: MoodHappy, Position: Vec2{100, 0}},
		frozenConfig(),
	)
	m := w.Moodels()[0]
	m.intent = Vec2{}
	w.applyMagnetism(w.Snapshot())

	// 100px apart: inside vision (150), outside separation (60). Happy-happy
	// attraction pulls M0 toward +x.
	if m.intent.X() <= 0 {
		t.Fatalf("cohesion should pull toward the friend, intent=%v", m.intent)
	}
	if m.intent.Y() != 0 {
		t.Fatalf("co-linear pair should produce no y force, intent=%v", m.intent)
	}
}

func TestMagnetismNegativeFactorRepels(t *testing.T) {
	w := pairWorld(t,
		MoodelSpawn{Mood: MoodSad, Position: Vec2{0, 0}},
		MoodelSpawn{Mood: MoodRage, Position: Vec2{100, 0}},
		frozenConfig(),
	)
	m := w.Moodels()[0]
	m.intent = Vec2{}
	w.applyMagnetism(w.Snapshot())

	// Sad→rage factor is -1.0: the "cohesion" term points away.
	if m.intent.X() >= 0 {
		t.Fatalf("sad agent should flee rage, intent=%v", m.intent)
	}
}

func TestMagnetismSeparationInsideRadius(t *testing.T) {
	cfg := frozenConfig()
	cfg.CohesionStrength = 0 // isolate the separation term
	w := pairWorld(t,
		MoodelSpawn{Mood: MoodHappy, Position: Vec2{0, 0}},
		MoodelSpawn{Mood: MoodHappy, Position: Vec2{10, 0}},
		cfg,
	)
	m := w.Moodels()[0]
	m.intent = Vec2{}
	w.applyMagnetism(w.Snapshot())

	if m.intent.X() >= 0 {
		t.Fatalf("separation should push away inside the personal radius, intent=%v", m.intent)
	}
}

func TestMagnetismIgnoresBeyondVision(t *testing.T) {
	w := pairWorld(t,
		MoodelSpawn{Mood: MoodHappy, Position: Vec2{0, 0}},
		MoodelSpawn{Mood: MoodHappy, Position: Vec2{500, 0}},
		frozenConfig(),
	)
	m := w.Moodels()[0]
	m.intent = Vec2{}
	w.applyMagnetism(w.Snapshot())

	if m.intent != (Vec2{}) {
		t.Fatalf("neighbors beyond vision radius must not contribute, intent=%v", m.intent)
	}
}

func TestMagnetismSkipsNonWandering(t *testing.T) {
	w := pairWorld(t,
		MoodelSpawn{Mood: MoodHappy, Position: Vec2{0, 0}},
		MoodelSpawn{Mood: MoodHappy, Position: Vec2{100, 0}},
		frozenConfig(),
	)
	m := w.Moodels()[0]
	m.action = ActionAiming
	m.intent = Vec2{}
	w.applyMagnetism(w.Snapshot())

	if m.intent != (Vec2{}) {
		t.Fatalf("non-wandering agents receive no flocking force, intent=%v", m.intent)
	}
}

func boundaryWorld(t *testing.T, pos Vec2) (*World, *Moodel) {
	t.Helper()
	level := &Level{
		Name:     "bounds",
		PlayArea: PlayArea{Size: Vec2{1000, 1000}}, // spans -500..500 per axis
		Moodels:  []MoodelSpawn{{Mood: MoodNeutral, Position: pos}},
	}
	w, err := NewWorld(level, frozenConfig(), 3)
	if err != nil {
		t.Fatal(err)
	}
	return w, w.Moodels()[0]
}

func TestBoundaryAvoidancePushesInward(t *testing.T) {
	w, m := boundaryWorld(t, Vec2{-450, 0}) // inside the 100px left margin
	m.intent = Vec2{}
	w.applyBoundaryAvoidance()

	want := w.Config().AvoidanceStrength
	if m.intent.X() != want || m.intent.Y() != 0 {
		t.Fatalf("left margin should push +x by %v, intent=%v", want, m.intent)
	}
}

func TestBoundaryAvoidanceCornerBothAxes(t *testing.T) {
	w, m := boundaryWorld(t, Vec2{450, 450}) // top-right corner margin
	m.intent = Vec2{}
	w.applyBoundaryAvoidance()

	want := w.Config().AvoidanceStrength
	if m.intent.X() != -want || m.intent.Y() != -want {
		t.Fatalf("corner should push on both axes unnormalized, intent=%v", m.intent)
	}
}

func TestBoundaryAvoidanceQuietInInterior(t *testing.T) {
	w, m := boundaryWorld(t, Vec2{0, 0})
	m.intent = Vec2{}
	w.applyBoundaryAvoidance()

	if m.intent != (Vec2{}) {
		t.Fatalf("interior agent should receive no boundary force, intent=%v", m.intent)
	}
}

func TestBoundaryAvoidanceSkipsNonWandering(t *testing.T) {
	w, m := boundaryWorld(t, Vec2{-450, 0})
	m.action = ActionCharging
	m.intent = Vec2{}
	w.applyBoundaryAvoidance()

	if m.intent != (Vec2{}) {
		t.Fatalf("charging agent must ignore boundary steering, intent=%v", m.intent)
	}
}
