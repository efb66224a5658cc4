package sim

import "testing"

func TestBuiltinLevelsValidate(t *testing.T) {
	for _, id := range BuiltinLevelIDs() {
		level, ok := BuiltinLevel(id)
		if !ok {
			t.Fatalf("builtin level %q missing", id)
		}
		if err := level.Validate(); err != nil {
			t.Errorf("builtin level %q invalid: %v", id, err)
		}
	}
	if _, ok := BuiltinLevel("nope"); ok {
		t.Fatal("unknown level id should report not found")
	}
}

func TestLevelValidateRejectsBadData(t *testing.T) {
	base := func() Level {
		return Level{
			Name:     "t",
			PlayArea: PlayArea{Size: Vec2{100, 100}},
		}
	}

	l := base()
	l.PlayArea.Size = Vec2{0, 100}
	if err := l.Validate(); err == nil {
		t.Error("degenerate play area should be rejected")
	}

	l = base()
	l.Moodels = []MoodelSpawn{{Mood: Mood(42)}}
	if err := l.Validate(); err == nil {
		t.Error("unrecognized spawn mood should be rejected")
	}

	l = base()
	l.Obstacles = []ObstacleSpawn{{Size: Vec2{-1, 10}}}
	if err := l.Validate(); err == nil {
		t.Error("negative obstacle size should be rejected")
	}

	l = base()
	l.GoalZones = []GoalZoneSpawn{{Size: Vec2{10, 10}, TargetMood: MoodHappy, RequiredCount: -1}}
	if err := l.Validate(); err == nil {
		t.Error("negative required count should be rejected")
	}

	l = base()
	l.GoalZones = []GoalZoneSpawn{{Size: Vec2{10, 10}, TargetMood: Mood(9)}}
	if err := l.Validate(); err == nil {
		t.Error("unrecognized zone target mood should be rejected")
	}
}
