package sim

import "fmt"

// PlayArea is the rectangular region agents are contained within.
type PlayArea struct {
	Center Vec2
	Size   Vec2
}

// Min returns the lower-left corner.
func (p PlayArea) Min() Vec2 { return p.Center.Sub(p.Size.Mul(0.5)) }

// Max returns the upper-right corner.
func (p PlayArea) Max() Vec2 { return p.Center.Add(p.Size.Mul(0.5)) }

// MoodelSpawn places one agent at level start.
type MoodelSpawn struct {
	Mood     Mood
	Position Vec2
}

// ObstacleSpawn places a static wall. The core carries obstacles as data for
// the external physics layer; only the collision events derived from them
// matter to the simulation.
type ObstacleSpawn struct {
	Position Vec2
	Size     Vec2
}

// GoalZoneSpawn places a goal zone requiring RequiredCount agents of
// TargetMood inside it.
type GoalZoneSpawn struct {
	Position      Vec2
	Size          Vec2
	TargetMood    Mood
	RequiredCount int
}

// Level is an already-parsed, immutable level descriptor. File parsing and
// hot reload are an external collaborator's job; the core only ever sees
// this struct.
type Level struct {
	Name      string
	PlayArea  PlayArea
	Moodels   []MoodelSpawn
	Obstacles []ObstacleSpawn
	GoalZones []GoalZoneSpawn
}

// Validate rejects malformed level data before any entity is spawned.
func (l *Level) Validate() error {
	if l.PlayArea.Size.X() <= 0 || l.PlayArea.Size.Y() <= 0 {
		return fmt.Errorf("level %q: play area size must be positive, got %v", l.Name, l.PlayArea.Size)
	}
	for i, m := range l.Moodels {
		if !m.Mood.Valid() {
			return fmt.Errorf("level %q: moodel %d has unrecognized mood %d", l.Name, i, m.Mood)
		}
	}
	for i, o := range l.Obstacles {
		if o.Size.X() <= 0 || o.Size.Y() <= 0 {
			return fmt.Errorf("level %q: obstacle %d size must be positive, got %v", l.Name, i, o.Size)
		}
	}
	for i, z := range l.GoalZones {
		if !z.TargetMood.Valid() {
			return fmt.Errorf("level %q: goal zone %d has unrecognized target mood %d", l.Name, i, z.TargetMood)
		}
		if z.RequiredCount < 0 {
			return fmt.Errorf("level %q: goal zone %d required count must be >= 0, got %d", l.Name, i, z.RequiredCount)
		}
		if z.Size.X() <= 0 || z.Size.Y() <= 0 {
			return fmt.Errorf("level %q: goal zone %d size must be positive, got %v", l.Name, i, z.Size)
		}
	}
	return nil
}

// BuiltinLevel returns a programmatically defined level by id, or false when
// no such level exists.
func BuiltinLevel(id string) (*Level, bool) {
	switch id {
	case "tutorial":
		return tutorialLevel(), true
	case "playground":
		return playgroundLevel(), true
	default:
		return nil, false
	}
}

// BuiltinLevelIDs lists the available programmatic levels.
func BuiltinLevelIDs() []string { return []string{"tutorial", "playground"} }

func tutorialLevel() *Level {
	return &Level{
		Name:     "Tutorial",
		PlayArea: PlayArea{Size: Vec2{900, 600}},
		Moodels: []MoodelSpawn{
			{Mood: MoodHappy, Position: Vec2{-200, 0}},
		},
		Obstacles: []ObstacleSpawn{
			{Position: Vec2{0, 0}, Size: Vec2{20, 300}},
		},
		GoalZones: []GoalZoneSpawn{
			{Position: Vec2{350, 0}, Size: Vec2{200, 200}, TargetMood: MoodHappy, RequiredCount: 1},
		},
	}
}

func playgroundLevel() *Level {
	return &Level{
		Name:     "Playground",
		PlayArea: PlayArea{Size: Vec2{1400, 900}},
		Moodels: []MoodelSpawn{
			{Mood: MoodNeutral, Position: Vec2{-200, 100}},
			{Mood: MoodNeutral, Position: Vec2{200, -100}},
			{Mood: MoodHappy, Position: Vec2{0, 200}},
			{Mood: MoodHappy, Position: Vec2{-150, -150}},
			{Mood: MoodCalm, Position: Vec2{300, 0}},
			{Mood: MoodCalm, Position: Vec2{-100, 0}},
			{Mood: MoodSad, Position: Vec2{100, 150}},
			{Mood: MoodSad, Position: Vec2{-250, -50}},
			{Mood: MoodRage, Position: Vec2{250, 100}},
			{Mood: MoodNeutral, Position: Vec2{0, -200}},
			{Mood: MoodHappy, Position: Vec2{-350, 0}},
			{Mood: MoodCalm, Position: Vec2{350, -50}},
			{Mood: MoodSad, Position: Vec2{-50, 250}},
			{Mood: MoodNeutral, Position: Vec2{50, -250}},
			{Mood: MoodHappy, Position: Vec2{150, 50}},
		},
		GoalZones: []GoalZoneSpawn{
			{Position: Vec2{-500, 250}, Size: Vec2{250, 250}, TargetMood: MoodHappy, RequiredCount: 2},
			{Position: Vec2{500, -250}, Size: Vec2{250, 250}, TargetMood: MoodCalm, RequiredCount: 1},
		},
	}
}
