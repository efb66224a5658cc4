package sim

// GoalZone tracks which agents are geometrically inside it and whether
// enough of them carry the target mood. The occupancy set is mutated only by
// collision-event processing; counts and satisfaction are recomputed from
// live moods every tick so a resident's mood change registers without a new
// collision event.
type GoalZone struct {
	id            int
	pos           Vec2
	size          Vec2
	targetMood    Mood
	requiredCount int

	occupants    map[int]struct{}
	currentCount int
	satisfied    bool
}

func newGoalZone(id int, spawn GoalZoneSpawn) *GoalZone {
	return &GoalZone{
		id:            id,
		pos:           spawn.Position,
		size:          spawn.Size,
		targetMood:    spawn.TargetMood,
		requiredCount: spawn.RequiredCount,
		occupants:     make(map[int]struct{}),
	}
}

// ID returns the zone's stable identifier.
func (z *GoalZone) ID() int { return z.id }

// Position returns the zone's center.
func (z *GoalZone) Position() Vec2 { return z.pos }

// Size returns the zone's extent.
func (z *GoalZone) Size() Vec2 { return z.size }

// TargetMood returns the mood this zone collects.
func (z *GoalZone) TargetMood() Mood { return z.targetMood }

// RequiredCount returns how many matching agents satisfy the zone.
func (z *GoalZone) RequiredCount() int { return z.requiredCount }

// CurrentCount returns the number of resident agents whose live mood matches
// the target, as of the last recompute.
func (z *GoalZone) CurrentCount() int { return z.currentCount }

// Satisfied reports whether currentCount >= requiredCount as of the last
// recompute.
func (z *GoalZone) Satisfied() bool { return z.satisfied }

// Occupancy returns the number of agents geometrically inside, regardless of
// mood.
func (z *GoalZone) Occupancy() int { return len(z.occupants) }

// enter inserts an agent into the occupancy set. Reports whether the agent
// was newly added (a stale duplicate enter is a no-op).
func (z *GoalZone) enter(id int) bool {
	if _, ok := z.occupants[id]; ok {
		return false
	}
	z.occupants[id] = struct{}{}
	return true
}

// exit removes an agent from the occupancy set. Stale ids are a no-op.
func (z *GoalZone) exit(id int) {
	delete(z.occupants, id)
}

// recompute refreshes currentCount and satisfaction from live moods.
// moodOf returns false for ids no longer alive; those simply do not count.
func (z *GoalZone) recompute(moodOf func(int) (Mood, bool)) {
	n := 0
	for id := range z.occupants {
		if mood, ok := moodOf(id); ok && mood == z.targetMood {
			n++
		}
	}
	z.currentCount = n
	z.satisfied = n >= z.requiredCount
}

// ZoneStatus is the per-zone progress exposed to external rendering.
type ZoneStatus struct {
	ID            int  `json:"id"`
	TargetMood    Mood `json:"target_mood"`
	CurrentCount  int  `json:"current_count"`
	RequiredCount int  `json:"required_count"`
	Satisfied     bool `json:"satisfied"`
}

// Status returns the zone's externally visible progress.
func (z *GoalZone) Status() ZoneStatus {
	return ZoneStatus{
		ID:            z.id,
		TargetMood:    z.targetMood,
		CurrentCount:  z.currentCount,
		RequiredCount: z.requiredCount,
		Satisfied:     z.satisfied,
	}
}
