package sim

// CollisionPhase distinguishes contact begin from contact end.
type CollisionPhase int

const (
	CollisionBegin CollisionPhase = iota
	CollisionEnd
)

// CollisionKind tags which entity categories touched. The external physics
// layer classifies pairs; the core only routes by kind.
type CollisionKind int

const (
	CollideMoodelMoodel CollisionKind = iota
	CollideMoodelZone
	CollideMoodelObstacle
)

// CollisionEvent is one physics notification. A is always a moodel id; B is
// a moodel, zone, or obstacle id depending on Kind.
type CollisionEvent struct {
	Phase CollisionPhase
	Kind  CollisionKind
	A, B  int
}

// maxPendingCollisions bounds the intake queue between ticks. Events beyond
// the bound are dropped and counted rather than growing without limit.
const maxPendingCollisions = 4096

// EventKind identifies an output event surfaced by World.Tick.
type EventKind int

const (
	// EventMoodChanged: a moodel's mood changed; OldMood/NewMood are set.
	// Consumed externally for sprite/color/audio cues.
	EventMoodChanged EventKind = iota
	// EventCorrectEntry: a moodel entered a zone whose target mood it
	// already matches. Cue for the audio layer.
	EventCorrectEntry
	// EventZonePop: transient animation hint paired with a correct entry.
	EventZonePop
	// EventLevelComplete: one-shot, fired the tick the win latch sets.
	EventLevelComplete
)

func (k EventKind) String() string {
	switch k {
	case EventMoodChanged:
		return "mood_changed"
	case EventCorrectEntry:
		return "correct_entry"
	case EventZonePop:
		return "zone_pop"
	case EventLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// Event is one simulation output for external cosmetic/audio/UI reaction.
// Fields beyond Kind are populated only where meaningful.
type Event struct {
	Kind    EventKind `json:"kind"`
	Tick    int       `json:"tick"`
	Moodel  int       `json:"moodel,omitempty"`
	Zone    int       `json:"zone,omitempty"`
	OldMood Mood      `json:"old_mood,omitempty"`
	NewMood Mood      `json:"new_mood,omitempty"`
}
