package sim

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation run.
type SimLogEntry struct {
	Tick     int     `json:"tick"`
	Moodel   string  `json:"moodel"` // label e.g. "M3", or "--" for global events
	Category string  `json:"category"`
	Key      string  `json:"key"`
	Value    string  `json:"value"`
	NumVal   float64 `json:"num,omitempty"` // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] M3   mood   change   calm → happy
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Moodel, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless run. It is unbounded
// and machine-readable; the categories in use are mood, action, zone, level,
// move, and wander.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position and
// intent entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, moodel, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Moodel:   moodel,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, moodel, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, moodel, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

// Filter returns entries matching the given category and/or key. Pass the
// empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterMoodel returns entries for a specific agent label.
func (sl *SimLog) FilterMoodel(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Moodel == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// FirstTick returns the tick of the earliest entry matching category, key,
// and value substring, or -1 when none matches.
func (sl *SimLog) FirstTick(category, key, valueSubstr string) int {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return e.Tick
	}
	return -1
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	return sl.FirstTick(category, key, valueSubstr) >= 0
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the world state.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.CurrentTick())

	counts := map[Mood]int{}
	actions := map[ActionKind]int{}
	for _, m := range w.Moodels() {
		counts[m.Mood()]++
		actions[m.Action()]++
	}
	sb.WriteString("moods: ")
	for _, mood := range AllMoods() {
		if n := counts[mood]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", mood, n)
		}
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "actions: wandering=%d aiming=%d charging=%d\n",
		actions[ActionWandering], actions[ActionAiming], actions[ActionCharging])

	for _, z := range w.Zones() {
		st := z.Status()
		fmt.Fprintf(&sb, "zone %d (%s): %d/%d satisfied=%v\n",
			st.ID, st.TargetMood, st.CurrentCount, st.RequiredCount, st.Satisfied)
	}
	fmt.Fprintf(&sb, "level_complete=%v\n", w.LevelComplete())
	return sb.String()
}
