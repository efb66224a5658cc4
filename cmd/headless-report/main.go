package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Garsondee/Moodel-Sim/internal/obs"
	"github.com/Garsondee/Moodel-Sim/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64

	firstMoodChangeTick int
	firstRageTick       int
	firstAimTick        int
	firstChargeTick     int
	firstCorrectEntry   int
	firstZoneSatisfied  int
	winTick             int

	moodChanges    int
	actionChanges  int
	correctEntries int
	zonePops       int

	won        bool
	finalMoods map[sim.Mood]int
	zones      []sim.ZoneStatus
	chargers   map[string]struct{}
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var configPath string
	var recordPath string
	var listenAddr string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run (60 ticks = 1s)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "playground", "builtin level id")
	flag.StringVar(&configPath, "config", "", "optional YAML tuning file")
	flag.StringVar(&recordPath, "record", "", "write zstd JSONL recordings to this path")
	flag.StringVar(&listenAddr, "listen", "", "serve live observer feed on this address (runs in real time)")
	flag.BoolVar(&verbose, "verbose", false, "log per-tick positions and intents")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	level, ok := sim.BuiltinLevel(scenario)
	if !ok {
		fmt.Printf("error: unknown scenario %q (supported: %s)\n",
			scenario, strings.Join(sim.BuiltinLevelIDs(), ", "))
		return
	}

	cfg := sim.DefaultAiConfig()
	if configPath != "" {
		loaded, err := sim.LoadAiConfig(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var broadcaster *obs.Broadcaster
	if listenAddr != "" {
		broadcaster = obs.NewBroadcaster(log.New(os.Stderr, "obs ", log.LstdFlags))
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", broadcaster.WSHandler())
		mux.HandleFunc("/state", broadcaster.StateHandler())
		go func() {
			if err := http.ListenAndServe(listenAddr, mux); err != nil {
				log.Printf("observer server: %v", err)
			}
		}()
		fmt.Printf("observer feed on ws://%s/ws\n", listenAddr)
	}

	fmt.Printf("=== Headless Moodel Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rec := openRecorder(recordPath, i+1, runs)
		stats := runScenario(i+1, seed, ticks, level, cfg, verbose, rec, broadcaster)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
	if broadcaster != nil {
		broadcaster.Close()
	}
}

// openRecorder opens a per-run recording, suffixing the path with the run
// index when there is more than one run. Returns nil when recording is off.
func openRecorder(path string, runIndex, runs int) *sim.RunRecorder {
	if path == "" {
		return nil
	}
	if runs > 1 {
		path = fmt.Sprintf("%s.run%d", path, runIndex)
	}
	rec, err := sim.NewRunRecorder(path)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	return rec
}

func runScenario(runIndex int, seed int64, ticks int, level *sim.Level, cfg sim.AiConfig, verbose bool, rec *sim.RunRecorder, broadcaster *obs.Broadcaster) runStats {
	ts := sim.NewTestSim(
		sim.WithSeed(seed),
		sim.WithConfig(cfg),
		sim.WithVerbose(verbose),
		sim.WithLevel(level),
	)

	if rec != nil {
		meta := sim.RunMeta{
			Level:     level.Name,
			Seed:      seed,
			TickRate:  1.0 / ts.Dt,
			Config:    cfg,
			StartedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := rec.WriteMeta(meta); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	}

	for t := 0; t < ticks; t++ {
		events := ts.Step()
		if rec != nil {
			if err := rec.WriteFrame(ts.World, events); err != nil {
				fmt.Printf("error: %v\n", err)
				os.Exit(1)
			}
		}
		if broadcaster != nil {
			broadcaster.Publish(ts.World, events)
			time.Sleep(time.Duration(float64(time.Second) * ts.Dt))
		}
	}

	if rec != nil {
		if err := rec.Close(); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	}

	sl := ts.SimLog
	chargers := map[string]struct{}{}
	for _, e := range sl.Filter("action", "change") {
		if strings.Contains(e.Value, "→ charging") {
			chargers[e.Moodel] = struct{}{}
		}
	}

	finalMoods := map[sim.Mood]int{}
	for _, m := range ts.World.Moodels() {
		finalMoods[m.Mood()]++
	}

	return runStats{
		runIndex:            runIndex,
		seed:                seed,
		firstMoodChangeTick: sl.FirstTick("mood", "change", ""),
		firstRageTick:       sl.FirstTick("mood", "change", "→ rage"),
		firstAimTick:        sl.FirstTick("action", "change", "→ aiming"),
		firstChargeTick:     sl.FirstTick("action", "change", "→ charging"),
		firstCorrectEntry:   sl.FirstTick("zone", "correct_entry", ""),
		firstZoneSatisfied:  sl.FirstTick("zone", "satisfied", "true"),
		winTick:             sl.FirstTick("level", "complete", ""),
		moodChanges:         sl.CountCategory("mood", "change"),
		actionChanges:       sl.CountCategory("action", "change"),
		correctEntries:      sl.CountCategory("zone", "correct_entry"),
		zonePops:            sl.CountCategory("zone", "pop"),
		won:                 ts.World.LevelComplete(),
		finalMoods:          finalMoods,
		zones:               ts.World.ZoneStatuses(),
		chargers:            chargers,
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_mood_change=%d first_rage=%d first_aim=%d first_charge=%d first_correct_entry=%d first_zone_satisfied=%d win=%d\n",
		rs.firstMoodChangeTick, rs.firstRageTick, rs.firstAimTick, rs.firstChargeTick,
		rs.firstCorrectEntry, rs.firstZoneSatisfied, rs.winTick)
	fmt.Printf("event_totals: mood_change=%d action_change=%d correct_entry=%d zone_pop=%d\n",
		rs.moodChanges, rs.actionChanges, rs.correctEntries, rs.zonePops)

	fmt.Printf("final_moods:")
	for _, mood := range sim.AllMoods() {
		if n := rs.finalMoods[mood]; n > 0 {
			fmt.Printf(" %s=%d", mood, n)
		}
	}
	fmt.Println()

	for _, z := range rs.zones {
		fmt.Printf("zone %d (%s): %d/%d satisfied=%v\n",
			z.ID, z.TargetMood, z.CurrentCount, z.RequiredCount, z.Satisfied)
	}
	fmt.Printf("chargers: %s\n", joinSet(rs.chargers))
	fmt.Printf("level_complete=%v\n\n", rs.won)
}

func printAggregate(all []runStats) {
	totalMood := 0
	totalAction := 0
	totalEntry := 0
	totalPop := 0
	wins := 0

	rageTicks := make([]int, 0, len(all))
	chargeTicks := make([]int, 0, len(all))
	entryTicks := make([]int, 0, len(all))
	winTicks := make([]int, 0, len(all))
	chargersGlobal := map[string]struct{}{}

	for _, rs := range all {
		totalMood += rs.moodChanges
		totalAction += rs.actionChanges
		totalEntry += rs.correctEntries
		totalPop += rs.zonePops
		if rs.won {
			wins++
		}
		if rs.firstRageTick >= 0 {
			rageTicks = append(rageTicks, rs.firstRageTick)
		}
		if rs.firstChargeTick >= 0 {
			chargeTicks = append(chargeTicks, rs.firstChargeTick)
		}
		if rs.firstCorrectEntry >= 0 {
			entryTicks = append(entryTicks, rs.firstCorrectEntry)
		}
		if rs.winTick >= 0 {
			winTicks = append(winTicks, rs.winTick)
		}
		for label := range rs.chargers {
			chargersGlobal[label] = struct{}{}
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d wins=%d win_rate=%.0f%%\n", len(all), wins, avg(wins, len(all))*100)
	fmt.Printf("avg_events_per_run: mood_change=%.1f action_change=%.1f correct_entry=%.1f zone_pop=%.1f\n",
		avg(totalMood, len(all)), avg(totalAction, len(all)), avg(totalEntry, len(all)), avg(totalPop, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_rage=%s first_charge=%s first_correct_entry=%s win=%s\n",
		avgTickString(rageTicks), avgTickString(chargeTicks), avgTickString(entryTicks), avgTickString(winTicks))
	fmt.Printf("unique_chargers=%d [%s]\n", len(chargersGlobal), joinSet(chargersGlobal))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
