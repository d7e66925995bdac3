package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/aldenmott/stagfall/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	firstSightTick   int
	firstChaseTick   int
	firstAttackTick  int
	firstRetreatTick int
	firstKillTick    int
	lastKillTick     int

	stateChanges int
	playerHits   int
	playerKills  int

	spawned      int
	survivors    int
	survivorInfo map[string]string

	playerHealth float64
	playerAlive  bool
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "assault", "scenario name")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	roster, ok := scenarios[scenario]
	if !ok {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", scenario, scenarioNames())
		return
	}

	fmt.Printf("=== Headless Combat Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(i+1, seed, ticks, roster)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// A scenario is a roster of hostiles spawned east of a player who holds
// position, aims down the approach, and fires at whatever crosses the cone.
type scenarioSpawn struct {
	t    sim.EnemyType
	x, z float64
}

var scenarios = map[string][]scenarioSpawn{
	"assault": {
		{sim.EnemyGrunt, 50, -6},
		{sim.EnemyGrunt, 55, 6},
		{sim.EnemyScout, 65, -12},
		{sim.EnemyRaider, 60, 0},
		{sim.EnemyHeavy, 45, 10},
		{sim.EnemyMarksman, 80, -4},
	},
	"warband": {
		{sim.EnemyWarlord, 70, 0},
		{sim.EnemyRobot, 60, 8},
		{sim.EnemyCutthroat, 45, -6},
		{sim.EnemyHound, 40, 6},
		{sim.EnemyDeserter, 55, -12},
	},
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for k := range scenarios {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func runScenario(runIndex int, seed int64, ticks int, roster []scenarioSpawn) runStats {
	opts := []sim.SimOption{
		sim.WithSeed(seed),
		sim.WithNoWorldObjects(),
		sim.WithCorpseTime(10),
	}
	for _, sp := range roster {
		// Each hostile patrols toward the player's position so every run
		// opens with the roster converging on the defender.
		opts = append(opts, sim.WithEnemyPatrol(sp.t, sp.x, sp.z, sim.Vec3{}))
	}
	ts := sim.NewTestSim(opts...)
	ts.SetInput(sim.Input{Aim: true, Fire: true})
	ts.RunTicks(ticks)

	entries := ts.Log.Entries()
	survivorInfo := map[string]string{}
	for _, e := range ts.Enemies.AliveEnemies() {
		survivorInfo[e.Label()] = fmt.Sprintf("%s:%s", e.Type, e.State)
	}

	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		ticks:            ticks,
		firstSightTick:   firstTick(entries, "state", "transition", "→ investigating"),
		firstChaseTick:   firstTick(entries, "state", "transition", "→ chasing"),
		firstAttackTick:  firstTick(entries, "state", "transition", "→ attacking"),
		firstRetreatTick: firstTick(entries, "state", "transition", "→ retreating"),
		firstKillTick:    firstTick(entries, "combat", "kill", ""),
		lastKillTick:     lastTick(entries, "combat", "kill", ""),
		stateChanges:     ts.Log.CountCategory("state", "transition"),
		playerHits:       ts.Log.CountCategory("combat", "shot_hit"),
		playerKills:      ts.Log.CountCategory("combat", "kill"),
		spawned:          len(roster),
		survivors:        len(ts.Enemies.AliveEnemies()),
		survivorInfo:     survivorInfo,
		playerHealth:     ts.Player.Health.Current,
		playerAlive:      ts.Player.Health.Current > 0,
	}
}

func firstTick(entries []sim.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func lastTick(entries []sim.SimLogEntry, category, key, contains string) int {
	last := -1
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			last = e.Tick
		}
	}
	return last
}

// classifyOutcome labels a finished run. "cleared" means every hostile died
// with the player standing, "overrun" means the player died, "contested"
// covers everything in between.
func classifyOutcome(rs runStats) (string, string) {
	switch {
	case !rs.playerAlive:
		return "overrun", fmt.Sprintf("player_dead survivors=%d/%d", rs.survivors, rs.spawned)
	case rs.survivors == 0:
		return "cleared", fmt.Sprintf("all_hostiles_down last_kill_tick=%d", rs.lastKillTick)
	default:
		return "contested", fmt.Sprintf("survivors=%d/%d player_hp=%.0f", rs.survivors, rs.spawned, rs.playerHealth)
	}
}

func printRun(rs runStats) {
	outcome, detail := classifyOutcome(rs)
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_sight=%d first_chase=%d first_attack=%d first_retreat=%d first_kill=%d last_kill=%d\n",
		rs.firstSightTick, rs.firstChaseTick, rs.firstAttackTick, rs.firstRetreatTick, rs.firstKillTick, rs.lastKillTick)
	fmt.Printf("event_totals: state_change=%d player_hits=%d player_kills=%d\n",
		rs.stateChanges, rs.playerHits, rs.playerKills)
	fmt.Printf("outcome=%s (%s)\n", outcome, detail)
	fmt.Printf("player: alive=%t hp=%.0f\n", rs.playerAlive, rs.playerHealth)
	fmt.Printf("survivors: %s\n", joinSurvivors(rs.survivorInfo))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalState := 0
	totalHits := 0
	totalKills := 0
	totalSurvivors := 0
	cleared := 0
	overrun := 0
	playerDeaths := 0

	sightTicks := make([]int, 0, len(all))
	chaseTicks := make([]int, 0, len(all))
	attackTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalState += rs.stateChanges
		totalHits += rs.playerHits
		totalKills += rs.playerKills
		totalSurvivors += rs.survivors
		outcome, _ := classifyOutcome(rs)
		switch outcome {
		case "cleared":
			cleared++
		case "overrun":
			overrun++
		}
		if !rs.playerAlive {
			playerDeaths++
		}
		if rs.firstSightTick >= 0 {
			sightTicks = append(sightTicks, rs.firstSightTick)
		}
		if rs.firstChaseTick >= 0 {
			chaseTicks = append(chaseTicks, rs.firstChaseTick)
		}
		if rs.firstAttackTick >= 0 {
			attackTicks = append(attackTicks, rs.firstAttackTick)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d cleared=%d overrun=%d contested=%d\n", len(all), cleared, overrun, len(all)-cleared-overrun)
	fmt.Printf("avg_events_per_run: state_change=%.1f player_hits=%.1f player_kills=%.1f\n",
		avg(totalState, len(all)), avg(totalHits, len(all)), avg(totalKills, len(all)))
	fmt.Printf("avg_survivors_per_run=%.1f player_death_rate=%.0f%%\n",
		avg(totalSurvivors, len(all)), avg(playerDeaths, len(all))*100)
	fmt.Printf("phase_marker_avg_ticks: first_sight=%s first_chase=%s first_attack=%s first_kill=%s\n",
		avgTickString(sightTicks), avgTickString(chaseTicks), avgTickString(attackTicks), avgTickString(killTicks))
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

func joinSurvivors(info map[string]string) string {
	if len(info) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(info))
	for k := range info {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s(%s)", l, info[l]))
	}
	return strings.Join(parts, ",")
}
