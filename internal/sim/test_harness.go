package sim

import "github.com/rs/zerolog"

// TestSim is a headless harness used exclusively by tests. It wraps Sim with
// deterministic seeding, held input, and spawn helpers.
type TestSim struct {
	*Sim
	input Input
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // mutates SimConfig — applied first
	simOptSpawn                       // acts on the built sim — applied after construction
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	cfg  func(*SimConfig)
	post func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *SimConfig) {
		c.Seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *SimConfig) {
		c.Verbose = v
	}}
}

// WithTickRate overrides the default 60 ticks/s.
func WithTickRate(tps int) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *SimConfig) {
		c.TickRate = tps
	}}
}

// WithCorpseTime sets how long dead enemies linger on the roster.
func WithCorpseTime(seconds float64) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *SimConfig) {
		c.CorpseTime = seconds
	}}
}

// WithNoWorldObjects disables tree/stone generation for an empty field.
func WithNoWorldObjects() SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *SimConfig) {
		c.WorldGen.Trees = 0
		c.WorldGen.Stones = 0
	}}
}

// WithPlayerWeapon arms the player with the given weapon and reserve.
func WithPlayerWeapon(t WeaponType, reserve int) SimOption {
	return SimOption{kind: simOptConfig, cfg: func(c *SimConfig) {
		c.PlayerWeapon = t
		c.PlayerReserveAmmo = reserve
	}}
}

// WithPlayerAt moves the player to (x, z) after construction.
func WithPlayerAt(x, z float64) SimOption {
	return SimOption{kind: simOptSpawn, post: func(ts *TestSim) {
		ts.Player.Pos = Vec3{X: x, Z: z}
		ts.Player.Pos.Y = ts.Terrain().HeightAt(x, z)
	}}
}

// WithPlayerSkills overrides the default 1.0 skill set.
func WithPlayerSkills(sk Skills) SimOption {
	return SimOption{kind: simOptSpawn, post: func(ts *TestSim) {
		ts.Player.Skills = sk
	}}
}

// WithEnemy spawns an enemy of the given type at (x, z). Enemies get labels
// E0, E1, … in option order.
func WithEnemy(t EnemyType, x, z float64) SimOption {
	return SimOption{kind: simOptSpawn, post: func(ts *TestSim) {
		ts.Enemies.SpawnEnemy(t, Vec3{X: x, Z: z})
	}}
}

// WithEnemyPatrol spawns an enemy at (x, z) with an explicit patrol path
// instead of the generated one.
func WithEnemyPatrol(t EnemyType, x, z float64, path ...Vec3) SimOption {
	return SimOption{kind: simOptSpawn, post: func(ts *TestSim) {
		e := ts.Enemies.SpawnEnemy(t, Vec3{X: x, Z: z})
		e.patrolPath = path
		e.patrolIndex = 0
		if len(path) > 0 {
			e.Yaw = HeadingTo(e.Pos, path[0])
		}
	}}
}

// NewTestSim constructs a harness from the given options in two ordered
// passes: config first, then spawns against the built sim.
func NewTestSim(opts ...SimOption) *TestSim {
	cfg := DefaultSimConfig()
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.cfg(&cfg)
		}
	}
	ts := &TestSim{Sim: NewSim(cfg, zerolog.Nop())}
	for _, o := range opts {
		if o.kind == simOptSpawn {
			o.post(ts)
		}
	}
	return ts
}

// SetInput replaces the held input applied on subsequent ticks.
func (ts *TestSim) SetInput(in Input) {
	ts.input = in
}

// RunTicks advances the simulation n ticks with the held input.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step(ts.input)
	}
}

// RunUntil advances up to maxTicks, stopping early if predicate returns
// true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step(ts.input)
		if predicate(ts) {
			return ts.Tick()
		}
	}
	return -1
}

// Enemy returns the i-th spawned enemy still on the roster, by label order.
func (ts *TestSim) Enemy(i int) *Enemy {
	for _, e := range ts.Enemies.enemies {
		if e.ID == i {
			return e
		}
	}
	return nil
}
