package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog"
)

// Player hitscan tuning. The controller only pulls the trigger; the sim
// resolves the shot against the roster.
const (
	playerFireRange    = 120.0 // units
	playerAimConeHalf  = 0.12  // rad, target acquisition half-angle
	playerBaseAccuracy = 0.75
	playerAimBonus     = 1.25 // accuracy multiplier while aiming
)

// SimConfig bundles everything needed to build a deterministic simulation.
type SimConfig struct {
	Seed       int64
	TickRate   int     // simulation ticks per second
	CorpseTime float64 // seconds a dead enemy lingers before removal
	Verbose    bool    // verbose SimLog entries

	Player            PlayerConfig
	PlayerWeapon      WeaponType
	PlayerReserveAmmo int

	WorldGen WorldGenConfig
	Terrain  Terrain
	Sound    SoundPlayer
}

// DefaultSimConfig is the baseline: 60 ticks/s on flat terrain, a rifle with
// three spare magazines, immediate corpse removal.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Seed:              1,
		TickRate:          60,
		Player:            DefaultPlayerConfig(),
		PlayerWeapon:      WeaponRifle,
		PlayerReserveAmmo: 90,
		WorldGen:          DefaultWorldGen(),
		Terrain:           FlatTerrain{},
		Sound:             NullSound{},
	}
}

// Sim owns the clock and drives the player, the enemy roster and the
// deferred-event scheduler in a fixed order each tick. Single-threaded; one
// Step call is one tick.
type Sim struct {
	cfg  SimConfig
	dt   float64
	tick int
	now  float64

	Player  *Player
	Enemies *Manager
	Objects []WorldObject
	Log     *SimLog

	rng  *rand.Rand
	zlog zerolog.Logger

	prevPlayerState PlayerState
	prevStates      map[int]EnemyState
}

// NewSim builds a simulation from cfg. The world objects are generated
// immediately from the seed; the roster starts empty.
func NewSim(cfg SimConfig, zlog zerolog.Logger) *Sim {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.Terrain == nil {
		cfg.Terrain = FlatTerrain{}
	}
	if cfg.Sound == nil {
		cfg.Sound = NullSound{}
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- simulation only

	weapon := NewWeapon(cfg.PlayerWeapon, cfg.PlayerReserveAmmo)
	player := NewPlayer(cfg.Player, Vec3{}, weapon, cfg.Terrain, cfg.Sound, cfg.Seed+1)

	mgr := NewManager(cfg.Seed+2, cfg.Sound, zlog.With().Str("component", "manager").Logger())
	mgr.CorpseTime = cfg.CorpseTime

	return &Sim{
		cfg:        cfg,
		dt:         1.0 / float64(cfg.TickRate),
		Player:     player,
		Enemies:    mgr,
		Objects:    GenerateWorldObjects(cfg.WorldGen, cfg.Terrain, rng),
		Log:        NewSimLog(cfg.Verbose),
		rng:        rng,
		zlog:       zlog,
		prevStates: map[int]EnemyState{},
	}
}

// Tick returns the number of completed ticks.
func (s *Sim) Tick() int { return s.tick }

// Now returns the current sim-clock time in seconds.
func (s *Sim) Now() float64 { return s.now }

// Dt returns the fixed tick duration in seconds.
func (s *Sim) Dt() float64 { return s.dt }

// Terrain returns the height field the simulation runs on.
func (s *Sim) Terrain() Terrain { return s.cfg.Terrain }

// Step advances the simulation one fixed tick with input sampled at tick
// start. Update order within a tick: player, player shot resolution, then
// the roster (scheduler first, then each enemy).
func (s *Sim) Step(in Input) {
	s.tick++
	s.now = float64(s.tick) * s.dt

	s.Player.Update(s.dt, s.now, in)
	if s.Player.FiredThisTick {
		s.resolvePlayerShot()
	}
	s.Enemies.UpdateEnemies(s.dt, s.now, s.Player)
	s.logTransitions()
}

// RunTicks advances the simulation n ticks with the same input each tick.
func (s *Sim) RunTicks(n int, in Input) {
	for i := 0; i < n; i++ {
		s.Step(in)
	}
}

// resolvePlayerShot performs the hitscan for a shot the controller just
// emitted: pick the nearest live enemy inside the aim cone, roll to hit, roll
// a body zone, apply damage.
func (s *Sim) resolvePlayerShot() {
	p := s.Player
	target := s.acquireTarget()
	if target == nil {
		s.Log.AddVerbose(s.tick, "player", "combat", "shot_missed", "no target in cone", 0)
		return
	}

	dist := DistXZ(p.Pos, target.Pos)
	chance := playerBaseAccuracy * clamp(p.Skills.Accuracy, 0, 2) * rangeAccuracy(dist, playerFireRange)
	if p.State == PlayerAiming {
		chance *= playerAimBonus
	}
	if s.rng.Float64() > clamp01(chance) {
		s.Log.AddVerbose(s.tick, "player", "combat", "shot_missed", target.Label(), dist)
		return
	}

	zone := rollZone(s.rng)
	dmg := p.Weapon.Config().Damage
	killed := target.TakeDamage(dmg, DamageBullet, zone, p.Pos)
	s.Log.Add(s.tick, "player", "combat", "shot_hit",
		fmt.Sprintf("%s %s", target.Label(), zone), dmg)
	if killed {
		s.Log.Add(s.tick, "player", "combat", "kill", target.Label(), 0)
		s.Enemies.NotifyKilled(target)
	}
}

// acquireTarget returns the nearest live enemy within range and inside the
// aim cone around the player's yaw, or nil.
func (s *Sim) acquireTarget() *Enemy {
	p := s.Player
	var best *Enemy
	bestDist := playerFireRange
	for _, e := range s.Enemies.AliveEnemies() {
		dist := DistXZ(p.Pos, e.Pos)
		if dist > bestDist {
			continue
		}
		offset := math.Abs(normalizeAngle(HeadingTo(p.Pos, e.Pos) - p.Yaw))
		if offset > playerAimConeHalf {
			continue
		}
		best = e
		bestDist = dist
	}
	return best
}

// logTransitions diffs player and enemy states against the previous tick and
// records every change in the SimLog.
func (s *Sim) logTransitions() {
	if ps := s.Player.State; ps != s.prevPlayerState {
		s.Log.Add(s.tick, "player", "state", "transition",
			fmt.Sprintf("%s → %s", s.prevPlayerState, ps), 0)
		s.prevPlayerState = ps
	}

	seen := map[int]bool{}
	for _, e := range s.Enemies.enemies {
		seen[e.ID] = true
		prev, ok := s.prevStates[e.ID]
		if !ok {
			s.Log.Add(s.tick, e.Label(), "state", "spawn", e.Type.String(), 0)
			s.prevStates[e.ID] = e.State
			continue
		}
		if e.State != prev {
			s.Log.Add(s.tick, e.Label(), "state", "transition",
				fmt.Sprintf("%s → %s", prev, e.State), e.Alert)
			s.prevStates[e.ID] = e.State
		}
		s.Log.AddVerbose(s.tick, e.Label(), "alert", "level",
			fmt.Sprintf("%.2f", e.Alert), e.Alert)
	}
	for id := range s.prevStates {
		if !seen[id] {
			delete(s.prevStates, id)
		}
	}
}
