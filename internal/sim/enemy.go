package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// EnemyState is the behaviour state of an enemy agent.
type EnemyState int

const (
	StatePatrolling EnemyState = iota
	StateInvestigating
	StateChasing
	StateAttacking
	StateTakingCover
	StateReloading
	StateFlanking
	StateRetreating
	StateDead
)

func (s EnemyState) String() string {
	switch s {
	case StatePatrolling:
		return "patrolling"
	case StateInvestigating:
		return "investigating"
	case StateChasing:
		return "chasing"
	case StateAttacking:
		return "attacking"
	case StateTakingCover:
		return "taking_cover"
	case StateReloading:
		return "reloading"
	case StateFlanking:
		return "flanking"
	case StateRetreating:
		return "retreating"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

const (
	// patrolReachRadius: a waypoint counts as visited inside this.
	patrolReachRadius = 2.0
	// coverReachRadius: close enough to the chosen cover point to settle.
	coverReachRadius = 1.5
	// attackCloseFrac of optimal range: closer than this and the agent
	// steps back to restore spacing.
	attackCloseFrac = 0.6

	alertSeenRate     = 2.0 // alert gain per second while the player is visible
	alertHeardRate    = 1.0 // alert gain per second while only heard
	alertDecayRate    = 0.5 // alert loss per second without stimulus
	alertInvestigate  = 0.3 // above this a patroller goes looking
	cowardRetreatFrac = 0.30
	cowardRecoverFrac = 0.60

	tacticalFlankChance  = 0.30
	tacticalCoverHealth  = 0.50
	tacticalCoverChance  = 0.40 // per tick below the health threshold
	sniperOpenFireFrac   = 0.80
	flankTimeout         = 3.0  // seconds before a flank reverts to chasing
	retreatRegroupDelay  = 10.0 // seconds before a regenerating coward rejoins
	coverReturnDelayMin  = 2.0
	coverReturnDelaySpan = 2.0 // uniform in [min, min+span]
)

// Enemy is one autonomous hostile agent. All mutation happens inside Update
// and TakeDamage; a DEAD enemy never changes again.
type Enemy struct {
	ID    int
	UID   uuid.UUID // stable handle for the rendering/observer boundary
	label string    // short log label, e.g. "E3"
	Type  EnemyType
	cfg   *EnemyConfig

	Pos Vec3
	Vel Vec3
	Yaw float64

	State  EnemyState
	Health Health
	Armor  Armor
	Weapon *Weapon

	// Transient AI memory.
	target             *Player // nil when no contact; never owned
	Alert              float64 // [0,1], grows with stimulus, decays without
	LastKnownPlayerPos Vec3
	hasLastKnown       bool
	patrolPath         []Vec3
	patrolIndex        int
	coverPos           *Vec3
	regrouped          bool    // rejoined via the regroup timer; blocks re-retreat
	investigationStart float64
	lastSightTime      float64
	flankStart         float64
	flankSide          float64 // +1 or -1, picked when the flank begins
	diedAt             float64
	lastSeenNow        float64

	rng   *rand.Rand
	sched *Scheduler
	sound SoundPlayer
}

// newEnemy is called by the Manager; spawn parameters (patrol path, RNG,
// scheduler) are owned there.
func newEnemy(id int, t EnemyType, pos Vec3, patrol []Vec3, rng *rand.Rand, sched *Scheduler, sound SoundPlayer) *Enemy {
	cfg := EnemyConfigFor(t)
	e := &Enemy{
		ID:     id,
		UID:    uuid.New(),
		label:  fmt.Sprintf("E%d", id),
		Type:   t,
		cfg:    cfg,
		Pos:    pos,
		State:  StatePatrolling,
		Health: Health{Current: cfg.Health, Max: cfg.Health, RegenRate: cfg.HealthRegen},
		Armor:  cfg.Armor,
		Weapon: newWeaponFromConfig(WeaponConfig{
			Damage:       cfg.Combat.Damage,
			MagazineSize: cfg.Combat.MagazineSize,
			FireInterval: cfg.Combat.FireInterval,
			ReloadTime:   cfg.Combat.ReloadTime,
		}, cfg.Combat.ReserveAmmo, cfg.Combat.BurstLength),
		patrolPath:    patrol,
		lastSightTime: math.Inf(-1),
		rng:           rng,
		sched:         sched,
		sound:         sound,
	}
	if len(patrol) > 0 {
		e.Yaw = HeadingTo(pos, patrol[0])
	}
	return e
}

// Config returns the immutable per-type tuning.
func (e *Enemy) Config() *EnemyConfig { return e.cfg }

// Label returns the short log label.
func (e *Enemy) Label() string { return e.label }

// Target returns the current target, or nil.
func (e *Enemy) Target() *Player { return e.target }

// PatrolPath returns the waypoints generated at spawn.
func (e *Enemy) PatrolPath() []Vec3 { return e.patrolPath }

// CoverPos returns the active cover point, or nil.
func (e *Enemy) CoverPos() *Vec3 { return e.coverPos }

// Update runs one tick of the agent: perception, state transition, movement
// integration, combat, regeneration — in that order. all is the live roster
// for teamwork queries.
func (e *Enemy) Update(dt, now float64, player *Player, all []*Enemy) {
	if e.State == StateDead {
		return
	}
	e.lastSeenNow = now

	visible, _ := e.perceive(dt, now, player)
	e.shareIntel(visible, all)
	e.transition(now, visible)
	e.move(dt, now)
	e.updateCombat(now)
	e.Health.Regen(dt)
}

// --- Perception ---

// canSeePlayer: inside the alert radius AND inside the field-of-view arc.
// No geometry occlusion test — the world's trees are concealment the
// renderer sells, not something this check models.
func (e *Enemy) canSeePlayer(p *Player) bool {
	if p == nil || p.State == PlayerDead {
		return false
	}
	dist := DistXZ(e.Pos, p.Pos)
	if dist > e.cfg.AI.AlertRadius {
		return false
	}
	offset := normalizeAngle(HeadingTo(e.Pos, p.Pos) - e.Yaw)
	return math.Abs(offset) <= e.cfg.AI.FieldOfView/2
}

// canHearPlayer: a running player inside the hearing radius is audible even
// outside the vision cone.
func (e *Enemy) canHearPlayer(p *Player) bool {
	if p == nil || p.State == PlayerDead {
		return false
	}
	return DistXZ(e.Pos, p.Pos) <= e.cfg.AI.HearingRadius && p.State == PlayerRunning
}

func (e *Enemy) perceive(dt, now float64, p *Player) (visible, heard bool) {
	visible = e.canSeePlayer(p)
	heard = !visible && e.canHearPlayer(p)

	switch {
	case visible:
		e.Alert += alertSeenRate * dt
		e.target = p
		e.LastKnownPlayerPos = p.Pos
		e.hasLastKnown = true
		e.lastSightTime = now
	case heard:
		e.Alert += alertHeardRate * dt
		e.LastKnownPlayerPos = p.Pos
		e.hasLastKnown = true
	default:
		e.Alert -= alertDecayRate * dt
	}
	e.Alert = clamp01(e.Alert)
	return visible, heard
}

// --- State machine ---

func (e *Enemy) transition(now float64, visible bool) {
	dist := math.Inf(1)
	if e.target != nil {
		dist = DistXZ(e.Pos, e.target.Pos)
	}

	// A timer-forced rejoin holds until the agent heals past the recovery
	// threshold; after that the normal retreat rule applies again.
	if e.regrouped && e.Health.Fraction() >= cowardRecoverFrac {
		e.regrouped = false
	}

	switch e.State {
	case StatePatrolling:
		if visible || e.Alert > alertInvestigate {
			e.setState(StateInvestigating, now)
		}

	case StateInvestigating:
		if visible {
			e.enterChase(now)
		} else if now-e.investigationStart >= e.cfg.AI.InvestigationTime {
			e.Alert = 0
			e.hasLastKnown = false
			e.setState(StatePatrolling, now)
		}

	case StateChasing:
		behavior := e.cfg.AI.Behavior
		switch {
		case behavior == BehaviorCoward && !e.regrouped && e.Health.Fraction() < cowardRetreatFrac:
			e.enterRetreat(now)
		case !visible && now-e.lastSightTime > e.cfg.AI.MemoryDuration:
			e.setState(StateInvestigating, now)
		case e.inAttackRange(dist):
			e.enterAttack(now)
		}

	case StateAttacking:
		switch {
		case e.cfg.AI.Behavior == BehaviorCoward && !e.regrouped && e.Health.Fraction() < cowardRetreatFrac:
			e.enterRetreat(now)
		case !visible || dist > e.cfg.Combat.MaxRange:
			e.enterChase(now)
		case e.Weapon.CurrentAmmo == 0 && e.Weapon.ReserveAmmo > 0:
			e.Weapon.StartReload(now)
			e.setState(StateReloading, now)
		case e.cfg.AI.Behavior == BehaviorTactical &&
			e.Health.Fraction() < tacticalCoverHealth &&
			e.rng.Float64() < tacticalCoverChance:
			e.enterCover(now)
		}

	case StateTakingCover:
		// Arrival and the randomized return delay are handled in move();
		// a nil coverPos here means the agent is settled and waiting for
		// the scheduled return.

	case StateReloading:
		if !e.Weapon.Reloading() {
			if visible {
				e.enterAttack(now)
			} else {
				e.enterChase(now)
			}
		}

	case StateFlanking:
		switch {
		case visible && e.inAttackRange(dist):
			e.enterAttack(now)
		case now-e.flankStart > flankTimeout:
			e.enterChase(now)
		}

	case StateRetreating:
		if e.Health.Fraction() >= cowardRecoverFrac {
			e.enterChase(now)
		}
	}
}

// inAttackRange applies the behaviour-specific engagement distance. Snipers
// hold fire until the gap closes to a fraction of their optimal range.
func (e *Enemy) inAttackRange(dist float64) bool {
	r := e.cfg.Combat.OptimalRange
	if e.cfg.AI.Behavior == BehaviorSniper {
		r *= sniperOpenFireFrac
	}
	return dist <= r
}

func (e *Enemy) setState(s EnemyState, now float64) {
	if e.State == s || e.State == StateDead {
		return
	}
	e.State = s
	if s == StateInvestigating {
		e.investigationStart = now
	}
}

func (e *Enemy) enterChase(now float64) {
	e.setState(StateChasing, now)
	// Tactical types may peel into a flank instead of a straight chase.
	if e.cfg.AI.Behavior == BehaviorTactical && e.rng.Float64() < tacticalFlankChance {
		e.enterFlank(now)
	}
}

func (e *Enemy) enterAttack(now float64) {
	e.setState(StateAttacking, now)
	e.Weapon.ResetBurst()
	e.coverPos = nil
}

func (e *Enemy) enterFlank(now float64) {
	e.setState(StateFlanking, now)
	e.flankStart = now
	e.flankSide = 1
	if e.rng.Float64() < 0.5 {
		e.flankSide = -1
	}
}

func (e *Enemy) enterCover(now float64) {
	cover := e.selectCover()
	if cover == nil {
		return // no usable direction: keep attacking
	}
	e.coverPos = cover
	e.setState(StateTakingCover, now)
}

func (e *Enemy) enterRetreat(now float64) {
	e.setState(StateRetreating, now)
	if e.Health.RegenRate > 0 {
		// Regenerating cowards rejoin the fight after the regroup delay
		// even if still below the recovery threshold. The regrouped flag
		// keeps them committed until they heal up or take a fresh hit.
		e.sched.After(now, retreatRegroupDelay, e, StateRetreating, func(a *Enemy) {
			a.regrouped = true
			a.setState(StateChasing, a.lastSeenNow)
		})
	}
}

// --- Movement ---

func (e *Enemy) move(dt, now float64) {
	target, speed, hasTarget := e.moveTarget(now)

	var desired Vec3
	if hasTarget {
		dir := target.Sub(e.Pos)
		dir.Y = 0
		desired = dir.Normalized().Scale(speed)
	}
	t := clamp01(e.cfg.Movement.Acceleration * dt)
	e.Vel.X += (desired.X - e.Vel.X) * t
	e.Vel.Z += (desired.Z - e.Vel.Z) * t
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))

	// Face movement, or the target while engaged.
	var faceTo float64
	switch {
	case e.State == StateAttacking && e.target != nil:
		faceTo = HeadingTo(e.Pos, e.target.Pos)
	case e.Vel.LenXZ() > 0.1:
		faceTo = math.Atan2(e.Vel.Z, e.Vel.X)
	default:
		return
	}
	e.Yaw = lerpAngle(e.Yaw, faceTo, e.cfg.Movement.RotationSpeed*dt)
}

// moveTarget selects the per-state destination and speed. hasTarget false
// means hold position (decelerate in place).
func (e *Enemy) moveTarget(now float64) (target Vec3, speed float64, hasTarget bool) {
	mv := e.cfg.Movement

	switch e.State {
	case StatePatrolling:
		if len(e.patrolPath) == 0 {
			return Vec3{}, 0, false
		}
		wp := e.patrolPath[e.patrolIndex]
		if DistXZ(e.Pos, wp) <= patrolReachRadius {
			e.patrolIndex = (e.patrolIndex + 1) % len(e.patrolPath)
			wp = e.patrolPath[e.patrolIndex]
		}
		return wp, mv.WalkSpeed, true

	case StateInvestigating:
		if !e.hasLastKnown || DistXZ(e.Pos, e.LastKnownPlayerPos) <= patrolReachRadius {
			return Vec3{}, 0, false
		}
		return e.LastKnownPlayerPos, mv.WalkSpeed, true

	case StateChasing:
		if !e.hasLastKnown {
			return Vec3{}, 0, false
		}
		return e.LastKnownPlayerPos, mv.RunSpeed, true

	case StateAttacking:
		if e.target == nil {
			return Vec3{}, 0, false
		}
		dist := DistXZ(e.Pos, e.target.Pos)
		if dist < e.cfg.Combat.OptimalRange*attackCloseFrac {
			// Too close: step straight back to restore spacing.
			away := e.Pos.Sub(e.target.Pos)
			away.Y = 0
			back := e.Pos.Add(away.Normalized().Scale(e.cfg.Combat.OptimalRange))
			return back, mv.WalkSpeed, true
		}
		return Vec3{}, 0, false

	case StateTakingCover:
		if e.coverPos == nil {
			return Vec3{}, 0, false
		}
		if DistXZ(e.Pos, *e.coverPos) <= coverReachRadius {
			// Settled: schedule the return to the fight once, with a
			// randomized breather.
			delay := coverReturnDelayMin + e.rng.Float64()*coverReturnDelaySpan
			e.coverPos = nil
			e.sched.After(now, delay, e, StateTakingCover, func(a *Enemy) {
				a.enterAttack(a.lastSeenNow)
			})
			return Vec3{}, 0, false
		}
		return *e.coverPos, mv.RunSpeed, true

	case StateFlanking:
		if e.target == nil {
			return Vec3{}, 0, false
		}
		// Approach a point offset perpendicular to the agent→target line.
		to := e.target.Pos.Sub(e.Pos)
		to.Y = 0
		perp := Vec3{X: -to.Z, Z: to.X}.Normalized().Scale(e.flankSide * e.cfg.Combat.OptimalRange)
		return e.target.Pos.Add(perp), mv.RunSpeed, true

	case StateRetreating:
		if !e.hasLastKnown {
			return Vec3{}, 0, false
		}
		away := e.Pos.Sub(e.LastKnownPlayerPos)
		away.Y = 0
		return e.Pos.Add(away.Normalized().Scale(10)), mv.RunSpeed, true

	default:
		return Vec3{}, 0, false
	}
}

// --- Damage ---

// TakeDamage applies a hit through the shared armor/zone formula and
// reports whether it was lethal. Getting shot is unambiguous: alert jumps
// to maximum and the shooter's position is remembered, cover or not. A dead
// enemy is a no-op returning false.
func (e *Enemy) TakeDamage(amount float64, dtype DamageType, zone HitZone, from Vec3) bool {
	if e.State == StateDead {
		return false
	}
	dmg := ResolveDamage(amount, dtype, zone, e.Armor.AtZone(zone), EnemyZones)
	if dmg <= 0 {
		return false
	}

	e.Alert = 1.0
	e.LastKnownPlayerPos = from
	e.hasLastKnown = true
	e.regrouped = false
	if e.State == StatePatrolling {
		e.setState(StateInvestigating, e.lastSeenNow)
	}

	e.sound.Play(SoundHit)
	if e.Health.Damage(dmg) {
		e.State = StateDead
		e.Vel = Vec3{}
		e.diedAt = e.lastSeenNow
		e.sound.Play(SoundDeath)
		return true
	}
	return false
}
