package sim

import (
	"math"
	"math/rand"
)

// PlayerState is the player controller's high-level state.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerWalking
	PlayerRunning
	PlayerCrouching
	PlayerProne
	PlayerJumping
	PlayerFalling
	PlayerAiming
	PlayerReloading
	PlayerDead
)

func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerWalking:
		return "walking"
	case PlayerRunning:
		return "running"
	case PlayerCrouching:
		return "crouching"
	case PlayerProne:
		return "prone"
	case PlayerJumping:
		return "jumping"
	case PlayerFalling:
		return "falling"
	case PlayerAiming:
		return "aiming"
	case PlayerReloading:
		return "reloading"
	case PlayerDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Input is the sampled control state for one tick. Set externally each
// frame; the controller never mutates it. Sample once at tick start — the
// snapshot is immutable for the remainder of that tick.
type Input struct {
	Forward, Backward, Left, Right bool
	Run                            bool
	Crouch                         bool
	Prone                          bool
	Jump                           bool
	Aim                            bool
	Fire                           bool
	Reload                         bool
}

func (in Input) moveVector() (x, z float64) {
	if in.Forward {
		z -= 1
	}
	if in.Backward {
		z += 1
	}
	if in.Left {
		x -= 1
	}
	if in.Right {
		x += 1
	}
	if l := math.Hypot(x, z); l > 1 {
		x /= l
		z /= l
	}
	return x, z
}

// Skills are upgradable multipliers in [0,2] affecting movement and combat
// effectiveness.
type Skills struct {
	Accuracy      float64
	RecoilControl float64
	ReloadSpeed   float64
	RepairSkill   float64
	Endurance     float64
}

// DefaultSkills returns the baseline 1.0 skill set.
func DefaultSkills() Skills {
	return Skills{Accuracy: 1, RecoilControl: 1, ReloadSpeed: 1, RepairSkill: 1, Endurance: 1}
}

// Stamina is the sprint/jump/aim resource pool.
type Stamina struct {
	Current   float64
	Max       float64
	RegenRate float64 // per second while not draining
	RunDrain  float64 // per second while running
	AimDrain  float64 // per second while aiming
	JumpCost  float64 // lump cost per jump
}

// StatusEffectKind distinguishes damage-over-time effects.
type StatusEffectKind int

const (
	EffectPoison StatusEffectKind = iota
	EffectBleeding
)

func (k StatusEffectKind) String() string {
	switch k {
	case EffectPoison:
		return "poison"
	case EffectBleeding:
		return "bleeding"
	default:
		return "unknown"
	}
}

// StatusEffect is a timed damage-over-time entry. Re-applying an effect of
// the same kind refreshes instead of stacking.
type StatusEffect struct {
	Kind            StatusEffectKind
	Duration        float64 // seconds remaining
	DamagePerSecond float64
}

// PlayerConfig tunes movement, stamina and survivability. Immutable after
// construction.
type PlayerConfig struct {
	WalkSpeed   float64
	RunSpeed    float64
	CrouchSpeed float64
	ProneSpeed  float64

	Acceleration float64 // velocity lerp rate, 1/s
	Deceleration float64 // velocity lerp rate with no input, 1/s
	JumpImpulse  float64 // upward velocity on jump
	Gravity      float64 // downward accel while airborne

	MaxHealth   float64
	HealthRegen float64 // per second, after RegenDelay
	RegenDelay  float64 // seconds since last damage before regen resumes

	Armor Armor

	Stamina Stamina
}

// DefaultPlayerConfig is the survivor baseline the enemy ranges are balanced
// against.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		WalkSpeed:    4.0,
		RunSpeed:     7.0,
		CrouchSpeed:  2.0,
		ProneSpeed:   1.0,
		Acceleration: 10.0,
		Deceleration: 8.0,
		JumpImpulse:  5.0,
		Gravity:      9.81,
		MaxHealth:    100,
		HealthRegen:  2.0,
		RegenDelay:   8.0,
		Armor:        Armor{},
		Stamina: Stamina{
			Current:   100,
			Max:       100,
			RegenRate: 12,
			RunDrain:  10,
			AimDrain:  3,
			JumpCost:  15,
		},
	}
}

const (
	// shakeDecayRate: cameraShake is scaled by (1 − rate×dt) each tick,
	// floored at zero.
	shakeDecayRate = 10.0
	// aimSteadySeconds of continuous aiming ramps recoil down to 50%.
	aimSteadySeconds = 2.0
	// damageShakeScale converts applied damage into shake impulse magnitude.
	damageShakeScale = 0.002
)

// Player is the survivor controller: a state machine over sampled input with
// stamina, status effects and camera recoil accumulation. Enemies consume it
// through Pos, State and TakeDamage only.
type Player struct {
	cfg PlayerConfig

	Pos Vec3
	Vel Vec3
	Yaw float64

	State  PlayerState
	Health Health
	Armor  Armor

	Stamina Stamina
	Skills  Skills

	Weapon *Weapon

	// CameraShake is the accumulated recoil/damage offset, read by the
	// (external) camera. Decays exponentially toward zero.
	CameraShake Vec3

	// FiredThisTick is set when Update emitted a shot, so the sim layer can
	// resolve the hit against the roster. Valid until the next Update.
	FiredThisTick bool

	statusEffects map[StatusEffectKind]*StatusEffect

	lastDamageAt float64
	lastSeenNow  float64 // sim time of the most recent Update
	aimingSince  float64 // sim time continuous aiming began; -1 when not aiming
	grounded     bool
	prevJump     bool

	terrain Terrain
	sound   SoundPlayer
	rng     *rand.Rand
}

// NewPlayer creates a player at pos standing on terrain, armed with weapon.
func NewPlayer(cfg PlayerConfig, pos Vec3, weapon *Weapon, terrain Terrain, sound SoundPlayer, seed int64) *Player {
	p := &Player{
		cfg:           cfg,
		Pos:           pos,
		State:         PlayerIdle,
		Health:        Health{Current: cfg.MaxHealth, Max: cfg.MaxHealth, RegenRate: cfg.HealthRegen},
		Armor:         cfg.Armor,
		Stamina:       cfg.Stamina,
		Skills:        DefaultSkills(),
		Weapon:        weapon,
		statusEffects: map[StatusEffectKind]*StatusEffect{},
		aimingSince:   -1,
		terrain:       terrain,
		sound:         sound,
		rng:           rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation only
	}
	p.Pos.Y = terrain.HeightAt(pos.X, pos.Z)
	p.grounded = true
	return p
}

// Update advances the controller by dt seconds at sim time now, using input
// sampled at tick start. Dead players ignore everything.
func (p *Player) Update(dt, now float64, in Input) {
	p.lastSeenNow = now
	p.FiredThisTick = false
	if p.State == PlayerDead {
		return
	}

	p.tickStatusEffects(dt, now)
	if p.State == PlayerDead {
		return // a status tick can be lethal
	}

	p.Weapon.Update(now)

	moveX, moveZ := in.moveVector()
	moving := moveX != 0 || moveZ != 0

	// --- Stance / movement state selection (priority ordered) ---
	running := in.Run && moving && p.Stamina.Current > 0 && !in.Crouch && !in.Prone
	switch {
	case running:
		p.State = PlayerRunning
	case in.Crouch:
		p.State = PlayerCrouching
	case in.Prone:
		p.State = PlayerProne
	case moving:
		p.State = PlayerWalking
	default:
		p.State = PlayerIdle
	}

	// --- Jump (rising edge, grounded, stamina gate) ---
	if in.Jump && !p.prevJump && p.grounded && p.Stamina.Current >= p.Stamina.JumpCost {
		p.Vel.Y = p.cfg.JumpImpulse
		p.grounded = false
		p.Stamina.Current -= p.Stamina.JumpCost
		p.State = PlayerJumping
	}
	p.prevJump = in.Jump

	// --- Ground-plane movement: lerp velocity toward the stance speed ---
	speed := p.targetSpeed(running, in)
	targetVX := moveX * speed
	targetVZ := moveZ * speed
	rate := p.cfg.Acceleration
	if !moving {
		rate = p.cfg.Deceleration
	}
	t := clamp01(rate * dt)
	p.Vel.X += (targetVX - p.Vel.X) * t
	p.Vel.Z += (targetVZ - p.Vel.Z) * t

	// --- Vertical: gravity and grounded check against the terrain ---
	if !p.grounded {
		p.Vel.Y -= p.cfg.Gravity * dt
		if p.Vel.Y < 0 && p.State != PlayerDead {
			p.State = PlayerFalling
		}
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	ground := p.terrain.HeightAt(p.Pos.X, p.Pos.Z)
	if p.Pos.Y <= ground {
		p.Pos.Y = ground
		p.Vel.Y = 0
		p.grounded = true
	} else if p.Pos.Y > ground {
		p.grounded = false
	}

	if moving {
		p.Yaw = lerpAngle(p.Yaw, math.Atan2(p.Vel.Z, p.Vel.X), 8*dt)
	}

	// --- Aim overlay (recorded as the active state) ---
	if in.Aim {
		if p.aimingSince < 0 {
			p.aimingSince = now
		}
		p.State = PlayerAiming
	} else {
		p.aimingSince = -1
	}

	// --- Weapon ---
	if in.Reload {
		if p.Weapon.StartReloadScaled(now, p.Skills.ReloadSpeed) {
			p.sound.Play(SoundReload)
		}
	}
	if p.Weapon.Reloading() {
		p.State = PlayerReloading
	}
	if in.Fire && p.Weapon.Fire(now) {
		p.FiredThisTick = true
		p.sound.Play(SoundShot)
		p.applyRecoil(now, in)
	}

	// --- Stamina ---
	drain := 0.0
	if running {
		drain += p.Stamina.RunDrain
	}
	if in.Aim {
		drain += p.Stamina.AimDrain
	}
	if drain > 0 {
		p.Stamina.Current = math.Max(0, p.Stamina.Current-drain*dt)
	} else if p.grounded {
		regen := p.Stamina.RegenRate * p.Skills.Endurance
		p.Stamina.Current = math.Min(p.Stamina.Max, p.Stamina.Current+regen*dt)
	}

	// --- Health regeneration, gated on time since last damage ---
	if now-p.lastDamageAt >= p.cfg.RegenDelay {
		p.Health.Regen(dt)
	}

	// --- Camera shake decay ---
	decay := math.Max(0, 1.0-shakeDecayRate*dt)
	p.CameraShake = p.CameraShake.Scale(decay)
}

func (p *Player) targetSpeed(running bool, in Input) float64 {
	base := p.cfg.WalkSpeed
	switch {
	case running:
		base = p.cfg.RunSpeed
	case in.Crouch:
		base = p.cfg.CrouchSpeed
	case in.Prone:
		base = p.cfg.ProneSpeed
	}
	return base * p.Skills.Endurance
}

// applyRecoil adds the weapon's recoil offset to CameraShake, scaled by the
// recoil-control skill and attenuated by stance or aim stability.
func (p *Player) applyRecoil(now float64, in Input) {
	recoil := p.Weapon.Config().Recoil
	mul := 2.0 - p.Skills.RecoilControl
	if mul < 0 {
		mul = 0
	}
	switch {
	case in.Crouch:
		mul *= 0.8
	case in.Prone:
		mul *= 0.6
	}
	if p.aimingSince >= 0 {
		// Linear ramp to a 50% reduction over aimSteadySeconds of
		// continuous aiming.
		steady := clamp01((now - p.aimingSince) / aimSteadySeconds)
		mul *= 1.0 - 0.5*steady
	}
	// Horizontal kick direction is random per shot.
	side := p.rng.Float64()*2 - 1
	p.CameraShake = p.CameraShake.Add(Vec3{
		X: recoil.X * mul,
		Y: recoil.Y * mul * side,
	})
}

// TakeDamage applies a hit to the player through the shared damage formula
// and reports whether it was lethal. A dead player is a no-op returning
// false.
func (p *Player) TakeDamage(amount float64, dtype DamageType, zone HitZone) bool {
	if p.State == PlayerDead {
		return false
	}
	dmg := ResolveDamage(amount, dtype, zone, p.Armor.AtZone(zone), PlayerZones)
	if dmg <= 0 {
		return false
	}
	p.lastDamageAt = p.nowHint()
	p.sound.Play(SoundHit)

	// Damage kicks the camera a little, direction randomized.
	p.CameraShake = p.CameraShake.Add(Vec3{
		X: dmg * damageShakeScale * (0.5 + p.rng.Float64()),
		Y: dmg * damageShakeScale * (p.rng.Float64()*2 - 1),
	})

	if p.Health.Damage(dmg) {
		p.State = PlayerDead
		p.Vel = Vec3{}
		p.sound.Play(SoundDeath)
		return true
	}
	return false
}

// ApplyStatusEffect adds or refreshes a damage-over-time effect.
func (p *Player) ApplyStatusEffect(kind StatusEffectKind, duration, dps float64) {
	if p.State == PlayerDead {
		return
	}
	p.statusEffects[kind] = &StatusEffect{Kind: kind, Duration: duration, DamagePerSecond: dps}
}

// HasStatusEffect reports whether an effect of the given kind is active.
func (p *Player) HasStatusEffect(kind StatusEffectKind) bool {
	_, ok := p.statusEffects[kind]
	return ok
}

// tickStatusEffects applies per-second damage and expires finished effects.
// Status damage bypasses armor but still resets the regen delay.
func (p *Player) tickStatusEffects(dt, now float64) {
	for kind, eff := range p.statusEffects {
		if eff.DamagePerSecond > 0 {
			p.lastDamageAt = now
			if p.Health.Damage(eff.DamagePerSecond * dt) {
				p.State = PlayerDead
				p.Vel = Vec3{}
				p.sound.Play(SoundDeath)
				return
			}
		}
		eff.Duration -= dt
		if eff.Duration <= 0 {
			delete(p.statusEffects, kind)
		}
	}
}

// nowHint is the sim time of the most recent Update. TakeDamage carries no
// clock parameter on the enemy-facing surface; the regen gate only needs
// last-damage time at tick resolution.
func (p *Player) nowHint() float64 {
	return p.lastSeenNow
}

// Grounded reports whether the player is standing on terrain.
func (p *Player) Grounded() bool { return p.grounded }
