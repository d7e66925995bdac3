package sim

import "fmt"

// WeaponType keys the static weapon table.
type WeaponType int

const (
	WeaponPistol WeaponType = iota
	WeaponRifle
	WeaponShotgun
	WeaponSMG
	WeaponSniper
	weaponTypeCount
)

func (w WeaponType) String() string {
	switch w {
	case WeaponPistol:
		return "pistol"
	case WeaponRifle:
		return "rifle"
	case WeaponShotgun:
		return "shotgun"
	case WeaponSMG:
		return "smg"
	case WeaponSniper:
		return "sniper"
	default:
		return "unknown"
	}
}

// WeaponConfig is immutable per-type tuning. Never mutated at runtime.
type WeaponConfig struct {
	Damage       float64
	MagazineSize int
	FireInterval float64 // seconds between shots
	ReloadTime   float64 // seconds
	Recoil       Vec3    // camera offset per shot (pitch up, random yaw)
}

// weaponConfigs is the closed static table, indexed by WeaponType.
var weaponConfigs = [weaponTypeCount]WeaponConfig{
	WeaponPistol:  {Damage: 25, MagazineSize: 12, FireInterval: 0.25, ReloadTime: 1.5, Recoil: Vec3{X: 0.020, Y: 0.008}},
	WeaponRifle:   {Damage: 35, MagazineSize: 30, FireInterval: 0.10, ReloadTime: 2.5, Recoil: Vec3{X: 0.030, Y: 0.012}},
	WeaponShotgun: {Damage: 80, MagazineSize: 8, FireInterval: 0.80, ReloadTime: 3.0, Recoil: Vec3{X: 0.080, Y: 0.030}},
	WeaponSMG:     {Damage: 22, MagazineSize: 35, FireInterval: 0.07, ReloadTime: 2.2, Recoil: Vec3{X: 0.022, Y: 0.014}},
	WeaponSniper:  {Damage: 120, MagazineSize: 5, FireInterval: 1.50, ReloadTime: 3.5, Recoil: Vec3{X: 0.120, Y: 0.020}},
}

// WeaponConfigFor returns the static config for a weapon type. Unknown types
// are a programmer error and panic.
func WeaponConfigFor(t WeaponType) WeaponConfig {
	if t < 0 || t >= weaponTypeCount {
		panic(fmt.Sprintf("sim: unknown weapon type %d", t))
	}
	return weaponConfigs[t]
}

// WeaponPhase is the coarse state of the firing mechanism.
type WeaponPhase int

const (
	WeaponIdleReady WeaponPhase = iota
	WeaponFiringCooldown
	WeaponReloading
)

func (p WeaponPhase) String() string {
	switch p {
	case WeaponIdleReady:
		return "ready"
	case WeaponFiringCooldown:
		return "cooldown"
	case WeaponReloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// Weapon is the mutable ammo/cadence state machine wrapped around a
// WeaponConfig. All timestamps are sim-clock seconds.
type Weapon struct {
	Type WeaponType
	cfg  WeaponConfig

	CurrentAmmo int
	ReserveAmmo int

	reloading    bool
	reloadDoneAt float64
	nextShotAt   float64

	// Burst discipline (enemies only; burstLength 0 disables).
	// After burstLength consecutive shots the weapon enforces a pause of
	// FireInterval×3 before the next burst.
	burstLength    int
	burstRemaining int
}

// NewWeapon creates a weapon with a full magazine and the given reserve.
func NewWeapon(t WeaponType, reserve int) *Weapon {
	cfg := WeaponConfigFor(t)
	return &Weapon{
		Type:        t,
		cfg:         cfg,
		CurrentAmmo: cfg.MagazineSize,
		ReserveAmmo: reserve,
	}
}

// newWeaponFromConfig builds a weapon from explicit tuning, used by enemies
// whose per-type tables carry their own cadence numbers.
func newWeaponFromConfig(cfg WeaponConfig, reserve, burstLength int) *Weapon {
	return &Weapon{
		cfg:            cfg,
		CurrentAmmo:    cfg.MagazineSize,
		ReserveAmmo:    reserve,
		burstLength:    burstLength,
		burstRemaining: burstLength,
	}
}

// Config returns the weapon's static tuning.
func (w *Weapon) Config() WeaponConfig { return w.cfg }

// Phase reports the coarse mechanism state at sim time now.
func (w *Weapon) Phase(now float64) WeaponPhase {
	switch {
	case w.reloading:
		return WeaponReloading
	case now < w.nextShotAt:
		return WeaponFiringCooldown
	default:
		return WeaponIdleReady
	}
}

// Reloading reports whether a reload is in progress.
func (w *Weapon) Reloading() bool { return w.reloading }

// CanFire reports whether a trigger pull at sim time now would emit a shot.
func (w *Weapon) CanFire(now float64) bool {
	return !w.reloading && w.CurrentAmmo > 0 && now >= w.nextShotAt
}

// Fire attempts a shot at sim time now. On success the magazine is
// decremented and the next-shot time advances; failed preconditions are a
// silent no-op returning false.
func (w *Weapon) Fire(now float64) bool {
	if !w.CanFire(now) {
		return false
	}
	w.CurrentAmmo--
	w.nextShotAt = now + w.cfg.FireInterval
	if w.burstLength > 0 {
		w.burstRemaining--
		if w.burstRemaining <= 0 {
			// End of burst: mandatory pause before the next string.
			w.nextShotAt = now + w.cfg.FireInterval*3
			w.burstRemaining = w.burstLength
		}
	}
	return true
}

// Strike advances the cadence without spending a round. Melee attackers use
// the weapon only as a cooldown timer.
func (w *Weapon) Strike(now float64) bool {
	if w.reloading || now < w.nextShotAt {
		return false
	}
	w.nextShotAt = now + w.cfg.FireInterval
	return true
}

// ResetBurst restores a full burst allowance. Called when an enemy enters
// its attacking state.
func (w *Weapon) ResetBurst() {
	if w.burstLength > 0 {
		w.burstRemaining = w.burstLength
	}
}

// StartReload begins a reload at sim time now if there is reserve ammo and
// room in the magazine. Returns false (no-op) otherwise.
func (w *Weapon) StartReload(now float64) bool {
	return w.startReload(now, 1.0)
}

// StartReloadScaled begins a reload whose duration is divided by speedMul
// (player reload-speed skill). speedMul below 0.1 is treated as 0.1.
func (w *Weapon) StartReloadScaled(now, speedMul float64) bool {
	if speedMul < 0.1 {
		speedMul = 0.1
	}
	return w.startReload(now, speedMul)
}

func (w *Weapon) startReload(now, speedMul float64) bool {
	if w.reloading || w.ReserveAmmo <= 0 || w.CurrentAmmo >= w.cfg.MagazineSize {
		return false
	}
	w.reloading = true
	w.reloadDoneAt = now + w.cfg.ReloadTime/speedMul
	return true
}

// Update completes an in-progress reload once its time has elapsed.
// Reserve policy: the magazine is refilled to capacity, bounded by reserve,
// and the reserve is decremented by exactly the rounds loaded.
// Returns true on the tick the reload finishes.
func (w *Weapon) Update(now float64) bool {
	if !w.reloading || now < w.reloadDoneAt {
		return false
	}
	need := w.cfg.MagazineSize - w.CurrentAmmo
	if need > w.ReserveAmmo {
		need = w.ReserveAmmo
	}
	w.CurrentAmmo += need
	w.ReserveAmmo -= need
	w.reloading = false
	return true
}
