package sim

import "math"

// DamageType selects the damage-type modifier applied on top of the hit-zone
// and armor calculation.
type DamageType int

const (
	DamageBullet DamageType = iota
	DamageMelee
	DamageExplosion
)

func (d DamageType) String() string {
	switch d {
	case DamageBullet:
		return "bullet"
	case DamageMelee:
		return "melee"
	case DamageExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// HitZone is the body region a hit landed on.
type HitZone int

const (
	ZoneHead HitZone = iota
	ZoneChest
	ZoneArms
	ZoneLegs
)

func (z HitZone) String() string {
	switch z {
	case ZoneHead:
		return "head"
	case ZoneChest:
		return "chest"
	case ZoneArms:
		return "arms"
	case ZoneLegs:
		return "legs"
	default:
		return "unknown"
	}
}

const (
	// explosionDamageMul is the extra multiplier for explosive damage.
	explosionDamageMul = 1.2
	// minArmorFactor: armor can never negate more than 90% of a hit.
	minArmorFactor = 0.1
)

// ZoneProfile maps each hit zone to its damage multiplier. Player and enemy
// bodies use different tables but share the armor formula.
type ZoneProfile [4]float64

// PlayerZones: headshots double, limbs take reduced damage.
var PlayerZones = ZoneProfile{ZoneHead: 2.0, ZoneChest: 1.0, ZoneArms: 0.8, ZoneLegs: 0.7}

// EnemyZones: only headshots are special; enemy limbs are not modelled
// separately.
var EnemyZones = ZoneProfile{ZoneHead: 2.0, ZoneChest: 1.0, ZoneArms: 1.0, ZoneLegs: 1.0}

// Multiplier returns the damage multiplier for a zone.
func (p ZoneProfile) Multiplier(zone HitZone) float64 {
	if zone < 0 || int(zone) >= len(p) {
		return 1.0
	}
	return p[zone]
}

// ResolveDamage computes the final damage of a hit. Pure: callers apply the
// result to health and clamp at zero themselves.
//
//	final = base × zoneMul × max(0.1, 1 − armor/100) [× 1.2 if explosion]
//
// Non-positive base yields zero. The result is never negative.
func ResolveDamage(base float64, dtype DamageType, zone HitZone, armor float64, zones ZoneProfile) float64 {
	if base <= 0 {
		return 0
	}
	armorFactor := math.Max(minArmorFactor, 1.0-armor/100.0)
	dmg := base * zones.Multiplier(zone) * armorFactor
	if dtype == DamageExplosion {
		dmg *= explosionDamageMul
	}
	if dmg < 0 {
		return 0
	}
	return dmg
}

// Health is a current/max pair with passive regeneration.
type Health struct {
	Current float64
	Max     float64
	// RegenRate is health per second regained while alive. Zero disables
	// regeneration.
	RegenRate float64
}

// Damage subtracts amount and clamps at zero. Returns true if this reduced
// health to zero (a lethal hit).
func (h *Health) Damage(amount float64) bool {
	if amount <= 0 || h.Current <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	return false
}

// Regen applies dt seconds of regeneration. No effect at zero health.
func (h *Health) Regen(dt float64) {
	if h.Current <= 0 || h.RegenRate <= 0 {
		return
	}
	h.Current = math.Min(h.Max, h.Current+h.RegenRate*dt)
}

// Fraction returns current health as a fraction of max.
func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// Armor holds percentage-like protection values per body region, in [0,100].
type Armor struct {
	Head  float64
	Chest float64
	Legs  float64
}

// AtZone returns the armor value covering a hit zone. Arms share the chest
// plate's coverage.
func (a Armor) AtZone(zone HitZone) float64 {
	switch zone {
	case ZoneHead:
		return a.Head
	case ZoneLegs:
		return a.Legs
	default:
		return a.Chest
	}
}
