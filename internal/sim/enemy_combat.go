package sim

import "math/rand"

// Hit-zone weighting for enemy fire: most rounds land centre of mass.
const (
	hitWeightHead = 0.10
	hitWeightArms = 0.20
	hitWeightLegs = 0.20
	// remainder (0.50) is chest
)

const (
	// minRangeAccuracy floors the distance discount — even at max range a
	// shot retains 30% of base accuracy.
	minRangeAccuracy = 0.3
	// Target-state accuracy multipliers.
	accuracyVsRunning   = 0.7
	accuracyVsCrouching = 0.9
)

// updateCombat fires at the target while attacking. Every emitted ranged
// shot spends a round whether it connects or not; hit/miss is a single
// uniform draw against distance- and stance-discounted accuracy. Melee
// strikes share the cadence but never touch the magazine.
func (e *Enemy) updateCombat(now float64) {
	e.Weapon.Update(now)

	if e.State != StateAttacking || e.target == nil || e.Weapon.Reloading() {
		return
	}
	dist := DistXZ(e.Pos, e.target.Pos)
	if dist > e.cfg.Combat.MaxRange {
		return
	}
	melee := e.cfg.AI.Behavior == BehaviorMelee
	if melee {
		if !e.Weapon.Strike(now) {
			return
		}
	} else {
		if !e.Weapon.Fire(now) {
			return
		}
		e.sound.Play(SoundShot)
	}

	acc := e.cfg.Combat.Accuracy * rangeAccuracy(dist, e.cfg.Combat.MaxRange)
	switch e.target.State {
	case PlayerRunning:
		acc *= accuracyVsRunning
	case PlayerCrouching:
		acc *= accuracyVsCrouching
	}
	if e.rng.Float64() >= acc {
		return // miss; the round is already spent
	}

	zone := e.rollHitZone()
	dtype := DamageBullet
	if melee {
		dtype = DamageMelee
	}
	e.target.TakeDamage(e.cfg.Combat.Damage, dtype, zone)
}

// rangeAccuracy is the distance discount on base accuracy.
func rangeAccuracy(dist, maxRange float64) float64 {
	if maxRange <= 0 {
		return minRangeAccuracy
	}
	v := 1.0 - dist/maxRange
	if v < minRangeAccuracy {
		return minRangeAccuracy
	}
	return v
}

// rollHitZone picks a weighted random body zone for a connecting shot.
func (e *Enemy) rollHitZone() HitZone {
	return rollZone(e.rng)
}

func rollZone(rng *rand.Rand) HitZone {
	r := rng.Float64()
	switch {
	case r < hitWeightHead:
		return ZoneHead
	case r < hitWeightHead+hitWeightArms:
		return ZoneArms
	case r < hitWeightHead+hitWeightArms+hitWeightLegs:
		return ZoneLegs
	default:
		return ZoneChest
	}
}
