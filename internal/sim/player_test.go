package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayer() *Player {
	return NewPlayer(DefaultPlayerConfig(), Vec3{}, NewWeapon(WeaponRifle, 90), FlatTerrain{}, NullSound{}, 1)
}

// stepPlayer runs n ticks at 60/s with fixed input, continuing the player's
// clock so repeated calls stay monotonic.
func stepPlayer(p *Player, n int, in Input) {
	const dt = 1.0 / 60.0
	base := p.lastSeenNow
	for i := 0; i < n; i++ {
		p.Update(dt, base+float64(i+1)*dt, in)
	}
}

func TestPlayerStateSelection(t *testing.T) {
	p := testPlayer()

	stepPlayer(p, 1, Input{})
	assert.Equal(t, PlayerIdle, p.State)

	stepPlayer(p, 1, Input{Forward: true})
	assert.Equal(t, PlayerWalking, p.State)

	stepPlayer(p, 1, Input{Forward: true, Run: true})
	assert.Equal(t, PlayerRunning, p.State)

	stepPlayer(p, 1, Input{Crouch: true})
	assert.Equal(t, PlayerCrouching, p.State)

	stepPlayer(p, 1, Input{Prone: true})
	assert.Equal(t, PlayerProne, p.State)

	// Crouch overrides run.
	stepPlayer(p, 1, Input{Forward: true, Run: true, Crouch: true})
	assert.Equal(t, PlayerCrouching, p.State)
}

func TestPlayerRunningDrainsStamina(t *testing.T) {
	p := testPlayer()
	start := p.Stamina.Current

	stepPlayer(p, 120, Input{Forward: true, Run: true}) // 2 seconds
	assert.Less(t, p.Stamina.Current, start)

	// Exhausted stamina forces a drop out of running.
	p.Stamina.Current = 0
	stepPlayer(p, 1, Input{Forward: true, Run: true})
	assert.Equal(t, PlayerWalking, p.State)
}

func TestPlayerStaminaRegenWhenIdle(t *testing.T) {
	p := testPlayer()
	p.Stamina.Current = 20

	stepPlayer(p, 300, Input{}) // 5 seconds at 12/s regen
	assert.InDelta(t, 80, p.Stamina.Current, 1.0)
}

func TestPlayerJumpGatedOnStamina(t *testing.T) {
	p := testPlayer()

	stepPlayer(p, 1, Input{Jump: true})
	assert.False(t, p.Grounded())
	assert.InDelta(t, 85, p.Stamina.Current, 1e-6, "jump costs 15")

	p2 := testPlayer()
	p2.Stamina.Current = 5
	stepPlayer(p2, 1, Input{Jump: true})
	assert.True(t, p2.Grounded(), "not enough stamina to jump")
}

func TestPlayerJumpRisingEdgeOnly(t *testing.T) {
	p := testPlayer()

	// Held jump triggers exactly one launch.
	stepPlayer(p, 2, Input{Jump: true})
	first := p.Stamina.Current

	// Still airborne; the held key must not re-trigger on landing frames
	// until released.
	landed := 0
	for i := 0; i < 600; i++ {
		stepPlayer(p, 1, Input{Jump: true})
		if p.Grounded() {
			landed++
		}
	}
	assert.Greater(t, landed, 0, "eventually lands")
	assert.InDelta(t, 100, p.Stamina.Current, 1.0, "no repeat jumps while held; stamina regens")
	_ = first
}

func TestPlayerLandsBackOnTerrain(t *testing.T) {
	p := testPlayer()

	stepPlayer(p, 1, Input{Jump: true})
	require.False(t, p.Grounded())

	// ~1 second of flight at 5 m/s impulse under 9.81 gravity.
	stepPlayer(p, 90, Input{})
	assert.True(t, p.Grounded())
	assert.InDelta(t, 0, p.Pos.Y, 1e-6)
}

func TestPlayerDamageAndDeath(t *testing.T) {
	p := testPlayer()

	killed := p.TakeDamage(30, DamageBullet, ZoneChest)
	assert.False(t, killed)
	assert.InDelta(t, 70, p.Health.Current, 1e-9)

	killed = p.TakeDamage(100, DamageBullet, ZoneChest)
	assert.True(t, killed)
	assert.Equal(t, PlayerDead, p.State)

	// Dead players ignore further damage and input.
	assert.False(t, p.TakeDamage(10, DamageBullet, ZoneHead))
	stepPlayer(p, 10, Input{Forward: true})
	assert.Equal(t, PlayerDead, p.State)
	assert.Equal(t, Vec3{}, p.Vel)
}

func TestPlayerArmorReducesDamage(t *testing.T) {
	cfg := DefaultPlayerConfig()
	cfg.Armor = Armor{Chest: 50}
	p := NewPlayer(cfg, Vec3{}, NewWeapon(WeaponRifle, 90), FlatTerrain{}, NullSound{}, 1)

	p.TakeDamage(40, DamageBullet, ZoneChest)
	assert.InDelta(t, 80, p.Health.Current, 1e-9, "chest plate halves the hit")
}

func TestPlayerHealthRegenAfterDelay(t *testing.T) {
	p := testPlayer()
	stepPlayer(p, 1, Input{})
	p.TakeDamage(50, DamageBullet, ZoneChest)

	// Inside the 8s delay window: no regen.
	stepPlayer(p, 60, Input{})
	assert.InDelta(t, 50, p.Health.Current, 0.5)

	// Well past the delay: regen at 2/s.
	stepPlayer(p, 600, Input{})
	assert.Greater(t, p.Health.Current, 52.0)
}

func TestPlayerStatusEffectsTickAndExpire(t *testing.T) {
	p := testPlayer()

	p.ApplyStatusEffect(EffectPoison, 2.0, 5.0)
	require.True(t, p.HasStatusEffect(EffectPoison))

	stepPlayer(p, 60, Input{}) // 1 second
	assert.InDelta(t, 95, p.Health.Current, 0.5)

	stepPlayer(p, 90, Input{}) // past the 2s duration
	assert.False(t, p.HasStatusEffect(EffectPoison))
	assert.InDelta(t, 90, p.Health.Current, 0.5)
}

func TestPlayerStatusEffectRefreshesNotStacks(t *testing.T) {
	p := testPlayer()

	p.ApplyStatusEffect(EffectBleeding, 2.0, 4.0)
	stepPlayer(p, 60, Input{})
	p.ApplyStatusEffect(EffectBleeding, 2.0, 4.0) // re-apply refreshes

	stepPlayer(p, 60, Input{})
	// 2 seconds of a single 4/s bleed, never 8/s.
	assert.InDelta(t, 92, p.Health.Current, 0.5)
	assert.True(t, p.HasStatusEffect(EffectBleeding))
}

func TestPlayerStatusEffectCanKill(t *testing.T) {
	p := testPlayer()
	p.Health.Current = 3

	p.ApplyStatusEffect(EffectPoison, 10, 5)
	stepPlayer(p, 60, Input{})
	assert.Equal(t, PlayerDead, p.State)
}

func TestPlayerFireConsumesAmmoAndKicksCamera(t *testing.T) {
	p := testPlayer()

	stepPlayer(p, 1, Input{Fire: true})
	assert.Equal(t, 29, p.Weapon.CurrentAmmo)
	assert.True(t, p.FiredThisTick)
	assert.Greater(t, p.CameraShake.Len(), 0.0)
}

func TestPlayerCameraShakeDecays(t *testing.T) {
	p := testPlayer()
	p.CameraShake = Vec3{X: 1.0}

	stepPlayer(p, 30, Input{})
	assert.Less(t, p.CameraShake.Len(), 0.01)
}

func TestPlayerAimStabilityReducesRecoil(t *testing.T) {
	snap := func(aimTicks int) float64 {
		p := testPlayer()
		p.Stamina.Current = 1000
		p.Stamina.Max = 1000
		stepPlayer(p, aimTicks, Input{Aim: true})
		p.CameraShake = Vec3{}
		stepPlayer(p, 1, Input{Aim: true, Fire: true})
		return p.CameraShake.Len()
	}

	instant := snap(1)
	steady := snap(150) // 2.5s of continuous aiming
	assert.Less(t, steady, instant, "steady aim attenuates recoil")
	assert.InDelta(t, instant*0.5, steady, instant*0.15, "ramps to about half")
}

func TestPlayerReloadStateAndSkill(t *testing.T) {
	p := testPlayer()
	p.Weapon.CurrentAmmo = 3

	stepPlayer(p, 1, Input{Reload: true})
	assert.Equal(t, PlayerReloading, p.State)

	// Rifle reload is 2.5s at skill 1.0.
	stepPlayer(p, 160, Input{})
	assert.Equal(t, 30, p.Weapon.CurrentAmmo)
	assert.Equal(t, 63, p.Weapon.ReserveAmmo)
}
