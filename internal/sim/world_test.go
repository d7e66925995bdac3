package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sineTerrain is a deterministic rolling height-field for terrain tests.
type sineTerrain struct {
	Amplitude float64
	Period    float64
}

func (s sineTerrain) HeightAt(x, _ float64) float64 {
	return s.Amplitude * math.Sin(x*2*math.Pi/s.Period)
}

// recordSound captures every trigger so tests can assert on the audio
// boundary.
type recordSound struct {
	played []SoundID
}

func (r *recordSound) Play(id SoundID) {
	r.played = append(r.played, id)
}

func (r *recordSound) count(id SoundID) int {
	n := 0
	for _, p := range r.played {
		if p == id {
			n++
		}
	}
	return n
}

func TestPlayerSpawnsOnTerrainSurface(t *testing.T) {
	terr := sineTerrain{Amplitude: 3, Period: 40}
	p := NewPlayer(DefaultPlayerConfig(), Vec3{X: 10}, NewWeapon(WeaponRifle, 90), terr, NullSound{}, 1)

	assert.InDelta(t, terr.HeightAt(10, 0), p.Pos.Y, 1e-9)
	assert.True(t, p.Grounded())
}

func TestPlayerFollowsRollingTerrainWhileWalking(t *testing.T) {
	terr := sineTerrain{Amplitude: 2, Period: 30}
	p := NewPlayer(DefaultPlayerConfig(), Vec3{}, NewWeapon(WeaponRifle, 90), terr, NullSound{}, 1)

	dt := 1.0 / 60.0
	now := 0.0
	for i := 0; i < 600; i++ {
		now += dt
		p.Update(dt, now, Input{Right: true})
	}

	require.Greater(t, p.Pos.X, 5.0, "player should have covered ground")
	// Walking never leaves the player below the surface, and any airtime from
	// cresting a slope resolves within the run.
	assert.GreaterOrEqual(t, p.Pos.Y, terr.HeightAt(p.Pos.X, p.Pos.Z)-1e-6)
}

func TestSoundTriggersOnFireReloadAndHit(t *testing.T) {
	rec := &recordSound{}
	p := NewPlayer(DefaultPlayerConfig(), Vec3{}, NewWeapon(WeaponRifle, 90), FlatTerrain{}, rec, 1)

	dt := 1.0 / 60.0
	now := dt
	p.Update(dt, now, Input{Fire: true})
	require.Equal(t, 1, rec.count(SoundShot))

	now += dt
	p.Update(dt, now, Input{Reload: true})
	assert.Equal(t, 1, rec.count(SoundReload))

	p.TakeDamage(10, DamageBullet, ZoneChest)
	assert.Equal(t, 1, rec.count(SoundHit))
	assert.Zero(t, rec.count(SoundDeath))
}

func TestSoundDeathTriggerOnLethalHit(t *testing.T) {
	rec := &recordSound{}
	e := newEnemy(0, EnemyGrunt, Vec3{}, nil, testRNG(), NewScheduler(), rec)

	e.TakeDamage(1000, DamageBullet, ZoneHead, Vec3{X: 5})

	assert.Equal(t, 1, rec.count(SoundHit))
	assert.Equal(t, 1, rec.count(SoundDeath))
}
