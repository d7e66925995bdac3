package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A grunt walking its beat spots the player and escalates through the whole
// engagement ladder without ever skipping a rung.
func TestEngagementLadderGrunt(t *testing.T) {
	ts := NewTestSim(
		WithSeed(11),
		WithNoWorldObjects(),
		WithEnemyPatrol(EnemyGrunt, 16, 0, Vec3{}),
	)

	var ladder []EnemyState
	prev := StatePatrolling
	ts.RunUntil(func(ts *TestSim) bool {
		e := ts.Enemy(0)
		if e == nil {
			return true
		}
		if e.State != prev {
			ladder = append(ladder, e.State)
			prev = e.State
		}
		return e.State == StateAttacking
	}, 60*20)

	if !assert.Equal(t, []EnemyState{StateInvestigating, StateChasing, StateAttacking}, ladder) {
		t.Log(ts.Log.Format())
	}
}

// A warlord with visual contact drags its whole patrol into the fight: the
// teammates learn the player's position without ever seeing it themselves.
func TestSquadIntelPropagationInBattle(t *testing.T) {
	ts := NewTestSim(
		WithSeed(12),
		WithNoWorldObjects(),
		// Spotter walks toward the player; the two mates patrol behind it,
		// facing away, inside the 30-unit share radius.
		WithEnemyPatrol(EnemyWarlord, 18, 0, Vec3{}),
		WithEnemyPatrol(EnemyWarlord, 28, 8, Vec3{X: 60, Z: 8}),
		WithEnemyPatrol(EnemyWarlord, 28, -8, Vec3{X: 60, Z: -8}),
	)

	tick := ts.RunUntil(func(ts *TestSim) bool {
		spotter := ts.Enemy(0)
		if spotter == nil || spotter.Alert == 0 {
			return false
		}
		for _, id := range []int{1, 2} {
			mate := ts.Enemy(id)
			if mate == nil || !mate.hasLastKnown {
				return false
			}
			// One tick of decay may sit between the share and this check.
			if mate.Alert < 0.8*spotter.Alert-0.02 {
				return false
			}
		}
		return true
	}, 60*20)

	if tick < 0 {
		t.Log(ts.Log.Format())
		t.Fatal("squad never picked up the spotter's contact")
	}
}

// A deserter under sustained fire breaks and runs instead of trading shots.
func TestDeserterRoutsUnderFire(t *testing.T) {
	ts := NewTestSim(
		WithSeed(13),
		WithNoWorldObjects(),
		WithCorpseTime(60),
		WithPlayerWeapon(WeaponPistol, 48),
		WithEnemyPatrol(EnemyDeserter, 10, 0, Vec3{}),
	)
	ts.SetInput(Input{Aim: true, Fire: true})

	tick := ts.RunUntil(func(ts *TestSim) bool {
		e := ts.Enemy(0)
		return e == nil || e.State == StateRetreating || e.State == StateDead
	}, 60*15)
	require.GreaterOrEqual(t, tick, 0, "deserter neither died nor ran")

	e := ts.Enemy(0)
	require.NotNil(t, e)
	if e.State == StateRetreating {
		assert.Less(t, e.Health.Fraction(), cowardRetreatFrac+1e-9,
			"retreat only below the health threshold")
	}
}

// A marksman engages from far outside the ranges the close-quarters types
// fight at, and never wanders into pistol range on its own.
func TestMarksmanKeepsItsDistance(t *testing.T) {
	ts := NewTestSim(
		WithSeed(14),
		WithNoWorldObjects(),
		WithEnemyPatrol(EnemyMarksman, 45, 0, Vec3{}),
	)

	tick := ts.RunUntil(func(ts *TestSim) bool {
		e := ts.Enemy(0)
		return e != nil && e.State == StateAttacking
	}, 60*30)
	require.GreaterOrEqual(t, tick, 0, "marksman never engaged")

	e := ts.Enemy(0)
	dist := DistXZ(e.Pos, ts.Player.Pos)
	cfg := EnemyConfigFor(EnemyMarksman)
	assert.LessOrEqual(t, dist, cfg.Combat.OptimalRange*sniperOpenFireFrac+1.0)
	assert.Greater(t, dist, 15.0, "opens fire from standoff range")
}

// Killing one member of a tight pair turns the survivor hostile immediately:
// getting shot pins its alert even though it never saw the shooter.
func TestKillingOneAlertsTheSurvivorWhenHit(t *testing.T) {
	ts := NewTestSim(
		WithSeed(15),
		WithNoWorldObjects(),
		WithEnemy(EnemyGrunt, 30, 0),
	)
	e := ts.Enemy(0)
	require.NotNil(t, e)

	e.TakeDamage(10, DamageBullet, ZoneChest, ts.Player.Pos)
	assert.Equal(t, 1.0, e.Alert)
	assert.Equal(t, StateInvestigating, e.State)
	assert.Equal(t, ts.Player.Pos, e.LastKnownPlayerPos)

	ts.RunTicks(1)
	assert.NotEqual(t, StatePatrolling, e.State, "keeps hunting the shooter")
}
