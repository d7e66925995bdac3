package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBattleInvariants runs a crowded fight for thirty simulated seconds and
// checks the structural invariants after every tick: alert stays in [0,1],
// ammo never goes negative, health stays in [0,max], magazine+reserve never
// grows, and a dead agent never moves or changes state again.
func TestBattleInvariants(t *testing.T) {
	ts := NewTestSim(
		WithSeed(3),
		WithNoWorldObjects(),
		WithCorpseTime(5),
		WithEnemy(EnemyGrunt, 12, 0),
		WithEnemy(EnemyScout, -14, 6),
		WithEnemy(EnemyRaider, 0, 16),
		WithEnemy(EnemyHeavy, 18, -10),
		WithEnemy(EnemyMarksman, 45, 0),
		WithEnemy(EnemyHound, -8, -12),
		WithEnemy(EnemyWarlord, 10, 14),
		WithEnemy(EnemyDeserter, -20, 0),
		WithEnemy(EnemyRobot, 25, 20),
	)
	ts.SetInput(Input{Aim: true, Fire: true})
	defer func() {
		if t.Failed() {
			t.Log(ts.Log.FormatRange(ts.Tick()-120, ts.Tick()))
		}
	}()

	type deadRecord struct {
		pos    Vec3
		health float64
	}
	deadAt := map[int]deadRecord{}
	totalRounds := map[int]int{}
	for _, e := range ts.Enemies.enemies {
		totalRounds[e.ID] = e.Weapon.CurrentAmmo + e.Weapon.ReserveAmmo
	}

	for i := 0; i < 60*30; i++ {
		ts.RunTicks(1)

		p := ts.Player
		require.GreaterOrEqual(t, p.Health.Current, 0.0)
		require.LessOrEqual(t, p.Health.Current, p.Health.Max)
		require.GreaterOrEqual(t, p.Stamina.Current, 0.0)
		require.GreaterOrEqual(t, p.Weapon.CurrentAmmo, 0)
		require.GreaterOrEqual(t, p.Weapon.ReserveAmmo, 0)

		for _, e := range ts.Enemies.enemies {
			require.GreaterOrEqual(t, e.Alert, 0.0, "%s alert below zero", e.Label())
			require.LessOrEqual(t, e.Alert, 1.0, "%s alert above one", e.Label())
			require.GreaterOrEqual(t, e.Health.Current, 0.0)
			require.LessOrEqual(t, e.Health.Current, e.Health.Max)
			require.GreaterOrEqual(t, e.Weapon.CurrentAmmo, 0, "%s magazine negative", e.Label())
			require.GreaterOrEqual(t, e.Weapon.ReserveAmmo, 0, "%s reserve negative", e.Label())
			require.LessOrEqual(t, e.Weapon.CurrentAmmo+e.Weapon.ReserveAmmo, totalRounds[e.ID],
				"%s conjured ammo from nowhere", e.Label())

			if rec, wasDead := deadAt[e.ID]; wasDead {
				require.Equal(t, StateDead, e.State, "%s came back from the dead", e.Label())
				require.Equal(t, rec.pos, e.Pos, "%s moved after death", e.Label())
				require.Equal(t, rec.health, e.Health.Current)
			} else if e.State == StateDead {
				deadAt[e.ID] = deadRecord{pos: e.Pos, health: e.Health.Current}
			}
		}
	}
}

// TestBurstDisciplineUnderFire verifies an attacking enemy never exceeds its
// burst length without the enforced triple-interval pause.
func TestBurstDisciplineUnderFire(t *testing.T) {
	ts := NewTestSim(
		WithSeed(6),
		WithNoWorldObjects(),
		WithEnemyPatrol(EnemyGrunt, 8, 0, Vec3{}),
	)
	cfg := EnemyConfigFor(EnemyGrunt)

	var shotTimes []float64
	prevAmmo := -1
	for i := 0; i < 60*20; i++ {
		ts.RunTicks(1)
		e := ts.Enemy(0)
		if e == nil {
			break
		}
		if prevAmmo >= 0 && e.Weapon.CurrentAmmo == prevAmmo-1 {
			shotTimes = append(shotTimes, ts.Now())
		}
		prevAmmo = e.Weapon.CurrentAmmo
	}
	require.Greater(t, len(shotTimes), cfg.Combat.BurstLength, "enemy engaged and fired")

	consecutive := 1
	for i := 1; i < len(shotTimes); i++ {
		gap := shotTimes[i] - shotTimes[i-1]
		if gap < cfg.Combat.FireInterval*3-1e-6 {
			consecutive++
			require.LessOrEqual(t, consecutive, cfg.Combat.BurstLength,
				"burst ran long without the enforced pause")
		} else {
			consecutive = 1
		}
	}
}

// TestAlertBoundsUnderArbitraryStimulus drives perception with alternating
// visible/heard/silent stretches and keeps alert inside [0,1] throughout.
func TestAlertBoundsUnderArbitraryStimulus(t *testing.T) {
	e := newEnemy(0, EnemyScout, Vec3{}, nil, testRNG(), NewScheduler(), NullSound{})
	p := NewPlayer(DefaultPlayerConfig(), Vec3{X: 5}, NewWeapon(WeaponRifle, 0), FlatTerrain{}, NullSound{}, 2)
	e.Yaw = HeadingTo(e.Pos, p.Pos)

	const dt = 1.0 / 60.0
	now := 0.0
	rng := testRNG()
	for i := 0; i < 60*60; i++ {
		now += dt
		switch rng.Intn(3) {
		case 0: // in view
			p.Pos = Vec3{X: 5}
			p.State = PlayerIdle
		case 1: // heard only
			p.Pos = Vec3{X: -20}
			p.State = PlayerRunning
		default: // gone
			p.Pos = Vec3{X: 500}
			p.State = PlayerIdle
		}
		e.perceive(dt, now, p)
		require.GreaterOrEqual(t, e.Alert, 0.0)
		require.LessOrEqual(t, e.Alert, 1.0)
	}
}
