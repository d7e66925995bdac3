package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimStepAdvancesClock(t *testing.T) {
	ts := NewTestSim(WithSeed(1), WithNoWorldObjects())
	ts.RunTicks(60)
	assert.Equal(t, 60, ts.Tick())
	assert.InDelta(t, 1.0, ts.Now(), 1e-9)
	assert.InDelta(t, 1.0/60.0, ts.Dt(), 1e-12)
}

func TestSimTickRateOverride(t *testing.T) {
	ts := NewTestSim(WithSeed(1), WithTickRate(30), WithNoWorldObjects())
	ts.RunTicks(30)
	assert.InDelta(t, 1.0, ts.Now(), 1e-9)
}

func TestSimWorldObjectsGeneratedFromSeed(t *testing.T) {
	a := NewTestSim(WithSeed(9))
	b := NewTestSim(WithSeed(9))
	assert.Equal(t, a.Objects, b.Objects)
	assert.NotEmpty(t, a.ObjectSnapshots())
}

func TestSimPlayerShotKillsEnemyAhead(t *testing.T) {
	// Player at the origin facing +X; a grunt walks straight at it.
	ts := NewTestSim(
		WithSeed(4),
		WithNoWorldObjects(),
		WithEnemyPatrol(EnemyGrunt, 10, 0, Vec3{}),
	)
	ts.SetInput(Input{Aim: true, Fire: true})

	tick := ts.RunUntil(func(ts *TestSim) bool {
		return ts.Enemies.EnemyCount() == 0
	}, 60*10)
	if tick < 0 {
		t.Log(ts.Log.Format())
		t.Fatal("grunt not brought down within ten seconds")
	}
	assert.True(t, ts.Log.HasEntry("combat", "kill", "E0"))
	assert.Less(t, ts.Player.Weapon.CurrentAmmo, 30, "rounds were spent")
}

func TestSimPlayerShotNeedsTargetInCone(t *testing.T) {
	// Enemy directly behind the player: shots go into the void.
	ts := NewTestSim(
		WithSeed(4),
		WithNoWorldObjects(),
		WithEnemyPatrol(EnemyGrunt, -10, 0, Vec3{X: -10, Z: 5}),
	)
	ts.SetInput(Input{Fire: true})
	ts.RunTicks(30)

	e := ts.Enemy(0)
	require.NotNil(t, e)
	assert.Equal(t, e.Health.Max, e.Health.Current, "nothing in the cone was hit")
	assert.Equal(t, 0, ts.Log.CountCategory("combat", "shot_hit"))
}

func TestSimLogsEnemyStateTransitions(t *testing.T) {
	// The grunt patrols toward the player, spots it and escalates.
	ts := NewTestSim(
		WithSeed(2),
		WithNoWorldObjects(),
		WithEnemyPatrol(EnemyGrunt, 15, 0, Vec3{}),
	)

	tick := ts.RunUntil(func(ts *TestSim) bool {
		e := ts.Enemy(0)
		return e != nil && e.State == StateAttacking
	}, 60*20)
	if tick < 0 {
		t.Log(ts.Log.Format())
		t.Fatal("grunt never engaged")
	}

	assert.True(t, ts.Log.HasEntry("state", "transition", "investigating"))
	assert.True(t, ts.Log.HasEntry("state", "transition", "chasing"))
	assert.True(t, ts.Log.HasEntry("state", "transition", "attacking"))
	entries := ts.Log.FilterAgent("E0")
	assert.NotEmpty(t, entries)
}

func TestSimEnemyFireWearsPlayerDown(t *testing.T) {
	ts := NewTestSim(
		WithSeed(5),
		WithNoWorldObjects(),
		WithEnemyPatrol(EnemyGrunt, 8, 0, Vec3{}),
	)

	tick := ts.RunUntil(func(ts *TestSim) bool {
		return ts.Player.Health.Current < ts.Player.Health.Max
	}, 60*15)
	if tick < 0 {
		t.Log(ts.Log.Format())
		t.Fatal("enemy never landed a hit on a stationary player")
	}
}

func TestSimSnapshotReflectsState(t *testing.T) {
	ts := NewTestSim(
		WithSeed(1),
		WithNoWorldObjects(),
		WithEnemy(EnemyGrunt, 40, 0),
		WithEnemy(EnemyRobot, -40, 0),
	)
	ts.RunTicks(3)

	snap := ts.Snapshot()
	assert.Equal(t, 3, snap.Tick)
	assert.InDelta(t, 3.0/60.0, snap.Time, 1e-9)
	assert.Equal(t, "idle", snap.Player.State)
	assert.Equal(t, 30, snap.Player.Ammo)

	require.Len(t, snap.Enemies, 2)
	assert.Equal(t, "E0", snap.Enemies[0].Label)
	assert.Equal(t, "grunt", snap.Enemies[0].Type)
	assert.Equal(t, "robot", snap.Enemies[1].Type)
	assert.NotEmpty(t, snap.Enemies[0].UID)
	assert.NotEqual(t, snap.Enemies[0].UID, snap.Enemies[1].UID)
}

func TestSimSummaryFormats(t *testing.T) {
	ts := NewTestSim(WithSeed(1), WithNoWorldObjects(), WithEnemy(EnemyGrunt, 40, 0))
	ts.RunTicks(1)

	out := ts.Log.Summary(ts.Tick(), ts.Player, ts.Enemies.enemies)
	assert.Contains(t, out, "Player: hp=100")
	assert.Contains(t, out, "patrolling=1")
}
