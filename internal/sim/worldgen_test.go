package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWorldObjectsDeterministic(t *testing.T) {
	cfg := DefaultWorldGen()
	a := GenerateWorldObjects(cfg, FlatTerrain{}, rand.New(rand.NewSource(42)))
	b := GenerateWorldObjects(cfg, FlatTerrain{}, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b, "same seed, same field")

	c := GenerateWorldObjects(cfg, FlatTerrain{}, rand.New(rand.NewSource(43)))
	assert.NotEqual(t, a, c)
}

func TestGenerateWorldObjectsRespectsConstraints(t *testing.T) {
	cfg := DefaultWorldGen()
	objects := GenerateWorldObjects(cfg, FlatTerrain{}, rand.New(rand.NewSource(7)))

	// Dense seeds can skip a few placements; most should land.
	require.Greater(t, len(objects), (cfg.Trees+cfg.Stones)/2)

	trees, stones := 0, 0
	for i, o := range objects {
		switch o.Kind {
		case ObjectTree:
			trees++
		case ObjectStone:
			stones++
		}
		require.LessOrEqual(t, math.Abs(o.Pos.X), cfg.HalfExtent)
		require.LessOrEqual(t, math.Abs(o.Pos.Z), cfg.HalfExtent)
		require.GreaterOrEqual(t, math.Hypot(o.Pos.X, o.Pos.Z), cfg.ClearRadius,
			"spawn area stays clear")
		require.Greater(t, o.Yield, 0)

		for j := i + 1; j < len(objects); j++ {
			require.GreaterOrEqual(t, DistXZ(o.Pos, objects[j].Pos), objectSpacing,
				"minimum object spacing")
		}
	}
	assert.LessOrEqual(t, trees, cfg.Trees)
	assert.LessOrEqual(t, stones, cfg.Stones)
	assert.Greater(t, trees, 0)
	assert.Greater(t, stones, 0)
}

func TestObjectsInRadius(t *testing.T) {
	objects := []WorldObject{
		{Kind: ObjectTree, Pos: Vec3{X: 2}},
		{Kind: ObjectStone, Pos: Vec3{X: 9}},
		{Kind: ObjectTree, Pos: Vec3{X: 30}},
	}
	got := ObjectsInRadius(objects, Vec3{}, 10)
	require.Len(t, got, 2)
}

func TestNearestObstacle(t *testing.T) {
	objects := []WorldObject{
		{Pos: Vec3{X: 10}},
		{Pos: Vec3{X: 3}},
		{Pos: Vec3{X: 20}},
	}
	assert.Equal(t, 1, NearestObstacle(objects, Vec3{}))
	assert.Equal(t, -1, NearestObstacle(nil, Vec3{}))
}
