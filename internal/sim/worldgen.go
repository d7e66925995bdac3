package sim

import (
	"math"
	"math/rand"
)

// WorldObjectKind distinguishes generated obstacle types.
type WorldObjectKind int

const (
	ObjectTree WorldObjectKind = iota
	ObjectStone
)

func (k WorldObjectKind) String() string {
	switch k {
	case ObjectTree:
		return "tree"
	case ObjectStone:
		return "stone"
	default:
		return "unknown"
	}
}

// WorldObject is a static obstacle (tree or stone). The rendering layer owns
// the visuals; the core only keeps position and collision radius for cover
// and proximity checks.
type WorldObject struct {
	Kind   WorldObjectKind
	Pos    Vec3
	Radius float64
	// Yield is the resource count a gatherer extracts before the object is
	// exhausted (wood for trees, stone for stones).
	Yield int
}

const (
	treeRadiusMin  = 0.5
	treeRadiusMax  = 1.1
	stoneRadiusMin = 0.6
	stoneRadiusMax = 1.6
	objectSpacing  = 3.0 // min centre distance between generated objects
)

// WorldGenConfig tunes seeded object placement.
type WorldGenConfig struct {
	Trees  int
	Stones int
	// HalfExtent: objects are scattered over [-HalfExtent, HalfExtent] on
	// both ground axes.
	HalfExtent float64
	// ClearRadius keeps a spawn area around the origin free of obstacles.
	ClearRadius float64
}

// DefaultWorldGen matches the play-area scale the enemy radii are tuned for.
func DefaultWorldGen() WorldGenConfig {
	return WorldGenConfig{
		Trees:       60,
		Stones:      25,
		HalfExtent:  120,
		ClearRadius: 10,
	}
}

// GenerateWorldObjects scatters trees and stones with a seeded RNG. The same
// seed always yields the same field. Placement enforces a minimum spacing
// and the spawn clear radius; positions that cannot be placed after a
// bounded number of attempts are skipped rather than forced.
func GenerateWorldObjects(cfg WorldGenConfig, terrain Terrain, rng *rand.Rand) []WorldObject {
	objects := make([]WorldObject, 0, cfg.Trees+cfg.Stones)

	place := func(kind WorldObjectKind, rMin, rMax float64, yieldMin, yieldSpan int) {
		for attempt := 0; attempt < 8; attempt++ {
			x := (rng.Float64()*2 - 1) * cfg.HalfExtent
			z := (rng.Float64()*2 - 1) * cfg.HalfExtent
			if math.Hypot(x, z) < cfg.ClearRadius {
				continue
			}
			tooClose := false
			for i := range objects {
				if math.Hypot(objects[i].Pos.X-x, objects[i].Pos.Z-z) < objectSpacing {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}
			objects = append(objects, WorldObject{
				Kind:   kind,
				Pos:    Vec3{X: x, Y: terrain.HeightAt(x, z), Z: z},
				Radius: rMin + rng.Float64()*(rMax-rMin),
				Yield:  yieldMin + rng.Intn(yieldSpan),
			})
			return
		}
	}

	for i := 0; i < cfg.Trees; i++ {
		place(ObjectTree, treeRadiusMin, treeRadiusMax, 3, 4)
	}
	for i := 0; i < cfg.Stones; i++ {
		place(ObjectStone, stoneRadiusMin, stoneRadiusMax, 2, 3)
	}
	return objects
}

// ObjectsInRadius returns the generated objects within radius of pos
// (ground-plane distance).
func ObjectsInRadius(objects []WorldObject, pos Vec3, radius float64) []WorldObject {
	var out []WorldObject
	for i := range objects {
		if DistXZ(objects[i].Pos, pos) <= radius {
			out = append(out, objects[i])
		}
	}
	return out
}

// NearestObstacle returns the index of the object closest to pos, or -1 if
// the field is empty.
func NearestObstacle(objects []WorldObject, pos Vec3) int {
	best := -1
	bestDist := math.MaxFloat64
	for i := range objects {
		if d := DistXZ(objects[i].Pos, pos); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
