package sim

import "math"

const (
	coverDirections = 8
	coverOffset     = 10.0 // units from the agent's current position
)

// selectCover evaluates eight compass/diagonal directions at a fixed offset
// and picks the one that ends up farthest from the threat. This is a greedy
// distance heuristic only — it does not test occlusion against world
// geometry, which is a documented limitation rather than an oversight.
// Returns nil when there is no threat to take cover from.
func (e *Enemy) selectCover() *Vec3 {
	var threat Vec3
	switch {
	case e.target != nil:
		threat = e.target.Pos
	case e.hasLastKnown:
		threat = e.LastKnownPlayerPos
	default:
		return nil
	}

	var best Vec3
	bestDist := -1.0
	for i := 0; i < coverDirections; i++ {
		angle := float64(i) * 2 * math.Pi / coverDirections
		candidate := Vec3{
			X: e.Pos.X + math.Cos(angle)*coverOffset,
			Y: e.Pos.Y,
			Z: e.Pos.Z + math.Sin(angle)*coverOffset,
		}
		if d := DistXZ(candidate, threat); d > bestDist {
			bestDist = d
			best = candidate
		}
	}
	return &best
}
