package sim

import "math"

// Vec3 is a point or direction in world space. Y is up; agents move on the
// XZ plane and sample terrain height for Y.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the full 3D length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LenXZ returns the length of v projected onto the ground plane.
func (v Vec3) LenXZ() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalized returns v with unit length, or the zero vector if v is
// degenerate.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return v.Scale(1.0 / l)
}

// Lerp returns v moved toward o by fraction t (clamped to [0,1]).
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	t = clamp01(t)
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// DistXZ returns the ground-plane distance between two points.
func DistXZ(a, b Vec3) float64 {
	return math.Hypot(b.X-a.X, b.Z-a.Z)
}

// HeadingTo returns the yaw in radians from a toward b on the ground plane.
// 0 = +X, pi/2 = +Z.
func HeadingTo(a, b Vec3) float64 {
	return math.Atan2(b.Z-a.Z, b.X-a.X)
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// lerpAngle rotates from toward to by at most maxDelta radians, taking the
// short way around.
func lerpAngle(from, to, maxDelta float64) float64 {
	diff := normalizeAngle(to - from)
	if math.Abs(diff) <= maxDelta {
		return to
	}
	if diff > 0 {
		return normalizeAngle(from + maxDelta)
	}
	return normalizeAngle(from - maxDelta)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
