package math

import "math"

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// CosInterp interpolates between a and b along a half cosine wave.
// Unlike Lerp it has zero derivative at both endpoints, which keeps
// stitched noise patches free of visible creases.
func CosInterp(a, b, blend float32) float32 {
	theta := float64(blend) * math.Pi
	f := float32(1-math.Cos(theta)) / 2
	return a*(1-f) + b*f
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to the range [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Barycentric evaluates the height (Y) of a point inside the triangle
// p1-p2-p3, where the triangle vertices carry (X, height, Z) and pos is
// the query point in the XZ plane.
func Barycentric(p1, p2, p3 Vec3, pos Vec2) float32 {
	det := (p2.Z-p3.Z)*(p1.X-p3.X) + (p3.X-p2.X)*(p1.Z-p3.Z)
	l1 := ((p2.Z-p3.Z)*(pos.X-p3.X) + (p3.X-p2.X)*(pos.Y-p3.Z)) / det
	l2 := ((p3.Z-p1.Z)*(pos.X-p3.X) + (p1.X-p3.X)*(pos.Y-p3.Z)) / det
	l3 := 1 - l1 - l2
	return l1*p1.Y + l2*p2.Y + l3*p3.Y
}
