package math

import (
	gomath "math"
	"testing"
)

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0); got != 0 {
		t.Errorf("Lerp(0, 10, 0) = %v, want 0", got)
	}
	if got := Lerp(0, 10, 1); got != 10 {
		t.Errorf("Lerp(0, 10, 1) = %v, want 10", got)
	}
	if got := Lerp(2, 6, 0.25); got != 3 {
		t.Errorf("Lerp(2, 6, 0.25) = %v, want 3", got)
	}
}

func TestCosInterp(t *testing.T) {
	// Endpoints are exact, midpoint is the average.
	if got := CosInterp(3, 7, 0); got != 3 {
		t.Errorf("CosInterp(3, 7, 0) = %v, want 3", got)
	}
	if got := CosInterp(3, 7, 1); gomath.Abs(float64(got-7)) > 1e-5 {
		t.Errorf("CosInterp(3, 7, 1) = %v, want 7", got)
	}
	if got := CosInterp(3, 7, 0.5); gomath.Abs(float64(got-5)) > 1e-5 {
		t.Errorf("CosInterp(3, 7, 0.5) = %v, want 5", got)
	}

	// Near the endpoints it flattens out: the first tenth covers far
	// less than a tenth of the range.
	if got := CosInterp(0, 1, 0.1); got >= 0.1 {
		t.Errorf("CosInterp(0, 1, 0.1) = %v, want < 0.1", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1, 0, 10) = %v, want 0", got)
	}
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %v, want 5", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11, 0, 10) = %v, want 10", got)
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(-3, 0, 7); got != 0 {
		t.Errorf("ClampInt(-3, 0, 7) = %v, want 0", got)
	}
	if got := ClampInt(4, 0, 7); got != 4 {
		t.Errorf("ClampInt(4, 0, 7) = %v, want 4", got)
	}
	if got := ClampInt(9, 0, 7); got != 7 {
		t.Errorf("ClampInt(9, 0, 7) = %v, want 7", got)
	}
}

func TestBarycentric(t *testing.T) {
	p1 := Vec3{X: 0, Y: 2, Z: 0}
	p2 := Vec3{X: 1, Y: 4, Z: 0}
	p3 := Vec3{X: 0, Y: 6, Z: 1}

	// At a vertex the interpolated height is that vertex's height.
	if got := Barycentric(p1, p2, p3, Vec2{X: 0, Y: 0}); gomath.Abs(float64(got-2)) > 1e-5 {
		t.Errorf("Barycentric at p1 = %v, want 2", got)
	}
	if got := Barycentric(p1, p2, p3, Vec2{X: 1, Y: 0}); gomath.Abs(float64(got-4)) > 1e-5 {
		t.Errorf("Barycentric at p2 = %v, want 4", got)
	}

	// At the centroid it is the average of the three heights.
	centroid := Vec2{X: 1.0 / 3, Y: 1.0 / 3}
	if got := Barycentric(p1, p2, p3, centroid); gomath.Abs(float64(got-4)) > 1e-4 {
		t.Errorf("Barycentric at centroid = %v, want 4", got)
	}
}
