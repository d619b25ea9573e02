package model

import (
	"testing"

	"github.com/Faultbox/tundra/internal/engine/asset"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

func transChannel() *Channel {
	return &Channel{
		Target: 0,
		Path:   asset.PathTranslation,
		Times:  []float32{0, 1, 2},
		Data: []float32{
			0, 0, 0,
			2, 0, 0,
			2, 4, 0,
		},
	}
}

func TestChannelHitsKeyframesExactly(t *testing.T) {
	ch := transChannel()
	want := []tmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 2, Y: 4, Z: 0},
	}

	var j Joint
	for i, time := range ch.Times {
		ch.apply(&j, time)
		if !vecNear(j.Translation, want[i], 1e-6) {
			t.Errorf("at t=%f got %+v, want %+v", time, j.Translation, want[i])
		}
	}
}

func TestChannelInterpolatesBetweenKeyframes(t *testing.T) {
	ch := transChannel()

	var j Joint
	ch.apply(&j, 0.5)
	if !vecNear(j.Translation, tmath.Vec3{X: 1}, 1e-6) {
		t.Errorf("at t=0.5 got %+v, want (1,0,0)", j.Translation)
	}
}

func TestChannelCursorAdvances(t *testing.T) {
	ch := transChannel()

	var j Joint
	ch.apply(&j, 0.1)
	if j.cursors[asset.PathTranslation] != 0 {
		t.Errorf("cursor = %d after t=0.1, want 0", j.cursors[asset.PathTranslation])
	}
	ch.apply(&j, 1.5)
	if j.cursors[asset.PathTranslation] != 1 {
		t.Errorf("cursor = %d after t=1.5, want 1", j.cursors[asset.PathTranslation])
	}
}

func TestChannelWrapsPastEnd(t *testing.T) {
	ch := transChannel()

	prev, next := ch.bracket(2.5, 0)
	if prev != 2 || next != 0 {
		t.Errorf("bracket past the end = (%d,%d), want (2,0)", prev, next)
	}
	prev, next = ch.bracket(-0.5, 0)
	if prev != 2 || next != 0 {
		t.Errorf("bracket before the start = (%d,%d), want (2,0)", prev, next)
	}
}

func TestScaleSnapsToPreviousKeyframe(t *testing.T) {
	ch := &Channel{
		Target: 0,
		Path:   asset.PathScale,
		Times:  []float32{0, 1},
		Data: []float32{
			1, 1, 1,
			3, 3, 3,
		},
	}

	var j Joint
	ch.apply(&j, 0.9)
	// No blending: still the first keyframe's scale just before the
	// second one.
	if !vecNear(j.Scale, tmath.Vec3{X: 1, Y: 1, Z: 1}, 1e-6) {
		t.Errorf("scale at t=0.9 = %+v, want (1,1,1)", j.Scale)
	}
	ch.apply(&j, 1.01)
	if !vecNear(j.Scale, tmath.Vec3{X: 3, Y: 3, Z: 3}, 1e-6) {
		t.Errorf("scale at t=1.01 = %+v, want (3,3,3)", j.Scale)
	}
}

func TestQuatBlendTakesShorterArc(t *testing.T) {
	a := tmath.QuatFromAxisAngle(tmath.Vec3{Y: 1}, 0.2)
	b := tmath.QuatFromAxisAngle(tmath.Vec3{Y: 1}, 0.4)
	// Negated quaternion represents the same rotation but flips the
	// naive blend to the long way around.
	nb := tmath.Quat{X: -b.X, Y: -b.Y, Z: -b.Z, W: -b.W}

	q1 := blendQuat(a, b, 0.5)
	q2 := blendQuat(a, nb, 0.5)

	m1 := q1.ToMat4()
	m2 := q2.ToMat4()
	for i := range m1 {
		if d := m1[i] - m2[i]; d > 1e-5 || d < -1e-5 {
			t.Fatalf("blend against negated operand diverged at cell %d: %f vs %f",
				i, m1[i], m2[i])
		}
	}
}

func TestSingleKeyframeChannel(t *testing.T) {
	ch := &Channel{
		Target: 0,
		Path:   asset.PathTranslation,
		Times:  []float32{0.5},
		Data:   []float32{1, 2, 3},
	}

	var j Joint
	for _, time := range []float32{0, 0.5, 10} {
		ch.apply(&j, time)
		if !vecNear(j.Translation, tmath.Vec3{X: 1, Y: 2, Z: 3}, 1e-6) {
			t.Errorf("single-key channel at t=%f = %+v", time, j.Translation)
		}
	}
}

func vecNear(a, b tmath.Vec3, eps float32) bool {
	return fNear(a.X, b.X, eps) && fNear(a.Y, b.Y, eps) && fNear(a.Z, b.Z, eps)
}

func fNear(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
