package phys

import (
	"testing"

	"github.com/Faultbox/tundra/internal/engine/terrain"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

type fakeOwner struct {
	pos tmath.Vec3
}

func (o *fakeOwner) Position() tmath.Vec3     { return o.pos }
func (o *fakeOwner) SetPosition(p tmath.Vec3) { o.pos = p }

// planeSpace is flat ground at a fixed height.
type planeSpace struct {
	height float32
}

func (s *planeSpace) CollideCapsule(b *Body) (Contact, bool) {
	c := b.Center()
	bottom := c.Y - b.RayOff - b.Radius
	if bottom >= s.height {
		return Contact{}, false
	}
	return Contact{Normal: tmath.Vec3{Y: 1}, Depth: s.height - bottom}, true
}

func (s *planeSpace) RayDown(origin tmath.Vec3, maxLen float32) (float32, Contact, bool) {
	d := origin.Y - s.height
	if d > maxLen {
		return 0, Contact{}, false
	}
	if d < 0 {
		d = 0
	}
	return d, Contact{Normal: tmath.Vec3{Y: 1}, Depth: d}, true
}

func (s *planeSpace) RayCast(origin, dir tmath.Vec3, maxLen float32) (*Body, float32, bool) {
	if dir.Y >= 0 {
		return nil, 0, false
	}
	d := (origin.Y - s.height) / -dir.Y
	if d < 0 || d > maxLen {
		return nil, 0, false
	}
	return nil, d, true
}

func TestCapsuleDerivation(t *testing.T) {
	cases := []struct {
		name            string
		x, y, z         float32
		upright, sphere bool
		radius, length  float32
		yOffset, rayOff float32
	}{
		{"tall", 1, 4, 1, true, false, 0.5, 1, 2, 1},
		{"lying", 1, 1, 4, false, false, 0.5, 3, 0, 0.5},
		{"unit", 1, 1, 1, true, true, 0.5, 0, 0.5, 0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b Body
			b.deriveCapsule(c.x, c.y, c.z)
			if b.Upright != c.upright {
				t.Errorf("upright = %v, want %v", b.Upright, c.upright)
			}
			if b.Sphere() != c.sphere {
				t.Errorf("sphere = %v, want %v", b.Sphere(), c.sphere)
			}
			if b.Radius != c.radius || b.Length != c.length {
				t.Errorf("capsule r=%f l=%f, want r=%f l=%f",
					b.Radius, b.Length, c.radius, c.length)
			}
			if b.YOffset != c.yOffset || b.RayOff != c.rayOff {
				t.Errorf("offsets y=%f ray=%f, want y=%f ray=%f",
					b.YOffset, b.RayOff, c.yOffset, c.rayOff)
			}
		})
	}
}

func TestGroundCollideSettles(t *testing.T) {
	w := NewWorld(&planeSpace{height: 0})
	o := &fakeOwner{pos: tmath.Vec3{Y: -0.2}}
	b := w.AddBody(o, 1, 4, 1)

	if !w.GroundCollide(b) {
		t.Fatal("body over flat ground reported airborne")
	}
	if o.pos.Y < -2*epsilon || o.pos.Y > 2*epsilon {
		t.Errorf("body settled at y=%f, want ~0", o.pos.Y)
	}
	if !b.Motor {
		t.Error("settling must engage the motor")
	}
	if !w.Grounded(b) {
		t.Error("settled body must be grounded")
	}
}

func TestGroundCollideAirborne(t *testing.T) {
	w := NewWorld(&planeSpace{height: 0})
	o := &fakeOwner{pos: tmath.Vec3{Y: 10}}
	b := w.AddBody(o, 1, 4, 1)

	if w.GroundCollide(b) {
		t.Fatal("body far above ground reported grounded")
	}
	if o.pos.Y != 10 {
		t.Errorf("airborne body moved to y=%f", o.pos.Y)
	}
	if w.Grounded(b) {
		t.Error("airborne body must not be grounded")
	}
}

// steepSpace reports a wall-like capsule contact and no ground below.
type steepSpace struct{}

func (steepSpace) CollideCapsule(b *Body) (Contact, bool) {
	return Contact{Normal: tmath.Vec3{X: 0.99, Y: 0.1}, Depth: 0.2}, true
}

func (steepSpace) RayDown(tmath.Vec3, float32) (float32, Contact, bool) {
	return 0, Contact{}, false
}

func (steepSpace) RayCast(tmath.Vec3, tmath.Vec3, float32) (*Body, float32, bool) {
	return nil, 0, false
}

func TestSteepContactDetachesMotor(t *testing.T) {
	w := NewWorld(steepSpace{})
	o := &fakeOwner{}
	b := w.AddBody(o, 1, 4, 1)

	if w.GroundCollide(b) {
		t.Error("steep contact with no floor must not ground the body")
	}
	if b.Motor {
		t.Error("steep contact must detach the motor")
	}
}

func TestStepResolvesPenetration(t *testing.T) {
	w := NewWorld(&planeSpace{height: 0})
	sunk := &fakeOwner{pos: tmath.Vec3{X: 3, Y: -1}}
	free := &fakeOwner{pos: tmath.Vec3{X: -3, Y: 5}}
	w.AddBody(sunk, 1, 1, 1)
	w.AddBody(free, 1, 1, 1)

	w.Step()

	if sunk.pos.Y < -2*epsilon || sunk.pos.Y > 2*epsilon {
		t.Errorf("penetrating body resolved to y=%f, want ~0", sunk.pos.Y)
	}
	if free.pos.Y != 5 {
		t.Errorf("free body moved to y=%f during step", free.pos.Y)
	}
}

func TestDrop(t *testing.T) {
	w := NewWorld(&planeSpace{height: 2})
	o := &fakeOwner{pos: tmath.Vec3{X: 1, Y: 30, Z: 1}}

	w.Drop(o)
	if o.pos.Y != 2 {
		t.Errorf("dropped to y=%f, want 2", o.pos.Y)
	}
}

// scriptSpace replays canned ray results, for the self-skip path.
type scriptSpace struct {
	hits []scriptHit
}

type scriptHit struct {
	body  *Body
	depth float32
}

func (s *scriptSpace) CollideCapsule(*Body) (Contact, bool) { return Contact{}, false }

func (s *scriptSpace) RayDown(tmath.Vec3, float32) (float32, Contact, bool) {
	return 0, Contact{}, false
}

func (s *scriptSpace) RayCast(tmath.Vec3, tmath.Vec3, float32) (*Body, float32, bool) {
	if len(s.hits) == 0 {
		return nil, 0, false
	}
	h := s.hits[0]
	s.hits = s.hits[1:]
	return h.body, h.depth, true
}

func TestRayCastSkipsSelf(t *testing.T) {
	space := &scriptSpace{}
	w := NewWorld(space)
	self := &fakeOwner{}
	b := w.AddBody(self, 1, 4, 1)

	space.hits = []scriptHit{
		{body: b, depth: 1},   // own capsule
		{body: nil, depth: 3}, // ground behind it
	}

	hit, dist, ok := w.RayCast(self, tmath.Vec3{Y: 5}, tmath.Vec3{Y: -1}, 100)
	if !ok {
		t.Fatal("ray missed")
	}
	if hit != nil {
		t.Error("ray should have skipped the caster's own body")
	}
	want := float32(4) + epsilon
	if dist < want-1e-4 || dist > want+1e-4 {
		t.Errorf("distance = %f, want ~%f", dist, want)
	}
}

func TestHeightFieldGrounding(t *testing.T) {
	tr := terrain.Generate(terrain.Params{Side: 100, NrVert: 64, Seed: 7})
	w := NewWorld(NewHeightField(tr))

	o := &fakeOwner{pos: tmath.Vec3{X: 50, Y: 100, Z: 50}}
	b := w.AddBody(o, 1, 2, 1)

	w.Drop(o)
	if !w.GroundCollide(b) {
		t.Fatal("dropped body not grounded")
	}

	h := tr.Height(o.pos.X, o.pos.Z)
	if d := o.pos.Y - h; d < -0.01 || d > 0.01 {
		t.Errorf("body rests at y=%f, surface at %f", o.pos.Y, h)
	}
}
