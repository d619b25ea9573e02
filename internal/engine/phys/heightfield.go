package phys

import (
	"github.com/Faultbox/tundra/internal/engine/terrain"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

// HeightField is the terrain-backed collision space. Capsules are
// tested against the surface height under their center, which is exact
// for the vertical contacts the ground resolver cares about.
type HeightField struct {
	t *terrain.Terrain
	// march is the sampling step for arbitrary rays.
	march float32
}

// NewHeightField wraps a generated terrain in a collision space.
func NewHeightField(t *terrain.Terrain) *HeightField {
	return &HeightField{
		t:     t,
		march: t.Side / float32(t.NrVert-1) / 4,
	}
}

// CollideCapsule reports a contact when the capsule's lowest point is
// below the surface.
func (h *HeightField) CollideCapsule(b *Body) (Contact, bool) {
	c := b.Center()
	bottom := c.Y - b.RayOff - b.Radius
	ground := h.t.Height(c.X, c.Z)
	if bottom >= ground {
		return Contact{}, false
	}
	return Contact{
		Normal: h.t.Normal(c.X, c.Z),
		Depth:  ground - bottom,
	}, true
}

// RayDown returns the vertical distance from origin to the surface.
// Origins already below the surface report a zero-distance hit.
func (h *HeightField) RayDown(origin tmath.Vec3, maxLen float32) (float32, Contact, bool) {
	ground := h.t.Height(origin.X, origin.Z)
	d := origin.Y - ground
	if d > maxLen {
		return 0, Contact{}, false
	}
	if d < 0 {
		d = 0
	}
	return d, Contact{Normal: h.t.Normal(origin.X, origin.Z), Depth: d}, true
}

// RayCast marches along the ray sampling the surface. The heightfield
// has no bodies of its own, so the hit body is always nil.
func (h *HeightField) RayCast(origin, dir tmath.Vec3, maxLen float32) (*Body, float32, bool) {
	if dir.Y == -1 && dir.X == 0 && dir.Z == 0 {
		d, _, ok := h.RayDown(origin, maxLen)
		return nil, d, ok
	}

	for d := float32(0); d <= maxLen; d += h.march {
		p := origin.Add(dir.Scale(d))
		ground := h.t.Height(p.X, p.Z)
		if p.Y <= ground {
			return nil, d, true
		}
	}
	return nil, 0, false
}
