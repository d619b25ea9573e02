// Package phys keeps characters attached to the ground. It is not a
// rigid-body simulator: bodies are capsules (or spheres) derived from
// their entity's bounding box, and the world resolves ground
// penetration and grounding queries against a pluggable collision
// space, normally the terrain heightfield.
package phys

import (
	tmath "github.com/Faultbox/tundra/pkg/math"
)

const epsilon = 1e-3

// Owner is the entity side of a body: the world reads and writes its
// position when resolving contacts. Orientation stays with the owner;
// bodies carry no rotation state.
type Owner interface {
	Position() tmath.Vec3
	SetPosition(tmath.Vec3)
}

// Contact is one collision result.
type Contact struct {
	Normal tmath.Vec3
	Depth  float32
}

// Space is the collision backend bodies are tested against.
type Space interface {
	// CollideCapsule tests the body's capsule against the ground
	// geometry and returns the deepest contact.
	CollideCapsule(b *Body) (Contact, bool)
	// RayDown casts straight down from origin, up to maxLen, and
	// returns the distance to the surface.
	RayDown(origin tmath.Vec3, maxLen float32) (float32, Contact, bool)
	// RayCast casts an arbitrary ray and returns the hit body (nil
	// when the ground was hit) and the travel distance.
	RayCast(origin, dir tmath.Vec3, maxLen float32) (*Body, float32, bool)
}

// Body is a character's collision proxy: an upright or lying capsule
// sized from the entity's bounding box.
type Body struct {
	owner Owner
	world *World

	// Radius and Length describe the capsule; Length 0 degenerates to
	// a sphere.
	Radius float32
	Length float32
	// YOffset lifts the capsule center above the owner's position
	// (which sits at the feet); RayOff is where the grounding ray
	// starts, measured down from the center.
	YOffset float32
	RayOff  float32
	// Upright is false for bodies longer along z than tall.
	Upright bool

	// Motor reports whether the body is attached to its movement
	// motor. Steep contacts detach it; sticking to the ground
	// reattaches it.
	Motor bool

	penDepth float32
	penNorm  tmath.Vec3
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// deriveCapsule sizes the capsule from bounding box extents. The
// longest axis decides the orientation: a box longest along z lies
// down, anything else stands upright.
func (b *Body) deriveCapsule(x, y, z float32) {
	if z > x && z > y {
		b.Upright = false
		b.Radius = x / 2
		b.Length = z - b.Radius*2
		b.YOffset = (y - b.Radius*2) / 2
		b.RayOff = b.Radius
	} else {
		b.Upright = true
		b.Radius = min3(x, y, z) / 2
		b.Length = y/2 - b.Radius*2
		b.YOffset = y / 2
		b.RayOff = b.Radius + b.Length/2
	}
	if b.Length < 0 {
		b.Length = 0
	}
}

// Sphere reports whether the capsule degenerated to a sphere.
func (b *Body) Sphere() bool {
	return b.Length == 0
}

// Owner returns the entity this body belongs to.
func (b *Body) Owner() Owner {
	return b.owner
}

// Center returns the capsule center in world space.
func (b *Body) Center() tmath.Vec3 {
	p := b.owner.Position()
	p.Y += b.YOffset
	return p
}

// rayLen is how far below the capsule the grounding ray reaches.
func (b *Body) rayLen() float32 {
	return b.YOffset - b.RayOff + epsilon
}

// Destroy removes the body from its world. Safe to call twice.
func (b *Body) Destroy() {
	if b.world == nil {
		return
	}
	b.world.remove(b)
	b.world = nil
}
