package phys

import (
	"go.uber.org/zap"

	"github.com/Faultbox/tundra/internal/logger"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

// World owns the character bodies and resolves their contacts against a
// collision space once per fixed step.
type World struct {
	space  Space
	bodies []*Body
}

// NewWorld creates a world colliding against space.
func NewWorld(space Space) *World {
	return &World{space: space}
}

// AddBody gives owner a capsule body sized from the given bounding box
// extents. The motor starts engaged.
func (w *World) AddBody(owner Owner, x, y, z float32) *Body {
	b := &Body{owner: owner, world: w, Motor: true}
	b.deriveCapsule(x, y, z)
	w.bodies = append(w.bodies, b)
	logger.Debug("body added",
		zap.Float32("radius", b.Radius),
		zap.Float32("length", b.Length),
		zap.Bool("upright", b.Upright))
	return b
}

func (w *World) remove(b *Body) {
	for i, it := range w.bodies {
		if it == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Bodies returns the live bodies, for iteration only.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// GroundCollide snaps the body onto the ground surface. A capsule
// contact with an upward-facing normal lifts the body clear; a steep
// contact detaches the movement motor instead, letting the body slide.
// The downward ray then settles the body at standing height and
// reattaches the motor. Returns whether the body ended up grounded.
func (w *World) GroundCollide(b *Body) bool {
	rayLen := b.rayLen()

	if c, ok := w.space.CollideCapsule(b); ok {
		switch upness := c.Normal.Y; {
		case upness > 0.95:
			w.moveOwner(b, rayLen+c.Depth)
		case upness > 0.3:
			w.moveOwner(b, c.Depth)
		default:
			b.Motor = false
		}
	}

	origin := b.Center()
	origin.Y -= b.RayOff
	depth, _, ok := w.space.RayDown(origin, rayLen)
	if !ok {
		return false
	}
	if rayLen-depth > epsilon {
		w.moveOwner(b, rayLen-depth)
	}
	b.Motor = true
	return true
}

// Grounded reports whether the body currently stands on the ground.
// A body with a detached motor is airborne by definition.
func (w *World) Grounded(b *Body) bool {
	if !b.Motor {
		return false
	}
	if _, ok := w.space.CollideCapsule(b); ok {
		return true
	}
	origin := b.Center()
	origin.Y -= b.RayOff
	_, _, ok := w.space.RayDown(origin, b.rayLen())
	return ok
}

func (w *World) moveOwner(b *Body, dy float32) {
	p := b.owner.Position()
	p.Y += dy
	b.owner.SetPosition(p)
}

// Step resolves one fixed timestep: collect ground penetrations for
// every body, then push each affected body out along the accumulated
// contact normal and re-ground it.
func (w *World) Step() {
	affected := w.bodies[:0:0]
	for _, b := range w.bodies {
		c, ok := w.space.CollideCapsule(b)
		if !ok {
			continue
		}
		b.penDepth += c.Depth
		b.penNorm = b.penNorm.Add(c.Normal.Scale(c.Depth))
		affected = append(affected, b)
	}

	for _, b := range affected {
		if b.penDepth > 0 && b.penNorm.Length() > 0 {
			p := b.owner.Position()
			b.owner.SetPosition(p.Sub(b.penNorm))
			w.GroundCollide(b)
		}
		b.penDepth = 0
		b.penNorm = tmath.Vec3{}
	}
}

// Drop teleports owner straight down onto whatever is below it. A body
// floating over nothing stays put.
func (w *World) Drop(o Owner) {
	pos := o.Position()
	_, dist, ok := w.RayCast(o, pos, tmath.Vec3{Y: -1}, 1e6)
	if !ok {
		return
	}
	pos.Y -= dist
	o.SetPosition(pos)
}

// RayCast casts a ray through the world, skipping hits on self by
// restarting just past them, a few times at most. Returns the body hit
// (nil for ground), and the total distance from start.
func (w *World) RayCast(self Owner, start, dir tmath.Vec3, maxDist float32) (*Body, float32, bool) {
	origin := start
	var traveled float32

	for try := 0; try <= 10; try++ {
		hit, depth, ok := w.space.RayCast(origin, dir, maxDist-traveled)
		if !ok {
			return nil, 0, false
		}
		if hit != nil && hit.owner == self && try < 10 {
			step := depth + epsilon
			origin = origin.Add(dir.Scale(step))
			traveled += step
			continue
		}
		return hit, traveled + depth, true
	}
	return nil, 0, false
}
