package scene

import (
	gomath "math"

	"github.com/Faultbox/tundra/internal/engine/model"
	"github.com/Faultbox/tundra/internal/engine/phys"
)

// DefaultCharacterSpeed is world units moved per frame at full input.
const DefaultCharacterSpeed = 0.1

// Character is a controllable entity: its behavior applies buffered
// motion through the physics world, turning to face the motion
// direction and sticking to the ground.
type Character struct {
	Entity *model.Entity
	Speed  float32

	world *phys.World
	body  *phys.Body

	motionX float32
	motionZ float32
	moved   bool
}

// NewCharacter spawns a character entity for txm, with a collision body
// sized from the model's bounding box.
func (s *Scene) NewCharacter(txm *model.TexturedModel) *Character {
	e := model.NewEntity(txm)
	m := txm.Model

	c := &Character{
		Entity: e,
		Speed:  DefaultCharacterSpeed,
		world:  s.World,
	}
	c.body = s.World.AddBody(entityAnchor{e}, m.AABBX(), m.AABBY(), m.AABBZ())
	e.Body = c.body
	e.Behavior = c
	return c
}

// SetMotion buffers the desired motion on the ground plane for the next
// update. The vector is a direction; Speed scales it.
func (c *Character) SetMotion(dx, dz float32) {
	c.motionX, c.motionZ = dx, dz
	c.moved = dx != 0 || dz != 0
}

// Grounded reports whether the character stands on the ground.
func (c *Character) Grounded() bool {
	return c.world.Grounded(c.body)
}

// Drop teleports the character straight down onto the ground.
func (c *Character) Drop() {
	c.world.Drop(entityAnchor{c.Entity})
}

// Update implements model.Behavior. Motion only applies while the
// body's motor is engaged; a character on a too-steep slope slides
// instead of walking.
func (c *Character) Update(e *model.Entity) {
	if c.moved && c.body.Motor {
		e.Move(c.motionX*c.Speed, 0, c.motionZ*c.Speed)
		e.RotY = float32(gomath.Atan2(float64(c.motionX), float64(c.motionZ)))
		c.world.GroundCollide(c.body)
	}
	c.moved = false
	c.motionX, c.motionZ = 0, 0
	e.ResetTransform()
}
