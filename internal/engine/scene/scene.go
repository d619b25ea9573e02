// Package scene composes a playable world: the model queue, the
// terrain, the physics world, the sun and the focus cursor, stepped in
// a fixed order once per frame.
package scene

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/tundra/internal/engine/camera"
	"github.com/Faultbox/tundra/internal/engine/model"
	"github.com/Faultbox/tundra/internal/engine/phys"
	"github.com/Faultbox/tundra/internal/engine/terrain"
	"github.com/Faultbox/tundra/internal/logger"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

var (
	dayColor   = [3]float32{1, 1, 1}
	nightColor = [3]float32{0.3, 0.3, 0.4}
)

// Light is the scene's single light source, swept across the sky as
// the frame counter advances.
type Light struct {
	Pos   tmath.Vec3
	Color [3]float32
}

// Scene owns everything the frame loop touches. Per-frame order is
// fixed: physics step, then light and entity updates, then whatever the
// renderer reads out.
type Scene struct {
	Queue   *model.Queue
	World   *phys.World
	Terrain *terrain.Terrain
	Camera  *camera.OrbitCamera
	Light   Light

	// Focus is the entity selected for debug navigation, or nil.
	Focus *model.Entity

	Autopilot   bool
	FramesTotal int64
}

// New builds a scene around a generated terrain: an empty model queue
// and a physics world colliding against the terrain's heightfield. The
// camera starts framing the whole landscape.
func New(t *terrain.Terrain) *Scene {
	s := &Scene{
		Queue:   &model.Queue{},
		World:   phys.NewWorld(phys.NewHeightField(t)),
		Terrain: t,
		Camera:  camera.NewOrbitCamera(),
	}
	s.Camera.FitToBounds(t.X, t.Y, t.Z, t.X+t.Side, t.Y+2*terrain.Amplitude, t.Z+t.Side)
	s.Light.Color = dayColor
	return s
}

// AddGroup appends a model group to the scene's draw order.
func (s *Scene) AddGroup(txm *model.TexturedModel) {
	s.Queue.AddTail(txm)
	logger.Debug("model group added", zap.String("model", txm.Model.Name))
}

// Update advances the scene by one frame: resolve ground contacts,
// sweep the light, run every entity's behavior, and move the camera
// when the autopilot is on.
func (s *Scene) Update() {
	s.World.Step()
	s.lightUpdate()
	s.Queue.Update()
	if s.Autopilot {
		s.Camera.Sweep(s.FramesTotal)
	}
	s.FramesTotal++
}

// lightUpdate sweeps the sun across the sky, a quarter degree per
// frame, mirroring it back above the horizon at night and dimming the
// color.
func (s *Scene) lightUpdate() {
	a := gomath.Pi / 180 * float64(s.FramesTotal) / 4
	s.Light.Pos = tmath.Vec3{
		X: 500 * float32(gomath.Cos(a)),
		Y: 500 * float32(gomath.Sin(a)),
	}
	if s.Light.Pos.Y < 0 {
		s.Light.Pos.Y = -s.Light.Pos.Y
		s.Light.Color = nightColor
	} else {
		s.Light.Color = dayColor
	}
}

// FocusNext moves the focus cursor to the next entity, hopping to the
// next non-empty group past the end of the current one and wrapping at
// the end of the queue.
func (s *Scene) FocusNext() {
	if s.Focus != nil {
		ents := s.Focus.Group.Entities
		for i, e := range ents {
			if e == s.Focus && i+1 < len(ents) {
				s.Focus = ents[i+1]
				return
			}
		}
	}
	g := s.Queue.NextNonEmpty(focusGroup(s.Focus), true)
	if g == nil {
		s.Focus = nil
		return
	}
	s.Focus = g.Entities[0]
}

// FocusPrev is FocusNext in the other direction, landing on the last
// entity of the previous non-empty group.
func (s *Scene) FocusPrev() {
	if s.Focus != nil {
		ents := s.Focus.Group.Entities
		for i, e := range ents {
			if e == s.Focus && i > 0 {
				s.Focus = ents[i-1]
				return
			}
		}
	}
	g := s.Queue.NextNonEmpty(focusGroup(s.Focus), false)
	if g == nil {
		s.Focus = nil
		return
	}
	s.Focus = g.Entities[len(g.Entities)-1]
}

// FocusCancel drops the focus cursor.
func (s *Scene) FocusCancel() {
	s.Focus = nil
}

// MoveFocused nudges the focused entity, or reports false when nothing
// is focused, so callers can fall back to moving the camera.
func (s *Scene) MoveFocused(dx, dy, dz float32) bool {
	if s.Focus == nil {
		return false
	}
	s.Focus.Move(dx, dy, dz)
	return true
}

// Release tears the scene down: all entities, groups, and their GPU
// resources.
func (s *Scene) Release() {
	s.Focus = nil
	s.Queue.Release()
}

func focusGroup(e *model.Entity) *model.TexturedModel {
	if e == nil {
		return nil
	}
	return e.Group
}

// entityAnchor adapts an entity to the physics world's owner contract.
type entityAnchor struct {
	e *model.Entity
}

func (a entityAnchor) Position() tmath.Vec3     { return a.e.Pos }
func (a entityAnchor) SetPosition(p tmath.Vec3) { a.e.Pos = p }
