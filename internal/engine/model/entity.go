package model

import (
	tmath "github.com/Faultbox/tundra/pkg/math"
)

// Joint is one entity's pose state for a skeleton joint. Cursors cache
// the last keyframe index per channel path to keep playback scans
// short.
type Joint struct {
	Translation tmath.Vec3
	Rotation    tmath.Quat
	Scale       tmath.Vec3
	Global      tmath.Mat4

	cursors [3]int
}

// PhysicsBody is the entity's link back to whatever body the physics
// world gave it. The entity only needs to tear it down.
type PhysicsBody interface {
	Destroy()
}

// Behavior is an entity's per-frame update. The set is closed: Static
// for scenery that never moves, Transforming for everything that
// rebuilds its matrix each frame; characters wrap Transforming with
// their own movement logic.
type Behavior interface {
	Update(e *Entity)
}

// Static entities keep the transform computed at placement time.
type Static struct{}

func (Static) Update(e *Entity) {}

// Transforming entities rebuild their matrix every frame and advance
// their animation if they have one.
type Transforming struct{}

func (Transforming) Update(e *Entity) {
	e.ResetTransform()
}

// Entity is one placed instance of a textured model.
type Entity struct {
	Group *TexturedModel

	Pos              tmath.Vec3
	RotX, RotY, RotZ float32
	Scale            float32
	Visible          bool
	Color            [4]float32
	ColorBlend       float32
	Transform        tmath.Mat4

	Behavior Behavior
	Body     PhysicsBody

	// Joints and JointTransforms are nil for unanimated models and
	// sized to the model's joint count otherwise.
	Joints          []Joint
	JointTransforms []tmath.Mat4
	Clip            int
	Frame           int64
	clipQueue       []int

	destroyed bool
}

// NewEntity places a new instance of txm. The entity starts visible at
// the origin with unit scale; animated models start playing clip 0.
func NewEntity(txm *TexturedModel) *Entity {
	e := &Entity{
		Group:    txm,
		Scale:    1,
		Visible:  true,
		Behavior: Transforming{},
	}
	txm.ref()
	txm.Entities = append(txm.Entities, e)

	if m := txm.Model; m.Animated() {
		e.Joints = make([]Joint, m.JointCount())
		e.JointTransforms = make([]tmath.Mat4, m.JointCount())
		e.StartClip(0)
	}
	e.ResetTransform()
	return e
}

// Animated reports whether this entity carries skeletal animation
// state.
func (e *Entity) Animated() bool {
	return e.Joints != nil
}

// Update runs the entity's behavior for this frame.
func (e *Entity) Update() {
	e.Behavior.Update(e)
}

// ResetTransform rebuilds the entity's matrix from its position, Euler
// rotation and uniform scale, then advances the animation when there is
// one. The composition order is fixed.
func (e *Entity) ResetTransform() {
	e.Transform = tmath.Translate(e.Pos.X, e.Pos.Y, e.Pos.Z).
		Mul(tmath.RotateX(e.RotX)).
		Mul(tmath.RotateY(e.RotY)).
		Mul(tmath.RotateZ(e.RotZ)).
		Mul(tmath.Scale(e.Scale, e.Scale, e.Scale))
	if e.Animated() {
		e.animStep()
	}
}

// Move translates the entity by the given deltas.
func (e *Entity) Move(dx, dy, dz float32) {
	e.Pos = e.Pos.Add(tmath.Vec3{X: dx, Y: dy, Z: dz})
}

// StartClip switches to the given clip immediately, rewinding the frame
// counter and every channel cursor.
func (e *Entity) StartClip(clip int) {
	if n := len(e.Group.Model.Clips); clip >= n {
		clip %= n
	}
	e.Clip = clip
	e.Frame = 0
	for i := range e.Joints {
		e.Joints[i].cursors = [3]int{}
	}
}

// QueueClip appends a clip to play once the current one finishes.
func (e *Entity) QueueClip(clip int) {
	e.clipQueue = append(e.clipQueue, clip)
}

// animStep poses the skeleton for the current frame and advances the
// clock. When the clip runs out, the next queued clip starts, or clip 0
// when the queue is empty.
func (e *Entity) animStep() {
	m := e.Group.Model
	clip := &m.Clips[e.Clip]

	for i := range e.Joints {
		e.Joints[i].Translation = tmath.Vec3{}
		e.Joints[i].Rotation = tmath.QuatIdentity()
		e.Joints[i].Scale = tmath.Vec3{X: 1, Y: 1, Z: 1}
	}

	time := float32(e.Frame) / Framerate
	for i := range clip.Channels {
		ch := &clip.Channels[i]
		ch.apply(&e.Joints[ch.Target], time)
	}
	e.composeJoint(m.RootJoint, -1)

	e.Frame++
	if float32(e.Frame) >= clip.Duration*Framerate {
		next := 0
		if len(e.clipQueue) > 0 {
			next = e.clipQueue[0]
			e.clipQueue = e.clipQueue[1:]
		}
		e.StartClip(next)
	}
}

// composeJoint walks the skeleton from the root, combining each joint's
// local pose with its parent's global transform. The skinning matrix is
// the global transform times the joint's inverse bind matrix.
func (e *Entity) composeJoint(joint, parent int) {
	m := e.Group.Model
	j := &e.Joints[joint]

	local := tmath.Translate(j.Translation.X, j.Translation.Y, j.Translation.Z).
		Mul(j.Rotation.ToMat4()).
		Mul(tmath.Scale(j.Scale.X, j.Scale.Y, j.Scale.Z))
	if parent >= 0 {
		j.Global = e.Joints[parent].Global.Mul(local)
	} else {
		j.Global = local
	}
	e.JointTransforms[joint] = j.Global.Mul(m.Mesh.InverseBind[joint])

	for _, child := range m.Mesh.Hierarchy[joint].Children {
		e.composeJoint(child, joint)
	}
}

// Destroy detaches the entity from its group and tears down its physics
// body. The group itself is released when its last entity goes away.
// Destroying twice is a no-op.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true

	if e.Body != nil {
		e.Body.Destroy()
		e.Body = nil
	}
	e.Group.detach(e)
	e.Group.release()
}
