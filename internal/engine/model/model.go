// Package model implements the scene's instancing hierarchy: a Model is
// immutable mesh data shared by reference counting, a TexturedModel
// binds a model to its surface parameters and owns the entities placed
// in the world, and an Entity is one placed instance with its own
// transform, optional animation state and physics body.
package model

import (
	"github.com/Faultbox/tundra/internal/engine/asset"
	"github.com/Faultbox/tundra/internal/logger"
)

// Framerate is the fixed animation tick rate.
const Framerate = 48

// GPUResource is whatever the renderer allocated for a model or
// texture. It is released exactly once, when the last reference to the
// owning model goes away.
type GPUResource interface {
	Release()
}

// Model is an immutable mesh with an optional skeleton and animation
// clips. It is shared across entities and freed when the last
// TexturedModel wrapping it releases its reference.
type Model struct {
	Name string
	Mesh *asset.MeshData
	// AABB is min/max per axis: x0, x1, y0, y1, z0, z1.
	AABB      [6]float32
	Clips     []Clip
	RootJoint int

	refs int
	gpu  GPUResource
}

// New validates md and wraps it in a model holding one reference.
func New(md *asset.MeshData) (*Model, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		Name:      md.Name,
		Mesh:      md,
		RootJoint: -1,
		refs:      1,
	}
	m.calcAABB()
	for i, jd := range md.Hierarchy {
		if jd.Parent == -1 {
			m.RootJoint = i
		}
	}
	for _, cd := range md.Clips {
		m.Clips = append(m.Clips, newClip(cd))
	}
	return m, nil
}

func (m *Model) calcAABB() {
	vx := m.Mesh.Vertices
	for axis := 0; axis < 3; axis++ {
		m.AABB[axis*2] = vx[axis]
		m.AABB[axis*2+1] = vx[axis]
	}
	for i := 0; i < len(vx); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := vx[i+axis]
			if v < m.AABB[axis*2] {
				m.AABB[axis*2] = v
			}
			if v > m.AABB[axis*2+1] {
				m.AABB[axis*2+1] = v
			}
		}
	}
}

// AABBX returns the bounding box extent along x.
func (m *Model) AABBX() float32 { return m.AABB[1] - m.AABB[0] }

// AABBY returns the bounding box extent along y.
func (m *Model) AABBY() float32 { return m.AABB[3] - m.AABB[2] }

// AABBZ returns the bounding box extent along z.
func (m *Model) AABBZ() float32 { return m.AABB[5] - m.AABB[4] }

// JointCount returns the number of skeleton joints, 0 for rigid meshes.
func (m *Model) JointCount() int {
	return len(m.Mesh.Hierarchy)
}

// Animated reports whether entities of this model need per-frame
// skeletal updates.
func (m *Model) Animated() bool {
	return m.JointCount() > 0 && len(m.Clips) > 0
}

// ClipIndex returns the index of the named clip, or -1.
func (m *Model) ClipIndex(name string) int {
	for i := range m.Clips {
		if m.Clips[i].Name == name {
			return i
		}
	}
	return -1
}

// LODCount returns the number of index buffers, the full-detail one
// included.
func (m *Model) LODCount() int {
	return 1 + len(m.Mesh.LODs)
}

// LODIndices returns the index buffer for the given detail level,
// clamped to the coarsest available.
func (m *Model) LODIndices(level int) []uint16 {
	if level <= 0 || len(m.Mesh.LODs) == 0 {
		return m.Mesh.Indices
	}
	if level > len(m.Mesh.LODs) {
		level = len(m.Mesh.LODs)
	}
	return m.Mesh.LODs[level-1]
}

// SetGPU attaches the renderer's buffers to the model.
func (m *Model) SetGPU(g GPUResource) {
	m.gpu = g
}

// Ref takes another reference.
func (m *Model) Ref() *Model {
	m.refs++
	return m
}

// Release drops a reference. The last release frees the GPU resources.
func (m *Model) Release() {
	if m.refs <= 0 {
		logger.Warn("releasing a dead model")
		return
	}
	m.refs--
	if m.refs > 0 {
		return
	}
	if m.gpu != nil {
		m.gpu.Release()
		m.gpu = nil
	}
}
