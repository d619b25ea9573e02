// Package asset holds the intermediate mesh and animation data that
// loaders produce and the model package consumes. Everything here is
// plain CPU-side data; nothing touches the GPU.
package asset

import (
	"fmt"

	tmath "github.com/Faultbox/tundra/pkg/math"
)

// Path identifies which joint property an animation channel drives.
type Path int

const (
	PathTranslation Path = iota
	PathRotation
	PathScale
)

// Stride returns the number of floats one keyframe occupies.
func (p Path) Stride() int {
	if p == PathRotation {
		return 4
	}
	return 3
}

func (p Path) String() string {
	switch p {
	case PathTranslation:
		return "translation"
	case PathRotation:
		return "rotation"
	case PathScale:
		return "scale"
	}
	return fmt.Sprintf("path(%d)", int(p))
}

// ChannelData is one animation channel: keyframe times plus packed
// values for a single joint property.
type ChannelData struct {
	Target int // joint index
	Path   Path
	Times  []float32
	Data   []float32
}

// ClipData is a named animation clip.
type ClipData struct {
	Name     string
	Channels []ChannelData
}

// JointDef describes one node of the skeleton. Parent is -1 for the
// root.
type JointDef struct {
	Name     string
	Parent   int
	Children []int
}

// MeshData is a complete mesh description: geometry, optional extra
// index buffers for lower levels of detail, and an optional skeleton
// with animation clips.
type MeshData struct {
	Name      string
	Vertices  []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex, optional
	Tangents  []float32 // 3 per vertex, optional
	TexCoords []float32 // 2 per vertex, optional
	Indices   []uint16
	LODs      [][]uint16

	Joints      []uint8   // 4 per vertex
	Weights     []float32 // 4 per vertex
	InverseBind []tmath.Mat4
	Hierarchy   []JointDef
	Clips       []ClipData
}

// VertexCount returns the number of vertices in the mesh.
func (m *MeshData) VertexCount() int {
	return len(m.Vertices) / 3
}

// Skinned reports whether the mesh carries a skeleton.
func (m *MeshData) Skinned() bool {
	return len(m.Hierarchy) > 0
}

// Validate checks the buffers for internal consistency. A mesh that
// fails validation must not be turned into a model.
func (m *MeshData) Validate() error {
	nv := m.VertexCount()
	if nv == 0 {
		return fmt.Errorf("mesh %q: no vertices", m.Name)
	}
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("mesh %q: vertex buffer length %d not a multiple of 3",
			m.Name, len(m.Vertices))
	}
	if len(m.Normals) != 0 && len(m.Normals) != nv*3 {
		return fmt.Errorf("mesh %q: %d normal floats for %d vertices",
			m.Name, len(m.Normals), nv)
	}
	if len(m.Tangents) != 0 && len(m.Tangents) != nv*3 {
		return fmt.Errorf("mesh %q: %d tangent floats for %d vertices",
			m.Name, len(m.Tangents), nv)
	}
	if len(m.TexCoords) != 0 && len(m.TexCoords) != nv*2 {
		return fmt.Errorf("mesh %q: %d texcoord floats for %d vertices",
			m.Name, len(m.TexCoords), nv)
	}
	if len(m.Indices) == 0 {
		return fmt.Errorf("mesh %q: no indices", m.Name)
	}
	if err := m.checkIndices(m.Indices, nv, "indices"); err != nil {
		return err
	}
	for i, lod := range m.LODs {
		if err := m.checkIndices(lod, nv, fmt.Sprintf("lod %d", i+1)); err != nil {
			return err
		}
	}
	if m.Skinned() {
		return m.validateSkin(nv)
	}
	if len(m.Joints) != 0 || len(m.Weights) != 0 || len(m.Clips) != 0 {
		return fmt.Errorf("mesh %q: skinning buffers without a skeleton", m.Name)
	}
	return nil
}

func (m *MeshData) checkIndices(idx []uint16, nv int, what string) error {
	for i, v := range idx {
		if int(v) >= nv {
			return fmt.Errorf("mesh %q: %s[%d] = %d out of %d vertices",
				m.Name, what, i, v, nv)
		}
	}
	return nil
}

func (m *MeshData) validateSkin(nv int) error {
	nj := len(m.Hierarchy)
	if len(m.Joints) != nv*4 {
		return fmt.Errorf("mesh %q: %d joint indices for %d vertices, want %d",
			m.Name, len(m.Joints), nv, nv*4)
	}
	if len(m.Weights) != nv*4 {
		return fmt.Errorf("mesh %q: %d weights for %d vertices, want %d",
			m.Name, len(m.Weights), nv, nv*4)
	}
	if len(m.InverseBind) != nj {
		return fmt.Errorf("mesh %q: %d inverse bind matrices for %d joints",
			m.Name, len(m.InverseBind), nj)
	}
	for i, j := range m.Joints {
		if int(j) >= nj {
			return fmt.Errorf("mesh %q: vertex joint[%d] = %d out of %d joints",
				m.Name, i, j, nj)
		}
	}

	roots := 0
	for i, jd := range m.Hierarchy {
		if jd.Parent == -1 {
			roots++
		} else if jd.Parent < 0 || jd.Parent >= nj {
			return fmt.Errorf("mesh %q: joint %q parent %d out of range",
				m.Name, jd.Name, jd.Parent)
		}
		for _, c := range jd.Children {
			if c < 0 || c >= nj {
				return fmt.Errorf("mesh %q: joint %q child %d out of range",
					m.Name, jd.Name, c)
			}
			if m.Hierarchy[c].Parent != i {
				return fmt.Errorf("mesh %q: joint %q lists child %d whose parent is %d",
					m.Name, jd.Name, c, m.Hierarchy[c].Parent)
			}
		}
	}
	if roots != 1 {
		return fmt.Errorf("mesh %q: %d root joints, want exactly 1", m.Name, roots)
	}

	for _, clip := range m.Clips {
		for ci, ch := range clip.Channels {
			if ch.Target < 0 || ch.Target >= nj {
				return fmt.Errorf("mesh %q: clip %q channel %d targets joint %d out of %d",
					m.Name, clip.Name, ci, ch.Target, nj)
			}
			if len(ch.Times) == 0 {
				return fmt.Errorf("mesh %q: clip %q channel %d has no keyframes",
					m.Name, clip.Name, ci)
			}
			if want := len(ch.Times) * ch.Path.Stride(); len(ch.Data) != want {
				return fmt.Errorf("mesh %q: clip %q channel %d has %d data floats, want %d",
					m.Name, clip.Name, ci, len(ch.Data), want)
			}
		}
	}
	return nil
}
