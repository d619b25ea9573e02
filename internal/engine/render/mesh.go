package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tundra/internal/engine/model"
)

// meshGPU is a model's uploaded geometry: one VAO, one VBO per
// attribute, and one index buffer per detail level. It is registered as
// the model's GPU handle, so the model's last release tears it down.
type meshGPU struct {
	r *Renderer
	m *model.Model

	vao  uint32
	vbos []uint32

	// ebos[0] is the full-detail index buffer, the rest are the
	// model's coarser levels.
	ebos   []uint32
	counts []int32
}

func uploadMesh(r *Renderer, m *model.Model) *meshGPU {
	g := &meshGPU{r: r, m: m}
	md := m.Mesh

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	g.floatAttrib(0, 3, md.Vertices)
	if len(md.Normals) > 0 {
		g.floatAttrib(1, 3, md.Normals)
	} else {
		gl.VertexAttrib3f(1, 0, 1, 0)
	}
	if len(md.TexCoords) > 0 {
		g.floatAttrib(2, 2, md.TexCoords)
	} else {
		gl.VertexAttrib2f(2, 0, 0)
	}
	if len(md.Tangents) > 0 {
		g.floatAttrib(3, 3, md.Tangents)
	} else {
		gl.VertexAttrib3f(3, 1, 0, 0)
	}
	if md.Skinned() {
		joints := make([]float32, len(md.Joints))
		for i, j := range md.Joints {
			joints[i] = float32(j)
		}
		g.floatAttrib(4, 4, joints)
		g.floatAttrib(5, 4, md.Weights)
	}

	g.indexBuffer(md.Indices)
	for _, lod := range md.LODs {
		g.indexBuffer(lod)
	}

	gl.BindVertexArray(0)
	return g
}

func (g *meshGPU) floatAttrib(loc uint32, size int32, data []float32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
	g.vbos = append(g.vbos, vbo)
}

func (g *meshGPU) indexBuffer(indices []uint16) {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	g.ebos = append(g.ebos, ebo)
	g.counts = append(g.counts, int32(len(indices)))
}

// draw issues the indexed draw for the given detail level, clamped to
// the levels the model has.
func (g *meshGPU) draw(level int) {
	if level >= len(g.ebos) {
		level = len(g.ebos) - 1
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebos[level])
	gl.DrawElements(gl.TRIANGLES, g.counts[level], gl.UNSIGNED_SHORT, nil)
}

// Release implements model.GPUResource.
func (g *meshGPU) Release() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	for i := range g.vbos {
		gl.DeleteBuffers(1, &g.vbos[i])
	}
	g.vbos = nil
	for i := range g.ebos {
		gl.DeleteBuffers(1, &g.ebos[i])
	}
	g.ebos = nil
	delete(g.r.meshes, g.m)
}
