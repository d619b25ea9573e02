// Package render draws the scene's model queue with OpenGL. Geometry
// and textures are uploaded lazily the first time a group is drawn and
// torn down through the model's GPU handle when its last reference
// goes away.
package render

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tundra/internal/engine/model"
	"github.com/Faultbox/tundra/internal/engine/render/shaders"
	"github.com/Faultbox/tundra/internal/engine/scene"
	"github.com/Faultbox/tundra/internal/engine/shader"
	"github.com/Faultbox/tundra/internal/logger"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

const (
	// MaxJoints matches the uniform array size in the vertex shader.
	MaxJoints = 64
	// lodDistance is the camera distance per detail level.
	lodDistance = 80

	fovY      = 70 * gomath.Pi / 180
	nearPlane = 0.1
	farPlane  = 1000
)

// focusHighlight tints the focused entity.
var focusHighlight = [4]float32{1, 0.7, 0, 0.3}

// Renderer owns the scene shader program and the GPU side of every
// model it has drawn.
type Renderer struct {
	// AssetDir is prepended to texture paths from scene descriptions.
	AssetDir string

	program uint32
	proj    tmath.Mat4

	locProj    int32
	locView    int32
	locInvView int32
	locModel   int32
	locJoints  int32
	locSkinned int32

	locAlbedo       int32
	locNormalMap    int32
	locUseNormalMap int32

	locLightPos   int32
	locLightColor int32
	locMetallic   int32
	locRoughness  int32
	locColor      int32
	locColorBlend int32
	locHighlight  int32

	meshes   map[*model.Model]*meshGPU
	fallback uint32
}

// New compiles the scene shader and prepares fixed GL state. Requires a
// current GL context.
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Info("OpenGL ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	r := &Renderer{meshes: make(map[*model.Model]*meshGPU)}

	program, err := shader.CompileProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, err
	}
	r.program = program

	r.locProj = shader.GetUniform(program, "uProj")
	r.locView = shader.GetUniform(program, "uView")
	r.locInvView = shader.GetUniform(program, "uInvView")
	r.locModel = shader.GetUniform(program, "uModel")
	r.locJoints = shader.GetUniform(program, "uJoints[0]")
	r.locSkinned = shader.GetUniform(program, "uSkinned")
	r.locAlbedo = shader.GetUniform(program, "uAlbedo")
	r.locNormalMap = shader.GetUniform(program, "uNormalMap")
	r.locUseNormalMap = shader.GetUniform(program, "uUseNormalMap")
	r.locLightPos = shader.GetUniform(program, "uLightPos")
	r.locLightColor = shader.GetUniform(program, "uLightColor")
	r.locMetallic = shader.GetUniform(program, "uMetallic")
	r.locRoughness = shader.GetUniform(program, "uRoughness")
	r.locColor = shader.GetUniform(program, "uColor")
	r.locColorBlend = shader.GetUniform(program, "uColorBlend")
	r.locHighlight = shader.GetUniform(program, "uHighlight")

	r.fallback = whiteTexture()

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return r, nil
}

// Resize updates the viewport and projection for a new window size.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	aspect := float32(width) / float32(height)
	r.proj = tmath.Perspective(fovY, aspect, nearPlane, farPlane)
}

// Render draws one frame of the scene.
func (r *Renderer) Render(s *scene.Scene) {
	gl.ClearColor(0.2, 0.2, 0.6, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)

	view := s.Camera.ViewMatrix()
	invView := view.Inverse()
	gl.UniformMatrix4fv(r.locProj, 1, false, r.proj.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.locInvView, 1, false, invView.Ptr())
	gl.Uniform3f(r.locLightPos, s.Light.Pos.X, s.Light.Pos.Y, s.Light.Pos.Z)
	gl.Uniform3f(r.locLightColor, s.Light.Color[0], s.Light.Color[1], s.Light.Color[2])
	gl.Uniform1i(r.locAlbedo, 0)
	gl.Uniform1i(r.locNormalMap, 1)

	eye := s.Camera.Position()

	for _, g := range s.Queue.Groups {
		if g.Empty() {
			continue
		}
		r.drawGroup(g, eye, s.Focus)
	}

	gl.BindVertexArray(0)
}

func (r *Renderer) drawGroup(g *model.TexturedModel, eye tmath.Vec3, focus *model.Entity) {
	mesh := r.mesh(g.Model)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.groupTexture(&g.AlbedoGPU, g.Albedo))
	if g.NormalMap != "" {
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, r.groupTexture(&g.NormalGPU, g.NormalMap))
		gl.Uniform1i(r.locUseNormalMap, 1)
	} else {
		gl.Uniform1i(r.locUseNormalMap, 0)
	}
	gl.Uniform1f(r.locMetallic, g.Metallic)
	gl.Uniform1f(r.locRoughness, g.Roughness)

	skinned := g.Model.Animated()
	if skinned {
		gl.Uniform1i(r.locSkinned, 1)
	} else {
		gl.Uniform1i(r.locSkinned, 0)
	}

	gl.BindVertexArray(mesh.vao)

	for _, e := range g.Entities {
		if !e.Visible {
			continue
		}

		gl.UniformMatrix4fv(r.locModel, 1, false, e.Transform.Ptr())
		if skinned {
			n := len(e.JointTransforms)
			if n > MaxJoints {
				n = MaxJoints
			}
			gl.UniformMatrix4fv(r.locJoints, int32(n), false, e.JointTransforms[0].Ptr())
		}

		gl.Uniform4f(r.locColor, e.Color[0], e.Color[1], e.Color[2], e.Color[3])
		gl.Uniform1f(r.locColorBlend, e.ColorBlend)
		if e == focus {
			gl.Uniform4f(r.locHighlight,
				focusHighlight[0], focusHighlight[1], focusHighlight[2], focusHighlight[3])
		} else {
			gl.Uniform4f(r.locHighlight, 0, 0, 0, 0)
		}

		level := int(eye.Distance(e.Pos) / lodDistance)
		mesh.draw(level)
	}
}

// mesh returns the model's uploaded geometry, uploading it on first
// use and registering the handle so the model's last release frees it.
func (r *Renderer) mesh(m *model.Model) *meshGPU {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	g := uploadMesh(r, m)
	r.meshes[m] = g
	m.SetGPU(g)
	logger.Debug("mesh uploaded",
		zap.String("model", m.Name),
		zap.Int("lods", len(g.ebos)))
	return g
}

// groupTexture resolves a group's texture handle, loading the file on
// first use. Load failures bind the fallback and are not retried.
func (r *Renderer) groupTexture(slot *model.GPUResource, name string) uint32 {
	if *slot == nil {
		t, err := r.loadTexture(name)
		if err != nil {
			logger.Warn("texture load failed",
				zap.String("texture", name), zap.Error(err))
			t = &texGPU{id: 0}
		}
		*slot = t
	}
	id := (*slot).(*texGPU).id
	if id == 0 {
		return r.fallback
	}
	return id
}

// Destroy releases the program, the fallback texture, and any meshes
// still uploaded.
func (r *Renderer) Destroy() {
	for _, g := range r.meshes {
		g.Release()
	}
	if r.fallback != 0 {
		gl.DeleteTextures(1, &r.fallback)
		r.fallback = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
