package model

import (
	"go.uber.org/zap"

	"github.com/Faultbox/tundra/internal/logger"
)

// Surface parameter defaults, used when the scene description doesn't
// override them.
const (
	DefaultRoughness = 0.65
	DefaultMetallic  = 0.45
)

// TexturedModel groups all entities that share one model and one set of
// surface textures, so the renderer binds each combination once per
// frame. It owns a reference to the model and holds one reference per
// entity; when the last entity is destroyed, the group releases the
// model.
type TexturedModel struct {
	Model     *Model
	Albedo    string
	NormalMap string
	Roughness float32
	Metallic  float32

	// Entities in draw order. Managed by NewEntity and Entity.Destroy.
	Entities []*Entity

	AlbedoGPU GPUResource
	NormalGPU GPUResource

	refs int
}

// NewTextured wraps m with the given albedo texture. It takes ownership
// of the caller's model reference.
func NewTextured(m *Model, albedo string) *TexturedModel {
	return &TexturedModel{
		Model:     m,
		Albedo:    albedo,
		Roughness: DefaultRoughness,
		Metallic:  DefaultMetallic,
		refs:      1,
	}
}

// Empty reports whether the group has no entities to draw.
func (t *TexturedModel) Empty() bool {
	return len(t.Entities) == 0
}

func (t *TexturedModel) ref() {
	t.refs++
}

func (t *TexturedModel) release() {
	if t.refs <= 0 {
		logger.Warn("releasing a dead model group",
			zap.String("model", t.Model.Name))
		return
	}
	t.refs--
	if t.refs > 0 {
		return
	}
	if t.AlbedoGPU != nil {
		t.AlbedoGPU.Release()
		t.AlbedoGPU = nil
	}
	if t.NormalGPU != nil {
		t.NormalGPU.Release()
		t.NormalGPU = nil
	}
	t.Model.Release()
}

// Release drops the group's own reference, usually after all entities
// have been placed elsewhere or destroyed.
func (t *TexturedModel) Release() {
	t.release()
}

func (t *TexturedModel) detach(e *Entity) {
	for i, it := range t.Entities {
		if it == e {
			t.Entities = append(t.Entities[:i], t.Entities[i+1:]...)
			return
		}
	}
}
