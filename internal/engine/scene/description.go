package scene

import (
	"fmt"
	"io"
	gomath "math"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tundra/internal/engine/asset"
	"github.com/Faultbox/tundra/internal/engine/model"
	"github.com/Faultbox/tundra/internal/engine/phys"
	"github.com/Faultbox/tundra/internal/logger"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

// Description is a scene file: a name and a list of model declarations
// with their placed instances.
type Description struct {
	Name   string      `yaml:"name"`
	Models []ModelDecl `yaml:"models"`
}

// ModelDecl declares one model group: where its mesh and textures come
// from, optional surface and physics parameters, and the instances to
// place.
type ModelDecl struct {
	Name      string       `yaml:"name"`
	Mesh      string       `yaml:"mesh"`
	Texture   string       `yaml:"texture"`
	NormalMap string       `yaml:"normal_map,omitempty"`
	Roughness *float32     `yaml:"roughness,omitempty"`
	Metallic  *float32     `yaml:"metallic,omitempty"`
	Physics   *PhysicsDecl `yaml:"physics,omitempty"`
	Instances []Instance   `yaml:"instances"`
}

// PhysicsDecl describes the collision body attached to each instance.
type PhysicsDecl struct {
	Mass     float32 `yaml:"mass"`
	Geometry string  `yaml:"geometry"` // "capsule" or "sphere"
	Radius   float32 `yaml:"radius,omitempty"`
	Offset   float32 `yaml:"offset,omitempty"`
}

// Instance places one entity: world position, uniform scale (default
// 1), and an optional facing in degrees around Y.
type Instance struct {
	Position [3]float32 `yaml:"position"`
	Scale    float32    `yaml:"scale,omitempty"`
	Rotation float32    `yaml:"rotation,omitempty"`
}

// MeshResolver turns a mesh source name from a scene description into
// loaded mesh data. The scene does not parse asset files itself.
type MeshResolver func(name string) (*asset.MeshData, error)

// ParseDescription reads and validates a scene description.
func ParseDescription(r io.Reader) (*Description, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Description
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("scene description: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDescription parses a scene description file.
func LoadDescription(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene description: %w", err)
	}
	defer f.Close()
	return ParseDescription(f)
}

func (d *Description) validate() error {
	for i := range d.Models {
		m := &d.Models[i]
		if m.Name == "" {
			return fmt.Errorf("scene %q: model %d has no name", d.Name, i)
		}
		if m.Mesh == "" || m.Texture == "" {
			return fmt.Errorf("scene %q: model %q needs a mesh and a texture", d.Name, m.Name)
		}
		if p := m.Physics; p != nil {
			switch p.Geometry {
			case "capsule", "sphere":
			default:
				return fmt.Errorf("scene %q: model %q: unknown geometry %q",
					d.Name, m.Name, p.Geometry)
			}
			if p.Geometry == "sphere" && p.Radius <= 0 {
				return fmt.Errorf("scene %q: model %q: sphere needs a radius", d.Name, m.Name)
			}
		}
	}
	return nil
}

// Load spawns the description into the scene: one model group per
// declaration, one entity per instance, with physics bodies attached
// where declared. Mesh data comes from the resolver.
func (s *Scene) Load(d *Description, resolve MeshResolver) error {
	for i := range d.Models {
		decl := &d.Models[i]

		md, err := resolve(decl.Mesh)
		if err != nil {
			return fmt.Errorf("scene %q: model %q: %w", d.Name, decl.Name, err)
		}
		m, err := model.New(md)
		if err != nil {
			return fmt.Errorf("scene %q: model %q: %w", d.Name, decl.Name, err)
		}
		m.Name = decl.Name

		txm := model.NewTextured(m, decl.Texture)
		txm.NormalMap = decl.NormalMap
		if decl.Roughness != nil {
			txm.Roughness = *decl.Roughness
		}
		if decl.Metallic != nil {
			txm.Metallic = *decl.Metallic
		}
		s.AddGroup(txm)

		for _, in := range decl.Instances {
			e := model.NewEntity(txm)
			e.Pos = tmath.Vec3{X: in.Position[0], Y: in.Position[1], Z: in.Position[2]}
			if in.Scale != 0 {
				e.Scale = in.Scale
			}
			e.RotY = in.Rotation * gomath.Pi / 180
			if !e.Animated() {
				e.Behavior = model.Static{}
			}
			e.ResetTransform()

			if decl.Physics != nil {
				s.attachBody(e, decl.Physics)
			}
		}
		logger.Info("model group loaded",
			zap.String("model", decl.Name),
			zap.Int("instances", len(decl.Instances)))
	}
	return nil
}

// attachBody gives the entity a collision body: a sphere of the
// declared radius, or a capsule sized from the model's bounding box,
// both scaled by the instance scale.
func (s *Scene) attachBody(e *model.Entity, p *PhysicsDecl) {
	var b *phys.Body
	if p.Geometry == "sphere" {
		d := p.Radius * 2 * e.Scale
		b = s.World.AddBody(entityAnchor{e}, d, d, d)
	} else {
		m := e.Group.Model
		b = s.World.AddBody(entityAnchor{e},
			m.AABBX()*e.Scale, m.AABBY()*e.Scale, m.AABBZ()*e.Scale)
	}
	if p.Offset != 0 {
		b.YOffset = p.Offset
	}
	e.Body = b
}
