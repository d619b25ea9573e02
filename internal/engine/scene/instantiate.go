package scene

import (
	gomath "math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/tundra/internal/engine/model"
	"github.com/Faultbox/tundra/internal/logger"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

// Registry maps placement names produced by the terrain's vegetation
// automata to the model groups spawned for them.
type Registry map[string]*model.TexturedModel

// Instantiate spawns one static entity for every terrain placement with
// a registered model, with a random facing and a little scale jitter.
// Placements without a registered model are skipped. Returns the number
// of entities spawned.
func (s *Scene) Instantiate(reg Registry, seed int64) int {
	rng := rand.New(rand.NewSource(seed))
	n := 0

	for _, p := range s.Terrain.Placements {
		txm, ok := reg[p.Name]
		if !ok {
			continue
		}
		e := model.NewEntity(txm)
		e.Pos = tmath.Vec3{X: p.X, Y: p.Y, Z: p.Z}
		e.RotY = rng.Float32() * 2 * gomath.Pi
		e.Scale = 0.9 + rng.Float32()*0.2
		e.Behavior = model.Static{}
		e.ResetTransform()
		n++
	}

	logger.Debug("placements instantiated",
		zap.Int("spawned", n),
		zap.Int("markers", len(s.Terrain.Placements)))
	return n
}
