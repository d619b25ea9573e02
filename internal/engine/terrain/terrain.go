// Package terrain synthesizes a square procedural landscape. Three
// signals stack up per grid cell: smoothed multi-octave seed noise, an
// amplitude field hung off a BSP partition of the grid, and an elevation
// bias from a cellular-automaton maze that raises walls and flattens
// corridors. The result is a heightfield with a render mesh, height and
// normal queries, and placement markers for vegetation.
package terrain

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/tundra/internal/engine/automata"
	"github.com/Faultbox/tundra/internal/engine/bsp"
	"github.com/Faultbox/tundra/internal/engine/grid"
	"github.com/Faultbox/tundra/internal/logger"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

const (
	// Octaves is the number of noise layers summed per cell.
	Octaves = 4
	// Roughness is the per-octave amplitude falloff.
	Roughness = 0.5
	// Amplitude caps the noise amplitude a BSP leaf can be assigned.
	Amplitude = 8
	// MazeFactor is the terrain-to-maze resolution ratio.
	MazeFactor = 8

	mazeSteps = 3
)

// Params configures one landscape.
type Params struct {
	X, Y, Z float32 // world position of the grid's corner
	Side    float32 // world-space edge length
	NrVert  int     // vertices per edge
	Seed    int64
}

// Placement marks a world position where the vegetation automata want an
// object instantiated. Name is the automaton's name and doubles as the
// model to place there.
type Placement struct {
	Name    string
	X, Y, Z float32
}

// Terrain is a generated landscape: the heightfield, the render mesh
// built from it, and the placements the maze automata produced.
type Terrain struct {
	Params

	heights []float32 // nrVert x nrVert, row per x, column per z
	seedMap []float32 // raw per-cell seed noise, freed after generation

	Positions []float32
	Normals   []float32
	TexCoords []float32
	Indices   []uint16

	Placements []Placement
}

// Generate builds the landscape described by p. The same params always
// produce the same terrain.
func Generate(p Params) *Terrain {
	t := &Terrain{Params: p}
	nr := p.NrVert

	mazeRng := rand.New(rand.NewSource(p.Seed))
	maze := automata.MazeCarver.GenMaze(mazeRng, nr/MazeFactor, mazeSteps)
	logger.Debug("maze settled", zap.Int("side", maze.Side()))

	bspRng := rand.New(rand.NewSource(p.Seed))
	root := bsp.Partition(bspRng, 0, 0, nr, nr, func(n *bsp.Node, level int) {
		n.Amp = float32(math.Min(bspRng.Float64()*Amplitude, float64((16-level)*3)))
		n.Oct = bspRng.Intn(4) + 3
	})

	t.seedMap = make([]float32, nr*nr)
	for x := 0; x < nr; x++ {
		for z := 0; z < nr; z++ {
			t.seedMap[x*nr+z] = seedNoise(p.Seed, x, z)
		}
	}

	t.heights = make([]float32, nr*nr)
	for x := 0; x < nr; x++ {
		for z := 0; z < nr; z++ {
			amp := t.blendAmp(root, x, z)
			bias := mazeBias(maze, x, z)
			h := t.octaveSum(x, z, amp*pow(1.5, bias), Octaves)
			t.heights[x*nr+z] = h + bias
		}
	}
	t.seedMap = nil

	for i := range automata.Instantiators {
		automata.Instantiators[i].Step(maze)
	}

	t.buildMesh()
	t.place(maze)

	logger.Debug("terrain generated",
		zap.Int("vertices", nr*nr),
		zap.Int("placements", len(t.Placements)))
	return t
}

// blendAmp interpolates the noise amplitude between the cell's BSP leaf
// and its x/y neighbors so amplitude never jumps at a panel boundary.
func (t *Terrain) blendAmp(root *bsp.Node, x, z int) float32 {
	bp := root.Find(x, z)
	bpx := bp.XNeighbor(x, z)
	bpy := bp.YNeighbor(x, z)
	xfrac := bp.XFrac(x)
	yfrac := bp.YFrac(z)
	xamp := tmath.CosInterp(bp.Amp, bpx.Amp, abs(xfrac))
	yamp := tmath.CosInterp(bp.Amp, bpy.Amp, abs(yfrac))
	return tmath.CosInterp(xamp, yamp, abs(xfrac-yfrac))
}

// mazeBias samples the low-resolution maze at a terrain cell. A wall
// always dominates a lower-valued neighbor instead of blending, which
// keeps corridor floors flat right up to the wall base.
func mazeBias(maze *grid.Grid, x, z int) float32 {
	xfrac := float32(x%MazeFactor) / MazeFactor
	zfrac := float32(z%MazeFactor) / MazeFactor
	xpos, zpos := x/MazeFactor, z/MazeFactor

	cn := maze.At(xpos, zpos)
	xn := maze.At(side(xpos, xfrac), zpos)
	zn := maze.At(xpos, side(zpos, zfrac))

	xavg := float32(cn)
	if cn <= xn {
		xavg = tmath.CosInterp(float32(cn), float32(xn), 2*xfrac-1)
	}
	zavg := float32(cn)
	if cn <= zn {
		zavg = tmath.CosInterp(float32(cn), float32(zn), 2*zfrac-1)
	}
	return tmath.CosInterp(xavg, zavg, abs(xfrac-zfrac))
}

func side(pos int, frac float32) int {
	if frac >= 0.5 {
		return pos + 1
	}
	return pos - 1
}

// seedNoise is the raw per-cell signal: each cell gets its own RNG so
// any cell's value can be recomputed independently of generation order.
func seedNoise(seed int64, x, z int) float32 {
	rng := rand.New(rand.NewSource(seed ^ int64(x+z*43210)))
	return float32(rng.Float64()*2 - 1)
}

// mappedNoise reads the seed-noise buffer with a single-step wrap at
// each edge.
func (t *Terrain) mappedNoise(x, z int) float32 {
	nr := t.NrVert
	if x < 0 {
		x = nr - 1
	} else if x >= nr {
		x = 0
	}
	if z < 0 {
		z = nr - 1
	} else if z >= nr {
		z = 0
	}
	return t.seedMap[x*nr+z]
}

// avgNoise box-filters the seed noise: corners weigh 1/16, sides 1/8,
// the cell itself 1/4.
func (t *Terrain) avgNoise(x, z int) float32 {
	corners := t.mappedNoise(x-1, z-1) +
		t.mappedNoise(x+1, z-1) +
		t.mappedNoise(x-1, z+1) +
		t.mappedNoise(x+1, z+1)
	sides := t.mappedNoise(x-1, z) +
		t.mappedNoise(x+1, z) +
		t.mappedNoise(x, z-1) +
		t.mappedNoise(x, z+1)
	return corners/16 + sides/8 + t.mappedNoise(x, z)/4
}

// interpNoise cosine-interpolates the filtered noise at fractional
// coordinates.
func (t *Terrain) interpNoise(x, z float32) float32 {
	intx := floor(x)
	intz := floor(z)
	fracx := x - float32(intx)
	fracz := z - float32(intz)
	i1 := tmath.CosInterp(t.avgNoise(intx, intz), t.avgNoise(intx+1, intz), fracx)
	i2 := tmath.CosInterp(t.avgNoise(intx, intz+1), t.avgNoise(intx+1, intz+1), fracx)
	return tmath.CosInterp(i1, i2, fracz)
}

// octaveSum layers oct octaves of interpolated noise, doubling frequency
// and halving amplitude per octave. The result is an offset from the
// terrain's base height.
func (t *Terrain) octaveSum(x, z int, amp float32, oct int) float32 {
	var total float32
	d := pow(2, float32(oct-1))
	for i := 0; i < oct; i++ {
		freq := pow(2, float32(i)) / d
		a := pow(Roughness, float32(i)) * amp
		total += t.interpNoise(float32(x)*freq, float32(z)*freq) * a
	}
	return total
}

// calcNormal finite-differences the four axis neighbors. Heights are
// treated as 0 just past the border so the terrain edge slopes down to
// the outside world instead of wrapping.
func (t *Terrain) calcNormal(x, z int) tmath.Vec3 {
	nr := t.NrVert
	left, right := x-1, x+1
	up, down := z-1, z+1
	if x == 0 {
		left = nr - 1
	}
	if x == nr-1 {
		right = 0
	}
	if z == 0 {
		up = nr - 1
	}
	if z == nr-1 {
		down = 0
	}

	var hl, hr, hd, hu float32
	if x > 0 {
		hl = t.heights[left*nr+z]
	}
	if x < nr-1 {
		hr = t.heights[right*nr+z]
	}
	if z > 0 {
		hd = t.heights[x*nr+up]
	}
	if z < nr-1 {
		hu = t.heights[x*nr+down]
	}
	return tmath.Vec3{X: hl - hr, Y: 2, Z: hd - hu}.Normalize()
}

func (t *Terrain) buildMesh() {
	nr := t.NrVert
	total := nr * nr

	t.Positions = make([]float32, total*3)
	t.Normals = make([]float32, total*3)
	t.TexCoords = make([]float32, total*2)
	t.Indices = make([]uint16, 6*(nr-1)*(nr-1))

	it := 0
	for i := 0; i < nr; i++ {
		for j := 0; j < nr; j++ {
			t.Positions[it*3+0] = t.X + float32(j)/float32(nr-1)*t.Side
			t.Positions[it*3+1] = t.Y + t.heights[j*nr+i]
			t.Positions[it*3+2] = t.Z + float32(i)/float32(nr-1)*t.Side
			n := t.calcNormal(j, i)
			t.Normals[it*3+0] = n.X
			t.Normals[it*3+1] = n.Y
			t.Normals[it*3+2] = n.Z
			t.TexCoords[it*2+0] = float32(j) * 32 / float32(nr-1)
			t.TexCoords[it*2+1] = float32(i) * 32 / float32(nr-1)
			it++
		}
	}

	it = 0
	for i := 0; i < nr-1; i++ {
		for j := 0; j < nr-1; j++ {
			topLeft := uint16(i*nr + j)
			topRight := topLeft + 1
			bottomLeft := uint16((i+1)*nr + j)
			bottomRight := bottomLeft + 1
			t.Indices[it+0] = topLeft
			t.Indices[it+1] = bottomLeft
			t.Indices[it+2] = topRight
			t.Indices[it+3] = topRight
			t.Indices[it+4] = bottomLeft
			t.Indices[it+5] = bottomRight
			it += 6
		}
	}
}

// place scans the post-instantiator maze for cells that landed exactly
// on an automaton's terminal state and records a placement at the maze
// cell's center, snapped to the terrain surface.
func (t *Terrain) place(maze *grid.Grid) {
	nr := t.NrVert
	mside := maze.Side()
	cell := float32(MazeFactor) * t.Side / float32(nr-1)

	for i := 0; i < mside; i++ {
		for j := 0; j < mside; j++ {
			for ca := range automata.Instantiators {
				if maze.At(i, j) != automata.Instantiators[ca].States {
					continue
				}
				px := t.X + (float32(i)+0.5)*cell
				pz := t.Z + (float32(j)+0.5)*cell
				t.Placements = append(t.Placements, Placement{
					Name: automata.Instantiators[ca].Name,
					X:    px,
					Y:    t.Height(px, pz),
					Z:    pz,
				})
			}
		}
	}
}

// Height returns the terrain surface height at world (x, z), or 0
// outside the covered square. The grid quad's diagonal picks one of two
// triangles; the height is the barycentric blend of its corners.
func (t *Terrain) Height(x, z float32) float32 {
	if t.heights == nil {
		return 0
	}
	if x < t.X || x > t.X+t.Side || z < t.Z || z > t.Z+t.Side {
		return 0
	}

	nr := t.NrVert
	square := t.Side / float32(nr-1)
	tx := x - t.X
	tz := z - t.Z
	// Queries on the far edge land in the last quad.
	gridx := tmath.ClampInt(floor(tx/square), 0, nr-2)
	gridz := tmath.ClampInt(floor(tz/square), 0, nr-2)
	xoff := (tx - square*float32(gridx)) / square
	zoff := (tz - square*float32(gridz)) / square
	pos := tmath.Vec2{X: xoff, Y: zoff}

	if xoff <= 1-zoff {
		return t.Y + tmath.Barycentric(
			tmath.Vec3{X: 0, Y: t.heights[gridx*nr+gridz], Z: 0},
			tmath.Vec3{X: 1, Y: t.heights[(gridx+1)*nr+gridz], Z: 0},
			tmath.Vec3{X: 0, Y: t.heights[gridx*nr+gridz+1], Z: 1},
			pos)
	}
	return t.Y + tmath.Barycentric(
		tmath.Vec3{X: 1, Y: t.heights[(gridx+1)*nr+gridz], Z: 0},
		tmath.Vec3{X: 1, Y: t.heights[(gridx+1)*nr+gridz+1], Z: 1},
		tmath.Vec3{X: 0, Y: t.heights[gridx*nr+gridz+1], Z: 1},
		pos)
}

// Normal returns the surface normal of the grid cell containing world
// (x, z).
func (t *Terrain) Normal(x, z float32) tmath.Vec3 {
	square := t.Side / float32(t.NrVert-1)
	gridx := tmath.ClampInt(floor((x-t.X)/square), 0, t.NrVert-1)
	gridz := tmath.ClampInt(floor((z-t.Z)/square), 0, t.NrVert-1)
	return t.calcNormal(gridx, gridz)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func pow(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

func floor(v float32) int {
	return int(math.Floor(float64(v)))
}
