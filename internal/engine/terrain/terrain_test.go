package terrain

import (
	"testing"
)

func testParams() Params {
	return Params{
		X:      0,
		Y:      0,
		Z:      0,
		Side:   200,
		NrVert: 128,
		Seed:   42,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(testParams())
	b := Generate(testParams())

	if len(a.Positions) != len(b.Positions) {
		t.Fatalf("vertex counts differ: %d vs %d", len(a.Positions), len(b.Positions))
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("vertex %d differs: %f vs %f", i, a.Positions[i], b.Positions[i])
		}
	}
	if len(a.Placements) != len(b.Placements) {
		t.Fatalf("placement counts differ: %d vs %d", len(a.Placements), len(b.Placements))
	}
}

func TestMeshLayout(t *testing.T) {
	p := testParams()
	tr := Generate(p)
	nr := p.NrVert

	if got, want := len(tr.Positions), nr*nr*3; got != want {
		t.Errorf("positions: %d floats, want %d", got, want)
	}
	if got, want := len(tr.Normals), nr*nr*3; got != want {
		t.Errorf("normals: %d floats, want %d", got, want)
	}
	if got, want := len(tr.TexCoords), nr*nr*2; got != want {
		t.Errorf("texcoords: %d floats, want %d", got, want)
	}
	if got, want := len(tr.Indices), 6*(nr-1)*(nr-1); got != want {
		t.Errorf("indices: %d, want %d", got, want)
	}
	for i, idx := range tr.Indices {
		if int(idx) >= nr*nr {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
	// Texture tiles 32 times across the last column.
	if got := tr.TexCoords[(nr-1)*2]; got != 32 {
		t.Errorf("last column texcoord u = %f, want 32", got)
	}
}

func TestHeightMatchesMeshVertices(t *testing.T) {
	p := testParams()
	tr := Generate(p)
	nr := p.NrVert

	for i := 0; i < nr-1; i += 17 {
		for j := 0; j < nr-1; j += 17 {
			it := i*nr + j
			px := tr.Positions[it*3+0]
			py := tr.Positions[it*3+1]
			pz := tr.Positions[it*3+2]
			if h := tr.Height(px, pz); !near(h, py, 1e-3) {
				t.Errorf("Height(%f, %f) = %f, mesh vertex y = %f", px, pz, h, py)
			}
		}
	}
}

func TestHeightInterpolatesAlongEdge(t *testing.T) {
	p := testParams()
	tr := Generate(p)
	nr := p.NrVert
	square := p.Side / float32(nr-1)

	// Midpoint of the edge between two x-adjacent vertices lies on a
	// triangle edge, so its height is the plain average.
	i, j := 40, 40
	a := tr.Height(float32(j)*square, float32(i)*square)
	b := tr.Height(float32(j+1)*square, float32(i)*square)
	mid := tr.Height((float32(j)+0.5)*square, float32(i)*square)
	if want := (a + b) / 2; !near(mid, want, 1e-3) {
		t.Errorf("edge midpoint height = %f, want %f", mid, want)
	}
}

func TestHeightContinuousAcrossDiagonal(t *testing.T) {
	p := testParams()
	tr := Generate(p)
	square := p.Side / float32(p.NrVert-1)

	// Each quad splits into two triangles along xoff+zoff == 1. Both
	// share that edge, so heights sampled just either side of it must
	// agree.
	const delta = 1e-3
	quads := [][2]int{{10, 10}, {40, 40}, {63, 90}, {90, 31}}
	fracs := []float32{0.25, 0.5, 0.75}

	for _, q := range quads {
		for _, xf := range fracs {
			zf := 1 - xf
			x := (float32(q[0]) + xf) * square
			z := (float32(q[1]) + zf) * square

			on := tr.Height(x, z)
			lo := tr.Height(x-delta, z)
			hi := tr.Height(x+delta, z)
			if !near(lo, hi, 0.1) {
				t.Errorf("quad %v frac %f: height jumps across diagonal: %f vs %f",
					q, xf, lo, hi)
			}
			if !near(on, lo, 0.1) || !near(on, hi, 0.1) {
				t.Errorf("quad %v frac %f: height on diagonal %f disagrees with sides %f, %f",
					q, xf, on, lo, hi)
			}
		}
	}
}

func TestHeightOutsideBounds(t *testing.T) {
	tr := Generate(testParams())

	outside := [][2]float32{
		{-1, 50}, {50, -1}, {201, 50}, {50, 201}, {-100, -100},
	}
	for _, c := range outside {
		if h := tr.Height(c[0], c[1]); h != 0 {
			t.Errorf("Height(%f, %f) = %f, want 0 outside the terrain", c[0], c[1], h)
		}
	}
}

func TestNormalsUnit(t *testing.T) {
	p := testParams()
	tr := Generate(p)

	for it := 0; it < p.NrVert*p.NrVert; it += 131 {
		nx := tr.Normals[it*3+0]
		ny := tr.Normals[it*3+1]
		nz := tr.Normals[it*3+2]
		l := nx*nx + ny*ny + nz*nz
		if !near(l, 1, 1e-4) {
			t.Errorf("normal %d has squared length %f", it, l)
		}
		if ny <= 0 {
			t.Errorf("normal %d points downward (y = %f)", it, ny)
		}
	}
}

func TestPlacementsSitOnSurface(t *testing.T) {
	p := testParams()
	tr := Generate(p)

	names := map[string]bool{"cool tree": true, "ash pinus": true}
	for _, pl := range tr.Placements {
		if !names[pl.Name] {
			t.Errorf("unexpected placement name %q", pl.Name)
		}
		if pl.X < p.X || pl.X > p.X+p.Side || pl.Z < p.Z || pl.Z > p.Z+p.Side {
			t.Errorf("placement %q at (%f, %f) outside the terrain", pl.Name, pl.X, pl.Z)
		}
		if h := tr.Height(pl.X, pl.Z); !near(h, pl.Y, 1e-4) {
			t.Errorf("placement %q y = %f, surface = %f", pl.Name, pl.Y, h)
		}
	}
}

func TestBaseHeightOffsets(t *testing.T) {
	p := testParams()
	low := Generate(p)
	p.Y = 10
	high := Generate(p)

	if a, b := low.Height(50, 50), high.Height(50, 50); !near(a+10, b, 1e-3) {
		t.Errorf("raising the base by 10 moved the surface from %f to %f", a, b)
	}
}

func near(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
