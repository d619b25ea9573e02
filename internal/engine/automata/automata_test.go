package automata

import (
	"math/rand"
	"testing"

	"github.com/Faultbox/tundra/internal/engine/grid"
)

func TestNeighborCounts(t *testing.T) {
	g := grid.New(5)
	// Plus shape around (2,2).
	g.Set(2, 1, 1)
	g.Set(2, 3, 1)
	g.Set(1, 2, 1)
	g.Set(3, 2, 1)
	// One diagonal.
	g.Set(1, 1, 1)

	if n := VonNeumann(g, 2, 2); n != 4 {
		t.Errorf("VonNeumann = %d, want 4", n)
	}
	if n := Moore(g, 2, 2); n != 5 {
		t.Errorf("Moore = %d, want 5", n)
	}
}

func TestNeighborWrapAroundEdges(t *testing.T) {
	g := grid.New(4)
	g.Set(0, 0, 1)
	// (3,3) is diagonally adjacent to (0,0) on the torus.
	if n := Moore(g, 3, 3); n != 1 {
		t.Errorf("Moore at far corner = %d, want 1 via wrap", n)
	}
	if n := VonNeumann(g, 3, 0); n != 1 {
		t.Errorf("VonNeumann at (3,0) = %d, want 1 via wrap", n)
	}
}

func TestAboveVariantsCountOnlyGreater(t *testing.T) {
	g := grid.New(3)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			g.Set(x, y, 2)
		}
	}
	g.Set(1, 0, 5)
	g.Set(0, 1, 1)

	if n := VonNeumannAbove(g, 1, 1); n != 1 {
		t.Errorf("VonNeumannAbove = %d, want 1", n)
	}
	if n := MooreAbove(g, 1, 1); n != 1 {
		t.Errorf("MooreAbove = %d, want 1", n)
	}
}

func TestStepDecay(t *testing.T) {
	r := Ruleset{
		Born:      0,
		Survive:   0,
		States:    3,
		Decay:     true,
		Neighbors: Moore,
	}

	g := grid.New(5)
	g.Set(1, 1, 3)

	for want := byte(2); ; want-- {
		r.Step(g)
		if v := g.Wrap(1, 1); v != want {
			t.Fatalf("after decay step, cell = %d, want %d", v, want)
		}
		if want == 0 {
			break
		}
	}
}

func TestStepInPlaceBirthCascades(t *testing.T) {
	// Updates happen in scan order on the live grid, so a cell born
	// early in the pass counts as a neighbor for cells visited later.
	// With birth on any non-zero count, one live cell floods the whole
	// grid in a single step.
	r := Ruleset{
		Born:      0x1fe,
		Survive:   0x1ff,
		States:    3,
		Decay:     false,
		Neighbors: Moore,
	}

	g := grid.New(5)
	g.Set(1, 1, 3)

	r.Step(g)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if v := g.At(x, y); v != 3 {
				t.Fatalf("cell (%d,%d) = %d, want 3", x, y, v)
			}
		}
	}
}

func TestStepSurvivalKeepsValue(t *testing.T) {
	r := Ruleset{
		Born:      0,
		Survive:   1 << 1,
		States:    4,
		Decay:     true,
		Neighbors: VonNeumann,
	}

	g := grid.New(5)
	g.Set(1, 1, 4)
	g.Set(2, 1, 2)

	r.Step(g)

	// (2,1) has exactly one live neighbor and survives at its old value.
	if v := g.Wrap(2, 1); v != 2 {
		t.Errorf("surviving cell = %d, want 2", v)
	}
	// (1,1) has one live neighbor too.
	if v := g.Wrap(1, 1); v != 4 {
		t.Errorf("surviving cell = %d, want 4", v)
	}
}

func TestStepNoDecayFreezes(t *testing.T) {
	r := Ruleset{
		Born:      0,
		Survive:   0,
		States:    4,
		Decay:     false,
		Neighbors: Moore,
	}

	g := grid.New(3)
	g.Set(1, 1, 4)
	r.Step(g)

	if v := g.Wrap(1, 1); v != 4 {
		t.Errorf("non-decaying cell = %d, want unchanged 4", v)
	}
}

func TestGenMazeDeterministic(t *testing.T) {
	a := MazeCarver.GenMaze(rand.New(rand.NewSource(42)), 16, 3)
	b := MazeCarver.GenMaze(rand.New(rand.NewSource(42)), 16, 3)

	if !a.Equal(b) {
		t.Error("same seed must produce byte-identical maze grids")
	}

	c := MazeCarver.GenMaze(rand.New(rand.NewSource(43)), 16, 3)
	if a.Equal(c) {
		t.Error("different seeds should produce different grids")
	}
}

func TestGenMazeValueRange(t *testing.T) {
	g := MazeCarver.GenMaze(rand.New(rand.NewSource(7)), 16, 3)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if v := g.At(x, y); v > MazeCarver.States {
				t.Fatalf("cell (%d,%d) = %d, exceeds max state %d",
					x, y, v, MazeCarver.States)
			}
		}
	}
}
