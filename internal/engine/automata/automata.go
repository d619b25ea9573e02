// Package automata implements a generic Life-like cellular automaton over
// a toroidal grid. Terrain generation uses it twice: a decaying automaton
// carves the maze pattern, and two further rulesets mark cells where
// vegetation instantiators go.
package automata

import (
	"math/rand"

	"github.com/Faultbox/tundra/internal/engine/grid"
)

// NeighborFunc counts the neighbors of (x, y) that are considered live
// for the ruleset's purposes.
type NeighborFunc func(g *grid.Grid, x, y int) int

// Ruleset describes one automaton. Born and Survive are bitmasks over
// neighbor counts 0..8: bit n set in Born means a dead cell with n live
// neighbors comes alive at value States; bit n set in Survive means a
// live cell with n live neighbors keeps its value. A live cell that
// neither survives nor decays keeps its value indefinitely; only Decay
// makes cells die, one state step at a time.
type Ruleset struct {
	Name      string
	Born      uint
	Survive   uint
	States    byte
	Decay     bool
	Neighbors NeighborFunc
}

// VonNeumann counts the 4 edge-adjacent live (non-zero) neighbors.
func VonNeumann(g *grid.Grid, x, y int) int {
	n := 0
	if g.Wrap(x+1, y) > 0 {
		n++
	}
	if g.Wrap(x-1, y) > 0 {
		n++
	}
	if g.Wrap(x, y+1) > 0 {
		n++
	}
	if g.Wrap(x, y-1) > 0 {
		n++
	}
	return n
}

// Moore counts the 8 surrounding live (non-zero) neighbors.
func Moore(g *grid.Grid, x, y int) int {
	n := VonNeumann(g, x, y)
	if g.Wrap(x+1, y+1) > 0 {
		n++
	}
	if g.Wrap(x-1, y+1) > 0 {
		n++
	}
	if g.Wrap(x+1, y-1) > 0 {
		n++
	}
	if g.Wrap(x-1, y-1) > 0 {
		n++
	}
	return n
}

// VonNeumannAbove counts the 4 edge-adjacent neighbors whose value
// strictly exceeds the cell's own. Used for slope/plateau growth.
func VonNeumannAbove(g *grid.Grid, x, y int) int {
	v := g.Wrap(x, y)
	n := 0
	if g.Wrap(x+1, y) > v {
		n++
	}
	if g.Wrap(x-1, y) > v {
		n++
	}
	if g.Wrap(x, y+1) > v {
		n++
	}
	if g.Wrap(x, y-1) > v {
		n++
	}
	return n
}

// MooreAbove counts the 8 surrounding neighbors whose value strictly
// exceeds the cell's own.
func MooreAbove(g *grid.Grid, x, y int) int {
	v := g.Wrap(x, y)
	n := VonNeumannAbove(g, x, y)
	if g.Wrap(x+1, y+1) > v {
		n++
	}
	if g.Wrap(x-1, y+1) > v {
		n++
	}
	if g.Wrap(x+1, y-1) > v {
		n++
	}
	if g.Wrap(x-1, y-1) > v {
		n++
	}
	return n
}

// Step advances the grid by one generation, in place and in scan order.
// Cells later in the scan see earlier cells' already-updated values,
// which deviates from a strictly synchronous automaton; the generated
// terrain depends on this exact order, so it stays.
func (r *Ruleset) Step(g *grid.Grid) {
	side := g.Side()
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			n := r.Neighbors(g, x, y)
			v := g.Wrap(x, y)

			switch {
			case v == 0 && r.Born&(1<<uint(n)) != 0:
				g.Set(x, y, r.States)
			case v > 0 && r.Survive&(1<<uint(n)) != 0:
				// survives untouched
			case v > 0 && r.Decay:
				g.Set(x, y, v-1)
			}
		}
	}
}

// GenMaze seeds a side x side grid from rng and iterates the ruleset
// steps times. Each cell starts at States with probability (States+1)/8,
// dead otherwise.
func (r *Ruleset) GenMaze(rng *rand.Rand, side, steps int) *grid.Grid {
	g := grid.New(side)
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			if byte(rng.Intn(8)) <= r.States {
				g.Set(x, y, r.States)
			}
		}
	}

	for step := 0; step < steps; step++ {
		r.Step(g)
	}
	return g
}
