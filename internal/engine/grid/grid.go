// Package grid implements a byte grid with toroidal indexing, shared by
// the cellular automata and the terrain sampler.
package grid

import "strings"

// Grid is a square 2D byte array. Neighbor lookups wrap around both
// edges; bounds-checked access returns 0 outside the grid.
type Grid struct {
	cells []byte
	side  int
}

// New creates a zeroed side x side grid.
func New(side int) *Grid {
	return &Grid{
		cells: make([]byte, side*side),
		side:  side,
	}
}

// Side returns the grid's edge length.
func (g *Grid) Side() int {
	return g.side
}

func (g *Grid) wrap(c int) int {
	c %= g.side
	if c < 0 {
		c += g.side
	}
	return c
}

// Wrap returns the cell at (x, y) with toroidal wrapping on both axes.
// Any int coordinates are valid, including negative ones.
func (g *Grid) Wrap(x, y int) byte {
	return g.cells[g.wrap(y)*g.side+g.wrap(x)]
}

// At returns the cell at (x, y), or 0 if the coordinates fall outside
// the grid. Terrain sampling uses this so that features fade out at the
// edges instead of bleeding across them.
func (g *Grid) At(x, y int) byte {
	if x < 0 || y < 0 || x >= g.side || y >= g.side {
		return 0
	}
	return g.cells[y*g.side+x]
}

// Set stores v at (x, y) with toroidal wrapping.
func (g *Grid) Set(x, y int, v byte) {
	g.cells[g.wrap(y)*g.side+g.wrap(x)] = v
}

// Equal reports whether two grids have identical dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.side != other.side {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid one row per line, mapping cell values to a
// density ramp. Useful in debug logs.
func (g *Grid) String() string {
	const ramp = " .+oO############_^tTF"
	var b strings.Builder
	for y := 0; y < g.side; y++ {
		for x := 0; x < g.side; x++ {
			v := int(g.At(x, y))
			if v >= len(ramp) {
				v = len(ramp) - 1
			}
			b.WriteByte(ramp[v])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
