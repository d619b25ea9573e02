// Package bsp recursively partitions a rectangle into a binary tree of
// panels. The terrain generator hangs a noise amplitude and octave count
// off every leaf, then blends between neighboring leaves so that each
// panel gets its own surface character without visible seams.
package bsp

import "math/rand"

const minWidth = 1

// Node is one panel of the partition. Leaves carry the noise parameters
// assigned by the partition callback; interior nodes only route lookups.
type Node struct {
	X, Y, W, H int
	Amp        float32
	Oct        int
	A, B       *Node
	root       *Node
}

// LeafFunc is invoked once for every leaf, with the depth at which the
// splitting stopped.
type LeafFunc func(n *Node, level int)

// Partition builds the tree over the rectangle (x, y, w, h), drawing
// split fractions from rng, and calls leaf for every terminal panel.
func Partition(rng *rand.Rand, x, y, w, h int, leaf LeafFunc) *Node {
	root := &Node{X: x, Y: y, W: w, H: h}
	root.root = root
	root.split(rng, 0, leaf)
	return root
}

func (n *Node) area() int {
	return n.W * n.H
}

// needsSplit keeps panels between one quarter of the root's area and a
// 2-cell sliver, forces long panels apart, and caps recursion depth.
func needsSplit(n *Node, level int) bool {
	if n.W == minWidth*2 || n.H == minWidth*2 {
		return false
	}
	if level > 16 {
		return false
	}
	if n.W/n.H > 4 || n.H/n.W > 4 {
		return true
	}
	if n.area() > n.root.area()/4 {
		return true
	}
	return level < 3
}

func (n *Node) split(rng *rand.Rand, level int, leaf LeafFunc) {
	vertical := level&1 != 0
	frac := rng.Float64()
	if frac < 0.2 {
		frac = 0.2
	} else if frac > 0.8 {
		frac = 0.8
	}

	if n.W/n.H > 4 {
		vertical = true
	} else if n.H/n.W > 4 {
		vertical = false
	}

	a := &Node{X: n.X, Y: n.Y, W: n.W, H: n.H, root: n.root}
	b := &Node{X: n.X, Y: n.Y, W: n.W, H: n.H, root: n.root}

	if vertical {
		aw := int(frac * float64(a.W))
		if aw < minWidth {
			aw = minWidth
		}
		if aw > b.W-minWidth {
			aw = b.W - minWidth
		}
		a.W = aw
		b.X += aw
		b.W -= aw
	} else {
		ah := int(frac * float64(a.H))
		if ah < minWidth {
			ah = minWidth
		}
		if ah > b.H-minWidth {
			ah = b.H - minWidth
		}
		a.H = ah
		b.Y += ah
		b.H -= ah
	}

	n.A = a
	n.B = b

	if needsSplit(a, level) {
		a.split(rng, level+1, leaf)
	} else {
		leaf(a, level)
	}
	if needsSplit(b, level) {
		b.split(rng, level+1, leaf)
	} else {
		leaf(b, level)
	}
}

func (n *Node) withinRect(x, y int) bool {
	return x >= n.X && x < n.X+n.W && y >= n.Y && y < n.Y+n.H
}

// withinEllipse tests against the ellipse inscribed in the panel. Points
// inside the panel's rect but outside the ellipse fall through to the
// sibling, which rounds off the corners of terminal panels.
func (n *Node) withinEllipse(x, y int) bool {
	if !n.withinRect(x, y) {
		return false
	}
	xax := float32(n.W / 2)
	yax := float32(n.H / 2)
	dx := float32(x - n.X - n.W/2)
	dy := float32(y - n.Y - n.H/2)
	return dx*dx/(xax*xax)+dy*dy/(yax*yax) <= 1
}

func (n *Node) within(x, y int) bool {
	if n.A != nil && n.A.A != nil {
		return n.withinRect(x, y)
	}
	return n.withinEllipse(x, y)
}

// Find descends from n to the leaf owning (x, y), testing the larger
// child first at every step.
func (n *Node) Find(x, y int) *Node {
	it := n
	for it.A != nil && it.B != nil {
		a, b := it.A, it.B
		if a.area() < b.area() {
			a, b = b, a
		}
		if a.within(x, y) {
			it = a
		} else {
			it = b
		}
	}
	return it
}

// XFrac maps x to [-1, 1] across the panel, 0 at the center.
func (n *Node) XFrac(x int) float32 {
	return float32(x-n.X-n.W/2) / (float32(n.W) / 2)
}

// YFrac maps y to [-1, 1] across the panel, 0 at the center.
func (n *Node) YFrac(y int) float32 {
	return float32(y-n.Y-n.H/2) / (float32(n.H) / 2)
}

// XNeighbor returns the leaf one cell past n's near vertical edge, as
// seen from x: the right neighbor when x sits in n's right half, the
// left neighbor otherwise. At the root's edge it returns n itself.
func (n *Node) XNeighbor(x, y int) *Node {
	if n.XFrac(x) >= 0 {
		if x >= n.root.X+n.root.W {
			return n
		}
		return n.root.Find(n.X+n.W, y)
	}
	if x <= n.root.X {
		return n
	}
	return n.root.Find(n.X-1, y)
}

// YNeighbor is XNeighbor along the horizontal edges.
func (n *Node) YNeighbor(x, y int) *Node {
	if n.YFrac(y) >= 0 {
		if y >= n.root.Y+n.root.H {
			return n
		}
		return n.root.Find(x, n.Y+n.H)
	}
	if y <= n.root.Y {
		return n
	}
	return n.root.Find(x, n.Y-1)
}
