package stitch

import "github.com/wxgrid/stitch/internal/grid"

// coverage tracks which unstaggered (y, x) cells of the global grid
// have been claimed by some tile's interior. A correct decomposition
// leaves nothing unclaimed; gaps are reported but not treated as
// errors.
type coverage struct {
	nx, ny int
	seen   []bool
}

func newCoverage(dom grid.Extents) *coverage {
	return &coverage{
		nx:   dom.NX(),
		ny:   dom.NY(),
		seen: make([]bool, dom.NX()*dom.NY()),
	}
}

func (c *coverage) mark(x, y grid.Range) {
	for j := y.Start; j < y.End && j < c.ny; j++ {
		row := j * c.nx
		for i := x.Start; i < x.End && i < c.nx; i++ {
			c.seen[row+i] = true
		}
	}
}

func (c *coverage) uncovered() int {
	n := 0
	for _, s := range c.seen {
		if !s {
			n++
		}
	}
	return n
}

func (c *coverage) total() int { return len(c.seen) }
