// Package stitch reassembles per-worker tile files into one global
// dataset per timestep: it builds a zero-filled global template from a
// representative tile, loads the group through a worker pool and copies
// every tile's interior into place.
package stitch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wxgrid/stitch/internal/grid"
)

var (
	// ErrUnsupportedRank means a variable has fewer than two or more
	// than four dimensions.
	ErrUnsupportedRank = errors.New("unsupported variable rank")

	// ErrIncompleteGroup means a tile file expected in a timestep group
	// could not be loaded; the whole group is abandoned.
	ErrIncompleteGroup = errors.New("incomplete tile group")
)

// timeDim is the dimension name that marks the leading axis of a
// variable as time rather than a vertical level.
const timeDim = "time"

type planKind uint8

const (
	plan2D      planKind = iota // (y, x)
	plan3DTime                  // (time, y, x)
	plan3DLevel                 // (level, y, x)
	plan4D                      // (time, level, y, x)
)

// Plan classifies one variable's copy shape. It depends only on the
// variable's dimension names, so it is computed once per variable and
// reused for every tile and every timestep.
type Plan struct {
	kind planKind
	xOff int
	yOff int
}

// PlanFor classifies a variable by its dimension names.
func PlanFor(dims []string) (Plan, error) {
	xOff, yOff := grid.StaggerOffsets(dims)
	switch len(dims) {
	case 2:
		return Plan{kind: plan2D, xOff: xOff, yOff: yOff}, nil
	case 3:
		if dims[0] == timeDim {
			return Plan{kind: plan3DTime, xOff: xOff, yOff: yOff}, nil
		}
		return Plan{kind: plan3DLevel, xOff: xOff, yOff: yOff}, nil
	case 4:
		return Plan{kind: plan4D, xOff: xOff, yOff: yOff}, nil
	default:
		return Plan{}, fmt.Errorf("%w: variable has %d dimensions (%s)",
			ErrUnsupportedRank, len(dims), strings.Join(dims, ", "))
	}
}

// GlobalShape returns the shape of the variable's global array. The
// trailing axes cover the domain, widened by one along a staggered
// direction. Time-axis lengths come from the tile itself; level-axis
// lengths come from the domain's vertical extent.
func (p Plan) GlobalShape(dom grid.Extents, tileShape []int) []int {
	nx := dom.NX() + p.xOff
	ny := dom.NY() + p.yOff
	switch p.kind {
	case plan2D:
		return []int{ny, nx}
	case plan3DTime:
		return []int{tileShape[0], ny, nx}
	case plan3DLevel:
		return []int{dom.NZ(), ny, nx}
	default: // plan4D
		return []int{tileShape[0], dom.NZ(), ny, nx}
	}
}

// Ranges returns the parallel destination (global) and source (local
// memory) ranges for copying one tile's interior of this variable.
// Staggered x/y ranges are widened on both sides of the copy so the
// shared edge element is written by whichever tile owns it. The
// vertical axis is never staggered. 2D fields are copied unwidened even
// when their dimensions carry a stagger marker, matching the upstream
// writer, which never produces staggered 2D fields.
func (p Plan) Ranges(x, y, z grid.AxisRanges, tileShape []int) (dst, src []grid.Range) {
	switch p.kind {
	case plan2D:
		dst = []grid.Range{y.Global, x.Global}
		src = []grid.Range{y.Local, x.Local}
	case plan3DTime:
		all := grid.Range{Start: 0, End: tileShape[0]}
		dst = []grid.Range{all, y.Global.Widen(p.yOff), x.Global.Widen(p.xOff)}
		src = []grid.Range{all, y.Local.Widen(p.yOff), x.Local.Widen(p.xOff)}
	case plan3DLevel:
		dst = []grid.Range{z.Global, y.Global.Widen(p.yOff), x.Global.Widen(p.xOff)}
		src = []grid.Range{z.Local, y.Local.Widen(p.yOff), x.Local.Widen(p.xOff)}
	default: // plan4D
		all := grid.Range{Start: 0, End: tileShape[0]}
		dst = []grid.Range{all, z.Global, y.Global.Widen(p.yOff), x.Global.Widen(p.xOff)}
		src = []grid.Range{all, z.Local, y.Local.Widen(p.yOff), x.Local.Widen(p.xOff)}
	}
	return dst, src
}

// planKey builds the cache key for a variable's plan. Dimension names
// are part of the key so a variable that changes shape between runs
// does not pick up a stale plan.
func planKey(name string, dims []string) string {
	return name + "|" + strings.Join(dims, ",")
}
