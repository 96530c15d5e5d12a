package grid

import "fmt"

// Range is a half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in the interval.
func (r Range) Len() int { return r.End - r.Start }

// Widen extends the interval's end, used to pick up the extra edge
// element of staggered variables.
func (r Range) Widen(off int) Range { return Range{r.Start, r.End + off} }

// AxisRanges pairs the interval a tile's interior occupies within its
// local memory buffer with the interval it occupies in the global array.
type AxisRanges struct {
	Local  Range
	Global Range
}

// CopyRanges computes the per-axis copy intervals for one tile. tile is
// the interior region the worker owns, mem its halo-padded buffer and
// dom the full domain, all in the same global index convention.
//
// For an axis with tile bounds [ts, te], memory start ms and domain
// start ds, the interior sits at [ts-ms, te-ms+1) in the local buffer
// and at [ts-ds, te-ds+1) in the global array. The two intervals must
// have equal length; anything else means the file's extent attributes
// contradict each other.
func CopyRanges(tile, mem, dom Extents) (x, y, z AxisRanges, err error) {
	x = axisRanges(tile.IS, tile.IE, mem.IS, dom.IS)
	y = axisRanges(tile.JS, tile.JE, mem.JS, dom.JS)
	z = axisRanges(tile.KS, tile.KE, mem.KS, dom.KS)
	for _, a := range [...]struct {
		name string
		r    AxisRanges
	}{{"x", x}, {"y", y}, {"z", z}} {
		if a.r.Local.Len() != a.r.Global.Len() {
			err = fmt.Errorf("%w: axis %s local range %v != global range %v",
				ErrExtentMismatch, a.name, a.r.Local, a.r.Global)
			return
		}
	}
	return x, y, z, nil
}

func axisRanges(ts, te, ms, ds int) AxisRanges {
	return AxisRanges{
		Local:  Range{ts - ms, te - ms + 1},
		Global: Range{ts - ds, te - ds + 1},
	}
}
