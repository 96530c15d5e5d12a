package stitch

import (
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/util"

	"github.com/wxgrid/stitch/internal/grid"
	"github.com/wxgrid/stitch/internal/ncio"
)

// Fixtures build tile datasets the way the simulation writes them: each
// variable's array covers the tile's memory extent (halo included) and
// the three extent records sit in the global attributes.

func extentAttrs(t *testing.T, dom, mem, til grid.Extents) *util.OrderedMap {
	t.Helper()
	keys := make([]string, 0, 18)
	vals := make(map[string]interface{}, 18)
	add := func(section grid.Section, e grid.Extents) {
		for _, kv := range []struct {
			name string
			v    int
		}{
			{"i" + string(section) + "s", e.IS}, {"i" + string(section) + "e", e.IE},
			{"j" + string(section) + "s", e.JS}, {"j" + string(section) + "e", e.JE},
			{"k" + string(section) + "s", e.KS}, {"k" + string(section) + "e", e.KE},
		} {
			keys = append(keys, kv.name)
			vals[kv.name] = int32(kv.v)
		}
	}
	add(grid.SectionDomain, dom)
	add(grid.SectionMemory, mem)
	add(grid.SectionTile, til)
	om, err := util.NewOrderedMap(keys, vals)
	if err != nil {
		t.Fatalf("failed to build extent attributes: %v", err)
	}
	return om
}

// memShape2D is the (ny, nx) shape of a tile's memory buffer.
func memShape2D(mem grid.Extents, xOff, yOff int) (ny, nx int) {
	return mem.NY() + yOff, mem.NX() + xOff
}

// fill2D builds a (ny, nx) memory-buffer array where cells inside the
// tile's interior get interior and halo cells get halo. Offsets widen
// the buffer for staggered variables.
func fill2D(mem, til grid.Extents, xOff, yOff int, interior, halo float64) *grid.Array {
	ny, nx := memShape2D(mem, xOff, yOff)
	a := grid.Zeros(grid.Float32, ny, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			gi, gj := mem.IS+i, mem.JS+j
			v := halo
			if gi >= til.IS && gi <= til.IE+xOff && gj >= til.JS && gj <= til.JE+yOff {
				v = interior
			}
			a.Data[j*nx+i] = v
		}
	}
	return a
}

// stack repeats a 2D plane along leading axes, adding lead*1000 to each
// leading index so slices are distinguishable.
func stack(plane *grid.Array, leads ...int) *grid.Array {
	shape := append(append([]int{}, leads...), plane.Shape...)
	a := grid.Zeros(plane.Kind, shape...)
	n := 1
	for _, l := range leads {
		n *= l
	}
	planeLen := len(plane.Data)
	for k := 0; k < n; k++ {
		for i, v := range plane.Data {
			a.Data[k*planeLen+i] = v + float64(k)*1000
		}
	}
	return a
}

func newTile(t *testing.T, path string, dom, mem, til grid.Extents, vars ...*ncio.Variable) *ncio.Dataset {
	t.Helper()
	ds := &ncio.Dataset{
		Path:  path,
		Attrs: extentAttrs(t, dom, mem, til),
		Vars:  make(map[string]*ncio.Variable, len(vars)),
	}
	for _, v := range vars {
		ds.Names = append(ds.Names, v.Name)
		ds.Vars[v.Name] = v
	}
	return ds
}

func newTestAggregator(t *testing.T, verifyCoverage bool) (*Aggregator, *Pool) {
	t.Helper()
	pool := NewPool(2)
	t.Cleanup(pool.Stop)
	agg, err := NewAggregator(AggregatorConfig{Pool: pool, VerifyCoverage: verifyCoverage})
	if err != nil {
		t.Fatalf("NewAggregator failed: %v", err)
	}
	return agg, pool
}

// quadrants returns the domain and per-tile extents of the standard
// 2x2 decomposition of a 10x10 domain: four 5x5 interiors with a
// one-cell halo toward the domain interior.
func quadrants() (dom grid.Extents, mems, tils [4]grid.Extents) {
	dom = grid.Extents{IS: 0, IE: 9, JS: 0, JE: 9, KS: 0, KE: 4}
	tils = [4]grid.Extents{
		{IS: 0, IE: 4, JS: 0, JE: 4, KS: 0, KE: 4},
		{IS: 5, IE: 9, JS: 0, JE: 4, KS: 0, KE: 4},
		{IS: 0, IE: 4, JS: 5, JE: 9, KS: 0, KE: 4},
		{IS: 5, IE: 9, JS: 5, JE: 9, KS: 0, KE: 4},
	}
	for i, til := range tils {
		mem := til
		if til.IS > dom.IS {
			mem.IS--
		}
		if til.IE < dom.IE {
			mem.IE++
		}
		if til.JS > dom.JS {
			mem.JS--
		}
		if til.JE < dom.JE {
			mem.JE++
		}
		mems[i] = mem
	}
	return dom, mems, tils
}
