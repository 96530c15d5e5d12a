package stitch

import (
	"fmt"

	"github.com/wxgrid/stitch/internal/grid"
	"github.com/wxgrid/stitch/internal/ncio"
)

// buildTemplate allocates the zero-filled global dataset for one
// timestep from a representative tile: every variable gets an array
// sized to the full domain (plus one along any staggered direction)
// with its dimension names and attributes carried over, and the tile's
// global attributes are copied verbatim. Cells no tile claims stay at
// the zero fill.
func (a *Aggregator) buildTemplate(ref *ncio.Dataset) (*ncio.Dataset, grid.Extents, error) {
	dom, err := ref.Extents(grid.SectionDomain)
	if err != nil {
		return nil, grid.Extents{}, fmt.Errorf("template from %s: %w", ref.Path, err)
	}

	out := &ncio.Dataset{
		Attrs: ref.Attrs,
		Names: append([]string(nil), ref.Names...),
		Vars:  make(map[string]*ncio.Variable, len(ref.Vars)),
	}
	for _, name := range ref.Names {
		v := ref.Vars[name]
		plan, err := a.planFor(name, v.Dims)
		if err != nil {
			return nil, grid.Extents{}, fmt.Errorf("template from %s: variable %q: %w", ref.Path, name, err)
		}
		out.Vars[name] = &ncio.Variable{
			Name:  name,
			Dims:  v.Dims,
			Attrs: v.Attrs,
			Data:  grid.Zeros(v.Data.Kind, plan.GlobalShape(dom, v.Data.Shape)...),
		}
	}
	return out, dom, nil
}
