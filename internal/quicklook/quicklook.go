// Package quicklook renders one aggregated field to a PNG for quick
// visual inspection; tile seams and misaligned copies show up
// immediately in the image.
package quicklook

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"

	"github.com/wxgrid/stitch/internal/ncio"
	"github.com/wxgrid/stitch/pkg/colormap"
)

// Config selects what to render.
type Config struct {
	Variable string // required
	Colormap string // default "viridis"
}

// WritePNG renders the variable's horizontal field to path, one pixel
// per grid cell. For 3D and 4D variables the first slice along each
// leading axis is rendered (first time, surface level).
func WritePNG(path string, ds *ncio.Dataset, cfg Config) error {
	v, ok := ds.Vars[cfg.Variable]
	if !ok {
		return fmt.Errorf("quicklook: variable %q not in dataset", cfg.Variable)
	}
	if v.Data.Rank() < 2 {
		return fmt.Errorf("quicklook: variable %q has no horizontal plane", cfg.Variable)
	}

	name := cfg.Colormap
	if name == "" {
		name = "viridis"
	}
	cm, ok := colormap.ByName(name)
	if !ok {
		return fmt.Errorf("quicklook: unknown colormap %q", name)
	}

	shape := v.Data.Shape
	ny := shape[len(shape)-2]
	nx := shape[len(shape)-1]
	plane := v.Data.Data[:ny*nx] // row-major: the leading slice is contiguous

	lo, hi := floats.Min(plane), floats.Max(plane)
	span := hi - lo
	if span == 0 || math.IsNaN(span) {
		span = 1
	}

	dc := gg.NewContext(nx, ny)
	for j := 0; j < ny; j++ {
		row := j * nx
		for i := 0; i < nx; i++ {
			t := (plane[row+i] - lo) / span
			if math.IsNaN(t) {
				t = 0
			}
			dc.SetColor(cm.At(t))
			// row 0 is the domain's south edge; draw north up
			dc.SetPixel(i, ny-1-j)
		}
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("quicklook: %w", err)
	}
	return nil
}
