package grid

// Staggered variables live on cell edges rather than cell centers and
// carry one extra array element along the staggered axis. The writer
// marks them through their dimension names: u-grid variables use the
// lon_u coordinate, v-grid variables use lat_v.
const (
	xStaggerDim = "lon_u"
	yStaggerDim = "lat_v"
)

// StaggerOffsets reports the extra element count along x and y for a
// variable with the given dimension names. Each offset is 0 or 1; both
// are 1 for corner-staggered variables.
func StaggerOffsets(dims []string) (xOff, yOff int) {
	for _, d := range dims {
		switch d {
		case xStaggerDim:
			xOff = 1
		case yStaggerDim:
			yOff = 1
		}
	}
	return xOff, yOff
}
