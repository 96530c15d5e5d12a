// Package colormap provides color schemes for field visualization.
package colormap

import (
	"image/color"
)

// Colormap maps normalized values [0, 1] to colors.
type Colormap interface {
	At(t float64) color.Color
}

// Linear interpolates between a fixed list of control colors.
type Linear struct {
	colors []color.RGBA
}

// At returns the color at position t, clamped to [0, 1].
func (c Linear) At(t float64) color.Color {
	if t <= 0 {
		return c.colors[0]
	}
	if t >= 1 {
		return c.colors[len(c.colors)-1]
	}

	idx := t * float64(len(c.colors)-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= len(c.colors) {
		upper = len(c.colors) - 1
	}

	frac := idx - float64(lower)
	return lerp(c.colors[lower], c.colors[upper], frac)
}

func lerp(c1, c2 color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c1.R) + t*(float64(c2.R)-float64(c1.R))),
		G: uint8(float64(c1.G) + t*(float64(c2.G)-float64(c1.G))),
		B: uint8(float64(c1.B) + t*(float64(c2.B)-float64(c1.B))),
		A: 255,
	}
}

// ByName returns a named colormap, or ok=false for an unknown name.
func ByName(name string) (Colormap, bool) {
	switch name {
	case "viridis":
		return Viridis, true
	case "inferno":
		return Inferno, true
	case "gray", "grey":
		return Gray, true
	}
	return nil, false
}

// Viridis colormap (matplotlib viridis)
var Viridis = Linear{
	colors: []color.RGBA{
		{68, 1, 84, 255},
		{72, 35, 116, 255},
		{64, 67, 135, 255},
		{52, 94, 141, 255},
		{41, 120, 142, 255},
		{32, 144, 140, 255},
		{34, 167, 132, 255},
		{68, 190, 112, 255},
		{121, 209, 81, 255},
		{189, 222, 38, 255},
		{253, 231, 37, 255},
	},
}

// Inferno colormap
var Inferno = Linear{
	colors: []color.RGBA{
		{0, 0, 4, 255},
		{40, 11, 84, 255},
		{101, 21, 110, 255},
		{159, 42, 99, 255},
		{212, 72, 66, 255},
		{245, 125, 21, 255},
		{250, 193, 39, 255},
		{252, 255, 164, 255},
	},
}

// Gray is a plain black-to-white ramp.
var Gray = Linear{
	colors: []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
	},
}
