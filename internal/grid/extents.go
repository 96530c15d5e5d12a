// Package grid implements the index arithmetic for reassembling
// domain-decomposed simulation output: extent records, grid staggering,
// and the local-to-global copy ranges for one tile.
package grid

import (
	"errors"
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Section selects which of the three extent records a tile file carries
// in its global attributes.
type Section string

const (
	SectionDomain Section = "d" // full simulation grid
	SectionMemory Section = "m" // worker's buffer, halo included
	SectionTile   Section = "t" // interior region the worker owns
)

var (
	// ErrMissingMetadata means a required extent attribute is absent or
	// not an integer.
	ErrMissingMetadata = errors.New("missing or malformed extent attribute")

	// ErrExtentMismatch means the local and global copy ranges disagree,
	// which indicates corrupt or incompatible tile metadata.
	ErrExtentMismatch = errors.New("extent mismatch")

	// ErrUnsupportedType means a variable's element type cannot travel
	// through aggregation losslessly.
	ErrUnsupportedType = errors.New("unsupported element type")
)

// Extents are inclusive index bounds along the three grid axes, exactly
// as the simulation declares them in a tile file's global attributes.
type Extents struct {
	IS, IE int // x axis
	JS, JE int // y axis
	KS, KE int // z (vertical) axis
}

// NX returns the number of cells along x.
func (e Extents) NX() int { return e.IE - e.IS + 1 }

// NY returns the number of cells along y.
func (e Extents) NY() int { return e.JE - e.JS + 1 }

// NZ returns the number of levels along z.
func (e Extents) NZ() int { return e.KE - e.KS + 1 }

// ParseExtents reads the six attributes of one section from a tile
// file's global attribute map. Attribute names are axis (i, j, k)
// followed by the section code followed by the position (s, e):
// ids, ide, jds, jde, kds, kde for the domain section.
//
// All six must be present and integral; the record is validated here,
// once, rather than looked up attribute by attribute during the copy.
func ParseExtents(attrs api.AttributeMap, section Section) (Extents, error) {
	var vals [6]int
	n := 0
	for _, axis := range [...]string{"i", "j", "k"} {
		for _, pos := range [...]string{"s", "e"} {
			name := axis + string(section) + pos
			raw, has := attrs.Get(name)
			if !has {
				return Extents{}, fmt.Errorf("%w: attribute %q not found", ErrMissingMetadata, name)
			}
			v, err := attrInt(raw)
			if err != nil {
				return Extents{}, fmt.Errorf("%w: attribute %q: %v", ErrMissingMetadata, name, err)
			}
			vals[n] = v
			n++
		}
	}
	return Extents{
		IS: vals[0], IE: vals[1],
		JS: vals[2], JE: vals[3],
		KS: vals[4], KE: vals[5],
	}, nil
}

// attrInt converts a netCDF attribute value to an int. The CDF reader
// returns single-element attributes as scalars, but one-element slices
// are accepted too.
func attrInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case []int16:
		if len(n) == 1 {
			return int(n[0]), nil
		}
	case []int32:
		if len(n) == 1 {
			return int(n[0]), nil
		}
	case []int64:
		if len(n) == 1 {
			return int(n[0]), nil
		}
	}
	return 0, fmt.Errorf("value %v (%T) is not an integer", v, v)
}
