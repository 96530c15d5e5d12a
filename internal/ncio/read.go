// Package ncio reads tile files and writes aggregated global files in
// netCDF form, converting between the library's nested-slice values and
// the flat arrays the copy phase works on.
package ncio

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/klauspost/compress/zstd"

	"github.com/wxgrid/stitch/internal/grid"
)

// Variable is one field from a tile file or the global output: its
// dimension names, attributes and data. Dims and Attrs pass through
// aggregation untouched.
type Variable struct {
	Name  string
	Dims  []string
	Attrs api.AttributeMap
	Data  *grid.Array
}

// Dataset is one file's worth of variables plus its global attributes.
// Names preserves the variable order of the source file so output files
// list variables in the same order as their inputs.
type Dataset struct {
	Path  string
	Attrs api.AttributeMap
	Names []string
	Vars  map[string]*Variable
}

// Extents parses one of the dataset's three extent records.
func (d *Dataset) Extents(section grid.Section) (grid.Extents, error) {
	return grid.ParseExtents(d.Attrs, section)
}

// ReadTile loads a tile file fully into memory. Files ending in .zst
// are zstd-compressed netCDF and are decompressed transparently.
func ReadTile(path string) (*Dataset, error) {
	var (
		group api.Group
		err   error
	)
	if strings.HasSuffix(path, ".zst") {
		group, err = openZstd(path)
	} else {
		group, err = netcdf.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer group.Close()

	ds := &Dataset{
		Path:  path,
		Attrs: group.Attributes(),
		Vars:  make(map[string]*Variable),
	}
	for _, name := range group.ListVariables() {
		v, err := group.GetVariable(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: variable %q: %w", path, name, err)
		}
		arr, err := fromValues(v.Values)
		if err != nil {
			return nil, fmt.Errorf("read %s: variable %q: %w", path, name, err)
		}
		ds.Names = append(ds.Names, name)
		ds.Vars[name] = &Variable{
			Name:  name,
			Dims:  v.Dimensions,
			Attrs: v.Attributes,
			Data:  arr,
		}
	}
	return ds, nil
}

func openZstd(path string) (api.Group, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()
	plain, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress failed: %w", err)
	}
	return netcdf.New(memFile{bytes.NewReader(plain)})
}

// memFile adapts an in-memory buffer to the reader interface the
// netCDF library wants.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }
