package ncio

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
)

// WriteCDF writes the dataset to path as a classic-format netCDF file.
// Variables are written in Dataset.Names order; global and per-variable
// attributes go out verbatim.
func WriteCDF(path string, ds *Dataset) error {
	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if ds.Attrs != nil {
		if err := cw.AddAttributes(ds.Attrs); err != nil {
			cw.Close()
			return fmt.Errorf("write %s: global attributes: %w", path, err)
		}
	}
	for _, name := range ds.Names {
		v := ds.Vars[name]
		values, err := toValues(v.Data)
		if err != nil {
			cw.Close()
			return fmt.Errorf("write %s: variable %q: %w", path, name, err)
		}
		err = cw.AddVar(name, api.Variable{
			Values:     values,
			Dimensions: v.Dims,
			Attributes: v.Attrs,
		})
		if err != nil {
			cw.Close()
			return fmt.Errorf("write %s: variable %q: %w", path, name, err)
		}
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
