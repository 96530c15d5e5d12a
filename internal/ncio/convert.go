package ncio

import (
	"fmt"
	"reflect"

	"github.com/wxgrid/stitch/internal/grid"
)

// The netCDF library exchanges multidimensional values as nested Go
// slices ([][]float32, [][][]float64, ...). Aggregation wants flat
// row-major buffers, so variables are converted on the way in and
// converted back on the way out.

func fromValues(values interface{}) (*grid.Array, error) {
	if values == nil {
		return nil, fmt.Errorf("%w: variable has no values", grid.ErrUnsupportedType)
	}

	t := reflect.TypeOf(values)
	rank := 0
	for t.Kind() == reflect.Slice {
		rank++
		t = t.Elem()
	}
	kind, err := kindOf(t)
	if err != nil {
		return nil, err
	}
	if rank == 0 {
		return nil, fmt.Errorf("%w: scalar variables are not supported", grid.ErrUnsupportedType)
	}

	rv := reflect.ValueOf(values)
	shape := make([]int, rank)
	for v, depth := rv, 0; depth < rank; depth++ {
		shape[depth] = v.Len()
		if v.Len() == 0 {
			break
		}
		if depth < rank-1 {
			v = v.Index(0)
		}
	}

	n := 1
	for _, s := range shape {
		n *= s
	}
	arr := &grid.Array{Shape: shape, Kind: kind, Data: make([]float64, 0, n)}

	var flatten func(v reflect.Value, depth int) error
	flatten = func(v reflect.Value, depth int) error {
		if depth == rank {
			arr.Data = append(arr.Data, scalarFloat(v))
			return nil
		}
		if v.Len() != shape[depth] {
			return fmt.Errorf("%w: ragged values at depth %d: %d != %d",
				grid.ErrExtentMismatch, depth, v.Len(), shape[depth])
		}
		for i := 0; i < v.Len(); i++ {
			if err := flatten(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := flatten(rv, 0); err != nil {
		return nil, err
	}
	return arr, nil
}

func toValues(a *grid.Array) (interface{}, error) {
	if a.Rank() == 0 {
		return nil, fmt.Errorf("%w: cannot write a rank-0 array", grid.ErrUnsupportedType)
	}
	elem, err := elemType(a.Kind)
	if err != nil {
		return nil, err
	}

	sliceType := reflect.SliceOf(elem)
	for i := 1; i < a.Rank(); i++ {
		sliceType = reflect.SliceOf(sliceType)
	}

	strides := a.Strides()
	var build func(t reflect.Type, depth, off int) reflect.Value
	build = func(t reflect.Type, depth, off int) reflect.Value {
		n := a.Shape[depth]
		s := reflect.MakeSlice(t, n, n)
		if depth == a.Rank()-1 {
			for i := 0; i < n; i++ {
				setScalar(s.Index(i), a.Data[off+i])
			}
			return s
		}
		for i := 0; i < n; i++ {
			s.Index(i).Set(build(t.Elem(), depth+1, off+i*strides[depth]))
		}
		return s
	}
	return build(sliceType, 0, 0).Interface(), nil
}

func kindOf(t reflect.Type) (grid.Kind, error) {
	switch t.Kind() {
	case reflect.Float64:
		return grid.Float64, nil
	case reflect.Float32:
		return grid.Float32, nil
	case reflect.Int32:
		return grid.Int32, nil
	case reflect.Int16:
		return grid.Int16, nil
	case reflect.Int8:
		return grid.Int8, nil
	case reflect.Uint8:
		return grid.Uint8, nil
	}
	return 0, fmt.Errorf("%w: %s", grid.ErrUnsupportedType, t.Kind())
}

func elemType(k grid.Kind) (reflect.Type, error) {
	switch k {
	case grid.Float64:
		return reflect.TypeOf(float64(0)), nil
	case grid.Float32:
		return reflect.TypeOf(float32(0)), nil
	case grid.Int32:
		return reflect.TypeOf(int32(0)), nil
	case grid.Int16:
		return reflect.TypeOf(int16(0)), nil
	case grid.Int8:
		return reflect.TypeOf(int8(0)), nil
	case grid.Uint8:
		return reflect.TypeOf(uint8(0)), nil
	}
	return nil, fmt.Errorf("%w: %s", grid.ErrUnsupportedType, k)
}

func scalarFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return float64(v.Int())
	case reflect.Uint8:
		return float64(v.Uint())
	}
	panic(fmt.Sprintf("ncio: scalarFloat on %s", v.Kind()))
}

func setScalar(v reflect.Value, f float64) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		v.SetFloat(f)
	case reflect.Int8, reflect.Int16, reflect.Int32:
		v.SetInt(int64(f))
	case reflect.Uint8:
		v.SetUint(uint64(f))
	default:
		panic(fmt.Sprintf("ncio: setScalar on %s", v.Kind()))
	}
}
