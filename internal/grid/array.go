package grid

import "fmt"

// Kind is the element type a variable had on disk. Values travel
// through aggregation as float64, which holds every supported kind
// exactly, and convert back to the original kind on write.
type Kind uint8

const (
	Float64 Kind = iota
	Float32
	Int32
	Int16
	Int8
	Uint8
)

// String returns the kind's Go type name.
func (k Kind) String() string {
	switch k {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	case Int16:
		return "int16"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Array is a dense row-major numeric array.
type Array struct {
	Shape []int
	Kind  Kind
	Data  []float64
}

// Zeros allocates a zero-filled array of the given kind and shape.
func Zeros(kind Kind, shape ...int) *Array {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return &Array{
		Shape: append([]int(nil), shape...),
		Kind:  kind,
		Data:  make([]float64, n),
	}
}

// Rank returns the number of axes.
func (a *Array) Rank() int { return len(a.Shape) }

// Strides returns the row-major element stride of each axis.
func (a *Array) Strides() []int {
	strides := make([]int, len(a.Shape))
	s := 1
	for i := len(a.Shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= a.Shape[i]
	}
	return strides
}

// At returns the element at the given indices. It is intended for
// tests and small lookups, not for bulk access.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.Shape) {
		panic(fmt.Sprintf("grid: At called with %d indices on rank-%d array", len(idx), len(a.Shape)))
	}
	off := 0
	for i, s := range a.Strides() {
		off += idx[i] * s
	}
	return a.Data[off]
}

// CopyRegion copies the src region into the dst region. The regions are
// given per axis as parallel half-open ranges and must agree in rank
// and per-axis length and lie within the arrays' bounds; violations
// report ErrExtentMismatch since they can only arise from inconsistent
// tile metadata.
func CopyRegion(dst *Array, dstR []Range, src *Array, srcR []Range) error {
	if len(dstR) != dst.Rank() || len(srcR) != src.Rank() {
		return fmt.Errorf("%w: region rank does not match array rank", ErrExtentMismatch)
	}
	if len(dstR) != len(srcR) {
		return fmt.Errorf("%w: destination rank %d != source rank %d", ErrExtentMismatch, len(dstR), len(srcR))
	}
	if len(dstR) == 0 {
		return fmt.Errorf("%w: cannot copy a rank-0 region", ErrExtentMismatch)
	}
	for i := range dstR {
		if dstR[i].Len() != srcR[i].Len() {
			return fmt.Errorf("%w: axis %d copies %d elements into %d",
				ErrExtentMismatch, i, srcR[i].Len(), dstR[i].Len())
		}
		if dstR[i].Start < 0 || dstR[i].End > dst.Shape[i] || dstR[i].Len() < 0 {
			return fmt.Errorf("%w: axis %d destination range %v outside [0,%d)",
				ErrExtentMismatch, i, dstR[i], dst.Shape[i])
		}
		if srcR[i].Start < 0 || srcR[i].End > src.Shape[i] || srcR[i].Len() < 0 {
			return fmt.Errorf("%w: axis %d source range %v outside [0,%d)",
				ErrExtentMismatch, i, srcR[i], src.Shape[i])
		}
	}

	dstStrides := dst.Strides()
	srcStrides := src.Strides()
	last := len(dstR) - 1

	var walk func(axis, dOff, sOff int)
	walk = func(axis, dOff, sOff int) {
		if axis == last {
			d0 := dOff + dstR[axis].Start
			s0 := sOff + srcR[axis].Start
			copy(dst.Data[d0:d0+dstR[axis].Len()], src.Data[s0:s0+srcR[axis].Len()])
			return
		}
		for k := 0; k < dstR[axis].Len(); k++ {
			walk(axis+1,
				dOff+(dstR[axis].Start+k)*dstStrides[axis],
				sOff+(srcR[axis].Start+k)*srcStrides[axis])
		}
	}
	walk(0, 0, 0)
	return nil
}
