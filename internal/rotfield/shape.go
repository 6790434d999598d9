package rotfield

import (
	"fmt"
	"math"
	"math/bits"
)

// Shape is the extent of a grid, one entry per axis.
type Shape []int

// NumElements returns the number of grid points.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// CheckedNumElements is NumElements that reports false when an extent is
// not positive or the product overflows int.
func (s Shape) CheckedNumElements() (int, bool) {
	n := uint64(1)
	for _, d := range s {
		if d <= 0 {
			return 0, false
		}
		hi, lo := bits.Mul64(n, uint64(d))
		if hi != 0 || lo > math.MaxInt {
			return 0, false
		}
		n = lo
	}
	return int(n), true
}

// Validate checks that every axis has at least one sample.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return configErrorf("empty shape")
	}
	for i, d := range s {
		if d <= 0 {
			return configErrorf("axis %d has %d samples", i, d)
		}
	}
	return nil
}

// Equal reports whether both shapes have the same rank and extents.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// Strides returns row-major strides: the last axis varies fastest.
func (s Shape) Strides() []int {
	st := make([]int, len(s))
	if len(s) == 0 {
		return st
	}
	st[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		st[i] = st[i+1] * s[i+1]
	}
	return st
}

// Offset maps a multi-index onto the flat row-major position.
func (s Shape) Offset(idx ...int) (int, error) {
	if len(idx) != len(s) {
		return 0, dimErrorf("index rank %d, shape rank %d", len(idx), len(s))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= s[i] {
			return 0, fmt.Errorf("index %d out of range [0,%d) on axis %d", v, s[i], i)
		}
		off = off*s[i] + v
	}
	return off, nil
}
