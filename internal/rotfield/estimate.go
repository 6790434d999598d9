package rotfield

import (
	"math"
	"math/bits"
)

const bytesPerValue = 8

// estimateFrameBytes returns the size of an (F, D, N) float64 tensor. ok is
// false when the product overflows.
func estimateFrameBytes(nf, nd, n int) (size int64, ok bool) {
	if nf < 0 || nd < 0 || n < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(nf), uint64(nd))
	if hi != 0 {
		return 0, false
	}
	hi, lo = bits.Mul64(lo, uint64(n))
	if hi != 0 {
		return 0, false
	}
	hi, lo = bits.Mul64(lo, bytesPerValue)
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

// checkFrameBudget fails before allocation when the frame tensor would not
// fit in maxBytes. maxBytes <= 0 uses MaxFrameBytes.
func checkFrameBudget(nf, nd, n int, maxBytes int64) (int64, error) {
	if maxBytes <= 0 {
		maxBytes = MaxFrameBytes
	}
	size, ok := estimateFrameBytes(nf, nd, n)
	if !ok {
		return 0, configErrorf("frame tensor (%d, %d, %d) overflows", nf, nd, n)
	}
	if size > maxBytes {
		return size, configErrorf("frame tensor (%d, %d, %d) needs %d bytes, limit is %d", nf, nd, n, size, maxBytes)
	}
	return size, nil
}

// checkGridBudget fails before allocation when k coordinate arrays over
// shape would not fit in maxBytes. It returns the number of grid points.
func checkGridBudget(k int, shape Shape, maxBytes int64) (int, error) {
	if maxBytes <= 0 {
		maxBytes = MaxFrameBytes
	}
	n, ok := shape.CheckedNumElements()
	if !ok {
		return 0, configErrorf("grid shape %v overflows", []int(shape))
	}
	size, ok := estimateFrameBytes(1, k, n)
	if !ok {
		return 0, configErrorf("coordinate grid (%d, %d) overflows", k, n)
	}
	if size > maxBytes {
		return 0, configErrorf("coordinate grid (%d, %d) needs %d bytes, limit is %d", k, n, size, maxBytes)
	}
	return n, nil
}
