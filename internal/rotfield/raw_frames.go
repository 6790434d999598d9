package rotfield

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// SaveRaw writes the frame tensor as little-endian binary:
// int32 rank, int32 extents of (F, D, *gridShape), then float64 values in
// row-major order.
func (a *AnimationFrames) SaveRaw(path string) error {
	if a == nil {
		return stateErrorf("animation frames are empty and cannot be written")
	}
	shape := a.TensorShape()
	// Expect exactly F*D*N values in Buf. Use 64-bit multiply to avoid overflow.
	exp64 := int64(1)
	for _, d := range shape {
		if d < 0 {
			return fmt.Errorf("negative dimension in %v", shape)
		}
		exp64 *= int64(d)
	}
	if int64(len(a.Buf)) != exp64 {
		return fmt.Errorf("Buf length mismatch: got %d, expected %d (%v)", len(a.Buf), exp64, shape)
	}

	// Make sure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, int32(len(shape))); err != nil {
		return err
	}
	for _, d := range shape {
		if err := binary.Write(w, binary.LittleEndian, int32(d)); err != nil {
			return err
		}
	}

	// Body: the full buffer in one shot (fewer syscalls).
	if exp64 > 0 {
		if err := binary.Write(w, binary.LittleEndian, a.Buf); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// LoadRaw reads a tensor written by SaveRaw. Ranges are not stored and are
// left empty.
func LoadRaw(path string) (*AnimationFrames, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var rank int32
	if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
		return nil, err
	}
	if rank < 3 || rank > 64 {
		return nil, fmt.Errorf("raw frames: bad rank %d", rank)
	}
	dims := make([]int32, rank)
	if err := binary.Read(r, binary.LittleEndian, dims); err != nil {
		return nil, err
	}
	shape := make(Shape, 0, rank-2)
	for _, d := range dims[2:] {
		shape = append(shape, int(d))
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("raw frames: %w", err)
	}
	n, ok := shape.CheckedNumElements()
	if !ok {
		return nil, configErrorf("raw frames: grid shape %v overflows", []int(shape))
	}
	if _, err := checkFrameBudget(int(dims[0]), int(dims[1]), n, 0); err != nil {
		return nil, fmt.Errorf("raw frames: %w", err)
	}
	a := newAnimationFrames(nil, shape, int(dims[0]), int(dims[1]))
	if err := binary.Read(r, binary.LittleEndian, a.Buf); err != nil {
		return nil, err
	}
	return a, nil
}
