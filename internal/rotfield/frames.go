package rotfield

import (
	"gonum.org/v1/gonum/mat"
)

// AnimationFrames is the (F, D, *gridShape) frame tensor. Frame 0 belongs to
// the minimum swept angles and frame F-1 to the maximum.
type AnimationFrames struct {
	Ranges []RangeSpec
	Shape  Shape // grid shape
	F, D   int
	Buf    []Real // flat: ((f*D)+d)*N + p, p is the row-major grid offset

	n       int
	strideF int
}

func newAnimationFrames(ranges []RangeSpec, shape Shape, nf, nd int) *AnimationFrames {
	n := shape.NumElements()
	return &AnimationFrames{
		Ranges:  ranges,
		Shape:   shape.Clone(),
		F:       nf,
		D:       nd,
		Buf:     make([]Real, nf*nd*n),
		n:       n,
		strideF: nd * n,
	}
}

// N returns the number of grid points.
func (a *AnimationFrames) N() int { return a.n }

// TensorShape returns (F, D, *gridShape).
func (a *AnimationFrames) TensorShape() []int {
	return append([]int{a.F, a.D}, a.Shape...)
}

func (a *AnimationFrames) idx(f, d, p int) int { return f*a.strideF + d*a.n + p }

// Frame returns frame f as a D×N matrix sharing the underlying buffer.
func (a *AnimationFrames) Frame(f int) *mat.Dense {
	return mat.NewDense(a.D, a.n, a.Buf[f*a.strideF:(f+1)*a.strideF])
}

// Layer returns layer d of frame f as a flat row-major slice of the grid.
// The slice aliases the buffer.
func (a *AnimationFrames) Layer(f, d int) []Real {
	base := a.idx(f, d, 0)
	return a.Buf[base : base+a.n : base+a.n]
}

// At returns one coordinate of one point of one frame.
func (a *AnimationFrames) At(f, d int, idx ...int) (Real, error) {
	if f < 0 || f >= a.F || d < 0 || d >= a.D {
		return 0, dimErrorf("frame %d layer %d outside (%d, %d)", f, d, a.F, a.D)
	}
	p, err := a.Shape.Offset(idx...)
	if err != nil {
		return 0, err
	}
	return a.Buf[a.idx(f, d, p)], nil
}
