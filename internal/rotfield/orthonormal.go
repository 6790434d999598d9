package rotfield

import (
	"gonum.org/v1/gonum/mat"
)

// Orthonormalize returns the Q factor of a Householder QR decomposition of
// the square matrix m.
//
// The sign convention is pinned: every column of Q whose matching diagonal
// entry of R is negative is negated, so diag(R) >= 0. For a full-rank m this
// makes Q unique, which keeps the chirality of projections reproducible.
func Orthonormalize(m mat.Matrix) (*mat.Dense, error) {
	if m == nil {
		return nil, dimErrorf("nil basis")
	}
	r, c := m.Dims()
	if r == 0 || r != c {
		return nil, dimErrorf("basis must be square and non-empty, got %d×%d", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !isFinite(m.At(i, j)) {
				return nil, configErrorf("basis entry (%d,%d) is not finite", i, j)
			}
		}
	}

	var qr mat.QR
	qr.Factorize(m)
	var q, rr mat.Dense
	qr.QTo(&q)
	qr.RTo(&rr)
	for j := 0; j < c; j++ {
		if rr.At(j, j) >= 0 {
			continue
		}
		for i := 0; i < r; i++ {
			q.Set(i, j, -q.At(i, j))
		}
	}
	return &q, nil
}

// BasisSweep rotates one basis vector within a coordinate plane through an
// angle range.
type BasisSweep struct {
	RotateVector   int    `json:"rotateVector"`
	RotateElements [2]int `json:"rotateElements"`
	Min            Real   `json:"min"`
	Max            Real   `json:"max"`
	Segments       int    `json:"segments"`
}

// Validate checks the sweep against a k-vector basis.
func (s BasisSweep) Validate(k int) error {
	if s.Segments < 1 {
		return configErrorf("basis sweep segments must be >= 1, got %d", s.Segments)
	}
	if !isFinite(s.Min) || !isFinite(s.Max) {
		return configErrorf("basis sweep angles must be finite")
	}
	if s.RotateVector < 0 || s.RotateVector >= k {
		return dimErrorf("rotate vector %d out of range for %d vectors", s.RotateVector, k)
	}
	a, b := s.RotateElements[0], s.RotateElements[1]
	if a < 0 || b < 0 || a >= k || b >= k || a == b {
		return dimErrorf("rotate elements (%d, %d) invalid for %d-element vectors", a, b, k)
	}
	return nil
}

// BasisSequence is a k×k×F sequence of bases. Column j of each frame is
// basis vector j.
type BasisSequence struct {
	Angles      []Real
	Orthonormal []*mat.Dense
	Raw         []*mat.Dense // rotated, before orthonormalization
}

// Len returns F.
func (b *BasisSequence) Len() int { return len(b.Orthonormal) }

// BasisMatrix places the given vectors into the columns of a k×k matrix.
func BasisMatrix(vectors [][]Real) (*mat.Dense, error) {
	k := len(vectors)
	if k == 0 {
		return nil, dimErrorf("empty basis")
	}
	m := mat.NewDense(k, k, nil)
	for j, v := range vectors {
		if len(v) != k {
			return nil, dimErrorf("basis vector %d has %d elements, want %d", j, len(v), k)
		}
		m.SetCol(j, v)
	}
	return m, nil
}

// SweepBasis replicates the basis over F = Segments+1 frames, rotates the
// designated vector by each frame's angle in the chosen plane, and
// orthonormalizes every frame independently.
func SweepBasis(vectors [][]Real, sweep BasisSweep) (*BasisSequence, error) {
	base, err := BasisMatrix(vectors)
	if err != nil {
		return nil, err
	}
	k := len(vectors)
	if err := sweep.Validate(k); err != nil {
		return nil, err
	}

	angles := linspace(sweep.Min, sweep.Max, sweep.Segments+1)
	seq := &BasisSequence{
		Angles:      angles,
		Orthonormal: make([]*mat.Dense, len(angles)),
		Raw:         make([]*mat.Dense, len(angles)),
	}
	col := mat.NewVecDense(k, nil)
	rotated := mat.NewVecDense(k, nil)
	for f, theta := range angles {
		raw := mat.DenseCopyOf(base)
		col.CopyVec(base.ColView(sweep.RotateVector))
		rotated.MulVec(planeRotation(k, sweep.RotateElements[0], sweep.RotateElements[1], theta), col)
		raw.SetCol(sweep.RotateVector, rotated.RawVector().Data)

		q, err := Orthonormalize(raw)
		if err != nil {
			return nil, err
		}
		seq.Raw[f] = raw
		seq.Orthonormal[f] = q
	}
	DebugLogOnce("Swept basis frame 0 orthonormal: %v", IsOrthonormal(seq.Orthonormal[0], orthoTol))
	DebugLog("Swept basis: k=%d, vector=%d, plane=%v, frames=%d", k, sweep.RotateVector, sweep.RotateElements, len(angles))
	return seq, nil
}
