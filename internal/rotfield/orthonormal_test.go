package rotfield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestOrthonormalizeSignConvention(t *testing.T) {
	m := mat.NewDense(3, 3, []Real{
		-2, 1, 0,
		1, -3, 1,
		0, 1, 4,
	})
	q, err := Orthonormalize(m)
	require.NoError(t, err)
	require.True(t, IsOrthonormal(q, 1e-12))

	// R = Qᵀ·M must be upper triangular with a non-negative diagonal
	var r mat.Dense
	r.Mul(q.T(), m)
	for i := 0; i < 3; i++ {
		assert.GreaterOrEqual(t, r.At(i, i), 0.0, "R[%d][%d]", i, i)
		for j := 0; j < i; j++ {
			assert.InDelta(t, 0, r.At(i, j), 1e-12, "R[%d][%d]", i, j)
		}
	}
}

func TestOrthonormalizeErrors(t *testing.T) {
	_, err := Orthonormalize(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Orthonormalize(mat.NewDense(2, 2, []Real{1, math.NaN(), 0, 1}))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestSweepBasisQuarterTurn(t *testing.T) {
	seq, err := SweepBasis([][]Real{{1, 0}, {0, 1}}, BasisSweep{
		RotateVector:   0,
		RotateElements: [2]int{0, 1},
		Min:            0,
		Max:            math.Pi / 2,
		Segments:       1,
	})
	require.NoError(t, err)
	require.Equal(t, 2, seq.Len())

	requireRowsNear(t, [][]Real{{1, 0}, {0, 1}}, seq.Orthonormal[0])

	// the rotated vector now coincides with vector 1
	raw := seq.Raw[1]
	assert.InDelta(t, 0, raw.At(0, 0), 1e-12)
	assert.InDelta(t, 1, raw.At(1, 0), 1e-12)

	q := seq.Orthonormal[1]
	assert.InDelta(t, 0, math.Abs(q.At(0, 0)), 1e-9)
	assert.InDelta(t, 1, math.Abs(q.At(1, 0)), 1e-9)
	for f := 0; f < seq.Len(); f++ {
		assert.True(t, IsOrthonormal(seq.Orthonormal[f], 1e-9), "frame %d", f)
	}
}

func TestSweepBasisEveryFrameOrthonormal(t *testing.T) {
	vectors := [][]Real{{1, 0.5, 0}, {0.2, 1, 0.1}, {0, 0.3, 2}}
	seq, err := SweepBasis(vectors, BasisSweep{RotateVector: 2, RotateElements: [2]int{0, 2}, Min: -1, Max: 1, Segments: 8})
	require.NoError(t, err)
	require.Equal(t, 9, seq.Len())
	for f := 0; f < seq.Len(); f++ {
		assert.True(t, IsOrthonormal(seq.Orthonormal[f], 1e-9), "frame %d", f)
	}
	// untouched vectors keep their values in the raw sequence
	assert.Equal(t, mat.Col(nil, 0, seq.Raw[4]), vectors[0])
}

func TestComposedInverseSweepRestoresBasis(t *testing.T) {
	vectors := [][]Real{{2, 1, 0}, {0, 1, 1}, {1, 0, 3}}
	base, err := BasisMatrix(vectors)
	require.NoError(t, err)
	want, err := Orthonormalize(base)
	require.NoError(t, err)

	tpl, err := PlaneTemplate(3, 0, 2)
	require.NoError(t, err)
	spec := RotationSpec{Segments: 3, Transforms: []TransformSpec{
		{Min: 0.2, Max: 1.3, Matrix: tpl},
		{Min: -0.2, Max: -1.3, Matrix: tpl},
	}}
	seqs, err := CompileRotation(spec)
	require.NoError(t, err)

	comp, err := Compose(seqs, nil)
	require.NoError(t, err)
	require.Equal(t, 4, comp.Len())
	for f, m := range comp.Frames {
		assert.True(t, mat.EqualApprox(m, identity(3), 1e-12), "frame %d", f)

		var got mat.Dense
		got.Mul(want, m)
		assert.True(t, mat.EqualApprox(&got, want, 1e-12), "frame %d", f)
	}

	withBasis, err := Compose(seqs, base)
	require.NoError(t, err)
	for _, m := range withBasis.Frames {
		requireRowsNear(t, Rows(want), m)
	}
}

func TestSweepBasisValidation(t *testing.T) {
	id := [][]Real{{1, 0}, {0, 1}}
	_, err := SweepBasis(id, BasisSweep{RotateElements: [2]int{0, 1}, Segments: 0})
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = SweepBasis(id, BasisSweep{RotateVector: 2, RotateElements: [2]int{0, 1}, Segments: 1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = SweepBasis(id, BasisSweep{RotateElements: [2]int{1, 1}, Segments: 1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = SweepBasis([][]Real{{1, 0}, {0}}, BasisSweep{RotateElements: [2]int{0, 1}, Segments: 1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = SweepBasis(nil, BasisSweep{Segments: 1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestBasisMatrixColumns(t *testing.T) {
	m, err := BasisMatrix([][]Real{{1, 2}, {3, 4}})
	require.NoError(t, err)
	requireRowsNear(t, [][]Real{{1, 3}, {2, 4}}, m)
}
