package rotfield

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func identity(k int) *mat.Dense {
	M := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		M.Set(i, i, 1)
	}
	return M
}

// DenseFromRows builds a matrix from row slices; all rows must have the
// same length.
func DenseFromRows(rows [][]Real) (*mat.Dense, error) {
	r := len(rows)
	if r == 0 || len(rows[0]) == 0 {
		return nil, dimErrorf("empty matrix")
	}
	c := len(rows[0])
	data := make([]Real, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, dimErrorf("row %d has %d columns, want %d", i, len(row), c)
		}
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data), nil
}

// Rows copies a matrix into row slices.
func Rows(m mat.Matrix) [][]Real {
	r, c := m.Dims()
	out := make([][]Real, r)
	for i := range out {
		out[i] = make([]Real, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// IsOrthonormal reports whether the columns of m are pairwise orthogonal
// unit vectors within tol, i.e. mᵀm ≈ I.
func IsOrthonormal(m mat.Matrix, tol Real) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	var p mat.Dense
	p.Mul(m.T(), m)
	for i := 0; i < c; i++ {
		for j := 0; j < c; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(p.At(i, j)-want) > tol {
				return false
			}
		}
	}
	return true
}
