package rotfield

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-12

var approx = cmpopts.EquateApprox(0, 1e-9)

func requireRowsNear(t *testing.T, want [][]Real, got mat.Matrix) {
	t.Helper()
	if diff := cmp.Diff(want, Rows(got), approx); diff != "" {
		t.Fatalf("matrix mismatch (-want +got):\n%s", diff)
	}
}

// squares maps (x, y) -> (x², y²).
func squares(coords ...[]Real) ([][]Real, bool) {
	if len(coords) != 2 {
		return nil, false
	}
	out := make([][]Real, 2)
	for i, c := range coords {
		out[i] = make([]Real, len(c))
		for p, v := range c {
			out[i][p] = v * v
		}
	}
	return out, true
}

func testCloud(t *testing.T) *PointCloud {
	t.Helper()
	g, err := BuildGrid([]RangeSpec{{Min: -2, Max: 2, Segments: 4}, {Min: -2, Max: 2, Segments: 4}})
	if err != nil {
		t.Fatal(err)
	}
	c, err := EvaluateField(g, squares)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func identitySpec(k, segments int) RotationSpec {
	return RotationSpec{Segments: segments, Transforms: []TransformSpec{{Min: 0, Max: 1, Matrix: IdentityTemplate(k)}}}
}

func planeSpec(t *testing.T, k, a, b, segments int, lo, hi Real) RotationSpec {
	t.Helper()
	tpl, err := PlaneTemplate(k, a, b)
	if err != nil {
		t.Fatal(err)
	}
	return RotationSpec{Segments: segments, Transforms: []TransformSpec{{Min: lo, Max: hi, Matrix: tpl}}}
}

func init() {
	// keep test output quiet
	SetLogger(nil)
	Progress = false
}
