package rotfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalAt(t *testing.T, fn FieldFunc, re, im Real) (Real, Real) {
	t.Helper()
	out, ok := fn([]Real{re}, []Real{im})
	require.True(t, ok)
	require.Len(t, out, 2)
	return out[0][0], out[1][0]
}

func TestComplexMaps(t *testing.T) {
	re, im := evalAt(t, SimpleComplexSquare(), 1, 1) // (1+i)² = 2i
	assert.InDelta(t, 0, re, tol)
	assert.InDelta(t, 2, im, tol)

	re, im = evalAt(t, ComplexSquare(2, 1, complex(0, 1)), 1, 0) // 2 + 1 + i
	assert.InDelta(t, 3, re, tol)
	assert.InDelta(t, 1, im, tol)

	re, im = evalAt(t, ComplexCubic(1, 0, 0, 0, 1), 3, 0) // (3-1)³
	assert.InDelta(t, 8, re, tol)
	assert.InDelta(t, 0, im, tol)

	_, ok := SimpleComplexSquare()([]Real{1})
	assert.False(t, ok)
}

func TestMandelbrotEscapedPointsAreZeroed(t *testing.T) {
	fn := Mandelbrot(2, 50)
	re, im := evalAt(t, fn, 0, 0)
	assert.Equal(t, 0.0, re)
	assert.Equal(t, 0.0, im)

	re, im = evalAt(t, fn, 3, 0)
	assert.Equal(t, 0.0, re)
	assert.Equal(t, 0.0, im)

	// -1 cycles 0, -1, 0, -1 and stays bounded
	re, _ = evalAt(t, fn, -1, 0)
	assert.InDelta(t, 0, re, tol)

	re, _ = evalAt(t, MandelbrotLastBailout(2, 50), 3, 0)
	assert.InDelta(t, 3, re, tol)
}

func TestFieldByName(t *testing.T) {
	names := FieldNames()
	assert.Contains(t, names, "complex_square")
	assert.IsIncreasing(t, names)

	fn, err := FieldByName("complex_square", map[string]Real{"c": 1, "ci": -1})
	require.NoError(t, err)
	re, im := evalAt(t, fn, 0, 0)
	assert.InDelta(t, 1, re, tol)
	assert.InDelta(t, -1, im, tol)

	_, err = FieldByName("julia", nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = FieldByName("mandelbrot", map[string]Real{"iterations": 0})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = FieldCfg{Name: "nope"}.Build()
	assert.ErrorIs(t, err, ErrConfiguration)
}
