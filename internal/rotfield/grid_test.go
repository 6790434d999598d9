package rotfield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGrid1D(t *testing.T) {
	g, err := BuildGrid([]RangeSpec{{Min: 0, Max: 1, Segments: 4}})
	require.NoError(t, err)
	require.Equal(t, 1, g.K())
	assert.Equal(t, Shape{5}, g.Shape)
	assert.InDeltaSlice(t, []Real{0, 0.25, 0.5, 0.75, 1}, g.Coords[0], tol)
}

func TestBuildGridMeshIJ(t *testing.T) {
	g, err := BuildGrid([]RangeSpec{
		{Min: -1, Max: 1, Segments: 2},
		{Min: 10, Max: 20, Segments: 1},
	})
	require.NoError(t, err)
	require.Equal(t, 2, g.K())
	assert.Equal(t, Shape{3, 2}, g.Shape)

	// last axis varies fastest
	assert.InDeltaSlice(t, []Real{-1, -1, 0, 0, 1, 1}, g.Coords[0], tol)
	assert.InDeltaSlice(t, []Real{10, 20, 10, 20, 10, 20}, g.Coords[1], tol)

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			off, err := g.Shape.Offset(i, j)
			require.NoError(t, err)
			assert.Equal(t, g.Axes[0][i], g.Coords[0][off])
			assert.Equal(t, g.Axes[1][j], g.Coords[1][off])
		}
	}
}

func TestBuildGridEndpointsExact(t *testing.T) {
	g, err := BuildGrid([]RangeSpec{{Min: -2, Max: 2, Segments: 3}})
	require.NoError(t, err)
	assert.Equal(t, -2.0, g.Axes[0][0])
	assert.Equal(t, 2.0, g.Axes[0][3])
}

func TestBuildGridErrors(t *testing.T) {
	_, err := BuildGrid(nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = BuildGrid([]RangeSpec{{Min: 0, Max: 1, Segments: 2}, {Min: 0, Max: 1, Segments: 0}})
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "range 1")
}

func TestBuildGridRejectsOversizeBeforeAllocating(t *testing.T) {
	huge := make([]RangeSpec, 5)
	for i := range huge {
		huge[i] = RangeSpec{Min: 0, Max: 1, Segments: 1 << 20}
	}
	var err error
	require.NotPanics(t, func() { _, err = BuildGrid(huge) })
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = BuildGrid([]RangeSpec{{Min: 0, Max: 1, Segments: math.MaxInt}})
	assert.ErrorIs(t, err, ErrConfiguration)

	// 2 arrays × 25 points × 8 bytes = 400 bytes
	small := []RangeSpec{{Min: -2, Max: 2, Segments: 4}, {Min: -2, Max: 2, Segments: 4}}
	_, err = BuildGridWithin(small, 399)
	assert.ErrorIs(t, err, ErrConfiguration)
	g, err := BuildGridWithin(small, 400)
	require.NoError(t, err)
	assert.Len(t, g.Coords[1], 25)

	shape, err := CheckGrid(small, 0)
	require.NoError(t, err)
	assert.Equal(t, Shape{5, 5}, shape)
}
