package rotfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewResolveDefaults(t *testing.T) {
	v, err := View{}.Resolve(4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, v.Axes)
	require.NotNil(t, v.Color)
	assert.Equal(t, 3, *v.Color)

	v, err = View{}.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, v.Axes)

	_, err = View{}.Resolve(1)
	assert.ErrorIs(t, err, ErrConfiguration)

	c := 5
	assert.ErrorIs(t, View{Color: &c}.Validate(4), ErrDimensionMismatch)
	assert.ErrorIs(t, View{Axes: []int{0, 1, 2, 3}}.Validate(4), ErrConfiguration)
}

func TestRainbowEnds(t *testing.T) {
	assert.Equal(t, RGB{1, 0, 0}, rainbow(1))
	assert.Equal(t, RGB{0.5, 0, 1}, rainbow(0))
	assert.Equal(t, rainbow(1), rainbow(7))
}

func TestRasterizeNearestWins(t *testing.T) {
	b := bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1, MinC: 0, MaxC: 1}
	pts := []screenPoint{
		{X: 0, Y: 1, Depth: 0, C: 0},
		{X: 0, Y: 1, Depth: 2, C: 1}, // same pixel, nearer
		{X: 1, Y: 0, Depth: 0, C: 0},
	}
	r := rasterize(pts, b, 4, 4)
	// top-left and bottom-right pixels
	assert.True(t, r.hit[0])
	assert.Equal(t, RGB{1, 0, 0}, r.Pix[0])
	assert.True(t, r.hit[15])
	assert.Equal(t, 2, countHits(r))
}

func countHits(r *raster) int {
	n := 0
	for _, h := range r.hit {
		if h {
			n++
		}
	}
	return n
}

func TestProjectSharedBounds(t *testing.T) {
	a := tinyFrames(t)
	pr, err := project(a, View{Axes: []int{0, 1}})
	require.NoError(t, err)
	require.Len(t, pr.Frames, a.F)
	for _, pts := range pr.Frames {
		for _, p := range pts {
			assert.GreaterOrEqual(t, p.X, pr.Bounds.MinX)
			assert.LessOrEqual(t, p.X, pr.Bounds.MaxX)
			assert.Equal(t, 0.0, p.Depth)
		}
	}

	_, err = project(a, View{}, a.F)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = project(nil, View{})
	assert.ErrorIs(t, err, ErrState)
}
