package rotfield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeStridesAndOffset(t *testing.T) {
	s := Shape{2, 3, 4}
	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, []int{12, 4, 1}, s.Strides())

	off, err := s.Offset(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 23, off)

	_, err = s.Offset(1, 2)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = s.Offset(0, 3, 0)
	assert.Error(t, err)
}

func TestShapeValidateCloneEqual(t *testing.T) {
	assert.ErrorIs(t, Shape{}.Validate(), ErrConfiguration)
	assert.ErrorIs(t, Shape{2, 0}.Validate(), ErrConfiguration)
	require.NoError(t, Shape{1}.Validate())

	s := Shape{5, 5}
	c := s.Clone()
	c[0] = 7
	assert.Equal(t, 5, s[0])
	assert.True(t, s.Equal(Shape{5, 5}))
	assert.False(t, s.Equal(c))
	assert.False(t, s.Equal(Shape{5}))
}

func TestShapeCheckedNumElements(t *testing.T) {
	n, ok := Shape{3, 4}.CheckedNumElements()
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = Shape{1 << 20, 1 << 20, 1 << 20, 1 << 20}.CheckedNumElements()
	assert.False(t, ok)
	_, ok = Shape{math.MaxInt, 2}.CheckedNumElements()
	assert.False(t, ok)
	_, ok = Shape{3, -1}.CheckedNumElements()
	assert.False(t, ok)
}
