package rotfield

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownTokenErrorUnwraps(t *testing.T) {
	_, err := ParseCell("tan", 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownToken)

	var ute *UnknownTokenError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, 1, ute.Row)
	assert.Equal(t, 2, ute.Col)
	assert.Equal(t, "tan", ute.Token)
	assert.Contains(t, err.Error(), `"tan"`)
}

func TestErrorHelpersWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, configErrorf("x %d", 1), ErrConfiguration)
	assert.ErrorIs(t, dimErrorf("x"), ErrDimensionMismatch)
	assert.ErrorIs(t, stateErrorf("x"), ErrState)

	err := wrapAxis(configErrorf("bad"), 3)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "range 3")
}
