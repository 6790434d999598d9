package rotfield

import (
	"errors"
	"fmt"
)

// Sentinel errors. Context is added with fmt.Errorf("...: %w", ErrX) and
// callers match with errors.Is. Every message starts with "rotfield:".
var (
	// ErrConfiguration is returned for invalid specifications: segments < 1,
	// empty range or transform lists, unknown output names, oversize buffers.
	ErrConfiguration = errors.New("rotfield: invalid configuration")

	// ErrDimensionMismatch is returned when matrix, basis or point vector
	// sizes disagree. Data is never truncated or padded to make it fit.
	ErrDimensionMismatch = errors.New("rotfield: dimension mismatch")

	// ErrUnknownToken is returned for a transform template cell that is
	// neither a number nor one of cos, -cos, sin, -sin.
	ErrUnknownToken = errors.New("rotfield: unknown template token")

	// ErrState is returned when a result that was never computed is used,
	// e.g. the field function signalled "no result".
	ErrState = errors.New("rotfield: result not computed")
)

// UnknownTokenError identifies the offending template cell.
type UnknownTokenError struct {
	Row, Col int
	Token    any
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("%v %q at row %d, column %d", ErrUnknownToken, fmt.Sprint(e.Token), e.Row, e.Col)
}

func (e *UnknownTokenError) Unwrap() error { return ErrUnknownToken }

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...)
}

func dimErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDimensionMismatch}, args...)...)
}

func stateErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrState}, args...)...)
}

func wrapAxis(err error, i int) error {
	return fmt.Errorf("range %d: %w", i, err)
}
