package rotfield

import (
	"encoding/json"
	"fmt"
	"math"
)

// CellKind tags a transform template cell.
type CellKind uint8

const (
	CellLiteral CellKind = iota // constant across frames
	CellCos                     // cos θ
	CellNegCos                  // -cos θ
	CellSin                     // sin θ
	CellNegSin                  // -sin θ
)

var cellTokens = map[string]CellKind{
	"cos":  CellCos,
	"-cos": CellNegCos,
	"sin":  CellSin,
	"-sin": CellNegSin,
}

func (k CellKind) String() string {
	switch k {
	case CellCos:
		return "cos"
	case CellNegCos:
		return "-cos"
	case CellSin:
		return "sin"
	case CellNegSin:
		return "-sin"
	}
	return "literal"
}

// Cell is one entry of a transform template: a number, or a trig function
// of the frame's swept angle.
type Cell struct {
	Kind  CellKind
	Value Real // only for CellLiteral
}

// Lit returns a literal cell.
func Lit(v Real) Cell { return Cell{Kind: CellLiteral, Value: v} }

// Eval returns the cell value for angle theta.
func (c Cell) Eval(theta Real) Real {
	switch c.Kind {
	case CellCos:
		return math.Cos(theta)
	case CellNegCos:
		return -math.Cos(theta)
	case CellSin:
		return math.Sin(theta)
	case CellNegSin:
		return -math.Sin(theta)
	}
	return c.Value
}

// ParseCell converts a decoded JSON value (number or token string) into a
// cell. row and col only label the error.
func ParseCell(v any, row, col int) (Cell, error) {
	switch x := v.(type) {
	case float64:
		if !isFinite(x) {
			return Cell{}, &UnknownTokenError{Row: row, Col: col, Token: x}
		}
		return Lit(x), nil
	case int:
		return Lit(Real(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil || !isFinite(f) {
			return Cell{}, &UnknownTokenError{Row: row, Col: col, Token: string(x)}
		}
		return Lit(f), nil
	case string:
		if k, ok := cellTokens[x]; ok {
			return Cell{Kind: k}, nil
		}
	case Cell:
		return x, nil
	}
	return Cell{}, &UnknownTokenError{Row: row, Col: col, Token: v}
}

// Template is a square k×k matrix of cells.
type Template [][]Cell

// ParseTemplate validates raw rows (numbers and tokens) into a template.
func ParseTemplate(rows [][]any) (Template, error) {
	t := make(Template, len(rows))
	for i, row := range rows {
		t[i] = make([]Cell, len(row))
		for j, v := range row {
			c, err := ParseCell(v, i, j)
			if err != nil {
				return nil, err
			}
			t[i][j] = c
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustTemplate is ParseTemplate that panics; for literals in code and tests.
func MustTemplate(rows ...[]any) Template {
	t, err := ParseTemplate(rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Size returns k.
func (t Template) Size() int { return len(t) }

// Validate checks that the template is square and non-empty.
func (t Template) Validate() error {
	k := len(t)
	if k == 0 {
		return dimErrorf("empty transform matrix")
	}
	for i, row := range t {
		if len(row) != k {
			return dimErrorf("transform matrix row %d has %d columns, want %d", i, len(row), k)
		}
	}
	return nil
}

// UnmarshalJSON decodes rows of numbers and token strings, rejecting
// unknown tokens at load time.
func (t *Template) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var rows [][]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("transform matrix: %w", err)
	}
	parsed, err := ParseTemplate(rows)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON writes literals as numbers and trig cells as tokens.
func (t Template) MarshalJSON() ([]byte, error) {
	rows := make([][]any, len(t))
	for i, row := range t {
		rows[i] = make([]any, len(row))
		for j, c := range row {
			if c.Kind == CellLiteral {
				rows[i][j] = c.Value
			} else {
				rows[i][j] = c.Kind.String()
			}
		}
	}
	return json.Marshal(rows)
}

// IdentityTemplate returns the k×k identity.
func IdentityTemplate(k int) Template {
	t := make(Template, k)
	for i := range t {
		t[i] = make([]Cell, k)
		t[i][i] = Lit(1)
	}
	return t
}

// PlaneTemplate is the rotation in the (a, b) coordinate plane of a k-dim
// space: identity except [[cos, -sin], [sin, cos]] at rows/columns a, b.
func PlaneTemplate(k, a, b int) (Template, error) {
	if a < 0 || b < 0 || a >= k || b >= k || a == b {
		return nil, dimErrorf("rotation plane (%d, %d) invalid for %d dimensions", a, b, k)
	}
	t := IdentityTemplate(k)
	t[a][a], t[a][b] = Cell{Kind: CellCos}, Cell{Kind: CellNegSin}
	t[b][a], t[b][b] = Cell{Kind: CellSin}, Cell{Kind: CellCos}
	return t, nil
}
