package rotfield

import (
	"gonum.org/v1/gonum/mat"
)

// FieldFunc is the pluggable field function. It is called with exactly K
// flat coordinate arrays of equal length and returns the output channels,
// each shaped like the inputs. Returning ok == false signals "no result",
// which field functions use for an arity they do not support.
type FieldFunc func(coords ...[]Real) (out [][]Real, ok bool)

// PointCloud holds D layers over a shared grid: the K input coordinate
// layers followed by the field function outputs.
type PointCloud struct {
	Ranges []RangeSpec
	Shape  Shape
	Layers [][]Real
}

// Dims returns the point vector length D and the number of grid points N.
func (c *PointCloud) Dims() (int, int) {
	if c == nil || len(c.Layers) == 0 {
		return 0, 0
	}
	return len(c.Layers), len(c.Layers[0])
}

// Matrix copies the cloud into a D×N matrix, one point vector per column.
func (c *PointCloud) Matrix() *mat.Dense {
	d, n := c.Dims()
	data := make([]Real, 0, d*n)
	for _, l := range c.Layers {
		data = append(data, l...)
	}
	return mat.NewDense(d, n, data)
}

// Point returns the D-vector at a grid position.
func (c *PointCloud) Point(idx ...int) ([]Real, error) {
	off, err := c.Shape.Offset(idx...)
	if err != nil {
		return nil, err
	}
	v := make([]Real, len(c.Layers))
	for d, l := range c.Layers {
		v[d] = l[off]
	}
	return v, nil
}

// EvaluateField applies fn to the grid and stacks the input coordinates and
// the outputs into one point cloud.
func EvaluateField(g *Grid, fn FieldFunc) (*PointCloud, error) {
	if g == nil || len(g.Coords) == 0 {
		return nil, stateErrorf("no coordinate grid")
	}
	if fn == nil {
		return nil, configErrorf("nil field function")
	}
	n := g.Shape.NumElements()
	out, ok := fn(g.Coords...)
	if !ok {
		return nil, stateErrorf("field function returned no result for %d input arrays", g.K())
	}
	layers := make([][]Real, 0, g.K()+len(out))
	layers = append(layers, g.Coords...)
	for i, o := range out {
		if len(o) != n {
			return nil, dimErrorf("field output %d has %d values, grid has %d points", i, len(o), n)
		}
		if lo, hi, ok := layerRange(o); ok {
			DebugLog("Field output %d range: [%g, %g]", i, lo, hi)
		} else {
			DebugLog("Field output %d has no finite values", i)
		}
		layers = append(layers, o)
	}
	DebugLog("Evaluated field: inputs=%d, outputs=%d, points=%d", g.K(), len(out), n)
	return &PointCloud{
		Ranges: g.Ranges,
		Shape:  g.Shape.Clone(),
		Layers: layers,
	}, nil
}
