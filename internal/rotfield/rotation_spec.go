package rotfield

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// TransformSpec sweeps one angle from Min to Max (radians) through a
// transform template.
type TransformSpec struct {
	Min    Real     `json:"min"`
	Max    Real     `json:"max"`
	Matrix Template `json:"transform"`
}

// RotationSpec is an ordered list of transforms sharing one frame count.
// Order matters: frame f composes Transforms[0] · Transforms[1] · ...
type RotationSpec struct {
	Segments   int             `json:"segments"`
	Transforms []TransformSpec `json:"transforms"`
}

// Frames returns F = Segments+1.
func (s RotationSpec) Frames() int { return s.Segments + 1 }

// Validate checks segments, template shapes and that every transform has
// the same size. It returns k.
func (s RotationSpec) Validate() (int, error) {
	if s.Segments < 1 {
		return 0, configErrorf("rotation segments must be >= 1, got %d", s.Segments)
	}
	if len(s.Transforms) == 0 {
		return 0, configErrorf("rotation has no transforms")
	}
	k := 0
	for i, tr := range s.Transforms {
		if err := tr.Matrix.Validate(); err != nil {
			return 0, fmt.Errorf("transform %d: %w", i, err)
		}
		if !isFinite(tr.Min) || !isFinite(tr.Max) {
			return 0, configErrorf("transform %d: angles must be finite", i)
		}
		if i == 0 {
			k = tr.Matrix.Size()
		} else if tr.Matrix.Size() != k {
			return 0, dimErrorf("transform %d is %d×%d, transform 0 is %d×%d", i, tr.Matrix.Size(), tr.Matrix.Size(), k, k)
		}
	}
	return k, nil
}

// RotatorSequence is a k×k×F tensor: one rotation matrix per frame.
type RotatorSequence struct {
	K      int
	Angles []Real
	Frames []*mat.Dense
}

// Len returns F.
func (r *RotatorSequence) Len() int { return len(r.Frames) }

// At returns the matrix of frame f.
func (r *RotatorSequence) At(f int) *mat.Dense { return r.Frames[f] }

// CompileTransform evaluates one template over frames angles.
func CompileTransform(t Template, angles []Real) (*RotatorSequence, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	k := t.Size()
	seq := &RotatorSequence{
		K:      k,
		Angles: append([]Real(nil), angles...),
		Frames: make([]*mat.Dense, len(angles)),
	}
	for f := range angles {
		seq.Frames[f] = mat.NewDense(k, k, nil)
	}
	for i, row := range t {
		for j, c := range row {
			if c.Kind == CellLiteral {
				for f := range angles {
					seq.Frames[f].Set(i, j, c.Value)
				}
				continue
			}
			for f, theta := range angles {
				seq.Frames[f].Set(i, j, c.Eval(theta))
			}
		}
	}
	return seq, nil
}

// CompileRotation compiles every transform of the spec into a rotator
// sequence, in spec order.
func CompileRotation(spec RotationSpec) ([]*RotatorSequence, error) {
	k, err := spec.Validate()
	if err != nil {
		return nil, err
	}
	n := spec.Frames()
	seqs := make([]*RotatorSequence, len(spec.Transforms))
	for i, tr := range spec.Transforms {
		seq, err := CompileTransform(tr.Matrix, linspace(tr.Min, tr.Max, n))
		if err != nil {
			return nil, fmt.Errorf("transform %d: %w", i, err)
		}
		seqs[i] = seq
	}
	DebugLog("Compiled rotation: transforms=%d, k=%d, frames=%d", len(seqs), k, n)
	return seqs, nil
}
