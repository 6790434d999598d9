package rotfield

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strings"
)

// Field functions below work on the complex plane: the two input arrays are
// the real and imaginary parts, the two outputs likewise. Any other arity
// yields "no result".

func complexMap(f func(z complex128) complex128) FieldFunc {
	return func(coords ...[]Real) ([][]Real, bool) {
		if len(coords) != 2 || len(coords[0]) != len(coords[1]) {
			return nil, false
		}
		re, im := coords[0], coords[1]
		outRe := make([]Real, len(re))
		outIm := make([]Real, len(re))
		for i := range re {
			w := f(complex(re[i], im[i]))
			outRe[i], outIm[i] = real(w), imag(w)
		}
		return [][]Real{outRe, outIm}, true
	}
}

// SimpleComplexSquare maps z -> z².
func SimpleComplexSquare() FieldFunc {
	return complexMap(func(z complex128) complex128 { return z * z })
}

// ComplexSquare maps z -> a·z² + b·z + c.
func ComplexSquare(a, b, c complex128) FieldFunc {
	return complexMap(func(z complex128) complex128 { return a*z*z + b*z + c })
}

// ComplexCubic maps z -> a·w³ + b·w² + c·w + d with w = z - offset.
func ComplexCubic(a, b, c, d, offset complex128) FieldFunc {
	return complexMap(func(z complex128) complex128 {
		w := z - offset
		return a*w*w*w + b*w*w + c*w + d
	})
}

// mandelbrotIterate runs w -> w² + z from w = 0, freezing w once |w| reaches
// bailout.
func mandelbrotIterate(z complex128, bailout Real, iterations int) complex128 {
	var w complex128
	for i := 0; i < iterations; i++ {
		if cmplx.Abs(w) >= bailout {
			break
		}
		w = w*w + z
	}
	return w
}

// Mandelbrot returns the iterated value for points that stay bounded and
// zero for points that escaped.
func Mandelbrot(bailout Real, iterations int) FieldFunc {
	return complexMap(func(z complex128) complex128 {
		w := mandelbrotIterate(z, bailout, iterations)
		if cmplx.Abs(w) >= bailout {
			return 0
		}
		return w
	})
}

// MandelbrotLastBailout keeps the first value that reached the bailout
// radius instead of zeroing it.
func MandelbrotLastBailout(bailout Real, iterations int) FieldFunc {
	return complexMap(func(z complex128) complex128 {
		return mandelbrotIterate(z, bailout, iterations)
	})
}

// FieldCfg selects a field function by name from a JSON config.
type FieldCfg struct {
	Name   string          `json:"name"`
	Params map[string]Real `json:"params,omitempty"`
}

type fieldBuilder func(p fieldParams) FieldFunc

type fieldParams map[string]Real

func (p fieldParams) get(key string, def Real) Real {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// complex parameter from "<key>" (real part) and "<key>i" (imaginary part).
func (p fieldParams) cplx(key string, def complex128) complex128 {
	return complex(p.get(key, real(def)), p.get(key+"i", imag(def)))
}

var fieldRegistry = map[string]fieldBuilder{
	"simple_complex_square": func(fieldParams) FieldFunc { return SimpleComplexSquare() },
	"complex_square": func(p fieldParams) FieldFunc {
		return ComplexSquare(p.cplx("a", 1), p.cplx("b", 0), p.cplx("c", 0))
	},
	"complex_cubic": func(p fieldParams) FieldFunc {
		return ComplexCubic(p.cplx("a", 1), p.cplx("b", 0), p.cplx("c", 0), p.cplx("d", 0), p.cplx("offset", 0))
	},
	"mandelbrot": func(p fieldParams) FieldFunc {
		return Mandelbrot(p.get("bailout", 2), int(p.get("iterations", 250)))
	},
	"mandelbrot_last_bailout": func(p fieldParams) FieldFunc {
		return MandelbrotLastBailout(p.get("bailout", 2), int(p.get("iterations", 250)))
	},
}

// FieldNames lists the registered field function names.
func FieldNames() []string {
	names := make([]string, 0, len(fieldRegistry))
	for k := range fieldRegistry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FieldByName builds a registered field function.
func FieldByName(name string, params map[string]Real) (FieldFunc, error) {
	b, ok := fieldRegistry[name]
	if !ok {
		return nil, configErrorf("unknown field function %q (known: %s)", name, strings.Join(FieldNames(), ", "))
	}
	if it, ok := params["iterations"]; ok && it < 1 {
		return nil, configErrorf("field %s: iterations must be >= 1, got %g", name, it)
	}
	return b(fieldParams(params)), nil
}

// Build resolves the configured field function.
func (fc FieldCfg) Build() (FieldFunc, error) {
	fn, err := FieldByName(fc.Name, fc.Params)
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}
	return fn, nil
}
