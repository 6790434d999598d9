package rotfield

import (
	"math"
)

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// layerRange returns the min and max of a layer, ignoring non-finite values.
// ok is false when no finite value exists.
func layerRange(v []Real) (lo, hi Real, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if !isFinite(x) {
			continue
		}
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi, lo <= hi
}
