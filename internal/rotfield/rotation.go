package rotfield

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// planeRotation is the k×k identity except the 2×2 block at rows/columns
// (a, b), which is [[cos θ, -sin θ], [sin θ, cos θ]].
func planeRotation(k, a, b int, theta Real) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	M := identity(k)
	M.Set(a, a, c)
	M.Set(a, b, -s)
	M.Set(b, a, s)
	M.Set(b, b, c)
	return M
}

// Camera angles in radians.
type Rot3 struct {
	Elevation, Azimuth, Roll Real
}

// Degrees in JSON (friendlier than radians).
type Rot3Deg struct {
	Elevation Real `json:"elevation"`
	Azimuth   Real `json:"azimuth"`
	Roll      Real `json:"roll"`
}

func (r Rot3Deg) Radians() Rot3 {
	const k = math.Pi / 180
	return Rot3{Elevation: r.Elevation * k, Azimuth: r.Azimuth * k, Roll: r.Roll * k}
}

// Compose camera rotation: azimuth spins around the vertical axis (XY
// plane), elevation tilts toward the viewer (YZ plane), roll spins the
// image (XZ plane).
func rotFromAngles(r Rot3) *mat.Dense {
	var tilt, R mat.Dense
	tilt.Mul(planeRotation(3, 1, 2, r.Elevation), planeRotation(3, 0, 1, r.Azimuth))
	R.Mul(planeRotation(3, 0, 2, r.Roll), &tilt)
	return &R
}
