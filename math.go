package ascent

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// norm returns the Euclidean norm of a 2D vector.
func norm(x, y float64) float64 {
	return math.Sqrt(float64(x*x) + float64(y*y))
}

// unit returns the unit vector of a given vector.
func unit(a []float64) (b []float64) {
	n := floats.Norm(a, 2)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return make([]float64, len(a))
	}
	b = make([]float64, len(a))
	copy(b, a)
	floats.Scale(1/n, b)
	return
}

// sign returns the sign of a given number.
func sign(v float64) float64 {
	if floats.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// dot performs the inner product via mat64/BLAS.
func dot(a, b []float64) float64 {
	return mat64.Dot(mat64.NewVector(len(a), a), mat64.NewVector(len(b), b))
}

// cross2 returns the z component of the cross product of two planar vectors.
func cross2(a, b []float64) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// LocalBasis returns the radial (normal) and tangential unit vectors at the
// provided position. The tangent is the normal rotated by +90 degrees, so that
// positive pitch angles lean the thrust counter-clockwise.
// A zero position yields NaN components.
func LocalBasis(x, y float64) (nx, ny, tx, ty float64) {
	r := norm(x, y)
	nx = x / r
	ny = y / r
	tx = -ny
	ty = nx
	return
}
