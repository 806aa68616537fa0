package ascent

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	eccentricityε = 5e-5 // below this, an orbit is considered circular
)

// Orbit2D describes the osculating orbit of a planar state about a planet.
type Orbit2D struct {
	R, V   *mat64.Vector
	Origin PlanetModel
}

// NewOrbit2D returns the osculating orbit of the provided position and velocity.
func NewOrbit2D(p PlanetModel, x, y, vx, vy float64) *Orbit2D {
	return &Orbit2D{mat64.NewVector(2, []float64{x, y}), mat64.NewVector(2, []float64{vx, vy}), p}
}

// RNorm returns the distance to the planet center.
func (o Orbit2D) RNorm() float64 {
	return mat64.Norm(o.R, 2)
}

// VNorm returns the speed.
func (o Orbit2D) VNorm() float64 {
	return mat64.Norm(o.V, 2)
}

// Altitude returns the altitude above the planet radius.
func (o Orbit2D) Altitude() float64 {
	return o.RNorm() - o.Origin.Radius
}

// Energy returns the specific mechanical energy ξ.
func (o Orbit2D) Energy() float64 {
	return mat64.Dot(o.V, o.V)/2 - o.Origin.GM()/o.RNorm()
}

// H returns the specific angular momentum (positive counter-clockwise).
func (o Orbit2D) H() float64 {
	return cross2(o.R.RawVector().Data, o.V.RawVector().Data)
}

// RadialSpeed returns the component of the velocity along the position.
func (o Orbit2D) RadialSpeed() float64 {
	return dot(o.V.RawVector().Data, unit(o.R.RawVector().Data))
}

// EccentricityVec returns the eccentricity vector, which points to periapsis.
func (o Orbit2D) EccentricityVec() *mat64.Vector {
	μ := o.Origin.GM()
	r := o.RNorm()
	e := mat64.NewVector(2, nil)
	// e = ((v² - μ/r) R - (R·V) V) / μ
	tmp := mat64.NewVector(2, nil)
	e.ScaleVec(mat64.Dot(o.V, o.V)-μ/r, o.R)
	tmp.ScaleVec(mat64.Dot(o.R, o.V), o.V)
	e.SubVec(e, tmp)
	e.ScaleVec(1/μ, e)
	return e
}

// Eccentricity returns the eccentricity.
func (o Orbit2D) Eccentricity() float64 {
	return mat64.Norm(o.EccentricityVec(), 2)
}

// SemiMajorAxis returns the semi major axis, which is negative on escape
// trajectories.
func (o Orbit2D) SemiMajorAxis() float64 {
	return -o.Origin.GM() / (2 * o.Energy())
}

// IsBound returns whether this orbit is closed.
func (o Orbit2D) IsBound() bool {
	return o.Energy() < 0
}

// IsCircular returns whether this orbit is circular within eccentricityε.
func (o Orbit2D) IsCircular() bool {
	return floats.EqualWithinAbs(o.Eccentricity(), 0, eccentricityε)
}

// ApoapsisAltitude returns the apoapsis altitude, or +Inf if not bound.
func (o Orbit2D) ApoapsisAltitude() float64 {
	if !o.IsBound() {
		return math.Inf(1)
	}
	return o.SemiMajorAxis()*(1+o.Eccentricity()) - o.Origin.Radius
}

// PeriapsisAltitude returns the periapsis altitude. A negative value means the
// trajectory intersects the planet.
func (o Orbit2D) PeriapsisAltitude() float64 {
	h := o.H()
	// p = h²/μ holds for all conics.
	return h*h/o.Origin.GM()/(1+o.Eccentricity()) - o.Origin.Radius
}

// CircularSpeed returns the speed of a circular orbit at the current radius.
func (o Orbit2D) CircularSpeed() float64 {
	return math.Sqrt(o.Origin.GM() / o.RNorm())
}

// Direction returns +1 for prograde (counter-clockwise) motion and -1 otherwise.
func (o Orbit2D) Direction() float64 {
	return sign(o.H())
}

// String implements the Stringer interface.
func (o Orbit2D) String() string {
	return fmt.Sprintf("alt=%.3f km v=%.3f m/s e=%.5f peri=%.3f km apo=%.3f km", o.Altitude()/1e3, o.VNorm(), o.Eccentricity(), o.PeriapsisAltitude()/1e3, o.ApoapsisAltitude()/1e3)
}
