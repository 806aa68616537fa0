package ascent

import "math"

// RocketState is the kinematic state handed to the integrator on each tick.
// The basis vectors N and T are trusted to be orthonormal: they are not
// derived from the position (cf. LocalBasis).
type RocketState struct {
	Mass   float64 // kg, must be strictly positive
	VX, VY float64 // m/s
	X, Y   float64 // m, relative to the planet center
	Angle  float64 // body pitch in degrees: 0 along N, 90 along T
	NX, NY float64 // radial unit vector
	TX, TY float64 // tangential unit vector
}

// IntegrationResult is the state after one integration step.
type IntegrationResult struct {
	VX, VY float64
	X, Y   float64
	Speed  float64
}

// Float64s returns the result as [vx, vy, x, y, speed].
func (r IntegrationResult) Float64s() [5]float64 {
	return [5]float64{r.VX, r.VY, r.X, r.Y, r.Speed}
}

// Integrate advances the state by one semi-implicit Euler step of dt seconds
// under the provided thrust (in Newtons) and the gravity of the planet.
// The position is advanced with the updated velocity.
// Zero mass or a zero position vector yield Inf or NaN, they are not checked.
func Integrate(p PlanetModel, s RocketState, thrust, dt float64) IntegrationResult {
	// Every product is rounded explicitly so that no multiply-add gets fused,
	// which keeps trajectories identical across architectures.
	angleRad := float64(s.Angle*math.Pi) / 180.0
	cosAngle := math.Cos(angleRad)
	sinAngle := math.Sin(angleRad)

	thrustX := thrust * (float64(cosAngle*s.NX) + float64(sinAngle*s.TX))
	thrustY := thrust * (float64(cosAngle*s.NY) + float64(sinAngle*s.TY))

	r := math.Sqrt(float64(s.X*s.X) + float64(s.Y*s.Y))
	gravity := float64(p.G*p.Mass) / float64(r*r)
	gx := -gravity * s.NX
	gy := -gravity * s.NY

	ax := thrustX/s.Mass + gx
	ay := thrustY/s.Mass + gy

	vx := s.VX + float64(ax*dt)
	vy := s.VY + float64(ay*dt)

	x := s.X + float64(vx*dt)
	y := s.Y + float64(vy*dt)

	return IntegrationResult{
		VX:    vx,
		VY:    vy,
		X:     x,
		Y:     y,
		Speed: math.Sqrt(float64(vx*vx) + float64(vy*vy)),
	}
}

// UpdateRocketState is the flat entry point of Integrate, bound to the Earth.
func UpdateRocketState(mass, vx, vy, x, y, thrust, nx, ny, tx, ty, angleDeg, dt float64) IntegrationResult {
	return Integrate(Earth, RocketState{
		Mass:  mass,
		VX:    vx,
		VY:    vy,
		X:     x,
		Y:     y,
		Angle: angleDeg,
		NX:    nx,
		NY:    ny,
		TX:    tx,
		TY:    ty,
	}, thrust, dt)
}
