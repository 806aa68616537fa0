package ascent

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestIntegrateStraightLine(t *testing.T) {
	s := RocketState{Mass: 1500, VX: 120, VY: -35, X: 1e6, Y: 7e6, Angle: 33, NX: 1e6 / norm(1e6, 7e6), NY: 7e6 / norm(1e6, 7e6)}
	s.TX, s.TY = -s.NY, s.NX
	for _, dt := range []float64{0.01, 0.1, 1, 10} {
		rslt := Integrate(noGravity, s, 0, dt)
		if rslt.VX != s.VX || rslt.VY != s.VY {
			t.Fatalf("velocity changed without thrust nor gravity: (%f, %f)", rslt.VX, rslt.VY)
		}
		if rslt.X != s.X+float64(s.VX*dt) || rslt.Y != s.Y+float64(s.VY*dt) {
			t.Fatalf("not a straight line for dt=%f: (%f, %f)", dt, rslt.X, rslt.Y)
		}
		if rslt.Speed != norm(s.VX, s.VY) {
			t.Fatalf("incorrect speed %f", rslt.Speed)
		}
	}
}

func TestIntegrateFreeFall(t *testing.T) {
	for _, r := range []float64{EarthRadius, EarthRadius + 200e3, 42164e3} {
		dt := 0.01
		s := RocketState{Mass: 1000, Y: r, NY: 1, TX: -1}
		rslt := Integrate(Earth, s, 0, dt)
		exp := Earth.GM() / (r * r) * dt
		if !floats.EqualWithinRel(rslt.Speed, exp, 1e-12) {
			t.Fatalf("r=%f: speed=%e expected %e", r, rslt.Speed, exp)
		}
		if rslt.VX != 0 || rslt.VY >= 0 {
			t.Fatalf("r=%f: free fall is not toward the center: (%e, %e)", r, rslt.VX, rslt.VY)
		}
		if !floats.EqualWithinAbs(rslt.Y, r-exp*dt, 1e-6) {
			t.Fatalf("r=%f: y=%f expected %f", r, rslt.Y, r-exp*dt)
		}
	}
}

func TestIntegrateThrustDecomposition(t *testing.T) {
	// Off axis basis: n=(0.6, 0.8), t=(-0.8, 0.6)
	n := []float64{0.6, 0.8}
	tg := []float64{-0.8, 0.6}
	s := RocketState{Mass: 2, X: 0.6 * EarthRadius, Y: 0.8 * EarthRadius, NX: n[0], NY: n[1], TX: tg[0], TY: tg[1]}
	thrust := 10.0
	for _, tc := range []struct {
		angle      float64
		expN, expT float64
	}{
		{0, 5, 0},
		{90, 0, 5},
		{-90, 0, -5},
		{180, -5, 0},
		{30, 5 * math.Sqrt(3) / 2, 2.5},
	} {
		s.Angle = tc.angle
		rslt := Integrate(noGravity, s, thrust, 1)
		acc := []float64{rslt.VX, rslt.VY}
		if along := dot(acc, n); !floats.EqualWithinAbs(along, tc.expN, 1e-12) {
			t.Fatalf("angle=%f: normal component %f != %f", tc.angle, along, tc.expN)
		}
		if along := dot(acc, tg); !floats.EqualWithinAbs(along, tc.expT, 1e-12) {
			t.Fatalf("angle=%f: tangential component %f != %f", tc.angle, along, tc.expT)
		}
	}
}

func TestIntegrateSymplecticOrdering(t *testing.T) {
	s := RocketState{Mass: 1, VX: 3, VY: 0, X: EarthRadius, Y: 0, NX: 1, NY: 0, TX: 0, TY: 1}
	rslt := Integrate(noGravity, s, 2, 1)
	if rslt.VX != 5 {
		t.Fatalf("vx=%f expected 5", rslt.VX)
	}
	if rslt.X != EarthRadius+5 {
		t.Fatalf("position did not use the updated velocity: x-x0=%f", rslt.X-EarthRadius)
	}
	// And with gravity, for any step size.
	s = RocketState{Mass: 500, VX: 10, VY: 250, X: 3e5, Y: 6.5e6}
	s.NX, s.NY, s.TX, s.TY = LocalBasis(s.X, s.Y)
	s.Angle = 12
	for _, dt := range []float64{0.1, 1, 5} {
		rslt := Integrate(Earth, s, 15000, dt)
		if !floats.EqualWithinAbs(rslt.X, s.X+rslt.VX*dt, 1e-6) || !floats.EqualWithinAbs(rslt.Y, s.Y+rslt.VY*dt, 1e-6) {
			t.Fatalf("dt=%f: position not advanced with the updated velocity", dt)
		}
	}
}

func TestIntegrateScenario(t *testing.T) {
	rslt := UpdateRocketState(1000, 0, 0, 0, EarthRadius, 20000, 0, 1, 1, 0, 0, 1)
	if rslt.VX != 0 || rslt.X != 0 {
		t.Fatalf("vertical thrust moved sideways: vx=%f x=%f", rslt.VX, rslt.X)
	}
	expVY := 20000/1000.0 - Earth.SurfaceGravity()
	if !floats.EqualWithinAbs(rslt.VY, expVY, 1e-12) {
		t.Fatalf("vy=%f expected %f", rslt.VY, expVY)
	}
	if !floats.EqualWithinAbs(rslt.VY, 10.18, 1e-2) {
		t.Fatalf("net acceleration %f m/s^2 too far from 10.18", rslt.VY)
	}
	if rslt.Y != EarthRadius+rslt.VY {
		t.Fatalf("y=%f expected %f", rslt.Y, EarthRadius+rslt.VY)
	}
	if rslt.Speed != rslt.VY {
		t.Fatalf("speed=%f expected %f", rslt.Speed, rslt.VY)
	}
	arr := rslt.Float64s()
	if arr != [5]float64{rslt.VX, rslt.VY, rslt.X, rslt.Y, rslt.Speed} {
		t.Fatalf("incorrect packing: %v", arr)
	}
}

func TestIntegrateDeterministic(t *testing.T) {
	s := RocketState{Mass: 750, VX: -1234.5, VY: 987.6, X: -2.1e6, Y: 6.2e6, Angle: 71.3}
	s.NX, s.NY, s.TX, s.TY = LocalBasis(s.X, s.Y)
	first := Integrate(Earth, s, 33000, 0.1)
	for i := 0; i < 10; i++ {
		if again := Integrate(Earth, s, 33000, 0.1); again != first {
			t.Fatalf("call #%d differs: %+v != %+v", i, again, first)
		}
	}
	flat := UpdateRocketState(s.Mass, s.VX, s.VY, s.X, s.Y, 33000, s.NX, s.NY, s.TX, s.TY, s.Angle, 0.1)
	if flat != first {
		t.Fatalf("flat entry point differs: %+v != %+v", flat, first)
	}
}

func TestIntegrateDegenerate(t *testing.T) {
	// Zero mass with thrust: infinite acceleration, not an error.
	rslt := UpdateRocketState(0, 0, 0, 0, EarthRadius, 100, 0, 1, -1, 0, 0, 1)
	if !math.IsInf(rslt.VY, 1) {
		t.Fatalf("expected +Inf vy with zero mass, got %f", rslt.VY)
	}
	// Position at the center: infinite gravity.
	rslt = UpdateRocketState(1, 0, 0, 0, 0, 0, 0, 1, -1, 0, 0, 1)
	if !math.IsInf(rslt.VY, -1) || !math.IsNaN(rslt.VX) {
		t.Fatalf("expected NaN/-Inf at the center, got (%f, %f)", rslt.VX, rslt.VY)
	}
	if !math.IsNaN(rslt.Speed) {
		t.Fatalf("expected a NaN speed, got %f", rslt.Speed)
	}
}

func TestIntegrateCircularOrbit(t *testing.T) {
	// Semi-implicit Euler keeps the energy bounded on a coast.
	r0 := EarthRadius + 200e3
	o := NewOrbit2D(Earth, 0, r0, -math.Sqrt(Earth.GM()/r0), 0)
	ξ0 := o.Energy()
	x, y, vx, vy := 0.0, r0, o.V.At(0, 0), 0.0
	dt := 1.0
	period := 2 * math.Pi * math.Sqrt(math.Pow(r0, 3)/Earth.GM())
	for i := 0; i < int(period/dt); i++ {
		s := RocketState{Mass: 1000, VX: vx, VY: vy, X: x, Y: y}
		s.NX, s.NY, s.TX, s.TY = LocalBasis(x, y)
		rslt := Integrate(Earth, s, 0, dt)
		x, y, vx, vy = rslt.X, rslt.Y, rslt.VX, rslt.VY
		alt := norm(x, y) - EarthRadius
		if alt < 180e3 || alt > 220e3 {
			t.Fatalf("step %d: altitude drifted to %f km", i, alt/1e3)
		}
	}
	ξ := NewOrbit2D(Earth, x, y, vx, vy).Energy()
	if !floats.EqualWithinRel(ξ, ξ0, 5e-3) {
		t.Fatalf("energy drifted over one orbit: %f -> %f", ξ0, ξ)
	}
	if norm(x, y) < r0/2 || y < 0 {
		t.Fatalf("did not complete the orbit: (%f, %f)", x, y)
	}
}

func TestValidate(t *testing.T) {
	s := RocketState{Mass: 1000, Y: EarthRadius, NY: 1, TX: -1}
	if err := s.Validate(0.1); err != nil {
		t.Fatalf("valid state rejected: %s", err)
	}
	bad := s
	bad.Mass = 0
	if err := bad.Validate(0.1); !errors.Is(err, ErrNonPositiveMass) {
		t.Fatalf("expected ErrNonPositiveMass, got %v", err)
	}
	bad.Mass = math.NaN()
	if err := bad.Validate(0.1); !errors.Is(err, ErrNonPositiveMass) {
		t.Fatalf("expected ErrNonPositiveMass for NaN, got %v", err)
	}
	bad = s
	bad.Y = 0
	if err := bad.Validate(0.1); !errors.Is(err, ErrZeroPosition) {
		t.Fatalf("expected ErrZeroPosition, got %v", err)
	}
	if err := s.Validate(0); !errors.Is(err, ErrNonPositiveStep) {
		t.Fatalf("expected ErrNonPositiveStep, got %v", err)
	}
	if err := ValidateGuidanceInput(EarthRadius, 0, 200e3); !errors.Is(err, ErrZeroVerticalGravity) {
		t.Fatalf("expected ErrZeroVerticalGravity, got %v", err)
	}
	if err := ValidateGuidanceInput(0, 0, 200e3); !errors.Is(err, ErrZeroPosition) {
		t.Fatalf("expected ErrZeroPosition, got %v", err)
	}
	if err := ValidateGuidanceInput(0, EarthRadius, 0); !errors.Is(err, ErrNonPositiveTarget) {
		t.Fatalf("expected ErrNonPositiveTarget, got %v", err)
	}
	if err := ValidateGuidanceInput(0, EarthRadius, 200e3); err != nil {
		t.Fatalf("valid guidance input rejected: %s", err)
	}
}
