package ascent

import (
	"errors"
	"fmt"
)

// The kernel never returns these: Integrate and Guide propagate Inf and NaN.
// They are meant for callers which want to reject degenerate inputs first.
var (
	ErrNonPositiveMass     = errors.New("mass must be strictly positive")
	ErrZeroPosition        = errors.New("position must not be the planet center")
	ErrNonPositiveStep     = errors.New("time step must be strictly positive")
	ErrZeroVerticalGravity = errors.New("vertical gravity projection is zero (y=0)")
	ErrNonPositiveTarget   = errors.New("target orbit altitude must be strictly positive")
)

// Validate returns an error if the integrator would produce Inf or NaN from
// this state with the provided time step.
func (s RocketState) Validate(dt float64) error {
	if !(s.Mass > 0) {
		return fmt.Errorf("mass=%g: %w", s.Mass, ErrNonPositiveMass)
	}
	if s.X == 0 && s.Y == 0 {
		return ErrZeroPosition
	}
	if !(dt > 0) {
		return fmt.Errorf("dt=%g: %w", dt, ErrNonPositiveStep)
	}
	return nil
}

// ValidateGuidanceInput returns an error if Guide would divide by zero.
func ValidateGuidanceInput(x, y, targetOrbitAltitude float64) error {
	if x == 0 && y == 0 {
		return ErrZeroPosition
	}
	if y == 0 {
		return fmt.Errorf("x=%g: %w", x, ErrZeroVerticalGravity)
	}
	if !(targetOrbitAltitude > 0) {
		return fmt.Errorf("target=%g: %w", targetOrbitAltitude, ErrNonPositiveTarget)
	}
	return nil
}
