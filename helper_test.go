package ascent

import (
	"fmt"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !floats.EqualWithinAbs(a[i], b[i], 1e-12) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in degrees are equal modulo 360.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Mod(math.Abs(a-b), 360)
	if floats.EqualWithinAbs(diff, 0, 1e-9) || floats.EqualWithinAbs(diff, 360, 1e-9) {
		return true, nil
	}
	return false, fmt.Errorf("difference of %f degrees", diff)
}

// noGravity is a massless planet: the integrator only sees the thrust.
var noGravity = PlanetModel{"Void", 0, EarthRadius, GravitationalConstant}
