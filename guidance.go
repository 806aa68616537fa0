package ascent

import "math"

const (
	turnInitialAngle  = 0.0  // degrees, thrust along the local vertical
	turnFinalAngle    = 90.0 // degrees, thrust along the local horizontal
	turnStartAltitude = 0.0  // m, predicted apogee at which the turn begins
	circularDeadband  = 1.01 // engine cut window above the circular speed
)

// GuidanceResult is the output of the ascent guidance.
type GuidanceResult struct {
	Angle    float64 // target pitch in degrees
	EngineOn bool
}

// EngineFlag returns the engine command as 1 or 0.
func (g GuidanceResult) EngineFlag() float64 {
	if g.EngineOn {
		return 1
	}
	return 0
}

// Float64s returns the result as [angle, engineOnFlag].
func (g GuidanceResult) Float64s() [2]float64 {
	return [2]float64{g.Angle, g.EngineFlag()}
}

// Apogee returns the altitude the rocket would coast to if the engine were
// cut now, only decelerating the vertical velocity under the local gravity.
// The gravity is projected on the y axis, which makes it a poor estimate far
// from the launch meridian and Inf when y is zero.
func Apogee(p PlanetModel, x, y, vx, vy, speed float64) float64 {
	apogee, _, _, _ := apogee(p, x, y, vx, vy, speed)
	return apogee
}

func apogee(p PlanetModel, x, y, vx, vy, speed float64) (alt, r, earthAngleRad, speedAngle float64) {
	r = math.Sqrt(float64(x*x) + float64(y*y))
	currentAltitude := r - p.Radius

	gravity := float64(p.G*p.Mass) / float64(r*r)
	gy := gravity * (y / r)

	earthAngleRad = -math.Atan2(x, y)
	speedAngle = -math.Atan2(vx, vy)
	vertical := math.Cos(speedAngle - earthAngleRad)
	alt = float64(float64(float64(speed*speed)*vertical)*vertical)/float64(2*gy) + currentAltitude
	return
}

// Guide computes the gravity turn pitch and engine command toward a circular
// orbit at targetOrbitAltitude (in meters above the planet radius).
// The pitch moves from vertical to horizontal as the predicted apogee climbs
// to the target. Once the apogee reaches it, the engine is cut only while the
// tangential speed is within 1% above the circular speed.
func Guide(p PlanetModel, x, y, vx, vy, speed, targetOrbitAltitude float64) GuidanceResult {
	maxAltitude, r, earthAngleRad, speedAngle := apogee(p, x, y, vx, vy, speed)
	earthAngle := float64(earthAngleRad*180.0) / math.Pi
	turnEndAltitude := targetOrbitAltitude

	switch {
	case maxAltitude < turnStartAltitude:
		// Still climbing vertically: this is not offset by the Earth angle.
		return GuidanceResult{Angle: turnInitialAngle, EngineOn: true}
	case maxAltitude < turnEndAltitude:
		ratio := (maxAltitude - turnStartAltitude) / (turnEndAltitude - turnStartAltitude)
		angle := turnInitialAngle + float64((turnFinalAngle-turnInitialAngle)*ratio) + earthAngle
		return GuidanceResult{Angle: angle, EngineOn: true}
	default:
		requiredSpeed := math.Sqrt(float64(p.G*p.Mass) / r)
		tangentialSpeed := speed * math.Sin(speedAngle-earthAngleRad)
		// This ratio subtracts the start altitude twice over; kept as flown.
		ratio := (maxAltitude - turnEndAltitude - turnStartAltitude) / (turnEndAltitude - turnStartAltitude)
		angle := float64(turnFinalAngle*ratio) + turnFinalAngle + earthAngle
		inserted := tangentialSpeed >= requiredSpeed && tangentialSpeed <= requiredSpeed*circularDeadband
		return GuidanceResult{Angle: angle, EngineOn: !inserted}
	}
}

// CalculateOrbitAngle is the flat entry point of Guide, bound to the Earth.
func CalculateOrbitAngle(x, y, vx, vy, speed, targetOrbitAltitude float64) GuidanceResult {
	return Guide(Earth, x, y, vx, vy, speed, targetOrbitAltitude)
}
