package ascent

import (
	"fmt"
	"math"
	"strings"
)

// AutopilotMode defines an enum of autopilot modes.
type AutopilotMode uint8

const (
	// Manual leaves the pitch to the operator.
	Manual AutopilotMode = iota + 1
	// MaxDistance holds a 45 degree pitch, i.e. the best ballistic range.
	MaxDistance
	// StableOrbit follows the gravity turn guidance up to orbit insertion.
	StableOrbit
)

const (
	// MaxAngleRate is the maximum pitch change in degrees per second.
	MaxAngleRate     = 10.0
	maxDistanceAngle = 45.0
)

func (m AutopilotMode) String() string {
	switch m {
	case Manual:
		return "manual"
	case MaxDistance:
		return "max_distance"
	case StableOrbit:
		return "stable_orbit"
	}
	panic("cannot stringify unknown autopilot mode")
}

// AutopilotModeFromString returns the autopilot mode from its name.
func AutopilotModeFromString(name string) (AutopilotMode, error) {
	switch strings.ToLower(strings.Replace(name, "-", "_", -1)) {
	case "manual", "":
		return Manual, nil
	case "max_distance", "maxdistance":
		return MaxDistance, nil
	case "stable_orbit", "stableorbit", "orbit":
		return StableOrbit, nil
	default:
		return 0, fmt.Errorf("undefined autopilot mode '%s'", name)
	}
}

// Autopilot steers the pitch of the rocket every tick.
type Autopilot struct {
	Mode           AutopilotMode
	TargetAltitude float64    // m, used by StableOrbit
	Angle          float64    // current pitch in degrees
	Program        []Waypoint // flown in manual mode, in order
}

// NewAutopilot returns an autopilot starting from a vertical pitch.
func NewAutopilot(mode AutopilotMode, targetAltitude float64) *Autopilot {
	return &Autopilot{Mode: mode, TargetAltitude: targetAltitude}
}

// SetAngle sets the pitch, which is only allowed in manual mode.
func (a *Autopilot) SetAngle(angle float64) bool {
	if a.Mode != Manual {
		return false
	}
	a.Angle = angle
	return true
}

// Update slews the pitch toward the target of the current mode and returns the
// engine command. engineOn is returned unchanged unless the guidance says otherwise.
func (a *Autopilot) Update(p PlanetModel, x, y, vx, vy, speed, dt float64, engineOn bool) bool {
	switch a.Mode {
	case StableOrbit:
		cmd := Guide(p, x, y, vx, vy, speed, a.TargetAltitude)
		a.Angle = ApproachAngle(a.Angle, cmd.Angle, dt)
		return cmd.EngineOn
	case MaxDistance:
		a.Angle = ApproachAngle(a.Angle, maxDistanceAngle, dt)
	}
	return engineOn
}

// FollowProgram steers toward the first waypoint of the program which is not
// cleared yet and returns the engine command. If that waypoint was reached on
// this tick, it is returned as reached.
func (a *Autopilot) FollowProgram(st MissionState, dt float64) (engineOn bool, reached Waypoint) {
	for _, wp := range a.Program {
		if wp.Cleared() {
			continue
		}
		cmd, cleared := wp.Steer(st)
		a.Angle = ApproachAngle(a.Angle, cmd.Angle, dt)
		if cleared {
			reached = wp
		}
		return cmd.EngineOn, reached
	}
	return st.EngineOn, nil
}

// ApproachAngle moves current toward target by at most MaxAngleRate*dt degrees,
// along the shortest way around. The result is normalized.
func ApproachAngle(current, target, dt float64) float64 {
	diff := NormalizeAngle(target - current)
	maxChange := MaxAngleRate * dt
	if math.Abs(diff) > maxChange {
		current += sign(diff) * maxChange
	} else {
		current = target
	}
	return NormalizeAngle(current)
}

// NormalizeAngle folds an angle in degrees within [-180, 180].
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < -180 {
		angle += 360
	}
	if angle > 180 {
		angle -= 360
	}
	return angle
}
