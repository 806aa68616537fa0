package ascent

import (
	"fmt"
	"time"
)

// Waypoint defines one step of a scripted flight program, flown in manual mode.
type Waypoint interface {
	Cleared() bool // returns whether waypoint has been reached
	Steer(MissionState) (GuidanceResult, bool)
	String() string
}

// Loiter is a type of waypoint which holds the current pitch and engine for a given duration.
type Loiter struct {
	duration         time.Duration
	endDT            time.Time
	startedLoitering bool
	cleared          bool
}

// String implements the Waypoint interface.
func (wp *Loiter) String() string {
	return fmt.Sprintf("Hold for %s.", wp.duration)
}

// Cleared implements the Waypoint interface.
func (wp *Loiter) Cleared() bool {
	return wp.cleared
}

// Steer implements the Waypoint interface.
func (wp *Loiter) Steer(st MissionState) (GuidanceResult, bool) {
	cmd := GuidanceResult{Angle: st.Angle, EngineOn: st.EngineOn}
	if !wp.startedLoitering {
		// First time this is called, starting timer.
		wp.startedLoitering = true
		wp.endDT = st.DT.Add(wp.duration)
	}
	if st.DT.Before(wp.endDT) {
		return cmd, false
	}
	wp.cleared = true
	return cmd, true
}

// NewLoiter defines a new loitering waypoint, i.e. "keep going for a given time".
func NewLoiter(duration time.Duration) *Loiter {
	return &Loiter{duration: duration}
}

// PitchTo is a type of waypoint which slews to a given pitch.
type PitchTo struct {
	angle   float64
	cleared bool
}

// String implements the Waypoint interface.
func (wp *PitchTo) String() string {
	return fmt.Sprintf("Pitch to %.1f deg.", wp.angle)
}

// Cleared implements the Waypoint interface.
func (wp *PitchTo) Cleared() bool {
	return wp.cleared
}

// Steer implements the Waypoint interface.
func (wp *PitchTo) Steer(st MissionState) (GuidanceResult, bool) {
	if NormalizeAngle(st.Angle-wp.angle) == 0 {
		wp.cleared = true
	}
	return GuidanceResult{Angle: wp.angle, EngineOn: st.EngineOn}, wp.cleared
}

// NewPitchTo defines a new pitch maneuver.
func NewPitchTo(angle float64) *PitchTo {
	return &PitchTo{angle: angle}
}

// ReachAltitude is a type of waypoint which flies on until a given altitude is reached.
type ReachAltitude struct {
	altitude float64
	cleared  bool
}

// String implements the Waypoint interface.
func (wp *ReachAltitude) String() string {
	return fmt.Sprintf("Reach altitude of %.1f km.", wp.altitude/1e3)
}

// Cleared implements the Waypoint interface.
func (wp *ReachAltitude) Cleared() bool {
	return wp.cleared
}

// Steer implements the Waypoint interface.
func (wp *ReachAltitude) Steer(st MissionState) (GuidanceResult, bool) {
	if st.Altitude >= wp.altitude {
		wp.cleared = true
	}
	return GuidanceResult{Angle: st.Angle, EngineOn: st.EngineOn}, wp.cleared
}

// NewReachAltitude defines a new waypoint cleared at the provided altitude in meters.
func NewReachAltitude(altitude float64) *ReachAltitude {
	return &ReachAltitude{altitude: altitude}
}

// EngineSwitch turns the engine on or off, and is cleared immediately.
type EngineSwitch struct {
	on      bool
	cleared bool
}

// String implements the Waypoint interface.
func (wp *EngineSwitch) String() string {
	if wp.on {
		return "Engine on."
	}
	return "Engine off."
}

// Cleared implements the Waypoint interface.
func (wp *EngineSwitch) Cleared() bool {
	return wp.cleared
}

// Steer implements the Waypoint interface.
func (wp *EngineSwitch) Steer(st MissionState) (GuidanceResult, bool) {
	wp.cleared = true
	return GuidanceResult{Angle: st.Angle, EngineOn: wp.on}, true
}

// NewEngineSwitch defines a new engine command.
func NewEngineSwitch(on bool) *EngineSwitch {
	return &EngineSwitch{on: on}
}
