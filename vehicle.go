package ascent

import (
	"errors"
	"fmt"
)

// Stage is one jettisonable part of the vehicle.
type Stage struct {
	Dry  float64 `mapstructure:"dry" yaml:"dry"`   // kg
	Fuel float64 `mapstructure:"fuel" yaml:"fuel"` // kg
}

// Vehicle defines a staged rocket. Stages are burnt from last to first, so
// the first stage of the slice is the one holding the payload.
type Vehicle struct {
	Name            string
	Payload         float64 // kg
	Stages          []Stage
	Engine          Engine
	RemainingStages int
	initialFuel     []float64
}

// NewVehicle returns a new vehicle. The stages are copied.
func NewVehicle(name string, payload float64, stages []Stage, engine Engine) (*Vehicle, error) {
	if payload < 0 {
		return nil, fmt.Errorf("vehicle %s: negative payload %f", name, payload)
	}
	if engine == nil {
		return nil, errors.New("vehicle " + name + ": no engine")
	}
	v := &Vehicle{Name: name, Payload: payload, Engine: engine}
	v.Stages = make([]Stage, len(stages))
	v.initialFuel = make([]float64, len(stages))
	for i, s := range stages {
		if s.Dry < 0 || s.Fuel < 0 {
			return nil, fmt.Errorf("vehicle %s: stage %d has negative mass", name, i)
		}
		v.Stages[i] = s
		v.initialFuel[i] = s.Fuel
	}
	v.RemainingStages = len(stages)
	if v.Mass() <= 0 {
		return nil, fmt.Errorf("vehicle %s: %w", name, ErrNonPositiveMass)
	}
	return v, nil
}

// Mass returns the current mass, summing the payload and the remaining stages.
func (v *Vehicle) Mass() float64 {
	mass := v.Payload
	for i := 0; i < v.RemainingStages; i++ {
		mass += v.Stages[i].Dry + v.Stages[i].Fuel
	}
	return mass
}

// FuelMass returns the fuel left in the remaining stages.
func (v *Vehicle) FuelMass() (fuel float64) {
	for i := 0; i < v.RemainingStages; i++ {
		fuel += v.Stages[i].Fuel
	}
	return
}

// Burn draws one tick of fuel from the active stage and returns the thrust.
// If the stage runs dry, it is separated and separated is true: the thrust
// is still returned but the caller should not apply it on that tick.
func (v *Vehicle) Burn(dt float64) (thrust float64, separated bool) {
	if v.RemainingStages == 0 {
		return 0, false
	}
	stage := &v.Stages[v.RemainingStages-1]
	fuel := v.Engine.Flow()
	if stage.Fuel < fuel {
		fuel = stage.Fuel
	}
	stage.Fuel -= fuel
	thrust = v.Engine.Thrust(fuel, dt)
	if stage.Fuel <= 0 {
		stage.Fuel = 0
		v.RemainingStages--
		separated = true
	}
	return
}

// Reset refuels all the stages and reattaches them.
func (v *Vehicle) Reset() {
	for i := range v.Stages {
		v.Stages[i].Fuel = v.initialFuel[i]
	}
	v.RemainingStages = len(v.Stages)
}

// String implements the Stringer interface.
func (v *Vehicle) String() string {
	return fmt.Sprintf("%s (%.1f kg, %d/%d stages, %.1f kg fuel)", v.Name, v.Mass(), v.RemainingStages, len(v.Stages), v.FuelMass())
}
