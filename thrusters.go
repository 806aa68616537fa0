package ascent

// Engine defines how fuel is turned into thrust.
type Engine interface {
	// Returns the fuel drawn per tick in kg when firing.
	Flow() float64
	// Returns the thrust in Newtons obtained by burning fuel kg during dt seconds.
	Thrust(fuel, dt float64) float64
}

// GenericEngine produces a fixed impulse per kilogram of fuel.
type GenericEngine struct {
	thrustPerKg float64 // N·s per kg, i.e. the effective exhaust velocity
	fuelPerTick float64 // kg
}

// Flow implements the Engine interface.
func (e *GenericEngine) Flow() float64 {
	return e.fuelPerTick
}

// Thrust implements the Engine interface.
func (e *GenericEngine) Thrust(fuel, dt float64) float64 {
	return fuel / dt * e.thrustPerKg
}

// NewGenericEngine returns an engine which draws fuelPerTick kg every tick and
// produces thrustPerKg N·s of impulse per kilogram burnt.
func NewGenericEngine(thrustPerKg, fuelPerTick float64) *GenericEngine {
	return &GenericEngine{thrustPerKg, fuelPerTick}
}

// Merlin1D is a rough sea level Merlin 1D: ~845 kN at ~300 kg/s.
type Merlin1D struct {
	fuelPerTick float64
}

// Flow implements the Engine interface.
func (e *Merlin1D) Flow() float64 {
	return e.fuelPerTick
}

// Thrust implements the Engine interface.
func (e *Merlin1D) Thrust(fuel, dt float64) float64 {
	return fuel / dt * 2770
}

// NewMerlin1D returns a Merlin 1D class engine for the provided tick duration.
func NewMerlin1D(dt float64) *Merlin1D {
	return &Merlin1D{298 * dt}
}
