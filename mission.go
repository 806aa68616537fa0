package ascent

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

const (
	// StepSize is the default tick duration, i.e. a 100 ms cycle.
	StepSize = 100 * time.Millisecond
	// MaxDuration is the default hard limit on a flight.
	MaxDuration = 24 * time.Hour
	// statusPeriod is how often, in simulated time, the status is logged.
	statusPeriod = time.Minute
)

/* Handles the flight from the pad. */

// Mission flies a vehicle from the surface of a planet.
type Mission struct {
	Vehicle     *Vehicle
	Autopilot   *Autopilot
	Planet      PlanetModel
	MaxDuration time.Duration // hard limit on the flight, zero means MaxDuration
	Strict      bool          // reject states which would yield NaN instead of propagating them
	StartDT     time.Time
	CurrentDT   time.Time
	EngineOn    bool

	X, Y, VX, VY, Speed float64

	tick        uint64
	maxAltitude float64
	separations int
	outcome     string
	step        time.Duration
	conf        ExportConfig
	stopChan    chan bool
	histChan    chan MissionState
	wg          sync.WaitGroup
	logger      kitlog.Logger
	metrics     *Metrics
	lastStatus  time.Time
	err         error
	exportErr   error
	done        bool
}

// MissionState stores a propagated state.
type MissionState struct {
	DT       time.Time
	Elapsed  time.Duration
	Tick     uint64
	X, Y     float64
	VX, VY   float64
	Speed    float64
	Altitude float64
	Angle    float64
	Mass     float64
	Fuel     float64
	Stages   int
	EngineOn bool
	Final    bool
}

// NewMission returns a new Mission with the vehicle on the pad, i.e. at the
// top of the planet (x=0, y=radius) with a vertical pitch and the engine on.
func NewMission(v *Vehicle, p PlanetModel, ap *Autopilot, start time.Time, step time.Duration, conf ExportConfig) *Mission {
	if step <= 0 {
		step = StepSize
	}
	if ap == nil {
		ap = NewAutopilot(Manual, 0)
	}
	start = start.UTC()
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "mission", v.Name)
	a := &Mission{
		Vehicle:    v,
		Autopilot:  ap,
		Planet:     p,
		StartDT:    start,
		CurrentDT:  start,
		EngineOn:   true,
		Y:          p.Radius,
		step:       step,
		conf:       conf,
		stopChan:   make(chan bool, 1),
		logger:     klog,
		metrics:    NewMetrics(nil),
		lastStatus: start,
	}
	if conf.AsCSV {
		a.histChan = make(chan MissionState, 1000) // a 1k entry buffer
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.exportErr = StreamStates(conf, a.histChan)
		}()
		a.histChan <- a.State()
	}
	return a
}

// WithLogger replaces the logger of this mission.
func (a *Mission) WithLogger(l kitlog.Logger) *Mission {
	a.logger = kitlog.With(l, "mission", a.Vehicle.Name)
	return a
}

// WithMetrics replaces the metrics of this mission.
func (a *Mission) WithMetrics(m *Metrics) *Mission {
	a.metrics = m
	return a
}

// Tick returns the number of ticks flown.
func (a *Mission) Tick() uint64 {
	return a.tick
}

// Done returns whether the flight is over.
func (a *Mission) Done() bool {
	return a.done
}

// Landed returns whether the flight ended on the ground.
func (a *Mission) Landed() bool {
	return a.outcome == "landed"
}

// Altitude returns the current altitude.
func (a *Mission) Altitude() float64 {
	return norm(a.X, a.Y) - a.Planet.Radius
}

// Orbit returns the current osculating orbit.
func (a *Mission) Orbit() *Orbit2D {
	return NewOrbit2D(a.Planet, a.X, a.Y, a.VX, a.VY)
}

// State returns the current state.
func (a *Mission) State() MissionState {
	return MissionState{
		DT:       a.CurrentDT,
		Elapsed:  a.CurrentDT.Sub(a.StartDT),
		Tick:     a.tick,
		X:        a.X,
		Y:        a.Y,
		VX:       a.VX,
		VY:       a.VY,
		Speed:    a.Speed,
		Altitude: a.Altitude(),
		Angle:    a.Autopilot.Angle,
		Mass:     a.Vehicle.Mass(),
		Fuel:     a.Vehicle.FuelMass(),
		Stages:   a.Vehicle.RemainingStages,
		EngineOn: a.EngineOn,
		Final:    a.done,
	}
}

// LogStatus logs the status of the flight and vehicle.
func (a *Mission) LogStatus() {
	a.logger.Log("level", "info", "subsys", "astro", "date", a.CurrentDT.Format(dateFormat), "alt(km)", a.Altitude()/1e3, "speed(m/s)", a.Speed, "pitch", a.Autopilot.Angle, "engine", a.EngineOn, "vehicle", a.Vehicle)
}

func (a *Mission) setEngine(on bool) {
	if on == a.EngineOn {
		return
	}
	a.EngineOn = on
	a.metrics.EngineToggles.Inc()
	a.logger.Log("level", "notice", "subsys", "prop", "engine", on, "date", a.CurrentDT.Format(dateFormat), "alt(km)", a.Altitude()/1e3, "speed(m/s)", a.Speed)
}

// StopPropagation is used to stop the propagation before it is completed.
func (a *Mission) StopPropagation() {
	select {
	case a.stopChan <- true:
	default:
		// A stop is already pending.
	}
}

// Step flies one tick and returns whether the flight goes on.
func (a *Mission) Step() bool {
	if a.done {
		return false
	}
	select {
	case <-a.stopChan:
		a.finish("stopped")
		return false
	default:
	}
	limit := a.MaxDuration
	if limit <= 0 {
		limit = MaxDuration
	}
	if a.CurrentDT.Sub(a.StartDT) >= limit {
		a.logger.Log("level", "critical", "subsys", "astro", "status", "killed", "limit", limit)
		a.finish("timeout")
		return false
	}

	a.tick++
	a.CurrentDT = a.CurrentDT.Add(a.step)
	a.metrics.Ticks.Inc()
	dt := a.step.Seconds()

	if a.Vehicle.RemainingStages == 0 && a.EngineOn {
		a.setEngine(false)
	}

	thrust := 0.0
	if a.EngineOn && a.Vehicle.RemainingStages > 0 {
		var separated bool
		thrust, separated = a.Vehicle.Burn(dt)
		if separated {
			// The separation takes the whole tick.
			a.separations++
			a.metrics.Separations.Inc()
			a.logger.Log("level", "notice", "subsys", "prop", "separation", a.Vehicle.RemainingStages+1, "date", a.CurrentDT.Format(dateFormat), "alt(km)", a.Altitude()/1e3, "mass(kg)", a.Vehicle.Mass())
			a.record()
			return true
		}
	}

	if a.Strict && a.Autopilot.Mode == StableOrbit {
		if err := ValidateGuidanceInput(a.X, a.Y, a.Autopilot.TargetAltitude); err != nil {
			return a.fail(err)
		}
	}
	nx, ny, tx, ty := LocalBasis(a.X, a.Y)
	engineOn := a.EngineOn
	if a.Autopilot.Mode == Manual && len(a.Autopilot.Program) > 0 {
		var reached Waypoint
		if engineOn, reached = a.Autopilot.FollowProgram(a.State(), dt); reached != nil {
			a.logger.Log("level", "notice", "subsys", "astro", "waypoint", reached, "date", a.CurrentDT.Format(dateFormat), "alt(km)", a.Altitude()/1e3)
		}
	}
	engineOn = a.Autopilot.Update(a.Planet, a.X, a.Y, a.VX, a.VY, a.Speed, dt, engineOn)
	a.setEngine(engineOn && a.Vehicle.RemainingStages > 0)

	state := RocketState{
		Mass:  a.Vehicle.Mass(),
		VX:    a.VX,
		VY:    a.VY,
		X:     a.X,
		Y:     a.Y,
		Angle: a.Autopilot.Angle,
		NX:    nx,
		NY:    ny,
		TX:    tx,
		TY:    ty,
	}
	if a.Strict {
		if err := state.Validate(dt); err != nil {
			return a.fail(err)
		}
	}
	rslt := Integrate(a.Planet, state, thrust, dt)
	a.VX, a.VY, a.X, a.Y, a.Speed = rslt.VX, rslt.VY, rslt.X, rslt.Y, rslt.Speed

	if r := norm(a.X, a.Y); r <= a.Planet.Radius {
		// Ground contact: back on the surface, at rest.
		a.X = a.X / r * a.Planet.Radius
		a.Y = a.Y / r * a.Planet.Radius
		a.VX, a.VY, a.Speed = 0, 0, 0
		a.logger.Log("level", "critical", "subsys", "astro", "landed", a.Planet.Name, "date", a.CurrentDT.Format(dateFormat), "tick", a.tick)
		a.finish("landed")
		return false
	}
	if alt := a.Altitude(); alt > a.maxAltitude {
		a.maxAltitude = alt
	}
	a.record()
	if a.CurrentDT.Sub(a.lastStatus) >= statusPeriod {
		a.lastStatus = a.CurrentDT
		a.LogStatus()
	}
	return true
}

func (a *Mission) fail(err error) bool {
	a.err = fmt.Errorf("tick %d: %w", a.tick, err)
	a.logger.Log("level", "critical", "subsys", "astro", "error", err, "tick", a.tick)
	a.finish("failed")
	return false
}

// record publishes the current state to the metrics and the exporter.
func (a *Mission) record() {
	a.metrics.Altitude.Set(a.Altitude())
	a.metrics.Speed.Set(a.Speed)
	a.metrics.Angle.Set(a.Autopilot.Angle)
	if a.histChan != nil {
		a.histChan <- a.State()
	}
}

func (a *Mission) finish(outcome string) {
	a.outcome = outcome
	a.done = true
	if a.histChan != nil {
		a.histChan <- a.State() // Final state.
		close(a.histChan)
	}
}

// Propagate flies the mission until it lands, is stopped, fails or times out.
// It returns once all the files are written.
func (a *Mission) Propagate() error {
	a.LogStatus()
	initFuel := a.Vehicle.FuelMass()
	for a.Step() {
	}
	a.wg.Wait() // Don't return until we're done writing all the files.
	a.logger.Log("level", "notice", "subsys", "astro", "status", "finished", "outcome", a.outcome, "duration", a.CurrentDT.Sub(a.StartDT), "fuel(kg)", initFuel-a.Vehicle.FuelMass(), "orbit", a.Orbit())
	a.LogStatus()
	if a.conf.Summary {
		if err := a.conf.WriteSummary(a.Summary()); err != nil && a.exportErr == nil {
			a.exportErr = err
		}
	}
	if a.err != nil {
		return a.err
	}
	return a.exportErr
}

// Summary returns the summary of the flight so far.
func (a *Mission) Summary() MissionSummary {
	o := a.Orbit()
	inserted := a.Autopilot.Mode == StableOrbit && !a.EngineOn && a.Vehicle.RemainingStages > 0 && o.IsBound() && o.PeriapsisAltitude() > 0
	outcome := a.outcome
	if outcome == "" {
		outcome = "flying"
	}
	ecc := o.Eccentricity()
	if math.IsNaN(ecc) {
		ecc = 0
	}
	return MissionSummary{
		Vehicle:           a.Vehicle.Name,
		Planet:            a.Planet.Name,
		Autopilot:         a.Autopilot.Mode.String(),
		Start:             a.StartDT.Format(dateFormat),
		Duration:          a.CurrentDT.Sub(a.StartDT).Seconds(),
		Ticks:             a.tick,
		Outcome:           outcome,
		Inserted:          inserted,
		Altitude:          a.Altitude(),
		MaxAltitude:       a.maxAltitude,
		Speed:             a.Speed,
		Eccentricity:      ecc,
		ApoapsisAltitude:  o.ApoapsisAltitude(),
		PeriapsisAltitude: o.PeriapsisAltitude(),
		FuelLeft:          a.Vehicle.FuelMass(),
		StagesLeft:        a.Vehicle.RemainingStages,
		Separations:       a.separations,
	}
}
