package ascent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Scenario is a flight as described by a configuration file.
type Scenario struct {
	Planet      PlanetModel
	Vehicle     *Vehicle
	Autopilot   *Autopilot
	Start       time.Time
	Step        time.Duration
	MaxDuration time.Duration
	Strict      bool
	Export      ExportConfig
}

// Mission returns a new mission flying this scenario.
func (s *Scenario) Mission() *Mission {
	m := NewMission(s.Vehicle, s.Planet, s.Autopilot, s.Start, s.Step, s.Export)
	m.MaxDuration = s.MaxDuration
	m.Strict = s.Strict
	return m
}

// programEntry is one waypoint of the flight program, only one key may be set.
type programEntry struct {
	Pitch    *float64      `mapstructure:"pitch"`
	Engine   *bool         `mapstructure:"engine"`
	Hold     time.Duration `mapstructure:"hold"`
	Altitude *float64      `mapstructure:"altitude"`
}

func (e programEntry) waypoint() (Waypoint, error) {
	var wps []Waypoint
	if e.Pitch != nil {
		wps = append(wps, NewPitchTo(*e.Pitch))
	}
	if e.Engine != nil {
		wps = append(wps, NewEngineSwitch(*e.Engine))
	}
	if e.Hold > 0 {
		wps = append(wps, NewLoiter(e.Hold))
	}
	if e.Altitude != nil {
		wps = append(wps, NewReachAltitude(*e.Altitude))
	}
	if len(wps) != 1 {
		return nil, errors.New("exactly one of pitch, engine, hold or altitude must be set")
	}
	return wps[0], nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("planet.name", "earth")
	v.SetDefault("vehicle.name", "rocket")
	v.SetDefault("vehicle.engine", "generic")
	v.SetDefault("vehicle.fuel_per_tick", 0.01)
	v.SetDefault("mission.step", StepSize)
	v.SetDefault("mission.max_duration", MaxDuration)
	v.SetDefault("autopilot.mode", Manual.String())
	v.SetDefault("autopilot.target_altitude", 200e3)
	v.SetDefault("export.filename", "flight")
	v.SetDefault("export.output_dir", ".")
	v.SetDefault("export.every", 1)
}

// LoadScenario reads the scenario from the provided file, which may be in any
// format known to viper (TOML, YAML, JSON...). Any key may be overridden by an
// environment variable prefixed with ASCENT_, e.g. ASCENT_AUTOPILOT_MODE.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ascent")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenarioFromViper(v)
}

func scenarioFromViper(v *viper.Viper) (*Scenario, error) {
	s := &Scenario{}

	// Read planet
	planet, err := PlanetFromString(v.GetString("planet.name"))
	if err != nil {
		return nil, err
	}
	if v.IsSet("planet.mass") {
		planet.Mass = v.GetFloat64("planet.mass")
	}
	if v.IsSet("planet.radius") {
		planet.Radius = v.GetFloat64("planet.radius")
	}
	if planet.Mass <= 0 || planet.Radius <= 0 {
		return nil, fmt.Errorf("planet %s: mass and radius must be positive", planet.Name)
	}
	s.Planet = planet

	// Read mission
	s.Step = v.GetDuration("mission.step")
	if s.Step <= 0 {
		return nil, fmt.Errorf("mission.step=%s: %w", s.Step, ErrNonPositiveStep)
	}
	s.MaxDuration = v.GetDuration("mission.max_duration")
	s.Strict = v.GetBool("mission.strict")
	if v.IsSet("mission.start") {
		s.Start = v.GetTime("mission.start")
	} else {
		s.Start = time.Now()
	}

	// Read vehicle
	var engine Engine
	switch strings.ToLower(v.GetString("vehicle.engine")) {
	case "generic":
		if !v.IsSet("vehicle.thrust_per_kg") {
			return nil, errors.New("vehicle.thrust_per_kg is required by the generic engine")
		}
		engine = NewGenericEngine(v.GetFloat64("vehicle.thrust_per_kg"), v.GetFloat64("vehicle.fuel_per_tick"))
	case "merlin1d", "merlin":
		engine = NewMerlin1D(s.Step.Seconds())
	default:
		return nil, fmt.Errorf("undefined engine '%s'", v.GetString("vehicle.engine"))
	}
	var stages []Stage
	if err := v.UnmarshalKey("vehicle.stages", &stages); err != nil {
		return nil, fmt.Errorf("vehicle.stages: %w", err)
	}
	if len(stages) == 0 {
		return nil, errors.New("vehicle.stages: at least one stage is required")
	}
	if s.Vehicle, err = NewVehicle(v.GetString("vehicle.name"), v.GetFloat64("vehicle.payload"), stages, engine); err != nil {
		return nil, err
	}

	// Read autopilot
	mode, err := AutopilotModeFromString(v.GetString("autopilot.mode"))
	if err != nil {
		return nil, err
	}
	s.Autopilot = NewAutopilot(mode, v.GetFloat64("autopilot.target_altitude"))
	s.Autopilot.Angle = v.GetFloat64("autopilot.angle")
	var program []programEntry
	if err := v.UnmarshalKey("autopilot.program", &program); err != nil {
		return nil, fmt.Errorf("autopilot.program: %w", err)
	}
	for i, entry := range program {
		wp, err := entry.waypoint()
		if err != nil {
			return nil, fmt.Errorf("autopilot.program #%d: %w", i, err)
		}
		s.Autopilot.Program = append(s.Autopilot.Program, wp)
	}

	// Read export
	s.Export = ExportConfig{
		Filename:  v.GetString("export.filename"),
		OutputDir: v.GetString("export.output_dir"),
		AsCSV:     v.GetBool("export.csv"),
		Summary:   v.GetBool("export.summary"),
		Timestamp: v.GetBool("export.timestamp"),
		Every:     v.GetInt("export.every"),
	}
	return s, nil
}
