package ascent

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/soniakeys/meeus/v3/julian"
	"gopkg.in/yaml.v3"
)

const (
	dateFormat         = "2006-01-02 15:04:05.000"
	dateFormatFilename = "2006-01-02T15.04.05"
)

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Filename  string
	OutputDir string
	AsCSV     bool // trajectory as CSV
	Summary   bool // flight summary as YAML
	Timestamp bool // append the creation time to the file names
	Every     int  // only export one state every so many ticks
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV && !c.Summary
}

func (c ExportConfig) path(prefix, ext string) string {
	name := c.Filename
	if name == "" {
		name = "flight"
	}
	if c.Timestamp {
		name = fmt.Sprintf("%s-%s", name, time.Now().Format(dateFormatFilename))
	}
	return filepath.Join(c.dir(), fmt.Sprintf("%s-%s.%s", prefix, name, ext))
}

func (c ExportConfig) dir() string {
	if c.OutputDir == "" {
		return "."
	}
	return c.OutputDir
}

// trajectoryRecord is one row of the exported trajectory.
type trajectoryRecord struct {
	Time     string  `csv:"time"`
	JD       float64 `csv:"jd"`
	Elapsed  float64 `csv:"elapsed_s"`
	Tick     uint64  `csv:"tick"`
	X        float64 `csv:"x_m"`
	Y        float64 `csv:"y_m"`
	VX       float64 `csv:"vx_mps"`
	VY       float64 `csv:"vy_mps"`
	Speed    float64 `csv:"speed_mps"`
	Altitude float64 `csv:"altitude_m"`
	Angle    float64 `csv:"pitch_deg"`
	Mass     float64 `csv:"mass_kg"`
	Fuel     float64 `csv:"fuel_kg"`
	Stages   int     `csv:"stages"`
	EngineOn bool    `csv:"engine_on"`
}

func newTrajectoryRecord(st MissionState) trajectoryRecord {
	return trajectoryRecord{
		Time:     st.DT.UTC().Format(dateFormat),
		JD:       julian.TimeToJD(st.DT),
		Elapsed:  st.Elapsed.Seconds(),
		Tick:     st.Tick,
		X:        st.X,
		Y:        st.Y,
		VX:       st.VX,
		VY:       st.VY,
		Speed:    st.Speed,
		Altitude: st.Altitude,
		Angle:    st.Angle,
		Mass:     st.Mass,
		Fuel:     st.Fuel,
		Stages:   st.Stages,
		EngineOn: st.EngineOn,
	}
}

// StreamStates streams the output of the channel to the trajectory file.
// The channel is always drained, even after a write error, so that the
// mission never blocks on its exporter. The first error is returned.
func StreamStates(conf ExportConfig, stateChan <-chan MissionState) (err error) {
	var f *os.File
	if conf.AsCSV {
		if err = os.MkdirAll(conf.dir(), 0755); err != nil {
			err = fmt.Errorf("creating output directory: %w", err)
		} else if f, err = os.Create(conf.path("trajectory", "csv")); err != nil {
			err = fmt.Errorf("creating trajectory file: %w", err)
		} else {
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
		}
	}
	headerWritten := false
	for state := range stateChan {
		if f == nil || err != nil {
			continue
		}
		if conf.Every > 1 && state.Tick%uint64(conf.Every) != 0 && !state.Final {
			continue
		}
		records := []trajectoryRecord{newTrajectoryRecord(state)}
		if !headerWritten {
			err = gocsv.Marshal(records, f)
			headerWritten = true
		} else {
			err = gocsv.MarshalWithoutHeaders(records, f)
		}
		if err != nil {
			err = fmt.Errorf("writing trajectory at tick %d: %w", state.Tick, err)
		}
	}
	return err
}

// MissionSummary summarizes a flight.
type MissionSummary struct {
	Vehicle           string  `yaml:"vehicle"`
	Planet            string  `yaml:"planet"`
	Autopilot         string  `yaml:"autopilot"`
	Start             string  `yaml:"start"`
	Duration          float64 `yaml:"duration_s"`
	Ticks             uint64  `yaml:"ticks"`
	Outcome           string  `yaml:"outcome"`
	Inserted          bool    `yaml:"inserted"`
	Altitude          float64 `yaml:"altitude_m"`
	MaxAltitude       float64 `yaml:"max_altitude_m"`
	Speed             float64 `yaml:"speed_mps"`
	Eccentricity      float64 `yaml:"eccentricity"`
	ApoapsisAltitude  float64 `yaml:"apoapsis_altitude_m"`
	PeriapsisAltitude float64 `yaml:"periapsis_altitude_m"`
	FuelLeft          float64 `yaml:"fuel_left_kg"`
	StagesLeft        int     `yaml:"stages_left"`
	Separations       int     `yaml:"separations"`
}

// WriteSummary writes the flight summary as YAML.
func (c ExportConfig) WriteSummary(s MissionSummary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.MkdirAll(c.dir(), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(c.path("summary", "yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// ReadSummary reads a flight summary written by WriteSummary.
func ReadSummary(path string) (MissionSummary, error) {
	var s MissionSummary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}
