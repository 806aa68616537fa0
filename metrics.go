package ascent

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the flight counters of a mission.
type Metrics struct {
	Ticks         prometheus.Counter
	Separations   prometheus.Counter
	EngineToggles prometheus.Counter
	Altitude      prometheus.Gauge
	Speed         prometheus.Gauge
	Angle         prometheus.Gauge
}

// NewMetrics creates the mission metrics and registers them on reg.
// If reg is nil, the metrics are still usable but not exported.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ascent_ticks_total",
			Help: "Total number of integration ticks.",
		}),
		Separations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ascent_stage_separations_total",
			Help: "Total number of stage separations.",
		}),
		EngineToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ascent_engine_toggles_total",
			Help: "Total number of engine on/off transitions.",
		}),
		Altitude: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ascent_altitude_meters",
			Help: "Current altitude above the planet radius.",
		}),
		Speed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ascent_speed_meters_per_second",
			Help: "Current inertial speed.",
		}),
		Angle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ascent_pitch_degrees",
			Help: "Current commanded pitch.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Ticks, m.Separations, m.EngineToggles, m.Altitude, m.Speed, m.Angle)
	}
	return m
}
