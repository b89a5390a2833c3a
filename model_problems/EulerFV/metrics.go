package EulerFV

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the run counters of one driver, kept on a private registry so that
// concurrent drivers never collide
type Metrics struct {
	Registry    *prometheus.Registry
	Cycles      prometheus.Counter
	Timestep    prometheus.Gauge
	SimTime     prometheus.Gauge
	CycleTime   prometheus.Histogram
	CellUpdates prometheus.Counter
}

func NewMetrics() (m *Metrics) {
	m = &Metrics{
		Registry: prometheus.NewRegistry(),
		Cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fvhydro_cycles_total",
			Help: "Completed integration cycles.",
		}),
		Timestep: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fvhydro_timestep",
			Help: "Timestep of the last cycle.",
		}),
		SimTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fvhydro_sim_time",
			Help: "Simulation time reached.",
		}),
		CycleTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fvhydro_cycle_seconds",
			Help:    "Wall time per cycle.",
			Buckets: prometheus.ExponentialBuckets(1.e-5, 4, 10),
		}),
		CellUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fvhydro_cell_updates_total",
			Help: "Interior cell updates, one per cell per cycle.",
		}),
	}
	m.Registry.MustRegister(m.Cycles, m.Timestep, m.SimTime, m.CycleTime, m.CellUpdates)
	return
}

func (m *Metrics) ObserveCycle(dt, simTime float64, elapsed time.Duration, ncells int) {
	m.Cycles.Inc()
	m.Timestep.Set(dt)
	m.SimTime.Set(simTime)
	m.CycleTime.Observe(elapsed.Seconds())
	m.CellUpdates.Add(float64(ncells))
}

// WriteToTextfile writes the registry in the text exposition format, for node exporter style collection
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
