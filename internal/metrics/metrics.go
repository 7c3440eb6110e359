// Package metrics records automaton runs as Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pot-ca/internal/sims/pots"
)

// Metrics holds the collectors of one process, registered on their own
// registry so tests and tools do not share global state.
type Metrics struct {
	Registry *prometheus.Registry

	Runs              *prometheus.CounterVec
	Failures          *prometheus.CounterVec
	GenerationsTotal  prometheus.Counter
	CyclesDetected    prometheus.Counter
	StableEmpty       prometheus.Counter
	Period            prometheus.Histogram
	SearchGenerations prometheus.Histogram
}

// New registers a fresh set of collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pots_runs_total",
			Help: "Completed computations by mode",
		}, []string{"mode"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pots_failures_total",
			Help: "Failed computations by mode",
		}, []string{"mode"}),
		GenerationsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "pots_generations_simulated_total",
			Help: "Generations stepped by direct simulation or cycle search",
		}),
		CyclesDetected: f.NewCounter(prometheus.CounterOpts{
			Name: "pots_cycles_detected_total",
			Help: "Extrapolations that found a repeating pattern",
		}),
		StableEmpty: f.NewCounter(prometheus.CounterOpts{
			Name: "pots_stable_empty_total",
			Help: "Extrapolations that ended with every pot empty",
		}),
		Period: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pots_cycle_period_generations",
			Help:    "Period of detected cycles",
			Buckets: []float64{1, 2, 5, 10, 50, 100, 500, 1000, 5000},
		}),
		SearchGenerations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pots_cycle_search_generations",
			Help:    "Generations simulated before a cycle was found",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}

// ObserveSimulation records a brute-force run that stepped the given number
// of generations. Runs whose tape died out report fewer than requested.
func (m *Metrics) ObserveSimulation(generations int64, err error) {
	if err != nil {
		m.Failures.WithLabelValues("simulate").Inc()
		return
	}
	m.Runs.WithLabelValues("simulate").Inc()
	m.GenerationsTotal.Add(float64(generations))
}

// ObserveExtrapolation records the bookkeeping of an extrapolated run.
func (m *Metrics) ObserveExtrapolation(res pots.Extrapolation, err error) {
	if err != nil {
		m.Failures.WithLabelValues("extrapolate").Inc()
		return
	}
	m.Runs.WithLabelValues("extrapolate").Inc()
	m.GenerationsTotal.Add(float64(res.Searched))
	switch {
	case res.StableEmpty:
		m.StableEmpty.Inc()
	case res.Period > 0:
		m.CyclesDetected.Inc()
		m.Period.Observe(float64(res.Period))
		m.SearchGenerations.Observe(float64(res.Searched))
	}
}

// WriteFile writes the current values in the Prometheus text format, for
// example into a node_exporter textfile collector directory.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
