// Package metrics records optimizer activity as Prometheus collectors on a
// dedicated registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives events from annealing runs. Implementations must be safe
// for concurrent use since restarts share one recorder.
//
//go:generate mockgen -destination=mock/mock_recorder.go -package=metricsmock github.com/KirkDiggler/rpg-build-optimizer/internal/metrics Recorder
type Recorder interface {
	// Iteration is called once per completed annealing step
	Iteration(preset string, accepted bool)

	// InvalidNeighbor is called for every rejected neighbor
	InvalidNeighbor(preset, reason string)

	// EarlyTermination is called when a run gives up searching for a valid neighbor
	EarlyTermination(preset string)

	// RunFinished is called when a run ends, successfully or not
	RunFinished(preset string, bestUtility float64, elapsed time.Duration)
}

// Nop discards everything
type Nop struct{}

var _ Recorder = Nop{}

// Iteration implements Recorder
func (Nop) Iteration(string, bool) {}

// InvalidNeighbor implements Recorder
func (Nop) InvalidNeighbor(string, string) {}

// EarlyTermination implements Recorder
func (Nop) EarlyTermination(string) {}

// RunFinished implements Recorder
func (Nop) RunFinished(string, float64, time.Duration) {}

// Prometheus implements Recorder with client_golang collectors
type Prometheus struct {
	registry          *prometheus.Registry
	iterations        *prometheus.CounterVec
	accepted          *prometheus.CounterVec
	invalidNeighbors  *prometheus.CounterVec
	earlyTerminations *prometheus.CounterVec
	runs              *prometheus.CounterVec
	bestUtility       *prometheus.GaugeVec
	runDuration       *prometheus.HistogramVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates the collectors under namespace and registers them on
// a fresh registry
func NewPrometheus(namespace string) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "anneal",
			Name:      "iterations_total",
			Help:      "Completed annealing iterations.",
		}, []string{"preset"}),
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "anneal",
			Name:      "accepted_moves_total",
			Help:      "Neighbors accepted by the Metropolis rule.",
		}, []string{"preset"}),
		invalidNeighbors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "anneal",
			Name:      "invalid_neighbors_total",
			Help:      "Neighbors rejected by the validator, by reason.",
		}, []string{"preset", "reason"}),
		earlyTerminations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "anneal",
			Name:      "early_terminations_total",
			Help:      "Runs that stopped after exhausting neighbor retries.",
		}, []string{"preset"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "anneal",
			Name:      "runs_total",
			Help:      "Finished annealing runs.",
		}, []string{"preset"}),
		bestUtility: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "anneal",
			Name:      "best_utility",
			Help:      "Best utility of the most recent run.",
		}, []string{"preset"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "anneal",
			Name:      "run_duration_seconds",
			Help:      "Wall time of annealing runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"preset"}),
	}

	p.registry.MustRegister(
		p.iterations,
		p.accepted,
		p.invalidNeighbors,
		p.earlyTerminations,
		p.runs,
		p.bestUtility,
		p.runDuration,
	)
	return p
}

// Preregister creates zero-valued series for every preset, and for every
// preset and rejection reason, so dashboards see them before the first run
func (p *Prometheus) Preregister(presets, reasons []string) {
	for _, preset := range presets {
		p.iterations.WithLabelValues(preset)
		p.accepted.WithLabelValues(preset)
		p.earlyTerminations.WithLabelValues(preset)
		p.runs.WithLabelValues(preset)
		for _, reason := range reasons {
			p.invalidNeighbors.WithLabelValues(preset, reason)
		}
	}
}

// Registry exposes the underlying registry
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Iteration implements Recorder
func (p *Prometheus) Iteration(preset string, accepted bool) {
	p.iterations.WithLabelValues(preset).Inc()
	if accepted {
		p.accepted.WithLabelValues(preset).Inc()
	}
}

// InvalidNeighbor implements Recorder
func (p *Prometheus) InvalidNeighbor(preset, reason string) {
	p.invalidNeighbors.WithLabelValues(preset, reason).Inc()
}

// EarlyTermination implements Recorder
func (p *Prometheus) EarlyTermination(preset string) {
	p.earlyTerminations.WithLabelValues(preset).Inc()
}

// RunFinished implements Recorder
func (p *Prometheus) RunFinished(preset string, bestUtility float64, elapsed time.Duration) {
	p.runs.WithLabelValues(preset).Inc()
	p.bestUtility.WithLabelValues(preset).Set(bestUtility)
	p.runDuration.WithLabelValues(preset).Observe(elapsed.Seconds())
}
