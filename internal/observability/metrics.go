package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Tejas544/gully-scorer/internal/platform/resilience"
)

const metricsNamespace = "gully_scorer"

// ScoringMetrics exports scoring activity and store circuit state to Prometheus.
type ScoringMetrics struct {
	balls          *prometheus.CounterVec
	completed      *prometheus.CounterVec
	persistFailure *prometheus.CounterVec
	breakerState   *prometheus.GaugeVec
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewScoringMetrics(reg prometheus.Registerer) *ScoringMetrics {
	m := &ScoringMetrics{
		balls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "balls_recorded_total",
			Help:      "Deliveries recorded, by kind.",
		}, []string{"kind"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "matches_completed_total",
			Help:      "Matches completed, by phase and tie.",
		}, []string{"phase", "tied"}),
		persistFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "persistence_failures_total",
			Help:      "Failed store writes, by operation.",
		}, []string{"operation"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "circuit_state",
			Help:      "1 for the current state of each store circuit breaker.",
		}, []string{"breaker", "state"}),
	}
	if reg != nil {
		reg.MustRegister(m.balls, m.completed, m.persistFailure, m.breakerState)
	}
	return m
}

func (m *ScoringMetrics) BallRecorded(kind string) {
	m.balls.WithLabelValues(kind).Inc()
}

func (m *ScoringMetrics) MatchCompleted(phase string, tied bool) {
	m.completed.WithLabelValues(phase, strconv.FormatBool(tied)).Inc()
}

func (m *ScoringMetrics) PersistenceFailed(operation string) {
	m.persistFailure.WithLabelValues(operation).Inc()
}

// TrackBreaker publishes the breaker's state now and on every transition.
func (m *ScoringMetrics) TrackBreaker(b *resilience.Breaker) {
	m.setBreakerState(b.Name(), b.State())
	b.OnStateChange(func(name string, _, to resilience.State) {
		m.setBreakerState(name, to)
	})
}

func (m *ScoringMetrics) setBreakerState(name string, current resilience.State) {
	for _, state := range []resilience.State{resilience.StateClosed, resilience.StateOpen, resilience.StateHalfOpen} {
		value := 0.0
		if state == current {
			value = 1
		}
		m.breakerState.WithLabelValues(name, string(state)).Set(value)
	}
}
