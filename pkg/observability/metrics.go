package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of a run. Each instance owns its registry so
// several runs (and tests) never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	Trials        *prometheus.CounterVec
	PhaseDuration *prometheus.HistogramVec
	Triggers      *prometheus.CounterVec
	Aborts        prometheus.Counter
	Planned       *prometheus.GaugeVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Trials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadence_trials_total",
				Help: "Total number of completed trials",
			},
			[]string{"kind", "condition"},
		),
		PhaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cadence_phase_duration_seconds",
				Help:    "Measured duration of trial phases",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
			[]string{"phase"},
		),
		Triggers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadence_triggers_total",
				Help: "Total number of key and scanner events",
			},
			[]string{"key"},
		),
		Aborts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cadence_aborts_total",
			Help: "Total number of trials stopped before their end",
		}),
		Planned: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cadence_planned_seconds",
				Help: "Planned experiment durations",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(m.Trials, m.PhaseDuration, m.Triggers, m.Aborts, m.Planned)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObservePlan records the reconciled schedule of a timeline.
func (m *Metrics) ObservePlan(tl *domain.Timeline) {
	m.Planned.WithLabelValues("naive").Set(tl.Schedule.Naive)
	m.Planned.WithLabelValues("total").Set(tl.Schedule.Total)
	m.Planned.WithLabelValues("padding").Set(tl.Schedule.Padding)
}

// Hooks returns the lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrialEnd: func(_ context.Context, e *domain.TrialEvent) {
			m.Trials.WithLabelValues(string(e.Kind), string(e.Condition)).Inc()
		},
		OnPhaseLeave: func(_ context.Context, e *domain.PhaseEvent) {
			if e.Cause == domain.CauseStopped {
				m.Aborts.Inc()
			}
			m.PhaseDuration.WithLabelValues(string(e.Phase)).Observe(e.Duration)
		},
		OnKey: func(_ context.Context, e *domain.KeyEvent) {
			m.Triggers.WithLabelValues(e.Key).Inc()
		},
	}
}
