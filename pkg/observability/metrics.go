package observability

import (
	"context"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the routing collectors.
type Metrics struct {
	Resolutions  *prometheus.CounterVec
	Transitions  *prometheus.CounterVec
	ResolveDelay *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_resolutions_total",
				Help: "Link resolutions by source and outcome",
			},
			[]string{"source", "outcome", "intent"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_transitions_total",
				Help: "Section transition requests by outcome",
			},
			[]string{"section", "kind", "outcome"},
		),
		ResolveDelay: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waypoint_resolve_hook_lag_seconds",
				Help:    "Delay between a resolution and its hook being observed",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"source"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Resolutions, m.Transitions, m.ResolveDelay)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnResolve: func(_ context.Context, e *domain.ResolveEvent) {
			intent := "none"
			if e.Intent != nil {
				intent = string(e.Intent.Kind())
			}
			m.Resolutions.WithLabelValues(string(e.Source), string(e.Outcome), intent).Inc()
			if !e.Timestamp.IsZero() {
				m.ResolveDelay.WithLabelValues(string(e.Source)).Observe(time.Since(e.Timestamp).Seconds())
			}
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.Section, string(e.Kind), string(e.Outcome)).Inc()
		},
	}
}
