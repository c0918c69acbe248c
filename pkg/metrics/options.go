package metrics

import (
	"maps"

	"github.com/prometheus/client_golang/prometheus"
)

// Option tunes a Manager before its metrics are registered.
type Option func(*Manager)

// WithNamespace replaces the "league" metric name prefix. Blank keeps it.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem replaces the "standings" subsystem. Blank keeps it.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithConstLabels stamps labels, e.g. {"league": "premier"}, on every series.
func WithConstLabels(labels map[string]string) Option {
	return func(m *Manager) {
		if len(labels) > 0 {
			m.constLabels = maps.Clone(labels)
		}
	}
}

// WithPrometheusRegistry registers the league metrics on r instead of the
// default registerer.
func WithPrometheusRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}
