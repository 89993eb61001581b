package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option configures a Manager before its families are registered.
type Option func(*Manager)

// WithNamespace overrides the metric name prefix.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithLatencyBuckets overrides the shared millisecond histogram buckets.
func WithLatencyBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRegistry registers the manager's families on reg instead of the
// default registerer.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(m *Manager) {
		if reg != nil {
			m.reg = reg
		}
	}
}
