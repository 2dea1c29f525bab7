package meter

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

// WithNamespace sets the prometheus namespace prefix. Applied before
// registration.
func WithNamespace(ns string) types.Option[*Meter] {
	return func(m *Meter) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithConstLabels adds labels to every series, e.g. the session id when
// several sessions report to one Prometheus. Applied before registration.
func WithConstLabels(labels map[string]string) types.Option[*Meter] {
	return func(m *Meter) {
		if len(labels) == 0 {
			return
		}
		if m.constLabels == nil {
			m.constLabels = make(prometheus.Labels, len(labels))
		}
		for k, v := range labels {
			m.constLabels[k] = v
		}
	}
}

// WithUpdateFrequency sets how often Monitor samples host statistics.
func WithUpdateFrequency(d time.Duration) types.Option[*Meter] {
	return func(m *Meter) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithHostStats toggles host sampling in Monitor.
func WithHostStats(enabled bool) types.Option[*Meter] {
	return func(m *Meter) {
		m.hostStats = enabled
	}
}

// WithComponentMetadata sets the component metadata for the Meter.
func WithComponentMetadata(name string, id string) types.Option[*Meter] {
	return func(m *Meter) {
		m.SetComponentMetadata(name, id)
	}
}

// WithLogger adds loggers to the Meter.
func WithLogger(loggers ...types.Logger) types.Option[*Meter] {
	return func(m *Meter) {
		m.ConnectLogger(loggers...)
	}
}
