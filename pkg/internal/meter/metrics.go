package meter

import (
	"net/http"
	"sort"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// IncrementCount adds one to a counter or running gauge.
func (m *Meter) IncrementCount(metricName string) {
	m.AddCount(metricName, 1)
}

// AddCount adds delta to a counter or running gauge. Unknown names are ignored.
func (m *Meter) AddCount(metricName string, delta uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[metricName]; ok {
		m.counts[metricName] += delta
		c.Add(float64(delta))
		return
	}
	if g, ok := m.gaugeVecs[metricName]; ok {
		m.gauges[metricName] += float64(delta)
		g.Set(m.gauges[metricName])
	}
}

// DecrementCount lowers a running gauge. Counters never go down.
func (m *Meter) DecrementCount(metricName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.gaugeVecs[metricName]
	if !ok || m.gauges[metricName] <= 0 {
		return
	}
	m.gauges[metricName]--
	g.Set(m.gauges[metricName])
}

// GetMetricCount returns a counter value, or a gauge value truncated to uint64.
func (m *Meter) GetMetricCount(metricName string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.counts[metricName]; ok {
		return v
	}
	if v, ok := m.gauges[metricName]; ok && v > 0 {
		return uint64(v)
	}
	return 0
}

// SetGauge sets an absolute gauge value.
func (m *Meter) SetGauge(metricName string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.gaugeVecs[metricName]
	if !ok {
		return
	}
	m.gauges[metricName] = value
	g.Set(value)
}

// GetGauge returns the last value set on a gauge.
func (m *Meter) GetGauge(metricName string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gauges[metricName]
}

// ObserveDuration records d on a histogram metric.
func (m *Meter) ObserveDuration(metricName string, d time.Duration) {
	m.mu.Lock()
	h, ok := m.histograms[metricName]
	m.mu.Unlock()
	if ok {
		h.Observe(d.Seconds())
	}
}

// GetMetricNames lists every registered metric name.
func (m *Meter) GetMetricNames() []string {
	names := make([]string, 0, len(metricDefs))
	for _, def := range metricDefs {
		names = append(names, def.name)
	}
	sort.Strings(names)
	return names
}

// Registry exposes the underlying prometheus registry.
func (m *Meter) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Meter) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var _ types.Meter = (*Meter)(nil)
