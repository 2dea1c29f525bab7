package meter

import (
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

type metricKind int

const (
	kindCounter metricKind = iota
	kindGauge
	kindHistogram
)

type metricDef struct {
	name string
	kind metricKind
	help string
}

var metricDefs = []metricDef{
	{types.MetricEventsReceivedCount, kindCounter, "Control-system events accepted from sources."},
	{types.MetricEventsRejectedCount, kindCounter, "Events that could not be routed to a slot."},
	{types.MetricSnapshotCount, kindCounter, "History snapshots applied to stream buffers."},
	{types.MetricUpdateAppliedCount, kindCounter, "Incremental updates applied to stream buffers."},
	{types.MetricUpdateDroppedCount, kindCounter, "Incremental updates dropped as stale, duplicate or rate-less."},
	{types.MetricMissingInsertedCount, kindCounter, "Missing markers inserted for skipped samples."},
	{types.MetricRefreshCount, kindCounter, "Refresh cycles computed."},
	{types.MetricNoDataCount, kindCounter, "Refresh cycles that had no usable data."},
	{types.MetricFitFailureCount, kindCounter, "Fits reported as failed or unavailable."},
	{types.MetricFramePublishedCount, kindCounter, "Frames delivered to publishers."},
	{types.MetricFramePublishErrorCount, kindCounter, "Frames publishers failed to deliver."},
	{types.MetricRateWaitCount, kindCounter, "Waiting notices emitted while below the minimum beam rate."},
	{types.MetricComponentErrorCount, kindCounter, "Errors reported by components."},
	{types.MetricComponentRunningCount, kindGauge, "Components currently running."},
	{types.MetricCurrentRateHz, kindGauge, "Most recent beam rate in Hz."},
	{types.MetricSynchronizedPoints, kindGauge, "Points in the most recent frame."},
	{types.MetricCurrentCpuPercentage, kindGauge, "Host CPU utilisation percentage."},
	{types.MetricCurrentRamPercentage, kindGauge, "Host memory utilisation percentage."},
	{types.MetricCurrentGoRoutinesActive, kindGauge, "Goroutines in this process."},
	{types.MetricRefreshDuration, kindHistogram, "Time spent computing a refresh frame."},
}

func (m *Meter) initializeMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, def := range metricDefs {
		m.registerMetricLocked(def)
	}
}

func (m *Meter) registerMetricLocked(def metricDef) {
	switch def.kind {
	case kindCounter:
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Name: def.name, Help: def.help, ConstLabels: m.constLabels,
		})
		m.registry.MustRegister(c)
		m.counters[def.name] = c
		m.counts[def.name] = 0
	case kindGauge:
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Name: def.name, Help: def.help, ConstLabels: m.constLabels,
		})
		m.registry.MustRegister(g)
		m.gaugeVecs[def.name] = g
		m.gauges[def.name] = 0
	case kindHistogram:
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Name:        def.name,
			Help:        def.help,
			ConstLabels: m.constLabels,
			Buckets:     []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		})
		m.registry.MustRegister(h)
		m.histograms[def.name] = h
	}
}
