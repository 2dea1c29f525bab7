package types

import (
	"context"
	"net/http"
	"time"
)

const (
	MetricEventsReceivedCount     = "events_received_total"
	MetricEventsRejectedCount     = "events_rejected_total"
	MetricSnapshotCount           = "history_snapshots_total"
	MetricUpdateAppliedCount      = "updates_applied_total"
	MetricUpdateDroppedCount      = "updates_dropped_total"
	MetricMissingInsertedCount    = "missing_samples_inserted_total"
	MetricRefreshCount            = "refreshes_total"
	MetricNoDataCount             = "refresh_no_data_total"
	MetricFitFailureCount         = "fit_failures_total"
	MetricFramePublishedCount     = "frames_published_total"
	MetricFramePublishErrorCount  = "frame_publish_errors_total"
	MetricRateWaitCount           = "rate_waits_total"
	MetricComponentRunningCount   = "components_running"
	MetricComponentErrorCount     = "component_errors_total"
	MetricCurrentRateHz           = "beam_rate_hz"
	MetricSynchronizedPoints      = "synchronized_points"
	MetricCurrentCpuPercentage    = "host_cpu_percent"
	MetricCurrentRamPercentage    = "host_ram_percent"
	MetricCurrentGoRoutinesActive = "go_routines_active"
	MetricRefreshDuration         = "refresh_duration_seconds"
)

// Meter records counters, gauges and durations for the running application.
type Meter interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	ConnectLogger(...Logger)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	IncrementCount(metricName string)
	AddCount(metricName string, delta uint64)
	DecrementCount(metricName string)
	GetMetricCount(metricName string) uint64
	SetGauge(metricName string, value float64)
	GetGauge(metricName string) float64
	ObserveDuration(metricName string, d time.Duration)
	GetMetricNames() []string

	// Monitor samples host statistics until ctx ends.
	Monitor(ctx context.Context)
	Handler() http.Handler
}
