package builder

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/meter"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type Meter = types.Meter

// MetricName is a type alias for metric names used in the Meter.
type MetricName string

// Here we re-export the constants from the types package
const (
	MetricEventsReceivedCount     MetricName = MetricName(types.MetricEventsReceivedCount)
	MetricEventsRejectedCount     MetricName = MetricName(types.MetricEventsRejectedCount)
	MetricSnapshotCount           MetricName = MetricName(types.MetricSnapshotCount)
	MetricUpdateAppliedCount      MetricName = MetricName(types.MetricUpdateAppliedCount)
	MetricUpdateDroppedCount      MetricName = MetricName(types.MetricUpdateDroppedCount)
	MetricMissingInsertedCount    MetricName = MetricName(types.MetricMissingInsertedCount)
	MetricRefreshCount            MetricName = MetricName(types.MetricRefreshCount)
	MetricNoDataCount             MetricName = MetricName(types.MetricNoDataCount)
	MetricFitFailureCount         MetricName = MetricName(types.MetricFitFailureCount)
	MetricFramePublishedCount     MetricName = MetricName(types.MetricFramePublishedCount)
	MetricFramePublishErrorCount  MetricName = MetricName(types.MetricFramePublishErrorCount)
	MetricRateWaitCount           MetricName = MetricName(types.MetricRateWaitCount)
	MetricComponentRunningCount   MetricName = MetricName(types.MetricComponentRunningCount)
	MetricComponentErrorCount     MetricName = MetricName(types.MetricComponentErrorCount)
	MetricCurrentRateHz           MetricName = MetricName(types.MetricCurrentRateHz)
	MetricSynchronizedPoints      MetricName = MetricName(types.MetricSynchronizedPoints)
	MetricCurrentCpuPercentage    MetricName = MetricName(types.MetricCurrentCpuPercentage)
	MetricCurrentRamPercentage    MetricName = MetricName(types.MetricCurrentRamPercentage)
	MetricCurrentGoRoutinesActive MetricName = MetricName(types.MetricCurrentGoRoutinesActive)
	MetricRefreshDuration         MetricName = MetricName(types.MetricRefreshDuration)
)

func NewMeter(options ...types.Option[*meter.Meter]) types.Meter {
	return meter.NewMeter(options...)
}

// MeterWithNamespace sets the prometheus namespace (default "rtbsa").
func MeterWithNamespace(ns string) types.Option[*meter.Meter] {
	return meter.WithNamespace(ns)
}

// MeterWithConstLabels labels every series, e.g. with the session id.
func MeterWithConstLabels(labels map[string]string) types.Option[*meter.Meter] {
	return meter.WithConstLabels(labels)
}

// MeterWithUpdateFrequency sets how often host statistics are sampled.
func MeterWithUpdateFrequency(d time.Duration) types.Option[*meter.Meter] {
	return meter.WithUpdateFrequency(d)
}

// MeterWithHostStats toggles CPU/RAM/goroutine sampling.
func MeterWithHostStats(enabled bool) types.Option[*meter.Meter] {
	return meter.WithHostStats(enabled)
}

func MeterWithLogger(loggers ...types.Logger) types.Option[*meter.Meter] {
	return meter.WithLogger(loggers...)
}

func MeterWithComponentMetadata(name string, id string) types.Option[*meter.Meter] {
	return meter.WithComponentMetadata(name, id)
}

// ServeMetrics exposes m on addr under /metrics until ctx ends, sampling host
// statistics alongside. It returns nil after a clean shutdown.
func ServeMetrics(ctx context.Context, addr string, m types.Meter) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go m.Monitor(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	m.NotifyLoggers(types.InfoLevel, "Metrics listening",
		"component", m.GetComponentMetadata(), "event", "Listen", "result", "SUCCESS", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
