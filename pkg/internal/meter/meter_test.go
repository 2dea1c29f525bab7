package meter

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersMirrorIntoRegistry(t *testing.T) {
	m := NewMeter(WithHostStats(false))

	m.IncrementCount(types.MetricUpdateAppliedCount)
	m.AddCount(types.MetricMissingInsertedCount, 7)
	m.IncrementCount("not_a_metric")

	if got := m.GetMetricCount(types.MetricUpdateAppliedCount); got != 1 {
		t.Fatalf("applied count = %d, want 1", got)
	}
	if got := testutil.ToFloat64(m.counters[types.MetricMissingInsertedCount]); got != 7 {
		t.Fatalf("prometheus missing count = %v, want 7", got)
	}
	if got := m.GetMetricCount("not_a_metric"); got != 0 {
		t.Fatalf("unknown metric = %d, want 0", got)
	}
}

func TestRunningGaugeGoesUpAndDown(t *testing.T) {
	m := NewMeter(WithHostStats(false))

	m.IncrementCount(types.MetricComponentRunningCount)
	m.IncrementCount(types.MetricComponentRunningCount)
	m.DecrementCount(types.MetricComponentRunningCount)
	if got := m.GetMetricCount(types.MetricComponentRunningCount); got != 1 {
		t.Fatalf("running = %d, want 1", got)
	}

	m.DecrementCount(types.MetricComponentRunningCount)
	m.DecrementCount(types.MetricComponentRunningCount)
	if got := testutil.ToFloat64(m.gaugeVecs[types.MetricComponentRunningCount]); got != 0 {
		t.Fatalf("running gauge = %v, want 0", got)
	}

	// counters ignore decrements
	m.IncrementCount(types.MetricRefreshCount)
	m.DecrementCount(types.MetricRefreshCount)
	if got := m.GetMetricCount(types.MetricRefreshCount); got != 1 {
		t.Fatalf("refresh count = %d, want 1", got)
	}
}

func TestGaugeAndHistogram(t *testing.T) {
	m := NewMeter(WithHostStats(false))

	m.SetGauge(types.MetricCurrentRateHz, 120)
	if got := m.GetGauge(types.MetricCurrentRateHz); got != 120 {
		t.Fatalf("rate gauge = %v", got)
	}
	m.ObserveDuration(types.MetricRefreshDuration, 3*time.Millisecond)
	if got := testutil.CollectAndCount(m.histograms[types.MetricRefreshDuration]); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}
}

func TestHandlerExposesNamespace(t *testing.T) {
	m := NewMeter(WithHostStats(false), WithNamespace("bsa"))
	m.IncrementCount(types.MetricFramePublishedCount)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "bsa_frames_published_total 1") {
		t.Fatalf("expected frames counter in exposition, got:\n%s", body)
	}
}

func TestConstLabelsOnEverySeries(t *testing.T) {
	m := NewMeter(WithHostStats(false), WithConstLabels(map[string]string{"session": "s-1"}))
	m.IncrementCount(types.MetricRefreshCount)
	m.ObserveDuration(types.MetricRefreshDuration, time.Millisecond)

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != len(metricDefs) {
		t.Fatalf("gathered %d families, want %d", len(families), len(metricDefs))
	}
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			labels := metric.GetLabel()
			if len(labels) != 1 || labels[0].GetName() != "session" || labels[0].GetValue() != "s-1" {
				t.Fatalf("%s: unexpected labels %v", fam.GetName(), labels)
			}
		}
	}
}

func TestMonitorStopsWithContext(t *testing.T) {
	m := NewMeter(WithUpdateFrequency(10 * time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		m.Monitor(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Monitor did not return after context cancel")
	}
	if m.GetGauge(types.MetricCurrentGoRoutinesActive) <= 0 {
		t.Fatal("expected goroutine gauge to be sampled")
	}
}

func TestMetricNamesSorted(t *testing.T) {
	names := NewMeter(WithHostStats(false)).GetMetricNames()
	if len(names) != len(metricDefs) {
		t.Fatalf("names = %d, defs = %d", len(names), len(metricDefs))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted at %d", i)
		}
	}
}
