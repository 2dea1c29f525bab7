package sensor_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/sensor"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type stubMeter struct {
	mu     sync.Mutex
	counts map[string]uint64
	gauges map[string]float64
	obs    map[string]int
}

func newStubMeter() *stubMeter {
	return &stubMeter{counts: map[string]uint64{}, gauges: map[string]float64{}, obs: map[string]int{}}
}

func (m *stubMeter) GetComponentMetadata() types.ComponentMetadata        { return types.ComponentMetadata{} }
func (m *stubMeter) SetComponentMetadata(string, string)                  {}
func (m *stubMeter) ConnectLogger(...types.Logger)                        {}
func (m *stubMeter) NotifyLoggers(types.LogLevel, string, ...interface{}) {}
func (m *stubMeter) Monitor(context.Context)                              {}
func (m *stubMeter) Handler() http.Handler                                { return http.NotFoundHandler() }
func (m *stubMeter) GetMetricNames() []string                             { return nil }

func (m *stubMeter) IncrementCount(name string) { m.AddCount(name, 1) }
func (m *stubMeter) AddCount(name string, d uint64) {
	m.mu.Lock()
	m.counts[name] += d
	m.mu.Unlock()
}
func (m *stubMeter) DecrementCount(name string) {
	m.mu.Lock()
	if m.counts[name] > 0 {
		m.counts[name]--
	}
	m.mu.Unlock()
}
func (m *stubMeter) GetMetricCount(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}
func (m *stubMeter) SetGauge(name string, v float64) {
	m.mu.Lock()
	m.gauges[name] = v
	m.mu.Unlock()
}
func (m *stubMeter) GetGauge(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gauges[name]
}
func (m *stubMeter) ObserveDuration(name string, _ time.Duration) {
	m.mu.Lock()
	m.obs[name]++
	m.mu.Unlock()
}

func TestSensorCallbacks(t *testing.T) {
	var starts, stops, errs, events, refreshes int64

	s := sensor.NewSensor(
		sensor.WithOnStartFunc(func(types.ComponentMetadata) { atomic.AddInt64(&starts, 1) }),
		sensor.WithOnStopFunc(func(types.ComponentMetadata) { atomic.AddInt64(&stops, 1) }),
		sensor.WithOnErrorFunc(func(types.ComponentMetadata, error) { atomic.AddInt64(&errs, 1) }),
		sensor.WithOnEventFunc(func(types.ComponentMetadata, types.Event) { atomic.AddInt64(&events, 1) }),
		sensor.WithOnRefreshFunc(func(types.ComponentMetadata, types.Frame, time.Duration) { atomic.AddInt64(&refreshes, 1) }),
	)

	meta := types.ComponentMetadata{ID: "x", Type: "SESSION"}
	s.InvokeOnStart(meta)
	s.InvokeOnEvent(meta, types.Event{Kind: types.EventValueUpdate})
	s.InvokeOnEvent(meta, types.Event{Kind: types.EventValueUpdate})
	s.InvokeOnError(meta, errors.New("boom"))
	s.InvokeOnRefresh(meta, types.Frame{}, time.Millisecond)
	s.InvokeOnStop(meta)

	if starts != 1 || stops != 1 || errs != 1 || events != 2 || refreshes != 1 {
		t.Fatalf("unexpected callback counts: start=%d stop=%d err=%d events=%d refresh=%d", starts, stops, errs, events, refreshes)
	}
}

func TestSensorMeterWiring(t *testing.T) {
	m := newStubMeter()
	s := sensor.NewSensor(sensor.WithMeter(m))
	meta := types.ComponentMetadata{ID: "x"}

	s.InvokeOnStart(meta)
	if got := m.GetMetricCount(types.MetricComponentRunningCount); got != 1 {
		t.Fatalf("running count = %d, want 1", got)
	}
	s.InvokeOnStop(meta)
	if got := m.GetMetricCount(types.MetricComponentRunningCount); got != 0 {
		t.Fatalf("running count after stop = %d, want 0", got)
	}

	s.InvokeOnUpdateApplied(meta, types.SlotA, types.UpdateResult{Applied: true, ElapsedPoints: 4, MissingInserted: 3})
	s.InvokeOnUpdateDropped(meta, types.SlotB, types.UpdateResult{Reason: types.UpdateStaleOrDupe})
	s.InvokeOnEvent(meta, types.Event{Kind: types.EventRateChange, Rate: types.Rate120Hz})
	s.InvokeOnRefresh(meta, types.Frame{Kind: types.ResultNoData}, time.Millisecond)
	s.InvokeOnFitFailure(meta, types.FitResult{Status: types.FitFailed})
	s.InvokeOnFramePublished(meta, "rtbsa/frames", 128)

	checks := map[string]uint64{
		types.MetricUpdateAppliedCount:   1,
		types.MetricMissingInsertedCount: 3,
		types.MetricUpdateDroppedCount:   1,
		types.MetricEventsReceivedCount:  1,
		types.MetricRefreshCount:         1,
		types.MetricNoDataCount:          1,
		types.MetricFitFailureCount:      1,
		types.MetricFramePublishedCount:  1,
	}
	for name, want := range checks {
		if got := m.GetMetricCount(name); got != want {
			t.Errorf("%s = %d, want %d", name, got, want)
		}
	}
	if got := m.GetGauge(types.MetricCurrentRateHz); got != 120 {
		t.Errorf("rate gauge = %v, want 120", got)
	}
	if m.obs[types.MetricRefreshDuration] != 1 {
		t.Errorf("expected one refresh duration observation")
	}
}

func TestSensorMetadata(t *testing.T) {
	s := sensor.NewSensor(sensor.WithComponentMetadata("probe", "id-7"))
	meta := s.GetComponentMetadata()
	if meta.Name != "probe" || meta.ID != "id-7" || meta.Type != "SENSOR" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if len(s.GetMeters()) != 0 {
		t.Fatal("expected no meters")
	}
}

func TestSensorIgnoresNilAndAllowsReentrantRegistration(t *testing.T) {
	s := sensor.NewSensor(sensor.WithMeter(nil), sensor.WithLogger(nil))
	if len(s.GetMeters()) != 0 {
		t.Fatal("nil meter must not be connected")
	}
	s.NotifyLoggers(types.ErrorLevel, "no loggers")

	var late int64
	s.RegisterOnStart(nil, func(types.ComponentMetadata) {
		s.RegisterOnStart(func(types.ComponentMetadata) { atomic.AddInt64(&late, 1) })
	})

	meta := types.ComponentMetadata{ID: "x"}
	s.InvokeOnStart(meta)
	if atomic.LoadInt64(&late) != 0 {
		t.Fatal("a callback registered during invocation must wait for the next event")
	}
	s.InvokeOnStart(meta)
	if atomic.LoadInt64(&late) != 1 {
		t.Fatalf("late callback ran %d times, want 1", late)
	}
}
