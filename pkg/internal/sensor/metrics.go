package sensor

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

func (s *Sensor) incrementMeterCounters(metric string) {
	for _, m := range s.meters.list() {
		m.IncrementCount(metric)
	}
}

func (s *Sensor) addMeterCounters(metric string, delta uint64) {
	for _, m := range s.meters.list() {
		m.AddCount(metric, delta)
	}
}

func (s *Sensor) decrementMeterCounters(metric string) {
	for _, m := range s.meters.list() {
		m.DecrementCount(metric)
	}
}

func (s *Sensor) setMeterGauges(metric string, v float64) {
	for _, m := range s.meters.list() {
		m.SetGauge(metric, v)
	}
}

func (s *Sensor) observeMeterDurations(metric string, d time.Duration) {
	for _, m := range s.meters.list() {
		m.ObserveDuration(metric, d)
	}
}

// decorateCallbacks appends the callbacks that translate sensor events into
// meter updates. They run after user callbacks.
func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	return append(
		options,
		WithOnStartFunc(func(c types.ComponentMetadata) {
			s.incrementMeterCounters(types.MetricComponentRunningCount)
		}),
		WithOnStopFunc(func(c types.ComponentMetadata) {
			s.decrementMeterCounters(types.MetricComponentRunningCount)
		}),
		WithOnErrorFunc(func(c types.ComponentMetadata, err error) {
			s.incrementMeterCounters(types.MetricComponentErrorCount)
		}),
		WithOnEventFunc(func(c types.ComponentMetadata, ev types.Event) {
			s.incrementMeterCounters(types.MetricEventsReceivedCount)
			if ev.Kind == types.EventRateChange {
				if hz, ok := ev.Rate.Hz(); ok {
					s.setMeterGauges(types.MetricCurrentRateHz, hz)
				}
			}
		}),
		WithOnSnapshotFunc(func(c types.ComponentMetadata, slot types.Slot, n int) {
			s.incrementMeterCounters(types.MetricSnapshotCount)
		}),
		WithOnUpdateAppliedFunc(func(c types.ComponentMetadata, slot types.Slot, res types.UpdateResult) {
			s.incrementMeterCounters(types.MetricUpdateAppliedCount)
			if res.MissingInserted > 0 {
				s.addMeterCounters(types.MetricMissingInsertedCount, uint64(res.MissingInserted))
			}
		}),
		WithOnUpdateDroppedFunc(func(c types.ComponentMetadata, slot types.Slot, res types.UpdateResult) {
			s.incrementMeterCounters(types.MetricUpdateDroppedCount)
		}),
		WithOnRateWaitingFunc(func(c types.ComponentMetadata, code types.RateCode, thresholdHz float64) {
			s.incrementMeterCounters(types.MetricRateWaitCount)
		}),
		WithOnRefreshFunc(func(c types.ComponentMetadata, f types.Frame, took time.Duration) {
			s.incrementMeterCounters(types.MetricRefreshCount)
			s.observeMeterDurations(types.MetricRefreshDuration, took)
			s.setMeterGauges(types.MetricSynchronizedPoints, float64(len(f.Y)))
			if f.Kind == types.ResultNoData {
				s.incrementMeterCounters(types.MetricNoDataCount)
			}
		}),
		WithOnFitFailureFunc(func(c types.ComponentMetadata, res types.FitResult) {
			s.incrementMeterCounters(types.MetricFitFailureCount)
		}),
		WithOnFramePublishedFunc(func(c types.ComponentMetadata, topic string, size int) {
			s.incrementMeterCounters(types.MetricFramePublishedCount)
		}),
	)
}
