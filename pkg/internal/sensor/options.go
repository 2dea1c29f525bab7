package sensor

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// WithLogger adds loggers to a Sensor.
func WithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.ConnectLogger(logger...)
	}
}

// WithMeter connects meters that receive counts from the built-in callbacks.
func WithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.ConnectMeter(meter...)
	}
}

// WithComponentMetadata overrides the sensor name and id.
func WithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return func(m types.Sensor) {
		m.SetComponentMetadata(name, id)
	}
}

func WithOnStartFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnStart(callback...) }
}

func WithOnStopFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnStop(callback...) }
}

func WithOnErrorFunc(callback ...func(c types.ComponentMetadata, err error)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnError(callback...) }
}

func WithOnEventFunc(callback ...func(c types.ComponentMetadata, ev types.Event)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnEvent(callback...) }
}

func WithOnSnapshotFunc(callback ...func(c types.ComponentMetadata, slot types.Slot, n int)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnSnapshot(callback...) }
}

func WithOnUpdateAppliedFunc(callback ...func(c types.ComponentMetadata, slot types.Slot, res types.UpdateResult)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnUpdateApplied(callback...) }
}

func WithOnUpdateDroppedFunc(callback ...func(c types.ComponentMetadata, slot types.Slot, res types.UpdateResult)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnUpdateDropped(callback...) }
}

func WithOnRateWaitingFunc(callback ...func(c types.ComponentMetadata, code types.RateCode, thresholdHz float64)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnRateWaiting(callback...) }
}

func WithOnRateResumedFunc(callback ...func(c types.ComponentMetadata, code types.RateCode)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnRateResumed(callback...) }
}

func WithOnRefreshFunc(callback ...func(c types.ComponentMetadata, f types.Frame, took time.Duration)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnRefresh(callback...) }
}

func WithOnFitFailureFunc(callback ...func(c types.ComponentMetadata, res types.FitResult)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnFitFailure(callback...) }
}

func WithOnFramePublishedFunc(callback ...func(c types.ComponentMetadata, topic string, size int)) types.Option[types.Sensor] {
	return func(m types.Sensor) { m.RegisterOnFramePublished(callback...) }
}
