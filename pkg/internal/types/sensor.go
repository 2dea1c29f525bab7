package types

import "time"

// Sensor fans component lifecycle and stream events out to registered
// callbacks and connected meters.
type Sensor interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	ConnectLogger(...Logger)
	ConnectMeter(...Meter)
	GetMeters() []Meter
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	RegisterOnStart(...func(ComponentMetadata))
	RegisterOnStop(...func(ComponentMetadata))
	RegisterOnError(...func(ComponentMetadata, error))
	RegisterOnEvent(...func(ComponentMetadata, Event))
	RegisterOnSnapshot(...func(ComponentMetadata, Slot, int))
	RegisterOnUpdateApplied(...func(ComponentMetadata, Slot, UpdateResult))
	RegisterOnUpdateDropped(...func(ComponentMetadata, Slot, UpdateResult))
	RegisterOnRateWaiting(...func(ComponentMetadata, RateCode, float64))
	RegisterOnRateResumed(...func(ComponentMetadata, RateCode))
	RegisterOnRefresh(...func(ComponentMetadata, Frame, time.Duration))
	RegisterOnFitFailure(...func(ComponentMetadata, FitResult))
	RegisterOnFramePublished(...func(ComponentMetadata, string, int))

	InvokeOnStart(ComponentMetadata)
	InvokeOnStop(ComponentMetadata)
	InvokeOnError(ComponentMetadata, error)
	InvokeOnEvent(ComponentMetadata, Event)
	InvokeOnSnapshot(ComponentMetadata, Slot, int)
	InvokeOnUpdateApplied(ComponentMetadata, Slot, UpdateResult)
	InvokeOnUpdateDropped(ComponentMetadata, Slot, UpdateResult)
	InvokeOnRateWaiting(ComponentMetadata, RateCode, float64)
	InvokeOnRateResumed(ComponentMetadata, RateCode)
	InvokeOnRefresh(ComponentMetadata, Frame, time.Duration)
	InvokeOnFitFailure(ComponentMetadata, FitResult)
	InvokeOnFramePublished(ComponentMetadata, string, int)
}
