// Package builder is the public entry point for assembling an acquisition
// analysis pipeline: sessions, event sources, frame publishers and the
// observability stack around them.
package builder

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

type (
	ComponentMetadata  = types.ComponentMetadata
	Slot               = types.Slot
	RateCode           = types.RateCode
	Mode               = types.Mode
	FitKind            = types.FitKind
	Event              = types.Event
	EventKind          = types.EventKind
	HistorySnapshot    = types.HistorySnapshot
	ValueUpdate        = types.ValueUpdate
	Frame              = types.Frame
	FitResult          = types.FitResult
	Statistics         = types.Statistics
	Spectrum           = types.Spectrum
	UpdateResult       = types.UpdateResult
	SynchronizedPair   = types.SynchronizedPair
	SubmitFunc         = types.SubmitFunc
	EventSource        = types.EventSource
	FramePublisher     = types.FramePublisher
	FramePublisherFunc = types.FramePublisherFunc
	TLSConfig          = types.TLSConfig
)

const (
	SlotA = types.SlotA
	SlotB = types.SlotB

	ModeTimeSeries  = types.ModeTimeSeries
	ModeCorrelation = types.ModeCorrelation
	ModeSpectrum    = types.ModeSpectrum

	FitNone       = types.FitNone
	FitLinear     = types.FitLinear
	FitPolynomial = types.FitPolynomial

	EventHistorySnapshot = types.EventHistorySnapshot
	EventValueUpdate     = types.EventValueUpdate
	EventRateChange      = types.EventRateChange

	RateUndefined = types.RateUndefined
	Rate0Hz       = types.Rate0Hz
	Rate1Hz       = types.Rate1Hz
	Rate10Hz      = types.Rate10Hz
	Rate30Hz      = types.Rate30Hz
	Rate60Hz      = types.Rate60Hz
	Rate120Hz     = types.Rate120Hz
)
