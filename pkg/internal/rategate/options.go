package rategate

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// WithLogger adds loggers to the gate.
func WithLogger(loggers ...types.Logger) types.Option[types.RateGate] {
	return func(g types.RateGate) { g.ConnectLogger(loggers...) }
}

// WithSensor adds sensors to the gate.
func WithSensor(sensors ...types.Sensor) types.Option[types.RateGate] {
	return func(g types.RateGate) { g.ConnectSensor(sensors...) }
}

// WithRateSource polls src for the current code.
func WithRateSource(src types.RateSource) types.Option[types.RateGate] {
	return func(g types.RateGate) { g.ConnectRateSource(src) }
}

// WithInitialRate seeds the pushed rate.
func WithInitialRate(code types.RateCode) types.Option[types.RateGate] {
	return func(g types.RateGate) { g.Observe(code) }
}

// WithPollInterval overrides the poll period of waiters.
func WithPollInterval(d time.Duration) types.Option[types.RateGate] {
	return func(g types.RateGate) {
		if rg, ok := g.(*RateGate); ok && d > 0 {
			rg.pollInterval = d
		}
	}
}

// WithStatusInterval overrides how often waiters emit a waiting notice.
func WithStatusInterval(d time.Duration) types.Option[types.RateGate] {
	return func(g types.RateGate) {
		if rg, ok := g.(*RateGate); ok && d > 0 {
			rg.statusInterval = d
		}
	}
}

// WithComponentMetadata sets the gate name and id.
func WithComponentMetadata(name string, id string) types.Option[types.RateGate] {
	return func(g types.RateGate) { g.SetComponentMetadata(name, id) }
}
