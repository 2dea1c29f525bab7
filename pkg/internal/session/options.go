package session

import (
	"strings"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/filterchain"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

func WithMode(mode types.Mode) types.Option[*Session] {
	return func(s *Session) { s.mode = mode }
}

// WithCapacity sets the per-slot buffer capacity.
func WithCapacity(n int) types.Option[*Session] {
	return func(s *Session) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithNumPoints sets how many recent samples each refresh analyzes.
func WithNumPoints(n int) types.Option[*Session] {
	return func(s *Session) {
		if n > 0 {
			s.numPoints = n
		}
	}
}

// WithStdDevFilter enables the deviation filter at k standard deviations.
func WithStdDevFilter(enabled bool, k float64) types.Option[*Session] {
	return func(s *Session) {
		s.filterByStdDevs = enabled
		if k > 0 {
			s.stdDevsToKeep = k
		}
	}
}

func WithDeviceRules(rules filterchain.DeviceRules) types.Option[*Session] {
	return func(s *Session) { s.deviceRules = rules }
}

// WithFit selects the fit computed on each refresh. order is used by
// polynomial fits.
func WithFit(kind types.FitKind, order int) types.Option[*Session] {
	return func(s *Session) {
		s.fitKind = kind
		if order > 0 {
			s.fitOrder = order
		}
	}
}

// WithMinimumRate sets the rate correlation mode waits for.
func WithMinimumRate(hz float64) types.Option[*Session] {
	return func(s *Session) {
		if hz > 0 {
			s.minRateHz = hz
		}
	}
}

func WithRateGate(g types.RateGate) types.Option[*Session] {
	return func(s *Session) { s.gate = g }
}

// WithSeedPollInterval sets how often Initialize checks for history.
func WithSeedPollInterval(d time.Duration) types.Option[*Session] {
	return func(s *Session) {
		if d > 0 {
			s.seedPoll = d
		}
	}
}

func WithLogger(loggers ...types.Logger) types.Option[*Session] {
	return func(s *Session) { s.ConnectLogger(loggers...) }
}

func WithSensor(sensors ...types.Sensor) types.Option[*Session] {
	return func(s *Session) { s.ConnectSensor(sensors...) }
}

// WithSessionID replaces the generated session id. Blank ids are ignored.
func WithSessionID(id string) types.Option[*Session] {
	return func(s *Session) {
		if id = strings.TrimSpace(id); id != "" {
			s.id = id
		}
	}
}

func WithComponentMetadata(name string, id string) types.Option[*Session] {
	return func(s *Session) { s.SetComponentMetadata(name, id) }
}
