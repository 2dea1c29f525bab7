package builder

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/filterchain"
	"github.com/joeydtaylor/rtbsa/pkg/internal/rategate"
	"github.com/joeydtaylor/rtbsa/pkg/internal/session"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type Session = session.Session

type Runner = session.Runner

type RateGate = types.RateGate

type RateSource = types.RateSource

type RateSourceFunc = types.RateSourceFunc

// Session status texts shown to viewers.
const (
	StatusInitializing = session.StatusInitializing
	StatusRunning      = session.StatusRunning
	StatusStopped      = session.StatusStopped
)

var (
	ErrAborted       = session.ErrAborted
	ErrNoDevice      = session.ErrNoDevice
	ErrUnknownDevice = session.ErrUnknownDevice
	ErrNotArmed      = session.ErrNotArmed
)

func NewSession(options ...types.Option[*session.Session]) *session.Session {
	return session.NewSession(options...)
}

// SessionWithMode selects time series, correlation or spectrum analysis.
func SessionWithMode(mode Mode) types.Option[*session.Session] {
	return session.WithMode(mode)
}

// SessionWithCapacity sets the rolling window kept per device.
func SessionWithCapacity(n int) types.Option[*session.Session] {
	return session.WithCapacity(n)
}

// SessionWithNumPoints sets how many recent points each refresh uses.
func SessionWithNumPoints(n int) types.Option[*session.Session] {
	return session.WithNumPoints(n)
}

func SessionWithStdDevFilter(enabled bool, k float64) types.Option[*session.Session] {
	return session.WithStdDevFilter(enabled, k)
}

func SessionWithDeviceRules(rules DeviceRules) types.Option[*session.Session] {
	return session.WithDeviceRules(rules)
}

func SessionWithFit(kind FitKind, order int) types.Option[*session.Session] {
	return session.WithFit(kind, order)
}

// SessionWithMinimumRate sets the beam rate correlation mode waits for.
func SessionWithMinimumRate(hz float64) types.Option[*session.Session] {
	return session.WithMinimumRate(hz)
}

func SessionWithRateGate(g RateGate) types.Option[*session.Session] {
	return session.WithRateGate(g)
}

func SessionWithSeedPollInterval(d time.Duration) types.Option[*session.Session] {
	return session.WithSeedPollInterval(d)
}

func SessionWithLogger(loggers ...types.Logger) types.Option[*session.Session] {
	return session.WithLogger(loggers...)
}

func SessionWithSensor(sensors ...types.Sensor) types.Option[*session.Session] {
	return session.WithSensor(sensors...)
}

// SessionWithID sets the id stamped on frames and log lines.
func SessionWithID(id string) types.Option[*session.Session] {
	return session.WithSessionID(id)
}

func SessionWithComponentMetadata(name string, id string) types.Option[*session.Session] {
	return session.WithComponentMetadata(name, id)
}

func NewRunner(s *session.Session, options ...types.Option[*session.Runner]) *session.Runner {
	return session.NewRunner(s, options...)
}

func RunnerWithSource(sources ...EventSource) types.Option[*session.Runner] {
	return session.WithSource(sources...)
}

func RunnerWithPublisher(publishers ...FramePublisher) types.Option[*session.Runner] {
	return session.WithPublisher(publishers...)
}

// RunnerWithRefreshInterval sets the refresh period (default 50ms).
func RunnerWithRefreshInterval(d time.Duration) types.Option[*session.Runner] {
	return session.WithRefreshInterval(d)
}

func RunnerWithLogger(loggers ...types.Logger) types.Option[*session.Runner] {
	return session.WithRunnerLogger(loggers...)
}

func NewRateGate(options ...types.Option[types.RateGate]) types.RateGate {
	return rategate.NewRateGate(options...)
}

func RateGateWithLogger(loggers ...types.Logger) types.Option[types.RateGate] {
	return rategate.WithLogger(loggers...)
}

func RateGateWithSensor(sensors ...types.Sensor) types.Option[types.RateGate] {
	return rategate.WithSensor(sensors...)
}

// RateGateWithRateSource polls src in addition to pushed rate events.
func RateGateWithRateSource(src RateSource) types.Option[types.RateGate] {
	return rategate.WithRateSource(src)
}

func RateGateWithInitialRate(code RateCode) types.Option[types.RateGate] {
	return rategate.WithInitialRate(code)
}

func RateGateWithPollInterval(d time.Duration) types.Option[types.RateGate] {
	return rategate.WithPollInterval(d)
}

// RateGateWithStatusInterval sets how often the waiting notice repeats.
func RateGateWithStatusInterval(d time.Duration) types.Option[types.RateGate] {
	return rategate.WithStatusInterval(d)
}

// RateWaitingMessage is the status shown while waiting for thresholdHz.
func RateWaitingMessage(thresholdHz float64) string {
	return rategate.WaitingMessage(thresholdHz)
}

type DeviceRules = filterchain.DeviceRules

type FilterStage = filterchain.Stage

const (
	StageFinite    = filterchain.StageFinite
	StageBelow     = filterchain.StageBelow
	StageDeviation = filterchain.StageDeviation
)

// DefaultDeviceRules returns the built-in instrument rules.
func DefaultDeviceRules() DeviceRules { return filterchain.DefaultDeviceRules() }
