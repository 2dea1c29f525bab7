package rategate

import (
	"fmt"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// NotifyLoggers emits a log event to all configured loggers.
func (g *RateGate) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	g.loggersLock.Lock()
	loggers := append([]types.Logger(nil), g.loggers...)
	g.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

// WaitingMessage is the status text shown while blocked below thresholdHz.
func WaitingMessage(thresholdHz float64) string {
	return fmt.Sprintf("Waiting for beam rate to be at least %gHz...", thresholdHz)
}

func (g *RateGate) snapshotSensors() []types.Sensor {
	g.sensorsLock.Lock()
	defer g.sensorsLock.Unlock()
	return append([]types.Sensor(nil), g.sensors...)
}

func (g *RateGate) notifyWaiting(code types.RateCode, thresholdHz float64) {
	meta := g.GetComponentMetadata()
	g.NotifyLoggers(types.InfoLevel, WaitingMessage(thresholdHz),
		"component", meta, "event", "WaitForMinimumRate", "result", types.RateWaiting.String(), "rate", code)
	for _, s := range g.snapshotSensors() {
		s.InvokeOnRateWaiting(meta, code, thresholdHz)
	}
}

func (g *RateGate) notifyResumed(code types.RateCode) {
	meta := g.GetComponentMetadata()
	g.NotifyLoggers(types.InfoLevel, types.RateResumed.String(),
		"component", meta, "event", "WaitForMinimumRate", "result", "RESUMED", "rate", code)
	for _, s := range g.snapshotSensors() {
		s.InvokeOnRateResumed(meta, code)
	}
}
