package session

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// NotifyLoggers emits a log event to all configured loggers.
func (s *Session) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range s.snapshotLoggers() {
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

func (s *Session) snapshotLoggers() []types.Logger {
	s.loggersLock.Lock()
	defer s.loggersLock.Unlock()
	return append([]types.Logger(nil), s.loggers...)
}

func (s *Session) snapshotSensors() []types.Sensor {
	s.sensorsLock.Lock()
	defer s.sensorsLock.Unlock()
	return append([]types.Sensor(nil), s.sensors...)
}

func (s *Session) notifyEvent(ev types.Event) {
	meta := s.GetComponentMetadata()
	for _, sn := range s.snapshotSensors() {
		sn.InvokeOnEvent(meta, ev)
	}
}

func (s *Session) notifySnapshot(slot types.Slot, n int) {
	meta := s.GetComponentMetadata()
	s.NotifyLoggers(types.DebugLevel, "history snapshot applied",
		"component", meta, "event", "HandleEvent", "result", "SNAPSHOT", "slot", slot, "points", n)
	for _, sn := range s.snapshotSensors() {
		sn.InvokeOnSnapshot(meta, slot, n)
	}
}

func (s *Session) notifyUpdate(slot types.Slot, res types.UpdateResult) {
	meta := s.GetComponentMetadata()
	for _, sn := range s.snapshotSensors() {
		if res.Applied {
			sn.InvokeOnUpdateApplied(meta, slot, res)
		} else {
			sn.InvokeOnUpdateDropped(meta, slot, res)
		}
	}
	if res.MissingInserted > 0 {
		s.NotifyLoggers(types.DebugLevel, "missing samples inserted",
			"component", meta, "event", "HandleEvent", "result", "GAP", "slot", slot, "update", res)
	}
}

func (s *Session) notifyRefresh(frame types.Frame, d time.Duration) {
	meta := s.GetComponentMetadata()
	for _, sn := range s.snapshotSensors() {
		sn.InvokeOnRefresh(meta, frame, d)
	}
	s.NotifyLoggers(types.DebugLevel, "refresh",
		"component", meta, "event", "Refresh", "result", frame.Kind.String(), "frame", frame, "took", d)
	if frame.Fit.Status == types.FitFailed {
		s.NotifyLoggers(types.WarnLevel, frame.Fit.Summary,
			"component", meta, "event", "Refresh", "result", "FIT_FAILED", "fit", frame.Fit)
		for _, sn := range s.snapshotSensors() {
			sn.InvokeOnFitFailure(meta, frame.Fit)
		}
	}
}

func (s *Session) notifyStart() {
	meta := s.GetComponentMetadata()
	s.NotifyLoggers(types.InfoLevel, StatusRunning,
		"component", meta, "event", "Initialize", "result", "SUCCESS", "session", s.id)
	for _, sn := range s.snapshotSensors() {
		sn.InvokeOnStart(meta)
	}
}

func (s *Session) notifyStop() {
	meta := s.GetComponentMetadata()
	s.NotifyLoggers(types.InfoLevel, StatusStopped,
		"component", meta, "event", "Stop", "result", "SUCCESS", "session", s.id)
	for _, sn := range s.snapshotSensors() {
		sn.InvokeOnStop(meta)
	}
}

func (s *Session) notifyError(event string, err error) {
	meta := s.GetComponentMetadata()
	s.NotifyLoggers(types.ErrorLevel, err.Error(),
		"component", meta, "event", event, "result", "FAILURE", "error", err)
	for _, sn := range s.snapshotSensors() {
		sn.InvokeOnError(meta, err)
	}
}
