package meter

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	m.hooksMu.RLock()
	defer m.hooksMu.RUnlock()
	return m.componentMetadata
}

// SetComponentMetadata keeps the METER type.
func (m *Meter) SetComponentMetadata(name string, id string) {
	m.hooksMu.Lock()
	m.componentMetadata.Name, m.componentMetadata.ID = name, id
	m.hooksMu.Unlock()
}

func (m *Meter) ConnectLogger(loggers ...types.Logger) {
	m.hooksMu.Lock()
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	m.hooksMu.Unlock()
}

func (m *Meter) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	m.hooksMu.RLock()
	loggers := append([]types.Logger(nil), m.loggers...)
	m.hooksMu.RUnlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
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
