package mqttpublisher

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

// NotifyLoggers logs a structured message to all attached loggers.
func (p *MQTTPublisher) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range p.snapshotLoggers() {
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

// ConnectLogger attaches loggers.
func (p *MQTTPublisher) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}
	p.loggersLock.Lock()
	p.loggers = append(p.loggers, loggers...)
	p.loggersLock.Unlock()
}

// ConnectSensor attaches sensors.
func (p *MQTTPublisher) ConnectSensor(sensors ...types.Sensor) {
	if len(sensors) == 0 {
		return
	}
	p.sensorsLock.Lock()
	p.sensors = append(p.sensors, sensors...)
	p.sensorsLock.Unlock()
}

func (p *MQTTPublisher) snapshotLoggers() []types.Logger {
	p.loggersLock.Lock()
	defer p.loggersLock.Unlock()
	return append([]types.Logger(nil), p.loggers...)
}

func (p *MQTTPublisher) snapshotSensors() []types.Sensor {
	p.sensorsLock.Lock()
	defer p.sensorsLock.Unlock()
	return append([]types.Sensor(nil), p.sensors...)
}

func (p *MQTTPublisher) notifyError(event string, err error) {
	for _, s := range p.snapshotSensors() {
		s.InvokeOnError(p.componentMetadata, err)
	}
	p.NotifyLoggers(types.ErrorLevel, "MQTT "+event+" failed",
		"component", p.componentMetadata, "event", event, "result", "FAILURE", "error", err)
}
