package kafkaclient

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

const componentType = "KAFKA_CLIENT"

func (a *KafkaClient) GetComponentMetadata() types.ComponentMetadata { return a.componentMetadata }

// SetComponentMetadata overrides name and id. The type stays KAFKA_CLIENT.
func (a *KafkaClient) SetComponentMetadata(name, id string) {
	a.componentMetadata.Name = name
	a.componentMetadata.ID = id
}

// ConnectLogger attaches loggers. Nil entries are ignored.
func (a *KafkaClient) ConnectLogger(loggers ...types.Logger) {
	a.hooksLock.Lock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
	a.hooksLock.Unlock()
}

// ConnectSensor attaches sensors. Nil entries are ignored.
func (a *KafkaClient) ConnectSensor(sensors ...types.Sensor) {
	a.hooksLock.Lock()
	for _, s := range sensors {
		if s != nil {
			a.sensors = append(a.sensors, s)
		}
	}
	a.hooksLock.Unlock()
}

func (a *KafkaClient) hooks() ([]types.Logger, []types.Sensor) {
	a.hooksLock.RLock()
	defer a.hooksLock.RUnlock()
	return append([]types.Logger(nil), a.loggers...), append([]types.Sensor(nil), a.sensors...)
}

func (a *KafkaClient) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers, _ := a.hooks()
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

// Stop ends any running Serve call. The source cannot be served again.
func (a *KafkaClient) Stop() {
	a.NotifyLoggers(types.InfoLevel, "Stop",
		"component", a.componentMetadata, "event", "Stop", "result", "SUCCESS")
	a.cancel()
}

func (a *KafkaClient) notifyStart() {
	_, sensors := a.hooks()
	for _, s := range sensors {
		s.InvokeOnStart(a.componentMetadata)
	}
	a.NotifyLoggers(types.InfoLevel, "Kafka consumer started",
		"component", a.componentMetadata, "event", "ConsumerStart", "result", "SUCCESS",
		"group", a.cfg.GroupID, "topic", a.cfg.Topic, "start_at", a.cfg.StartAt, "devices", len(a.devices))
}

func (a *KafkaClient) notifyStop() {
	_, sensors := a.hooks()
	for _, s := range sensors {
		s.InvokeOnStop(a.componentMetadata)
	}
	a.NotifyLoggers(types.InfoLevel, "Kafka consumer stopped",
		"component", a.componentMetadata, "event", "ConsumerStop", "result", "SUCCESS")
}

func (a *KafkaClient) notifyError(event string, err error) {
	_, sensors := a.hooks()
	for _, s := range sensors {
		s.InvokeOnError(a.componentMetadata, err)
	}
	a.NotifyLoggers(types.ErrorLevel, "Kafka "+event+" failed",
		"component", a.componentMetadata, "event", event, "result", "FAILURE", "error", err)
}
