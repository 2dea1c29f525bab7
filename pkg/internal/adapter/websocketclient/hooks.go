package websocketclient

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

func (c *WebSocketClient) ConnectLogger(loggers ...types.Logger) {
	c.hooksLock.Lock()
	c.loggers = append(c.loggers, loggers...)
	c.hooksLock.Unlock()
}

func (c *WebSocketClient) ConnectSensor(sensors ...types.Sensor) {
	c.hooksLock.Lock()
	c.sensors = append(c.sensors, sensors...)
	c.hooksLock.Unlock()
}

// hooks returns copies of the attached loggers and sensors.
func (c *WebSocketClient) hooks() ([]types.Logger, []types.Sensor) {
	c.hooksLock.RLock()
	defer c.hooksLock.RUnlock()
	return append([]types.Logger(nil), c.loggers...), append([]types.Sensor(nil), c.sensors...)
}

// NotifyLoggers logs to every attached logger whose level admits level.
func (c *WebSocketClient) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers, _ := c.hooks()
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

func (c *WebSocketClient) notifyStart(cfg clientConfig) {
	_, sensors := c.hooks()
	for _, s := range sensors {
		s.InvokeOnStart(c.componentMetadata)
	}
	c.NotifyLoggers(types.InfoLevel, "WebSocket source started",
		"component", c.componentMetadata, "event", "Start", "result", "SUCCESS",
		"url", cfg.url, "reconnect", cfg.reconnect, "devices", len(cfg.subscribe))
}

func (c *WebSocketClient) notifyStop() {
	_, sensors := c.hooks()
	for _, s := range sensors {
		s.InvokeOnStop(c.componentMetadata)
	}
	c.NotifyLoggers(types.InfoLevel, "WebSocket source stopped",
		"component", c.componentMetadata, "event", "Stop", "result", "SUCCESS")
}

// notifyDrop reports a lost connection as a component error.
func (c *WebSocketClient) notifyDrop(attempt int, err error) {
	_, sensors := c.hooks()
	for _, s := range sensors {
		s.InvokeOnError(c.componentMetadata, err)
	}
	c.NotifyLoggers(types.WarnLevel, "WebSocket connection lost",
		"component", c.componentMetadata, "event", "Connection", "result", "FAILURE",
		"attempt", attempt, "error", err)
}
