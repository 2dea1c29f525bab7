package types

import "time"

// WebSocketEventSource dials a gateway endpoint and reads events from it.
type WebSocketEventSource interface {
	EventSource

	SetURL(url string)
	SetHeaders(headers map[string]string)
	AddHeader(key, value string)
	SetSubscription(devices ...string)
	SetDecoder(EventDecoder)
	SetReadLimit(limit int64)
	SetIdleTimeout(timeout time.Duration)
	SetReconnect(enabled bool, backoff time.Duration)
	SetTLSConfig(TLSConfig)

	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	SetComponentMetadata(name string, id string)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
}
