package websocketclient

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// WithLogger attaches loggers to the client.
func WithLogger(loggers ...types.Logger) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.ConnectLogger(loggers...) }
}

// WithSensor attaches sensors to the client.
func WithSensor(sensors ...types.Sensor) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.ConnectSensor(sensors...) }
}

// WithURL sets the WebSocket URL.
func WithURL(url string) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.SetURL(url) }
}

// WithHeaders sets request headers.
func WithHeaders(headers map[string]string) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.SetHeaders(headers) }
}

// WithHeader adds a single header.
func WithHeader(key, value string) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.AddHeader(key, value) }
}

// WithSubscription requests devices from the gateway after each dial.
func WithSubscription(devices ...string) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.SetSubscription(devices...) }
}

// WithDecoder sets the event decoder.
func WithDecoder(d types.EventDecoder) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.SetDecoder(d) }
}

// WithReadLimit sets the max inbound message size.
func WithReadLimit(limit int64) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.SetReadLimit(limit) }
}

// WithIdleTimeout sets the read idle timeout.
func WithIdleTimeout(timeout time.Duration) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.SetIdleTimeout(timeout) }
}

// WithReconnect enables or disables redialing.
func WithReconnect(enabled bool, backoff time.Duration) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.SetReconnect(enabled, backoff) }
}

// WithTLS configures TLS for the WebSocket client.
func WithTLS(cfg types.TLSConfig) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.SetTLSConfig(cfg) }
}

// WithComponentMetadata sets name and id.
func WithComponentMetadata(name, id string) types.Option[types.WebSocketEventSource] {
	return func(c types.WebSocketEventSource) { c.SetComponentMetadata(name, id) }
}
