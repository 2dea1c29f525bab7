package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/adapter/websocketclient"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type WebSocketEventSource = types.WebSocketEventSource

// NewWebSocketEventSource reads events from a WebSocket gateway.
func NewWebSocketEventSource(ctx context.Context, options ...types.Option[types.WebSocketEventSource]) types.WebSocketEventSource {
	return websocketclient.NewWebSocketEventSource(ctx, options...)
}

func WebSocketSourceWithURL(url string) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithURL(url)
}

func WebSocketSourceWithHeaders(headers map[string]string) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithHeaders(headers)
}

func WebSocketSourceWithHeader(key, value string) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithHeader(key, value)
}

// WebSocketSourceWithSubscription names the devices requested after each dial.
func WebSocketSourceWithSubscription(devices ...string) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithSubscription(devices...)
}

func WebSocketSourceWithDecoder(d EventDecoder) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithDecoder(d)
}

func WebSocketSourceWithReadLimit(limit int64) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithReadLimit(limit)
}

func WebSocketSourceWithIdleTimeout(timeout time.Duration) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithIdleTimeout(timeout)
}

// WebSocketSourceWithReconnect enables or disables redialing after a drop.
func WebSocketSourceWithReconnect(enabled bool, backoff time.Duration) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithReconnect(enabled, backoff)
}

func WebSocketSourceWithTLS(cfg TLSConfig) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithTLS(cfg)
}

func WebSocketSourceWithLogger(l ...types.Logger) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithLogger(l...)
}

func WebSocketSourceWithSensor(s ...types.Sensor) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithSensor(s...)
}

func WebSocketSourceWithComponentMetadata(name, id string) types.Option[types.WebSocketEventSource] {
	return websocketclient.WithComponentMetadata(name, id)
}
