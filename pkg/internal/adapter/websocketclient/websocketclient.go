// Package websocketclient reads control-system events from a WebSocket
// gateway and submits them to a session.
package websocketclient

import (
	"context"
	"crypto/tls"
	"sync"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

const (
	// DefaultBackoff is the delay between reconnect attempts.
	DefaultBackoff = time.Second
	// DefaultReadLimit bounds one inbound message, in bytes.
	DefaultReadLimit = 1 << 20
)

// WebSocketClient implements types.WebSocketEventSource on nhooyr.io/websocket.
// Settings may change at any time; each Serve call works on a snapshot taken
// when it starts.
type WebSocketClient struct {
	ctx               context.Context
	componentMetadata types.ComponentMetadata

	configLock   sync.Mutex
	url          string
	headers      map[string]string
	subscribe    []string
	decoder      types.EventDecoder
	readLimit    int64
	idleTimeout  time.Duration
	reconnect    bool
	backoff      time.Duration
	tlsConfig    *tls.Config
	tlsConfigErr error

	hooksLock sync.RWMutex
	sensors   []types.Sensor
	loggers   []types.Logger
}

// NewWebSocketEventSource builds a JSON source that reconnects after drops.
// ctx is used by Serve calls that pass a nil context.
func NewWebSocketEventSource(ctx context.Context, options ...types.Option[types.WebSocketEventSource]) types.WebSocketEventSource {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &WebSocketClient{
		ctx:               ctx,
		componentMetadata: types.ComponentMetadata{ID: utils.GenerateUniqueHash(), Type: "WEBSOCKET_CLIENT"},
		headers:           make(map[string]string),
		decoder:           codec.NewJSONEventDecoder(),
		readLimit:         DefaultReadLimit,
		reconnect:         true,
		backoff:           DefaultBackoff,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *WebSocketClient) GetComponentMetadata() types.ComponentMetadata {
	return c.componentMetadata
}

// SetComponentMetadata sets name and id; the type stays WEBSOCKET_CLIENT.
func (c *WebSocketClient) SetComponentMetadata(name string, id string) {
	c.componentMetadata.Name = name
	c.componentMetadata.ID = id
}
