package websocketclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// ErrNoURL is returned by Serve when no endpoint was configured.
var ErrNoURL = errors.New("websocket url not configured")

// subscribeRequest is the first message sent on a new connection when the
// client has a device list. Gateways that stream everything ignore it.
type subscribeRequest struct {
	Subscribe []string `json:"subscribe"`
}

// open dials the gateway, applies the read limit and sends the subscription.
// The connection is closed on any handshake failure.
func (c *WebSocketClient) open(ctx context.Context, cfg clientConfig) (*websocket.Conn, error) {
	switch {
	case cfg.tlsConfigErr != nil:
		return nil, cfg.tlsConfigErr
	case cfg.url == "":
		return nil, ErrNoURL
	}

	opts := &websocket.DialOptions{HTTPHeader: cfg.header}
	if cfg.tlsConfig != nil {
		opts.HTTPClient = &http.Client{Transport: &http.Transport{TLSClientConfig: cfg.tlsConfig}}
	}

	conn, resp, err := websocket.Dial(ctx, cfg.url, opts)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.url, err)
	}
	conn.SetReadLimit(cfg.readLimit)

	if len(cfg.subscribe) > 0 {
		if err := wsjson.Write(ctx, conn, subscribeRequest{Subscribe: cfg.subscribe}); err != nil {
			_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
			return nil, fmt.Errorf("subscribe: %w", err)
		}
		c.NotifyLoggers(types.DebugLevel, "Subscribed",
			"component", c.componentMetadata, "event", "Subscribe", "devices", cfg.subscribe)
	}
	return conn, nil
}
