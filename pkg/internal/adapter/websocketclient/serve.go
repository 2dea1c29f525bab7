package websocketclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"nhooyr.io/websocket"
)

// ErrIdleTimeout reports a connection that stayed silent past the idle timeout.
var ErrIdleTimeout = errors.New("websocket idle timeout")

// Serve dials the endpoint and submits every decoded event until ctx ends.
// With reconnects enabled a dropped connection is redialed after the backoff;
// otherwise the first drop ends Serve. A normal closure by the server is not
// an error.
func (c *WebSocketClient) Serve(ctx context.Context, submit types.SubmitFunc) error {
	if submit == nil {
		return errors.New("submit cannot be nil")
	}
	if ctx == nil {
		ctx = c.ctx
	}

	cfg := c.snapshotConfig()
	c.notifyStart(cfg)
	defer c.notifyStop()

	for attempt := 1; ; attempt++ {
		err := c.serveOnce(ctx, cfg, submit)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrNoURL), cfg.tlsConfigErr != nil, !cfg.reconnect:
			return err
		case err != nil:
			c.notifyDrop(attempt, err)
		}

		c.NotifyLoggers(types.InfoLevel, "Reconnecting",
			"component", c.componentMetadata, "event", "Reconnect", "attempt", attempt, "backoff", cfg.backoff)

		t := time.NewTimer(cfg.backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

func (c *WebSocketClient) serveOnce(ctx context.Context, cfg clientConfig, submit types.SubmitFunc) error {
	conn, err := c.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "client shutdown")

	c.NotifyLoggers(types.InfoLevel, "Dial",
		"component", c.componentMetadata, "event", "Dial", "result", "SUCCESS", "url", cfg.url)
	defer c.NotifyLoggers(types.InfoLevel, "Disconnect",
		"component", c.componentMetadata, "event", "Disconnect")

	return c.readLoop(ctx, cfg, conn, submit)
}

func (c *WebSocketClient) readLoop(ctx context.Context, cfg clientConfig, conn *websocket.Conn, submit types.SubmitFunc) error {
	for {
		readCtx := ctx
		var cancel context.CancelFunc
		if cfg.idleTimeout > 0 {
			readCtx, cancel = context.WithTimeout(ctx, cfg.idleTimeout)
		}
		_, payload, err := conn.Read(readCtx)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			return c.handleReadError(ctx, err)
		}

		events, err := cfg.decoder.Decode(payload)
		if err != nil {
			c.NotifyLoggers(types.WarnLevel, "WebSocket decode failed",
				"component", c.componentMetadata, "event", "Decode", "result", "FAILURE", "error", err)
			continue
		}

		for _, ev := range events {
			if err := submit(ctx, ev); err != nil {
				c.NotifyLoggers(types.DebugLevel, "WebSocket submit rejected",
					"component", c.componentMetadata, "event", "Submit", "result", "DROPPED", "error", err)
			}
		}
	}
}

func (c *WebSocketClient) handleReadError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	status := websocket.CloseStatus(err)
	if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrIdleTimeout
	}
	return fmt.Errorf("websocket read: %w", err)
}
