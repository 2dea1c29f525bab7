package websocketclient

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// clientConfig is the immutable view of the settings used for one Serve call.
type clientConfig struct {
	url          string
	header       http.Header
	subscribe    []string
	decoder      types.EventDecoder
	readLimit    int64
	idleTimeout  time.Duration
	reconnect    bool
	backoff      time.Duration
	tlsConfig    *tls.Config
	tlsConfigErr error
}

func (c *WebSocketClient) snapshotConfig() clientConfig {
	c.configLock.Lock()
	defer c.configLock.Unlock()

	header := make(http.Header, len(c.headers))
	for k, v := range c.headers {
		header.Set(k, v)
	}
	return clientConfig{
		url:          c.url,
		header:       header,
		subscribe:    append([]string(nil), c.subscribe...),
		decoder:      c.decoder,
		readLimit:    c.readLimit,
		idleTimeout:  c.idleTimeout,
		reconnect:    c.reconnect,
		backoff:      c.backoff,
		tlsConfig:    c.tlsConfig,
		tlsConfigErr: c.tlsConfigErr,
	}
}

func (c *WebSocketClient) SetURL(url string) {
	c.configLock.Lock()
	c.url = strings.TrimSpace(url)
	c.configLock.Unlock()
}

// SetHeaders replaces all handshake headers. Blank keys are dropped.
func (c *WebSocketClient) SetHeaders(headers map[string]string) {
	c.configLock.Lock()
	c.headers = make(map[string]string, len(headers))
	for k, v := range headers {
		if strings.TrimSpace(k) != "" {
			c.headers[k] = v
		}
	}
	c.configLock.Unlock()
}

func (c *WebSocketClient) AddHeader(key, value string) {
	if strings.TrimSpace(key) == "" {
		return
	}
	c.configLock.Lock()
	if c.headers == nil {
		c.headers = make(map[string]string)
	}
	c.headers[key] = value
	c.configLock.Unlock()
}

// SetSubscription sets the devices requested from the gateway after each
// dial. Blank names are skipped and an empty list sends no request.
func (c *WebSocketClient) SetSubscription(devices ...string) {
	var keep []string
	for _, d := range devices {
		if d = strings.TrimSpace(d); d != "" {
			keep = append(keep, d)
		}
	}
	c.configLock.Lock()
	c.subscribe = keep
	c.configLock.Unlock()
}

// SetDecoder ignores nil so a source always has a decoder.
func (c *WebSocketClient) SetDecoder(d types.EventDecoder) {
	if d == nil {
		return
	}
	c.configLock.Lock()
	c.decoder = d
	c.configLock.Unlock()
}

// SetReadLimit bounds inbound message size. Non-positive limits are ignored.
func (c *WebSocketClient) SetReadLimit(limit int64) {
	if limit <= 0 {
		return
	}
	c.configLock.Lock()
	c.readLimit = limit
	c.configLock.Unlock()
}

// SetIdleTimeout bounds the wait for each message. Zero waits forever.
func (c *WebSocketClient) SetIdleTimeout(timeout time.Duration) {
	c.configLock.Lock()
	c.idleTimeout = timeout
	c.configLock.Unlock()
}

// SetReconnect controls whether Serve redials after the connection drops.
// A non-positive backoff keeps the current delay.
func (c *WebSocketClient) SetReconnect(enabled bool, backoff time.Duration) {
	c.configLock.Lock()
	c.reconnect = enabled
	if backoff > 0 {
		c.backoff = backoff
	}
	c.configLock.Unlock()
}

// SetTLSConfig stores the TLS settings. A bad key pair or CA file is kept as
// an error and returned by the next Serve.
func (c *WebSocketClient) SetTLSConfig(tlsCfg types.TLSConfig) {
	cfg, err := buildTLSClientConfig(tlsCfg)
	c.configLock.Lock()
	c.tlsConfig = cfg
	c.tlsConfigErr = err
	c.configLock.Unlock()
}
