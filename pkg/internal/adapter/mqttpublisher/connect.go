package mqttpublisher

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// Connect dials the broker. paho keeps reconnecting in the background once
// the first connection succeeds.
func (p *MQTTPublisher) Connect(ctx context.Context) error {
	cfg, _ := p.snapshotConfig()
	if cfg.Broker == "" {
		return ErrNoBroker
	}

	c := p.newClient(p.clientOptions(cfg))
	if err := waitToken(ctx, c.Connect(), cfg.ConnectTimeout); err != nil {
		p.notifyError("Connect", err)
		return fmt.Errorf("connect to MQTT broker %s: %w", cfg.Broker, err)
	}

	p.clientLock.Lock()
	old := p.client
	p.client = c
	p.clientLock.Unlock()
	if old != nil {
		old.Disconnect(250)
	}

	for _, s := range p.snapshotSensors() {
		s.InvokeOnStart(p.componentMetadata)
	}
	p.NotifyLoggers(types.InfoLevel, "MQTT connected",
		"component", p.componentMetadata, "event", "Connect", "result", "SUCCESS", "broker", cfg.Broker)
	return nil
}

// Close disconnects from the broker, letting in-flight publishes drain.
func (p *MQTTPublisher) Close() {
	p.clientLock.Lock()
	c := p.client
	p.client = nil
	p.clientLock.Unlock()
	if c == nil {
		return
	}

	c.Disconnect(250)
	for _, s := range p.snapshotSensors() {
		s.InvokeOnStop(p.componentMetadata)
	}
	p.NotifyLoggers(types.InfoLevel, "MQTT disconnected",
		"component", p.componentMetadata, "event", "Close", "result", "SUCCESS")
}

// IsConnected reports whether the broker connection is up.
func (p *MQTTPublisher) IsConnected() bool {
	p.clientLock.Lock()
	c := p.client
	p.clientLock.Unlock()
	return c != nil && c.IsConnected()
}

func (p *MQTTPublisher) currentClient() client {
	p.clientLock.Lock()
	defer p.clientLock.Unlock()
	return p.client
}

func (p *MQTTPublisher) clientOptions(cfg types.MQTTPublisherConfig) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(cfg.ConnectTimeout)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		p.NotifyLoggers(types.DebugLevel, "MQTT session established",
			"component", p.componentMetadata, "event", "OnConnect")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		p.notifyError("ConnectionLost", err)
	})
	opts.SetReconnectingHandler(func(mqtt.Client, *mqtt.ClientOptions) {
		p.NotifyLoggers(types.InfoLevel, "MQTT reconnecting",
			"component", p.componentMetadata, "event", "Reconnect")
	})
	return opts
}

// waitToken waits for t, giving up when ctx ends or after timeout.
func waitToken(ctx context.Context, t mqtt.Token, timeout time.Duration) error {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-t.Done():
		return t.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-expired:
		return ErrTimeout
	}
}
