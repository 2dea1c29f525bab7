package mqttpublisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// Topic returns the topic a frame is published on:
// <prefix>/<session id>/<mode>.
func Topic(prefix string, f types.Frame) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	session := f.SessionID
	if session == "" {
		session = "default"
	}
	return prefix + "/" + session + "/" + string(f.Mode)
}

// Publish encodes f, applies the configured compression and waits for the
// broker to acknowledge according to QoS.
func (p *MQTTPublisher) Publish(ctx context.Context, f types.Frame) error {
	c := p.currentClient()
	if c == nil {
		return ErrNotConnected
	}
	cfg, enc := p.snapshotConfig()

	payload, err := enc.Encode(f)
	if err != nil {
		p.publishFailed("Encode", err)
		return fmt.Errorf("encode frame: %w", err)
	}
	payload, err = codec.Compress(payload, cfg.Compression)
	if err != nil {
		p.publishFailed("Compress", err)
		return err
	}

	topic := Topic(cfg.TopicPrefix, f)
	if err := waitToken(ctx, c.Publish(topic, cfg.QoS, cfg.Retain, payload), DefaultPublishTimeout); err != nil {
		p.publishFailed("Publish", err)
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	for _, s := range p.snapshotSensors() {
		s.InvokeOnFramePublished(p.componentMetadata, topic, len(payload))
	}
	p.NotifyLoggers(types.DebugLevel, "Frame published",
		"component", p.componentMetadata, "event", "Publish", "result", "SUCCESS",
		"topic", topic, "sequence", f.Sequence, "bytes", len(payload))
	return nil
}

func (p *MQTTPublisher) publishFailed(event string, err error) {
	for _, s := range p.snapshotSensors() {
		for _, m := range s.GetMeters() {
			m.IncrementCount(types.MetricFramePublishErrorCount)
		}
	}
	p.notifyError(event, err)
}
