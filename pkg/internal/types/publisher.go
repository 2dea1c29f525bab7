package types

import (
	"context"
	"time"
)

// FramePublisher hands refresh frames to whatever renders them.
type FramePublisher interface {
	Publish(ctx context.Context, f Frame) error
}

// FramePublisherFunc adapts a function to FramePublisher.
type FramePublisherFunc func(ctx context.Context, f Frame) error

// Publish implements FramePublisher.
func (fn FramePublisherFunc) Publish(ctx context.Context, f Frame) error { return fn(ctx, f) }

// MQTTPublisherConfig configures the broker publishing frames.
type MQTTPublisherConfig struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	TopicPrefix    string
	QoS            byte
	Retain         bool
	ConnectTimeout time.Duration
	Compression    CompressionAlgorithm
}

// MQTTFramePublisher publishes frames to an MQTT broker.
type MQTTFramePublisher interface {
	FramePublisher
	Connect(ctx context.Context) error
	Close()
	IsConnected() bool
	SetConfig(MQTTPublisherConfig)
	SetEncoder(FrameEncoder)
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
}
