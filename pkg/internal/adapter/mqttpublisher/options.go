package mqttpublisher

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

func WithConfig(cfg types.MQTTPublisherConfig) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) { p.SetConfig(cfg) }
}

func WithBroker(broker string) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) { p.SetConfig(types.MQTTPublisherConfig{Broker: broker}) }
}

// WithCredentials sets the broker username and password.
func WithCredentials(username, password string) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) {
		p.SetConfig(types.MQTTPublisherConfig{Username: username, Password: password})
	}
}

func WithTopicPrefix(prefix string) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) { p.SetConfig(types.MQTTPublisherConfig{TopicPrefix: prefix}) }
}

// WithDelivery sets QoS and the retain flag.
func WithDelivery(qos byte, retain bool) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) {
		p.SetConfig(types.MQTTPublisherConfig{QoS: qos, Retain: retain})
	}
}

func WithConnectTimeout(d time.Duration) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) { p.SetConfig(types.MQTTPublisherConfig{ConnectTimeout: d}) }
}

func WithCompression(alg types.CompressionAlgorithm) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) { p.SetConfig(types.MQTTPublisherConfig{Compression: alg}) }
}

func WithEncoder(e types.FrameEncoder) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) { p.SetEncoder(e) }
}

func WithLogger(l ...types.Logger) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) { p.ConnectLogger(l...) }
}

func WithSensor(s ...types.Sensor) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) { p.ConnectSensor(s...) }
}

func WithComponentMetadata(name, id string) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) { p.SetComponentMetadata(name, id) }
}
