package builder

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/adapter/mqttpublisher"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type MQTTPublisherConfig = types.MQTTPublisherConfig

type MQTTFramePublisher = types.MQTTFramePublisher

// NewMQTTFramePublisher publishes frames to <prefix>/<session>/<mode>.
// Connect must be called before the first Publish.
func NewMQTTFramePublisher(options ...types.Option[types.MQTTFramePublisher]) types.MQTTFramePublisher {
	return mqttpublisher.NewMQTTFramePublisher(options...)
}

func MQTTPublisherWithConfig(cfg MQTTPublisherConfig) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithConfig(cfg)
}

func MQTTPublisherWithBroker(broker string) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithBroker(broker)
}

func MQTTPublisherWithCredentials(username, password string) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithCredentials(username, password)
}

func MQTTPublisherWithTopicPrefix(prefix string) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithTopicPrefix(prefix)
}

func MQTTPublisherWithDelivery(qos byte, retain bool) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithDelivery(qos, retain)
}

func MQTTPublisherWithConnectTimeout(d time.Duration) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithConnectTimeout(d)
}

func MQTTPublisherWithCompression(alg CompressionAlgorithm) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithCompression(alg)
}

func MQTTPublisherWithEncoder(e FrameEncoder) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithEncoder(e)
}

func MQTTPublisherWithLogger(l ...types.Logger) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithLogger(l...)
}

func MQTTPublisherWithSensor(s ...types.Sensor) types.Option[types.MQTTFramePublisher] {
	return mqttpublisher.WithSensor(s...)
}

// MQTTTopic returns the topic a frame is published on.
func MQTTTopic(prefix string, f Frame) string { return mqttpublisher.Topic(prefix, f) }
