package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type KafkaSourceConfig = types.KafkaSourceConfig

type KafkaSecurity = types.KafkaSecurity

type KafkaEventSource = types.KafkaEventSource

// NewKafkaEventSource consumes events from a Kafka topic.
func NewKafkaEventSource(ctx context.Context, options ...types.Option[types.KafkaEventSource]) types.KafkaEventSource {
	return kafkaclient.NewKafkaEventSource(ctx, options...)
}

func KafkaSourceWithConfig(cfg KafkaSourceConfig) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithConfig(cfg)
}

func KafkaSourceWithBrokers(brokers ...string) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithBrokers(brokers...)
}

func KafkaSourceWithTopic(topic string) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithTopic(topic)
}

// KafkaSourceWithGroup enables consumer-group offsets and commits.
func KafkaSourceWithGroup(groupID string) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithGroup(groupID)
}

// KafkaSourceWithStartAt accepts "latest" or "earliest".
func KafkaSourceWithStartAt(mode string) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithStartAt(mode)
}

func KafkaSourceWithFetchSettings(minBytes, maxBytes int, maxWait time.Duration) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithFetchSettings(minBytes, maxBytes, maxWait)
}

// KafkaSourceWithDevices skips records keyed by any other device.
func KafkaSourceWithDevices(devices ...string) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithDevices(devices...)
}

func KafkaSourceWithCompression(alg CompressionAlgorithm) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithCompression(alg)
}

func KafkaSourceWithSecurity(sec *KafkaSecurity) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithSecurity(sec)
}

func KafkaSourceWithDecoder(d EventDecoder) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithDecoder(d)
}

func KafkaSourceWithLogger(l ...types.Logger) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithLogger(l...)
}

func KafkaSourceWithSensor(s ...types.Sensor) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithSensor(s...)
}

func KafkaSourceWithComponentMetadata(name, id string) types.Option[types.KafkaEventSource] {
	return kafkaclient.WithComponentMetadata(name, id)
}
