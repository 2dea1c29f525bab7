package kafkaclient

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// WithConfig sets the source configuration wholesale.
func WithConfig(cfg types.KafkaSourceConfig) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetConfig(cfg) }
}

func WithBrokers(brokers ...string) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetConfig(types.KafkaSourceConfig{Brokers: brokers}) }
}

func WithTopic(topic string) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetConfig(types.KafkaSourceConfig{Topic: topic}) }
}

// WithGroup enables consumer-group offsets and commits.
func WithGroup(groupID string) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetConfig(types.KafkaSourceConfig{GroupID: groupID}) }
}

// WithStartAt accepts "latest" or "earliest".
func WithStartAt(mode string) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetConfig(types.KafkaSourceConfig{StartAt: mode}) }
}

func WithFetchSettings(minBytes, maxBytes int, maxWait time.Duration) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) {
		a.SetConfig(types.KafkaSourceConfig{MinBytes: minBytes, MaxBytes: maxBytes, MaxWait: maxWait})
	}
}

// WithDevices skips records keyed by any other device.
func WithDevices(devices ...string) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetConfig(types.KafkaSourceConfig{Devices: devices}) }
}

// WithCompression declares payload compression inside message values.
func WithCompression(alg types.CompressionAlgorithm) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetConfig(types.KafkaSourceConfig{Compression: alg}) }
}

func WithSecurity(sec *types.KafkaSecurity) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetConfig(types.KafkaSourceConfig{Security: sec}) }
}

func WithDecoder(d types.EventDecoder) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetDecoder(d) }
}

func WithSensor(sensor ...types.Sensor) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.ConnectSensor(sensor...) }
}

func WithLogger(l ...types.Logger) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.ConnectLogger(l...) }
}

func WithComponentMetadata(name, id string) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) { a.SetComponentMetadata(name, id) }
}

// withReader injects a prebuilt reader; used by tests.
func withReader(r messageReader) types.Option[types.KafkaEventSource] {
	return func(a types.KafkaEventSource) {
		if c, ok := a.(*KafkaClient); ok {
			c.reader = r
		}
	}
}
