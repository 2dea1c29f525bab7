package types

import (
	"crypto/tls"
	"time"

	"github.com/segmentio/kafka-go/sasl"
)

// KafkaSecurity bundles TLS + SASL + ClientID for kafka-go.
type KafkaSecurity struct {
	SASL      sasl.Mechanism // nil => no SASL
	TLS       *tls.Config    // nil => PLAINTEXT
	ClientID  string
	DialerTO  time.Duration // defaults 10s
	DualStack bool
}

// KafkaSourceConfig describes the topic carrying control-system events.
type KafkaSourceConfig struct {
	Brokers []string
	Topic   string
	GroupID string

	// StartAt: "latest" | "earliest"
	StartAt string

	MinBytes       int
	MaxBytes       int
	MaxWait        time.Duration
	CommitInterval time.Duration

	// Devices limits decoding to records keyed by one of these names.
	// Unkeyed records always pass. Empty means every record.
	Devices []string

	// Compression is applied by the producer; set it when payloads are
	// compressed inside the message value as well.
	Compression CompressionAlgorithm

	Security *KafkaSecurity
}

// KafkaEventSource consumes control-system events from a Kafka topic.
type KafkaEventSource interface {
	EventSource
	SetConfig(KafkaSourceConfig)
	SetDecoder(EventDecoder)
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	SetComponentMetadata(name, id string)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
	Stop()
}
