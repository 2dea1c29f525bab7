// Package kafkaclient consumes control-system events from a Kafka topic and
// submits them to a session.
package kafkaclient

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
	"github.com/segmentio/kafka-go"
)

// messageReader is the subset of *kafka.Reader used by Serve.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaClient implements types.KafkaEventSource on kafka-go.
type KafkaClient struct {
	componentMetadata types.ComponentMetadata
	ctx               context.Context
	cancel            context.CancelFunc
	isServing         int32 // atomic

	hooksLock sync.RWMutex
	loggers   []types.Logger
	sensors   []types.Sensor

	cfg     types.KafkaSourceConfig
	devices map[string]struct{} // record-key filter built from cfg.Devices
	decoder types.EventDecoder
	reader  messageReader
}

// NewKafkaEventSource builds a source with "latest" start and JSON payloads.
func NewKafkaEventSource(ctx context.Context, options ...types.Option[types.KafkaEventSource]) types.KafkaEventSource {
	ctx, cancel := context.WithCancel(ctx)

	a := &KafkaClient{
		ctx:    ctx,
		cancel: cancel,
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: componentType,
		},
		cfg: types.KafkaSourceConfig{
			StartAt:        "latest",
			MinBytes:       1,
			MaxBytes:       1 << 20,
			MaxWait:        500 * time.Millisecond,
			CommitInterval: time.Second,
		},
		decoder: codec.NewJSONEventDecoder(),
	}

	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}
