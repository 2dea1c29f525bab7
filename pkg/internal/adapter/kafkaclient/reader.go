package kafkaclient

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/segmentio/kafka-go"
)

// Serve fetches records until ctx or the adapter context ends, decoding each
// value into events and submitting them in offset order. Offsets are
// committed only after every event of a record was submitted.
func (a *KafkaClient) Serve(ctx context.Context, submit types.SubmitFunc) error {
	if !atomic.CompareAndSwapInt32(&a.isServing, 0, 1) {
		return nil
	}
	defer atomic.StoreInt32(&a.isServing, 0)

	r, created, err := a.getOrCreateReader()
	if err != nil {
		return err
	}
	if created {
		defer func() { _ = r.Close() }()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-a.ctx.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	a.notifyStart()
	defer a.notifyStop()

	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return nil
			}
			a.notifyError("FetchMessage", err)
			return err
		}

		if a.wants(msg.Key) && !a.deliver(ctx, msg, submit) {
			continue
		}

		if a.cfg.GroupID != "" {
			if err := r.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				a.notifyError("CommitMessages", err)
			}
		}
	}
}

// deliver decodes one record and submits its events in order. It returns
// false when the record could not be decoded; such records are not committed.
func (a *KafkaClient) deliver(ctx context.Context, msg kafka.Message, submit types.SubmitFunc) bool {
	payload, err := codec.Decompress(msg.Value, a.cfg.Compression)
	if err != nil {
		a.notifyError("Decompress", err)
		return false
	}
	events, err := a.decoder.Decode(payload)
	if err != nil {
		a.NotifyLoggers(types.WarnLevel, "Kafka decode failed",
			"component", a.componentMetadata, "event", "Decode", "result", "FAILURE",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		return false
	}
	for _, ev := range events {
		if err := submit(ctx, ev); err != nil {
			a.NotifyLoggers(types.DebugLevel, "Kafka submit rejected",
				"component", a.componentMetadata, "event", "Submit", "result", "DROPPED",
				"offset", msg.Offset, "error", err)
		}
	}
	return true
}
