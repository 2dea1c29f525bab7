package kafkaclient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/segmentio/kafka-go"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.msgs) > 0 {
		m := f.msgs[0]
		f.msgs = f.msgs[1:]
		f.mu.Unlock()
		return m, nil
	}
	f.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func TestSetComponentMetadataPreservesType(t *testing.T) {
	adapter := NewKafkaEventSource(context.Background()).(*KafkaClient)
	adapter.SetComponentMetadata("demo", "id-1")
	md := adapter.GetComponentMetadata()
	if md.Type != componentType || md.Name != "demo" || md.ID != "id-1" {
		t.Fatalf("unexpected metadata %+v", md)
	}
}

func TestSetConfigKeepsUnsetFields(t *testing.T) {
	adapter := NewKafkaEventSource(context.Background(),
		WithBrokers("b1:9092"),
		WithTopic("bsa.events"),
		WithGroup("rtbsa"),
	).(*KafkaClient)
	adapter.SetConfig(types.KafkaSourceConfig{StartAt: "earliest"})

	if adapter.cfg.Topic != "bsa.events" || adapter.cfg.GroupID != "rtbsa" || adapter.cfg.StartAt != "earliest" {
		t.Fatalf("unexpected config: %+v", adapter.cfg)
	}
	if adapter.cfg.MaxBytes != 1<<20 {
		t.Fatalf("default MaxBytes lost: %d", adapter.cfg.MaxBytes)
	}
}

func TestReaderConfig(t *testing.T) {
	adapter := NewKafkaEventSource(context.Background(),
		WithTopic("bsa.events"),
		WithStartAt("earliest"),
		WithSecurity(&types.KafkaSecurity{ClientID: "rtbsa"}),
	).(*KafkaClient)

	cfg, err := adapter.readerConfig()
	if err != nil {
		t.Fatalf("readerConfig: %v", err)
	}
	if cfg.StartOffset != kafka.FirstOffset {
		t.Fatalf("expected FirstOffset, got %d", cfg.StartOffset)
	}
	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != "127.0.0.1:19092" {
		t.Fatalf("unexpected default brokers: %v", cfg.Brokers)
	}
	if cfg.Dialer == nil || cfg.Dialer.ClientID != "rtbsa" || cfg.Dialer.Timeout != 10*time.Second {
		t.Fatalf("unexpected dialer: %+v", cfg.Dialer)
	}
	if cfg.CommitInterval != 0 {
		t.Fatalf("commit interval without a group: %v", cfg.CommitInterval)
	}

	empty := NewKafkaEventSource(context.Background()).(*KafkaClient)
	if _, err := empty.readerConfig(); err == nil {
		t.Fatal("expected error without a topic")
	}
}

func TestServeDecodesAndCommits(t *testing.T) {
	good, err := codec.EncodeEvents(
		types.Event{Kind: types.EventRateChange, Rate: types.Rate30Hz},
		types.Event{Kind: types.EventValueUpdate, Device: "D",
			Update: &types.ValueUpdate{Value: 1.5, Timestamp: time.Unix(1700000000, 0)}},
	)
	if err != nil {
		t.Fatal(err)
	}
	packed, err := codec.Compress(good, types.CompressSnappy)
	if err != nil {
		t.Fatal(err)
	}

	reader := &fakeReader{msgs: []kafka.Message{
		{Topic: "bsa", Offset: 1, Value: packed},
		{Topic: "bsa", Offset: 2, Value: []byte("not snappy")},
	}}
	adapter := NewKafkaEventSource(context.Background(),
		WithTopic("bsa"),
		WithGroup("g"),
		WithCompression(types.CompressSnappy),
		withReader(reader),
	)

	got := make(chan types.Event, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- adapter.Serve(ctx, func(_ context.Context, ev types.Event) error {
			got <- ev
			return nil
		})
	}()

	for i := 0; i < 2; i++ {
		select {
		case ev := <-got:
			if i == 0 && ev.Rate != types.Rate30Hz {
				t.Fatalf("first event %+v", ev)
			}
			if i == 1 && (ev.Device != "D" || ev.Update.Value != 1.5) {
				t.Fatalf("second event %+v", ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	reader.mu.Lock()
	defer reader.mu.Unlock()
	if len(reader.committed) != 1 || reader.committed[0] != 1 {
		t.Fatalf("committed offsets %v", reader.committed)
	}
	if reader.closed {
		t.Fatal("injected reader must not be closed by Serve")
	}
}

func TestServeSkipsUnwantedDevices(t *testing.T) {
	encode := func(device string, v float64) []byte {
		b, err := codec.EncodeEvents(types.Event{Kind: types.EventValueUpdate, Device: device,
			Update: &types.ValueUpdate{Value: v, Timestamp: time.Unix(1700000000, 0)}})
		if err != nil {
			t.Fatal(err)
		}
		return b
	}
	reader := &fakeReader{msgs: []kafka.Message{
		{Offset: 1, Key: []byte("OTHER"), Value: encode("OTHER", 1)},
		{Offset: 2, Key: []byte("BPM1"), Value: encode("BPM1", 2)},
		{Offset: 3, Value: encode("BPM2", 3)},
	}}
	adapter := NewKafkaEventSource(context.Background(),
		WithTopic("bsa"),
		WithGroup("g"),
		WithDevices("BPM1", "BPM2"),
		withReader(reader),
	)

	got := make(chan types.Event, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- adapter.Serve(ctx, func(_ context.Context, ev types.Event) error {
			got <- ev
			return nil
		})
	}()

	for _, want := range []float64{2, 3} {
		select {
		case ev := <-got:
			if ev.Update == nil || ev.Update.Value != want {
				t.Fatalf("expected value %v, got %+v", want, ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
	cancel()
	<-done

	reader.mu.Lock()
	defer reader.mu.Unlock()
	if len(reader.committed) != 3 {
		t.Fatalf("filtered records must still be committed, got %v", reader.committed)
	}
}

func TestStopEndsServe(t *testing.T) {
	adapter := NewKafkaEventSource(context.Background(), WithTopic("bsa"), withReader(&fakeReader{}))
	done := make(chan error, 1)
	go func() {
		done <- adapter.Serve(context.Background(), func(context.Context, types.Event) error {
			return errors.New("unused")
		})
	}()
	time.Sleep(10 * time.Millisecond)
	adapter.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}
}
