package mqttpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/meter"
	"github.com/joeydtaylor/rtbsa/pkg/internal/sensor"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type fakeToken struct {
	err  error
	done chan struct{}
}

func doneToken(err error) *fakeToken {
	t := &fakeToken{err: err, done: make(chan struct{})}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	retain  bool
	payload []byte
}

type fakeClient struct {
	mu           sync.Mutex
	connected    bool
	connectErr   error
	publishErr   error
	disconnected int
	sent         []published
}

func (c *fakeClient) Connect() mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = c.connectErr == nil
	return doneToken(c.connectErr)
}

func (c *fakeClient) Disconnect(uint) {
	c.mu.Lock()
	c.connected = false
	c.disconnected++
	c.mu.Unlock()
}

func (c *fakeClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.publishErr == nil {
		c.sent = append(c.sent, published{topic, qos, retained, payload.([]byte)})
	}
	return doneToken(c.publishErr)
}

func withClientFactory(fn func() client) types.Option[types.MQTTFramePublisher] {
	return func(p types.MQTTFramePublisher) {
		p.(*MQTTPublisher).newClient = func(*mqtt.ClientOptions) client { return fn() }
	}
}

func testFrame() types.Frame {
	return types.Frame{
		SessionID: "s-1",
		Sequence:  7,
		Mode:      types.ModeTimeSeries,
		Title:     "BPM1",
		X:         []float64{0, 1},
		Y:         []float64{1, 2},
		Status:    "Running",
	}
}

func TestTopic(t *testing.T) {
	f := testFrame()
	cases := []struct {
		prefix string
		want   string
	}{
		{"rtbsa", "rtbsa/s-1/time"},
		{"lab/bsa/", "lab/bsa/s-1/time"},
		{"", "rtbsa/s-1/time"},
	}
	for _, tc := range cases {
		if got := Topic(tc.prefix, f); got != tc.want {
			t.Errorf("Topic(%q) = %q, want %q", tc.prefix, got, tc.want)
		}
	}

	f.SessionID = ""
	f.Mode = types.ModeSpectrum
	if got := Topic("x", f); got != "x/default/spectrum" {
		t.Fatalf("unexpected topic %q", got)
	}
}

func TestPublishRequiresConnection(t *testing.T) {
	p := NewMQTTFramePublisher(WithBroker("tcp://127.0.0.1:1883"))
	if err := p.Publish(context.Background(), testFrame()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if p.IsConnected() {
		t.Fatal("publisher should not report connected")
	}
}

func TestConnectRequiresBroker(t *testing.T) {
	p := NewMQTTFramePublisher()
	if err := p.Connect(context.Background()); !errors.Is(err, ErrNoBroker) {
		t.Fatalf("expected ErrNoBroker, got %v", err)
	}
}

func TestConnectFailure(t *testing.T) {
	fc := &fakeClient{connectErr: errors.New("refused")}
	p := NewMQTTFramePublisher(
		WithBroker("tcp://broker:1883"),
		withClientFactory(func() client { return fc }),
	)
	if err := p.Connect(context.Background()); err == nil {
		t.Fatal("expected connect error")
	}
	if p.IsConnected() {
		t.Fatal("publisher should not report connected")
	}
}

func TestPublishFrame(t *testing.T) {
	fc := &fakeClient{}
	var topics []string
	s := sensor.NewSensor(sensor.WithOnFramePublishedFunc(func(_ types.ComponentMetadata, topic string, _ int) {
		topics = append(topics, topic)
	}))

	p := NewMQTTFramePublisher(
		WithBroker("tcp://broker:1883"),
		WithTopicPrefix("lab"),
		WithDelivery(1, true),
		WithSensor(s),
		withClientFactory(func() client { return fc }),
	)
	if err := p.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !p.IsConnected() {
		t.Fatal("expected connected")
	}
	if err := p.Publish(context.Background(), testFrame()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(fc.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fc.sent))
	}
	msg := fc.sent[0]
	if msg.topic != "lab/s-1/time" || msg.qos != 1 || !msg.retain {
		t.Fatalf("unexpected delivery: %+v", msg)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(msg.payload, &body); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if body["session_id"] != "s-1" || body["status"] != "Running" {
		t.Fatalf("unexpected payload: %s", msg.payload)
	}
	if len(topics) != 1 || topics[0] != "lab/s-1/time" {
		t.Fatalf("sensor saw %v", topics)
	}

	p.Close()
	if p.IsConnected() || fc.disconnected != 1 {
		t.Fatal("Close should disconnect the client")
	}
}

func TestPublishCompressed(t *testing.T) {
	fc := &fakeClient{}
	p := NewMQTTFramePublisher(
		WithBroker("tcp://broker:1883"),
		WithCompression(types.CompressGzip),
		withClientFactory(func() client { return fc }),
	)
	if err := p.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := p.Publish(context.Background(), testFrame()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	raw, err := codec.Decompress(fc.sent[0].payload, types.CompressGzip)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !json.Valid(raw) {
		t.Fatalf("decompressed payload is not JSON: %q", raw)
	}
}

func TestPublishErrorCounted(t *testing.T) {
	fc := &fakeClient{publishErr: errors.New("broker gone")}
	m := meter.NewMeter(meter.WithHostStats(false))
	s := sensor.NewSensor(sensor.WithMeter(m))

	p := NewMQTTFramePublisher(
		WithBroker("tcp://broker:1883"),
		WithSensor(s),
		withClientFactory(func() client { return fc }),
	)
	if err := p.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := p.Publish(context.Background(), testFrame()); err == nil {
		t.Fatal("expected publish error")
	}
	if got := m.GetMetricCount(types.MetricFramePublishErrorCount); got != 1 {
		t.Fatalf("publish errors = %d, want 1", got)
	}
}
