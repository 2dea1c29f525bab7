package codec_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// TestJSONEventDecoding decodes an array carrying every event kind.
func TestJSONEventDecoding(t *testing.T) {
	payload := []byte(`[
		{"kind":"snapshot","device":"BPMS:LI24:801:X","timestamp":1700000000.5,"values":[1.5,null,2.5]},
		{"kind":"update","slot":"B","timestamp":1700000001,"value":null},
		{"kind":"rate","code":3}
	]`)

	events, err := codec.NewJSONEventDecoder().Decode(payload)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	snap := events[0]
	if snap.Kind != types.EventHistorySnapshot || snap.Device != "BPMS:LI24:801:X" || snap.Snapshot == nil {
		t.Fatalf("unexpected snapshot event: %+v", snap)
	}
	if got := snap.Snapshot.Values; got[0] != 1.5 || !math.IsNaN(got[1]) || got[2] != 2.5 {
		t.Errorf("snapshot values: %v", got)
	}
	if want := time.Unix(1700000000, 500000000).UTC(); !snap.Snapshot.Timestamp.Equal(want) {
		t.Errorf("timestamp %v, want %v", snap.Snapshot.Timestamp, want)
	}

	upd := events[1]
	if upd.Slot == nil || *upd.Slot != types.SlotB || upd.Update == nil || !math.IsNaN(upd.Update.Value) {
		t.Errorf("unexpected update event: %+v", upd)
	}

	if events[2].Kind != types.EventRateChange || events[2].Rate != types.Rate10Hz {
		t.Errorf("unexpected rate event: %+v", events[2])
	}
}

// TestJSONEventDecodingSingleObject accepts a bare object.
func TestJSONEventDecodingSingleObject(t *testing.T) {
	events, err := codec.NewJSONEventDecoder().Decode([]byte(` {"kind":"update","device":"D","timestamp":10,"value":4} `))
	if err != nil || len(events) != 1 || events[0].Update.Value != 4 {
		t.Fatalf("got %+v, %v", events, err)
	}
}

// TestJSONEventDecodingErrors classifies bad payloads.
func TestJSONEventDecodingErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"unknown kind", `{"kind":"bogus","device":"D","timestamp":1}`, codec.ErrUnknownKind},
		{"no device", `{"kind":"update","timestamp":1,"value":1}`, codec.ErrMissingDevice},
		{"no timestamp", `{"kind":"update","device":"D","value":1}`, codec.ErrMissingTimestamp},
		{"bad slot", `{"kind":"update","slot":"C","timestamp":1,"value":1}`, codec.ErrMissingDevice},
	}
	dec := codec.NewJSONEventDecoder()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := dec.Decode([]byte(tc.payload)); !errors.Is(err, tc.want) {
				t.Errorf("error %v, want %v", err, tc.want)
			}
		})
	}
}

// TestEncodeEventsRoundTrip feeds EncodeEvents output back to the decoder.
func TestEncodeEventsRoundTrip(t *testing.T) {
	slot := types.SlotA
	ts := time.Unix(1700000000, 250000000).UTC()
	in := []types.Event{
		{Kind: types.EventValueUpdate, Slot: &slot, Update: &types.ValueUpdate{Value: math.NaN(), Timestamp: ts}},
		{Kind: types.EventRateChange, Rate: types.Rate120Hz},
	}
	data, err := codec.EncodeEvents(in...)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	out, err := codec.NewJSONEventDecoder().Decode(data)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if *out[0].Slot != types.SlotA || !math.IsNaN(out[0].Update.Value) || !out[0].Update.Timestamp.Equal(ts) {
		t.Errorf("update mismatch: %+v", out[0])
	}
	if out[1].Rate != types.Rate120Hz {
		t.Errorf("rate mismatch: %+v", out[1])
	}
}

// TestLineEventDecoding parses the text record format.
func TestLineEventDecoding(t *testing.T) {
	payload := []byte("# feed\nrate 4\n\nGDET:FEE1:241:ENRC 1700000000.25 0.75\nGDET:FEE1:241:ENRC 1700000000.5 nan\n")
	events, err := codec.NewLineEventDecoder().Decode(payload)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Rate != types.Rate30Hz {
		t.Errorf("rate event: %+v", events[0])
	}
	if events[1].Device != "GDET:FEE1:241:ENRC" || events[1].Update.Value != 0.75 {
		t.Errorf("update event: %+v", events[1])
	}
	if !math.IsNaN(events[2].Update.Value) {
		t.Errorf("expected missing reading, got %v", events[2].Update.Value)
	}

	if _, err := codec.NewLineEventDecoder().Decode([]byte("D 1\n")); !errors.Is(err, codec.ErrMalformedLine) {
		t.Errorf("expected malformed line error, got %v", err)
	}
}

// TestFrameEncoding writes missing values as null and omits empty sections.
func TestFrameEncoding(t *testing.T) {
	frame := types.Frame{
		SessionID: "s1",
		Sequence:  7,
		Mode:      types.ModeCorrelation,
		Devices:   [types.SlotCount]string{"A", "B"},
		Rate:      types.Rate10Hz,
		X:         []float64{1, math.NaN()},
		Y:         []float64{2, 3},
		Stats:     types.Statistics{Count: 2, Mean: 2.5, Correlation: 1, HasCorrelation: true},
		Fit:       types.FitResult{Kind: types.FitLinear, Order: 1, Coefficients: []float64{1, 0}, Summary: "Slope: 1.00e+00"},
		Kind:      types.ResultOK,
	}
	data, err := codec.NewJSONFrameEncoder().Encode(frame)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if x := got["x"].([]any); x[1] != nil {
		t.Errorf("NaN should encode as null, got %v", x[1])
	}
	if got["rate_hz"].(float64) != 10 || got["result"] != "ok" {
		t.Errorf("unexpected header fields: %v", got)
	}
	if fit := got["fit"].(map[string]any); fit["summary"] != "Slope: 1.00e+00" || fit["status"] != "ok" {
		t.Errorf("unexpected fit: %v", fit)
	}
	if _, ok := got["frequencies"]; ok {
		t.Error("frequencies should be omitted without a spectrum")
	}
}

// TestCompressionRoundTrip checks every supported algorithm.
func TestCompressionRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat(`{"kind":"update","device":"D","timestamp":1,"value":1}`, 64))
	for _, alg := range []types.CompressionAlgorithm{
		types.CompressNone, types.CompressGzip, types.CompressSnappy,
		types.CompressZstd, types.CompressBrotli, types.CompressLZ4,
	} {
		t.Run(string(alg)+"_", func(t *testing.T) {
			packed, err := codec.Compress(payload, alg)
			if err != nil {
				t.Fatalf("compress error: %v", err)
			}
			unpacked, err := codec.Decompress(packed, alg)
			if err != nil {
				t.Fatalf("decompress error: %v", err)
			}
			if !bytes.Equal(unpacked, payload) {
				t.Fatal("payload mismatch after round trip")
			}
		})
	}
}

// TestParseCompression rejects unknown names.
func TestParseCompression(t *testing.T) {
	if alg, err := codec.ParseCompression("none"); err != nil || alg != types.CompressNone {
		t.Errorf("none: %v %v", alg, err)
	}
	if alg, err := codec.ParseCompression("zstd"); err != nil || alg != types.CompressZstd {
		t.Errorf("zstd: %v %v", alg, err)
	}
	if _, err := codec.ParseCompression("rar"); !errors.Is(err, codec.ErrUnsupportedCompression) {
		t.Errorf("rar: %v", err)
	}
}
