package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// ContentType reports the payload type accepted by Decode.
func (d *JSONEventDecoder) ContentType() string { return ContentTypeJSON }

// Decode accepts a single event object or an array of event objects.
func (d *JSONEventDecoder) Decode(data []byte) ([]types.Event, error) {
	data = bytes.TrimSpace(data)
	var wire []wireEvent
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, err
		}
	} else {
		var one wireEvent
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, err
		}
		wire = []wireEvent{one}
	}

	out := make([]types.Event, 0, len(wire))
	for i, w := range wire {
		ev, err := w.event()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func (w wireEvent) event() (types.Event, error) {
	ev := types.Event{Kind: types.EventKind(w.Kind), Device: w.Device}

	if w.Slot != "" {
		slot, err := parseSlot(w.Slot)
		if err != nil {
			return ev, err
		}
		ev.Slot = &slot
	}

	switch ev.Kind {
	case types.EventRateChange:
		if w.Code == nil {
			return ev, fmt.Errorf("%w: rate event without code", ErrUnknownKind)
		}
		ev.Rate = types.RateCode(*w.Code)
		return ev, nil
	case types.EventHistorySnapshot, types.EventValueUpdate:
	default:
		return ev, fmt.Errorf("%w: %q", ErrUnknownKind, w.Kind)
	}

	if ev.Device == "" && ev.Slot == nil {
		return ev, ErrMissingDevice
	}
	if w.Timestamp == nil {
		return ev, ErrMissingTimestamp
	}
	ts := fromUnix(*w.Timestamp)

	if ev.Kind == types.EventHistorySnapshot {
		values := make([]float64, len(w.Values))
		for i, p := range w.Values {
			values[i] = orMissing(p)
		}
		ev.Snapshot = &types.HistorySnapshot{Values: values, Timestamp: ts}
	} else {
		ev.Update = &types.ValueUpdate{Value: orMissing(w.Value), Timestamp: ts}
	}
	return ev, nil
}

func parseSlot(s string) (types.Slot, error) {
	switch s {
	case "A", "a":
		return types.SlotA, nil
	case "B", "b":
		return types.SlotB, nil
	}
	return 0, fmt.Errorf("%w: unknown slot %q", ErrMissingDevice, s)
}

// ContentType reports the payload type produced by Encode.
func (e *JSONFrameEncoder) ContentType() string { return ContentTypeJSON }

// Encode writes f as a JSON object.
func (e *JSONFrameEncoder) Encode(f types.Frame) ([]byte, error) {
	w := wireFrame{
		SessionID: f.SessionID,
		Sequence:  f.Sequence,
		Mode:      string(f.Mode),
		Title:     f.Title,
		Devices:   []string{f.Devices[types.SlotA], f.Devices[types.SlotB]},
		X:         nullableSlice(f.X),
		Y:         nullableSlice(f.Y),
		Stats: wireStats{
			Count:  f.Stats.Count,
			Mean:   nullable(f.Stats.Mean),
			StdDev: nullable(f.Stats.StdDev),
			Min:    nullable(f.Stats.Min),
			Max:    nullable(f.Stats.Max),
		},
		Result: f.Kind.String(),
		Status: f.Status,
	}
	if hz, ok := f.Rate.Hz(); ok {
		w.RateHz = &hz
	}
	if f.Stats.HasCorrelation {
		w.Stats.Correlation = nullable(f.Stats.Correlation)
	}
	if f.Fit.Kind != "" && f.Fit.Kind != types.FitNone {
		fit := &wireFit{
			Kind:         string(f.Fit.Kind),
			Order:        f.Fit.Order,
			Coefficients: nullableSlice(f.Fit.Coefficients),
			Summary:      f.Fit.Summary,
			Status:       f.Fit.Status.String(),
		}
		if f.Fit.HasVertex {
			fit.Vertex = nullable(f.Fit.Vertex)
		}
		w.Fit = fit
	}
	if f.Spectrum.Len() > 0 {
		w.Frequencies = nullableSlice(f.Spectrum.Frequencies)
		w.Magnitudes = nullableSlice(f.Spectrum.Magnitudes)
	}
	return json.Marshal(w)
}

// EncodeEvents writes events in the shape JSONEventDecoder reads.
func EncodeEvents(events ...types.Event) ([]byte, error) {
	out := make([]wireEvent, 0, len(events))
	for _, ev := range events {
		w := wireEvent{Kind: string(ev.Kind), Device: ev.Device}
		if ev.Slot != nil {
			w.Slot = ev.Slot.String()
		}
		switch {
		case ev.Kind == types.EventRateChange:
			code := int(ev.Rate)
			w.Code = &code
		case ev.Snapshot != nil:
			ts := toUnix(ev.Snapshot.Timestamp)
			w.Timestamp = &ts
			w.Values = nullableSlice(ev.Snapshot.Values)
		case ev.Update != nil:
			ts := toUnix(ev.Update.Timestamp)
			w.Timestamp = &ts
			w.Value = nullable(ev.Update.Value)
		}
		out = append(out, w)
	}
	return json.Marshal(out)
}
