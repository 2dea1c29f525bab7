// Package codec converts transport payloads into session events and refresh
// frames into publishable payloads.
package codec

import (
	"errors"
	"math"
	"time"
)

var (
	ErrUnknownKind            = errors.New("codec: unknown event kind")
	ErrMissingDevice          = errors.New("codec: event has no device or slot")
	ErrMissingTimestamp       = errors.New("codec: event has no timestamp")
	ErrMalformedLine          = errors.New("codec: malformed line")
	ErrUnsupportedCompression = errors.New("codec: unsupported compression")
)

// Content types reported by the decoders and encoders in this package.
const (
	ContentTypeJSON = "application/json"
	ContentTypeLine = "text/plain"
)

// JSONEventDecoder decodes one event object or an array of them.
type JSONEventDecoder struct{}

// LineEventDecoder decodes newline separated text records.
type LineEventDecoder struct{}

// JSONFrameEncoder encodes frames as JSON objects. Missing values are written
// as null.
type JSONFrameEncoder struct{}

// wireEvent is the JSON shape of an event. Timestamps are unix seconds and a
// null value is a missing reading.
type wireEvent struct {
	Kind      string     `json:"kind"`
	Device    string     `json:"device,omitempty"`
	Slot      string     `json:"slot,omitempty"`
	Timestamp *float64   `json:"timestamp,omitempty"`
	Values    []*float64 `json:"values,omitempty"`
	Value     *float64   `json:"value,omitempty"`
	Code      *int       `json:"code,omitempty"`
}

type wireFit struct {
	Kind         string     `json:"kind"`
	Order        int        `json:"order"`
	Coefficients []*float64 `json:"coefficients,omitempty"`
	Vertex       *float64   `json:"vertex,omitempty"`
	Summary      string     `json:"summary"`
	Status       string     `json:"status"`
}

type wireStats struct {
	Count       int      `json:"count"`
	Mean        *float64 `json:"mean"`
	StdDev      *float64 `json:"std_dev"`
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Correlation *float64 `json:"correlation,omitempty"`
}

type wireFrame struct {
	SessionID   string     `json:"session_id"`
	Sequence    uint64     `json:"sequence"`
	Mode        string     `json:"mode"`
	Title       string     `json:"title"`
	Devices     []string   `json:"devices"`
	RateHz      *float64   `json:"rate_hz"`
	X           []*float64 `json:"x"`
	Y           []*float64 `json:"y"`
	Stats       wireStats  `json:"stats"`
	Fit         *wireFit   `json:"fit,omitempty"`
	Frequencies []*float64 `json:"frequencies,omitempty"`
	Magnitudes  []*float64 `json:"magnitudes,omitempty"`
	Result      string     `json:"result"`
	Status      string     `json:"status"`
}

func fromUnix(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}

func toUnix(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func nullableSlice(xs []float64) []*float64 {
	out := make([]*float64, len(xs))
	for i, v := range xs {
		out[i] = nullable(v)
	}
	return out
}

func orMissing(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}
