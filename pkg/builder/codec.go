package builder

import (
	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type EventDecoder = types.EventDecoder

type FrameEncoder = types.FrameEncoder

type CompressionAlgorithm = types.CompressionAlgorithm

const (
	CompressNone   = types.CompressNone
	CompressGzip   = types.CompressGzip
	CompressSnappy = types.CompressSnappy
	CompressZstd   = types.CompressZstd
	CompressBrotli = types.CompressBrotli
	CompressLZ4    = types.CompressLZ4
)

// NewJSONEventDecoder decodes JSON event objects or arrays.
func NewJSONEventDecoder() types.EventDecoder { return codec.NewJSONEventDecoder() }

// NewLineEventDecoder decodes "<device> <unix-seconds> <value>" lines.
func NewLineEventDecoder() types.EventDecoder { return codec.NewLineEventDecoder() }

// NewEventDecoder picks a decoder by format name ("json" or "line").
func NewEventDecoder(format string) types.EventDecoder { return codec.NewEventDecoder(format) }

func NewJSONFrameEncoder() types.FrameEncoder { return codec.NewJSONFrameEncoder() }

// EncodeEvents renders events in the JSON wire form, e.g. for test feeds.
func EncodeEvents(events ...Event) ([]byte, error) { return codec.EncodeEvents(events...) }

func ParseCompression(name string) (CompressionAlgorithm, error) { return codec.ParseCompression(name) }
