package codec

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

func NewJSONEventDecoder() types.EventDecoder {
	return &JSONEventDecoder{}
}

func NewLineEventDecoder() types.EventDecoder {
	return &LineEventDecoder{}
}

func NewJSONFrameEncoder() types.FrameEncoder {
	return &JSONFrameEncoder{}
}

// NewEventDecoder returns the decoder for a configured format name ("json"
// or "line"). Unknown names fall back to JSON.
func NewEventDecoder(format string) types.EventDecoder {
	if format == "line" {
		return NewLineEventDecoder()
	}
	return NewJSONEventDecoder()
}
