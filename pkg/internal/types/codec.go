package types

// EventDecoder turns one transport message into zero or more events.
type EventDecoder interface {
	ContentType() string
	Decode(data []byte) ([]Event, error)
}

// FrameEncoder serializes a refresh frame for publication.
type FrameEncoder interface {
	ContentType() string
	Encode(f Frame) ([]byte, error)
}

// CompressionAlgorithm names a payload compression applied after encoding.
type CompressionAlgorithm string

const (
	CompressNone   CompressionAlgorithm = ""
	CompressGzip   CompressionAlgorithm = "gzip"
	CompressSnappy CompressionAlgorithm = "snappy"
	CompressZstd   CompressionAlgorithm = "zstd"
	CompressBrotli CompressionAlgorithm = "brotli"
	CompressLZ4    CompressionAlgorithm = "lz4"
)
