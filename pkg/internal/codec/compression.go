package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// ParseCompression maps a configuration name to an algorithm.
func ParseCompression(name string) (types.CompressionAlgorithm, error) {
	switch alg := types.CompressionAlgorithm(name); alg {
	case types.CompressNone, types.CompressGzip, types.CompressSnappy,
		types.CompressZstd, types.CompressBrotli, types.CompressLZ4:
		return alg, nil
	case "none":
		return types.CompressNone, nil
	}
	return types.CompressNone, fmt.Errorf("%w: %q", ErrUnsupportedCompression, name)
}

// Compress returns data compressed with algorithm. CompressNone returns data
// unchanged.
func Compress(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch algorithm {
	case types.CompressNone:
		return data, nil
	case types.CompressGzip:
		w = gzip.NewWriter(&b)
	case types.CompressSnappy:
		w = snappy.NewBufferedWriter(&b)
	case types.CompressZstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case types.CompressBrotli:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case types.CompressLZ4:
		w = lz4.NewWriter(&b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, algorithm)
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var r io.Reader

	switch algorithm {
	case types.CompressNone:
		return data, nil
	case types.CompressGzip:
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case types.CompressSnappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case types.CompressZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case types.CompressBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case types.CompressLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, algorithm)
	}

	var b bytes.Buffer
	if _, err := io.Copy(&b, r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
