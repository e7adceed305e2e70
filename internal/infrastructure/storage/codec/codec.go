// Package codec compresses persisted payloads above a size threshold.
package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Algo names the compression applied to a payload.
type Algo string

const (
	AlgoNone Algo = "none"
	AlgoZstd Algo = "zstd"
)

// DefaultThreshold is the payload size above which compression kicks in.
const DefaultThreshold = 10 * 1024

// Codec compresses payloads larger than its threshold with zstd.
// It is safe for concurrent use.
type Codec struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	threshold int
}

// New creates a codec. A threshold <= 0 selects DefaultThreshold.
func New(threshold int) (*Codec, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Codec{encoder: encoder, decoder: decoder, threshold: threshold}, nil
}

// Encode returns data, compressed when it exceeds the threshold, and the
// algorithm that was applied.
func (c *Codec) Encode(data []byte) ([]byte, Algo) {
	if len(data) <= c.threshold {
		return data, AlgoNone
	}
	return c.encoder.EncodeAll(data, nil), AlgoZstd
}

// Decode reverses Encode.
func (c *Codec) Decode(data []byte, algo Algo) ([]byte, error) {
	switch algo {
	case AlgoNone, "":
		return data, nil
	case AlgoZstd:
		out, err := c.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", algo)
	}
}

// Close releases encoder and decoder resources.
func (c *Codec) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}
