package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/format"
)

// SnappyCodec produces the snappy block format.
type SnappyCodec struct{}

var _ Codec = (*SnappyCodec)(nil)

// NewSnappyCodec creates a SnappyCodec.
func NewSnappyCodec() SnappyCodec {
	return SnappyCodec{}
}

// Compress compresses data into a snappy-compatible block.
func (c SnappyCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeSnappy(nil, data), nil
}

// Decompress decodes a snappy block. The decoded length in the block header
// is checked against format.MaxDecodedSize before the output is allocated.
func (c SnappyCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}
	if n > format.MaxDecodedSize {
		return nil, fmt.Errorf("snappy: block of %d bytes: %w", n, errs.ErrDecodedTooLarge)
	}

	out, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}

	return out, nil
}
