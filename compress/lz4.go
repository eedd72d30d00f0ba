package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/format"
)

// lz4MinDecodeBuffer fits one small document, the common archive entry.
const lz4MinDecodeBuffer = 4 * 1024

var lz4Compressors = sync.Pool{
	New: func() any {
		return new(lz4.Compressor)
	},
}

// LZ4Codec produces raw LZ4 blocks without a frame header. Servers do not
// accept it; the CLI and the outbox use it for local archives of encoded
// documents.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates an LZ4Codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses data into one LZ4 block.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	lc, _ := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(lc)

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress decodes one LZ4 block.
//
// A raw block does not record its decoded size. The first buffer assumes a
// 4:1 ratio and doubles on every short read up to format.MaxDecodedSize;
// larger blocks fail with errs.ErrDecodedTooLarge.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size := lz4DecodeGuess(len(data))
	for {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if size >= format.MaxDecodedSize {
			return nil, fmt.Errorf("lz4: %w", errs.ErrDecodedTooLarge)
		}

		size = min(size*2, format.MaxDecodedSize)
	}
}

func lz4DecodeGuess(compressed int) int {
	return min(max(compressed*4, lz4MinDecodeBuffer), format.MaxDecodedSize)
}
