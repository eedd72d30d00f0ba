//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/format"
)

// Compress compresses data into a single zstd frame at level 3.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decodes zstd frames. Output above format.MaxDecodedSize fails
// with errs.ErrDecodedTooLarge.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) > format.MaxDecodedSize {
		return nil, fmt.Errorf("zstd: %d bytes: %w", len(out), errs.ErrDecodedTooLarge)
	}

	return out, nil
}
