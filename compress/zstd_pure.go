//go:build !(cgo && gozstd)

package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/format"
)

// Decoders refuse frames that expand past format.MaxDecodedSize.
var zstdDecoders = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(format.MaxDecodedSize),
		)
		if err != nil {
			panic(fmt.Sprintf("zstd: cannot create document decoder: %v", err))
		}

		return d
	},
}

// Frames carry no checksum; encoded documents have their own xxHash64.
var zstdEncoders = sync.Pool{
	New: func() any {
		e, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("zstd: cannot create document encoder: %v", err))
		}

		return e
	},
}

// Compress compresses data into a single zstd frame that records the
// decoded size.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	enc, _ := zstdEncoders.Get().(*zstd.Encoder)
	defer zstdEncoders.Put(enc)

	return enc.EncodeAll(data, make([]byte, 0, len(data)/2+64)), nil
}

// Decompress decodes zstd frames.
//
// When the first frame header records its decoded size the output is
// allocated once; a size above format.MaxDecodedSize fails with
// errs.ErrDecodedTooLarge before anything is decoded.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var dst []byte
	var header zstd.Header
	if err := header.Decode(data); err == nil && header.HasFCS {
		if header.FrameContentSize > format.MaxDecodedSize {
			return nil, fmt.Errorf("zstd: frame of %d bytes: %w", header.FrameContentSize, errs.ErrDecodedTooLarge)
		}
		dst = make([]byte, 0, header.FrameContentSize)
	}

	dec, _ := zstdDecoders.Get().(*zstd.Decoder)
	defer zstdDecoders.Put(dec)

	out, err := dec.DecodeAll(data, dst)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return nil, fmt.Errorf("zstd: %w", errs.ErrDecodedTooLarge)
	}
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
