package compress

import (
	"fmt"

	"github.com/arloliu/docwire/format"
)

// Compressor compresses a payload.
//
// The returned slice is owned by the caller. The input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// It returns an error if data is corrupted or was produced by another
// algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one compression, for CLI reports and logs.
type Stats struct {
	Compressor     format.CompressorID
	OriginalSize   int
	CompressedSize int
}

// Ratio returns compressed size / original size, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

var builtinCodecs = map[format.CompressorID]Codec{
	format.CompressorNoop:   NewNoopCodec(),
	format.CompressorSnappy: NewSnappyCodec(),
	format.CompressorZlib:   NewZlibCodec(),
	format.CompressorZstd:   NewZstdCodec(),
	format.CompressorLZ4:    NewLZ4Codec(),
}

// GetCodec returns the built-in Codec for id.
func GetCodec(id format.CompressorID) (Codec, error) {
	if codec, ok := builtinCodecs[id]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compressor: %s", id)
}

// CompressWithStats compresses data with the codec for id and reports sizes.
func CompressWithStats(id format.CompressorID, data []byte) ([]byte, Stats, error) {
	codec, err := GetCodec(id)
	if err != nil {
		return nil, Stats{}, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression failed: %w", id, err)
	}

	return out, Stats{Compressor: id, OriginalSize: len(data), CompressedSize: len(out)}, nil
}
