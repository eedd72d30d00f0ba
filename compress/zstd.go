package compress

// ZstdCodec produces Zstandard frames.
//
// The default build uses the pure Go klauspost/compress/zstd implementation.
// Building with the gozstd tag (and cgo) switches to valyala/gozstd.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a ZstdCodec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
