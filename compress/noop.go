package compress

// NoopCodec returns payloads unchanged. It backs compressor id 0, which a
// server may negotiate for messages it must not compress.
type NoopCodec struct{}

var _ Codec = (*NoopCodec)(nil)

// NewNoopCodec creates a NoopCodec.
func NewNoopCodec() NoopCodec {
	return NoopCodec{}
}

// Compress returns data itself, not a copy.
func (c NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself, not a copy.
func (c NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
