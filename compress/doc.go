// Package compress provides the message compressors a driver can negotiate
// with a server, plus LZ4 for local archives of encoded documents.
//
// Compressors are identified by format.CompressorID, whose values are the
// compressor ids of OP_COMPRESSED:
//
//	id  name     implementation
//	0   noop     payload returned as is
//	1   snappy   snappy block format (klauspost/compress/s2)
//	2   zlib     RFC 1950 (klauspost/compress/zlib)
//	3   zstd     Zstandard frame (klauspost/compress/zstd, or valyala/gozstd
//	             when built with the gozstd tag)
//
// LZ4 (format.CompressorLZ4) is a raw LZ4 block and is never sent to a
// server.
//
// All codecs are safe for concurrent use.
//
//	codec, err := compress.GetCodec(format.CompressorZstd)
//	if err != nil {
//	    return err
//	}
//	payload, err := codec.Compress(doc.Bytes())
package compress
