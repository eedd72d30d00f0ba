// Package endian provides the byte orders used by docwire.
//
// Two byte orders meet in an encoded document: every length prefix and
// numeric payload is little-endian, while the timestamp and counter inside a
// generated ObjectID are big-endian so that identifiers sort by creation time.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(size))
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine values are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary so
// callers can both patch fixed offsets and append to a growing buffer.
//
// binary.LittleEndian and binary.BigEndian satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the byte order of the document wire format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the byte order of ObjectID fields.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendInt32 appends v in the given byte order.
func AppendInt32(engine EndianEngine, dst []byte, v int32) []byte {
	return engine.AppendUint32(dst, uint32(v)) //nolint:gosec
}

// AppendInt64 appends v in the given byte order.
func AppendInt64(engine EndianEngine, dst []byte, v int64) []byte {
	return engine.AppendUint64(dst, uint64(v)) //nolint:gosec
}

// PutInt32 writes v at the start of b in the given byte order.
// It panics if b is shorter than 4 bytes.
func PutInt32(engine EndianEngine, b []byte, v int32) {
	engine.PutUint32(b, uint32(v)) //nolint:gosec
}
