// Package encoding maps typed values onto the binary document format.
//
// Every element is written as
//
//	tag (1 byte) | field name (UTF-8, NUL terminated) | payload
//
// and the payload layout per type is:
//
//	Int32           4 bytes, little-endian two's complement
//	Int64           8 bytes, little-endian two's complement
//	Double          8 bytes, little-endian IEEE-754 binary64
//	Decimal128      16 bytes, low half then high half, little-endian
//	String          int32 length (including NUL) | UTF-8 bytes | NUL
//	Binary          int32 length | subtype | bytes
//	Boolean         1 byte, 0 or 1
//	Embedded, Array int32 total length | elements | NUL
//	DateTime        int64 milliseconds since the Unix epoch
//	Regex           pattern cstring | sorted flags cstring
//	JavaScript      same as String
//	CodeWithScope   int32 total length | String | Embedded
//	ObjectID        12 raw bytes
//	Timestamp       uint32 increment | uint32 seconds
//	Null, MinKey, MaxKey  no payload
//
// The layouts follow https://bsonspec.org and are decoded by any standard
// BSON reader.
//
// ValueEncoder writes into a pooled buffer and checks field names, string
// validity, nesting depth and the size limit as it goes, so a failure is
// detected before the offending bytes are committed anywhere else.
package encoding
