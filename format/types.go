// Package format defines the binary tags of the document encoding.
//
// Tag values are fixed by the BSON format (https://bsonspec.org) and must
// match any standard decoder of the format bit for bit.
package format

// MaxDocumentSize is the largest document a server accepts unless it
// advertises another maxBsonObjectSize: 16 MiB.
const MaxDocumentSize = 16 * 1024 * 1024

// MaxDecodedSize bounds the output of any decompressor: a batch of up to four
// maximum-size documents.
const MaxDecodedSize = 4 * MaxDocumentSize

type (
	ElementType   uint8
	BinarySubtype uint8
	CompressorID  uint8
)

const (
	TypeDouble        ElementType = 0x01 // TypeDouble is an IEEE-754 binary64.
	TypeString        ElementType = 0x02 // TypeString is a length-prefixed UTF-8 string.
	TypeEmbedded      ElementType = 0x03 // TypeEmbedded is a nested document.
	TypeArray         ElementType = 0x04 // TypeArray is a document keyed "0", "1", ...
	TypeBinary        ElementType = 0x05 // TypeBinary is a subtype-tagged byte string.
	TypeObjectID      ElementType = 0x07 // TypeObjectID is a 12-byte identifier.
	TypeBoolean       ElementType = 0x08 // TypeBoolean is a single 0/1 byte.
	TypeDateTime      ElementType = 0x09 // TypeDateTime is int64 milliseconds since the Unix epoch.
	TypeNull          ElementType = 0x0A // TypeNull carries no payload.
	TypeRegex         ElementType = 0x0B // TypeRegex is a pattern cstring followed by an options cstring.
	TypeJavaScript    ElementType = 0x0D // TypeJavaScript is code stored as a string.
	TypeCodeWithScope ElementType = 0x0F // TypeCodeWithScope is code plus a scope document.
	TypeInt32         ElementType = 0x10 // TypeInt32 is a signed 32-bit integer.
	TypeTimestamp     ElementType = 0x11 // TypeTimestamp is an increment/seconds pair.
	TypeInt64         ElementType = 0x12 // TypeInt64 is a signed 64-bit integer.
	TypeDecimal128    ElementType = 0x13 // TypeDecimal128 is an IEEE-754-2008 decimal128.
	TypeMinKey        ElementType = 0xFF // TypeMinKey compares lower than any other value.
	TypeMaxKey        ElementType = 0x7F // TypeMaxKey compares higher than any other value.

	SubtypeGeneric     BinarySubtype = 0x00
	SubtypeFunction    BinarySubtype = 0x01
	SubtypeBinaryOld   BinarySubtype = 0x02 // payload carries an inner int32 length
	SubtypeUUIDOld     BinarySubtype = 0x03
	SubtypeUUID        BinarySubtype = 0x04
	SubtypeMD5         BinarySubtype = 0x05
	SubtypeEncrypted   BinarySubtype = 0x06
	SubtypeColumn      BinarySubtype = 0x07
	SubtypeSensitive   BinarySubtype = 0x08
	SubtypeVector      BinarySubtype = 0x09
	SubtypeUserDefined BinarySubtype = 0x80

	CompressorNoop   CompressorID = 0x0 // CompressorNoop leaves the payload as is.
	CompressorSnappy CompressorID = 0x1 // CompressorSnappy is the snappy block format.
	CompressorZlib   CompressorID = 0x2 // CompressorZlib is RFC 1950 zlib.
	CompressorZstd   CompressorID = 0x3 // CompressorZstd is Zstandard.

	// CompressorLZ4 is not a wire compressor; it is only used for local archives.
	CompressorLZ4 CompressorID = 0xF0
)

func (t ElementType) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeEmbedded:
		return "embedded document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeObjectID:
		return "objectID"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "UTC datetime"
	case TypeNull:
		return "null"
	case TypeRegex:
		return "regex"
	case TypeJavaScript:
		return "javascript"
	case TypeCodeWithScope:
		return "code with scope"
	case TypeInt32:
		return "32-bit integer"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "64-bit integer"
	case TypeDecimal128:
		return "128-bit decimal"
	case TypeMinKey:
		return "min key"
	case TypeMaxKey:
		return "max key"
	default:
		return "Unknown"
	}
}

func (c CompressorID) String() string {
	switch c {
	case CompressorNoop:
		return "noop"
	case CompressorSnappy:
		return "snappy"
	case CompressorZlib:
		return "zlib"
	case CompressorZstd:
		return "zstd"
	case CompressorLZ4:
		return "lz4"
	default:
		return "Unknown"
	}
}

// ParseCompressor returns the compressor with the given name.
func ParseCompressor(name string) (CompressorID, bool) {
	for _, c := range []CompressorID{CompressorNoop, CompressorSnappy, CompressorZlib, CompressorZstd, CompressorLZ4} {
		if c.String() == name {
			return c, true
		}
	}

	return 0, false
}
