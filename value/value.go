// Package value defines the strictly typed values that can be stored in a
// document.
//
// Value is a closed tagged union: every variant is a distinct Go type of this
// package and the wire type is fixed when the value is constructed. The
// encoder never guesses between numeric and string representations; plain Go
// values are only accepted through an explicit CoercionPolicy (see Coerce).
package value

import (
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/objectid"
)

// Value is a single typed document value.
type Value interface {
	// Type returns the element type tag the value is encoded with.
	Type() format.ElementType

	isValue()
}

type (
	// Double is an IEEE-754 binary64.
	Double float64
	// String is a UTF-8 string. Invalid UTF-8 fails encoding.
	String string
	// Embedded is a nested document. The identifier-first rule does not apply to it.
	Embedded struct{ Doc document.Document }
	// Array is encoded as a document keyed "0", "1", ...
	Array []any
	// Binary is a byte string tagged with a subtype.
	Binary struct {
		Subtype format.BinarySubtype
		Data    []byte
	}
	// ObjectID is a 12-byte identifier.
	ObjectID objectid.ObjectID
	// Boolean is true or false.
	Boolean bool
	// DateTime is milliseconds since the Unix epoch, UTC.
	DateTime int64
	// Null is the null value.
	Null struct{}
	// Regex is a regular expression pattern with its option flags.
	Regex struct {
		Pattern string
		Options string
	}
	// JavaScript is code without a scope.
	JavaScript string
	// CodeWithScope is code with a scope document.
	CodeWithScope struct {
		Code  string
		Scope document.Document
	}
	// Int32 is a signed 32-bit integer.
	Int32 int32
	// Timestamp is the internal replication timestamp: seconds T and increment I.
	Timestamp struct {
		T uint32
		I uint32
	}
	// Int64 is a signed 64-bit integer.
	Int64 int64
	// Decimal128 is an IEEE-754-2008 decimal128, kept as its two 64-bit halves.
	Decimal128 struct {
		High uint64
		Low  uint64
	}
	// MinKey compares lower than all other values.
	MinKey struct{}
	// MaxKey compares higher than all other values.
	MaxKey struct{}
)

func (Double) Type() format.ElementType        { return format.TypeDouble }
func (String) Type() format.ElementType        { return format.TypeString }
func (Embedded) Type() format.ElementType      { return format.TypeEmbedded }
func (Array) Type() format.ElementType         { return format.TypeArray }
func (Binary) Type() format.ElementType        { return format.TypeBinary }
func (ObjectID) Type() format.ElementType      { return format.TypeObjectID }
func (Boolean) Type() format.ElementType       { return format.TypeBoolean }
func (DateTime) Type() format.ElementType      { return format.TypeDateTime }
func (Null) Type() format.ElementType          { return format.TypeNull }
func (Regex) Type() format.ElementType         { return format.TypeRegex }
func (JavaScript) Type() format.ElementType    { return format.TypeJavaScript }
func (CodeWithScope) Type() format.ElementType { return format.TypeCodeWithScope }
func (Int32) Type() format.ElementType         { return format.TypeInt32 }
func (Timestamp) Type() format.ElementType     { return format.TypeTimestamp }
func (Int64) Type() format.ElementType         { return format.TypeInt64 }
func (Decimal128) Type() format.ElementType    { return format.TypeDecimal128 }
func (MinKey) Type() format.ElementType        { return format.TypeMinKey }
func (MaxKey) Type() format.ElementType        { return format.TypeMaxKey }

func (Double) isValue()        {}
func (String) isValue()        {}
func (Embedded) isValue()      {}
func (Array) isValue()         {}
func (Binary) isValue()        {}
func (ObjectID) isValue()      {}
func (Boolean) isValue()       {}
func (DateTime) isValue()      {}
func (Null) isValue()          {}
func (Regex) isValue()         {}
func (JavaScript) isValue()    {}
func (CodeWithScope) isValue() {}
func (Int32) isValue()         {}
func (Timestamp) isValue()     {}
func (Int64) isValue()         {}
func (Decimal128) isValue()    {}
func (MinKey) isValue()        {}
func (MaxKey) isValue()        {}

// NewDateTime converts t to millisecond precision.
func NewDateTime(t time.Time) DateTime {
	return DateTime(t.UnixMilli())
}

// Time returns the DateTime as a UTC time.Time.
func (d DateTime) Time() time.Time {
	return time.UnixMilli(int64(d)).UTC()
}

// NewObjectID generates a fresh identifier from the process-wide generator.
func NewObjectID() ObjectID {
	return ObjectID(objectid.New())
}

// Hex returns the hex form of the identifier.
func (id ObjectID) Hex() string {
	return objectid.ObjectID(id).Hex()
}

// UUID returns u as binary subtype 4.
func UUID(u uuid.UUID) Binary {
	return Binary{Subtype: format.SubtypeUUID, Data: u[:]}
}

// Bytes returns the 16-byte wire form: the low half then the high half, both
// little-endian.
func (d Decimal128) Bytes() [16]byte {
	var b [16]byte
	for i := range 8 {
		b[i] = byte(d.Low >> (8 * i))
		b[8+i] = byte(d.High >> (8 * i))
	}

	return b
}

// Decimal128FromBytes is the inverse of Decimal128.Bytes.
func Decimal128FromBytes(b [16]byte) Decimal128 {
	var d Decimal128
	for i := range 8 {
		d.Low |= uint64(b[i]) << (8 * i)
		d.High |= uint64(b[8+i]) << (8 * i)
	}

	return d
}
