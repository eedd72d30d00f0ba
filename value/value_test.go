package value

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/objectid"
)

func TestValue_Type(t *testing.T) {
	tests := []struct {
		val  Value
		want format.ElementType
	}{
		{Double(1.5), format.TypeDouble},
		{String("a"), format.TypeString},
		{Embedded{Doc: document.M{}}, format.TypeEmbedded},
		{Array{}, format.TypeArray},
		{Binary{}, format.TypeBinary},
		{NewObjectID(), format.TypeObjectID},
		{Boolean(true), format.TypeBoolean},
		{DateTime(0), format.TypeDateTime},
		{Null{}, format.TypeNull},
		{Regex{Pattern: "^a$"}, format.TypeRegex},
		{JavaScript("1"), format.TypeJavaScript},
		{CodeWithScope{Code: "x"}, format.TypeCodeWithScope},
		{Int32(1), format.TypeInt32},
		{Timestamp{}, format.TypeTimestamp},
		{Int64(1), format.TypeInt64},
		{Decimal128{}, format.TypeDecimal128},
		{MinKey{}, format.TypeMinKey},
		{MaxKey{}, format.TypeMaxKey},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			require.Equal(t, tt.want, tt.val.Type())
		})
	}
}

func TestDateTime(t *testing.T) {
	ts := time.Date(2020, 2, 29, 23, 59, 59, 999_999_999, time.UTC)
	dt := NewDateTime(ts)

	require.Equal(t, DateTime(ts.UnixMilli()), dt)
	require.Equal(t, ts.Truncate(time.Millisecond), dt.Time())
	require.Equal(t, time.Unix(0, 0).UTC(), DateTime(0).Time())
}

func TestDecimal128_Bytes(t *testing.T) {
	d := Decimal128{High: 0x3040000000000000, Low: 1}
	b := d.Bytes()

	require.Equal(t, [16]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x40, 0x30}, b)
	require.Equal(t, d, Decimal128FromBytes(b))
}

func TestUUID(t *testing.T) {
	u := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	bin := UUID(u)

	require.Equal(t, format.SubtypeUUID, bin.Subtype)
	require.Equal(t, u[:], bin.Data)
}

// ==============================================================================
// Coercion
// ==============================================================================

func TestCoerce_Strict(t *testing.T) {
	t.Run("values pass through", func(t *testing.T) {
		v, err := Coerce(Int64(5), CoerceNone)
		require.NoError(t, err)
		require.Equal(t, Int64(5), v)
	})

	t.Run("documents become embedded", func(t *testing.T) {
		doc := document.D{{Key: "a", Value: Int32(1)}}
		v, err := Coerce(doc, CoerceNone)
		require.NoError(t, err)
		require.Equal(t, Embedded{Doc: doc}, v)
	})

	t.Run("plain Go values are rejected", func(t *testing.T) {
		for _, in := range []any{42, "42", nil, 1.5, true} {
			_, err := Coerce(in, CoerceNone)
			require.ErrorIs(t, err, errs.ErrUnsupportedValueType, "%T", in)
		}
	})
}

type celsius float64

func TestCoerce_Native(t *testing.T) {
	oid := objectid.New()
	u := uuid.New()
	ts := time.UnixMilli(1_700_000_000_123)
	n := int32(7)
	var nilPtr *int

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null{}},
		{"nil pointer", nilPtr, Null{}},
		{"pointer", &n, Int32(7)},
		{"bool", true, Boolean(true)},
		{"int8", int8(-3), Int32(-3)},
		{"int16", int16(300), Int32(300)},
		{"int32", int32(42), Int32(42)},
		{"uint8", uint8(255), Int32(255)},
		{"uint16", uint16(65535), Int32(65535)},
		{"small int", 42, Int32(42)},
		{"large int", math.MaxInt32 + 1, Int64(math.MaxInt32 + 1)},
		{"int64", int64(1), Int64(1)},
		{"uint32", uint32(1), Int64(1)},
		{"uint64", uint64(math.MaxInt64), Int64(math.MaxInt64)},
		{"float32", float32(0.5), Double(0.5)},
		{"float64", 1.5, Double(1.5)},
		{"named float", celsius(21.5), Double(21.5)},
		{"string", "héllo", String("héllo")},
		{"bytes", []byte{1, 2}, Binary{Subtype: format.SubtypeGeneric, Data: []byte{1, 2}}},
		{"byte array", [3]byte{1, 2, 3}, Binary{Subtype: format.SubtypeGeneric, Data: []byte{1, 2, 3}}},
		{"uuid", u, UUID(u)},
		{"time", ts, DateTime(1_700_000_000_123)},
		{"objectid", oid, ObjectID(oid)},
		{"map", map[string]any{"a": 1}, Embedded{Doc: document.M{"a": 1}}},
		{"typed map", map[string]int{"a": 1}, Embedded{Doc: document.M{"a": 1}}},
		{"slice", []any{1, "x"}, Array{1, "x"}},
		{"typed slice", []string{"a", "b"}, Array{"a", "b"}},
		{"int array", [2]int{1, 2}, Array{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.in, CoerceNative)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_NativeMinSize(t *testing.T) {
	tests := []struct {
		in   any
		want Value
	}{
		{int64(5), Int32(5)},
		{int64(math.MaxInt32 + 1), Int64(math.MaxInt32 + 1)},
		{uint32(9), Int32(9)},
		{uint64(10), Int32(10)},
		{uint(11), Int32(11)},
	}

	for _, tt := range tests {
		got, err := Coerce(tt.in, CoerceNativeMinSize)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestCoerce_Errors(t *testing.T) {
	t.Run("uint64 overflow", func(t *testing.T) {
		_, err := Coerce(uint64(math.MaxUint64), CoerceNative)
		require.ErrorIs(t, err, errs.ErrNumericOverflow)
	})

	t.Run("uint overflow", func(t *testing.T) {
		_, err := Coerce(uint(math.MaxInt64)+1, CoerceNative)
		require.ErrorIs(t, err, errs.ErrNumericOverflow)
	})

	t.Run("unsupported kinds", func(t *testing.T) {
		for _, in := range []any{make(chan int), func() {}, struct{ A int }{1}, complex(1, 2), map[int]string{1: "a"}} {
			_, err := Coerce(in, CoerceNative)
			require.ErrorIs(t, err, errs.ErrUnsupportedValueType, "%T", in)
		}
	})
}

func TestParseCoercionPolicy(t *testing.T) {
	for _, p := range []CoercionPolicy{CoerceNone, CoerceNative, CoerceNativeMinSize} {
		got, ok := ParseCoercionPolicy(p.String())
		require.True(t, ok)
		require.Equal(t, p, got)
	}

	_, ok := ParseCoercionPolicy("loose")
	require.False(t, ok)
}
