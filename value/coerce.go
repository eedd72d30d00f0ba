package value

import (
	"math"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/objectid"
)

// CoercionPolicy decides how plain Go values found in a document are turned
// into a Value.
type CoercionPolicy uint8

const (
	// CoerceNone accepts only Value variants and document shapes.
	// Anything else fails with ErrUnsupportedValueType.
	CoerceNone CoercionPolicy = iota

	// CoerceNative maps Go values the way the MongoDB Go driver does:
	//
	//	nil, nil pointer                   Null
	//	bool                               Boolean
	//	int8, int16, int32, uint8, uint16  Int32
	//	int                                Int32 if it fits, else Int64
	//	int64, uint32                      Int64
	//	uint, uint64                       Int64, ErrNumericOverflow above MaxInt64
	//	float32, float64                   Double
	//	string                             String
	//	[]byte                             Binary, generic subtype
	//	uuid.UUID                          Binary, UUID subtype
	//	time.Time                          DateTime
	//	objectid.ObjectID                  ObjectID
	//	map[string]T                       Embedded document
	//	slices and arrays                  Array
	//	non-nil pointers                   the pointed-to value
	CoerceNative

	// CoerceNativeMinSize is CoerceNative except that int64, uint, uint32 and
	// uint64 values that fit in an int32 become Int32.
	CoerceNativeMinSize
)

func (p CoercionPolicy) String() string {
	switch p {
	case CoerceNone:
		return "none"
	case CoerceNative:
		return "native"
	case CoerceNativeMinSize:
		return "native-minsize"
	default:
		return "Unknown"
	}
}

// ParseCoercionPolicy returns the policy with the given name.
func ParseCoercionPolicy(name string) (CoercionPolicy, bool) {
	for _, p := range []CoercionPolicy{CoerceNone, CoerceNative, CoerceNativeMinSize} {
		if p.String() == name {
			return p, true
		}
	}

	return 0, false
}

// Coerce converts v to a Value under policy p.
//
// Values that already are a Value are returned unchanged. Document shapes are
// wrapped in Embedded under every policy since their wire type is never
// ambiguous. Returned errors are *errs.EncodeError values without a path.
func Coerce(v any, p CoercionPolicy) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case document.Document:
		return Embedded{Doc: x}, nil
	}

	if p == CoerceNone {
		return nil, unsupported(v)
	}

	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Boolean(x), nil
	case int8:
		return Int32(x), nil
	case int16:
		return Int32(x), nil
	case int32:
		return Int32(x), nil
	case uint8:
		return Int32(x), nil
	case uint16:
		return Int32(x), nil
	case int:
		return fromInt64(int64(x), true), nil
	case int64:
		return fromInt64(x, p == CoerceNativeMinSize), nil
	case uint32:
		return fromInt64(int64(x), p == CoerceNativeMinSize), nil
	case uint:
		return fromUint64(uint64(x), p)
	case uint64:
		return fromUint64(x, p)
	case float32:
		return Double(x), nil
	case float64:
		return Double(x), nil
	case string:
		return String(x), nil
	case []byte:
		return Binary{Subtype: format.SubtypeGeneric, Data: x}, nil
	case uuid.UUID:
		return UUID(x), nil
	case time.Time:
		return NewDateTime(x), nil
	case objectid.ObjectID:
		return ObjectID(x), nil
	case map[string]any:
		return Embedded{Doc: document.M(x)}, nil
	case []any:
		return Array(x), nil
	}

	return coerceReflect(reflect.ValueOf(v), p)
}

func coerceReflect(rv reflect.Value, p CoercionPolicy) (Value, error) {
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}

		return Coerce(rv.Elem().Interface(), p)
	case reflect.Bool:
		return Boolean(rv.Bool()), nil
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return Int32(rv.Int()), nil //nolint:gosec
	case reflect.Int:
		return fromInt64(rv.Int(), true), nil
	case reflect.Int64:
		return fromInt64(rv.Int(), p == CoerceNativeMinSize), nil
	case reflect.Uint8, reflect.Uint16:
		return Int32(rv.Uint()), nil //nolint:gosec
	case reflect.Uint32:
		return fromInt64(int64(rv.Uint()), p == CoerceNativeMinSize), nil //nolint:gosec
	case reflect.Uint, reflect.Uint64:
		return fromUint64(rv.Uint(), p)
	case reflect.Float32, reflect.Float64:
		return Double(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return Null{}, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Binary{Subtype: format.SubtypeGeneric, Data: rv.Bytes()}, nil
		}

		return reflectArray(rv), nil
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			data := make([]byte, rv.Len())
			for i := range data {
				data[i] = byte(rv.Index(i).Uint())
			}

			return Binary{Subtype: format.SubtypeGeneric, Data: data}, nil
		}

		return reflectArray(rv), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errs.NewEncodeError(errs.ErrUnsupportedValueType, "",
				"map key type %s is not a string", rv.Type().Key())
		}
		if rv.IsNil() {
			return Null{}, nil
		}

		m := make(document.M, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}

		return Embedded{Doc: m}, nil
	}

	return nil, unsupported(rv.Interface())
}

func reflectArray(rv reflect.Value) Array {
	arr := make(Array, rv.Len())
	for i := range arr {
		arr[i] = rv.Index(i).Interface()
	}

	return arr
}

func fromInt64(n int64, minSize bool) Value {
	if minSize && n >= math.MinInt32 && n <= math.MaxInt32 {
		return Int32(n)
	}

	return Int64(n)
}

func fromUint64(n uint64, p CoercionPolicy) (Value, error) {
	if n > math.MaxInt64 {
		return nil, errs.NewEncodeError(errs.ErrNumericOverflow, "", "unsigned value %d", n)
	}

	return fromInt64(int64(n), p == CoerceNativeMinSize), nil
}

func unsupported(v any) error {
	return errs.NewEncodeError(errs.ErrUnsupportedValueType, "", "Go type %T", v)
}
