// Package document defines the three in-memory document shapes accepted by
// the encoder and the read-only view used to find the identifier field.
//
//	document.M{"name": value.String("a")}                       // unordered map
//	document.D{{Key: "name", Value: value.String("a")}}         // ordered pairs
//	document.Flat{"name", value.String("a"), "n", value.Int32(1)} // alternating names and values
//
// The set of shapes is closed: Document can only be implemented by types of
// this package. Documents are never modified by the encoder.
package document

import (
	"slices"

	"github.com/arloliu/docwire/errs"
)

// IDKey is the name of the identifier field.
const IDKey = "_id"

// Document is a read-only view over one of the supported document shapes.
type Document interface {
	// Lookup finds the first top-level field named key. pos is the position
	// of that field as reported by Range.
	Lookup(key string) (v any, pos int, ok bool)
	// Range calls fn for every field in encoding order and stops at the
	// first error, which it returns.
	Range(fn func(pos int, key string, v any) error) error
	// Len returns the number of fields Range visits.
	Len() int

	isDocument()
}

// LocateID returns the value of the top-level "_id" field.
//
// Presence decides the result, not the value: a document whose "_id" is null
// still has an identifier.
func LocateID(doc Document) (any, bool) {
	v, _, ok := doc.Lookup(IDKey)
	return v, ok
}

// M is an unordered document. Range visits keys in lexicographic order so
// equal maps always encode to equal bytes.
type M map[string]any

func (m M) sortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func (m M) Lookup(key string) (any, int, bool) {
	v, ok := m[key]
	if !ok {
		return nil, -1, false
	}

	pos, _ := slices.BinarySearch(m.sortedKeys(), key)

	return v, pos, true
}

func (m M) Range(fn func(pos int, key string, v any) error) error {
	for i, k := range m.sortedKeys() {
		if err := fn(i, k, m[k]); err != nil {
			return err
		}
	}

	return nil
}

func (m M) Len() int { return len(m) }

func (M) isDocument() {}

// E is a single field of a D.
type E struct {
	Key   string
	Value any
}

// D is an ordered document. Field order is preserved on output.
type D []E

func (d D) Lookup(key string) (any, int, bool) {
	for i, e := range d {
		if e.Key == key {
			return e.Value, i, true
		}
	}

	return nil, -1, false
}

func (d D) Range(fn func(pos int, key string, v any) error) error {
	for i, e := range d {
		if err := fn(i, e.Key, e.Value); err != nil {
			return err
		}
	}

	return nil
}

func (d D) Len() int { return len(d) }

func (D) isDocument() {}

// Flat is an ordered document stored as alternating names and values:
// name, value, name, value, ...
//
// Names must be strings. A trailing name without a value is ignored.
// Positions reported by Lookup and Range are pair indexes, not slice indexes.
type Flat []any

func (f Flat) Lookup(key string) (any, int, bool) {
	for i := 0; i+1 < len(f); i += 2 {
		if name, ok := f[i].(string); ok && name == key {
			return f[i+1], i / 2, true
		}
	}

	return nil, -1, false
}

func (f Flat) Range(fn func(pos int, key string, v any) error) error {
	for i := 0; i+1 < len(f); i += 2 {
		name, ok := f[i].(string)
		if !ok {
			return errs.NewEncodeError(errs.ErrInvalidFieldName, "",
				"flat document name at index %d is %T, not string", i, f[i])
		}
		if err := fn(i/2, name, f[i+1]); err != nil {
			return err
		}
	}

	return nil
}

func (f Flat) Len() int { return len(f) / 2 }

func (Flat) isDocument() {}

// WithID returns a copy of doc, in the same shape, whose "_id" field is id.
// An existing "_id" is replaced; for ordered shapes the identifier becomes
// the first field. doc is not modified.
func WithID(doc Document, id any) Document {
	switch d := doc.(type) {
	case M:
		out := make(M, len(d)+1)
		for k, v := range d {
			out[k] = v
		}
		out[IDKey] = id

		return out
	case D:
		out := make(D, 0, len(d)+1)
		out = append(out, E{Key: IDKey, Value: id})
		_, pos, _ := d.Lookup(IDKey)
		for i, e := range d {
			if i != pos {
				out = append(out, e)
			}
		}

		return out
	case Flat:
		out := make(Flat, 0, len(d)+2)
		out = append(out, IDKey, id)
		_, pos, _ := d.Lookup(IDKey)
		for i := 0; i+1 < len(d); i += 2 {
			if i/2 != pos {
				out = append(out, d[i], d[i+1])
			}
		}

		return out
	default:
		return doc
	}
}
