package encoding

import (
	"errors"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/endian"
	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/internal/pool"
	"github.com/arloliu/docwire/value"
)

// DefaultMaxDepth is the default limit on nested documents and arrays.
const DefaultMaxDepth = 100

// Config configures a ValueEncoder.
type Config struct {
	Keys     KeyPolicy
	Coercion value.CoercionPolicy
	// MaxSize is the maximum length of the buffer being written, in bytes.
	// Zero disables the check.
	MaxSize int
	// MaxDepth is the maximum nesting of documents and arrays. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

// ValueEncoder encodes typed values into a document buffer.
//
// A ValueEncoder holds no per-call state and is safe for concurrent use.
type ValueEncoder struct {
	cfg    Config
	engine endian.EndianEngine
}

// NewValueEncoder creates a ValueEncoder.
func NewValueEncoder(cfg Config) *ValueEncoder {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	return &ValueEncoder{
		cfg:    cfg,
		engine: endian.GetLittleEndianEngine(),
	}
}

// EncodeValue returns the payload bytes of v, without tag or field name.
func (e *ValueEncoder) EncodeValue(v value.Value) ([]byte, error) {
	buf := pool.GetDocumentBuffer()
	defer pool.PutDocumentBuffer(buf)

	if err := e.appendPayload(buf, "", v, 0); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// Resolve converts a raw document value to a Value under the configured
// coercion policy. Errors carry path.
func (e *ValueEncoder) Resolve(path string, v any) (value.Value, error) {
	val, err := value.Coerce(v, e.cfg.Coercion)
	if err != nil {
		return nil, withPath(err, path)
	}

	return val, nil
}

// AppendElement appends one field. The field name is checked against the key
// policy; parent is the dotted path of the enclosing document.
func (e *ValueEncoder) AppendElement(buf *pool.ByteBuffer, parent, key string, v any, depth int) error {
	path := errs.JoinPath(parent, key)
	if err := e.cfg.Keys.Check(path, key); err != nil {
		return err
	}

	return e.appendElement(buf, path, key, v, depth)
}

// AppendDocument appends doc as a complete length-prefixed document. Fields
// are written in doc's iteration order; no field is moved.
func (e *ValueEncoder) AppendDocument(buf *pool.ByteBuffer, path string, doc document.Document, depth int) error {
	if depth > e.cfg.MaxDepth {
		return errs.NewEncodeError(errs.ErrMaxDepthExceeded, path, "depth %d exceeds %d", depth, e.cfg.MaxDepth)
	}

	start := buf.Reserve(4)
	if doc != nil {
		err := doc.Range(func(_ int, key string, v any) error {
			return e.AppendElement(buf, path, key, v, depth)
		})
		if err != nil {
			return withPath(err, path)
		}
	}

	return e.closeDocument(buf, path, start)
}

// CheckSize fails with ErrDocumentTooLarge once the buffer exceeds MaxSize.
func (e *ValueEncoder) CheckSize(buf *pool.ByteBuffer, path string) error {
	if e.cfg.MaxSize > 0 && buf.Len() > e.cfg.MaxSize {
		return errs.NewEncodeError(errs.ErrDocumentTooLarge, path,
			"%d bytes written, limit is %d", buf.Len(), e.cfg.MaxSize)
	}

	return nil
}

// FinishDocument writes the terminating NUL of a document started at start
// and patches its length prefix.
func (e *ValueEncoder) FinishDocument(buf *pool.ByteBuffer, start int) error {
	return e.closeDocument(buf, "", start)
}

// appendElement writes an element whose name was already validated or is
// generated, as array indexes are.
func (e *ValueEncoder) appendElement(buf *pool.ByteBuffer, path, key string, v any, depth int) error {
	val, err := e.Resolve(path, v)
	if err != nil {
		return err
	}

	buf.AppendByte(byte(val.Type()))
	buf.AppendString(key)
	buf.AppendByte(0)

	if err := e.appendPayload(buf, path, val, depth); err != nil {
		return err
	}

	return e.CheckSize(buf, path)
}

func (e *ValueEncoder) appendPayload(buf *pool.ByteBuffer, path string, v value.Value, depth int) error {
	switch x := v.(type) {
	case value.Double:
		buf.B = e.engine.AppendUint64(buf.B, math.Float64bits(float64(x)))
	case value.String:
		return e.appendString(buf, path, string(x))
	case value.Embedded:
		return e.AppendDocument(buf, path, x.Doc, depth+1)
	case value.Array:
		return e.appendArray(buf, path, x, depth+1)
	case value.Binary:
		return e.appendBinary(buf, path, x)
	case value.ObjectID:
		buf.B = append(buf.B, x[:]...)
	case value.Boolean:
		if x {
			buf.AppendByte(1)
		} else {
			buf.AppendByte(0)
		}
	case value.DateTime:
		buf.B = endian.AppendInt64(e.engine, buf.B, int64(x))
	case value.Null, value.MinKey, value.MaxKey:
		// tag only
	case value.Regex:
		return e.appendRegex(buf, path, x)
	case value.JavaScript:
		return e.appendString(buf, path, string(x))
	case value.CodeWithScope:
		return e.appendCodeWithScope(buf, path, x, depth+1)
	case value.Int32:
		buf.B = endian.AppendInt32(e.engine, buf.B, int32(x))
	case value.Timestamp:
		buf.B = e.engine.AppendUint32(buf.B, x.I)
		buf.B = e.engine.AppendUint32(buf.B, x.T)
	case value.Int64:
		buf.B = endian.AppendInt64(e.engine, buf.B, int64(x))
	case value.Decimal128:
		buf.B = e.engine.AppendUint64(buf.B, x.Low)
		buf.B = e.engine.AppendUint64(buf.B, x.High)
	default:
		return errs.NewEncodeError(errs.ErrUnsupportedValueType, path, "value type %T", v)
	}

	return nil
}

func (e *ValueEncoder) appendString(buf *pool.ByteBuffer, path, s string) error {
	if !utf8.ValidString(s) {
		return errs.NewEncodeError(errs.ErrInvalidUTF8String, path, "%q", s)
	}
	if err := e.checkLength(path, len(s)+1); err != nil {
		return err
	}

	buf.Grow(4 + len(s) + 1)
	buf.B = endian.AppendInt32(e.engine, buf.B, int32(len(s)+1)) //nolint:gosec
	buf.AppendString(s)
	buf.AppendByte(0)

	return nil
}

func (e *ValueEncoder) appendBinary(buf *pool.ByteBuffer, path string, b value.Binary) error {
	n := len(b.Data)
	if b.Subtype == format.SubtypeBinaryOld {
		n += 4
	}
	if err := e.checkLength(path, n); err != nil {
		return err
	}

	buf.Grow(4 + 1 + n)
	buf.B = endian.AppendInt32(e.engine, buf.B, int32(n)) //nolint:gosec
	buf.AppendByte(byte(b.Subtype))
	if b.Subtype == format.SubtypeBinaryOld {
		buf.B = endian.AppendInt32(e.engine, buf.B, int32(len(b.Data))) //nolint:gosec
	}
	buf.B = append(buf.B, b.Data...)

	return nil
}

func (e *ValueEncoder) appendRegex(buf *pool.ByteBuffer, path string, re value.Regex) error {
	if err := checkRegexPattern(path, re.Pattern); err != nil {
		return err
	}
	opts, err := NormalizeRegexOptions(path, re.Options)
	if err != nil {
		return err
	}

	buf.AppendString(re.Pattern)
	buf.AppendByte(0)
	buf.AppendString(opts)
	buf.AppendByte(0)

	return nil
}

func (e *ValueEncoder) appendArray(buf *pool.ByteBuffer, path string, arr value.Array, depth int) error {
	if depth > e.cfg.MaxDepth {
		return errs.NewEncodeError(errs.ErrMaxDepthExceeded, path, "depth %d exceeds %d", depth, e.cfg.MaxDepth)
	}

	start := buf.Reserve(4)
	for i, elem := range arr {
		key := strconv.Itoa(i)
		if err := e.appendElement(buf, errs.JoinPath(path, key), key, elem, depth); err != nil {
			return err
		}
	}

	return e.closeDocument(buf, path, start)
}

func (e *ValueEncoder) appendCodeWithScope(buf *pool.ByteBuffer, path string, c value.CodeWithScope, depth int) error {
	start := buf.Reserve(4)
	if err := e.appendString(buf, path, c.Code); err != nil {
		return err
	}
	if err := e.AppendDocument(buf, path, c.Scope, depth); err != nil {
		return err
	}

	return e.patchLength(buf, path, start)
}

func (e *ValueEncoder) closeDocument(buf *pool.ByteBuffer, path string, start int) error {
	buf.AppendByte(0)
	if err := e.CheckSize(buf, path); err != nil {
		return err
	}

	return e.patchLength(buf, path, start)
}

func (e *ValueEncoder) patchLength(buf *pool.ByteBuffer, path string, start int) error {
	n := buf.Len() - start
	if err := e.checkLength(path, n); err != nil {
		return err
	}
	endian.PutInt32(e.engine, buf.B[start:], int32(n)) //nolint:gosec

	return nil
}

func (e *ValueEncoder) checkLength(path string, n int) error {
	if n > math.MaxInt32 {
		return errs.NewEncodeError(errs.ErrDocumentTooLarge, path, "length %d overflows int32", n)
	}

	return nil
}

func withPath(err error, path string) error {
	var encErr *errs.EncodeError
	if errors.As(err, &encErr) && encErr.Path == "" && path != "" {
		cp := *encErr
		cp.Path = path

		return &cp
	}

	return err
}
