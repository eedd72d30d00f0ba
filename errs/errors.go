// Package errs defines the error values returned by docwire.
//
// Every encoding failure is reported as an *EncodeError whose Unwrap method
// returns one of the sentinel errors below, so callers can branch with
// errors.Is and still read the offending field path with errors.As.
package errs

import (
	"errors"
	"fmt"
)

// Encoding error kinds.
var (
	ErrInvalidUTF8String    = errors.New("string is not valid UTF-8")
	ErrInvalidFieldName     = errors.New("invalid field name")
	ErrUnsupportedRegexFlag = errors.New("unsupported regular expression flag")
	ErrInvalidRegex         = errors.New("invalid regular expression")
	ErrNumericOverflow      = errors.New("integer overflows signed 64-bit range")
	ErrDocumentTooLarge     = errors.New("document exceeds maximum size")
	ErrUnsupportedValueType = errors.New("unsupported value type")
	ErrDuplicateFieldName   = errors.New("duplicate field name")
	ErrMaxDepthExceeded     = errors.New("maximum nesting depth exceeded")
)

// Non-encoding errors.
var (
	ErrInvalidObjectIDHex = errors.New("invalid ObjectID hex string")
	ErrInvalidOption      = errors.New("invalid option")
	ErrDecodedTooLarge    = errors.New("decompressed payload exceeds size limit")
)

// EncodeError describes a failed encode call.
type EncodeError struct {
	// Kind is one of the sentinel errors of this package.
	Kind error
	// Path is the dotted path of the offending field, e.g. "tags.3.name".
	// It is empty for failures that concern the whole document.
	Path string
	// Detail describes the offending value.
	Detail string
}

// NewEncodeError creates an EncodeError of the given kind.
func NewEncodeError(kind error, path string, format string, args ...any) *EncodeError {
	return &EncodeError{
		Kind:   kind,
		Path:   path,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *EncodeError) Error() string {
	switch {
	case e.Path == "" && e.Detail == "":
		return e.Kind.Error()
	case e.Path == "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Detail == "":
		return fmt.Sprintf("%s: field %q", e.Kind, e.Path)
	default:
		return fmt.Sprintf("%s: field %q: %s", e.Kind, e.Path, e.Detail)
	}
}

// Unwrap returns the error kind.
func (e *EncodeError) Unwrap() error {
	return e.Kind
}

// JoinPath appends a field name to a dotted path.
func JoinPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "." + key
}
