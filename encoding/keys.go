package encoding

import (
	"strings"
	"unicode/utf8"

	"github.com/arloliu/docwire/errs"
)

// KeyPolicy controls which field names are accepted.
//
// Names containing a NUL byte or invalid UTF-8 are always rejected because
// they cannot be represented on the wire. The remaining rules apply only when
// Validate is set; update-operator documents are encoded with Validate off.
type KeyPolicy struct {
	Validate bool
	// ForbiddenPrefixes lists prefixes a field name may not start with.
	ForbiddenPrefixes []string
	// ForbiddenChars lists characters a field name may not contain anywhere.
	ForbiddenChars string
}

// DefaultKeyPolicy rejects names starting with the operator prefix "$".
func DefaultKeyPolicy() KeyPolicy {
	return KeyPolicy{
		Validate:          true,
		ForbiddenPrefixes: []string{"$"},
	}
}

// Check returns an *errs.EncodeError if key is not an acceptable field name.
// path is the dotted path of the field, including key.
func (p KeyPolicy) Check(path, key string) error {
	if i := strings.IndexByte(key, 0); i >= 0 {
		return errs.NewEncodeError(errs.ErrInvalidFieldName, path, "NUL byte at offset %d", i)
	}
	if !utf8.ValidString(key) {
		return errs.NewEncodeError(errs.ErrInvalidUTF8String, path, "field name %q", key)
	}

	if !p.Validate {
		return nil
	}

	for _, prefix := range p.ForbiddenPrefixes {
		if prefix != "" && strings.HasPrefix(key, prefix) {
			return errs.NewEncodeError(errs.ErrInvalidFieldName, path, "name starts with %q", prefix)
		}
	}
	if i := strings.IndexAny(key, p.ForbiddenChars); i >= 0 {
		return errs.NewEncodeError(errs.ErrInvalidFieldName, path, "name contains %q", key[i])
	}

	return nil
}
