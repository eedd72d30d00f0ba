// Package objectid implements the 12-byte document identifier and its
// process-wide generator.
//
// A generated ObjectID is laid out as
//
//	[0:4]  seconds since the Unix epoch, big-endian
//	[4:9]  per-process discriminator, fixed at process start
//	[9:12] counter, big-endian, seeded randomly and incremented per call
//
// Identifiers produced by one process are unique as long as fewer than 2^24
// are generated within the same second. The scheme is not cryptographic.
package objectid

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/arloliu/docwire/endian"
	"github.com/arloliu/docwire/errs"
)

// Size is the encoded size of an ObjectID.
const Size = 12

// ObjectID is a 12-byte document identifier.
type ObjectID [Size]byte

// NilObjectID is the zero ObjectID.
var NilObjectID ObjectID

// New returns a fresh ObjectID from the process-wide generator.
func New() ObjectID {
	return defaultGenerator.Generate()
}

// Default returns the process-wide generator used by New.
func Default() *Generator {
	return defaultGenerator
}

// NewFromTimestamp returns an ObjectID whose timestamp is t and whose other
// bytes are zero. It is meant for range boundaries, not for identifying documents.
func NewFromTimestamp(t time.Time) ObjectID {
	var id ObjectID
	endian.GetBigEndianEngine().PutUint32(id[0:4], uint32(t.Unix())) //nolint:gosec

	return id
}

// FromHex parses a 24 character hex string.
func FromHex(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != 2*Size {
		return id, fmt.Errorf("%w: %q has length %d", errs.ErrInvalidObjectIDHex, s, len(s))
	}

	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return NilObjectID, fmt.Errorf("%w: %q: %w", errs.ErrInvalidObjectIDHex, s, err)
	}

	return id, nil
}

// Timestamp returns the creation time embedded in the identifier.
func (id ObjectID) Timestamp() time.Time {
	secs := endian.GetBigEndianEngine().Uint32(id[0:4])
	return time.Unix(int64(secs), 0).UTC()
}

// Counter returns the 3-byte counter field.
func (id ObjectID) Counter() uint32 {
	return uint32(id[9])<<16 | uint32(id[10])<<8 | uint32(id[11])
}

// Hex returns the lowercase hex form of the identifier.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ObjectID) String() string {
	return fmt.Sprintf("ObjectID(%q)", id.Hex())
}

// IsZero reports whether id is NilObjectID.
func (id ObjectID) IsZero() bool {
	return id == NilObjectID
}

// Compare orders identifiers bytewise, which is creation order for
// identifiers from the same process.
func (id ObjectID) Compare(other ObjectID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id ObjectID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ObjectID) UnmarshalText(b []byte) error {
	parsed, err := FromHex(string(b))
	if err != nil {
		return err
	}
	*id = parsed

	return nil
}
