package outbox

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/arloliu/docwire/endian"
	"github.com/arloliu/docwire/format"
)

const checksumSize = 8

var errShortValue = errors.New("outbox: stored value too short")

// Record is a staged document.
type Record struct {
	// Key is the encoded identifier: type byte then payload.
	Key []byte
	// Data is the encoded document.
	Data []byte
	// Compressor is the compressor the record was stored with.
	Compressor format.CompressorID
	// Checksum is the xxHash64 of Data.
	Checksum uint64
}

// ID returns the identifier of the record.
func (r Record) ID() bson.RawValue {
	if len(r.Key) == 0 {
		return bson.RawValue{}
	}

	return bson.RawValue{Type: bsontype.Type(r.Key[0]), Value: r.Key[1:]}
}

// String returns the identifier in extended JSON form.
func (r Record) String() string {
	return fmt.Sprintf("%s (%d bytes)", r.ID().String(), len(r.Data))
}

// value layout: checksum (8 bytes LE) followed by the possibly compressed
// document.
func encodeValue(sum uint64, payload []byte) []byte {
	le := endian.GetLittleEndianEngine()
	out := make([]byte, 0, checksumSize+len(payload))
	out = le.AppendUint64(out, sum)

	return append(out, payload...)
}

func decodeValue(val []byte) (uint64, []byte, error) {
	if len(val) < checksumSize {
		return 0, nil, errShortValue
	}

	return endian.GetLittleEndianEngine().Uint64(val), val[checksumSize:], nil
}
