package writer

import (
	"io"

	"github.com/arloliu/docwire/compress"
	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/objectid"
	"github.com/arloliu/docwire/value"
)

// Metadata describes an encoded document.
type Metadata struct {
	// ID is the identifier written as the first field, either the caller's
	// value or a generated value.ObjectID.
	ID any
	// Generated reports whether ID was generated by the encoder.
	Generated bool
	// Size is the encoded length in bytes, equal to the length prefix.
	Size int
	// Checksum is the xxHash64 of the encoded bytes.
	Checksum uint64
}

// EncodedDocument is the result of DocumentEncoder.Encode.
type EncodedDocument struct {
	data []byte
	meta Metadata
}

// Bytes returns a copy of the encoded document.
func (d *EncodedDocument) Bytes() []byte {
	out := make([]byte, len(d.data))
	copy(out, d.data)

	return out
}

// Len returns the encoded length in bytes.
func (d *EncodedDocument) Len() int {
	return len(d.data)
}

// ID returns the identifier written first. Pass it to document.WithID to
// encode the same document again with the same identifier.
func (d *EncodedDocument) ID() any {
	return d.meta.ID
}

// Generated reports whether the identifier was generated by the encoder.
func (d *EncodedDocument) Generated() bool {
	return d.meta.Generated
}

// ObjectID returns the identifier if it is an ObjectID.
func (d *EncodedDocument) ObjectID() (objectid.ObjectID, bool) {
	switch id := d.meta.ID.(type) {
	case value.ObjectID:
		return objectid.ObjectID(id), true
	case objectid.ObjectID:
		return id, true
	default:
		return objectid.NilObjectID, false
	}
}

// Metadata returns the document metadata.
func (d *EncodedDocument) Metadata() Metadata {
	return d.meta
}

// Checksum returns the xxHash64 of the encoded bytes.
func (d *EncodedDocument) Checksum() uint64 {
	return d.meta.Checksum
}

// Compress returns the encoded bytes compressed with the given compressor,
// e.g. for an OP_COMPRESSED message body.
func (d *EncodedDocument) Compress(id format.CompressorID) ([]byte, error) {
	codec, err := compress.GetCodec(id)
	if err != nil {
		return nil, err
	}

	return codec.Compress(d.data)
}

// WriteTo writes the encoded bytes to w.
func (d *EncodedDocument) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.data)

	return int64(n), err
}
