// Package docwire prepares application documents for insertion into a
// document database: it resolves or generates the "_id" identifier, writes it
// as the first field and serializes the document into BSON under the
// server's size and field name limits.
//
// # Core Features
//
//   - Three document shapes: M (map), D (ordered), Flat (alternating names and values)
//   - Identifier always written first, generated as an ObjectID when absent
//   - Strict typed values with an explicit coercion policy for plain Go values
//   - Maximum size, nesting depth and field name checks before bytes are returned
//   - Optional message compression (snappy, zlib, zstd)
//
// # Basic Usage
//
//	import "github.com/arloliu/docwire"
//
//	doc := docwire.D{
//	    {Key: "name", Value: value.String("alice")},
//	    {Key: "age", Value: value.Int32(31)},
//	}
//
//	encoded, err := docwire.Encode(doc)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(encoded.ID(), encoded.Len())
//
// Encoding the same document again keeps its identifier only when the
// identifier is put back into the document:
//
//	again, _ := docwire.Encode(docwire.WithID(doc, encoded.ID()))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the writer
// package. For fine-grained control use writer, document and value directly.
package docwire

import (
	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/objectid"
	"github.com/arloliu/docwire/value"
	"github.com/arloliu/docwire/writer"
)

type (
	// M is an unordered document.
	M = document.M
	// D is an ordered document.
	D = document.D
	// E is a field of an ordered document.
	E = document.E
	// Flat is an ordered document stored as alternating names and values.
	Flat = document.Flat
)

var defaultEncoder = mustEncoder()

func mustEncoder() *writer.DocumentEncoder {
	enc, err := writer.NewDocumentEncoder()
	if err != nil {
		panic(err)
	}

	return enc
}

// NewEncoder creates a document encoder with custom options.
//
// Available options:
//   - writer.WithMaxSize(n)
//   - writer.WithKeyValidation(bool), writer.WithForbiddenKeyPrefixes(...), writer.WithForbiddenKeyChars(s)
//   - writer.WithForcedFirstKey(name)
//   - writer.WithGenerator(g)
//   - writer.WithCoercion(value.CoerceNone|CoerceNative|CoerceNativeMinSize)
//   - writer.WithDuplicateKeyCheck(bool)
//   - writer.WithMaxDepth(n)
//
// Example:
//
//	enc, err := docwire.NewEncoder(
//	    writer.WithMaxSize(helloReply.MaxBsonObjectSize),
//	    writer.WithCoercion(value.CoerceNative),
//	)
func NewEncoder(opts ...writer.EncoderOption) (*writer.DocumentEncoder, error) {
	return writer.NewDocumentEncoder(opts...)
}

// Encode encodes doc with the default encoder: 16 MiB limit, "$" prefixed
// field names rejected, strict values.
func Encode(doc document.Document) (*writer.EncodedDocument, error) {
	return defaultEncoder.Encode(doc)
}

// WithID returns a copy of doc whose identifier is id.
func WithID(doc document.Document, id any) document.Document {
	return document.WithID(doc, id)
}

// NewObjectID returns a new identifier from the process-wide generator.
func NewObjectID() value.ObjectID {
	return value.ObjectID(objectid.New())
}
