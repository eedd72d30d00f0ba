// Package writer prepares documents for write operations: it resolves the
// identifier, writes it as the first field and encodes the rest of the
// document under the configured limits.
package writer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/encoding"
	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/internal/hash"
	"github.com/arloliu/docwire/internal/keyset"
	"github.com/arloliu/docwire/internal/options"
	"github.com/arloliu/docwire/internal/pool"
	"github.com/arloliu/docwire/value"
)

// DocumentEncoder encodes top-level documents.
//
// A DocumentEncoder is immutable after construction and safe for concurrent
// use. The only shared state it touches is the ObjectID generator counter.
type DocumentEncoder struct {
	*EncoderConfig

	values *encoding.ValueEncoder
	opts   []EncoderOption
}

// NewDocumentEncoder creates a DocumentEncoder.
//
// Returns an error wrapping errs.ErrInvalidOption if an option is invalid.
func NewDocumentEncoder(opts ...EncoderOption) (*DocumentEncoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &DocumentEncoder{
		EncoderConfig: config,
		values:        encoding.NewValueEncoder(config.valueConfig()),
		opts:          opts,
	}, nil
}

// Encode encodes doc with the identifier field first.
//
// If doc has a top-level identifier field its value is used unchanged,
// whatever its type, and the field is not written a second time. Repeated
// top-level identifier pairs in ordered or flat documents are dropped, or
// rejected with errs.ErrDuplicateFieldName when the duplicate check is on.
// Otherwise a
// new ObjectID is generated. doc is never modified; use document.WithID with
// EncodedDocument.ID to keep a generated identifier across encodes.
//
// On failure no bytes are returned and the error is an *errs.EncodeError.
func (e *DocumentEncoder) Encode(doc document.Document) (*EncodedDocument, error) {
	if doc == nil {
		return nil, errs.NewEncodeError(errs.ErrUnsupportedValueType, "", "nil document")
	}

	id, idPos, found := doc.Lookup(e.forcedFirstKey)
	if !found {
		id = value.ObjectID(e.generator.Generate())
	}

	buf := pool.GetDocumentBuffer()
	defer pool.PutDocumentBuffer(buf)

	start := buf.Reserve(4)
	if err := e.values.AppendElement(buf, "", e.forcedFirstKey, id, 0); err != nil {
		return nil, err
	}

	var seen *keyset.Tracker
	if e.checkDuplicates {
		seen = keyset.NewTracker(doc.Len())
		seen.Track(e.forcedFirstKey)
	}

	err := doc.Range(func(pos int, key string, v any) error {
		if found && pos == idPos {
			return nil
		}
		// later identifier pairs are dropped; the first one already won
		if key == e.forcedFirstKey {
			if seen != nil {
				return errs.NewEncodeError(errs.ErrDuplicateFieldName, key, "")
			}

			return nil
		}
		if seen != nil && seen.Track(key) {
			return errs.NewEncodeError(errs.ErrDuplicateFieldName, key, "")
		}

		return e.values.AppendElement(buf, "", key, v, 0)
	})
	if err != nil {
		return nil, err
	}

	if err := e.values.FinishDocument(buf, start); err != nil {
		return nil, err
	}

	data := buf.Clone()

	return &EncodedDocument{
		data: data,
		meta: Metadata{
			ID:        id,
			Generated: !found,
			Size:      len(data),
			Checksum:  hash.Sum(data),
		},
	}, nil
}

// EncodeWith encodes doc with extra options layered over the encoder's own.
// It is meant for one-off encodings, e.g. update-operator documents that
// must bypass field name validation:
//
//	enc.EncodeWith(update, writer.WithKeyValidation(false))
func (e *DocumentEncoder) EncodeWith(doc document.Document, opts ...EncoderOption) (*EncodedDocument, error) {
	if len(opts) == 0 {
		return e.Encode(doc)
	}

	derived, err := NewDocumentEncoder(options.Concat(e.opts, opts...)...)
	if err != nil {
		return nil, err
	}

	return derived.Encode(doc)
}

// EncodeMany encodes docs in parallel and returns the results in input order.
//
// It stops at the first failure and returns that error annotated with the
// document index. Cancelling ctx stops documents that have not started yet.
func (e *DocumentEncoder) EncodeMany(ctx context.Context, docs []document.Document) ([]*EncodedDocument, error) {
	out := make([]*EncodedDocument, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			encoded, err := e.Encode(doc)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			out[i] = encoded

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
