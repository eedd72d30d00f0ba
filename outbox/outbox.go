// Package outbox stages encoded documents on local disk until they are sent.
//
// Records are keyed by the encoded identifier (type byte followed by the
// identifier payload), so records with ObjectID identifiers iterate in
// creation order. Values may be compressed; the compressor id is kept in the
// badger user meta byte of each entry.
package outbox

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/arloliu/docwire/compress"
	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/internal/hash"
	"github.com/arloliu/docwire/internal/options"
	"github.com/arloliu/docwire/writer"
)

var (
	// ErrNotFound is returned when no record has the requested key.
	ErrNotFound = errors.New("outbox: record not found")
	// ErrChecksumMismatch is returned when a stored record no longer matches
	// the checksum it was staged with.
	ErrChecksumMismatch = errors.New("outbox: checksum mismatch")
)

var recordPrefix = []byte("doc/")

// Store is a badger-backed outbox. It is safe for concurrent use.
type Store struct {
	db         *badger.DB
	log        logrus.FieldLogger
	compressor format.CompressorID
	codec      compress.Codec
}

// Open opens or creates an outbox in dir.
func Open(dir string, opts ...Option) (*Store, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compressor)
	if err != nil {
		return nil, err
	}

	bopts := badger.DefaultOptions(dir).
		WithInMemory(cfg.inMemory).
		WithLogger(badgerLogger{cfg.log}).
		WithSyncWrites(cfg.syncWrites)
	if cfg.inMemory {
		bopts.Dir, bopts.ValueDir = "", ""
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open outbox: %w", err)
	}

	cfg.log.WithFields(logrus.Fields{
		"dir":        dir,
		"compressor": cfg.compressor,
	}).Debug("outbox opened")

	return &Store{db: db, log: cfg.log, compressor: cfg.compressor, codec: codec}, nil
}

// Close closes the outbox.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stages doc. A record with the same identifier is replaced.
func (s *Store) Put(ctx context.Context, doc *writer.EncodedDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := doc.Bytes()
	key, err := KeyOf(data)
	if err != nil {
		return nil, err
	}

	payload, err := s.codec.Compress(data)
	if err != nil {
		return nil, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(storageKey(key), encodeValue(doc.Checksum(), payload)).
			WithMeta(byte(s.compressor))

		return txn.SetEntry(entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stage document: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"key":  fmt.Sprintf("%x", key),
		"size": len(data),
	}).Debug("document staged")

	return key, nil
}

// PutMany stages docs in one write batch.
func (s *Store) PutMany(ctx context.Context, docs []*writer.EncodedDocument) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		data := doc.Bytes()
		key, err := KeyOf(data)
		if err != nil {
			return err
		}
		payload, err := s.codec.Compress(data)
		if err != nil {
			return err
		}

		entry := badger.NewEntry(storageKey(key), encodeValue(doc.Checksum(), payload)).
			WithMeta(byte(s.compressor))
		if err := wb.SetEntry(entry); err != nil {
			return fmt.Errorf("failed to stage document: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("failed to stage documents: %w", err)
	}

	s.log.WithField("count", len(docs)).Debug("documents staged")

	return nil
}

// Get returns the record with the given key.
func (s *Store) Get(ctx context.Context, key []byte) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(storageKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}

			return err
		}

		rec, err = readRecord(item)

		return err
	})

	return rec, err
}

// Delete removes the record with the given key. Deleting a missing key is
// not an error.
func (s *Store) Delete(ctx context.Context, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(storageKey(key))
	})
}

// Iterate calls fn for every record in key order. Iteration stops at the
// first error returned by fn.
func (s *Store) Iterate(ctx context.Context, fn func(Record) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = recordPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			rec, err := readRecord(it.Item())
			if err != nil {
				return err
			}
			if err := fn(rec); err != nil {
				return err
			}
		}

		return nil
	})
}

// List returns all records in key order.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	var out []Record
	err := s.Iterate(ctx, func(rec Record) error {
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Count returns the number of staged records.
func (s *Store) Count(ctx context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = recordPrefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			n++
		}

		return nil
	})

	return n, err
}

// Drain passes every record to fn in key order and removes the records fn
// accepted. If fn fails, the records accepted before it are still removed
// and the error is returned with the number removed.
func (s *Store) Drain(ctx context.Context, fn func(Record) error) (int, error) {
	var accepted [][]byte
	iterErr := s.Iterate(ctx, func(rec Record) error {
		if err := fn(rec); err != nil {
			return err
		}
		accepted = append(accepted, storageKey(rec.Key))

		return nil
	})

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, key := range accepted {
		if err := wb.Delete(key); err != nil {
			return 0, fmt.Errorf("failed to drain outbox: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("failed to drain outbox: %w", err)
	}

	s.log.WithField("count", len(accepted)).Info("outbox drained")

	return len(accepted), iterErr
}

// KeyOf returns the outbox key of an encoded document: the type byte and
// payload of its first element.
func KeyOf(data []byte) ([]byte, error) {
	elem, err := bson.Raw(data).IndexErr(0)
	if err != nil {
		return nil, fmt.Errorf("document has no identifier element: %w", err)
	}

	v := elem.Value()
	key := make([]byte, 0, 1+len(v.Value))
	key = append(key, byte(v.Type))
	key = append(key, v.Value...)

	return key, nil
}

func storageKey(key []byte) []byte {
	out := make([]byte, 0, len(recordPrefix)+len(key))
	out = append(out, recordPrefix...)

	return append(out, key...)
}

func readRecord(item *badger.Item) (Record, error) {
	key := item.KeyCopy(nil)[len(recordPrefix):]
	compressor := format.CompressorID(item.UserMeta())

	codec, err := compress.GetCodec(compressor)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	err = item.Value(func(val []byte) error {
		sum, payload, err := decodeValue(val)
		if err != nil {
			return err
		}

		data, err := codec.Decompress(payload)
		if err != nil {
			return err
		}
		// Decompress may alias val, which is only valid inside this callback.
		data = append([]byte(nil), data...)

		if hash.Sum(data) != sum {
			return fmt.Errorf("%w: key %x", ErrChecksumMismatch, key)
		}

		rec = Record{Key: key, Data: data, Compressor: compressor, Checksum: sum}

		return nil
	})

	return rec, err
}
