package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/docwire/compress"
	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/internal/pool"
	"github.com/arloliu/docwire/internal/yamldoc"
	"github.com/arloliu/docwire/outbox"
	"github.com/arloliu/docwire/writer"
)

type encodeFlags struct {
	out            string
	compressor     string
	stage          bool
	maxSize        int
	allowOperators bool
}

func newEncodeCmd(g *globalFlags) *cobra.Command {
	f := &encodeFlags{}

	cmd := &cobra.Command{
		Use:   "encode [pattern...]",
		Short: "Encode YAML or JSON documents into BSON",
		Long: `Encode reads every document from the files matching the given patterns
(doublestar globs such as 'data/**/*.yaml'), or from stdin when none is given,
and writes the encoded documents back to back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, g, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&f.compressor, "compress", "", "compress the output (noop, snappy, zlib, zstd, lz4)")
	cmd.Flags().BoolVar(&f.stage, "stage", false, "also stage each document in the outbox")
	cmd.Flags().IntVar(&f.maxSize, "max-size", 0, "maximum document size in bytes")
	cmd.Flags().BoolVar(&f.allowOperators, "allow-operators", false, "accept $-prefixed field names")

	return cmd
}

func runEncode(cmd *cobra.Command, g *globalFlags, f *encodeFlags, patterns []string) error {
	ctx := cmd.Context()

	opts := g.cfg.EncoderOptions()
	if f.maxSize > 0 {
		opts = append(opts, writer.WithMaxSize(f.maxSize))
	}
	if f.allowOperators {
		opts = append(opts, writer.WithKeyValidation(false))
	}
	enc, err := writer.NewDocumentEncoder(opts...)
	if err != nil {
		return err
	}

	docs, err := readDocuments(cmd.InOrStdin(), patterns)
	if err != nil {
		return err
	}

	encoded, err := enc.EncodeMany(ctx, docs)
	if err != nil {
		return err
	}

	batch := pool.GetBatchBuffer()
	defer pool.PutBatchBuffer(batch)

	for _, d := range encoded {
		g.log.WithFields(logrus.Fields{
			"id":        d.ID(),
			"generated": d.Generated(),
			"size":      d.Len(),
			"checksum":  fmt.Sprintf("%016x", d.Checksum()),
		}).Debug("document encoded")
		if _, err := d.WriteTo(batch); err != nil {
			return err
		}
	}

	compressorName := f.compressor
	if compressorName == "" {
		compressorName = g.cfg.Compressor
	}
	id, ok := format.ParseCompressor(compressorName)
	if !ok {
		return fmt.Errorf("unknown compressor %q", compressorName)
	}

	payload, stats, err := compress.CompressWithStats(id, batch.Bytes())
	if err != nil {
		return err
	}
	g.log.WithFields(logrus.Fields{
		"documents":  len(encoded),
		"bytes":      stats.OriginalSize,
		"compressor": id,
		"compressed": stats.CompressedSize,
	}).Info("encoded")

	if err := writeOutput(cmd.OutOrStdout(), f.out, payload); err != nil {
		return err
	}

	if f.stage {
		store, err := outbox.Open(g.cfg.OutboxDir,
			outbox.WithLogger(g.log.WithField("component", "outbox")),
			outbox.WithCompressor(g.cfg.CompressorID()),
		)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.PutMany(ctx, encoded); err != nil {
			return err
		}
		g.log.WithField("count", len(encoded)).Info("documents staged")
	}

	return nil
}

func readDocuments(stdin io.Reader, patterns []string) ([]document.Document, error) {
	if len(patterns) == 0 {
		ds, err := yamldoc.Decode(stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}

		return toDocuments(nil, ds), nil
	}

	var out []document.Document
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}

		for _, path := range matches {
			ds, err := decodeFile(path)
			if err != nil {
				return nil, err
			}
			out = toDocuments(out, ds)
		}
	}

	return out, nil
}

func decodeFile(path string) ([]document.D, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ds, err := yamldoc.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

func toDocuments(dst []document.Document, ds []document.D) []document.Document {
	for _, d := range ds {
		dst = append(dst, d)
	}

	return dst
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644) //nolint:gosec
}
