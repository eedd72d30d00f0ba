package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/docwire/outbox"
)

func newOutboxCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect or drain staged documents",
	}

	cmd.AddCommand(newOutboxListCmd(g), newOutboxDrainCmd(g))

	return cmd
}

func openOutbox(g *globalFlags) (*outbox.Store, error) {
	return outbox.Open(g.cfg.OutboxDir,
		outbox.WithLogger(g.log.WithField("component", "outbox")),
		outbox.WithCompressor(g.cfg.CompressorID()),
	)
}

func newOutboxListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staged documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openOutbox(g)
			if err != nil {
				return err
			}
			defer store.Close()

			n := 0
			err = store.Iterate(cmd.Context(), func(rec outbox.Record) error {
				n++
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s %016x\n", rec.String(), rec.Compressor, rec.Checksum)

				return err
			})
			if err != nil {
				return err
			}
			g.log.WithField("count", n).Debug("outbox listed")

			return nil
		},
	}
}

func newOutboxDrainCmd(g *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Write staged documents out and remove them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openOutbox(g)
			if err != nil {
				return err
			}
			defer store.Close()

			w := cmd.OutOrStdout()
			if out != "-" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			n, err := store.Drain(cmd.Context(), func(rec outbox.Record) error {
				_, err := w.Write(rec.Data)
				return err
			})
			g.log.WithField("count", n).Info("drained")

			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")

	return cmd
}
