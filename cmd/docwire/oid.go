package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/docwire/objectid"
)

func newOIDCmd(_ *globalFlags) *cobra.Command {
	var count int
	var withTime bool

	cmd := &cobra.Command{
		Use:   "oid",
		Short: "Print new ObjectIDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			gen := objectid.Default()
			for i := 0; i < count; i++ {
				id := gen.Generate()
				if withTime {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", id.Hex(), id.Timestamp().UTC().Format("2006-01-02T15:04:05Z"))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), id.Hex())
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers")
	cmd.Flags().BoolVarP(&withTime, "time", "t", false, "also print the embedded timestamp")

	return cmd
}
