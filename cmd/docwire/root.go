package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/docwire/internal/config"
)

type globalFlags struct {
	configPath string
	verbose    bool
	cfg        *config.Config
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{log: logrus.New()}

	cmd := &cobra.Command{
		Use:   "docwire",
		Short: "Encode documents into BSON with the identifier written first",
		Long: `docwire encodes YAML or JSON documents into BSON the way a driver does
before an insert: the _id field is resolved or generated and written first,
field names are validated and the size limit is enforced.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			g.log.SetOutput(cmd.ErrOrStderr())
			g.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if g.verbose {
				g.log.SetLevel(logrus.DebugLevel)
			}

			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			g.cfg = cfg
			g.log.WithField("config", g.configPath).Debug("configuration loaded")

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", config.DefaultFile, "configuration file")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newEncodeCmd(g),
		newOIDCmd(g),
		newOutboxCmd(g),
	)

	return cmd
}
