package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/qsenc/internal/config"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "qsenc",
		Short: "Flatten structured documents into query strings",
		Long: `qsenc flattens JSON or YAML documents into a single percent-encoded
query string. Arrays become repeated keys, true booleans become bare flags,
false booleans and nulls are omitted, and nested objects contribute only their
own field names.

Settings are read from --config, $QSENC_CONFIG or ./qsenc.yaml, then
QSENC_* environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newEncodeCmd(f), newSnakeCmd())
	return cmd
}

// load resolves configuration and builds the logger shared by subcommands.
func (f *rootFlags) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(config.DeterminePath(f.configPath))
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.Log, f.verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
