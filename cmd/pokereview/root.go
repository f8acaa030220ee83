package main

import (
	"fmt"

	"github.com/jbweber/homelab/pokereview/internal/config"
	"github.com/jbweber/homelab/pokereview/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what PersistentPreRunE resolved to the subcommands
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCommand() *cobra.Command {
	var (
		dbPath    string
		logLevel  string
		logFormat string
	)
	a := &app{}

	root := &cobra.Command{
		Use:          "pokereview",
		Short:        "Pokemon review catalogue service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("db") {
				cfg.DBPath = dbPath
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}

			a.cfg = cfg
			a.log = log
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (env POKEREVIEW_DB_PATH)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace|debug|info|warn|error (env POKEREVIEW_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "json|pretty (env POKEREVIEW_LOG_FORMAT)")

	root.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newSeedCommand(a),
	)
	return root
}
