package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jbweber/homelab/pokereview/internal/datastore"
	"github.com/jbweber/homelab/pokereview/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a catalogue fixture into an empty database",
		Long: "Load a YAML catalogue fixture into the database. Without --file the\n" +
			"built-in starter catalogue is used. A database that already has data\n" +
			"is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := loadFixture(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ds, err := datastore.Open(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer ds.Close()

			res, err := seed.Apply(ctx, ds, fixture)
			if errors.Is(err, seed.ErrNotEmpty) {
				a.log.Warn().Str("db", a.cfg.DBPath).Msg("database already has data, nothing seeded")
				fmt.Fprintln(cmd.OutOrStdout(), "database already has data, nothing seeded")
				return nil
			}
			if err != nil {
				return fmt.Errorf("seed failed after %+v: %w", res, err)
			}

			a.log.Info().
				Int("countries", res.Countries).
				Int("categories", res.Categories).
				Int("owners", res.Owners).
				Int("reviewers", res.Reviewers).
				Int("pokemon", res.Pokemon).
				Int("reviews", res.Reviews).
				Msg("seed complete")
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d pokemon and %d reviews\n", res.Pokemon, res.Reviews)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture to load instead of the built-in catalogue")
	return cmd
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()
	return seed.Load(f)
}
