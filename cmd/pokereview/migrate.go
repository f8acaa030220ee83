package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/jbweber/homelab/pokereview/internal/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	var (
		down   bool
		status bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if down && status {
				return fmt.Errorf("--down and --status are mutually exclusive")
			}

			ctx := cmd.Context()
			db, err := a.cfg.OpenDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			migrator := migrations.NewMigrator(db)
			for _, m := range migrations.All() {
				migrator.AddMigration(m)
			}

			switch {
			case status:
				applied, err := migrator.Applied(ctx)
				if err != nil {
					return fmt.Errorf("failed to read migration status: %w", err)
				}
				done := make(map[int64]string, len(applied))
				for _, m := range applied {
					done[m.Version] = m.AppliedAt.Format("2006-01-02 15:04:05")
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED")
				for _, m := range migrator.GetMigrations() {
					at, ok := done[m.Version]
					if !ok {
						at = "pending"
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\n", m.Version, m.Name, at)
				}
				return tw.Flush()

			case down:
				reverted, err := migrator.RollbackLast(ctx)
				if err != nil {
					return err
				}
				a.log.Info().Int64("version", reverted.Version).Str("name", reverted.Name).Msg("rolled back migration")

			default:
				n, err := migrator.RunMigrations(ctx)
				if err != nil {
					return err
				}
				version, err := migrator.GetCurrentVersion(ctx)
				if err != nil {
					return err
				}
				a.log.Info().Int("applied", n).Int64("version", version).Msg("migrations complete")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")
	cmd.Flags().BoolVar(&status, "status", false, "list migrations and whether they are applied")
	return cmd
}
