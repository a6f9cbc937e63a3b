package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"portfolio/internal/app"
	"portfolio/internal/database/migration"
	dbpostgres "portfolio/internal/database/postgres"

	"github.com/spf13/cobra"
)

func (c *cli) newMigrateCmd() *cobra.Command {
	var (
		status bool
		dir    string
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errors.New("DB_HOST is not set")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			db, err := dbpostgres.Connect(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			runner := app.MigrationRunner(cfg, c.logger())
			if dir != "" {
				runner = migration.Runner{Dir: dir, Logger: c.logger()}
			}

			out := cmd.OutOrStdout()
			if status {
				rows, err := runner.Status(ctx, db.SQLDB())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED")
				for _, r := range rows {
					fmt.Fprintf(tw, "%d\t%s\t%t\n", r.Version, r.Name, r.Applied)
				}
				return tw.Flush()
			}

			n, err := runner.Run(ctx, db.SQLDB())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "applied %d migration(s)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "List migrations and whether they are applied")
	cmd.Flags().StringVar(&dir, "dir", "", "Read migrations from this directory instead of MIGRATIONS_DIR")
	return cmd
}
