package main

import (
	"context"
	"fmt"
	"time"

	"imc-donations/internal/config"
	"imc-donations/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer config.CloseDatabase()

			return migrate(db)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the bootstrap administrator from ADMIN_* settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer config.CloseDatabase()

			if err := migrate(db); err != nil {
				return err
			}
			return config.NewSeeder(db, cfg.Admin).Run()
		},
	}
}

func reconcileCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check pending payments with Mercado Pago once and apply their state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer config.CloseDatabase()

			deps, err := buildDependencies(cfg, db)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := deps.Cron.SweepPending(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked=%d applied=%d not_found=%d failed=%d\n",
				result.Checked, result.Applied, result.NotFound, result.Failed)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "abort the sweep after this long")
	return cmd
}
