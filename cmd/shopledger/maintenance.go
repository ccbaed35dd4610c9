package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shop_ledger_app/internal/platform/config"
	"github.com/spf13/cobra"
)

func newMigrateCmd(logger *slog.Logger, getCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getCfg()
			if cfg.DatabaseURL == "" {
				return errors.New("PGSQL_URL is required to run migrations")
			}
			return migrate(cfg, logger)
		},
	}
}

func newRecomputeCmd(logger *slog.Logger, getCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute-balances",
		Short: "Repair every customer balance from its ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), getCfg(), logger)
			if err != nil {
				return err
			}
			defer a.Close()

			corrections, err := a.services.Ledger.RecomputeAllBalances(cmd.Context())
			if err != nil {
				return err
			}
			changed := 0
			for _, c := range corrections {
				if !c.Changed() {
					continue
				}
				changed++
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", c.CustomerID, c.Previous, c.Corrected)
			}
			logger.Info("Balances recomputed", slog.Int("checked", len(corrections)), slog.Int("corrected", changed))
			return nil
		},
	}
}

func newBackupCmd(logger *slog.Logger, getCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload a JSON snapshot of the store to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), getCfg(), logger)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.services.Backup.Backup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Location)
			return nil
		},
	}
}
