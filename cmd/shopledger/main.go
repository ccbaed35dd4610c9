package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/shop_ledger_app/internal/platform/config"
	"github.com/spf13/cobra"
)

// @title Shop Ledger API
// @version 1.0
// @description Inventory, invoicing and customer ledger backend for a small shop.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCmd(logger).ExecuteContext(context.Background()); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "shopledger",
		Short:         "Shop ledger backend: products, invoices, payments and customer balances",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig()
			return err
		},
	}

	// Subcommands read cfg lazily; it is only set once PersistentPreRunE has run.
	getCfg := func() *config.Config { return cfg }
	root.AddCommand(
		newServeCmd(logger, getCfg),
		newMigrateCmd(logger, getCfg),
		newRecomputeCmd(logger, getCfg),
		newBackupCmd(logger, getCfg),
	)
	return root
}
