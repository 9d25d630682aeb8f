package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/itissulav/Kharcha/config"
	"github.com/itissulav/Kharcha/internal/infra/db"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the ledger schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Load()

			database, err := db.NewConnection(&cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := persistence.Migrate(database.DB(), cfg.Budget.BudgetDefaults()); err != nil {
				return err
			}
			slog.Info("Database migrations completed successfully", "driver", cfg.Database.Driver)
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every account, category and transaction",
		Long: `Drop and recreate the ledger tables, then seed the budget settings from
configuration. This cannot be undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("refusing to reset without --yes")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.injector.Settings.Reset(cmd.Context(), true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ledger reset")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the reset")
	return cmd
}
