package main

import (
	"github.com/spf13/cobra"

	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

func catchUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catch-up",
		Short: "Post every recurring occurrence due up to today",
		Long: `Expand each recurring template into ledger rows up to today and advance its cursor.
Occurrences already present are skipped, so running it twice posts nothing new.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.injector.CatchUp.Execute(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ToCatchUpResponse(summary))
		},
	}
}

func backfillCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Retry occurrences whose posting failed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if batchSize <= 0 {
				batchSize = a.cfg.Recurrence.BackfillBatchSize
			}

			summary, err := a.injector.Backfills.Execute(cmd.Context(), batchSize)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ToBackfillResponse(summary))
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch", 0, "maximum markers to process (default RECURRENCE_BACKFILL_BATCH_SIZE)")
	return cmd
}
