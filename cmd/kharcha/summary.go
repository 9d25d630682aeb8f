package main

import (
	"github.com/spf13/cobra"

	"github.com/itissulav/Kharcha/internal/application/usecase/dashboard"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

func summaryCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the totals and category breakdown of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.injector.Summary.Execute(cmd.Context(), dashboard.GetMonthSummaryInput{Period: period})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ToMonthSummaryResponse(summary))
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "month as YYYY-MM (default current month)")
	return cmd
}
