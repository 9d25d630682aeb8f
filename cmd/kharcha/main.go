// Package main is the Kharcha command line tool for operating a ledger
// without the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/itissulav/Kharcha/config"
)

var (
	logLevel string
	rootCmd  = &cobra.Command{
		Use:   "kharcha",
		Short: "Personal finance ledger maintenance",
		Long: `kharcha operates the ledger database directly: it runs the recurrence
catch-up, retries missed occurrences, prints month summaries and manages the schema.

Configuration is read from the environment and an optional .env file.`,
		PersistentPreRunE: setupLogging,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL")

	rootCmd.AddCommand(catchUpCmd())
	rootCmd.AddCommand(backfillCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(resetCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	level := config.Load().LogLevel
	if logLevel != "" {
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
	}

	// Logs go to stderr so command output stays parseable.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}
