// Package main is the entry point for the Kharcha API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/itissulav/Kharcha/config"
	"github.com/itissulav/Kharcha/internal/infra/db"
	"github.com/itissulav/Kharcha/internal/infra/dependency"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	if err := run(cfg); err != nil {
		slog.Error("Kharcha API stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Kharcha API stopped cleanly")
}

// run serves the API and, when enabled, the recurrence worker until
// SIGINT/SIGTERM or until either of them fails.
func run(cfg *config.Config) error {
	slog.Info("Starting Kharcha API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
	)

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close ledger database", "error", err)
		}
	}()

	if err := persistence.Migrate(database.DB(), cfg.Budget.BudgetDefaults()); err != nil {
		return fmt.Errorf("migrate ledger: %w", err)
	}
	slog.Info("Ledger schema ready")

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{})
	if err != nil {
		return fmt.Errorf("wire dependencies: %w", err)
	}
	defer injector.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      injector.Router.Setup(cfg.Server.Environment),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	if cfg.Recurrence.WorkerEnabled {
		group.Go(func() error {
			injector.Worker.Start(groupCtx)
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		slog.Info("Shutting down", "grace", shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	return group.Wait()
}
