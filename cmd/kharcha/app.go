package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/itissulav/Kharcha/config"
	"github.com/itissulav/Kharcha/internal/infra/db"
	"github.com/itissulav/Kharcha/internal/infra/dependency"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
)

// app is a migrated database plus the wired use cases.
type app struct {
	cfg      *config.Config
	database *db.Database
	injector *dependency.Injector
}

func openApp() (*app, error) {
	cfg := config.Load()

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := persistence.Migrate(database.DB(), cfg.Budget.BudgetDefaults()); err != nil {
		database.Close()
		return nil, err
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{})
	if err != nil {
		database.Close()
		return nil, err
	}

	return &app{cfg: cfg, database: database, injector: injector}, nil
}

func (a *app) Close() {
	a.injector.Close()
	_ = a.database.Close()
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
