// Package testutil provides shared fixtures for tests that need a real database.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
)

// NewDatabase opens a private in-memory SQLite database with the ledger schema
// migrated and the settings row seeded. It is closed when the test ends.
func NewDatabase(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := persistence.Migrate(db, entity.DefaultBudgetDefaults()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// Clock is a settable adapter.Clock.
type Clock struct {
	Time time.Time
}

// NewClock returns a clock fixed at t.
func NewClock(t time.Time) *Clock {
	return &Clock{Time: t.UTC()}
}

// Now returns the fixed time.
func (c *Clock) Now() time.Time {
	return c.Time
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.Time = c.Time.Add(d)
}

// Ledger seeds accounts and categories for tests.
type Ledger struct {
	t          testing.TB
	Accounts   adapter.AccountRepository
	Categories adapter.CategoryRepository
}

// NewLedger returns a seeding helper backed by db.
func NewLedger(t testing.TB, db *gorm.DB) *Ledger {
	return &Ledger{
		t:          t,
		Accounts:   persistence.NewAccountRepository(db),
		Categories: persistence.NewCategoryRepository(db),
	}
}

// Account creates an account with the given opening balance.
func (l *Ledger) Account(name string, openingBalance entity.Money) *entity.Account {
	l.t.Helper()
	account := entity.NewAccount(name, openingBalance)
	if err := l.Accounts.Create(context.Background(), account); err != nil {
		l.t.Fatalf("create account %q: %v", name, err)
	}
	return account
}

// Category creates an essential category with an optional limit.
func (l *Ledger) Category(name string, limit *entity.Money) *entity.Category {
	l.t.Helper()
	category := entity.NewCategory(name, entity.DefaultCategoryIcon, entity.DefaultCategoryIconSet, entity.SpendingTypeEssential, limit)
	if err := l.Categories.Create(context.Background(), category); err != nil {
		l.t.Fatalf("create category %q: %v", name, err)
	}
	return category
}

// Money converts major units to Money.
func Money(major int64) entity.Money {
	return entity.Money(major * 100)
}
