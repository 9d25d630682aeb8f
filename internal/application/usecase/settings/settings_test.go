package settings_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/application/usecase/settings"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
	"github.com/itissulav/Kharcha/internal/testutil"
)

func newUseCase(t *testing.T) (*settings.SettingsUseCase, *testutil.Ledger) {
	t.Helper()
	db := testutil.NewDatabase(t)
	defaults := entity.DefaultBudgetDefaults()
	uc := settings.NewSettingsUseCase(
		persistence.NewSettingsRepository(db, defaults),
		persistence.NewLedgerMaintenance(db, defaults),
		testutil.NewClock(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)),
	)
	return uc, testutil.NewLedger(t, db)
}

func TestSettingsUseCase_Update(t *testing.T) {
	pct := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	negativeBudget := entity.Money(-1)

	tests := []struct {
		name         string
		input        settings.UpdateSettingsInput
		expectedCode string
	}{
		{
			name:  "spending percentage",
			input: settings.UpdateSettingsInput{SpendingPercentage: pct(80)},
		},
		{
			name:  "zero percent is allowed",
			input: settings.UpdateSettingsInput{LifestyleLimit: pct(0)},
		},
		{
			name:         "percentage above 100",
			input:        settings.UpdateSettingsInput{SpendingPercentage: pct(101)},
			expectedCode: string(domainerror.ErrCodeInvalidPercentage),
		},
		{
			name:         "negative lifestyle limit",
			input:        settings.UpdateSettingsInput{LifestyleLimit: pct(-5)},
			expectedCode: string(domainerror.ErrCodeInvalidPercentage),
		},
		{
			name:         "negative monthly budget",
			input:        settings.UpdateSettingsInput{MonthlyBudget: &negativeBudget},
			expectedCode: string(domainerror.ErrCodeInvalidMonthlyBudget),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase(t)

			got, err := uc.Update(context.Background(), tt.input)
			if tt.expectedCode != "" {
				if code := domainerror.CodeOf(err); code != tt.expectedCode {
					t.Errorf("Update() code = %q, want %q", code, tt.expectedCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Update() unexpected error: %v", err)
			}

			stored, err := uc.Get(context.Background())
			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if !stored.SpendingPercentage.Equal(got.SpendingPercentage) {
				t.Errorf("stored spending percentage = %s, want %s", stored.SpendingPercentage, got.SpendingPercentage)
			}
			if !stored.LifestyleLimit.Equal(got.LifestyleLimit) {
				t.Errorf("stored lifestyle limit = %s, want %s", stored.LifestyleLimit, got.LifestyleLimit)
			}
		})
	}
}

func TestSettingsUseCase_DismissMonthlyAlert(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	if err := uc.DismissMonthlyAlert(ctx); err != nil {
		t.Fatalf("DismissMonthlyAlert() unexpected error: %v", err)
	}

	stored, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if stored.ShowMonthlyLimitAlert {
		t.Error("monthly alert still enabled after dismissal")
	}
}

func TestSettingsUseCase_Reset(t *testing.T) {
	uc, ledger := newUseCase(t)
	ctx := context.Background()
	ledger.Account("Cash", testutil.Money(10))

	err := uc.Reset(ctx, false)
	if code := domainerror.CodeOf(err); code != string(domainerror.ErrCodeResetNotConfirmed) {
		t.Fatalf("Reset(false) code = %q, want %q", code, domainerror.ErrCodeResetNotConfirmed)
	}

	accounts, _ := ledger.Accounts.FindAll(ctx)
	if len(accounts) != 1 {
		t.Fatalf("unconfirmed reset removed accounts: got %d", len(accounts))
	}

	if err := uc.Reset(ctx, true); err != nil {
		t.Fatalf("Reset(true) unexpected error: %v", err)
	}

	accounts, _ = ledger.Accounts.FindAll(ctx)
	if len(accounts) != 0 {
		t.Errorf("accounts after reset = %d, want 0", len(accounts))
	}
}
