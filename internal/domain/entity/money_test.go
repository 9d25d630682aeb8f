package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		want    Money
		wantErr bool
	}{
		{"12.50", 1250, false},
		{"0.01", 1, false},
		{"1000", 100000, false},
		{"-3.2", -320, false},
		{"1.005", 0, true},
		{"abc", 0, true},
		{"92233720368547758.07", math.MaxInt64, false},
		{"-92233720368547758.08", math.MinInt64, false},
		{"92233720368547758.08", 0, true},
		{"-92233720368547758.09", 0, true},
		{"184467440737095516.17", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMoney) {
					t.Errorf("expected ErrInvalidMoney, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMoneyFromDecimal_Reasons(t *testing.T) {
	if _, err := MoneyFromDecimal(decimal.RequireFromString("1e17")); !errors.Is(err, ErrMoneyOutOfRange) {
		t.Errorf("expected ErrMoneyOutOfRange, got %v", err)
	}
	if _, err := MoneyFromDecimal(decimal.RequireFromString("0.001")); !errors.Is(err, ErrMoneyPrecision) {
		t.Errorf("expected ErrMoneyPrecision, got %v", err)
	}
}

func TestMoney_String(t *testing.T) {
	if got := Money(123456).String(); got != "1234.56" {
		t.Errorf("expected 1234.56, got %s", got)
	}
	if got := Money(-5).String(); got != "-0.05" {
		t.Errorf("expected -0.05, got %s", got)
	}
	if !Money(1050).Decimal().Equal(decimal.RequireFromString("10.5")) {
		t.Error("expected decimal 10.5")
	}
}

func TestAccount_SetBalanceKeepsLedgerEquation(t *testing.T) {
	account := NewAccount("Wallet", 1000)
	ledgerSum := Money(-200) // one debit of 2.00 already posted
	account.Balance += ledgerSum

	account.SetBalance(5000)

	if account.OpeningBalance+ledgerSum != account.Balance {
		t.Errorf("opening %d + ledger %d != balance %d", account.OpeningBalance, ledgerSum, account.Balance)
	}
}
