package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// UpdateAccountRequest represents the request body for account update.
type UpdateAccountRequest struct {
	Name    *string          `json:"name,omitempty"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// TotalBalanceResponse represents the sum of all account balances.
type TotalBalanceResponse struct {
	TotalBalance decimal.Decimal `json:"total_balance"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID.String(),
		Name:           account.Name,
		Balance:        account.Balance.Decimal(),
		OpeningBalance: account.OpeningBalance.Decimal(),
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}

// ToAccountListResponse converts accounts to an AccountListResponse.
func ToAccountListResponse(accounts []*entity.Account) AccountListResponse {
	response := AccountListResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
	for _, account := range accounts {
		response.Accounts = append(response.Accounts, ToAccountResponse(account))
	}
	return response
}
