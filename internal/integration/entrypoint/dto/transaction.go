package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/itissulav/Kharcha/internal/application/usecase/transaction"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for posting a transaction.
type CreateTransactionRequest struct {
	AccountID          string          `json:"account_id"`
	CategoryID         string          `json:"category_id"`
	Type               string          `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Note               string          `json:"note,omitempty"`
	CreatedAt          *time.Time      `json:"created_at,omitempty"`
	IsRecurring        bool            `json:"is_recurring,omitempty"`
	RecurrencePattern  string          `json:"recurrence_pattern,omitempty"`
	RecurrenceInterval int             `json:"recurrence_interval,omitempty"`
}

// UpdateTransactionRequest represents the request body for editing a transaction.
// Absent fields keep their stored value.
type UpdateTransactionRequest struct {
	AccountID          *string          `json:"account_id,omitempty"`
	CategoryID         *string          `json:"category_id,omitempty"`
	Type               *string          `json:"type,omitempty"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
	Note               *string          `json:"note,omitempty"`
	CreatedAt          *time.Time       `json:"created_at,omitempty"`
	IsRecurring        *bool            `json:"is_recurring,omitempty"`
	RecurrencePattern  *string          `json:"recurrence_pattern,omitempty"`
	RecurrenceInterval *int             `json:"recurrence_interval,omitempty"`
}

// Recurrence returns the recurrence settings of a create request, or nil.
func (r CreateTransactionRequest) Recurrence() *transaction.RecurrenceInput {
	if !r.IsRecurring {
		return nil
	}
	return &transaction.RecurrenceInput{
		Pattern:  entity.RecurrencePattern(r.RecurrencePattern),
		Interval: r.RecurrenceInterval,
	}
}

// Recurrence returns the recurrence settings of an update request, or nil
// when neither pattern nor interval was sent.
func (r UpdateTransactionRequest) Recurrence() *transaction.RecurrenceInput {
	if r.RecurrencePattern == nil && r.RecurrenceInterval == nil {
		return nil
	}
	input := &transaction.RecurrenceInput{}
	if r.RecurrencePattern != nil {
		input.Pattern = entity.RecurrencePattern(*r.RecurrencePattern)
	}
	if r.RecurrenceInterval != nil {
		input.Interval = *r.RecurrenceInterval
	}
	return input
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                 string            `json:"id"`
	AccountID          string            `json:"account_id"`
	CategoryID         string            `json:"category_id"`
	Type               string            `json:"type"`
	Amount             decimal.Decimal   `json:"amount"`
	Note               string            `json:"note"`
	CreatedAt          time.Time         `json:"created_at"`
	IsRecurring        bool              `json:"is_recurring"`
	RecurrencePattern  *string           `json:"recurrence_pattern"`
	RecurrenceInterval *int              `json:"recurrence_interval"`
	NextOccurrence     *string           `json:"next_occurrence"`
	TemplateID         *string           `json:"template_id,omitempty"`
	Category           *CategoryResponse `json:"category,omitempty"`
}

// PostTransactionResponse is returned after posting a transaction.
type PostTransactionResponse struct {
	Transaction TransactionResponse    `json:"transaction"`
	Balance     decimal.Decimal        `json:"balance"`
	Limit       *LimitDecisionResponse `json:"limit,omitempty"`
}

// EditTransactionResponse is returned after editing a transaction.
type EditTransactionResponse struct {
	Transaction            TransactionResponse `json:"transaction"`
	Balance                decimal.Decimal     `json:"balance"`
	PreviousAccountID      *string             `json:"previous_account_id,omitempty"`
	PreviousAccountBalance *decimal.Decimal    `json:"previous_account_balance,omitempty"`
}

// DeleteTransactionResponse is returned after deleting a transaction.
type DeleteTransactionResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// TransactionGroupResponse holds transactions sharing one display date.
type TransactionGroupResponse struct {
	Label        string                `json:"label"`
	Date         string                `json:"date"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse      `json:"transactions"`
	Groups       []TransactionGroupResponse `json:"groups,omitempty"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:                 tx.ID.String(),
		AccountID:          tx.AccountID.String(),
		CategoryID:         tx.CategoryID.String(),
		Type:               string(tx.Type),
		Amount:             tx.Amount.Decimal(),
		Note:               tx.Note,
		CreatedAt:          tx.CreatedAt,
		IsRecurring:        tx.IsRecurring,
		RecurrenceInterval: tx.RecurrenceInterval,
		NextOccurrence:     formatDay(tx.NextOccurrence),
	}
	if tx.RecurrencePattern != nil {
		pattern := string(*tx.RecurrencePattern)
		response.RecurrencePattern = &pattern
	}
	if tx.TemplateID != nil {
		templateID := tx.TemplateID.String()
		response.TemplateID = &templateID
	}
	return response
}

// ToTransactionWithCategoryResponse converts a transaction with its category.
func ToTransactionWithCategoryResponse(item *entity.TransactionWithCategory) TransactionResponse {
	response := ToTransactionResponse(item.Transaction)
	if item.Category != nil {
		category := ToCategoryResponse(item.Category)
		response.Category = &category
	}
	return response
}

// ToTransactionListResponse converts a list result to its response.
func ToTransactionListResponse(items []*entity.TransactionWithCategory, groups []*entity.TransactionGroup) TransactionListResponse {
	response := TransactionListResponse{Transactions: toTransactionResponses(items)}
	for _, group := range groups {
		response.Groups = append(response.Groups, TransactionGroupResponse{
			Label:        group.Label,
			Date:         group.Date.Format(DateLayout),
			Transactions: toTransactionResponses(group.Transactions),
		})
	}
	return response
}

// ToEditTransactionResponse converts an edit result to its response.
func ToEditTransactionResponse(output *transaction.EditTransactionOutput) EditTransactionResponse {
	response := EditTransactionResponse{
		Transaction:            ToTransactionResponse(output.Transaction),
		Balance:                output.Balance.Decimal(),
		PreviousAccountBalance: moneyPtr(output.PreviousAccountBalance),
	}
	if output.PreviousAccountBalance != nil {
		previous := output.PreviousAccountID.String()
		response.PreviousAccountID = &previous
	}
	return response
}

func toTransactionResponses(items []*entity.TransactionWithCategory) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToTransactionWithCategoryResponse(item))
	}
	return responses
}
