// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Post inserts a ledger row and applies its signed amount to the account balance.
func (r *transactionRepository) Post(ctx context.Context, transaction *entity.Transaction) (*entity.PostResult, error) {
	var balance int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReferences(tx, transaction.AccountID, transaction.CategoryID); err != nil {
			return err
		}

		transactionModel := model.TransactionFromEntity(transaction)
		if err := tx.Create(transactionModel).Error; err != nil {
			return txnStorageError("failed to insert transaction", err)
		}
		transaction.CreatedAt = transactionModel.CreatedAt

		var err error
		balance, err = applyBalance(tx, transaction.AccountID, int64(transaction.SignedAmount()), transaction.UpdatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &entity.PostResult{
		Transaction: transaction,
		Balance:     entity.Money(balance),
	}, nil
}

// Edit reverses the stored row's effect, applies the edited row's effect and saves it.
func (r *transactionRepository) Edit(ctx context.Context, transaction *entity.Transaction) (*entity.EditResult, error) {
	result := &entity.EditResult{Transaction: transaction}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := findTransaction(tx, transaction.ID)
		if err != nil {
			return err
		}
		if err := ensureReferences(tx, transaction.AccountID, transaction.CategoryID); err != nil {
			return err
		}

		previous := stored.ToEntity()
		previousBalance, err := applyBalance(tx, previous.AccountID, -int64(previous.SignedAmount()), transaction.UpdatedAt)
		if err != nil {
			return err
		}
		balance, err := applyBalance(tx, transaction.AccountID, int64(transaction.SignedAmount()), transaction.UpdatedAt)
		if err != nil {
			return err
		}

		transactionModel := model.TransactionFromEntity(transaction)
		if err := tx.Save(transactionModel).Error; err != nil {
			return txnStorageError("failed to save transaction", err)
		}
		transaction.CreatedAt = transactionModel.CreatedAt

		result.Balance = entity.Money(balance)
		result.PreviousAccountID = previous.AccountID
		if previous.AccountID != transaction.AccountID {
			pb := entity.Money(previousBalance)
			result.PreviousAccountBalance = &pb
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Remove reverses the row's balance effect and deletes it.
func (r *transactionRepository) Remove(ctx context.Context, id uuid.UUID, at time.Time) (*entity.RemoveResult, error) {
	result := &entity.RemoveResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := findTransaction(tx, id)
		if err != nil {
			return err
		}

		previous := stored.ToEntity()
		balance, err := applyBalance(tx, previous.AccountID, -int64(previous.SignedAmount()), at)
		if err != nil {
			return err
		}

		if err := tx.Where("id = ?", id).Delete(&model.TransactionModel{}).Error; err != nil {
			return txnStorageError("failed to delete transaction", err)
		}

		result.AccountID = previous.AccountID
		result.Balance = entity.Money(balance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transactionModel, err := findTransaction(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions with their categories, newest first.
// From and To are applied at calendar-day granularity.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.TransactionWithCategory, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Preload("Category")

	if filter.AccountID != nil {
		query = query.Where("transactions.account_id = ?", *filter.AccountID)
	}
	if filter.CategoryName != "" {
		query = query.
			Joins("JOIN categories ON categories.id = transactions.category_id").
			Where("LOWER(categories.name) = ?", strings.ToLower(filter.CategoryName))
	}
	if filter.Type != nil {
		query = query.Where("transactions.type = ?", string(*filter.Type))
	}
	if filter.From != nil {
		query = query.Where("transactions.occurred_on >= ?", model.DayKey(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("transactions.occurred_on < ?", model.DayKey(*filter.To))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var transactionModels []model.TransactionModel
	result := query.
		Order("transactions.created_at DESC, transactions.id DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, txnStorageError("failed to list transactions", result.Error)
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithCategory()
	}
	return transactions, nil
}

// FindRecurringTemplates retrieves every row with is_recurring set, oldest first.
func (r *transactionRepository) FindRecurringTemplates(ctx context.Context) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("is_recurring = ?", true).
		Order("created_at ASC, id ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, txnStorageError("failed to load recurring templates", result.Error)
	}

	templates := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		templates[i] = transactionModels[i].ToEntity()
	}
	return templates, nil
}

// HasOccurrence reports whether day already holds a row generated from the
// template or matching its account, category, type and amount.
func (r *transactionRepository) HasOccurrence(ctx context.Context, template *entity.Transaction, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("occurred_on = ?", model.DayKey(day)).
		Where(
			"(template_id = ? OR (account_id = ? AND category_id = ? AND type = ? AND amount = ?))",
			template.ID, template.AccountID, template.CategoryID, string(template.Type), int64(template.Amount),
		).
		Count(&count).Error
	if err != nil {
		return false, txnStorageError("failed to check occurrence", err)
	}
	return count > 0, nil
}

// UpdateNextOccurrence persists a template cursor, stamping the row with at.
func (r *transactionRepository) UpdateNextOccurrence(ctx context.Context, templateID uuid.UUID, next, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", templateID).
		UpdateColumns(map[string]any{
			"next_occurrence": entity.NormalizeDate(next),
			"updated_at":      at.UTC(),
		})
	if result.Error != nil {
		return txnStorageError("failed to persist recurrence cursor", result.Error)
	}
	if result.RowsAffected == 0 {
		return transactionNotFound()
	}
	return nil
}

// findTransaction loads one row using db, which may be a transaction handle.
func findTransaction(db *gorm.DB, id uuid.UUID) (*model.TransactionModel, error) {
	var transactionModel model.TransactionModel
	result := db.Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, transactionNotFound()
		}
		return nil, txnStorageError("failed to load transaction", result.Error)
	}
	return &transactionModel, nil
}

// ensureReferences fails with a reference error when the account or category is missing.
func ensureReferences(tx *gorm.DB, accountID, categoryID uuid.UUID) error {
	var count int64
	if err := tx.Model(&model.AccountModel{}).Where("id = ?", accountID).Count(&count).Error; err != nil {
		return txnStorageError("failed to check account", err)
	}
	if count == 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeUnknownAccount,
			"account does not exist",
			domainerror.ErrUnknownAccount,
		)
	}

	if err := tx.Model(&model.CategoryModel{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return txnStorageError("failed to check category", err)
	}
	if count == 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeUnknownCategory,
			"category does not exist",
			domainerror.ErrUnknownCategory,
		)
	}
	return nil
}

// applyBalance adds delta to the account balance, stamps the account with at
// and returns the new balance.
func applyBalance(tx *gorm.DB, accountID uuid.UUID, delta int64, at time.Time) (int64, error) {
	result := tx.Model(&model.AccountModel{}).
		Where("id = ?", accountID).
		UpdateColumns(map[string]any{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": at.UTC(),
		})
	if result.Error != nil {
		return 0, txnStorageError("failed to update account balance", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, domainerror.NewTransactionError(
			domainerror.ErrCodeUnknownAccount,
			"account does not exist",
			domainerror.ErrUnknownAccount,
		)
	}

	var account model.AccountModel
	if err := tx.Select("balance").Where("id = ?", accountID).First(&account).Error; err != nil {
		return 0, txnStorageError("failed to read account balance", err)
	}
	return account.Balance, nil
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

func txnStorageError(message string, err error) error {
	return domainerror.NewTransactionError(domainerror.ErrCodeTransactionStorage, message, err)
}
