// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	if err := r.db.WithContext(ctx).Create(accountModel).Error; err != nil {
		return accountStorageError("failed to create account", err)
	}
	return nil
}

// FindByID retrieves an account by its ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, accountStorageError("failed to load account", result.Error)
	}
	return accountModel.ToEntity(), nil
}

// FindAll retrieves all accounts ordered by name.
func (r *accountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	result := r.db.WithContext(ctx).Order("name ASC, created_at ASC").Find(&accountModels)
	if result.Error != nil {
		return nil, accountStorageError("failed to list accounts", result.Error)
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToEntity()
	}
	return accounts, nil
}

// Update saves name, balance and opening balance of an account.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	account.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"name":            account.Name,
			"balance":         int64(account.Balance),
			"opening_balance": int64(account.OpeningBalance),
			"updated_at":      account.UpdatedAt,
		})
	if result.Error != nil {
		return accountStorageError("failed to update account", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}
	return nil
}

// Delete removes an account that no transaction references.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.TransactionModel{}).Where("account_id = ?", id).Count(&count).Error; err != nil {
			return accountStorageError("failed to count account transactions", err)
		}
		if count > 0 {
			return domainerror.NewAccountError(
				domainerror.ErrCodeAccountHasTransactions,
				"account still has transactions",
				domainerror.ErrAccountHasTransactions,
			)
		}

		result := tx.Where("id = ?", id).Delete(&model.AccountModel{})
		if result.Error != nil {
			return accountStorageError("failed to delete account", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil
	})
}

// TotalBalance returns the sum of all account balances.
func (r *accountRepository) TotalBalance(ctx context.Context) (entity.Money, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Select("CAST(COALESCE(SUM(balance), 0) AS BIGINT)").
		Scan(&total).Error
	if err != nil {
		return 0, accountStorageError("failed to sum balances", err)
	}
	return entity.Money(total), nil
}

func accountStorageError(message string, err error) error {
	return domainerror.NewAccountError(domainerror.ErrCodeAccountStorage, message, err)
}
