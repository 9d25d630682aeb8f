// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/persistence/model"
)

// aggregationRepository implements the adapter.AggregationRepository interface.
//
// Windows are matched against occurred_on, the UTC day key of each row, so
// every range boundary must fall on midnight UTC.
type aggregationRepository struct {
	db *gorm.DB
}

// NewAggregationRepository creates a new aggregation repository instance.
func NewAggregationRepository(db *gorm.DB) adapter.AggregationRepository {
	return &aggregationRepository{
		db: db,
	}
}

// SumByType returns the total of amounts of txType within r.
func (r *aggregationRepository) SumByType(ctx context.Context, txType entity.TransactionType, rng entity.DateRange) (entity.Money, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("CAST(COALESCE(SUM(amount), 0) AS BIGINT)").
		Where("type = ?", string(txType)).
		Where("occurred_on >= ? AND occurred_on < ?", model.DayKey(rng.From), model.DayKey(rng.To)).
		Scan(&total).Error
	if err != nil {
		return 0, aggregationError("failed to sum transactions", err)
	}
	return entity.Money(total), nil
}

// SumByCategory returns the total of amounts of txType for one category within r.
func (r *aggregationRepository) SumByCategory(ctx context.Context, categoryID uuid.UUID, txType entity.TransactionType, rng entity.DateRange) (entity.Money, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("CAST(COALESCE(SUM(amount), 0) AS BIGINT)").
		Where("category_id = ? AND type = ?", categoryID, string(txType)).
		Where("occurred_on >= ? AND occurred_on < ?", model.DayKey(rng.From), model.DayKey(rng.To)).
		Scan(&total).Error
	if err != nil {
		return 0, aggregationError("failed to sum category transactions", err)
	}
	return entity.Money(total), nil
}

// categoryTotalRow is the scan target of CategoryTotals.
type categoryTotalRow struct {
	CategoryID    uuid.UUID `gorm:"column:category_id"`
	Name          string    `gorm:"column:name"`
	Icon          string    `gorm:"column:icon"`
	IconSet       string    `gorm:"column:icon_set"`
	SpendingType  string    `gorm:"column:spending_type"`
	CategoryLimit *int64    `gorm:"column:category_limit"`
	Total         int64     `gorm:"column:total"`
}

// CategoryTotals returns per-category totals ordered by total descending, then name.
func (r *aggregationRepository) CategoryTotals(ctx context.Context, query adapter.CategoryTotalsQuery) ([]entity.CategoryTotal, error) {
	join := "JOIN transactions t ON t.category_id = c.id AND t.type = ? AND t.occurred_on >= ? AND t.occurred_on < ?"
	if query.IncludeEmpty {
		join = "LEFT " + join
	}

	q := r.db.WithContext(ctx).
		Table("categories AS c").
		Select(`c.id AS category_id, c.name AS name, c.icon AS icon, c.icon_set AS icon_set,
			c.spending_type AS spending_type, c.category_limit AS category_limit,
			CAST(COALESCE(SUM(t.amount), 0) AS BIGINT) AS total`).
		Joins(join, string(query.Type), model.DayKey(query.Range.From), model.DayKey(query.Range.To))

	if query.ExcludeName != "" {
		q = q.Where("LOWER(c.name) <> LOWER(?)", query.ExcludeName)
	}

	q = q.
		Group("c.id, c.name, c.icon, c.icon_set, c.spending_type, c.category_limit").
		Order("total DESC, c.name ASC")

	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}

	var rows []categoryTotalRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, aggregationError("failed to compute category totals", err)
	}

	totals := make([]entity.CategoryTotal, len(rows))
	for i, row := range rows {
		var limit *entity.Money
		if row.CategoryLimit != nil {
			l := entity.Money(*row.CategoryLimit)
			limit = &l
		}
		totals[i] = entity.CategoryTotal{
			CategoryID:   row.CategoryID,
			Name:         row.Name,
			Icon:         row.Icon,
			IconSet:      row.IconSet,
			SpendingType: entity.SpendingType(row.SpendingType),
			Limit:        limit,
			Total:        entity.Money(row.Total),
		}
	}
	return totals, nil
}

// PeriodTotals returns totals grouped by day or month in ascending period order.
func (r *aggregationRepository) PeriodTotals(
	ctx context.Context,
	txType entity.TransactionType,
	granularity entity.Granularity,
	rng *entity.DateRange,
) ([]entity.PeriodTotal, error) {
	periodExpr := "occurred_on"
	if granularity == entity.GranularityMonth {
		periodExpr = "SUBSTR(occurred_on, 1, 7)"
	}

	q := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select(periodExpr+" AS period, CAST(COALESCE(SUM(amount), 0) AS BIGINT) AS total").
		Where("type = ?", string(txType))
	if rng != nil {
		q = q.Where("occurred_on >= ? AND occurred_on < ?", model.DayKey(rng.From), model.DayKey(rng.To))
	}

	var rows []struct {
		Period string `gorm:"column:period"`
		Total  int64  `gorm:"column:total"`
	}
	if err := q.Group(periodExpr).Order("period ASC").Scan(&rows).Error; err != nil {
		return nil, aggregationError("failed to compute period totals", err)
	}

	totals := make([]entity.PeriodTotal, len(rows))
	for i, row := range rows {
		totals[i] = entity.PeriodTotal{Period: row.Period, Total: entity.Money(row.Total)}
	}
	return totals, nil
}

func aggregationError(message string, err error) error {
	return domainerror.NewDashboardError(domainerror.ErrCodeDashboardInternalError, message, err)
}
