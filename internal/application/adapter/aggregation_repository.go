// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// CategoryTotalsQuery selects per-category sums over a window.
type CategoryTotalsQuery struct {
	Type  entity.TransactionType
	Range entity.DateRange

	// IncludeEmpty returns every category, with zero totals for those without activity.
	IncludeEmpty bool

	// ExcludeName drops the category with this name, compared case-insensitively.
	ExcludeName string

	// Limit caps the number of rows, highest totals first. Zero means no limit.
	Limit int
}

// AggregationRepository computes read-only sums over the ledger.
type AggregationRepository interface {
	// SumByType returns the total of amounts of txType within r.
	SumByType(ctx context.Context, txType entity.TransactionType, r entity.DateRange) (entity.Money, error)

	// SumByCategory returns the total of amounts of txType for one category within r.
	SumByCategory(ctx context.Context, categoryID uuid.UUID, txType entity.TransactionType, r entity.DateRange) (entity.Money, error)

	// CategoryTotals returns per-category totals ordered by total descending, then name.
	CategoryTotals(ctx context.Context, query CategoryTotalsQuery) ([]entity.CategoryTotal, error)

	// PeriodTotals returns totals grouped by day or month in ascending period order.
	// A nil range covers the whole ledger.
	PeriodTotals(ctx context.Context, txType entity.TransactionType, granularity entity.Granularity, r *entity.DateRange) ([]entity.PeriodTotal, error)
}
