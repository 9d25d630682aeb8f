package transaction

import (
	"time"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

const (
	labelToday     = "Today"
	labelYesterday = "Yesterday"
	labelLayout    = "January 2"
)

// GroupByDate groups transactions under display labels relative to now,
// keeping the input order both across and within groups.
func GroupByDate(transactions []*entity.TransactionWithCategory, now time.Time) []*entity.TransactionGroup {
	today := entity.NormalizeDate(now)
	yesterday := today.AddDate(0, 0, -1)

	groups := make([]*entity.TransactionGroup, 0)
	byLabel := make(map[string]*entity.TransactionGroup)

	for _, txn := range transactions {
		day := entity.NormalizeDate(txn.Transaction.CreatedAt)
		label := dateLabel(day, today, yesterday)

		group, ok := byLabel[label]
		if !ok {
			group = &entity.TransactionGroup{Label: label, Date: day}
			byLabel[label] = group
			groups = append(groups, group)
		}
		group.Transactions = append(group.Transactions, txn)
	}

	return groups
}

func dateLabel(day, today, yesterday time.Time) string {
	switch {
	case day.Equal(today):
		return labelToday
	case day.Equal(yesterday):
		return labelYesterday
	default:
		return day.Format(labelLayout)
	}
}
