// Package model defines database models for persistence layer.
package model

// All returns every model in dependency order, parents first.
func All() []any {
	return []any{
		&AccountModel{},
		&CategoryModel{},
		&TransactionModel{},
		&UserSettingsModel{},
		&OccurrenceBackfillModel{},
	}
}
