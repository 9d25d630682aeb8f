// Package persistence implements repository interfaces for database operations.
package persistence

import "strings"

// isUniqueViolation recognises unique constraint failures from drivers that do
// not translate them to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
