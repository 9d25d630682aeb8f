// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// EventPublisher delivers committed ledger changes to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.LedgerEvent) error
}
