package events

import (
	"context"
	"log/slog"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// LogPublisher writes ledger events to the structured log. It is used when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher logging through logger, or the default
// logger when nil.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the event at info level.
func (p *LogPublisher) Publish(ctx context.Context, event entity.LedgerEvent) error {
	attrs := []any{
		"event_id", event.ID,
		"type", event.Type,
	}
	if event.TransactionID != nil {
		attrs = append(attrs, "transaction_id", *event.TransactionID)
	}
	if event.AccountID != nil {
		attrs = append(attrs, "account_id", *event.AccountID, "balance", event.Balance)
	}
	for k, v := range event.Attributes {
		attrs = append(attrs, k, v)
	}

	p.logger.InfoContext(ctx, "Ledger event", attrs...)
	return nil
}
