package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// ledgerNotifier publishes committed ledger changes. Publishing never fails
// the operation that triggered it.
type ledgerNotifier struct {
	publisher adapter.EventPublisher
	metrics   adapter.LedgerMetrics
}

func newLedgerNotifier(publisher adapter.EventPublisher, metrics adapter.LedgerMetrics) *ledgerNotifier {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &ledgerNotifier{publisher: publisher, metrics: metrics}
}

func (n *ledgerNotifier) publish(ctx context.Context, event entity.LedgerEvent) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish ledger event",
			"event_id", event.ID,
			"type", event.Type,
			"error", err,
		)
	}
}

type noopMetrics struct{}

func (noopMetrics) TransactionPosted(entity.TransactionType, string) {}
func (noopMetrics) CatchUpFinished(entity.CatchUpSummary, time.Duration) {}
func (noopMetrics) BackfillProcessed(entity.BackfillStatus) {}
