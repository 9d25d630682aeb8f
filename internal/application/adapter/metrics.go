// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"time"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// LedgerMetrics records operational counters for posting and recurrence.
type LedgerMetrics interface {
	// TransactionPosted counts a committed post. Source is "manual" or "recurrence".
	TransactionPosted(txType entity.TransactionType, source string)

	// CatchUpFinished records the outcome and duration of a catch-up run.
	CatchUpFinished(summary entity.CatchUpSummary, elapsed time.Duration)

	// BackfillProcessed counts a backfill marker reaching a status.
	BackfillProcessed(status entity.BackfillStatus)
}
