package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

func TestPrometheus_Counters(t *testing.T) {
	m := NewPrometheus()

	m.TransactionPosted(entity.TransactionTypeDebit, "manual")
	m.TransactionPosted(entity.TransactionTypeDebit, "manual")
	m.TransactionPosted(entity.TransactionTypeCredit, "recurrence")
	m.CatchUpFinished(entity.CatchUpSummary{Posted: 5, Failed: 1}, 2*time.Second)
	m.CatchUpFinished(entity.CatchUpSummary{Skipped: true}, 0)
	m.BackfillProcessed(entity.BackfillStatusResolved)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transactionsPosted.WithLabelValues("debit", "manual")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transactionsPosted.WithLabelValues("credit", "recurrence")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catchUpRuns.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catchUpRuns.WithLabelValues("skipped")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.catchUpOccurrences.WithLabelValues("posted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backfills.WithLabelValues("resolved")))
}

func TestPrometheus_Handler(t *testing.T) {
	m := NewPrometheus()
	m.TransactionPosted(entity.TransactionTypeDebit, "manual")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `kharcha_transactions_posted_total{source="manual",type="debit"} 1`))
}
