// Package metrics exposes ledger counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

const namespace = "kharcha"

// Prometheus implements adapter.LedgerMetrics on a dedicated registry.
type Prometheus struct {
	registry           *prometheus.Registry
	transactionsPosted *prometheus.CounterVec
	catchUpRuns        *prometheus.CounterVec
	catchUpOccurrences *prometheus.CounterVec
	catchUpDuration    prometheus.Histogram
	backfills          *prometheus.CounterVec
}

// NewPrometheus creates and registers the ledger collectors.
func NewPrometheus() *Prometheus {
	m := &Prometheus{
		registry: prometheus.NewRegistry(),
		transactionsPosted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_posted_total",
				Help:      "Transactions posted, partitioned by type and source.",
			},
			[]string{"type", "source"},
		),
		catchUpRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recurrence_runs_total",
				Help:      "Recurrence catch-up runs, partitioned by outcome.",
			},
			[]string{"outcome"},
		),
		catchUpOccurrences: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recurrence_occurrences_total",
				Help:      "Due occurrences handled by catch-up runs, partitioned by result.",
			},
			[]string{"result"},
		),
		catchUpDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recurrence_run_duration_seconds",
				Help:      "Duration of recurrence catch-up runs.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		backfills: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recurrence_backfills_total",
				Help:      "Backfill markers processed, partitioned by resulting status.",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.transactionsPosted,
		m.catchUpRuns,
		m.catchUpOccurrences,
		m.catchUpDuration,
		m.backfills,
	)
	return m
}

// TransactionPosted counts a committed post.
func (m *Prometheus) TransactionPosted(txType entity.TransactionType, source string) {
	m.transactionsPosted.WithLabelValues(string(txType), source).Inc()
}

// CatchUpFinished records a catch-up run.
func (m *Prometheus) CatchUpFinished(summary entity.CatchUpSummary, elapsed time.Duration) {
	outcome := "completed"
	if summary.Skipped {
		outcome = "skipped"
	}
	m.catchUpRuns.WithLabelValues(outcome).Inc()
	m.catchUpOccurrences.WithLabelValues("posted").Add(float64(summary.Posted))
	m.catchUpOccurrences.WithLabelValues("already_present").Add(float64(summary.AlreadyPresent))
	m.catchUpOccurrences.WithLabelValues("failed").Add(float64(summary.Failed))
	m.catchUpDuration.Observe(elapsed.Seconds())
}

// BackfillProcessed counts a backfill marker reaching status.
func (m *Prometheus) BackfillProcessed(status entity.BackfillStatus) {
	m.backfills.WithLabelValues(string(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Prometheus) Registry() *prometheus.Registry {
	return m.registry
}
