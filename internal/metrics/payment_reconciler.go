package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconcilerFetchPendingTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "payment_reconciler",
		Name:      "fetch_pending_total",
		Help:      "Count of attempts to fetch pending orders.",
	}, []string{"status"})

	reconcilerFetchPendingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmmarket",
		Subsystem: "payment_reconciler",
		Name:      "fetch_pending_duration_seconds",
		Help:      "Duration of fetching pending orders.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	reconcilerProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "payment_reconciler",
		Name:      "process_batch_total",
		Help:      "Count of processed batches.",
	}, []string{"status"})

	reconcilerProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmmarket",
		Subsystem: "payment_reconciler",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of pending orders.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	reconcilerProcessBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "farmmarket",
		Subsystem: "payment_reconciler",
		Name:      "process_batch_size",
		Help:      "Number of pending orders processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	})

	reconcilerOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "payment_reconciler",
		Name:      "outcomes_total",
		Help:      "Count of reconciled orders by resulting transaction status.",
	}, []string{"outcome"})
)

// PaymentReconciler tracks metrics for the payment reconciliation loop.
type PaymentReconciler struct{}

// NewPaymentReconciler constructs a PaymentReconciler collector.
func NewPaymentReconciler() *PaymentReconciler {
	return &PaymentReconciler{}
}

// ObserveFetchPending records a fetch-pending attempt outcome and duration.
func (m PaymentReconciler) ObserveFetchPending(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	reconcilerFetchPendingTotal.WithLabelValues(status).Inc()
	reconcilerFetchPendingDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records processing of a batch of orders.
func (m PaymentReconciler) ObserveProcessBatch(err error, orders int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	reconcilerProcessBatchTotal.WithLabelValues(status).Inc()
	reconcilerProcessBatchDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	reconcilerProcessBatchSize.Observe(float64(orders))
}

// ObserveOutcome counts a single reconciled order.
func (m PaymentReconciler) ObserveOutcome(outcome string) {
	reconcilerOutcomesTotal.WithLabelValues(outcome).Inc()
}
