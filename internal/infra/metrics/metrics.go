package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SagaMetrics counts orchestration outcomes. The post-payment inconsistency
// counter is the paging signal for money-moved-but-state-didn't incidents.
type SagaMetrics struct {
	SeatsLockedTotal    prometheus.Counter
	PurchasesTotal      *prometheus.CounterVec
	TimeoutsTotal       *prometheus.CounterVec
	CancellationsTotal  *prometheus.CounterVec
	RefundsIssuedTotal  prometheus.Counter
	TradesTotal         *prometheus.CounterVec
	CompensationsTotal  *prometheus.CounterVec
	PostPaymentGapTotal prometheus.Counter
	SagaDuration        *prometheus.HistogramVec
}

func NewSagaMetrics() *SagaMetrics {
	return &SagaMetrics{
		SeatsLockedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orchestrator_seats_locked_total",
			Help: "Seats successfully transitioned available -> reserved",
		}),
		PurchasesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orchestrator_purchases_total",
			Help: "Purchase sagas by outcome (confirmed, declined, replayed, failed)",
		}, []string{"outcome"}),
		TimeoutsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orchestrator_timeouts_total",
			Help: "Timeout compensations by outcome (clean, partial, noop)",
		}, []string{"outcome"}),
		CancellationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orchestrator_cancellations_total",
			Help: "Cancellation sagas by outcome (refunded, no_refund, rejected, failed)",
		}, []string{"outcome"}),
		RefundsIssuedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orchestrator_refunds_issued_total",
			Help: "Refunds issued against the payment service",
		}),
		TradesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orchestrator_trades_total",
			Help: "Trade proposals by outcome (proposed, accepted, declined, cancelled, conflict)",
		}, []string{"outcome"}),
		CompensationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orchestrator_compensations_total",
			Help: "Compensating actions run, by saga and step",
		}, []string{"saga", "step"}),
		PostPaymentGapTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orchestrator_post_payment_inconsistency_total",
			Help: "Charges that succeeded while resource confirmation exhausted retries",
		}),
		SagaDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orchestrator_saga_duration_seconds",
			Help:    "Wall time per saga run",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"saga"}),
	}
}
