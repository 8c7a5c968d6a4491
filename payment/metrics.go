package payment

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// countStatusTransitionsTotal counts completed status transitions broken down by from and to status
	countStatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_status_transitions_total",
			Help: "count of completed payment status transitions ( since last start ) broken down by from and to status",
		},
		[]string{"from", "to"},
	)

	// countConcurrencyConflictsTotal counts conditional writes lost to a concurrent update
	countConcurrencyConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_concurrency_conflicts_total",
			Help: "count of payment updates rejected due to row version mismatch ( since last start ) broken down by operation",
		},
		[]string{"operation"},
	)

	// countPaymentsCreatedTotal counts payments created broken down by method type
	countPaymentsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_created_total",
			Help: "count of payments created ( since last start ) broken down by method type",
		},
		[]string{"method_type"},
	)
)

func init() {

	// register metrics with prometheus
	err := prometheus.Register(countStatusTransitionsTotal)
	if ae, ok := err.(prometheus.AlreadyRegisteredError); ok {
		countStatusTransitionsTotal = ae.ExistingCollector.(*prometheus.CounterVec)
	}

	err = prometheus.Register(countConcurrencyConflictsTotal)
	if ae, ok := err.(prometheus.AlreadyRegisteredError); ok {
		countConcurrencyConflictsTotal = ae.ExistingCollector.(*prometheus.CounterVec)
	}

	err = prometheus.Register(countPaymentsCreatedTotal)
	if ae, ok := err.(prometheus.AlreadyRegisteredError); ok {
		countPaymentsCreatedTotal = ae.ExistingCollector.(*prometheus.CounterVec)
	}
}
