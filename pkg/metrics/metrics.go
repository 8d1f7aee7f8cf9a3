// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpensesCreated counts expenses recorded since process start.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartsplit_expenses_created_total",
		Help: "Number of expenses recorded.",
	})

	// PaymentsRecorded counts settlement payments applied since process start.
	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartsplit_settlement_payments_total",
		Help: "Number of settlement payments recorded.",
	})

	// SplitValidationFailures counts split calculations rejected for bad input.
	SplitValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartsplit_split_validation_failures_total",
		Help: "Number of split calculations rejected by validation.",
	})
)
