// Package metrics exposes Prometheus collectors for ledger operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// LedgerOperations counts ledger operations by operation name and outcome.
var LedgerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ledger",
	Name:      "operations_total",
	Help:      "Ledger operations by operation and outcome.",
}, []string{"operation", "outcome"})

// AllocatedAmount is the total amount (minor units) moved from donations to leads.
var AllocatedAmount = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ledger",
	Name:      "allocated_amount_total",
	Help:      "Total amount allocated from donations to leads, in minor currency units.",
})

// AllocationConflicts counts optimistic-concurrency retries in the allocation engine.
var AllocationConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ledger",
	Name:      "allocation_conflicts_total",
	Help:      "Allocation attempts retried because the donation changed concurrently.",
})

// ReconciliationDiscrepancies is the number of leads found out of sync by the last reconciliation run.
var ReconciliationDiscrepancies = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ledger",
	Name:      "reconciliation_discrepancies",
	Help:      "Leads whose helpGiven disagreed with the allocation ledger on the last run.",
})

// SideEffectFailures counts best-effort audit and notification failures.
var SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ledger",
	Name:      "side_effect_failures_total",
	Help:      "Audit log and notification failures that did not affect the ledger mutation.",
}, []string{"kind"})

// HTTPRequestDuration observes API latency by route pattern.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "ledger",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "API request latency by method, chi route pattern and status code.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// Observe records the outcome of an operation. Rejected covers validation errors.
func Observe(operation string, err error, rejected bool) {
	outcome := OutcomeSuccess
	switch {
	case err != nil && rejected:
		outcome = OutcomeRejected
	case err != nil:
		outcome = OutcomeError
	}
	LedgerOperations.WithLabelValues(operation, outcome).Inc()
}
