// Package metrics exposes Prometheus instrumentation for the ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpensesCreated counts successfully persisted split expenses.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_expenses_created_total",
		Help: "Number of split expenses created.",
	})

	// ExpensesDeleted counts cascade deletions.
	ExpensesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_expenses_deleted_total",
		Help: "Number of split expenses deleted.",
	})

	// DebtsCreated counts obligations persisted alongside expenses.
	DebtsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_debts_created_total",
		Help: "Number of debt obligations created.",
	})

	// NotificationsSent and NotificationsFailed track the outcome of
	// per-debt notification dispatch. Failures are non-fatal and only
	// show up here and in logs.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_notifications_sent_total",
		Help: "Number of debt notifications delivered.",
	})
	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_notifications_failed_total",
		Help: "Number of debt notifications that failed to deliver.",
	})

	// BillScans counts OCR extractions by outcome.
	BillScans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitledger_bill_scans_total",
		Help: "Number of bill scans processed, by outcome.",
	}, []string{"outcome"})

	// RequestDuration observes HTTP request latency per route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitledger_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)
