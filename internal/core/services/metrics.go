package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerEntriesPosted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopledger_ledger_entries_posted_total",
		Help: "Ledger entries created, by entry type.",
	}, []string{"type"})

	balanceCorrections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopledger_balance_corrections_total",
		Help: "Customer balances repaired by recomputation.",
	})

	invoicesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopledger_invoices_created_total",
		Help: "Invoices created.",
	})

	stockDeductionsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopledger_stock_deductions_skipped_total",
		Help: "Invoice items whose stock was not deducted, by reason.",
	}, []string{"reason"})

	paymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopledger_payments_recorded_total",
		Help: "Payments recorded, by payment method.",
	}, []string{"method"})
)
