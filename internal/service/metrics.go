package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	passesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_passes_started_total",
		Help: "Billing passes started, by mode",
	}, []string{"mode"})

	passesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_passes_completed_total",
		Help: "Billing passes that ran to completion, by mode",
	}, []string{"mode"})

	passDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "billing_pass_duration_seconds",
		Help:    "Wall-clock duration of one full pass",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
	}, []string{"mode"})

	invoicesDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_invoices_dispatched_total",
		Help: "Invoices handed to a worker, by mode",
	}, []string{"mode"})

	chargeAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_charge_attempts_total",
		Help: "Individual charge attempts, by outcome",
	}, []string{"outcome"})

	chargesSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billing_charges_succeeded_total",
		Help: "Invoices successfully charged and marked paid",
	})

	chargesExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billing_charges_exhausted_total",
		Help: "Invoices left pending after the attempt budget was spent",
	})

	remindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billing_reminders_sent_total",
		Help: "Still-pending reminders handed to the notifier",
	})
)

// chargeAttempts outcome label values.
const (
	outcomeCaptured  = "captured"
	outcomeDeclined  = "declined"
	outcomeTransient = "transient_error"
	outcomeError     = "error"
)
