// Package scheduler maps wall-clock cron expressions to billing passes.
//
// It is a single in-process component: it does not coordinate with other
// instances, so running two schedulers against the same ledger risks
// double-attempting invoices (mitigated only by MarkPaid idempotence).
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"billing-engine/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// BillingRunner is the slice of the billing service the scheduler drives.
type BillingRunner interface {
	RunPass(ctx context.Context, mode service.PassMode) error
}

// Scheduler owns the two billing triggers. Each trigger carries its own
// overlap guard: a firing that arrives while the previous pass of the same
// trigger is still running is skipped, never queued.
type Scheduler struct {
	billing BillingRunner
	cron    *cron.Cron
	log     zerolog.Logger

	charging  atomic.Bool
	reminding atomic.Bool
}

// New creates a stopped Scheduler. The hosting process owns its lifecycle:
// ScheduleJobs at startup, Start once wiring is complete, Stop at shutdown.
func New(billing BillingRunner, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		billing: billing,
		cron:    cron.New(),
		log:     log,
	}
}

// ScheduleJobs registers the charge and reminder triggers. A malformed cron
// expression is a startup failure, surfaced before the process is healthy.
func (s *Scheduler) ScheduleJobs(chargeCron, reminderCron string) error {
	if _, err := s.cron.AddFunc(chargeCron, func() {
		s.fire(service.PassModeCharge)
	}); err != nil {
		return fmt.Errorf("charge trigger %q: %w", chargeCron, err)
	}

	if _, err := s.cron.AddFunc(reminderCron, func() {
		s.fire(service.PassModeRemind)
	}); err != nil {
		return fmt.Errorf("reminder trigger %q: %w", reminderCron, err)
	}

	s.log.Info().
		Str("charge_cron", chargeCron).
		Str("reminder_cron", reminderCron).
		Msg("billing triggers scheduled")

	return nil
}

// Start begins firing triggers on their calendar.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the trigger calendar and waits for passes started by it to
// return. Process exit abandons anything still in flight beyond the
// caller's patience.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// TryRunNow starts a pass immediately in the background if the mode's guard
// is free. Returns false if a pass of that mode is already running. Manual
// runs and scheduled firings share the same guard.
func (s *Scheduler) TryRunNow(mode service.PassMode) bool {
	guard := s.guard(mode)
	if !guard.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer guard.Store(false)
		s.run(mode)
	}()
	return true
}

// fire runs one scheduled pass, skipping if the previous firing of the same
// trigger has not finished.
func (s *Scheduler) fire(mode service.PassMode) {
	guard := s.guard(mode)
	if !guard.CompareAndSwap(false, true) {
		s.log.Warn().Str("mode", string(mode)).
			Msg("previous pass still running, skipping trigger")
		return
	}
	defer guard.Store(false)
	s.run(mode)
}

func (s *Scheduler) run(mode service.PassMode) {
	if err := s.billing.RunPass(context.Background(), mode); err != nil {
		// Pass-level failures are logged and absorbed; the next trigger
		// firing retries the whole pending set.
		s.log.Error().Err(err).Str("mode", string(mode)).Msg("billing pass failed")
	}
}

func (s *Scheduler) guard(mode service.PassMode) *atomic.Bool {
	if mode == service.PassModeRemind {
		return &s.reminding
	}
	return &s.charging
}
