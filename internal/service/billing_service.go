package service

import (
	"context"
	"fmt"
	"time"

	"billing-engine/internal/core/domain"
	"billing-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// PassMode selects what a billing pass does with each pending invoice.
type PassMode string

const (
	// PassModeCharge attempts payment collection with bounded retry.
	PassModeCharge PassMode = "charge"
	// PassModeRemind notifies customers that their invoice is still unpaid.
	PassModeRemind PassMode = "remind"
)

// ParsePassMode validates a mode string from config or the admin API.
func ParsePassMode(s string) (PassMode, error) {
	switch PassMode(s) {
	case PassModeCharge, PassModeRemind:
		return PassMode(s), nil
	}
	return "", fmt.Errorf("unknown pass mode %q", s)
}

const (
	defaultPageSize    = 50
	defaultMaxAttempts = 4
)

// BillingOptions tunes the batch processor. Zero values fall back to the
// reference behavior: pages of 50, 4 attempts, fan-out bounded by page size.
type BillingOptions struct {
	PageSize    int
	MaxAttempts int
	WorkerLimit int
}

// BillingService drains the set of pending invoices in keyset-paginated
// pages, fanning each page out to concurrent per-invoice workers. It holds
// no state that outlives a pass; the ledger is the single source of truth.
type BillingService struct {
	ledger      ports.Ledger
	charger     ports.Charger
	notifier    ports.Notifier
	pageSize    int
	maxAttempts int
	workerLimit int
	log         zerolog.Logger
}

// NewBillingService creates a BillingService.
func NewBillingService(
	ledger ports.Ledger,
	charger ports.Charger,
	notifier ports.Notifier,
	opts BillingOptions,
	log zerolog.Logger,
) *BillingService {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	return &BillingService{
		ledger:      ledger,
		charger:     charger,
		notifier:    notifier,
		pageSize:    opts.PageSize,
		maxAttempts: opts.MaxAttempts,
		workerLimit: opts.WorkerLimit,
		log:         log,
	}
}

// RunPass executes one full pass over the currently pending invoices.
//
// The pending count taken up front is advisory: it only bounds the outer
// loop. Paging is keyset (afterID = last id of the previous page) so invoices
// that flip to PAID mid-pass are never re-served and never shift later pages.
// The next page is not fetched until every invoice of the current page has
// been attempted, which bounds in-flight gateway work to one page.
//
// Failures inside a single invoice's attempt never abort the pass; failures
// of the paginated reads do, and are returned to the caller.
func (s *BillingService) RunPass(ctx context.Context, mode PassMode) error {
	passID := uuid.New().String()
	log := s.log.With().
		Str("pass_id", passID).
		Str("mode", string(mode)).
		Logger()

	passesStarted.WithLabelValues(string(mode)).Inc()
	start := time.Now()

	total, err := s.ledger.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("count pending invoices: %w", err)
	}

	log.Info().Int("pending", total).Msg("billing pass started")

	afterID := 0
	processed := 0

	for processed < total {
		page, err := s.ledger.FetchPendingPage(ctx, afterID, s.pageSize)
		if err != nil {
			return fmt.Errorf("fetch pending page after id %d: %w", afterID, err)
		}
		if len(page) == 0 {
			// The advisory count overcounted; stop instead of spinning.
			log.Debug().Int("processed", processed).Int("expected", total).
				Msg("pending set drained early, count was stale")
			break
		}

		afterID = page[len(page)-1].ID

		g := new(errgroup.Group)
		g.SetLimit(s.fanOutLimit(len(page)))
		for _, inv := range page {
			invoicesDispatched.WithLabelValues(string(mode)).Inc()
			g.Go(func() error {
				switch mode {
				case PassModeCharge:
					s.attemptCharge(ctx, log, inv)
				case PassModeRemind:
					s.remind(ctx, log, inv)
				}
				return nil
			})
		}
		// Page barrier: the cursor only advances past a page once all of its
		// invoices have been attempted.
		_ = g.Wait()

		processed += len(page)
	}

	passesCompleted.WithLabelValues(string(mode)).Inc()
	passDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())

	log.Info().
		Int("processed", processed).
		Dur("elapsed", time.Since(start)).
		Msg("billing pass completed")

	return nil
}

// fanOutLimit caps concurrent workers within a page. The reference behavior
// is one worker per invoice; an operator may cap lower for gateway protection.
func (s *BillingService) fanOutLimit(pageLen int) int {
	if s.workerLimit > 0 && s.workerLimit < pageLen {
		return s.workerLimit
	}
	return pageLen
}

// attemptCharge drives one invoice through the retry state machine: up to
// maxAttempts synchronous tries with no backoff. A declined charge, a
// transient gateway error and an unclassified error all consume one attempt.
// Exhaustion leaves the invoice PENDING for the next scheduled pass and
// surfaces nothing to the caller.
func (s *BillingService) attemptCharge(ctx context.Context, log zerolog.Logger, inv domain.Invoice) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		captured, err := s.charger.Charge(ctx, inv)

		if err == nil && captured {
			chargeAttempts.WithLabelValues(outcomeCaptured).Inc()
			s.settle(ctx, log, inv)
			return
		}

		switch {
		case err == nil:
			chargeAttempts.WithLabelValues(outcomeDeclined).Inc()
			log.Debug().Int("invoice_id", inv.ID).Int("attempt", attempt).
				Msg("charge declined")
		case ports.IsTransient(err):
			chargeAttempts.WithLabelValues(outcomeTransient).Inc()
			log.Debug().Err(err).Int("invoice_id", inv.ID).Int("attempt", attempt).
				Msg("transient gateway failure")
		default:
			chargeAttempts.WithLabelValues(outcomeError).Inc()
			log.Warn().Err(err).Int("invoice_id", inv.ID).Int("attempt", attempt).
				Msg("unclassified charge failure")
		}
	}

	chargesExhausted.Inc()
	log.Warn().
		Int("invoice_id", inv.ID).
		Int("customer_id", inv.CustomerID).
		Int("attempts", s.maxAttempts).
		Msg("charge attempts exhausted, invoice left pending")
}

// settle records a captured charge: exactly one MarkPaid and, if that lands,
// exactly one success notification.
func (s *BillingService) settle(ctx context.Context, log zerolog.Logger, inv domain.Invoice) {
	if err := s.ledger.MarkPaid(ctx, inv.ID); err != nil {
		// Funds were captured but the ledger write failed. Retrying the
		// charge here would risk a double capture, so stop; the invoice
		// stays PENDING and the mismatch is surfaced loudly for operators.
		log.Error().Err(err).Int("invoice_id", inv.ID).
			Msg("charge captured but invoice could not be marked paid")
		return
	}

	chargesSucceeded.Inc()
	log.Debug().Int("invoice_id", inv.ID).Int("customer_id", inv.CustomerID).
		Msg("invoice paid")

	if err := s.notifier.NotifyPaymentSucceeded(ctx, inv.CustomerID); err != nil {
		log.Warn().Err(err).Int("customer_id", inv.CustomerID).
			Msg("success notification failed")
	}
}

// remind sends a still-pending notification. No retry, no status change.
func (s *BillingService) remind(ctx context.Context, log zerolog.Logger, inv domain.Invoice) {
	if err := s.notifier.NotifyPaymentStillPending(ctx, inv); err != nil {
		log.Warn().Err(err).Int("invoice_id", inv.ID).
			Msg("pending reminder failed")
		return
	}
	remindersSent.Inc()
}
