package notify

import (
	"context"

	"billing-engine/internal/core/domain"

	"github.com/rs/zerolog"
)

// LogNotifier writes notifications to the application log instead of an
// outbound channel. It is the default sink for local development and for
// deployments without a mailer.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "log_notifier").Logger()}
}

func (n *LogNotifier) NotifyPaymentSucceeded(_ context.Context, customerID int) error {
	n.log.Info().
		Int("customer_id", customerID).
		Msg("Payment succeeded notification")
	return nil
}

func (n *LogNotifier) NotifyPaymentStillPending(_ context.Context, invoice domain.Invoice) error {
	n.log.Info().
		Int("customer_id", invoice.CustomerID).
		Int("invoice_id", invoice.ID).
		Str("amount", invoice.Amount.Amount.String()).
		Str("currency", string(invoice.Amount.Currency)).
		Msg("Payment still pending notification")
	return nil
}
