package ports

import (
	"context"
	"errors"
	"fmt"

	"billing-engine/internal/core/domain"
)

// Charger captures funds for an invoice against the payment gateway.
type Charger interface {
	// Charge returns whether funds were captured. A network-class failure is
	// reported as a *TransientError; any other error is an unclassified
	// gateway failure. Both count as a failed attempt to the caller.
	Charge(ctx context.Context, invoice domain.Invoice) (bool, error)
}

// Notifier delivers customer-facing billing notifications. Delivery is fire
// and forget: errors are logged by the caller and never affect invoice state.
type Notifier interface {
	NotifyPaymentSucceeded(ctx context.Context, customerID int) error
	NotifyPaymentStillPending(ctx context.Context, invoice domain.Invoice) error
}

// TransientError marks a charge failure as retry-safe (gateway unreachable,
// timeout, connection reset). The retry policy currently treats transient
// failures and plain declines identically.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient gateway error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err as a TransientError.
func Transient(err error) error {
	return &TransientError{Err: err}
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
