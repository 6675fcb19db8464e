package ports

import (
	"context"

	"billing-engine/internal/core/domain"
)

// Ledger is the narrow query surface the batch processor needs. All three
// operations are atomic from the caller's perspective; MarkPaid is idempotent
// when invoked on an already-paid invoice.
type Ledger interface {
	// CountPending returns the number of invoices currently in PENDING
	// status. The count is advisory: it bounds a pass's outer loop and may
	// be stale by the time paging completes.
	CountPending(ctx context.Context) (int, error)

	// FetchPendingPage returns up to limit PENDING invoices with id > afterID,
	// ordered ascending by id. Keyset pagination keeps invoices that flip to
	// PAID mid-pass from shifting later pages.
	FetchPendingPage(ctx context.Context, afterID int, limit int) ([]domain.Invoice, error)

	// MarkPaid transitions an invoice to PAID. Marking an already-paid
	// invoice is a no-op, not an error. Returns domain.ErrInvoiceNotFound
	// for an unknown id.
	MarkPaid(ctx context.Context, invoiceID int) error
}

// InvoiceRepository extends the billing surface with the read and setup
// operations used outside the batch processor.
type InvoiceRepository interface {
	Ledger

	FetchInvoice(ctx context.Context, id int) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	CreateInvoice(ctx context.Context, customerID int, amount domain.Money, status domain.InvoiceStatus) (*domain.Invoice, error)
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	FetchCustomer(ctx context.Context, id int) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, currency domain.Currency) (*domain.Customer, error)
}
