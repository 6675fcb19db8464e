package service

import (
	"context"
	"fmt"

	"billing-engine/internal/core/domain"
	"billing-engine/internal/core/ports"
	"billing-engine/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InvoiceService exposes invoice reads and issuance to the operator API.
type InvoiceService struct {
	invoices  ports.InvoiceRepository
	customers ports.CustomerRepository
	log       zerolog.Logger
}

// NewInvoiceService creates an InvoiceService.
func NewInvoiceService(invoices ports.InvoiceRepository, customers ports.CustomerRepository, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{invoices: invoices, customers: customers, log: log}
}

// Fetch returns one invoice, or a not-found error for an unknown id.
func (s *InvoiceService) Fetch(ctx context.Context, id int) (*domain.Invoice, error) {
	inv, err := s.invoices.FetchInvoice(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("fetch invoice %d: %w", id, err))
	}
	if inv == nil {
		return nil, apperror.ErrNotFound("invoice")
	}
	return inv, nil
}

// List returns all invoices.
func (s *InvoiceService) List(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list invoices: %w", err))
	}
	return invoices, nil
}

// CountPending returns the current size of the pending set.
func (s *InvoiceService) CountPending(ctx context.Context) (int, error) {
	n, err := s.invoices.CountPending(ctx)
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("count pending invoices: %w", err))
	}
	return n, nil
}

// Create issues a new PENDING invoice. The amount must be positive and the
// currency must match the owning customer's currency; no conversion happens.
func (s *InvoiceService) Create(ctx context.Context, customerID int, amount decimal.Decimal, currencyCode string) (*domain.Invoice, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	currency, err := domain.ParseCurrency(currencyCode)
	if err != nil {
		return nil, apperror.ErrInvalidCurrency(currencyCode)
	}

	customer, err := s.customers.FetchCustomer(ctx, customerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("fetch customer %d: %w", customerID, err))
	}
	if customer == nil {
		return nil, apperror.ErrNotFound("customer")
	}
	if customer.Currency != currency {
		return nil, apperror.ErrCurrencyMismatch()
	}

	inv, err := s.invoices.CreateInvoice(ctx, customerID, domain.NewMoney(amount, currency), domain.InvoiceStatusPending)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create invoice: %w", err))
	}

	s.log.Info().Int("invoice_id", inv.ID).Int("customer_id", customerID).
		Str("amount", inv.Amount.String()).Msg("invoice issued")

	return inv, nil
}
