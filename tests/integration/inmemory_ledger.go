package integration

import (
	"context"
	"sort"
	"sync"

	"billing-engine/internal/core/domain"
)

// inMemoryLedger implements ports.InvoiceRepository and
// ports.CustomerRepository against mutex-guarded maps. It exercises the real
// services end-to-end without PostgreSQL.
type inMemoryLedger struct {
	mu         sync.Mutex
	customers  map[int]domain.Customer
	invoices   map[int]domain.Invoice
	nextCustID int
	nextInvID  int
}

func newInMemoryLedger() *inMemoryLedger {
	return &inMemoryLedger{
		customers:  make(map[int]domain.Customer),
		invoices:   make(map[int]domain.Invoice),
		nextCustID: 1,
		nextInvID:  1,
	}
}

func (l *inMemoryLedger) CountPending(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, inv := range l.invoices {
		if inv.Status == domain.InvoiceStatusPending {
			count++
		}
	}
	return count, nil
}

func (l *inMemoryLedger) FetchPendingPage(ctx context.Context, afterID, limit int) ([]domain.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var page []domain.Invoice
	for _, inv := range l.invoices {
		if inv.Status == domain.InvoiceStatusPending && inv.ID > afterID {
			page = append(page, inv)
		}
	}
	sort.Slice(page, func(i, j int) bool { return page[i].ID < page[j].ID })
	if len(page) > limit {
		page = page[:limit]
	}
	return page, nil
}

func (l *inMemoryLedger) MarkPaid(ctx context.Context, invoiceID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	inv, ok := l.invoices[invoiceID]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.Status = domain.InvoiceStatusPaid
	l.invoices[invoiceID] = inv
	return nil
}

func (l *inMemoryLedger) FetchInvoice(ctx context.Context, id int) (*domain.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	inv, ok := l.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (l *inMemoryLedger) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Invoice, 0, len(l.invoices))
	for _, inv := range l.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *inMemoryLedger) CreateInvoice(ctx context.Context, customerID int, amount domain.Money, status domain.InvoiceStatus) (*domain.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	inv := domain.Invoice{
		ID:         l.nextInvID,
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
	}
	l.invoices[inv.ID] = inv
	l.nextInvID++
	return &inv, nil
}

func (l *inMemoryLedger) FetchCustomer(ctx context.Context, id int) (*domain.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cust, ok := l.customers[id]
	if !ok {
		return nil, nil
	}
	return &cust, nil
}

func (l *inMemoryLedger) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Customer, 0, len(l.customers))
	for _, cust := range l.customers {
		out = append(out, cust)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *inMemoryLedger) CreateCustomer(ctx context.Context, currency domain.Currency) (*domain.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cust := domain.Customer{ID: l.nextCustID, Currency: currency}
	l.customers[cust.ID] = cust
	l.nextCustID++
	return &cust, nil
}

// statusCounts reports invoices by status, for assertions.
func (l *inMemoryLedger) statusCounts() (pending, paid int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, inv := range l.invoices {
		switch inv.Status {
		case domain.InvoiceStatusPending:
			pending++
		case domain.InvoiceStatusPaid:
			paid++
		}
	}
	return pending, paid
}
