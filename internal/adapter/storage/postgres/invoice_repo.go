package postgres

import (
	"context"
	"errors"
	"fmt"

	"billing-engine/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InvoiceRepo implements ports.InvoiceRepository against PostgreSQL.
// The three billing operations (CountPending, FetchPendingPage, MarkPaid)
// are each a single statement, so they are atomic from the caller's side.
type InvoiceRepo struct {
	pool Pool
}

// NewInvoiceRepo creates a new InvoiceRepo.
func NewInvoiceRepo(pool Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// CountPending returns the number of invoices still awaiting collection.
func (r *InvoiceRepo) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE status = $1`,
		domain.InvoiceStatusPending,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending invoices: %w", err)
	}
	return count, nil
}

// FetchPendingPage returns up to limit pending invoices with id > afterID in
// ascending id order. Keyset pagination: the status column this filters on
// is mutated by the same processor that pages over it, so an offset would
// skip or duplicate rows as invoices flip to PAID mid-run.
func (r *InvoiceRepo) FetchPendingPage(ctx context.Context, afterID int, limit int) ([]domain.Invoice, error) {
	query := `SELECT id, customer_id, amount::text, currency, status FROM invoices
		WHERE status = $1 AND id > $2 ORDER BY id ASC LIMIT $3`

	rows, err := r.pool.Query(ctx, query, domain.InvoiceStatusPending, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch pending page: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoiceRow(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending page: %w", err)
	}
	return invoices, nil
}

// MarkPaid transitions an invoice to PAID. Marking an already-paid invoice
// affects the row again with the same value, so a second call is a no-op
// rather than an error. An unknown id is reported as not found.
func (r *InvoiceRepo) MarkPaid(ctx context.Context, invoiceID int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET status = $1 WHERE id = $2`,
		domain.InvoiceStatusPaid, invoiceID,
	)
	if err != nil {
		return fmt.Errorf("mark invoice %d paid: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark invoice %d paid: %w", invoiceID, domain.ErrInvoiceNotFound)
	}
	return nil
}

// FetchInvoice fetches one invoice by id. Returns nil, nil when absent.
func (r *InvoiceRepo) FetchInvoice(ctx context.Context, id int) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, customer_id, amount::text, currency, status FROM invoices WHERE id = $1`, id)

	inv, err := scanInvoiceRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// ListInvoices returns all invoices in id order.
func (r *InvoiceRepo) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, customer_id, amount::text, currency, status FROM invoices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoiceRow(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return invoices, nil
}

// CreateInvoice inserts a new invoice and returns it with its assigned id.
func (r *InvoiceRepo) CreateInvoice(ctx context.Context, customerID int, amount domain.Money, status domain.InvoiceStatus) (*domain.Invoice, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO invoices (customer_id, amount, currency, status)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		customerID, amount.Amount.String(), amount.Currency, status,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}

	return &domain.Invoice{
		ID:         id,
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
	}, nil
}

// scanInvoiceRow scans one invoice row. Amounts travel as text to keep
// NUMERIC exact on the way into decimal.Decimal.
func scanInvoiceRow(row pgx.Row) (domain.Invoice, error) {
	var (
		inv       domain.Invoice
		amountStr string
		currency  string
		status    string
	)
	if err := row.Scan(&inv.ID, &inv.CustomerID, &amountStr, &currency, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Invoice{}, err
		}
		return domain.Invoice{}, fmt.Errorf("scan invoice: %w", err)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("parse invoice amount %q: %w", amountStr, err)
	}

	inv.Amount = domain.NewMoney(amount, domain.Currency(currency))
	inv.Status = domain.InvoiceStatus(status)
	return inv, nil
}
