package postgres

import (
	"context"
	"errors"
	"fmt"

	"billing-engine/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CustomerRepo implements ports.CustomerRepository against PostgreSQL.
type CustomerRepo struct {
	pool Pool
}

// NewCustomerRepo creates a new CustomerRepo.
func NewCustomerRepo(pool Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// FetchCustomer fetches one customer by id. Returns nil, nil when absent.
func (r *CustomerRepo) FetchCustomer(ctx context.Context, id int) (*domain.Customer, error) {
	var (
		c        domain.Customer
		currency string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, currency FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch customer %d: %w", id, err)
	}
	c.Currency = domain.Currency(currency)
	return &c, nil
}

// ListCustomers returns all customers in id order.
func (r *CustomerRepo) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, currency FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var (
			c        domain.Customer
			currency string
		)
		if err := rows.Scan(&c.ID, &currency); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		c.Currency = domain.Currency(currency)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

// CreateCustomer inserts a customer and returns it with its assigned id.
func (r *CustomerRepo) CreateCustomer(ctx context.Context, currency domain.Currency) (*domain.Customer, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO customers (currency) VALUES ($1) RETURNING id`, currency,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return &domain.Customer{ID: id, Currency: currency}, nil
}
