package service

import (
	"context"
	"fmt"

	"billing-engine/internal/core/domain"
	"billing-engine/internal/core/ports"
	"billing-engine/pkg/apperror"

	"github.com/rs/zerolog"
)

// CustomerService exposes customer reads and onboarding to the operator API.
type CustomerService struct {
	customers ports.CustomerRepository
	log       zerolog.Logger
}

// NewCustomerService creates a CustomerService.
func NewCustomerService(customers ports.CustomerRepository, log zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, log: log}
}

// Fetch returns one customer, or a not-found error for an unknown id.
func (s *CustomerService) Fetch(ctx context.Context, id int) (*domain.Customer, error) {
	customer, err := s.customers.FetchCustomer(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("fetch customer %d: %w", id, err))
	}
	if customer == nil {
		return nil, apperror.ErrNotFound("customer")
	}
	return customer, nil
}

// List returns all customers.
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list customers: %w", err))
	}
	return customers, nil
}

// Create onboards a customer with a fixed settlement currency.
func (s *CustomerService) Create(ctx context.Context, currencyCode string) (*domain.Customer, error) {
	currency, err := domain.ParseCurrency(currencyCode)
	if err != nil {
		return nil, apperror.ErrInvalidCurrency(currencyCode)
	}

	customer, err := s.customers.CreateCustomer(ctx, currency)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create customer: %w", err))
	}

	s.log.Info().Int("customer_id", customer.ID).Str("currency", string(currency)).
		Msg("customer created")

	return customer, nil
}
