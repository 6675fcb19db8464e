package postgres

import (
	"context"
	"testing"

	"billing-engine/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepo_FetchCustomer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectQuery("SELECT id, currency FROM customers WHERE id").
		WithArgs(8).
		WillReturnRows(pgxmock.NewRows([]string{"id", "currency"}).AddRow(8, "SEK"))

	cust, err := repo.FetchCustomer(context.Background(), 8)
	require.NoError(t, err)
	require.NotNil(t, cust)
	assert.Equal(t, 8, cust.ID)
	assert.Equal(t, domain.CurrencySEK, cust.Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_FetchCustomer_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectQuery("SELECT id, currency FROM customers WHERE id").
		WithArgs(77).
		WillReturnRows(pgxmock.NewRows([]string{"id", "currency"}))

	cust, err := repo.FetchCustomer(context.Background(), 77)
	require.NoError(t, err)
	assert.Nil(t, cust)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_ListCustomers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectQuery("SELECT id, currency FROM customers").
		WillReturnRows(pgxmock.NewRows([]string{"id", "currency"}).
			AddRow(1, "EUR").
			AddRow(2, "USD"))

	customers, err := repo.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, domain.CurrencyEUR, customers[0].Currency)
	assert.Equal(t, domain.CurrencyUSD, customers[1].Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_CreateCustomer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectQuery("INSERT INTO customers").
		WithArgs(domain.CurrencyDKK).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(101))

	cust, err := repo.CreateCustomer(context.Background(), domain.CurrencyDKK)
	require.NoError(t, err)
	assert.Equal(t, 101, cust.ID)
	assert.Equal(t, domain.CurrencyDKK, cust.Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}
