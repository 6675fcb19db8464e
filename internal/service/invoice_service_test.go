package service

import (
	"context"
	"errors"
	"testing"

	"billing-engine/internal/core/domain"
	"billing-engine/internal/core/ports/mocks"
	"billing-engine/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func setupInvoiceService(t *testing.T) (*InvoiceService, *mocks.MockInvoiceRepository, *mocks.MockCustomerRepository) {
	ctrl := gomock.NewController(t)
	invoices := mocks.NewMockInvoiceRepository(ctrl)
	customers := mocks.NewMockCustomerRepository(ctrl)
	return NewInvoiceService(invoices, customers, zerolog.Nop()), invoices, customers
}

func TestInvoiceService_Fetch_Success(t *testing.T) {
	svc, invoices, _ := setupInvoiceService(t)
	ctx := context.Background()

	want := &domain.Invoice{ID: 3, CustomerID: 1,
		Amount: domain.NewMoney(decimal.NewFromInt(50), domain.CurrencyUSD),
		Status: domain.InvoiceStatusPending}
	invoices.EXPECT().FetchInvoice(ctx, 3).Return(want, nil)

	got, err := svc.Fetch(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInvoiceService_Fetch_NotFound(t *testing.T) {
	svc, invoices, _ := setupInvoiceService(t)
	ctx := context.Background()

	invoices.EXPECT().FetchInvoice(ctx, 99).Return(nil, nil)

	_, err := svc.Fetch(ctx, 99)
	require.Error(t, err)
	assertAppError(t, err, "LED_001")
}

func TestInvoiceService_Fetch_RepoError(t *testing.T) {
	svc, invoices, _ := setupInvoiceService(t)
	ctx := context.Background()

	invoices.EXPECT().FetchInvoice(ctx, 1).Return(nil, errors.New("conn refused"))

	_, err := svc.Fetch(ctx, 1)
	require.Error(t, err)
	assertAppError(t, err, "SYS_001")
}

func TestInvoiceService_Create_Success(t *testing.T) {
	svc, invoices, customers := setupInvoiceService(t)
	ctx := context.Background()

	amount := decimal.RequireFromString("199.90")
	customers.EXPECT().FetchCustomer(ctx, 7).
		Return(&domain.Customer{ID: 7, Currency: domain.CurrencyDKK}, nil)
	invoices.EXPECT().CreateInvoice(ctx, 7,
		domain.NewMoney(amount, domain.CurrencyDKK), domain.InvoiceStatusPending).
		Return(&domain.Invoice{ID: 11, CustomerID: 7,
			Amount: domain.NewMoney(amount, domain.CurrencyDKK),
			Status: domain.InvoiceStatusPending}, nil)

	inv, err := svc.Create(ctx, 7, amount, "DKK")
	require.NoError(t, err)
	assert.Equal(t, 11, inv.ID)
	assert.Equal(t, domain.InvoiceStatusPending, inv.Status)
}

func TestInvoiceService_Create_NonPositiveAmount(t *testing.T) {
	svc, _, _ := setupInvoiceService(t)

	_, err := svc.Create(context.Background(), 7, decimal.Zero, "DKK")
	assertAppError(t, err, "LED_004")

	_, err = svc.Create(context.Background(), 7, decimal.NewFromInt(-5), "DKK")
	assertAppError(t, err, "LED_004")
}

func TestInvoiceService_Create_UnknownCurrency(t *testing.T) {
	svc, _, _ := setupInvoiceService(t)

	_, err := svc.Create(context.Background(), 7, decimal.NewFromInt(10), "XYZ")
	assertAppError(t, err, "LED_002")
}

func TestInvoiceService_Create_CurrencyMismatch(t *testing.T) {
	svc, _, customers := setupInvoiceService(t)
	ctx := context.Background()

	customers.EXPECT().FetchCustomer(ctx, 7).
		Return(&domain.Customer{ID: 7, Currency: domain.CurrencyEUR}, nil)

	_, err := svc.Create(ctx, 7, decimal.NewFromInt(10), "USD")
	assertAppError(t, err, "LED_003")
}

func TestInvoiceService_Create_CustomerNotFound(t *testing.T) {
	svc, _, customers := setupInvoiceService(t)
	ctx := context.Background()

	customers.EXPECT().FetchCustomer(ctx, 404).Return(nil, nil)

	_, err := svc.Create(ctx, 404, decimal.NewFromInt(10), "USD")
	assertAppError(t, err, "LED_001")
}

func TestCustomerService_CreateAndFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	customers := mocks.NewMockCustomerRepository(ctrl)
	svc := NewCustomerService(customers, zerolog.Nop())
	ctx := context.Background()

	customers.EXPECT().CreateCustomer(ctx, domain.CurrencySEK).
		Return(&domain.Customer{ID: 1, Currency: domain.CurrencySEK}, nil)

	c, err := svc.Create(ctx, "SEK")
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)

	customers.EXPECT().FetchCustomer(ctx, 2).Return(nil, nil)
	_, err = svc.Fetch(ctx, 2)
	assertAppError(t, err, "LED_001")

	_, err = svc.Create(ctx, "BTC")
	assertAppError(t, err, "LED_002")
}
