package notify

import (
	"context"
	"testing"

	"billing-engine/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamNotifier_PaymentSucceeded(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	notifier := NewStreamNotifier(client, "billing:notifications", 1000)
	ctx := context.Background()

	err := notifier.NotifyPaymentSucceeded(ctx, 42)
	require.NoError(t, err)

	entries, err := client.XRange(ctx, "billing:notifications", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, KindPaymentSucceeded, entries[0].Values["kind"])
	assert.Equal(t, "42", entries[0].Values["customer_id"])
	assert.NotEmpty(t, entries[0].Values["emitted_at"])
}

func TestStreamNotifier_PaymentStillPending(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	notifier := NewStreamNotifier(client, "billing:notifications", 1000)
	ctx := context.Background()

	invoice := domain.Invoice{
		ID:         7,
		CustomerID: 3,
		Amount:     domain.NewMoney(decimal.RequireFromString("120.50"), domain.CurrencyDKK),
		Status:     domain.InvoiceStatusPending,
	}

	err := notifier.NotifyPaymentStillPending(ctx, invoice)
	require.NoError(t, err)

	entries, err := client.XRange(ctx, "billing:notifications", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, KindPaymentStillPending, entries[0].Values["kind"])
	assert.Equal(t, "3", entries[0].Values["customer_id"])
	assert.Equal(t, "7", entries[0].Values["invoice_id"])
	assert.Equal(t, "120.50", entries[0].Values["amount"])
	assert.Equal(t, "DKK", entries[0].Values["currency"])
}

func TestStreamNotifier_ServerUnavailable(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	notifier := NewStreamNotifier(client, "billing:notifications", 1000)

	s.Close()

	err := notifier.NotifyPaymentSucceeded(context.Background(), 1)
	assert.Error(t, err)
}

func TestLogNotifier_NeverFails(t *testing.T) {
	notifier := NewLogNotifier(zerolog.Nop())
	ctx := context.Background()

	assert.NoError(t, notifier.NotifyPaymentSucceeded(ctx, 1))
	assert.NoError(t, notifier.NotifyPaymentStillPending(ctx, domain.Invoice{
		ID:         1,
		CustomerID: 1,
		Amount:     domain.NewMoney(decimal.New(100, 0), domain.CurrencyEUR),
		Status:     domain.InvoiceStatusPending,
	}))
}
