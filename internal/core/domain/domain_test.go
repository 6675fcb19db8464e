package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency_Valid(t *testing.T) {
	for _, code := range []string{"EUR", "USD", "DKK", "SEK", "GBP"} {
		c, err := ParseCurrency(code)
		require.NoError(t, err)
		assert.Equal(t, Currency(code), c)
	}
}

func TestParseCurrency_Unknown(t *testing.T) {
	_, err := ParseCurrency("JPY")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCurrency))

	_, err = ParseCurrency("eur")
	assert.Error(t, err, "currency codes are case sensitive")
}

func TestMoney_String(t *testing.T) {
	m := NewMoney(decimal.RequireFromString("123.4"), CurrencyDKK)
	assert.Equal(t, "123.40 DKK", m.String())
}

func TestInvoice_IsPending(t *testing.T) {
	inv := Invoice{
		ID:         1,
		CustomerID: 7,
		Amount:     NewMoney(decimal.NewFromInt(100), CurrencyEUR),
		Status:     InvoiceStatusPending,
	}
	assert.True(t, inv.IsPending())

	inv.Status = InvoiceStatusPaid
	assert.False(t, inv.IsPending())
}
