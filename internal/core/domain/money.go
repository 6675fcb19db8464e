package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is the set of settlement currencies customers can be billed in.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyDKK Currency = "DKK"
	CurrencySEK Currency = "SEK"
	CurrencyGBP Currency = "GBP"
)

// Currencies lists all supported currencies in a stable order.
func Currencies() []Currency {
	return []Currency{CurrencyEUR, CurrencyUSD, CurrencyDKK, CurrencySEK, CurrencyGBP}
}

// ParseCurrency validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(code)
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyDKK, CurrencySEK, CurrencyGBP:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
}

// Money is an immutable amount in a single currency. No conversion is
// performed anywhere in the billing core; an invoice's currency always
// matches its customer's currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// NewMoney builds a Money value.
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}
