package domain

import "errors"

var (
	// ErrInvoiceNotFound is returned by ledger reads for an unknown invoice id.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrCustomerNotFound is returned by ledger reads for an unknown customer id.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrUnknownCurrency is returned when a currency code is not supported.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrCurrencyMismatch is returned when an invoice is issued in a currency
	// different from its customer's.
	ErrCurrencyMismatch = errors.New("invoice currency does not match customer currency")
)
