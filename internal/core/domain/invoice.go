package domain

// InvoiceStatus is the lifecycle state of an invoice.
//
// The only legal transition is PENDING -> PAID. There is no terminal failure
// state: an invoice whose charge attempts were exhausted stays PENDING and is
// picked up again by the next scheduled pass.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
)

// Invoice is a receivable owed by a customer. Invariant: Amount.Currency
// equals the owning customer's currency, fixed at issuance.
type Invoice struct {
	ID         int           `json:"id"`
	CustomerID int           `json:"customer_id"`
	Amount     Money         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// IsPending reports whether the invoice is still collectable.
func (i Invoice) IsPending() bool {
	return i.Status == InvoiceStatusPending
}
