package dto

// CreateCustomerRequest is the request body for customer creation.
type CreateCustomerRequest struct {
	Currency string `json:"currency" binding:"required,len=3"`
}

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	ID       int    `json:"id"`
	Currency string `json:"currency"`
}

// CreateInvoiceRequest is the request body for invoice creation. Amount is a
// decimal string so that values like "99.95" survive the trip exactly.
type CreateInvoiceRequest struct {
	CustomerID int    `json:"customer_id" binding:"required,gt=0"`
	Amount     string `json:"amount" binding:"required"`
	Currency   string `json:"currency" binding:"required,len=3"`
}

// InvoiceResponse is the response body for an invoice.
type InvoiceResponse struct {
	ID         int    `json:"id"`
	CustomerID int    `json:"customer_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
}

// PendingCountResponse is the response for the pending invoice count.
type PendingCountResponse struct {
	Pending int `json:"pending"`
}

// BillingRunRequest is the request body for triggering a billing pass.
type BillingRunRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// BillingRunResponse acknowledges an accepted billing pass.
type BillingRunResponse struct {
	Mode    string `json:"mode"`
	Started bool   `json:"started"`
}
