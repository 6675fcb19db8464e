package domain

// Customer is a billable account. Created once by onboarding and immutable
// afterwards; the billing core only reads it.
type Customer struct {
	ID       int      `json:"id"`
	Currency Currency `json:"currency"`
}
