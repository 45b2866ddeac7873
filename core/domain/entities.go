// Package domain contains the core business entities for the payments SDK.
// This is the innermost layer - no external dependencies.
package domain

import "time"

// Currency is the transaction currency. Chilean gateways operate in CLP only.
type Currency string

// CurrencyCLP is the Chilean peso. No subunits: all amounts are whole numbers.
const CurrencyCLP Currency = "CLP"

// TransactionStatus is the normalized status vocabulary. Every provider's
// raw status collapses into one of these six values.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusApproved  TransactionStatus = "approved"
	StatusRejected  TransactionStatus = "rejected"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
	StatusExpired   TransactionStatus = "expired"
)

// RefundStatus is the status of a refund request.
type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

// Amount is a monetary value. Total is an integer because CLP has no decimals.
type Amount struct {
	Currency Currency `json:"currency"`
	Total    int      `json:"total"`
}

// CreateTransactionParams holds the caller's input for creating a payment.
type CreateTransactionParams struct {
	// Amount in CLP, must be greater than zero.
	Amount int `json:"amount"`

	// OrderID is the caller's unique order identifier, echoed back by the gateway.
	OrderID string `json:"order_id"`

	// ReturnURL is where the end user is redirected after paying.
	ReturnURL string `json:"return_url"`

	// Description of the purchase (optional).
	Description string `json:"description,omitempty"`

	// Email of the buyer (optional, forwarded to gateways that accept it).
	Email string `json:"email,omitempty"`

	// Metadata holds caller-defined extra data (optional, not sent on the wire).
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Transaction is the result of creating a payment. It is immutable once
// returned; the lifecycle continues only through confirm/status/refund calls
// keyed by Token or TransactionID.
type Transaction struct {
	// Token is the opaque handle issued by the gateway.
	Token string `json:"token"`

	// PaymentURL is where the end user must be redirected to pay.
	PaymentURL string `json:"payment_url"`

	// TransactionID identifies the transaction in the provider's system.
	TransactionID string `json:"transaction_id"`

	Amount  Amount `json:"amount"`
	OrderID string `json:"order_id"`

	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`

	// ExpiresAt is set when the gateway enforces a payment deadline.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// TransactionResult is the outcome of confirming a transaction.
type TransactionResult struct {
	Token         string            `json:"token"`
	TransactionID string            `json:"transaction_id"`
	Status        TransactionStatus `json:"status"`
	Amount        Amount            `json:"amount"`
	OrderID       string            `json:"order_id"`

	// AuthorizationCode is set when the payment was approved.
	AuthorizationCode string `json:"authorization_code,omitempty"`

	// Message is the provider's human-readable result description.
	Message string `json:"message,omitempty"`

	ProcessedAt time.Time `json:"processed_at"`

	// ProviderData carries provider-specific diagnostic fields.
	ProviderData map[string]any `json:"provider_data,omitempty"`
}

// RefundParams holds the caller's input for refunding a transaction.
type RefundParams struct {
	TransactionID string `json:"transaction_id"`

	// Amount to refund. Nil means full refund.
	Amount *int `json:"amount,omitempty"`
}

// Refund is the result of a refund request.
type Refund struct {
	RefundID      string       `json:"refund_id"`
	TransactionID string       `json:"transaction_id"`
	Amount        Amount       `json:"amount"`
	Status        RefundStatus `json:"status"`
	RefundedAt    time.Time    `json:"refunded_at"`
}
