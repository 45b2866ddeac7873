// Package ports defines the interfaces (ports) for the payments SDK.
// These are contracts that provider adapters must implement.
package ports

import (
	"context"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
)

// PaymentAdapter is the provider-agnostic contract every gateway adapter
// implements. An adapter holds fixed credentials and base URL (set once at
// construction, read-only thereafter) and no per-call state, so concurrent
// calls against the same instance are independent.
type PaymentAdapter interface {
	// Name returns the provider's display name.
	Name() string

	// CreateTransaction starts a payment and returns the redirect handle.
	CreateTransaction(ctx context.Context, params domain.CreateTransactionParams) (*domain.Transaction, error)

	// ConfirmTransaction confirms a payment after the user returns from the
	// gateway.
	ConfirmTransaction(ctx context.Context, token string) (*domain.TransactionResult, error)

	// GetTransactionStatus returns the normalized status of a transaction.
	GetTransactionStatus(ctx context.Context, transactionID string) (domain.TransactionStatus, error)

	// RefundTransaction reverses a payment, fully or partially.
	RefundTransaction(ctx context.Context, params domain.RefundParams) (*domain.Refund, error)

	// ValidateWebhook checks a gateway notification's signature. It never
	// returns an error: any failure to validate reports false.
	ValidateWebhook(payload map[string]any, signature string) bool
}
