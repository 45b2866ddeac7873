// Package chilepayments is a unified client for Chilean payment gateways.
// One provider-agnostic interface covers creating, confirming, querying and
// refunding a payment, plus webhook-signature validation, over Webpay
// (Transbank), Getnet (Santander) and MercadoPago.
package chilepayments

import (
	"context"
	"net/url"
	"strings"

	"github.com/CJaimeDev/chile-payments-sdk/adapters"
	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
	"github.com/CJaimeDev/chile-payments-sdk/core/ports"
)

// Re-exported configuration and entity types, so callers only import this
// package for everyday use.
type (
	Config                  = domain.Config
	Credentials             = domain.Credentials
	WebpayCredentials       = domain.WebpayCredentials
	GetnetCredentials       = domain.GetnetCredentials
	MercadoPagoCredentials  = domain.MercadoPagoCredentials
	CreateTransactionParams = domain.CreateTransactionParams
	Transaction             = domain.Transaction
	TransactionResult       = domain.TransactionResult
	TransactionStatus       = domain.TransactionStatus
	RefundParams            = domain.RefundParams
	Refund                  = domain.Refund
	Amount                  = domain.Amount
)

// Client is the SDK facade. It validates caller input, then delegates to the
// configured provider adapter. Every operation is a single stateless
// request/response round trip; the client holds no mutable per-call state,
// so concurrent use is safe.
type Client struct {
	adapter ports.PaymentAdapter
}

// New builds a Client from the configuration. The provider and environment
// are validated here, failing fast on misconfiguration; credential
// resolution (explicit, public test, or production-requires-credentials)
// happens inside the adapter.
func New(cfg Config) (*Client, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	adapter, err := adapters.New(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{adapter: adapter}, nil
}

// CreateTransaction starts a payment and returns the transaction with the
// URL the end user must be redirected to.
func (c *Client) CreateTransaction(ctx context.Context, params CreateTransactionParams) (*Transaction, error) {
	if err := validateTransactionParams(params); err != nil {
		return nil, err
	}
	return c.adapter.CreateTransaction(ctx, params)
}

// ConfirmTransaction confirms a payment after the user returns from the
// gateway, identified by the creation token.
func (c *Client) ConfirmTransaction(ctx context.Context, token string) (*TransactionResult, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.NewValidationError("token is required")
	}
	return c.adapter.ConfirmTransaction(ctx, token)
}

// GetTransactionStatus returns the normalized status of a transaction.
func (c *Client) GetTransactionStatus(ctx context.Context, transactionID string) (TransactionStatus, error) {
	if strings.TrimSpace(transactionID) == "" {
		return "", domain.NewValidationError("transaction ID is required")
	}
	return c.adapter.GetTransactionStatus(ctx, transactionID)
}

// RefundTransaction reverses a payment. A nil amount requests a full refund.
func (c *Client) RefundTransaction(ctx context.Context, params RefundParams) (*Refund, error) {
	if err := validateRefundParams(params); err != nil {
		return nil, err
	}
	return c.adapter.RefundTransaction(ctx, params)
}

// ValidateWebhook checks a gateway notification's signature. It never
// returns an error: any failure to validate reports false.
func (c *Client) ValidateWebhook(payload map[string]any, signature string) bool {
	return c.adapter.ValidateWebhook(payload, signature)
}

// Provider returns the active provider's display name.
func (c *Client) Provider() string {
	return c.adapter.Name()
}

func validateConfig(cfg Config) error {
	switch cfg.Provider {
	case domain.ProviderWebpay, domain.ProviderGetnet, domain.ProviderMercadoPago:
	default:
		return domain.NewValidationError(
			"invalid provider, must be one of: webpay, getnet, mercadopago")
	}

	switch cfg.Environment {
	case domain.EnvironmentTest, domain.EnvironmentProduction:
	default:
		return domain.NewValidationError(
			"invalid environment, must be one of: test, production")
	}

	return nil
}

func validateTransactionParams(params CreateTransactionParams) error {
	if params.Amount <= 0 {
		return domain.NewValidationError("amount must be a positive number")
	}
	if strings.TrimSpace(params.OrderID) == "" {
		return domain.NewValidationError("order ID is required")
	}
	if strings.TrimSpace(params.ReturnURL) == "" {
		return domain.NewValidationError("return URL is required")
	}
	parsed, err := url.Parse(params.ReturnURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return domain.NewValidationError("return URL must be a valid URL")
	}
	return nil
}

func validateRefundParams(params RefundParams) error {
	if strings.TrimSpace(params.TransactionID) == "" {
		return domain.NewValidationError("transaction ID is required")
	}
	if params.Amount != nil && *params.Amount <= 0 {
		return domain.NewValidationError("refund amount must be greater than 0")
	}
	return nil
}
