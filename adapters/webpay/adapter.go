// Package webpay implements the PaymentAdapter interface for Transbank's
// Webpay Plus REST API.
package webpay

import (
	"context"
	"fmt"
	"time"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
	"github.com/CJaimeDev/chile-payments-sdk/internal/transport"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProviderName is the display name reported by the facade.
const ProviderName = "Webpay"

// Base URLs per environment.
var endpoints = map[domain.Environment]string{
	domain.EnvironmentTest:       "https://webpay3gint.transbank.cl",
	domain.EnvironmentProduction: "https://webpay3g.transbank.cl",
}

// TestCredentials are Transbank's public integration credentials,
// substituted when the caller configures the test environment without
// explicit credentials.
var TestCredentials = domain.WebpayCredentials{
	CommerceCode: "597055555532",
	APIKey:       "579B532A7440BB0C9079DED94D31EA1615BACEB56610332264630D42D0A36B1C",
}

const transactionsPath = "/rswebpaytransaction/api/webpay/v1.2/transactions"

// Adapter implements ports.PaymentAdapter for Webpay Plus.
type Adapter struct {
	credentials domain.WebpayCredentials
	http        *transport.Client
	logger      *zap.Logger
}

// New creates a Webpay adapter from the SDK configuration. The API-key
// headers are installed once here and sent on every request.
func New(cfg domain.Config) (*Adapter, error) {
	baseURL, ok := endpoints[cfg.Environment]
	if !ok {
		return nil, domain.NewValidationError("invalid environment for Webpay")
	}

	logger := cfg.EffectiveLogger()

	var credentials domain.WebpayCredentials
	switch {
	case cfg.Credentials == nil && cfg.Environment == domain.EnvironmentTest:
		logger.Debug("using public test credentials", zap.String("provider", ProviderName))
		credentials = TestCredentials
	case cfg.Credentials == nil:
		return nil, domain.NewAuthenticationError("Webpay credentials are required for production environment")
	default:
		creds, ok := cfg.Credentials.(domain.WebpayCredentials)
		if !ok {
			return nil, domain.NewAuthenticationError("invalid credentials for Webpay")
		}
		credentials = creds
	}

	client := transport.New(baseURL, ProviderName, cfg.EffectiveTimeout(), logger)
	client.SetHeaders(map[string]string{
		"Tbk-Api-Key-Id":     credentials.CommerceCode,
		"Tbk-Api-Key-Secret": credentials.APIKey,
	})

	return &Adapter{
		credentials: credentials,
		http:        client,
		logger:      logger,
	}, nil
}

// Name returns the provider's display name.
func (a *Adapter) Name() string {
	return ProviderName
}

// CreateTransaction starts a Webpay transaction. The gateway never reports a
// final status at creation time: the caller must redirect the user to
// PaymentURL and confirm once they return.
func (a *Adapter) CreateTransaction(ctx context.Context, params domain.CreateTransactionParams) (*domain.Transaction, error) {
	request := CreateRequest{
		BuyOrder:  params.OrderID,
		SessionID: newSessionID(),
		Amount:    params.Amount,
		ReturnURL: params.ReturnURL,
	}

	var response CreateResponse
	if err := a.http.Post(ctx, transactionsPath, request, &response); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		Token:         response.Token,
		PaymentURL:    response.URL,
		TransactionID: response.Token,
		Amount:        domain.Amount{Currency: domain.CurrencyCLP, Total: params.Amount},
		OrderID:       params.OrderID,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now(),
	}

	a.logger.Debug("transaction created",
		zap.String("provider", ProviderName),
		zap.String("token", response.Token))
	return transaction, nil
}

// ConfirmTransaction commits the transaction. The commit is an update (PUT)
// of the per-token resource; response code 0 is the sole approval signal.
func (a *Adapter) ConfirmTransaction(ctx context.Context, token string) (*domain.TransactionResult, error) {
	var response TransactionResponse
	if err := a.http.Put(ctx, transactionsPath+"/"+token, nil, &response); err != nil {
		return nil, err
	}

	status := mapResponseCode(response.ResponseCode)

	message := fmt.Sprintf("Transaction rejected (code: %d)", response.ResponseCode)
	if status == domain.StatusApproved {
		message = "Transaction approved"
	}

	cardNumber := ""
	if response.CardDetail != nil {
		cardNumber = response.CardDetail.CardNumber
	}

	result := &domain.TransactionResult{
		Token:             token,
		TransactionID:     token,
		Status:            status,
		Amount:            domain.Amount{Currency: domain.CurrencyCLP, Total: response.Amount},
		OrderID:           response.BuyOrder,
		AuthorizationCode: response.AuthorizationCode,
		Message:           message,
		ProcessedAt:       time.Now(),
		ProviderData: map[string]any{
			"vci":             response.VCI,
			"paymentTypeCode": response.PaymentTypeCode,
			"responseCode":    response.ResponseCode,
			"cardNumber":      cardNumber,
		},
	}

	a.logger.Debug("transaction confirmed",
		zap.String("provider", ProviderName),
		zap.String("status", string(status)))
	return result, nil
}

// GetTransactionStatus reads the transaction without committing it.
func (a *Adapter) GetTransactionStatus(ctx context.Context, transactionID string) (domain.TransactionStatus, error) {
	var response TransactionResponse
	if err := a.http.Get(ctx, transactionsPath+"/"+transactionID, &response); err != nil {
		return "", err
	}
	return mapTransactionStatus(&response), nil
}

// RefundTransaction refunds a committed transaction. When the caller omits
// the amount, an empty body is sent and the gateway performs a full refund.
func (a *Adapter) RefundTransaction(ctx context.Context, params domain.RefundParams) (*domain.Refund, error) {
	var body any
	if params.Amount != nil {
		body = RefundRequest{Amount: *params.Amount}
	}

	var response RefundResponse
	err := a.http.Post(ctx, transactionsPath+"/"+params.TransactionID+"/refunds", body, &response)
	if err != nil {
		return nil, err
	}

	status := domain.RefundRejected
	if response.ResponseCode == 0 {
		status = domain.RefundApproved
	}

	refund := &domain.Refund{
		RefundID:      response.AuthorizationCode,
		TransactionID: params.TransactionID,
		Amount:        domain.Amount{Currency: domain.CurrencyCLP, Total: int(response.NullifiedAmount)},
		Status:        status,
		RefundedAt:    time.Now(),
	}

	a.logger.Debug("transaction refunded",
		zap.String("provider", ProviderName),
		zap.String("status", string(status)))
	return refund, nil
}

// ValidateWebhook always reports true: Webpay has no asynchronous
// notification channel, confirmation is caller-initiated via the return URL.
func (a *Adapter) ValidateWebhook(payload map[string]any, signature string) bool {
	return true
}

// newSessionID generates a unique session id for a create request.
func newSessionID() string {
	return "session_" + uuid.NewString()
}
