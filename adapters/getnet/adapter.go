package getnet

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
	"github.com/CJaimeDev/chile-payments-sdk/internal/transport"
	"go.uber.org/zap"
)

// ProviderName is the display name reported by the facade.
const ProviderName = "Getnet"

// Base URLs per environment.
var endpoints = map[domain.Environment]string{
	domain.EnvironmentTest:       "https://checkout.test.getnet.cl",
	domain.EnvironmentProduction: "https://checkout.getnet.cl",
}

// TestCredentials are the public sandbox credentials, substituted when the
// caller configures the test environment without explicit credentials.
var TestCredentials = domain.GetnetCredentials{
	Login:     "7ffbb7bf1f7361b1200b2e8d74e1d76f",
	SecretKey: "SnZP3D63n3I9dH9O",
}

const (
	sessionExpirationMinutes = 15
	userAgent                = "ChilePaymentsSDK/1.0"
)

// Adapter implements ports.PaymentAdapter for Getnet web checkout.
type Adapter struct {
	credentials domain.GetnetCredentials
	http        *transport.Client
	logger      *zap.Logger
}

// New creates a Getnet adapter from the SDK configuration.
func New(cfg domain.Config) (*Adapter, error) {
	baseURL, ok := endpoints[cfg.Environment]
	if !ok {
		return nil, domain.NewValidationError("invalid environment for Getnet")
	}

	logger := cfg.EffectiveLogger()

	var credentials domain.GetnetCredentials
	switch {
	case cfg.Credentials == nil && cfg.Environment == domain.EnvironmentTest:
		logger.Debug("using public test credentials", zap.String("provider", ProviderName))
		credentials = TestCredentials
	case cfg.Credentials == nil:
		return nil, domain.NewAuthenticationError("Getnet credentials are required for production environment")
	default:
		creds, ok := cfg.Credentials.(domain.GetnetCredentials)
		if !ok {
			return nil, domain.NewAuthenticationError("invalid credentials for Getnet")
		}
		credentials = creds
	}

	return &Adapter{
		credentials: credentials,
		http:        transport.New(baseURL, ProviderName, cfg.EffectiveTimeout(), logger),
		logger:      logger,
	}, nil
}

// Name returns the provider's display name.
func (a *Adapter) Name() string {
	return ProviderName
}

// CreateTransaction opens a checkout session and returns the redirect URL.
func (a *Adapter) CreateTransaction(ctx context.Context, params domain.CreateTransactionParams) (*domain.Transaction, error) {
	auth, err := generateAuth(a.credentials.Login, a.credentials.SecretKey)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, "failed to generate auth", 0, err.Error())
	}

	description := params.Description
	if description == "" {
		description = "Payment"
	}

	createdAt := time.Now()
	expiresAt := createdAt.Add(sessionExpirationMinutes * time.Minute)

	request := CreateSessionRequest{
		Locale: "es_CL",
		Auth:   auth,
		Payment: PaymentRequest{
			Reference:   params.OrderID,
			Description: description,
			Amount: AmountDetail{
				Currency: string(domain.CurrencyCLP),
				Total:    params.Amount,
			},
		},
		Expiration: expiresAt.Format(isoOffsetLayout),
		ReturnURL:  params.ReturnURL,
		IPAddress:  "127.0.0.1",
		UserAgent:  userAgent,
	}
	if params.Email != "" {
		request.Buyer = &Buyer{Email: params.Email}
	}

	var response CreateSessionResponse
	if err := a.http.Post(ctx, "/api/session/", request, &response); err != nil {
		return nil, err
	}

	requestID := strconv.FormatInt(response.RequestID, 10)
	transaction := &domain.Transaction{
		Token:         requestID,
		PaymentURL:    response.ProcessURL,
		TransactionID: requestID,
		Amount:        domain.Amount{Currency: domain.CurrencyCLP, Total: params.Amount},
		OrderID:       params.OrderID,
		Status:        mapStatus(response.Status.Status),
		CreatedAt:     createdAt,
		ExpiresAt:     &expiresAt,
	}

	a.logger.Debug("transaction created",
		zap.String("provider", ProviderName),
		zap.String("request_id", requestID))
	return transaction, nil
}

// ConfirmTransaction queries the session keyed by token and extracts the
// authorized payment detail, if any.
func (a *Adapter) ConfirmTransaction(ctx context.Context, token string) (*domain.TransactionResult, error) {
	response, err := a.querySession(ctx, token)
	if err != nil {
		return nil, err
	}

	var paymentInfo *PaymentInfo
	if len(response.Payment) > 0 {
		paymentInfo = &response.Payment[0]
	}

	message := response.Status.Message
	if message == "" {
		message = response.Status.Reason
	}
	if message == "" {
		message = "Transaction processed"
	}

	result := &domain.TransactionResult{
		Token:         token,
		TransactionID: strconv.FormatInt(response.RequestID, 10),
		Status:        mapStatus(response.Status.Status),
		Amount: domain.Amount{
			Currency: domain.CurrencyCLP,
			Total:    response.Request.Payment.Amount.Total,
		},
		OrderID:     response.Request.Payment.Reference,
		Message:     message,
		ProcessedAt: time.Now(),
		ProviderData: map[string]any{
			"requestId":    response.RequestID,
			"statusReason": response.Status.Reason,
		},
	}
	if paymentInfo != nil {
		result.AuthorizationCode = paymentInfo.Authorization
		result.ProviderData["paymentMethod"] = paymentInfo.PaymentMethod
		result.ProviderData["franchise"] = paymentInfo.Franchise
		result.ProviderData["receipt"] = paymentInfo.Receipt
	}

	return result, nil
}

// GetTransactionStatus returns the normalized status of a session.
func (a *Adapter) GetTransactionStatus(ctx context.Context, transactionID string) (domain.TransactionStatus, error) {
	response, err := a.querySession(ctx, transactionID)
	if err != nil {
		return "", err
	}
	return mapStatus(response.Status.Status), nil
}

// RefundTransaction reverses a payment. Getnet keys reversals by the
// payment's internalReference, so the session is fetched first to resolve
// it; a session with no payment detail cannot be reversed.
func (a *Adapter) RefundTransaction(ctx context.Context, params domain.RefundParams) (*domain.Refund, error) {
	session, err := a.querySession(ctx, params.TransactionID)
	if err != nil {
		return nil, err
	}

	if len(session.Payment) == 0 {
		return nil, domain.NewTransactionNotFoundError(params.TransactionID)
	}
	paymentInfo := session.Payment[0]

	auth, err := generateAuth(a.credentials.Login, a.credentials.SecretKey)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, "failed to generate auth", 0, err.Error())
	}

	var response ReverseResponse
	err = a.http.Post(ctx, "/api/reverse", ReverseRequest{
		Auth:              auth,
		InternalReference: paymentInfo.InternalReference,
	}, &response)
	if err != nil {
		return nil, err
	}

	refundAmount := paymentInfo.Amount.From.Total
	if params.Amount != nil {
		refundAmount = *params.Amount
	}

	// Getnet reversals are all-or-nothing: anything short of an approved
	// reversal reports rejected.
	status := domain.RefundRejected
	if mapStatus(response.Status.Status) == domain.StatusApproved {
		status = domain.RefundApproved
	}

	refund := &domain.Refund{
		RefundID:      strconv.FormatInt(paymentInfo.InternalReference, 10),
		TransactionID: params.TransactionID,
		Amount:        domain.Amount{Currency: domain.CurrencyCLP, Total: refundAmount},
		Status:        status,
		RefundedAt:    time.Now(),
	}

	a.logger.Debug("transaction refunded",
		zap.String("provider", ProviderName),
		zap.String("refund_id", refund.RefundID),
		zap.String("status", string(status)))
	return refund, nil
}

// ValidateWebhook recomputes the notification signature from the shared
// secret and compares it to the supplied one. Missing fields report false.
func (a *Adapter) ValidateWebhook(payload map[string]any, signature string) bool {
	if signature == "" {
		return false
	}

	requestID, ok := stringField(payload["requestId"])
	if !ok {
		return false
	}

	statusBlock, ok := payload["status"].(map[string]any)
	if !ok {
		return false
	}
	status, ok := stringField(statusBlock["status"])
	if !ok {
		return false
	}
	date, ok := stringField(statusBlock["date"])
	if !ok {
		return false
	}

	return validSignature(requestID, status, date, signature, a.credentials.SecretKey)
}

// querySession fetches the session state. Confirm, status and refund all
// share this request shape; the auth block is regenerated each time.
func (a *Adapter) querySession(ctx context.Context, requestID string) (*SessionResponse, error) {
	auth, err := generateAuth(a.credentials.Login, a.credentials.SecretKey)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, "failed to generate auth", 0, err.Error())
	}

	var response SessionResponse
	err = a.http.Post(ctx, "/api/session/"+requestID, QuerySessionRequest{Auth: auth}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// stringField renders a decoded-JSON value as the string Getnet signed.
// Numeric request ids arrive as float64 after unmarshalling.
func stringField(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case fmt.Stringer:
		return value.String(), true
	default:
		return "", false
	}
}
