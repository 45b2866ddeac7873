// Package mercadopago implements the PaymentAdapter interface using the
// official MercadoPago SDK for checkout preferences and payment queries,
// plus the REST refunds endpoint.
package mercadopago

import (
	"context"
	"strconv"
	"time"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
	"github.com/CJaimeDev/chile-payments-sdk/internal/transport"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

// ProviderName is the display name reported by the facade.
const ProviderName = "MercadoPago"

const apiBaseURL = "https://api.mercadopago.com"

// Adapter implements ports.PaymentAdapter for MercadoPago Checkout Pro.
type Adapter struct {
	credentials domain.MercadoPagoCredentials
	environment domain.Environment
	preferences preference.Client
	payments    payment.Client
	http        *transport.Client
	logger      *zap.Logger
}

// New creates a MercadoPago adapter. Unlike Webpay and Getnet there are no
// public test credentials: an access token is required in every environment
// (MercadoPago sandboxes via TEST- prefixed tokens instead).
func New(cfg domain.Config) (*Adapter, error) {
	if cfg.Environment != domain.EnvironmentTest && cfg.Environment != domain.EnvironmentProduction {
		return nil, domain.NewValidationError("invalid environment for MercadoPago")
	}

	if cfg.Credentials == nil {
		return nil, domain.NewAuthenticationError("MercadoPago credentials are required")
	}
	credentials, ok := cfg.Credentials.(domain.MercadoPagoCredentials)
	if !ok {
		return nil, domain.NewAuthenticationError("invalid credentials for MercadoPago")
	}
	if credentials.AccessToken == "" {
		return nil, domain.NewAuthenticationError("MercadoPago access token is required")
	}

	sdkCfg, err := mpconfig.New(credentials.AccessToken)
	if err != nil {
		return nil, domain.NewAuthenticationError("failed to initialize MercadoPago SDK: " + err.Error())
	}

	logger := cfg.EffectiveLogger()

	client := transport.New(apiBaseURL, ProviderName, cfg.EffectiveTimeout(), logger)
	client.SetHeaders(map[string]string{
		"Authorization": "Bearer " + credentials.AccessToken,
	})

	return &Adapter{
		credentials: credentials,
		environment: cfg.Environment,
		preferences: preference.NewClient(sdkCfg),
		payments:    payment.NewClient(sdkCfg),
		http:        client,
		logger:      logger,
	}, nil
}

// Name returns the provider's display name.
func (a *Adapter) Name() string {
	return ProviderName
}

// CreateTransaction creates a Checkout Pro preference. Like Webpay, the
// status is pending until the user completes the redirect flow.
func (a *Adapter) CreateTransaction(ctx context.Context, params domain.CreateTransactionParams) (*domain.Transaction, error) {
	title := params.Description
	if title == "" {
		title = "Payment " + params.OrderID
	}

	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      title,
				Quantity:   1,
				UnitPrice:  float64(params.Amount),
				CurrencyID: string(domain.CurrencyCLP),
			},
		},
		ExternalReference: params.OrderID,
		AutoReturn:        "approved",
		BackURLs: &preference.BackURLsRequest{
			Success: params.ReturnURL,
			Failure: params.ReturnURL,
			Pending: params.ReturnURL,
		},
	}
	if params.Email != "" {
		request.Payer = &preference.PayerRequest{Email: params.Email}
	}

	result, err := a.preferences.Create(ctx, request)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, "failed to create preference: "+err.Error(), 0, "")
	}

	paymentURL := result.InitPoint
	if a.environment == domain.EnvironmentTest && result.SandboxInitPoint != "" {
		paymentURL = result.SandboxInitPoint
	}

	transaction := &domain.Transaction{
		Token:         result.ID,
		PaymentURL:    paymentURL,
		TransactionID: result.ID,
		Amount:        domain.Amount{Currency: domain.CurrencyCLP, Total: params.Amount},
		OrderID:       params.OrderID,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now(),
	}

	a.logger.Debug("transaction created",
		zap.String("provider", ProviderName),
		zap.String("preference_id", result.ID))
	return transaction, nil
}

// ConfirmTransaction queries the payment identified by token (the numeric
// payment id MercadoPago reports on the return redirect).
func (a *Adapter) ConfirmTransaction(ctx context.Context, token string) (*domain.TransactionResult, error) {
	response, err := a.getPayment(ctx, token)
	if err != nil {
		return nil, err
	}

	status := mapStatus(response.Status)

	result := &domain.TransactionResult{
		Token:         token,
		TransactionID: strconv.Itoa(response.ID),
		Status:        status,
		Amount:        domain.Amount{Currency: domain.CurrencyCLP, Total: int(response.TransactionAmount)},
		OrderID:       response.ExternalReference,
		Message:       response.StatusDetail,
		ProcessedAt:   time.Now(),
		ProviderData: map[string]any{
			"status":        response.Status,
			"statusDetail":  response.StatusDetail,
			"paymentMethod": response.PaymentMethodID,
			"paymentType":   response.PaymentTypeID,
		},
	}

	a.logger.Debug("transaction confirmed",
		zap.String("provider", ProviderName),
		zap.String("status", string(status)))
	return result, nil
}

// GetTransactionStatus returns the normalized status of a payment.
func (a *Adapter) GetTransactionStatus(ctx context.Context, transactionID string) (domain.TransactionStatus, error) {
	response, err := a.getPayment(ctx, transactionID)
	if err != nil {
		return "", err
	}
	return mapStatus(response.Status), nil
}

// refundResponse is the wire shape of POST /v1/payments/{id}/refunds.
type refundResponse struct {
	ID        int64   `json:"id"`
	PaymentID int64   `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

// RefundTransaction refunds a payment via the refunds sub-resource. An
// omitted amount requests a full refund.
func (a *Adapter) RefundTransaction(ctx context.Context, params domain.RefundParams) (*domain.Refund, error) {
	var body any
	if params.Amount != nil {
		body = map[string]any{"amount": float64(*params.Amount)}
	}

	var response refundResponse
	err := a.http.Post(ctx, "/v1/payments/"+params.TransactionID+"/refunds", body, &response)
	if err != nil {
		return nil, err
	}

	refund := &domain.Refund{
		RefundID:      strconv.FormatInt(response.ID, 10),
		TransactionID: params.TransactionID,
		Amount:        domain.Amount{Currency: domain.CurrencyCLP, Total: int(response.Amount)},
		Status:        mapRefundStatus(response.Status),
		RefundedAt:    time.Now(),
	}

	a.logger.Debug("transaction refunded",
		zap.String("provider", ProviderName),
		zap.String("refund_id", refund.RefundID))
	return refund, nil
}

// ValidateWebhook checks the x-signature header of an IPN notification
// against the configured webhook secret.
func (a *Adapter) ValidateWebhook(payload map[string]any, signature string) bool {
	dataID := ""
	if data, ok := payload["data"].(map[string]any); ok {
		if id, ok := data["id"].(string); ok {
			dataID = id
		}
	}

	requestID := ""
	if id, ok := payload["request_id"].(string); ok {
		requestID = id
	}

	return validSignature(signature, requestID, dataID, a.credentials.WebhookSecret)
}

// getPayment fetches a payment by its numeric id.
func (a *Adapter) getPayment(ctx context.Context, transactionID string) (*payment.Response, error) {
	id, err := strconv.Atoi(transactionID)
	if err != nil {
		return nil, domain.NewValidationError("invalid MercadoPago payment id: " + transactionID)
	}

	response, err := a.payments.Get(ctx, id)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, "failed to get payment: "+err.Error(), 0, "")
	}
	return response, nil
}
