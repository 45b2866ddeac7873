// Package api contains the HTTP handlers and routing for the payment service.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentClient is the slice of the SDK facade the handlers need. Satisfied
// by *chilepayments.Client.
type PaymentClient interface {
	CreateTransaction(ctx context.Context, params domain.CreateTransactionParams) (*domain.Transaction, error)
	ConfirmTransaction(ctx context.Context, token string) (*domain.TransactionResult, error)
	GetTransactionStatus(ctx context.Context, transactionID string) (domain.TransactionStatus, error)
	RefundTransaction(ctx context.Context, params domain.RefundParams) (*domain.Refund, error)
	ValidateWebhook(payload map[string]any, signature string) bool
	Provider() string
}

// Handler contains the HTTP handlers for the payment API.
type Handler struct {
	client PaymentClient
	logger *zap.Logger
}

// NewHandler creates a new API handler backed by the payment client.
func NewHandler(client PaymentClient, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{client: client, logger: logger}
}

// CreateTransactionRequest is the JSON body for creating a transaction.
type CreateTransactionRequest struct {
	Amount      int    `json:"amount" binding:"required"`
	OrderID     string `json:"order_id" binding:"required"`
	ReturnURL   string `json:"return_url" binding:"required"`
	Description string `json:"description"`
	Email       string `json:"email"`
}

// RefundRequest is the JSON body for refunding a transaction. A missing
// amount requests a full refund.
type RefundRequest struct {
	Amount *int `json:"amount"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// CreateTransaction handles POST /api/v1/transactions.
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  "VALIDATION_ERROR",
		})
		return
	}

	transaction, err := h.client.CreateTransaction(c.Request.Context(), domain.CreateTransactionParams{
		Amount:      req.Amount,
		OrderID:     req.OrderID,
		ReturnURL:   req.ReturnURL,
		Description: req.Description,
		Email:       req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// ConfirmTransaction handles PUT /api/v1/transactions/:token.
func (h *Handler) ConfirmTransaction(c *gin.Context) {
	result, err := h.client.ConfirmTransaction(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionStatus handles GET /api/v1/transactions/:token/status.
func (h *Handler) GetTransactionStatus(c *gin.Context) {
	status, err := h.client.GetTransactionStatus(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// RefundTransaction handles POST /api/v1/transactions/:token/refunds.
func (h *Handler) RefundTransaction(c *gin.Context) {
	var req RefundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Invalid request body: " + err.Error(),
				Code:  "VALIDATION_ERROR",
			})
			return
		}
	}

	refund, err := h.client.RefundTransaction(c.Request.Context(), domain.RefundParams{
		TransactionID: c.Param("token"),
		Amount:        req.Amount,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, refund)
}

// HandleWebhook handles POST /webhook. The gateway's signature travels in
// the X-Signature header (or ?signature for gateways that use a query
// parameter). Always answers 200 so the gateway does not retry; the body
// reports whether the notification was authentic.
func (h *Handler) HandleWebhook(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("webhook parsing error", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	signature := c.GetHeader("X-Signature")
	if signature == "" {
		signature = c.Query("signature")
	}

	valid := h.client.ValidateWebhook(payload, signature)
	if !valid {
		h.logger.Warn("webhook signature validation failed",
			zap.String("provider", h.client.Provider()))
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "chile-payments",
		"provider": h.client.Provider(),
	})
}

// handleError maps SDK errors to HTTP responses.
func (h *Handler) handleError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, domain.ErrValidation):
		statusCode = http.StatusBadRequest
		code = "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrAuthentication):
		statusCode = http.StatusUnauthorized
		code = "AUTHENTICATION_ERROR"
	case errors.Is(err, domain.ErrTransactionNotFound):
		statusCode = http.StatusNotFound
		code = "TRANSACTION_NOT_FOUND"
	case errors.Is(err, domain.ErrTimeout):
		statusCode = http.StatusGatewayTimeout
		code = "TIMEOUT_ERROR"
	case errors.Is(err, domain.ErrProvider):
		statusCode = http.StatusBadGateway
		code = "PROVIDER_ERROR"
	}

	var sdkErr *domain.Error
	if errors.As(err, &sdkErr) && sdkErr.Code != "" {
		code = sdkErr.Code
	}

	h.logger.Error("request failed", zap.Error(err), zap.String("code", code))
	c.JSON(statusCode, ErrorResponse{Error: err.Error(), Code: code})
}
