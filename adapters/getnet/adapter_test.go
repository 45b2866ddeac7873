package getnet

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
	"github.com/CJaimeDev/chile-payments-sdk/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAdapter(t *testing.T, server *httptest.Server) *Adapter {
	t.Helper()
	return &Adapter{
		credentials: TestCredentials,
		http:        transport.New(server.URL, ProviderName, 5*time.Second, nil),
		logger:      zap.NewNop(),
	}
}

func TestNew(t *testing.T) {
	t.Run("TestEnvironmentWithoutCredentials", func(t *testing.T) {
		adapter, err := New(domain.Config{
			Provider:    domain.ProviderGetnet,
			Environment: domain.EnvironmentTest,
		})
		require.NoError(t, err)
		assert.Equal(t, TestCredentials, adapter.credentials)
		assert.Equal(t, "Getnet", adapter.Name())
	})

	t.Run("ProductionWithoutCredentials", func(t *testing.T) {
		_, err := New(domain.Config{
			Provider:    domain.ProviderGetnet,
			Environment: domain.EnvironmentProduction,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAuthentication)
	})

	t.Run("WrongCredentialVariant", func(t *testing.T) {
		_, err := New(domain.Config{
			Provider:    domain.ProviderGetnet,
			Environment: domain.EnvironmentTest,
			Credentials: domain.WebpayCredentials{CommerceCode: "1", APIKey: "2"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAuthentication)
	})
}

func TestCreateTransaction(t *testing.T) {
	var captured CreateSessionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/session/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(CreateSessionResponse{
			Status:     StatusDetail{Status: "OK"},
			RequestID:  4321,
			ProcessURL: "https://checkout.test.getnet.cl/session/4321/abc",
		})
	}))
	defer server.Close()

	adapter := testAdapter(t, server)

	transaction, err := adapter.CreateTransaction(context.Background(), domain.CreateTransactionParams{
		Amount:    10000,
		OrderID:   "ORD-1",
		ReturnURL: "https://shop.example/return",
		Email:     "buyer@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "4321", transaction.Token)
	assert.Equal(t, "4321", transaction.TransactionID)
	assert.Equal(t, "https://checkout.test.getnet.cl/session/4321/abc", transaction.PaymentURL)
	assert.Equal(t, domain.Amount{Currency: domain.CurrencyCLP, Total: 10000}, transaction.Amount)
	assert.Equal(t, "ORD-1", transaction.OrderID)
	assert.Equal(t, domain.StatusPending, transaction.Status)
	require.NotNil(t, transaction.ExpiresAt)

	// Wire assertions
	assert.Equal(t, "es_CL", captured.Locale)
	assert.Equal(t, TestCredentials.Login, captured.Auth.Login)
	assert.NotEmpty(t, captured.Auth.TranKey)
	assert.NotEmpty(t, captured.Auth.Nonce)
	assert.NotEmpty(t, captured.Auth.Seed)
	assert.Equal(t, "ORD-1", captured.Payment.Reference)
	assert.Equal(t, "Payment", captured.Payment.Description)
	assert.Equal(t, AmountDetail{Currency: "CLP", Total: 10000}, captured.Payment.Amount)
	assert.Equal(t, "https://shop.example/return", captured.ReturnURL)
	assert.Equal(t, "127.0.0.1", captured.IPAddress)
	assert.Equal(t, "ChilePaymentsSDK/1.0", captured.UserAgent)
	require.NotNil(t, captured.Buyer)
	assert.Equal(t, "buyer@example.com", captured.Buyer.Email)

	_, err = time.Parse(isoOffsetLayout, captured.Expiration)
	assert.NoError(t, err)
}

func sessionResponse(status string, withPayment bool) SessionResponse {
	response := SessionResponse{
		RequestID: 4321,
		Status:    StatusDetail{Status: status, Reason: "00", Message: "La petición ha sido aprobada exitosamente"},
		Request: SessionRequest{
			Locale: "es_CL",
			Payment: PaymentRequest{
				Reference:   "ORD-1",
				Description: "Payment",
				Amount:      AmountDetail{Currency: "CLP", Total: 10000},
			},
		},
	}
	if withPayment {
		info := PaymentInfo{
			Status:            StatusDetail{Status: status},
			InternalReference: 999888,
			Reference:         "ORD-1",
			PaymentMethod:     "visa",
			Franchise:         "CR_VS",
			Authorization:     "123456",
			Receipt:           "240101010101",
		}
		info.Amount.From = AmountDetail{Currency: "CLP", Total: 10000}
		response.Payment = []PaymentInfo{info}
	}
	return response
}

func TestConfirmTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/session/4321", r.URL.Path)

		var req QuerySessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Auth.TranKey)

		json.NewEncoder(w).Encode(sessionResponse("APPROVED", true))
	}))
	defer server.Close()

	adapter := testAdapter(t, server)

	result, err := adapter.ConfirmTransaction(context.Background(), "4321")
	require.NoError(t, err)

	assert.Equal(t, "4321", result.Token)
	assert.Equal(t, "4321", result.TransactionID)
	assert.Equal(t, domain.StatusApproved, result.Status)
	assert.Equal(t, 10000, result.Amount.Total)
	assert.Equal(t, "ORD-1", result.OrderID)
	assert.Equal(t, "123456", result.AuthorizationCode)
	assert.Equal(t, "La petición ha sido aprobada exitosamente", result.Message)
	assert.Equal(t, "visa", result.ProviderData["paymentMethod"])
	assert.Equal(t, "CR_VS", result.ProviderData["franchise"])
	assert.Equal(t, "240101010101", result.ProviderData["receipt"])
}

func TestConfirmTransactionMessageFallback(t *testing.T) {
	response := sessionResponse("PENDING", false)
	response.Status.Message = ""
	response.Status.Reason = "PT"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	adapter := testAdapter(t, server)

	result, err := adapter.ConfirmTransaction(context.Background(), "4321")
	require.NoError(t, err)
	assert.Equal(t, "PT", result.Message)
	assert.Equal(t, domain.StatusPending, result.Status)
	assert.Empty(t, result.AuthorizationCode)
}

func TestGetTransactionStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sessionResponse("REJECTED", false))
	}))
	defer server.Close()

	adapter := testAdapter(t, server)

	status, err := adapter.GetTransactionStatus(context.Background(), "4321")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, status)
}

func TestRefundTransaction(t *testing.T) {
	t.Run("FullRefundResolvesInternalReference", func(t *testing.T) {
		var reverseReq ReverseRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/session/4321":
				json.NewEncoder(w).Encode(sessionResponse("APPROVED", true))
			case "/api/reverse":
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reverseReq))
				json.NewEncoder(w).Encode(ReverseResponse{
					Status: StatusDetail{Status: "APPROVED"},
				})
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		}))
		defer server.Close()

		adapter := testAdapter(t, server)

		refund, err := adapter.RefundTransaction(context.Background(), domain.RefundParams{
			TransactionID: "4321",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(999888), reverseReq.InternalReference)
		assert.NotEmpty(t, reverseReq.Auth.TranKey)
		assert.Equal(t, "999888", refund.RefundID)
		assert.Equal(t, "4321", refund.TransactionID)
		assert.Equal(t, domain.RefundApproved, refund.Status)
		// No amount supplied: defaults to the original payment amount.
		assert.Equal(t, 10000, refund.Amount.Total)
	})

	t.Run("PartialAmountEchoed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/session/4321":
				json.NewEncoder(w).Encode(sessionResponse("APPROVED", true))
			case "/api/reverse":
				json.NewEncoder(w).Encode(ReverseResponse{Status: StatusDetail{Status: "APPROVED"}})
			}
		}))
		defer server.Close()

		adapter := testAdapter(t, server)

		amount := 5000
		refund, err := adapter.RefundTransaction(context.Background(), domain.RefundParams{
			TransactionID: "4321",
			Amount:        &amount,
		})
		require.NoError(t, err)
		assert.Equal(t, 5000, refund.Amount.Total)
	})

	t.Run("NoPaymentDetail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(sessionResponse("PENDING", false))
		}))
		defer server.Close()

		adapter := testAdapter(t, server)

		_, err := adapter.RefundTransaction(context.Background(), domain.RefundParams{TransactionID: "4321"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})

	t.Run("RejectedReversal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/session/4321":
				json.NewEncoder(w).Encode(sessionResponse("APPROVED", true))
			case "/api/reverse":
				json.NewEncoder(w).Encode(ReverseResponse{Status: StatusDetail{Status: "FAILED"}})
			}
		}))
		defer server.Close()

		adapter := testAdapter(t, server)

		refund, err := adapter.RefundTransaction(context.Background(), domain.RefundParams{TransactionID: "4321"})
		require.NoError(t, err)
		// Anything short of an approved reversal reports rejected.
		assert.Equal(t, domain.RefundRejected, refund.Status)
	})
}

func TestValidateWebhook(t *testing.T) {
	adapter := &Adapter{credentials: TestCredentials, logger: zap.NewNop()}

	payload := map[string]any{
		"requestId": float64(123),
		"status": map[string]any{
			"status": "APPROVED",
			"date":   "2024-01-01T00:00:00Z",
		},
	}

	h := sha1.Sum([]byte("123" + "APPROVED" + "2024-01-01T00:00:00Z" + TestCredentials.SecretKey))
	valid := hex.EncodeToString(h[:])

	t.Run("ValidSignature", func(t *testing.T) {
		assert.True(t, adapter.ValidateWebhook(payload, valid))
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		assert.False(t, adapter.ValidateWebhook(payload, "deadbeef"))
	})

	t.Run("MissingSignature", func(t *testing.T) {
		assert.False(t, adapter.ValidateWebhook(payload, ""))
	})

	t.Run("MissingFields", func(t *testing.T) {
		assert.False(t, adapter.ValidateWebhook(map[string]any{"requestId": float64(123)}, valid))
		assert.False(t, adapter.ValidateWebhook(map[string]any{}, valid))
	})
}
