package webpay

import (
	"context"
	"encoding/json"
	"io"
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
	client := transport.New(server.URL, ProviderName, 5*time.Second, nil)
	client.SetHeaders(map[string]string{
		"Tbk-Api-Key-Id":     TestCredentials.CommerceCode,
		"Tbk-Api-Key-Secret": TestCredentials.APIKey,
	})
	return &Adapter{credentials: TestCredentials, http: client, logger: zap.NewNop()}
}

func TestNew(t *testing.T) {
	t.Run("TestEnvironmentWithoutCredentials", func(t *testing.T) {
		adapter, err := New(domain.Config{
			Provider:    domain.ProviderWebpay,
			Environment: domain.EnvironmentTest,
		})
		require.NoError(t, err)
		assert.Equal(t, TestCredentials, adapter.credentials)
		assert.Equal(t, "Webpay", adapter.Name())
	})

	t.Run("ProductionWithoutCredentials", func(t *testing.T) {
		_, err := New(domain.Config{
			Provider:    domain.ProviderWebpay,
			Environment: domain.EnvironmentProduction,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAuthentication)
	})

	t.Run("WrongCredentialVariant", func(t *testing.T) {
		_, err := New(domain.Config{
			Provider:    domain.ProviderWebpay,
			Environment: domain.EnvironmentTest,
			Credentials: domain.GetnetCredentials{Login: "l", SecretKey: "s"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAuthentication)
	})
}

func TestCreateTransaction(t *testing.T) {
	var capturedBody map[string]any
	var capturedHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, transactionsPath, r.URL.Path)
		capturedHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))

		json.NewEncoder(w).Encode(CreateResponse{
			Token: "e9d5...",
			URL:   "https://webpay3gint.transbank.cl/webpayserver/initTransaction",
		})
	}))
	defer server.Close()

	adapter := testAdapter(t, server)

	transaction, err := adapter.CreateTransaction(context.Background(), domain.CreateTransactionParams{
		Amount:    10000,
		OrderID:   "ORD-1",
		ReturnURL: "https://x/return",
	})
	require.NoError(t, err)

	// Creation never reports a final status for this gateway.
	assert.Equal(t, domain.StatusPending, transaction.Status)
	assert.Equal(t, "e9d5...", transaction.Token)
	assert.Equal(t, "e9d5...", transaction.TransactionID)
	assert.Equal(t, 10000, transaction.Amount.Total)
	assert.Equal(t, domain.CurrencyCLP, transaction.Amount.Currency)
	assert.Equal(t, "ORD-1", transaction.OrderID)
	assert.Nil(t, transaction.ExpiresAt)

	// Wire format: snake_case keys and API-key headers on every request.
	assert.Equal(t, "ORD-1", capturedBody["buy_order"])
	assert.Equal(t, float64(10000), capturedBody["amount"])
	assert.Equal(t, "https://x/return", capturedBody["return_url"])
	assert.NotEmpty(t, capturedBody["session_id"])
	assert.Equal(t, TestCredentials.CommerceCode, capturedHeaders.Get("Tbk-Api-Key-Id"))
	assert.Equal(t, TestCredentials.APIKey, capturedHeaders.Get("Tbk-Api-Key-Secret"))
}

func TestSessionIDUnique(t *testing.T) {
	assert.NotEqual(t, newSessionID(), newSessionID())
}

func TestConfirmTransaction(t *testing.T) {
	t.Run("Approved", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, transactionsPath+"/tok-1", r.URL.Path)

			json.NewEncoder(w).Encode(TransactionResponse{
				VCI:               "TSY",
				Amount:            10000,
				Status:            "AUTHORIZED",
				BuyOrder:          "ORD-1",
				CardDetail:        &CardDetail{CardNumber: "6623"},
				AuthorizationCode: "1213",
				PaymentTypeCode:   "VN",
				ResponseCode:      0,
			})
		}))
		defer server.Close()

		adapter := testAdapter(t, server)

		result, err := adapter.ConfirmTransaction(context.Background(), "tok-1")
		require.NoError(t, err)

		assert.Equal(t, domain.StatusApproved, result.Status)
		assert.Equal(t, "ORD-1", result.OrderID)
		assert.Equal(t, "1213", result.AuthorizationCode)
		assert.Equal(t, "Transaction approved", result.Message)
		assert.Equal(t, 10000, result.Amount.Total)
		assert.Equal(t, "TSY", result.ProviderData["vci"])
		assert.Equal(t, "VN", result.ProviderData["paymentTypeCode"])
		assert.Equal(t, 0, result.ProviderData["responseCode"])
		assert.Equal(t, "6623", result.ProviderData["cardNumber"])
	})

	t.Run("Rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(TransactionResponse{
				Amount:       10000,
				Status:       "FAILED",
				BuyOrder:     "ORD-1",
				ResponseCode: -1,
			})
		}))
		defer server.Close()

		adapter := testAdapter(t, server)

		result, err := adapter.ConfirmTransaction(context.Background(), "tok-1")
		require.NoError(t, err)

		assert.Equal(t, domain.StatusRejected, result.Status)
		assert.Equal(t, "Transaction rejected (code: -1)", result.Message)
		assert.Empty(t, result.ProviderData["cardNumber"])
	})
}

func TestGetTransactionStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(TransactionResponse{Status: "INITIALIZED"})
	}))
	defer server.Close()

	adapter := testAdapter(t, server)

	status, err := adapter.GetTransactionStatus(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, status)
}

func TestRefundTransaction(t *testing.T) {
	t.Run("FullRefundSendsEmptyBody", func(t *testing.T) {
		var rawBody []byte

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, transactionsPath+"/tok-1/refunds", r.URL.Path)
			rawBody, _ = io.ReadAll(r.Body)

			json.NewEncoder(w).Encode(RefundResponse{
				Type:              "REVERSED",
				AuthorizationCode: "1213",
				NullifiedAmount:   10000,
				Balance:           0,
				ResponseCode:      0,
			})
		}))
		defer server.Close()

		adapter := testAdapter(t, server)

		refund, err := adapter.RefundTransaction(context.Background(), domain.RefundParams{
			TransactionID: "tok-1",
		})
		require.NoError(t, err)

		// Omitted amount means full refund: nothing goes on the wire and the
		// gateway reports the nullified amount back.
		assert.Empty(t, rawBody)
		assert.Equal(t, domain.RefundApproved, refund.Status)
		assert.Equal(t, 10000, refund.Amount.Total)
		assert.Equal(t, "1213", refund.RefundID)
		assert.Equal(t, "tok-1", refund.TransactionID)
	})

	t.Run("PartialRefundSendsAmount", func(t *testing.T) {
		var capturedBody map[string]any

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))
			json.NewEncoder(w).Encode(RefundResponse{
				AuthorizationCode: "1214",
				NullifiedAmount:   4000,
				ResponseCode:      0,
			})
		}))
		defer server.Close()

		adapter := testAdapter(t, server)

		amount := 4000
		refund, err := adapter.RefundTransaction(context.Background(), domain.RefundParams{
			TransactionID: "tok-1",
			Amount:        &amount,
		})
		require.NoError(t, err)

		assert.Equal(t, float64(4000), capturedBody["amount"])
		assert.Equal(t, 4000, refund.Amount.Total)
	})

	t.Run("RejectedRefund", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(RefundResponse{ResponseCode: -4})
		}))
		defer server.Close()

		adapter := testAdapter(t, server)

		refund, err := adapter.RefundTransaction(context.Background(), domain.RefundParams{TransactionID: "tok-1"})
		require.NoError(t, err)
		assert.Equal(t, domain.RefundRejected, refund.Status)
	})
}

func TestValidateWebhook(t *testing.T) {
	adapter := &Adapter{credentials: TestCredentials, logger: zap.NewNop()}

	// No asynchronous notification channel for this gateway.
	assert.True(t, adapter.ValidateWebhook(map[string]any{"anything": 1}, ""))
	assert.True(t, adapter.ValidateWebhook(nil, "sig"))
}
