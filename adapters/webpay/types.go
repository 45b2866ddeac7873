package webpay

// Wire types for the Transbank Webpay Plus REST API (v1.2). The gateway
// uses snake_case JSON keys.

// CreateRequest is the body for POST /rswebpaytransaction/api/webpay/v1.2/transactions.
type CreateRequest struct {
	BuyOrder  string `json:"buy_order"`
	SessionID string `json:"session_id"`
	Amount    int    `json:"amount"`
	ReturnURL string `json:"return_url"`
}

// CreateResponse is the result of creating a transaction.
type CreateResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// CardDetail carries the masked card number.
type CardDetail struct {
	CardNumber string `json:"card_number"`
}

// TransactionResponse is returned by the commit (PUT) and status (GET)
// endpoints.
type TransactionResponse struct {
	VCI                string      `json:"vci"`
	Amount             int         `json:"amount"`
	Status             string      `json:"status"`
	BuyOrder           string      `json:"buy_order"`
	SessionID          string      `json:"session_id"`
	CardDetail         *CardDetail `json:"card_detail"`
	AccountingDate     string      `json:"accounting_date"`
	TransactionDate    string      `json:"transaction_date"`
	AuthorizationCode  string      `json:"authorization_code"`
	PaymentTypeCode    string      `json:"payment_type_code"`
	ResponseCode       int         `json:"response_code"`
	InstallmentsAmount int         `json:"installments_amount"`
	InstallmentsNumber int         `json:"installments_number"`
}

// RefundRequest is the body for a partial refund. Full refunds send no body.
type RefundRequest struct {
	Amount int `json:"amount"`
}

// RefundResponse is the result of a refund request.
type RefundResponse struct {
	Type              string  `json:"type"`
	AuthorizationCode string  `json:"authorization_code"`
	AuthorizationDate string  `json:"authorization_date"`
	NullifiedAmount   float64 `json:"nullified_amount"`
	Balance           float64 `json:"balance"`
	ResponseCode      int     `json:"response_code"`
}
