package getnet

// Wire types for the Getnet web checkout API. Field names follow the
// gateway's camelCase JSON convention.

// Auth is the per-request authentication block.
type Auth struct {
	Login   string `json:"login"`
	TranKey string `json:"tranKey"`
	Nonce   string `json:"nonce"`
	Seed    string `json:"seed"`
}

// Buyer holds optional buyer identification for a session.
type Buyer struct {
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
	Email    string `json:"email,omitempty"`
	Document string `json:"document,omitempty"`
}

// AmountDetail is a monetary value on the wire.
type AmountDetail struct {
	Currency string `json:"currency"`
	Total    int    `json:"total"`
}

// PaymentRequest describes what the session charges.
type PaymentRequest struct {
	Reference   string       `json:"reference"`
	Description string       `json:"description"`
	Amount      AmountDetail `json:"amount"`
}

// CreateSessionRequest is the body for POST /api/session/.
type CreateSessionRequest struct {
	Locale     string         `json:"locale"`
	Auth       Auth           `json:"auth"`
	Buyer      *Buyer         `json:"buyer,omitempty"`
	Payment    PaymentRequest `json:"payment"`
	Expiration string         `json:"expiration"`
	ReturnURL  string         `json:"returnUrl"`
	IPAddress  string         `json:"ipAddress"`
	UserAgent  string         `json:"userAgent"`
}

// StatusDetail is the gateway's status envelope, present on every response.
type StatusDetail struct {
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// CreateSessionResponse is the result of creating a session.
type CreateSessionResponse struct {
	Status     StatusDetail `json:"status"`
	RequestID  int64        `json:"requestId"`
	ProcessURL string       `json:"processUrl"`
}

// SessionRequest echoes back what the session was created with.
type SessionRequest struct {
	Locale  string         `json:"locale"`
	Payment PaymentRequest `json:"payment"`
}

// PaymentInfo is one entry of the session's payment list: the detail of an
// authorized (or attempted) payment.
type PaymentInfo struct {
	Status            StatusDetail `json:"status"`
	InternalReference int64        `json:"internalReference"`
	Reference         string       `json:"reference"`
	PaymentMethod     string       `json:"paymentMethod"`
	Franchise         string       `json:"franchise"`
	Amount            struct {
		From AmountDetail `json:"from"`
		To   AmountDetail `json:"to"`
	} `json:"amount"`
	Authorization string `json:"authorization"`
	Receipt       string `json:"receipt"`
}

// SessionResponse is the result of querying a session.
type SessionResponse struct {
	RequestID int64          `json:"requestId"`
	Status    StatusDetail   `json:"status"`
	Request   SessionRequest `json:"request"`
	Payment   []PaymentInfo  `json:"payment"`
}

// QuerySessionRequest is the body for POST /api/session/{requestId}.
type QuerySessionRequest struct {
	Auth Auth `json:"auth"`
}

// ReverseRequest is the body for POST /api/reverse.
type ReverseRequest struct {
	Auth              Auth  `json:"auth"`
	InternalReference int64 `json:"internalReference"`
}

// ReverseResponse is the result of a reversal.
type ReverseResponse struct {
	Status  StatusDetail `json:"status"`
	Payment *struct {
		Status            StatusDetail `json:"status"`
		InternalReference int64        `json:"internalReference"`
		Amount            struct {
			From AmountDetail `json:"from"`
		} `json:"amount"`
	} `json:"payment"`
}
