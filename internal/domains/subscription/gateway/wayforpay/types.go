package wayforpay

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Transaction statuses the service callback can carry.
const (
	StatusApproved = "Approved"
	StatusDeclined = "Declined"
)

// Callback response statuses.
const (
	ResponseAccept  = "accept"
	ResponseDecline = "decline"
)

// CheckoutRequest is the purchase payload handed to the client for the
// hosted payment page.
type CheckoutRequest struct {
	MerchantAccount    string            `json:"merchantAccount"`
	MerchantDomainName string            `json:"merchantDomainName"`
	OrderReference     string            `json:"orderReference"`
	OrderDate          int64             `json:"orderDate"`
	Amount             decimal.Decimal   `json:"amount"`
	Currency           string            `json:"currency"`
	ProductName        []string          `json:"productName"`
	ProductCount       []int             `json:"productCount"`
	ProductPrice       []decimal.Decimal `json:"productPrice"`
	MerchantSignature  string            `json:"merchantSignature"`
}

// Callback is the service URL notification the gateway posts after a
// payment attempt.
type Callback struct {
	MerchantAccount   string          `json:"merchantAccount"`
	OrderReference    string          `json:"orderReference"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	AuthCode          string          `json:"authCode"`
	CardPan           string          `json:"cardPan"`
	TransactionStatus string          `json:"transactionStatus"`
	// ReasonCode arrives as a bare number; json.Number keeps its exact
	// digits for the signature string.
	ReasonCode        json.Number `json:"reasonCode"`
	MerchantSignature string      `json:"merchantSignature"`
}

// CallbackResponse acknowledges the callback; the gateway retries until
// it receives one.
type CallbackResponse struct {
	OrderReference string `json:"orderReference"`
	Status         string `json:"status"`
	Time           int64  `json:"time"`
	Signature      string `json:"signature"`
}
