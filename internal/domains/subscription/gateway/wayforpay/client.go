package wayforpay

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the merchant credentials. The gateway never gets polled:
// the client only builds checkout payloads and verifies callbacks.
type Config struct {
	MerchantAccount string
	MerchantDomain  string
	SecretKey       string
}

func (c *Config) Validate() error {
	if c.MerchantAccount == "" {
		return errors.New("merchant account is required")
	}
	if c.MerchantDomain == "" {
		return errors.New("merchant domain is required")
	}
	if c.SecretKey == "" {
		return errors.New("secret key is required")
	}
	return nil
}

type Client struct {
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid WayForPay config: %w", err)
	}
	return &Client{config: config}, nil
}

// BuildCheckout assembles a signed purchase payload for the hosted
// payment page.
func (c *Client) BuildCheckout(orderReference, productName string, amount decimal.Decimal, now time.Time) *CheckoutRequest {
	req := &CheckoutRequest{
		MerchantAccount:    c.config.MerchantAccount,
		MerchantDomainName: c.config.MerchantDomain,
		OrderReference:     orderReference,
		OrderDate:          now.Unix(),
		Amount:             amount,
		Currency:           "UAH",
		ProductName:        []string{productName},
		ProductCount:       []int{1},
		ProductPrice:       []decimal.Decimal{amount},
	}
	req.MerchantSignature = CheckoutSignature(c.config.SecretKey, req)
	return req
}

// VerifyCallback checks the gateway's signature on a callback.
func (c *Client) VerifyCallback(cb *Callback) bool {
	return VerifyCallback(c.config.SecretKey, cb)
}

// BuildResponse assembles the signed acknowledgement the gateway
// expects in reply to a callback.
func (c *Client) BuildResponse(orderReference, status string, now time.Time) *CallbackResponse {
	resp := &CallbackResponse{
		OrderReference: orderReference,
		Status:         status,
		Time:           now.Unix(),
	}
	resp.Signature = ResponseSignature(c.config.SecretKey, resp)
	return resp
}
