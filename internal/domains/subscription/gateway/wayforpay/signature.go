package wayforpay

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

// WayForPay signs requests with HMAC-MD5 over a semicolon-joined field
// list. Field order is fixed per message type and must match the
// gateway's documentation exactly.

// Sign computes the lowercase hex HMAC-MD5 of the fields joined by ';'.
func Sign(secretKey string, fields ...string) string {
	mac := hmac.New(md5.New, []byte(secretKey))
	mac.Write([]byte(strings.Join(fields, ";")))
	return hex.EncodeToString(mac.Sum(nil))
}

// CheckoutSignature signs a purchase request:
// merchantAccount;merchantDomainName;orderReference;orderDate;amount;
// currency;productName...;productCount...;productPrice...
func CheckoutSignature(secretKey string, req *CheckoutRequest) string {
	fields := []string{
		req.MerchantAccount,
		req.MerchantDomainName,
		req.OrderReference,
		strconv.FormatInt(req.OrderDate, 10),
		req.Amount.String(),
		req.Currency,
	}
	fields = append(fields, req.ProductName...)
	for _, count := range req.ProductCount {
		fields = append(fields, strconv.Itoa(count))
	}
	for _, price := range req.ProductPrice {
		fields = append(fields, price.String())
	}
	return Sign(secretKey, fields...)
}

// CallbackSignature signs a service callback:
// merchantAccount;orderReference;amount;currency;authCode;cardPan;
// transactionStatus;reasonCode
func CallbackSignature(secretKey string, cb *Callback) string {
	return Sign(secretKey,
		cb.MerchantAccount,
		cb.OrderReference,
		cb.Amount.String(),
		cb.Currency,
		cb.AuthCode,
		cb.CardPan,
		cb.TransactionStatus,
		cb.ReasonCode.String(),
	)
}

// ResponseSignature signs the callback acknowledgement:
// orderReference;status;time
func ResponseSignature(secretKey string, resp *CallbackResponse) string {
	return Sign(secretKey,
		resp.OrderReference,
		resp.Status,
		strconv.FormatInt(resp.Time, 10),
	)
}

// VerifyCallback checks the merchantSignature the gateway sent against
// the one derived from the callback fields.
func VerifyCallback(secretKey string, cb *Callback) bool {
	if cb.MerchantSignature == "" {
		return false
	}
	expected := CallbackSignature(secretKey, cb)
	return hmac.Equal([]byte(strings.ToLower(cb.MerchantSignature)), []byte(expected))
}
