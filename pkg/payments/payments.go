// Package payments holds the payment-gateway contract the ledger depends on:
// creating an order for a pending donation and checking the signed confirmation
// the gateway hands back after checkout.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrInvalidOrder is returned when an order request is rejected before reaching the gateway.
var ErrInvalidOrder = errors.New("invalid order request")

// Order is the gateway's response to an order creation request.
type Order struct {
	OrderId  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Confirmation is the signed payload returned to the client after checkout.
type Confirmation struct {
	OrderId   string `json:"orderId"`
	PaymentId string `json:"paymentId"`
	Signature string `json:"signature"`
}

// SignatureVerifier checks gateway confirmations.
type SignatureVerifier interface {
	VerifySignature(c Confirmation) bool
}

// Gateway creates orders and verifies the confirmations for them.
type Gateway interface {
	SignatureVerifier
	// CreateOrder opens an order for amount minor units. receipt is echoed back
	// by the gateway and is used to tie the order to a donation.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
}

// RazorpayVerifier verifies Razorpay checkout signatures: hex(HMAC-SHA256(secret, orderId|paymentId)).
type RazorpayVerifier struct {
	secret []byte
}

// NewRazorpayVerifier creates a verifier for the given key secret.
func NewRazorpayVerifier(keySecret string) *RazorpayVerifier {
	return &RazorpayVerifier{secret: []byte(keySecret)}
}

var _ SignatureVerifier = (*RazorpayVerifier)(nil)

// Sign returns the signature the gateway would produce for the order and payment.
func (v *RazorpayVerifier) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether c carries a valid signature.
func (v *RazorpayVerifier) VerifySignature(c Confirmation) bool {
	if len(v.secret) == 0 || c.OrderId == "" || c.PaymentId == "" || c.Signature == "" {
		return false
	}
	expected := v.Sign(c.OrderId, c.PaymentId)
	return hmac.Equal([]byte(expected), []byte(c.Signature))
}
