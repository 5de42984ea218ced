package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultRazorpayBaseURL is the Razorpay REST API root.
const DefaultRazorpayBaseURL = "https://api.razorpay.com"

// RazorpayGateway creates orders through the Razorpay Orders API and verifies
// checkout signatures with the same key secret.
type RazorpayGateway struct {
	*RazorpayVerifier
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

var _ Gateway = (*RazorpayGateway)(nil)

// NewRazorpayGateway creates a gateway for the given API key pair. An empty
// baseURL selects DefaultRazorpayBaseURL; a nil client gets a 10s timeout.
func NewRazorpayGateway(keyID, keySecret, baseURL string, client *http.Client) *RazorpayGateway {
	if baseURL == "" {
		baseURL = DefaultRazorpayBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RazorpayGateway{
		RazorpayVerifier: NewRazorpayVerifier(keySecret),
		keyID:            keyID,
		keySecret:        keySecret,
		baseURL:          strings.TrimRight(baseURL, "/"),
		client:           client,
	}
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type razorpayOrder struct {
	Id       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder opens a Razorpay order. Razorpay caps receipts at 40 characters,
// which a UUID donation id fits.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidOrder, amount)
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrInvalidOrder)
	}
	if len(receipt) > 40 {
		return nil, fmt.Errorf("%w: receipt %q is longer than 40 characters", ErrInvalidOrder, receipt)
	}

	body, err := json.Marshal(razorpayOrderRequest{Amount: amount, Currency: currency, Receipt: receipt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr razorpayError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error.Code == "" {
			return nil, fmt.Errorf("razorpay order request failed with status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("razorpay order request failed with status %d: %s: %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Description)
	}

	var created razorpayOrder
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode razorpay order: %w", err)
	}
	if created.Id == "" {
		return nil, fmt.Errorf("razorpay returned an order without an id")
	}
	return &Order{OrderId: created.Id, Amount: created.Amount, Currency: created.Currency}, nil
}
