package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		var got razorpayOrderRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != "rzp_test_key" || pass != "secret" || r.URL.Path != "/v1/orders" || r.Method != http.MethodPost {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"order_9A33XWu170gUtm","entity":"order","amount":50000,"currency":"INR","receipt":"donation-1","status":"created"}`))
		}))
		defer srv.Close()
		gw := NewRazorpayGateway("rzp_test_key", "secret", srv.URL, srv.Client())

		// Act
		order, err := gw.CreateOrder(context.Background(), 50000, "INR", "donation-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, &Order{OrderId: "order_9A33XWu170gUtm", Amount: 50000, Currency: "INR"}, order)
		assert.Equal(t, razorpayOrderRequest{Amount: 50000, Currency: "INR", Receipt: "donation-1"}, got)
	})

	t.Run("Gateway Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"The amount must be atleast INR 1.00"}}`))
		}))
		defer srv.Close()
		gw := NewRazorpayGateway("rzp_test_key", "secret", srv.URL, srv.Client())

		_, err := gw.CreateOrder(context.Background(), 50, "INR", "donation-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "BAD_REQUEST_ERROR")
	})

	t.Run("Rejected Before Request", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()
		gw := NewRazorpayGateway("rzp_test_key", "secret", srv.URL, srv.Client())

		_, err := gw.CreateOrder(context.Background(), 0, "INR", "donation-1")
		assert.ErrorIs(t, err, ErrInvalidOrder)
		_, err = gw.CreateOrder(context.Background(), 100, "", "donation-1")
		assert.ErrorIs(t, err, ErrInvalidOrder)
		assert.False(t, called)
	})

	t.Run("Verifies With The Same Secret", func(t *testing.T) {
		gw := NewRazorpayGateway("rzp_test_key", "secret", "", nil)
		sig := NewRazorpayVerifier("secret").Sign("order_1", "pay_1")

		assert.True(t, gw.VerifySignature(Confirmation{OrderId: "order_1", PaymentId: "pay_1", Signature: sig}))
	})
}
