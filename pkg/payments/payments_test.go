package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRazorpayVerifier(t *testing.T) {
	v := NewRazorpayVerifier("secret")
	sig := v.Sign("order_1", "pay_1")

	tests := []struct {
		name string
		c    Confirmation
		want bool
	}{
		{"Valid", Confirmation{OrderId: "order_1", PaymentId: "pay_1", Signature: sig}, true},
		{"Tampered payment", Confirmation{OrderId: "order_1", PaymentId: "pay_2", Signature: sig}, false},
		{"Bad signature", Confirmation{OrderId: "order_1", PaymentId: "pay_1", Signature: "deadbeef"}, false},
		{"Missing fields", Confirmation{Signature: sig}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.VerifySignature(tt.c))
		})
	}

	t.Run("Empty secret never verifies", func(t *testing.T) {
		empty := NewRazorpayVerifier("")
		assert.False(t, empty.VerifySignature(Confirmation{OrderId: "o", PaymentId: "p", Signature: empty.Sign("o", "p")}))
	})
}
