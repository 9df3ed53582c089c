package services

import (
	"testing"

	"agrisoil-backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func testPaymentService(secret string) *PaymentService {
	return &PaymentService{
		cfg: config.PaymentConfig{
			RazorpayKeyID:     "rzp_test_key",
			RazorpayKeySecret: secret,
		},
	}
}

func TestSignatureValidKnownVector(t *testing.T) {
	s := testPaymentService("rzp_test_secret")

	// hex(HMAC-SHA256("rzp_test_secret", "order_R5aBcDeF|pay_Q9xYz123"))
	signature := "db8892a4136f2f0ac374d157bf32d2d00dc040382060cb51de498db316662f01"

	assert.True(t, s.signatureValid("order_R5aBcDeF", "pay_Q9xYz123", signature))
}

func TestSignatureValidRejectsTampering(t *testing.T) {
	s := testPaymentService("rzp_test_secret")
	signature := "db8892a4136f2f0ac374d157bf32d2d00dc040382060cb51de498db316662f01"

	assert.False(t, s.signatureValid("order_R5aBcDeF", "pay_DIFFERENT", signature))
	assert.False(t, s.signatureValid("order_DIFFERENT", "pay_Q9xYz123", signature))
	assert.False(t, s.signatureValid("order_R5aBcDeF", "pay_Q9xYz123", "deadbeef"))
	assert.False(t, testPaymentService("other_secret").signatureValid("order_R5aBcDeF", "pay_Q9xYz123", signature))
}
