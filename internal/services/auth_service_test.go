package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOTPFlowWithoutRedis(t *testing.T) {
	// The server runs with redisClient == nil when Redis is down; the
	// OTP flow must refuse cleanly instead of dereferencing it.
	svc := NewAuthService(nil, nil, nil, nil, nil)

	assert.NotPanics(t, func() {
		assert.Error(t, svc.ForgotPassword("farmer@example.com"))
		assert.Error(t, svc.VerifyOTP("farmer@example.com", "123456"))
		assert.Error(t, svc.ResetPassword("farmer@example.com", "123456", "newpassword"))
	})
}
