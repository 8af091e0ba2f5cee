package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
}

func TestSanitizeForLog(t *testing.T) {
	request := PaymentCallbackValidationRequest{
		ProjectID:       1,
		ProjectPassword: "secret",
		Data:            "payload",
		SS1:             "abc",
	}

	sanitized := SanitizeForLog(request)

	assert.Equal(t, "***REDACTED***", sanitized["projectPassword"])
	assert.Equal(t, "***REDACTED***", sanitized["ss1"])
	assert.Equal(t, "payload", sanitized["data"])
	assert.EqualValues(t, 1, sanitized["projectId"])
	_, hasSS2 := sanitized["ss2"]
	assert.False(t, hasSS2, "omitted fields stay omitted")
}

func TestSanitizeForLog_Nested(t *testing.T) {
	sanitized := SanitizeForLog(map[string]any{
		"order":  map[string]any{"personCode": "3900101", "orderId": 5},
		"sign":   "",
		"amount": 100,
	})

	order := sanitized["order"].(map[string]any)
	assert.Equal(t, "***REDACTED***", order["personCode"])
	assert.EqualValues(t, 5, order["orderId"])
	assert.Equal(t, "", sanitized["sign"])
}

func TestSanitizeForLog_Nil(t *testing.T) {
	assert.Nil(t, SanitizeForLog(nil))
}

func TestNopCallLogger(t *testing.T) {
	assert.NoError(t, NopCallLogger{}.LogCall(context.Background(), CallRecord{}))
}
