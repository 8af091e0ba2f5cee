package provider

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Operation names used in call records and metrics
const (
	OperationPaymentMethods     = "payment_methods"
	OperationPaymentRedirect    = "payment_redirect"
	OperationCallbackValidation = "callback_validation"
)

// CallRecord describes one call made through a provider
type CallRecord struct {
	Timestamp    time.Time      `json:"timestamp"`
	RequestID    string         `json:"request_id,omitempty"`
	Provider     string         `json:"provider"`
	Operation    string         `json:"operation"`
	ProjectID    int            `json:"project_id"`
	OrderID      int            `json:"order_id,omitempty"`
	Request      map[string]any `json:"request,omitempty"`
	Response     map[string]any `json:"response,omitempty"`
	ErrorCode    string         `json:"error_code,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	ProcessingMs int64          `json:"processing_ms"`
}

// CallLogger persists provider call records
type CallLogger interface {
	LogCall(ctx context.Context, record CallRecord) error
}

// NopCallLogger drops every record
type NopCallLogger struct{}

func (NopCallLogger) LogCall(context.Context, CallRecord) error { return nil }

type requestIDKey struct{}

// WithRequestID stores the request id carried into call records
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id set by WithRequestID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

var sensitiveFields = []string{"password", "sign", "ss1", "ss2", "ss3", "personcode"}

// SanitizeForLog converts v into a map and masks secrets and signatures
func SanitizeForLog(v any) map[string]any {
	if v == nil {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}

	return sanitizeMap(data)
}

func sanitizeMap(data map[string]any) map[string]any {
	sanitized := make(map[string]any, len(data))
	for key, value := range data {
		if isSensitive(key) {
			if s, ok := value.(string); ok && s == "" {
				sanitized[key] = ""
			} else {
				sanitized[key] = "***REDACTED***"
			}
			continue
		}

		if nested, ok := value.(map[string]any); ok {
			sanitized[key] = sanitizeMap(nested)
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

func isSensitive(key string) bool {
	keyLower := strings.ToLower(key)
	for _, field := range sensitiveFields {
		if strings.Contains(keyLower, field) {
			return true
		}
	}
	return false
}
