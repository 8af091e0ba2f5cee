package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mstgnz/checkout/infra/opensearch"
	"github.com/mstgnz/checkout/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCallLogger struct {
	filter   opensearch.CallFilter
	hours    int
	provider string
	records  []provider.CallRecord
	stats    *opensearch.CallStats
	err      error
}

func (m *mockCallLogger) SearchCalls(ctx context.Context, providerName string, filter opensearch.CallFilter) ([]provider.CallRecord, error) {
	m.provider, m.filter = providerName, filter
	return m.records, m.err
}

func (m *mockCallLogger) GetRecentErrors(ctx context.Context, providerName string, hours int) ([]provider.CallRecord, error) {
	m.provider, m.hours = providerName, hours
	return m.records, m.err
}

func (m *mockCallLogger) GetProviderStats(ctx context.Context, providerName string, hours int) (*opensearch.CallStats, error) {
	m.provider, m.hours = providerName, hours
	return m.stats, m.err
}

func TestLogsHandler_ListLogs(t *testing.T) {
	logs := &mockCallLogger{records: []provider.CallRecord{{Operation: provider.OperationPaymentRedirect, OrderID: 42}}}
	h := NewLogsHandler(logs)

	w := httptest.NewRecorder()
	h.ListLogs(w, newRequest(http.MethodGet, "/v1/logs/webtopay?projectId=123&orderId=42&operation=payment_redirect&errorsOnly=true&hours=48&size=10", "", map[string]string{"provider": "webtopay"}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "webtopay", logs.provider)
	assert.Equal(t, opensearch.CallFilter{
		ProjectID:  123,
		OrderID:    42,
		Operation:  "payment_redirect",
		ErrorsOnly: true,
		Hours:      48,
		Size:       10,
	}, logs.filter)
	assert.EqualValues(t, 1, decodeResponse(t, w).Data.(map[string]any)["count"])
}

func TestLogsHandler_ListLogs_BadParameter(t *testing.T) {
	logs := &mockCallLogger{}

	w := httptest.NewRecorder()
	NewLogsHandler(logs).ListLogs(w, newRequest(http.MethodGet, "/v1/logs/webtopay?projectId=abc", "", map[string]string{"provider": "webtopay"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, logs.provider)
}

func TestLogsHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"disabled", opensearch.ErrLoggingDisabled, http.StatusServiceUnavailable},
		{"search failure", errors.New("cluster down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLogsHandler(&mockCallLogger{err: tt.err})
			params := map[string]string{"provider": "webtopay"}

			for _, handle := range []http.HandlerFunc{h.ListLogs, h.GetErrorLogs, h.GetLogStats} {
				w := httptest.NewRecorder()
				handle(w, newRequest(http.MethodGet, "/", "", params))
				assert.Equal(t, tt.status, w.Code)
			}
		})
	}
}

func TestLogsHandler_GetErrorLogsAndStats(t *testing.T) {
	logs := &mockCallLogger{stats: &opensearch.CallStats{Total: 10, Errors: 2}}
	h := NewLogsHandler(logs)
	params := map[string]string{"provider": "webtopay"}

	w := httptest.NewRecorder()
	h.GetErrorLogs(w, newRequest(http.MethodGet, "/?hours=1000", "", params))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 24, logs.hours, "out of range hours fall back to the default")

	w = httptest.NewRecorder()
	h.GetLogStats(w, newRequest(http.MethodGet, "/?hours=6", "", params))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6, logs.hours)
	stats := decodeResponse(t, w).Data.(map[string]any)["stats"].(map[string]any)
	assert.EqualValues(t, 10, stats["total"])
}

func TestParseHours(t *testing.T) {
	assert.Equal(t, 24, parseHours(""))
	assert.Equal(t, 24, parseHours("0"))
	assert.Equal(t, 168, parseHours("168"))
	assert.Equal(t, 24, parseHours("169"))
	assert.Equal(t, 3, parseHours("3"))
}
