package opensearch

import (
	"context"
	"net/http"
	"testing"

	"github.com/mstgnz/checkout/infra/config"
	"github.com/mstgnz/checkout/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCallLogger(t *testing.T, enabled bool) (*CallLogger, *fakeCluster) {
	t.Helper()
	fc, server := newFakeCluster(t)
	fc.existing[SystemLogIndex] = true
	fc.existing["checkout-webtopay-calls"] = true

	client, err := NewClient(&config.AppConfig{OpenSearchURL: server.URL, EnableLogging: enabled}, "webtopay")
	require.NoError(t, err)

	return NewCallLogger(client), fc
}

func TestCallLogger_LogCall(t *testing.T) {
	callLogger, fc := newTestCallLogger(t, true)

	err := callLogger.LogCall(context.Background(), provider.CallRecord{
		Provider:  "webtopay",
		Operation: provider.OperationPaymentRedirect,
		ProjectID: 123,
		OrderID:   7,
	})
	require.NoError(t, err)

	body := fc.body("POST /checkout-webtopay-calls/_doc")
	assert.Contains(t, body, `"operation":"payment_redirect"`)
	assert.Contains(t, body, `"order_id":7`)
	assert.Regexp(t, `"request_id":"[0-9a-f-]{36}"`, body)
}

func TestCallLogger_LogCall_Disabled(t *testing.T) {
	callLogger, fc := newTestCallLogger(t, false)

	require.NoError(t, callLogger.LogCall(context.Background(), provider.CallRecord{Provider: "webtopay"}))
	assert.Empty(t, fc.requests)
}

func TestCallLogger_LogCall_ClusterError(t *testing.T) {
	callLogger, fc := newTestCallLogger(t, true)
	fc.mu.Lock()
	fc.status = http.StatusBadRequest
	fc.mu.Unlock()

	err := callLogger.LogCall(context.Background(), provider.CallRecord{Provider: "webtopay"})
	assert.ErrorContains(t, err, "opensearch error")
}

func TestCallLogger_LogSystemEvent(t *testing.T) {
	callLogger, fc := newTestCallLogger(t, true)

	require.NoError(t, callLogger.LogSystemEvent(context.Background(), map[string]string{"message": "started"}))
	assert.Contains(t, fc.body("POST /"+SystemLogIndex+"/_doc"), `"message":"started"`)
}

func TestCallLogger_SearchCalls(t *testing.T) {
	callLogger, fc := newTestCallLogger(t, true)
	fc.mu.Lock()
	fc.search = `{"hits":{"hits":[
		{"_source":{"provider":"webtopay","operation":"payment_methods","project_id":1,"processing_ms":12}},
		{"_source":{"provider":"webtopay","operation":"callback_validation","project_id":1,"error_code":"E_PROVIDER_ISSUE"}}
	]}}`
	fc.mu.Unlock()

	records, err := callLogger.SearchCalls(context.Background(), "webtopay", CallFilter{ProjectID: 1, Operation: "payment_methods"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(12), records[0].ProcessingMs)
	assert.Equal(t, "E_PROVIDER_ISSUE", records[1].ErrorCode)

	query := fc.body("POST /checkout-webtopay-calls/_search")
	assert.Contains(t, query, `"project_id":1`)
	assert.Contains(t, query, `"operation":"payment_methods"`)
	assert.Contains(t, query, `"size":100`)
}

func TestCallLogger_SearchCalls_Disabled(t *testing.T) {
	callLogger, _ := newTestCallLogger(t, false)

	_, err := callLogger.SearchCalls(context.Background(), "webtopay", CallFilter{})
	assert.ErrorIs(t, err, ErrLoggingDisabled)
}

func TestCallLogger_GetProviderStats(t *testing.T) {
	callLogger, fc := newTestCallLogger(t, true)
	fc.mu.Lock()
	fc.search = `{
		"hits":{"total":{"value":10}},
		"aggregations":{
			"error_count":{"doc_count":2},
			"avg_processing_time":{"value":35.5},
			"operations":{"buckets":[{"key":"payment_methods","doc_count":6},{"key":"payment_redirect","doc_count":4}]}
		}
	}`
	fc.mu.Unlock()

	stats, err := callLogger.GetProviderStats(context.Background(), "webtopay", 24)
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(2), stats.Errors)
	assert.Equal(t, 35.5, stats.AvgProcessingMs)
	assert.Equal(t, map[string]int64{"payment_methods": 6, "payment_redirect": 4}, stats.ByOperation)
	assert.Contains(t, fc.body("POST /checkout-webtopay-calls/_search"), `"now-24h"`)
}

func TestBuildCallQuery(t *testing.T) {
	assert.Equal(t, map[string]any{"match_all": map[string]any{}}, buildCallQuery(CallFilter{}))

	query := buildCallQuery(CallFilter{ErrorsOnly: true, Hours: 2, OrderID: 9})
	must := query["bool"].(map[string]any)["must"].([]map[string]any)
	assert.Len(t, must, 3)
}
