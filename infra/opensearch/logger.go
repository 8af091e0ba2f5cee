package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mstgnz/checkout/provider"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// ErrLoggingDisabled is returned by queries when OpenSearch logging is off
var ErrLoggingDisabled = errors.New("logging is disabled")

// CallFilter narrows a call record search
type CallFilter struct {
	ProjectID  int
	OrderID    int
	Operation  string
	ErrorsOnly bool
	Hours      int
	Size       int
}

// CallLogger writes provider call records and system events to OpenSearch
type CallLogger struct {
	client *Client
}

// NewCallLogger creates a new OpenSearch call logger
func NewCallLogger(client *Client) *CallLogger {
	return &CallLogger{
		client: client,
	}
}

// LogCall indexes one provider call record
func (l *CallLogger) LogCall(ctx context.Context, record provider.CallRecord) error {
	if !l.client.IsEnabled() {
		return nil
	}

	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	if record.RequestID == "" {
		record.RequestID = uuid.New().String()
	}

	return l.index(ctx, l.client.GetCallIndexName(record.Provider), record)
}

// LogSystemEvent indexes a system log entry
func (l *CallLogger) LogSystemEvent(ctx context.Context, entry any) error {
	if !l.client.IsEnabled() {
		return nil
	}
	return l.index(ctx, SystemLogIndex, entry)
}

func (l *CallLogger) index(ctx context.Context, indexName string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index: indexName,
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, l.client.GetClient())
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch error: %s", res.String())
	}

	return nil
}

// SearchCalls returns the newest call records of a provider matching filter
func (l *CallLogger) SearchCalls(ctx context.Context, providerName string, filter CallFilter) ([]provider.CallRecord, error) {
	if !l.client.IsEnabled() {
		return nil, ErrLoggingDisabled
	}

	size := filter.Size
	if size <= 0 || size > 500 {
		size = 100
	}

	searchQuery := map[string]any{
		"query": buildCallQuery(filter),
		"sort": []map[string]any{
			{"timestamp": map[string]string{"order": "desc"}},
		},
		"size": size,
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source provider.CallRecord `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := l.search(ctx, providerName, searchQuery, &searchResult); err != nil {
		return nil, err
	}

	records := make([]provider.CallRecord, len(searchResult.Hits.Hits))
	for i, hit := range searchResult.Hits.Hits {
		records[i] = hit.Source
	}

	return records, nil
}

// GetRecentErrors returns the failed calls of the last hours
func (l *CallLogger) GetRecentErrors(ctx context.Context, providerName string, hours int) ([]provider.CallRecord, error) {
	return l.SearchCalls(ctx, providerName, CallFilter{ErrorsOnly: true, Hours: hours})
}

// CallStats summarizes the calls of a provider
type CallStats struct {
	Total           int64            `json:"total"`
	Errors          int64            `json:"errors"`
	AvgProcessingMs float64          `json:"avg_processing_ms"`
	ByOperation     map[string]int64 `json:"by_operation"`
}

// GetProviderStats aggregates the calls of the last hours
func (l *CallLogger) GetProviderStats(ctx context.Context, providerName string, hours int) (*CallStats, error) {
	if !l.client.IsEnabled() {
		return nil, ErrLoggingDisabled
	}

	aggQuery := map[string]any{
		"query": buildCallQuery(CallFilter{Hours: hours}),
		"aggs": map[string]any{
			"error_count": map[string]any{
				"filter": map[string]any{
					"exists": map[string]any{"field": "error_code"},
				},
			},
			"avg_processing_time": map[string]any{
				"avg": map[string]any{"field": "processing_ms"},
			},
			"operations": map[string]any{
				"terms": map[string]any{"field": "operation", "size": 10},
			},
		},
		"size":             0,
		"track_total_hits": true,
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
		} `json:"hits"`
		Aggregations struct {
			ErrorCount struct {
				DocCount int64 `json:"doc_count"`
			} `json:"error_count"`
			AvgProcessingTime struct {
				Value *float64 `json:"value"`
			} `json:"avg_processing_time"`
			Operations struct {
				Buckets []struct {
					Key      string `json:"key"`
					DocCount int64  `json:"doc_count"`
				} `json:"buckets"`
			} `json:"operations"`
		} `json:"aggregations"`
	}
	if err := l.search(ctx, providerName, aggQuery, &result); err != nil {
		return nil, err
	}

	stats := &CallStats{
		Total:       result.Hits.Total.Value,
		Errors:      result.Aggregations.ErrorCount.DocCount,
		ByOperation: make(map[string]int64, len(result.Aggregations.Operations.Buckets)),
	}
	if avg := result.Aggregations.AvgProcessingTime.Value; avg != nil {
		stats.AvgProcessingMs = *avg
	}
	for _, bucket := range result.Aggregations.Operations.Buckets {
		stats.ByOperation[bucket.Key] = bucket.DocCount
	}

	return stats, nil
}

func (l *CallLogger) search(ctx context.Context, providerName string, query map[string]any, out any) error {
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{l.client.GetCallIndexName(providerName)},
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, l.client.GetClient())
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch search error: %s", res.String())
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode search results: %w", err)
	}
	return nil
}

func buildCallQuery(filter CallFilter) map[string]any {
	var must []map[string]any

	if filter.Hours > 0 {
		must = append(must, map[string]any{
			"range": map[string]any{
				"timestamp": map[string]any{"gte": fmt.Sprintf("now-%dh", filter.Hours)},
			},
		})
	}
	if filter.ProjectID > 0 {
		must = append(must, map[string]any{"term": map[string]any{"project_id": filter.ProjectID}})
	}
	if filter.OrderID > 0 {
		must = append(must, map[string]any{"term": map[string]any{"order_id": filter.OrderID}})
	}
	if filter.Operation != "" {
		must = append(must, map[string]any{"term": map[string]any{"operation": filter.Operation}})
	}
	if filter.ErrorsOnly {
		must = append(must, map[string]any{"exists": map[string]any{"field": "error_code"}})
	}

	if len(must) == 0 {
		return map[string]any{"match_all": map[string]any{}}
	}
	return map[string]any{"bool": map[string]any{"must": must}}
}
