package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mstgnz/checkout/infra/opensearch"
	"github.com/mstgnz/checkout/infra/response"
	"github.com/mstgnz/checkout/provider"
)

// LoggerInterface defines the call log queries the handlers need
type LoggerInterface interface {
	SearchCalls(ctx context.Context, providerName string, filter opensearch.CallFilter) ([]provider.CallRecord, error)
	GetRecentErrors(ctx context.Context, providerName string, hours int) ([]provider.CallRecord, error)
	GetProviderStats(ctx context.Context, providerName string, hours int) (*opensearch.CallStats, error)
}

// LogsHandler handles call log related HTTP requests
type LogsHandler struct {
	logger LoggerInterface
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(logger LoggerInterface) *LogsHandler {
	return &LogsHandler{logger: logger}
}

// ListLogs lists provider call records with optional filters
func (h *LogsHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	providerName := chi.URLParam(r, "provider")
	query := r.URL.Query()

	filter := opensearch.CallFilter{
		Operation:  query.Get("operation"),
		ErrorsOnly: query.Get("errorsOnly") == "true",
		Hours:      parseHours(query.Get("hours")),
	}
	for key, target := range map[string]*int{"projectId": &filter.ProjectID, "orderId": &filter.OrderID, "size": &filter.Size} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			response.Error(w, http.StatusBadRequest, "Invalid "+key+" parameter", err)
			return
		}
		*target = value
	}

	logs, err := h.logger.SearchCalls(ctx, providerName, filter)
	if err != nil {
		writeLogsError(w, "Failed to search logs", err)
		return
	}

	response.Success(w, http.StatusOK, "Logs retrieved successfully", map[string]any{
		"provider": providerName,
		"filters": map[string]any{
			"hours":      filter.Hours,
			"projectId":  filter.ProjectID,
			"orderId":    filter.OrderID,
			"operation":  filter.Operation,
			"errorsOnly": filter.ErrorsOnly,
		},
		"count": len(logs),
		"logs":  logs,
	})
}

// GetErrorLogs retrieves recent failed calls of a provider
func (h *LogsHandler) GetErrorLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	providerName := chi.URLParam(r, "provider")
	hours := parseHours(r.URL.Query().Get("hours"))

	logs, err := h.logger.GetRecentErrors(ctx, providerName, hours)
	if err != nil {
		writeLogsError(w, "Failed to get error logs", err)
		return
	}

	response.Success(w, http.StatusOK, "Error logs retrieved successfully", map[string]any{
		"provider": providerName,
		"hours":    hours,
		"count":    len(logs),
		"logs":     logs,
	})
}

// GetLogStats retrieves call statistics of a provider
func (h *LogsHandler) GetLogStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	providerName := chi.URLParam(r, "provider")
	hours := parseHours(r.URL.Query().Get("hours"))

	stats, err := h.logger.GetProviderStats(ctx, providerName, hours)
	if err != nil {
		writeLogsError(w, "Failed to retrieve log statistics", err)
		return
	}

	response.Success(w, http.StatusOK, "Log statistics retrieved successfully", map[string]any{
		"provider": providerName,
		"hours":    hours,
		"stats":    stats,
	})
}

// parseHours reads the time window, 24 hours by default and at most 7 days
func parseHours(raw string) int {
	if h, err := strconv.Atoi(raw); err == nil && h > 0 && h <= 168 {
		return h
	}
	return 24
}

func writeLogsError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, opensearch.ErrLoggingDisabled) {
		response.Error(w, http.StatusServiceUnavailable, "Logging service not available", err)
		return
	}
	response.Error(w, http.StatusInternalServerError, message, err)
}
