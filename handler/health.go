package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/mstgnz/checkout/infra/response"
	"github.com/mstgnz/checkout/provider"
)

// Pinger is a dependency that can report its availability
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheStatsProvider exposes the payment methods cache statistics
type CacheStatsProvider interface {
	ProviderName() string
	CacheStats() (provider.CacheStats, bool)
}

// HealthHandler handles health check requests
type HealthHandler struct {
	database    Pinger
	openSearch  Pinger
	service     CacheStatsProvider
	version     string
	environment string
	startTime   time.Time
}

// HealthStatus represents overall system health
type HealthStatus struct {
	Status      string                    `json:"status"`
	Version     string                    `json:"version"`
	Timestamp   time.Time                 `json:"timestamp"`
	Uptime      string                    `json:"uptime"`
	Environment string                    `json:"environment"`
	Provider    string                    `json:"provider,omitempty"`
	Services    map[string]*ServiceHealth `json:"services"`
	Cache       *provider.CacheStats      `json:"cache,omitempty"`
	System      *SystemHealth             `json:"system"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status       string `json:"status"`
	Healthy      bool   `json:"healthy"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// SystemHealth represents process resource usage
type SystemHealth struct {
	Alloc      string `json:"alloc"`
	Sys        string `json:"sys"`
	GCRuns     uint32 `json:"gc_runs"`
	GoRoutines int    `json:"goroutines"`
}

// NewHealthHandler creates a new health handler. openSearch may be nil when call logging is off.
func NewHealthHandler(database, openSearch Pinger, service CacheStatsProvider, version, environment string) *HealthHandler {
	return &HealthHandler{
		database:    database,
		openSearch:  openSearch,
		service:     service,
		version:     version,
		environment: environment,
		startTime:   time.Now(),
	}
}

// CheckHealth reports the state of the service and its dependencies.
// A broken database makes the service unhealthy, a broken OpenSearch only degraded.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:      "healthy",
		Version:     h.version,
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Environment: h.environment,
		Services: map[string]*ServiceHealth{
			"database":   checkPinger(ctx, h.database),
			"opensearch": checkPinger(ctx, h.openSearch),
		},
		System: checkSystemHealth(),
	}

	if h.service != nil {
		health.Provider = h.service.ProviderName()
		if stats, ok := h.service.CacheStats(); ok {
			health.Cache = &stats
		}
	}

	if !health.Services["database"].Healthy {
		health.Status = "unhealthy"
	} else if health.Services["opensearch"].Status == "unhealthy" {
		health.Status = "degraded"
	}

	statusCode := http.StatusOK
	if health.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	response.WriteJSON(w, statusCode, response.Response{
		Code:    statusCode,
		Success: health.Status != "unhealthy",
		Message: fmt.Sprintf("Service is %s", health.Status),
		Data:    health,
	})
}

func checkPinger(ctx context.Context, p Pinger) *ServiceHealth {
	if p == nil {
		return &ServiceHealth{Status: "not_configured"}
	}

	start := time.Now()
	err := p.Ping(ctx)
	health := &ServiceHealth{
		ResponseTime: fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
	}
	if err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
		return health
	}

	health.Status = "healthy"
	health.Healthy = true
	return health
}

func checkSystemHealth() *SystemHealth {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &SystemHealth{
		Alloc:      formatBytes(memStats.Alloc),
		Sys:        formatBytes(memStats.Sys),
		GCRuns:     memStats.NumGC,
		GoRoutines: runtime.NumGoroutine(),
	}
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
