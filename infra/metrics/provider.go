package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ProviderCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "checkout",
			Subsystem: "provider",
			Name:      "call_duration_seconds",
			Help:      "Provider library call latency in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "operation"},
	)

	ProviderCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "provider",
			Name:      "calls_total",
			Help:      "Total number of provider calls by outcome",
		},
		[]string{"provider", "operation", "outcome"},
	)

	MethodsCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "methods_cache",
			Name:      "lookups_total",
			Help:      "Payment methods cache lookups by result",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(ProviderCallDuration, ProviderCallsTotal, MethodsCacheLookups)
}

// ObserveProviderCall records one provider call. outcome is "ok" or an error code.
func ObserveProviderCall(provider, operation, outcome string, elapsed time.Duration) {
	ProviderCallDuration.WithLabelValues(provider, operation).Observe(elapsed.Seconds())
	ProviderCallsTotal.WithLabelValues(provider, operation, outcome).Inc()
}

// ObserveCacheLookup records a methods cache hit or miss
func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	MethodsCacheLookups.WithLabelValues(result).Inc()
}
