// Package metrics exposes the dashboard's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vcarpool"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Dashboard HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Dashboard HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls to the carpool API by operation and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op", "status"})

	preferenceToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "preferences",
		Name:      "toggles_total",
		Help:      "Preference button clicks by level and outcome.",
	}, []string{"level", "result"})

	scheduleGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "schedule",
		Name:      "generations_total",
		Help:      "Schedule generation requests by mode and outcome.",
	}, []string{"mode", "result"})
)

// RecordHTTPRequest records one served dashboard request.
func RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordUpstreamCall records one call to the carpool API. Status 0 means no response.
func RecordUpstreamCall(op string, status int, elapsed time.Duration) {
	upstreamDuration.WithLabelValues(op, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordPreferenceToggle records a selector outcome ("set", "cleared", "cap_exceeded", "rejected").
func RecordPreferenceToggle(level, result string) {
	preferenceToggles.WithLabelValues(level, result).Inc()
}

// RecordScheduleGeneration records a generation request ("sync" or "async").
func RecordScheduleGeneration(mode, result string) {
	scheduleGenerations.WithLabelValues(mode, result).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
