package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthFailures counts rejected bearer credentials by reason
	// (missing, expired, malformed, signature_invalid, user_not_found).
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Rejected bearer credentials by reason",
		},
		[]string{"reason"},
	)

	// RateLimited counts requests rejected by a rate limiter.
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected with 429 by limiter",
		},
		[]string{"limiter"},
	)

	// ChannelsActive is the number of active channels, refreshed periodically.
	ChannelsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "channels_active",
			Help: "Number of active (not soft-deleted) channels",
		},
	)

	// UsersRegistered is the number of registered users, refreshed periodically.
	UsersRegistered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_registered",
			Help: "Number of registered users",
		},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthFailures, RateLimited, ChannelsActive, UsersRegistered)
	})
}

// RecordRequest records duration and count for an HTTP request. path should be the route pattern.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

func RecordAuthFailure(reason string) {
	AuthFailures.WithLabelValues(reason).Inc()
}

func RecordRateLimited(limiter string) {
	RateLimited.WithLabelValues(limiter).Inc()
}

// SetDirectorySize updates the channel and user gauges.
func SetDirectorySize(activeChannels, users int) {
	ChannelsActive.Set(float64(activeChannels))
	UsersRegistered.Set(float64(users))
}
