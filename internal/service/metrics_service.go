package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the portal.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	rateLimited     prometheus.Counter
	authFailures    *prometheus.CounterVec
	upstreamErrors  *prometheus.CounterVec
	activeSessions  prometheus.GaugeFunc
}

// NewMetricsService registers core Prometheus collectors. sessionCount
// feeds the live sessions gauge; pass nil to skip it.
func NewMetricsService(sessionCount func() int) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	rateLimited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limited_requests_total",
		Help: "Total requests rejected by the rate limiter",
	})

	authFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_failures_total",
		Help: "Total rejected authentication attempts",
	}, []string{"reason"})

	upstreamErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_errors_total",
		Help: "Total upstream AI proxy failures",
	}, []string{"code"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, rateLimited, authFailures, upstreamErrors, goroutines)

	m := &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		rateLimited:     rateLimited,
		authFailures:    authFailures,
		upstreamErrors:  upstreamErrors,
	}

	if sessionCount != nil {
		m.activeSessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of live sessions in the session store",
		}, func() float64 {
			return float64(sessionCount())
		})
		registry.MustRegister(m.activeSessions)
	}
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one completed request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordRateLimited counts a rejected request.
func (m *MetricsService) RecordRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// RecordAuthFailure counts a rejected authentication attempt.
func (m *MetricsService) RecordAuthFailure(reason string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(reason).Inc()
}

// RecordUpstreamError counts an AI proxy failure by error code.
func (m *MetricsService) RecordUpstreamError(code string) {
	if m == nil {
		return
	}
	m.upstreamErrors.WithLabelValues(code).Inc()
}
