package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records request and cache activity. It also satisfies
// services.CacheObserver.
type Metrics interface {
	IncRequestsTotal(route string, status int)
	ObserveRequestDuration(route string, duration time.Duration)
	IncRateLimited(category string)
	CacheHit(cache string)
	CacheMiss(cache string)
	Handler() http.Handler
}

type MetricsProvider struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimited     *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
}

// NewMetrics returns a no-op implementation when disabled. Each provider owns
// its registry.
func NewMetrics(enabled bool) Metrics {
	if !enabled {
		return noopMetrics{}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &MetricsProvider{
		registry: reg,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portfolio_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"category"}),

		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_cache_lookups_total",
			Help: "Cache lookups by cache and result",
		}, []string{"cache", "result"}),
	}
}

func (m *MetricsProvider) IncRequestsTotal(route string, status int) {
	m.requestsTotal.WithLabelValues(route, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(route string, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRateLimited(category string) {
	m.rateLimited.WithLabelValues(category).Inc()
}

func (m *MetricsProvider) CacheHit(cache string) {
	m.cacheLookups.WithLabelValues(cache, "hit").Inc()
}

func (m *MetricsProvider) CacheMiss(cache string) {
	m.cacheLookups.WithLabelValues(cache, "miss").Inc()
}

func (m *MetricsProvider) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (noopMetrics) IncRequestsTotal(string, int)                 {}
func (noopMetrics) ObserveRequestDuration(string, time.Duration) {}
func (noopMetrics) IncRateLimited(string)                        {}
func (noopMetrics) CacheHit(string)                              {}
func (noopMetrics) CacheMiss(string)                             {}
func (noopMetrics) Handler() http.Handler                        { return http.NotFoundHandler() }
