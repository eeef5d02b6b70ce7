// Package observability provides the prometheus metrics surface and the
// OpenTelemetry tracer provider, plus the gin middleware that feeds both.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
)

// Metrics holds the application metric instruments on a private registry.
type Metrics struct {
	enabled  bool
	registry *prometheus.Registry
	handler  http.Handler

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	cacheHitsTotal      *prometheus.CounterVec
	cacheMissesTotal    *prometheus.CounterVec
	outboxEffectsTotal  *prometheus.CounterVec
	wsClients           prometheus.Gauge
}

// NewMetrics creates the metric instruments. When metrics are disabled the
// record methods are no-ops and the handler serves 404.
func NewMetrics(cfg *config.ObservabilityConfig, logger *zap.Logger) *Metrics {
	if !cfg.MetricsEnabled {
		return &Metrics{}
	}

	registry := prometheus.NewRegistry()
	m := &Metrics{
		enabled:  true,
		registry: registry,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		cacheHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		}, []string{"cache"}),

		cacheMissesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		}, []string{"cache"}),

		outboxEffectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_effects_total",
			Help: "Outbox effects processed by outcome",
		}, []string{"type", "outcome"}),

		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ws_connected_clients",
			Help: "Connected websocket clients",
		}),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.cacheHitsTotal,
		m.cacheMissesTotal,
		m.outboxEffectsTotal,
		m.wsClients,
	)

	logger.Info("prometheus metrics initialized")
	return m
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if !m.enabled {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCacheHit records a lookaside cache hit.
func (m *Metrics) RecordCacheHit(cacheName string) {
	if !m.enabled {
		return
	}
	m.cacheHitsTotal.WithLabelValues(cacheName).Inc()
}

// RecordCacheMiss records a lookaside cache miss.
func (m *Metrics) RecordCacheMiss(cacheName string) {
	if !m.enabled {
		return
	}
	m.cacheMissesTotal.WithLabelValues(cacheName).Inc()
}

// RecordOutboxEffect records a processed outbox effect.
func (m *Metrics) RecordOutboxEffect(effectType, outcome string) {
	if !m.enabled {
		return
	}
	m.outboxEffectsTotal.WithLabelValues(effectType, outcome).Inc()
}

// SetWSClients tracks the connected websocket client count.
func (m *Metrics) SetWSClients(count int) {
	if !m.enabled {
		return
	}
	m.wsClients.Set(float64(count))
}

// Handler returns the scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	if m.handler != nil {
		return m.handler
	}
	return http.NotFoundHandler()
}
