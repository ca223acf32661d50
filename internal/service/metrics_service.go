package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uniplan/timetable-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation behind its own
// registry so the process default stays untouched.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	computeDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	decisionsTotal  *prometheus.CounterVec
	unparsedRows    prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
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

	computeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_compute_duration_seconds",
		Help:    "Duration of timetable grid and block computations",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_cache_hits_total",
		Help: "Total timetable cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_cache_misses_total",
		Help: "Total timetable cache misses",
	})

	decisionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reschedule_decisions_total",
		Help: "Total reschedule request decisions by outcome",
	}, []string{"decision"})

	unparsedRows := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_unparsed_rows",
		Help: "Allocation rows excluded from the last computation",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, computeDuration, cacheHits, cacheMisses, decisionsTotal, unparsedRows, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		computeDuration: computeDuration,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		decisionsTotal:  decisionsTotal,
		unparsedRows:    unparsedRows,
	}
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveComputation records the duration of one timetable computation.
func (m *MetricsService) ObserveComputation(kind string, duration time.Duration) {
	if m == nil {
		return
	}
	m.computeDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordCacheHit increments the cache hit counter.
func (m *MetricsService) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func (m *MetricsService) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// RecordDecision counts one reschedule decision by outcome.
func (m *MetricsService) RecordDecision(status models.RequestStatus) {
	if m == nil {
		return
	}
	m.decisionsTotal.WithLabelValues(string(status)).Inc()
}

// SetUnparsedRows publishes the row-quality gauge from the latest
// diagnostics pass.
func (m *MetricsService) SetUnparsedRows(count int) {
	if m == nil {
		return
	}
	m.unparsedRows.Set(float64(count))
}
