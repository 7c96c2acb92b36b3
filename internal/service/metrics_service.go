package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// AI search pipeline.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	extractionDuration   prometheus.Histogram
	extractionFailures   prometheus.Counter
	translationFallbacks prometheus.Counter
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

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	extractionDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ai_search_extraction_duration_seconds",
		Help:    "Duration of criteria extraction calls",
		Buckets: prometheus.DefBuckets,
	})

	extractionFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ai_search_extraction_failures_total",
		Help: "Total failed criteria extractions",
	})

	translationFallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ai_search_translation_fallbacks_total",
		Help: "Total prompts that fell back to the original text after a translation failure",
	})

	registry.MustRegister(requestDuration, requestTotal, cacheHits, cacheMisses,
		extractionDuration, extractionFailures, translationFallbacks)

	return &MetricsService{
		registry:             registry,
		handler:              promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:      requestDuration,
		requestTotal:         requestTotal,
		cacheHits:            cacheHits,
		cacheMisses:          cacheMisses,
		extractionDuration:   extractionDuration,
		extractionFailures:   extractionFailures,
		translationFallbacks: translationFallbacks,
	}
}

// Handler exposes the /metrics endpoint handler.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one handled request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// RecordCacheOperation counts one cache lookup.
func (s *MetricsService) RecordCacheOperation(hit bool) {
	if s == nil {
		return
	}
	if hit {
		s.cacheHits.Inc()
		return
	}
	s.cacheMisses.Inc()
}

// ObserveExtraction records one criteria-extraction attempt.
func (s *MetricsService) ObserveExtraction(duration time.Duration, success bool) {
	if s == nil {
		return
	}
	s.extractionDuration.Observe(duration.Seconds())
	if !success {
		s.extractionFailures.Inc()
	}
}

// RecordTranslationFallback counts a prompt that passed through untranslated
// after a translation failure.
func (s *MetricsService) RecordTranslationFallback() {
	if s == nil {
		return
	}
	s.translationFallbacks.Inc()
}
