package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "aipro"
	subsystem = "image_api"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generations_total",
			Help:      "Generation requests by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	ImagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "images_total",
			Help:      "Images returned to callers",
		},
		[]string{"model"},
	)

	CostTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cost_total",
			Help:      "Accumulated generation cost",
		},
		[]string{"model"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by backend and result",
		},
		[]string{"backend", "result"},
	)

	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "provider_requests_total",
			Help:      "Image provider calls by model and status",
		},
		[]string{"model", "status"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "provider_duration_seconds",
			Help:      "Image provider call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"model"},
	)

	ProviderHealth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "provider_healthy",
			Help:      "1 when the last provider probe succeeded",
		},
	)

	TranslationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "translations_total",
			Help:      "Prompt translation attempts by status",
		},
		[]string{"status"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	if endpoint == "" {
		endpoint = "unmatched"
	}
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordGeneration records a finished generation request.
func RecordGeneration(model, outcome string, images int, cost float64) {
	GenerationsTotal.WithLabelValues(normalizeLabel(model), outcome).Inc()
	if images > 0 {
		ImagesTotal.WithLabelValues(normalizeLabel(model)).Add(float64(images))
	}
	if cost > 0 {
		CostTotal.WithLabelValues(normalizeLabel(model)).Add(cost)
	}
}

// RecordCacheLookup records a cache hit or miss
func RecordCacheLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(backend, result).Inc()
}

// RecordProviderCall records one upstream image request.
func RecordProviderCall(model, status string, durationSec float64) {
	ProviderRequestsTotal.WithLabelValues(normalizeLabel(model), status).Inc()
	ProviderDuration.WithLabelValues(normalizeLabel(model)).Observe(durationSec)
}

// SetProviderHealth sets the health status of the provider
func SetProviderHealth(healthy bool) {
	val := 0.0
	if healthy {
		val = 1.0
	}
	ProviderHealth.Set(val)
}

// RecordTranslation records a translation attempt
func RecordTranslation(status string) {
	TranslationsTotal.WithLabelValues(status).Inc()
}

func normalizeLabel(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return "unknown"
	}
	return v
}
