package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_thumb_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_thumb_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_thumb_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Resize metrics
var (
	ResizeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_thumb_resize_requests_total",
			Help: "Total number of resize requests by outcome",
		},
		[]string{"outcome"}, // "generated", "cached", "input", "not_found", "processing"
	)

	ResizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_thumb_resize_duration_seconds",
			Help:    "Resize request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_thumb_cache_hits_total",
			Help: "Total number of derived images served from disk",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_thumb_cache_misses_total",
			Help: "Total number of derived images generated",
		},
	)

	AvailableImages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_thumb_available_images",
			Help: "Number of source images found by the last catalog listing",
		},
	)
)

// Warm-up queue metrics
var (
	WarmupJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_thumb_warmup_jobs_total",
			Help: "Total number of warm-up jobs by status",
		},
		[]string{"status"},
	)

	MirrorUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_thumb_mirror_uploads_total",
			Help: "Total number of derived images uploaded to remote storage",
		},
		[]string{"status"},
	)
)
