package metrics

import (
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Upload outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeBadInput     = "bad_input"
	OutcomeStorageError = "storage_error"
)

// MetricsManager holds the service's Prometheus collectors on a private registry.
type MetricsManager struct {
	Registry          *prometheus.Registry
	ImageUploadsTotal *prometheus.CounterVec
	ImageUploadBytes  prometheus.Histogram
	HomesCreatedTotal prometheus.Counter
	HTTPLatency       *prometheus.HistogramVec
}

func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	uploads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Image relay requests by outcome.",
	}, []string{"outcome"})

	uploadBytes := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_upload_bytes",
		Help:      "Decoded size of images written to object storage.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 7), // 16KiB .. 64MiB
	})

	homesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "homes_created_total",
		Help:      "Total number of homes created.",
	})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	registry.MustRegister(
		uploads,
		uploadBytes,
		homesCreated,
		latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:          registry,
		ImageUploadsTotal: uploads,
		ImageUploadBytes:  uploadBytes,
		HomesCreatedTotal: homesCreated,
		HTTPLatency:       latency,
	}
}

// ObserveUpload records one relay request. size is ignored unless outcome is success.
func (m *MetricsManager) ObserveUpload(outcome string, size int) {
	if m == nil {
		return
	}
	m.ImageUploadsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.ImageUploadBytes.Observe(float64(size))
	}
}

// ObserveHomeCreated increments the homes counter.
func (m *MetricsManager) ObserveHomeCreated() {
	if m == nil {
		return
	}
	m.HomesCreatedTotal.Inc()
}

// ObserveRequest records HTTP latency for a matched route.
func (m *MetricsManager) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPLatency.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}

// NewMetricsServer returns the /metrics server for port; the caller runs and stops it.
func NewMetricsServer(port string, registry *prometheus.Registry, log *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Info("Prometheus metrics server configured", zap.String("port", port), zap.String("path", "/metrics"))
	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
