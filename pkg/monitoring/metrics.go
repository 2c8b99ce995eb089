package monitoring

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector owns the service's Prometheus registry plus the standard
// HTTP metrics every endpoint reports. Each collector instance has its own
// registry, so tests can construct one without colliding with the default.
type MetricsCollector struct {
	prefix   string
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// NewMetricsCollector builds a collector whose metric names are prefixed
// with the service name (hyphens become underscores per Prometheus naming).
func NewMetricsCollector(service, version, commit string) *MetricsCollector {
	mc := &MetricsCollector{
		prefix:   strings.ReplaceAll(service, "-", "_"),
		registry: prometheus.NewRegistry(),
	}

	mc.registry.MustRegister(collectors.NewGoCollector())

	mc.requestsTotal = mc.NewCounter("http_requests_total",
		"Total number of HTTP requests",
		[]string{"method", "endpoint", "status"})
	mc.requestDuration = mc.NewHistogram("http_request_duration_seconds",
		"HTTP request duration in seconds",
		[]string{"method", "endpoint"}, nil)

	mc.inFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: mc.prefix + "_http_requests_in_flight",
		Help: "HTTP requests currently being served",
	})
	mc.registry.MustRegister(mc.inFlight)

	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: mc.prefix + "_service_info",
		Help: "Service build information",
	}, []string{"version", "commit"})
	mc.registry.MustRegister(info)
	info.WithLabelValues(version, commit).Set(1)

	return mc
}

// NewCounter registers a prefixed counter vector.
func (mc *MetricsCollector) NewCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: mc.prefix + "_" + name,
		Help: help,
	}, labels)
	mc.registry.MustRegister(counter)
	return counter
}

// NewHistogram registers a prefixed histogram vector. Nil buckets fall back
// to the Prometheus defaults.
func (mc *MetricsCollector) NewHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    mc.prefix + "_" + name,
		Help:    help,
		Buckets: buckets,
	}, labels)
	mc.registry.MustRegister(histogram)
	return histogram
}

// CreateAggregationMetrics registers the per-operation counters and latency
// histogram for the engagement aggregation path.
func (mc *MetricsCollector) CreateAggregationMetrics() (*prometheus.CounterVec, *prometheus.HistogramVec) {
	total := mc.NewCounter("aggregations_total",
		"Total aggregation requests",
		[]string{"operation", "status"})
	duration := mc.NewHistogram("aggregation_duration_seconds",
		"Aggregation duration in seconds",
		[]string{"operation"}, nil)
	return total, duration
}

// MetricsMiddleware records request counts, durations and in-flight gauge
// for every route.
func (mc *MetricsCollector) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		mc.inFlight.Inc()
		defer mc.inFlight.Dec()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		method := c.Request.Method
		mc.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		mc.requestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the collector's registry at /metrics.
func (mc *MetricsCollector) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
