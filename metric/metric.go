// Package metric holds the Prometheus metrics of the baasdoc server.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitalvas/baasdoc/openapi"
)

const namespace = "baasdoc"

// Metrics contains the HTTP and document metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Components      *prometheus.GaugeVec
	Operations      prometheus.Gauge
	DocumentBytes   *prometheus.GaugeVec
}

// NewMetrics creates the metrics without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		Components: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "openapi",
				Name:      "components",
				Help:      "Number of components in the served document by kind",
			},
			[]string{"kind"},
		),

		Operations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "openapi",
				Name:      "operations",
				Help:      "Number of operations in the served document",
			},
		),

		DocumentBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "openapi",
				Name:      "document_bytes",
				Help:      "Size of the serialized document by format",
			},
			[]string{"format"},
		),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RequestsTotal,
		m.RequestDuration,
		m.Components,
		m.Operations,
		m.DocumentBytes,
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveDocument records the shape of a completed document.
func (m *Metrics) ObserveDocument(doc *openapi.Document) error {
	if doc.Components != nil {
		for _, kind := range openapi.Kinds {
			m.Components.WithLabelValues(kind.String()).Set(float64(doc.Components.Len(kind)))
		}
	}
	m.Operations.Set(float64(doc.OperationCount()))

	data, err := doc.JSON()
	if err != nil {
		return err
	}
	m.DocumentBytes.WithLabelValues("json").Set(float64(len(data)))

	data, err = doc.YAML()
	if err != nil {
		return err
	}
	m.DocumentBytes.WithLabelValues("yaml").Set(float64(len(data)))

	return nil
}

// Registry owns a Prometheus registry with the baasdoc metrics and the Go
// runtime collectors.
type Registry struct {
	registry *prometheus.Registry
	Metrics  *Metrics
}

// NewRegistry creates a registry and registers every metric.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	m := NewMetrics()

	reg.MustRegister(m.collectors()...)
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{registry: reg, Metrics: m}
}

// PrometheusRegistry returns the underlying registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
