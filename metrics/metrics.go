package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Defaults used when Config leaves them empty.
const (
	DefaultNamespace = "hjarta"
	DefaultSubsystem = "params"
)

// Parse sources, used as the "source" label.
const (
	SourceFile     = "file"
	SourceBytes    = "bytes"
	SourceOverride = "override"
)

// Config names the metrics.
type Config struct {
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// Collector records parameter metrics.
type Collector struct {
	registry *prometheus.Registry

	parses        *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec
	nodes         prometheus.Gauge
	parameters    prometheus.Gauge
	allocated     prometheus.Gauge

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRegistry returns a registry carrying the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct // defaults
	)

	return registry
}

// NewCollector registers the parameter metrics on registry, or on a fresh
// registry when it is nil.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	if cfg.Subsystem == "" {
		cfg.Subsystem = DefaultSubsystem
	}

	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		parses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "parses_total",
			Help:      "Parameter documents and overrides parsed, by source and result.",
		}, []string{"source", "result"}),
		parseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing parameter documents.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"source"}),
		nodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "nodes",
			Help:      "Nodes in the loaded parameter tree.",
		}),
		parameters: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "parameters",
			Help:      "Parameters holding a value in the loaded parameter tree.",
		}),
		allocated: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "allocated_bytes",
			Help:      "Bytes charged to the allocator of the loaded parameter tree.",
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}

	return c.registry
}

// RecordParse counts one parse from source and how long it took.
func (c *Collector) RecordParse(source string, duration time.Duration, err error) {
	if c == nil {
		return
	}

	c.parses.WithLabelValues(source, result(err)).Inc()
	c.parseDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// ObserveTree publishes the size of the loaded tree.
func (c *Collector) ObserveTree(nodes, parameters, allocatedBytes int) {
	if c == nil {
		return
	}

	c.nodes.Set(float64(nodes))
	c.parameters.Set(float64(parameters))
	c.allocated.Set(float64(allocatedBytes))
}

// RecordRequest counts one HTTP request.
func (c *Collector) RecordRequest(route string, status int, duration time.Duration) {
	if c == nil {
		return
	}

	c.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{ //nolint:exhaustruct // defaults
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

func result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
