package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors for the request pipeline.
// Constructed once at startup and injected; the registry is private so
// tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal       *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	CacheLookups        *prometheus.CounterVec
	ProviderFailures    *prometheus.CounterVec
	RateLimitRejections *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adlens_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adlens_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adlens_cache_lookups_total",
			Help: "Cache lookups by route and outcome (hit or miss).",
		}, []string{"route", "state"}),
		ProviderFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adlens_provider_failures_total",
			Help: "Provider failures by kind (transport or contract).",
		}, []string{"kind"}),
		RateLimitRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adlens_ratelimit_rejections_total",
			Help: "Requests rejected by admission control, by route.",
		}, []string{"route"}),
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
