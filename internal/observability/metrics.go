package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/envutil"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

// Provider fetch outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeTimeout = "timeout"
	OutcomePanic   = "panic"
)

// Metrics owns a private registry so tests can build as many as they like.
// Every method is safe on a nil receiver, which is what callers get when
// metrics are disabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge
	apiErrors   *prometheus.CounterVec

	providerFetches *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	providerResults *prometheus.HistogramVec
	poolComposition *prometheus.CounterVec
	poolFallbacks   prometheus.Counter
	roadmapOps      *prometheus.CounterVec
	enrichments     *prometheus.CounterVec
	eventsPublished *prometheus.CounterVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

func Current() *Metrics {
	return instance
}

// Init builds the process-wide metrics once. It returns nil when
// METRICS_ENABLED is off.
func Init(log *logger.Logger) *Metrics {
	initOnce.Do(func() {
		if !Enabled() {
			return
		}
		instance = New()
		if log != nil {
			log.Info("prometheus metrics enabled")
		}
	})
	return instance
}

// New builds an unshared Metrics value with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skill_sculptor_api_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skill_sculptor_api_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skill_sculptor_api_inflight_requests",
			Help: "HTTP requests currently being served.",
		}),
		apiErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skill_sculptor_api_errors_total",
			Help: "HTTP error responses by route and error code.",
		}, []string{"route", "code"}),
		providerFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skill_sculptor_provider_fetches_total",
			Help: "Resource provider fetches by provider and outcome.",
		}, []string{"provider", "outcome"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skill_sculptor_provider_fetch_duration_seconds",
			Help:    "Resource provider fetch latency.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"provider"}),
		providerResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skill_sculptor_provider_results",
			Help:    "Resources returned per provider fetch.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}, []string{"provider"}),
		poolComposition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skill_sculptor_pool_resources_total",
			Help: "Resources admitted to a roadmap pool by provider and level.",
		}, []string{"provider", "level"}),
		poolFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skill_sculptor_pool_fallbacks_total",
			Help: "Pools that had to use the fallback resource list.",
		}),
		roadmapOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skill_sculptor_roadmap_operations_total",
			Help: "Roadmap operations by name and result.",
		}, []string{"op", "result"}),
		enrichments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skill_sculptor_roadmap_enrichments_total",
			Help: "Lazy resource backfills by result.",
		}, []string{"result"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skill_sculptor_events_published_total",
			Help: "Roadmap lifecycle events by type and result.",
		}, []string{"type", "result"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.apiErrors,
		m.providerFetches,
		m.providerLatency,
		m.providerResults,
		m.poolComposition,
		m.poolFallbacks,
		m.roadmapOps,
		m.enrichments,
		m.eventsPublished,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ObserveAPIError(route, code string) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiErrors.WithLabelValues(route, code).Inc()
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveProviderFetch(provider, outcome string, results int, dur time.Duration) {
	if m == nil {
		return
	}
	m.providerFetches.WithLabelValues(provider, outcome).Inc()
	m.providerLatency.WithLabelValues(provider).Observe(dur.Seconds())
	m.providerResults.WithLabelValues(provider).Observe(float64(results))
}

func (m *Metrics) ObservePool(level string, composition map[string]int, fallback bool) {
	if m == nil {
		return
	}
	for provider, n := range composition {
		m.poolComposition.WithLabelValues(provider, level).Add(float64(n))
	}
	if fallback {
		m.poolFallbacks.Inc()
	}
}

func (m *Metrics) IncRoadmapOp(op, result string) {
	if m == nil {
		return
	}
	m.roadmapOps.WithLabelValues(op, result).Inc()
}

func (m *Metrics) IncEnrichment(result string) {
	if m == nil {
		return
	}
	m.enrichments.WithLabelValues(result).Inc()
}

func (m *Metrics) IncEventPublished(eventType, result string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(eventType, result).Inc()
}
