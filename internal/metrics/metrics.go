package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	importsTotal      *prometheus.CounterVec
	importDuration    prometheus.Histogram
	fedTotal          *prometheus.CounterVec
	fedDuration       *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewMetricsWith(reg, reg)
}

// NewMetricsWith registers collectors on reg and serves them from g.
func NewMetricsWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: g,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "series_cache_hits_total",
			Help: "Simulation series served from memory.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "series_cache_misses_total",
			Help: "Simulation series reloaded from the database.",
		}),
		importsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imports_total",
			Help: "Results imports by outcome.",
		}, []string{"result"}),
		importDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "import_duration_seconds",
			Help:    "Histogram of results import durations.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		fedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fed_computations_total",
			Help: "FED path computations by model and outcome.",
		}, []string{"model", "result"}),
		fedDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fed_computation_duration_seconds",
			Help:    "Histogram of FED path computation durations by model.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"model"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.cacheHits,
		m.cacheMisses,
		m.importsTotal,
		m.importDuration,
		m.fedTotal,
		m.fedDuration,
	)
	return m
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) Import(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.importDuration.Observe(duration.Seconds())
	m.importsTotal.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) FED(model string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.fedDuration.WithLabelValues(model).Observe(duration.Seconds())
	m.fedTotal.WithLabelValues(model, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
