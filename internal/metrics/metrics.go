// Package metrics holds the Prometheus collectors for HTTP traffic and feed activity.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "promptfeed"

// Result label values.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	feedPages       prometheus.Counter
	heartsUpdates   *prometheus.CounterVec
	imagesPublished prometheus.Counter
	imagesGenerated *prometheus.CounterVec
}

// New builds a private registry so tests and multiple servers never collide.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		feedPages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feed_pages_served_total",
			Help: "Feed pages returned to clients.",
		}),
		heartsUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hearts_updates_total",
			Help: "Hearts update attempts by outcome.",
		}, []string{"result"}),
		imagesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "images_published_total",
			Help: "Images published to the feed.",
		}),
		imagesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "images_generated_total",
			Help: "Image generation requests by outcome.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.feedPages,
		m.heartsUpdates,
		m.imagesPublished,
		m.imagesGenerated,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records count, latency and in-flight gauge per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) FeedPageServed() {
	if m == nil {
		return
	}
	m.feedPages.Inc()
}

func (m *Metrics) HeartsUpdated(result string) {
	if m == nil {
		return
	}
	m.heartsUpdates.WithLabelValues(result).Inc()
}

func (m *Metrics) ImagePublished() {
	if m == nil {
		return
	}
	m.imagesPublished.Inc()
}

func (m *Metrics) ImageGenerated(result string) {
	if m == nil {
		return
	}
	m.imagesGenerated.WithLabelValues(result).Inc()
}

// routePattern keeps label cardinality bounded by using the matched chi pattern.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
