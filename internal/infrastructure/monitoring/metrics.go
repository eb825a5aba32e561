// Package monitoring exposes Prometheus metrics for the menu service
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "menugen"

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	gatherer prometheus.Gatherer

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// Menu metrics
	menusGenerated prometheus.Counter
	servingSizes   prometheus.Histogram
	regenerations  *prometheus.CounterVec
	exports        *prometheus.CounterVec
	catalogRecipes *prometheus.GaugeVec
	catalogLoads   *prometheus.CounterVec
}

// NewMetricsCollector registers every collector on reg. Passing a fresh
// prometheus.NewRegistry keeps tests isolated from the default registry.
func NewMetricsCollector(reg *prometheus.Registry, logger *zap.Logger) *MetricsCollector {
	factory := promauto.With(reg)

	return &MetricsCollector{
		logger:   logger.Named("metrics"),
		gatherer: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		httpResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		menusGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "menus_generated_total",
				Help:      "Total number of weekly menus generated",
			},
		),
		servingSizes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "menu_serving_size",
				Help:      "Serving size requested per generated menu",
				Buckets:   []float64{10, 15, 20, 25, 30, 40, 50, 75, 100},
			},
		),
		regenerations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "regenerations_total",
				Help:      "Total number of partial menu regenerations",
			},
			[]string{"scope"},
		),
		exports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Total number of menu exports",
			},
			[]string{"format", "status"},
		),
		catalogRecipes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_recipes",
				Help:      "Number of recipes in each catalog category",
			},
			[]string{"category"},
		),
		catalogLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_loads_total",
				Help:      "Catalog loads by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// MenuGenerated records a full weekly generation
func (m *MetricsCollector) MenuGenerated(servingSize int) {
	m.menusGenerated.Inc()
	m.servingSizes.Observe(float64(servingSize))
}

// MenuRegenerated records a partial regeneration
func (m *MetricsCollector) MenuRegenerated(scope string) {
	m.regenerations.WithLabelValues(scope).Inc()
}

// MenuExported records an export attempt
func (m *MetricsCollector) MenuExported(format string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.exports.WithLabelValues(format, status).Inc()
}

// CatalogLoaded records a catalog load and the resulting pool sizes
func (m *MetricsCollector) CatalogLoaded(outcome string, counts map[menu.Category]int) {
	m.catalogLoads.WithLabelValues(outcome).Inc()
	for category, n := range counts {
		m.catalogRecipes.WithLabelValues(string(category)).Set(float64(n))
	}
}

// HTTPMiddleware records request count, latency and response size labelled
// by the matched chi route pattern.
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		statusCode := strconv.Itoa(status)

		m.httpRequestsTotal.WithLabelValues(r.Method, path, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path, statusCode).Observe(time.Since(start).Seconds())
		m.httpResponseSize.WithLabelValues(r.Method, path).Observe(float64(ww.BytesWritten()))
	})
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// routePattern avoids unbounded label cardinality from raw paths
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

var _ outbound.MenuMetrics = (*MetricsCollector)(nil)
