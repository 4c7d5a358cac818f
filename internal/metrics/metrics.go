// Package metrics provides Prometheus metrics collection for the fulfillment service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// OrdersProcessedTotal counts order processing passes by final state.
	OrdersProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_processed_total",
			Help: "Total number of order processing passes by outcome",
		},
		[]string{"outcome"},
	)

	// PackagesShippedTotal counts packages handed to the shipper.
	PackagesShippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packages_shipped_total",
			Help: "Total number of packages shipped",
		},
		[]string{"status"},
	)

	// PackageMass tracks the mass of shipped packages.
	PackageMass = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "package_mass_grams",
			Help:    "Mass of shipped packages in grams",
			Buckets: []float64{100, 250, 500, 750, 1000, 1250, 1500, 1700, 1800},
		},
	)

	// PackerSearchDuration tracks allocation search latency.
	PackerSearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "packer_search_duration_seconds",
			Help:    "Package allocation search duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"source"},
	)

	// DeferredQueueSize tracks the number of orders waiting for a restock.
	DeferredQueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "deferred_queue_size",
			Help: "Number of orders in the deferred queue",
		},
	)

	// RestocksTotal counts processed restock events.
	RestocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "restocks_total",
			Help: "Total number of restock events",
		},
	)

	// RejectedLineItemsTotal counts line items refused at the boundary.
	RejectedLineItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rejected_line_items_total",
			Help: "Total number of rejected line items by operation and reason",
		},
		[]string{"operation", "reason"},
	)

	// CacheOperationsTotal tracks packer cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// RateLimitedTotal counts requests refused by the rate limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests refused by the rate limiter",
		},
		[]string{"scope"},
	)

	// CircuitBreakerState reports the state of each circuit breaker (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordOrderProcessed records the final state of an order processing pass.
func RecordOrderProcessed(outcome string) {
	OrdersProcessedTotal.WithLabelValues(outcome).Inc()
}

// RecordPackageShipped records a shipped package and its mass.
func RecordPackageShipped(massGrams int, status string) {
	PackagesShippedTotal.WithLabelValues(status).Inc()
	PackageMass.Observe(float64(massGrams))
}

// RecordPackerSearch records an allocation search. Source is "search" or "cache".
func RecordPackerSearch(duration time.Duration, source string) {
	PackerSearchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// SetDeferredQueueSize updates the deferred queue gauge.
func SetDeferredQueueSize(size int) {
	DeferredQueueSize.Set(float64(size))
}

// RecordRestock records a processed restock event.
func RecordRestock() {
	RestocksTotal.Inc()
}

// RecordRejectedLineItem records a line item refused at the boundary.
func RecordRejectedLineItem(operation, reason string) {
	RejectedLineItemsTotal.WithLabelValues(operation, reason).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// RecordRateLimited records a refused request. Scope is "ip" or "actor".
func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}

// SetCircuitBreakerState publishes the numeric state of a named circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
