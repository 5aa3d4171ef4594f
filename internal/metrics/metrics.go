package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration observes HTTP request latency per route and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pos",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// QuotesComputed counts pricing quotes served.
	QuotesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "quotes_computed_total",
		Help:      "Number of pricing quotes computed.",
	})

	// AppointmentsCompleted counts successful completions.
	AppointmentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "appointments_completed_total",
		Help:      "Number of appointments marked completed.",
	})

	// ProductSaleFailures counts best-effort product sale calls that failed
	// after the appointment was already completed.
	ProductSaleFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "product_sale_failures_total",
		Help:      "Number of product sale calls that failed post-completion.",
	})

	// DiscountValidations counts discount code validation outcomes.
	DiscountValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "discount_validations_total",
		Help:      "Discount code validation attempts by outcome.",
	}, []string{"outcome"})

	// CatalogCacheHits counts catalog reads served from cache versus backend.
	CatalogCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "catalog_cache_reads_total",
		Help:      "Catalog reads by source (cache or backend).",
	}, []string{"source"})
)

// GinMiddleware records request latency for every route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
