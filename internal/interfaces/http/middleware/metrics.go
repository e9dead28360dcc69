// Package middleware provides HTTP middleware for the brokerage portal.
package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/brokerhub/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	MeterProvider *telemetry.MeterProvider
	ServiceName   string
	Enabled       bool
}

// DefaultHTTPMetricsConfig returns default HTTP metrics configuration.
func DefaultHTTPMetricsConfig() HTTPMetricsConfig {
	return HTTPMetricsConfig{
		ServiceName: "brokerhub-backend",
		Enabled:     true,
	}
}

// httpMetrics bundles the per-request instruments.
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	requestSize     *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

var bodySizeBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000, 5000000}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(
		meter,
		"http_server_request_total",
		"Total number of HTTP requests",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	requestSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_size_bytes",
		Description: "HTTP request body size distribution in bytes",
		Unit:        "By",
		Boundaries:  bodySizeBuckets,
	})
	if err != nil {
		return nil, err
	}

	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  bodySizeBuckets,
	})
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestSize:     requestSize,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

func noopHandler(c *gin.Context) {
	c.Next()
}

// HTTPMetrics returns a Gin middleware that records request count,
// latency, body sizes and in-flight requests. With metrics disabled it
// returns a pass-through handler so routers never need to branch.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.MeterProvider == nil || !cfg.MeterProvider.IsEnabled() {
		return noopHandler
	}

	metrics, err := newHTTPMetrics(cfg.MeterProvider.Meter("http.server"))
	if err != nil {
		return noopHandler
	}

	return httpMetricsMiddleware(metrics)
}

// HTTPMetricsWithMeter builds the same middleware from a caller-supplied
// meter, which lets tests plug in a manual reader.
func HTTPMetricsWithMeter(meter metric.Meter, enabled bool) gin.HandlerFunc {
	if !enabled {
		return noopHandler
	}

	metrics, err := newHTTPMetrics(meter)
	if err != nil {
		return noopHandler
	}

	return httpMetricsMiddleware(metrics)
}

func httpMetricsMiddleware(metrics *httpMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		requestSize := getRequestSize(c)

		metrics.activeRequests.Add(ctx, 1)
		c.Next()
		metrics.activeRequests.Add(ctx, -1)

		recordHTTPMetrics(ctx, metrics,
			c.Request.Method,
			getRoutePattern(c),
			c.Writer.Status(),
			getTenantIDFromContext(c),
			time.Since(start),
			requestSize,
			c.Writer.Size(),
		)
	}
}

func recordHTTPMetrics(
	ctx context.Context,
	metrics *httpMetrics,
	method, route string,
	statusCode int,
	tenantID string,
	duration time.Duration,
	requestSize int64,
	responseSize int,
) {
	requestAttrs := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPRoute.String(route),
		telemetry.AttrHTTPStatusCode.Int(statusCode),
	}
	if tenantID != "" {
		requestAttrs = append(requestAttrs, telemetry.AttrTenantID.String(tenantID))
	}
	metrics.requestTotal.Inc(ctx, requestAttrs...)

	// Histograms carry only method and route to keep cardinality down.
	baseAttrs := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPRoute.String(route),
	}
	metrics.requestDuration.RecordDuration(ctx, duration, baseAttrs...)

	if requestSize > 0 {
		metrics.requestSize.Record(ctx, float64(requestSize), baseAttrs...)
	}
	if responseSize > 0 {
		metrics.responseSize.Record(ctx, float64(responseSize), baseAttrs...)
	}
}

// getRoutePattern labels metrics with the matched route pattern, for
// example "/api/v1/leads/:id", never the raw path.
func getRoutePattern(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		return "unknown"
	}
	return route
}

func getRequestSize(c *gin.Context) int64 {
	if cl := c.Request.ContentLength; cl > 0 {
		return cl
	}
	return 0
}

// getTenantIDFromContext reads the tenant ID the JWT middleware stored
// on the gin context.
func getTenantIDFromContext(c *gin.Context) string {
	if tenantID, exists := c.Get(JWTTenantIDKey); exists {
		if id, ok := tenantID.(string); ok && id != "" {
			return id
		}
	}
	return ""
}

// HTTPMetricsStatusGroup maps a status code to its class (2xx, 4xx, 5xx)
// for error-rate queries.
func HTTPMetricsStatusGroup(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "other"
	}
}

// HTTPMetricsResponseWriter wraps gin.ResponseWriter to count written
// bytes for writers whose Size() reports -1.
type HTTPMetricsResponseWriter struct {
	gin.ResponseWriter
	bytesWritten int
}

func (w *HTTPMetricsResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// BytesWritten returns the total bytes written to the response.
func (w *HTTPMetricsResponseWriter) BytesWritten() int {
	return w.bytesWritten
}

// ParseStatusCode parses a status code string, returning 0 when it is
// not a number.
func ParseStatusCode(s string) int {
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return code
}
