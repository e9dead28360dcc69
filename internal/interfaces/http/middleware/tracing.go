// Package middleware provides HTTP middleware for the brokerage portal.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Length caps on header-sourced attribute values. Headers are attacker
// controlled, so everything read from them is bounded and validated
// before it lands in a trace.
const (
	MaxRequestIDLength = 128
	MaxTenantIDLength  = 64
)

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "brokerhub-backend",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin and annotates each server span with
// request_id, tenant_id and user_id. Span names follow otelgin's
// "METHOD route_pattern" convention, e.g. "GET /api/v1/leads/:id".
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return noopHandler
	}

	otelMiddleware := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		// otelgin opens the span; annotation happens once it exists.
		otelMiddleware(c)

		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			annotateSpan(c, span)
		}
	}
}

func annotateSpan(c *gin.Context, span trace.Span) {
	if requestID := getRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if tenantID := getTenantID(c); tenantID != "" {
		span.SetAttributes(attribute.String("tenant_id", tenantID))
	}
	if userID := getUserID(c); userID != "" {
		span.SetAttributes(attribute.String("user_id", userID))
	}
}

// getRequestID prefers the ID set by the RequestID middleware and falls
// back to the X-Request-ID header, truncated to MaxRequestIDLength.
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}

	headerID := c.GetHeader("X-Request-ID")
	if len(headerID) > MaxRequestIDLength {
		return headerID[:MaxRequestIDLength]
	}
	return headerID
}

// getTenantID prefers the JWT claim and falls back to the X-Tenant-ID
// header. The header value only counts when it parses as a UUID.
func getTenantID(c *gin.Context) string {
	if tenantID, exists := c.Get(JWTTenantIDKey); exists {
		if id, ok := tenantID.(string); ok && id != "" {
			return id
		}
	}

	headerTenantID := c.GetHeader("X-Tenant-ID")
	if headerTenantID != "" && isValidTenantID(headerTenantID) {
		return headerTenantID
	}
	return ""
}

func isValidTenantID(tenantID string) bool {
	if len(tenantID) > MaxTenantIDLength {
		return false
	}
	return uuidRegex.MatchString(tenantID)
}

func getUserID(c *gin.Context) string {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(string); ok && id != "" {
			return id
		}
	}
	return ""
}

// SpanErrorMarker marks the active span failed on 4xx and 5xx
// responses. Place it after the Tracing middleware in the chain.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode < http.StatusBadRequest {
			return
		}

		var errorMessage string
		switch {
		case statusCode >= http.StatusInternalServerError:
			errorMessage = "Internal Server Error"
		case statusCode == http.StatusUnauthorized:
			errorMessage = "Unauthorized"
		case statusCode == http.StatusForbidden:
			errorMessage = "Forbidden"
		case statusCode == http.StatusNotFound:
			errorMessage = "Not Found"
		default:
			errorMessage = "Client Error"
		}

		span.SetStatus(codes.Error, errorMessage)
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
}

// TracingAttributeInjector re-annotates the active span once the JWT
// middleware has populated the context. Place it after both Tracing and
// the JWT middleware.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			annotateSpan(c, span)
		}
		c.Next()
	}
}
