package telemetry

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const serviceVersion = "1.0.0"

// shutdownTimeout bounds provider shutdown so a dead collector cannot
// hang process exit.
const shutdownTimeout = 10 * time.Second

// serviceResource builds the OTEL resource shared by the trace, metric
// and log providers.
func serviceResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
