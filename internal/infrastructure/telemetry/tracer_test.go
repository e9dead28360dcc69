package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/brokerhub/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func disabledTracerProvider(t *testing.T, samplingRatio float64) *telemetry.TracerProvider {
	t.Helper()

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     samplingRatio,
		ServiceName:       "brokerhub-backend",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)

	return tp
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp := disabledTracerProvider(t, 1.0)

	assert.False(t, tp.IsEnabled())

	cfg := tp.GetConfig()
	assert.Equal(t, "brokerhub-backend", cfg.ServiceName)
	assert.False(t, cfg.Enabled)

	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	// Needs a reachable OTEL collector, so only runs outside short mode.
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       "brokerhub-backend",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.True(t, tp.IsEnabled())

	tracer := tp.Tracer("brokerage")
	_, span := tracer.Start(ctx, "lead.qualify")
	span.End()

	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_SamplingRatios(t *testing.T) {
	ctx := context.Background()

	// Every ratio maps to a valid sampler, including the edge values
	// that select AlwaysSample and NeverSample.
	for _, ratio := range []float64{1.0, 0.0, 0.5} {
		tp := disabledTracerProvider(t, ratio)

		assert.False(t, tp.IsEnabled())
		assert.Equal(t, ratio, tp.GetConfig().SamplingRatio)
		assert.NoError(t, tp.Shutdown(ctx))
	}
}

func TestTracerProvider_Disabled_NoOpSurface(t *testing.T) {
	ctx := context.Background()
	tp := disabledTracerProvider(t, 1.0)

	// Span creation, flushes and shutdowns all degrade to no-ops.
	tracer := tp.Tracer("brokerage")
	require.NotNil(t, tracer)
	_, span := tracer.Start(ctx, "application.submit")
	span.End()

	assert.NoError(t, tp.ForceFlush(ctx))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.NoError(t, tp.Shutdown(cancelled))
}

func TestNewTracerProvider_InvalidEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	logger := zaptest.NewLogger(t, zaptest.Level(zap.ErrorLevel))
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "invalid-host:99999",
		SamplingRatio:     1.0,
		ServiceName:       "brokerhub-backend",
	}, logger)
	if err != nil {
		t.Logf("expected connection error: %v", err)
		return
	}

	// The gRPC exporter connects lazily, so creation may still succeed.
	_ = tp.Shutdown(context.Background())
}
