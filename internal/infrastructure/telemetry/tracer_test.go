package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"

	"github.com/oficina/backend/internal/infrastructure/config"
	"github.com/oficina/backend/internal/infrastructure/telemetry"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, config.TelemetryConfig{
		Enabled:     false,
		ServiceName: "oficina-test",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProviderWithExporter(t *testing.T) {
	ctx := context.Background()
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	exporter := tracetest.NewInMemoryExporter()
	tp, err := telemetry.NewTracerProviderWithExporter(config.TelemetryConfig{
		Enabled:       true,
		SamplingRatio: 1.0,
		ServiceName:   "oficina-test",
	}, exporter, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, tp.IsEnabled())

	_, span := telemetry.StartSpan(ctx, "work_order.open")
	span.End()
	require.NoError(t, tp.ForceFlush(ctx))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "work_order.open", spans[0].Name)

	var serviceName string
	for _, kv := range spans[0].Resource.Attributes() {
		if kv.Key == "service.name" {
			serviceName = kv.Value.AsString()
		}
	}
	assert.Equal(t, "oficina-test", serviceName)

	require.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProviderWithExporter_NeverSample(t *testing.T) {
	ctx := context.Background()
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	exporter := tracetest.NewInMemoryExporter()
	tp, err := telemetry.NewTracerProviderWithExporter(config.TelemetryConfig{
		Enabled:       true,
		SamplingRatio: 0,
		ServiceName:   "oficina-test",
	}, exporter, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, span := telemetry.StartSpan(ctx, "dropped")
	span.End()
	require.NoError(t, tp.ForceFlush(ctx))

	assert.Empty(t, exporter.GetSpans())
	require.NoError(t, tp.Shutdown(ctx))
}
